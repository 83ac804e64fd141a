// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime settings for the backend server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the public HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - BaseURL: public base URL embedded in verification links.
//   - VerificationTokenTTL / SessionTokenTTL: token lifetimes.
//   - BCryptCost: work factor for password hashing.
//   - SMTPHost / SMTPPort / SMTPUser / SMTPPassword / SMTPFrom: mail relay settings.
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage settings.
type Config struct {
	EndpointAddrHTTP     string
	DatabaseDSN          string
	SecretKey            string
	BaseURL              string
	VerificationTokenTTL time.Duration
	SessionTokenTTL      time.Duration
	BCryptCost           int
	SMTPHost             string
	SMTPPort             int
	SMTPUser             string
	SMTPPassword         string
	SMTPFrom             string
	S3RootUser           string
	S3RootPassword       string
	S3Bucket             string
	S3Region             string
	S3BaseEndpoint       string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":3000"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.BaseURL = "http://localhost:3000"
	c.VerificationTokenTTL = 1 * time.Hour
	c.SessionTokenTTL = 7 * 24 * time.Hour
	c.BCryptCost = bcrypt.DefaultCost
	c.SMTPHost = "smtp-relay.brevo.com"
	c.SMTPPort = 587
	c.SMTPUser = ""
	c.SMTPPassword = ""
	c.SMTPFrom = "no-reply@localhost"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "profile-images"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
