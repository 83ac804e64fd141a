package config

import (
	"flag"
	"os"
	"time"

	"github.com/lifelike-app/backend/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string            HTTP bind address (e.g., ":3000")
//	-d string            PostgreSQL DSN (empty selects the in-memory store)
//	-s string            JWT HMAC secret key
//	-base-url string     public base URL used in verification links
//	-t int               verification token validity, minutes
//	-r int               session token validity, hours
//	-smtp-host string    SMTP relay host
//	-smtp-port int       SMTP relay port
//	-smtp-user string    SMTP relay user
//	-smtp-password string SMTP relay password
//	-smtp-from string    sender address for outbound mail
//	-u string            S3 root user
//	-p string            S3 root password
//	-b string            S3 bucket name
//	-g string            S3 region
//	-e string            S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers (minutes for the verification
//     token, hours for the session token) and then converted to time.Duration.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-d", "-s", "-base-url", "-t", "-r",
		"-smtp-host", "-smtp-port", "-smtp-user", "-smtp-password", "-smtp-from",
		"-u", "-p", "-b", "-g", "-e",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.BaseURL, "base-url", config.BaseURL, "public base URL for verification links")

	verificationTokenTTL := fs.Int("t", int(config.VerificationTokenTTL.Minutes()), "verification_token_ttl (in minutes)")
	sessionTokenTTL := fs.Int("r", int(config.SessionTokenTTL.Hours()), "session_token_ttl (in hours)")

	fs.StringVar(&config.SMTPHost, "smtp-host", config.SMTPHost, "SMTP relay host")
	fs.IntVar(&config.SMTPPort, "smtp-port", config.SMTPPort, "SMTP relay port")
	fs.StringVar(&config.SMTPUser, "smtp-user", config.SMTPUser, "SMTP relay user")
	fs.StringVar(&config.SMTPPassword, "smtp-password", config.SMTPPassword, "SMTP relay password")
	fs.StringVar(&config.SMTPFrom, "smtp-from", config.SMTPFrom, "sender address for outbound mail")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 root region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.VerificationTokenTTL = time.Duration(*verificationTokenTTL) * time.Minute
	config.SessionTokenTTL = time.Duration(*sessionTokenTTL) * time.Hour
}
