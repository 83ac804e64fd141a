// Package services contains server-side business logic. This file implements
// AccountService, which owns the registration → verification → authentication
// flow and mediates all access to account records.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/lifelike-app/backend/internal/common"
	"github.com/lifelike-app/backend/internal/cryptox"
	"github.com/lifelike-app/backend/internal/server/auth"
	"github.com/lifelike-app/backend/internal/server/config"
	"github.com/lifelike-app/backend/internal/server/mailer"
	"github.com/lifelike-app/backend/internal/server/models"
	"github.com/lifelike-app/backend/internal/server/repositories/accounts"
)

const verificationEmailSubject = "Verify Your Email"

// AccountService provides the account lifecycle operations:
//   - Register: create an unverified account and send the verification email
//   - ConfirmVerification: consume a verification token, flip verified to true
//   - Authenticate: verify credentials and mint a session token
type AccountService struct {
	repo                 accounts.Repository
	mailer               mailer.Mailer
	jwtSecret            []byte
	verificationTokenTTL time.Duration
	sessionTokenTTL      time.Duration
	bcryptCost           int
	baseURL              string
}

// NewAccountService constructs an AccountService using the account
// repository, the notification sink, and server config.
func NewAccountService(repo accounts.Repository, m mailer.Mailer, cfg *config.Config) *AccountService {
	return &AccountService{
		repo:                 repo,
		mailer:               m,
		jwtSecret:            []byte(cfg.SecretKey),
		verificationTokenTTL: cfg.VerificationTokenTTL,
		sessionTokenTTL:      cfg.SessionTokenTTL,
		bcryptCost:           cfg.BCryptCost,
		baseURL:              strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// Register creates an unverified account for the email and dispatches a
// verification email carrying a signed, time-limited token.
//
// The record is persisted before the email is sent, so a verification
// attempt finds the account even when delivery is slow. If dispatch fails
// the operation reports common.ErrorNotification but the record stays: the
// caller may see a signup failure for an account that now exists unverified.
func (s *AccountService) Register(ctx context.Context, email, password string) error {
	if err := validateCredentials(email, password); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	hash, err := cryptox.HashPassword(password, s.bcryptCost)
	if err != nil {
		return common.ErrorInternal
	}

	account := &models.Account{Email: email, PasswordHash: hash, Verified: false}
	if err := s.repo.InsertIfAbsent(ctx, account); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return common.ErrorAlreadyExists
		}
		return common.ErrorInternal
	}

	token, err := auth.GenerateToken(email, auth.PurposeVerify, s.jwtSecret, s.verificationTokenTTL)
	if err != nil {
		return common.ErrorInternal
	}

	link := fmt.Sprintf("%s/verify?token=%s", s.baseURL, token)
	body := "Click the link to verify your account: " + link

	if err := s.mailer.Send(ctx, email, verificationEmailSubject, body); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorNotification, err)
	}

	return nil
}

// ConfirmVerification consumes a verification token and marks the matching
// account verified. Consuming the same token twice is a harmless no-op that
// still reports success.
func (s *AccountService) ConfirmVerification(ctx context.Context, token string) error {
	email, err := auth.ParseToken(token, auth.PurposeVerify, s.jwtSecret)
	if err != nil {
		return err
	}

	if err := s.repo.MarkVerified(ctx, email); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	return nil
}

// Authenticate verifies the credentials of a verified account and returns a
// session token. An unknown email and an unverified account are deliberately
// indistinguishable: both yield common.ErrorNotFound.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (string, error) {
	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", common.ErrorInternal
	}

	if !account.Verified {
		return "", common.ErrorNotFound
	}

	if err := cryptox.ComparePasswordAndHash(password, account.PasswordHash); err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			return "", common.ErrorInvalidCredentials
		}
		return "", common.ErrorInternal
	}

	token, err := auth.GenerateToken(email, auth.PurposeSession, s.jwtSecret, s.sessionTokenTTL)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

func validateCredentials(email, password string) error {
	return validation.Errors{
		"email":    validation.Validate(email, validation.Required),
		"password": validation.Validate(password, validation.Required),
	}.Filter()
}
