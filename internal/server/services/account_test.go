package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tmock "github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/lifelike-app/backend/internal/common"
	"github.com/lifelike-app/backend/internal/server/auth"
	"github.com/lifelike-app/backend/internal/server/config"
	mailmock "github.com/lifelike-app/backend/internal/server/mailer/mock"
	"github.com/lifelike-app/backend/internal/server/models"
	"github.com/lifelike-app/backend/internal/server/repositories/accounts"
)

// --- helpers ---

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	cfg.BCryptCost = bcrypt.MinCost // keep hashing fast in tests
	cfg.BaseURL = "http://localhost:3000"
	return cfg
}

func newAccountService(t *testing.T) (*AccountService, *accounts.MemoryRepository, *mailmock.MailerMock) {
	t.Helper()
	repo := accounts.NewMemoryRepository()
	m := &mailmock.MailerMock{}
	return NewAccountService(repo, m, newTestConfig()), repo, m
}

// capturedToken extracts the verification token from the last sent mail body.
func capturedToken(t *testing.T, m *mailmock.MailerMock) string {
	t.Helper()
	if len(m.Calls) == 0 {
		t.Fatalf("no mail was sent")
	}
	body := m.Calls[len(m.Calls)-1].Arguments.String(3)
	i := strings.Index(body, "token=")
	if i < 0 {
		t.Fatalf("no token in mail body: %q", body)
	}
	return body[i+len("token="):]
}

type failingRepo struct {
	accounts.Repository
	insertErr error
	getErr    error
	markErr   error
}

func (f *failingRepo) InsertIfAbsent(ctx context.Context, a *models.Account) error {
	return f.insertErr
}
func (f *failingRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return nil, f.getErr
}
func (f *failingRepo) MarkVerified(ctx context.Context, email string) error { return f.markErr }

// --- Register ---

func TestRegister_Success_SendsVerificationMail(t *testing.T) {
	s, repo, m := newAccountService(t)
	m.On("Send", tmock.Anything, "a@x.com", "Verify Your Email", tmock.Anything).Return(nil)

	if err := s.Register(context.Background(), "a@x.com", "p1"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	got, err := repo.GetByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.Verified {
		t.Fatalf("fresh account must be unverified")
	}
	if got.PasswordHash == "p1" || got.PasswordHash == "" {
		t.Fatalf("password must be stored hashed")
	}

	body := m.Calls[0].Arguments.String(3)
	if !strings.Contains(body, "http://localhost:3000/verify?token=") {
		t.Fatalf("mail body must contain a verification link, got %q", body)
	}
	m.AssertExpectations(t)
}

func TestRegister_Validation(t *testing.T) {
	s, _, _ := newAccountService(t)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"missing email", "", "p1"},
		{"missing password", "a@x.com", ""},
		{"both missing", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Register(context.Background(), tt.email, tt.password)
			if !errors.Is(err, common.ErrorValidation) {
				t.Fatalf("want common.ErrorValidation, got %v", err)
			}
		})
	}
}

func TestRegister_Duplicate(t *testing.T) {
	s, repo, m := newAccountService(t)
	m.On("Send", tmock.Anything, "a@x.com", tmock.Anything, tmock.Anything).Return(nil)

	if err := s.Register(context.Background(), "a@x.com", "p1"); err != nil {
		t.Fatalf("first Register error: %v", err)
	}
	first, err := repo.GetByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}

	err = s.Register(context.Background(), "a@x.com", "p2")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}

	// the first record is unaffected
	got, err := repo.GetByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.PasswordHash != first.PasswordHash {
		t.Fatalf("duplicate signup must not touch the existing record")
	}
}

func TestRegister_MailFailure_KeepsRecord(t *testing.T) {
	s, repo, m := newAccountService(t)
	m.On("Send", tmock.Anything, "a@x.com", tmock.Anything, tmock.Anything).
		Return(errors.New("relay down"))

	err := s.Register(context.Background(), "a@x.com", "p1")
	if !errors.Is(err, common.ErrorNotification) {
		t.Fatalf("want common.ErrorNotification, got %v", err)
	}

	// the unverified record is persisted and NOT rolled back
	got, err := repo.GetByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.Verified {
		t.Fatalf("ghost account must stay unverified")
	}
}

func TestRegister_RepoInternalError(t *testing.T) {
	repo := &failingRepo{insertErr: errors.New("db down")}
	m := &mailmock.MailerMock{}
	s := NewAccountService(repo, m, newTestConfig())

	err := s.Register(context.Background(), "a@x.com", "p1")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want common.ErrorInternal, got %v", err)
	}
	m.AssertNotCalled(t, "Send", tmock.Anything, tmock.Anything, tmock.Anything, tmock.Anything)
}

// --- ConfirmVerification ---

func TestConfirmVerification_Success_ThenIdempotent(t *testing.T) {
	s, repo, m := newAccountService(t)
	m.On("Send", tmock.Anything, "a@x.com", tmock.Anything, tmock.Anything).Return(nil)

	if err := s.Register(context.Background(), "a@x.com", "p1"); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	token := capturedToken(t, m)

	if err := s.ConfirmVerification(context.Background(), token); err != nil {
		t.Fatalf("ConfirmVerification error: %v", err)
	}

	got, err := repo.GetByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if !got.Verified {
		t.Fatalf("account must be verified")
	}

	// consuming the same token again is a no-op that still succeeds
	if err := s.ConfirmVerification(context.Background(), token); err != nil {
		t.Fatalf("second ConfirmVerification error: %v", err)
	}
}

func TestConfirmVerification_TamperedToken(t *testing.T) {
	s, repo, m := newAccountService(t)
	m.On("Send", tmock.Anything, "a@x.com", tmock.Anything, tmock.Anything).Return(nil)

	if err := s.Register(context.Background(), "a@x.com", "p1"); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	token := capturedToken(t, m)

	tampered := token + "x" // breaks the signature encoding
	err := s.ConfirmVerification(context.Background(), tampered)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("want common.ErrInvalidToken, got %v", err)
	}

	// no record mutated
	got, _ := repo.GetByEmail(context.Background(), "a@x.com")
	if got.Verified {
		t.Fatalf("tampered token must not verify the account")
	}
}

func TestConfirmVerification_ExpiredToken(t *testing.T) {
	s, repo, m := newAccountService(t)
	m.On("Send", tmock.Anything, "a@x.com", tmock.Anything, tmock.Anything).Return(nil)

	if err := s.Register(context.Background(), "a@x.com", "p1"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	expired, err := auth.GenerateToken("a@x.com", auth.PurposeVerify, []byte("test-secret"), -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	err = s.ConfirmVerification(context.Background(), expired)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("want common.ErrTokenExpired, got %v", err)
	}

	got, _ := repo.GetByEmail(context.Background(), "a@x.com")
	if got.Verified {
		t.Fatalf("expired token must not verify the account")
	}
}

func TestConfirmVerification_SessionTokenRejected(t *testing.T) {
	s, _, _ := newAccountService(t)

	session, err := auth.GenerateToken("a@x.com", auth.PurposeSession, []byte("test-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	err = s.ConfirmVerification(context.Background(), session)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("session token must not pass verification, got %v", err)
	}
}

func TestConfirmVerification_UnknownAccount(t *testing.T) {
	s, _, _ := newAccountService(t)

	token, err := auth.GenerateToken("ghost@x.com", auth.PurposeVerify, []byte("test-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	err = s.ConfirmVerification(context.Background(), token)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

// --- Authenticate ---

func TestAuthenticate_UnverifiedLooksLikeUnknown(t *testing.T) {
	s, _, m := newAccountService(t)
	m.On("Send", tmock.Anything, "a@x.com", tmock.Anything, tmock.Anything).Return(nil)

	if err := s.Register(context.Background(), "a@x.com", "p1"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	// correct password, but the account is not verified yet
	_, err := s.Authenticate(context.Background(), "a@x.com", "p1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("unverified account must look like an unknown one, got %v", err)
	}

	// unknown account yields the same error
	_, err2 := s.Authenticate(context.Background(), "ghost@x.com", "p1")
	if !errors.Is(err2, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err2)
	}
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	s, _, m := newAccountService(t)
	m.On("Send", tmock.Anything, "a@x.com", tmock.Anything, tmock.Anything).Return(nil)

	if err := s.Register(context.Background(), "a@x.com", "p1"); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := s.ConfirmVerification(context.Background(), capturedToken(t, m)); err != nil {
		t.Fatalf("ConfirmVerification error: %v", err)
	}

	_, err := s.Authenticate(context.Background(), "a@x.com", "wrong")
	if !errors.Is(err, common.ErrorInvalidCredentials) {
		t.Fatalf("want common.ErrorInvalidCredentials, got %v", err)
	}
}

func TestAuthenticate_RepoInternalError(t *testing.T) {
	repo := &failingRepo{getErr: errors.New("db down")}
	s := NewAccountService(repo, &mailmock.MailerMock{}, newTestConfig())

	_, err := s.Authenticate(context.Background(), "a@x.com", "p1")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want common.ErrorInternal, got %v", err)
	}
}

// --- End to end ---

func TestLifecycle_RoundTrip(t *testing.T) {
	s, _, m := newAccountService(t)
	m.On("Send", tmock.Anything, "a@x.com", tmock.Anything, tmock.Anything).Return(nil)

	if err := s.Register(context.Background(), "a@x.com", "p1"); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := s.ConfirmVerification(context.Background(), capturedToken(t, m)); err != nil {
		t.Fatalf("ConfirmVerification error: %v", err)
	}

	session, err := s.Authenticate(context.Background(), "a@x.com", "p1")
	if err != nil {
		t.Fatalf("Authenticate error: %v", err)
	}

	email, err := auth.ParseToken(session, auth.PurposeSession, []byte("test-secret"))
	if err != nil {
		t.Fatalf("session token must validate: %v", err)
	}
	if email != "a@x.com" {
		t.Fatalf("session token email mismatch: got %q", email)
	}
}
