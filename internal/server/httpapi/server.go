// Package httpapi exposes the account lifecycle over HTTP. Each route maps
// to one service operation and one of a small fixed set of outcome codes;
// collaborator error details never reach the client.
package httpapi

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lifelike-app/backend/internal/logging"
)

// AccountService is the slice of the lifecycle service the HTTP layer needs.
type AccountService interface {
	Register(ctx context.Context, email, password string) error
	ConfirmVerification(ctx context.Context, token string) error
	Authenticate(ctx context.Context, email, password string) (string, error)
}

// MediaService uploads profile images.
type MediaService interface {
	UploadProfileImage(ctx context.Context, data []byte, contentType string) (string, error)
}

type Server struct {
	app      *fiber.App
	address  string
	logger   logging.Logger
	accounts AccountService
	media    MediaService
}

func NewServer(address string, l logging.Logger, accounts AccountService, media MediaService) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			DisableStartupMessage: true,
		}),
		address:  address,
		logger:   l.With("module", "http_server"),
		accounts: accounts,
		media:    media,
	}

	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/", s.handleRoot)
	s.app.Post("/signup", s.handleSignup)
	s.app.Get("/verify", s.handleVerify)
	s.app.Post("/login", s.handleLogin)
	s.app.Post("/profile-image", s.handleProfileImage)
}

// Run starts the listener and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	return s.app.Listen(s.address)
}
