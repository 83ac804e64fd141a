package httpapi

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/lifelike-app/backend/internal/common"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRoot(c *fiber.Ctx) error {
	return c.SendString("Lifelike Backend is Running")
}

func (s *Server) handleSignup(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, common.ErrorValidation)
	}

	s.logger.Info(ctx, "Signup request", "email", req.Email)

	if err := s.accounts.Register(ctx, req.Email, req.Password); err != nil {
		s.logger.Error(ctx, "signup failed", "email", req.Email, "error", err.Error())
		return s.fail(c, err)
	}

	s.logger.Info(ctx, "Registered", "email", req.Email)
	return c.JSON(fiber.Map{"message": "Signup successful. Check your email to verify."})
}

func (s *Server) handleVerify(c *fiber.Ctx) error {
	ctx := c.UserContext()

	token := c.Query("token")
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "token is required"})
	}

	if err := s.accounts.ConfirmVerification(ctx, token); err != nil {
		s.logger.Error(ctx, "verification failed", "error", err.Error())
		return s.fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Email verified. You can now log in."})
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, common.ErrorValidation)
	}

	s.logger.Info(ctx, "Login request", "email", req.Email)

	token, err := s.accounts.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		s.logger.Error(ctx, "login failed", "email", req.Email, "error", err.Error())
		return s.fail(c, err)
	}

	return c.JSON(fiber.Map{"token": token})
}

func (s *Server) handleProfileImage(c *fiber.Ctx) error {
	ctx := c.UserContext()

	fh, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "image file is required"})
	}

	f, err := fh.Open()
	if err != nil {
		return s.fail(c, common.ErrorInternal)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return s.fail(c, common.ErrorInternal)
	}

	url, err := s.media.UploadProfileImage(ctx, data, fh.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "image file is required"})
		}
		s.logger.Error(ctx, "upload failed", "error", err.Error())
		return s.fail(c, err)
	}

	return c.JSON(fiber.Map{"url": url})
}

// fail maps a service error onto the fixed outcome set. Internal detail
// stays in the logs; the client only sees the kind and a short message.
func (s *Server) fail(c *fiber.Ctx, err error) error {
	status, message := fiber.StatusInternalServerError, "internal error"

	switch {
	case errors.Is(err, common.ErrorValidation):
		status, message = fiber.StatusBadRequest, "email and password are required"
	case errors.Is(err, common.ErrorAlreadyExists):
		status, message = fiber.StatusConflict, "email already exists"
	case errors.Is(err, common.ErrorNotFound):
		status, message = fiber.StatusNotFound, "account not found"
	case errors.Is(err, common.ErrorInvalidCredentials):
		status, message = fiber.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		status, message = fiber.StatusUnauthorized, "invalid or expired token"
	case errors.Is(err, common.ErrorUpload):
		status, message = fiber.StatusBadGateway, "upload failed"
	case errors.Is(err, common.ErrorNotification):
		status, message = fiber.StatusInternalServerError, "signup failed"
	}

	return c.Status(status).JSON(fiber.Map{"message": message})
}
