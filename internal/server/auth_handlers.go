package server

import (
	"fmt"

	"chirper/internal/middleware"
	"chirper/internal/models"
	"chirper/internal/service"

	"github.com/gofiber/fiber/v2"
)

type signupRequest struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	ImageURL string `json:"image_url" form:"image_url"`
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Signup registers a new account and logs it in immediately.
func (s *Server) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Signup(c.UserContext(), service.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	csrfToken, err := s.beginSession(c, user.ID, user.Username)
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "session issue failed after signup", "error", err)
		return respondServiceError(c, models.NewInternalError(err))
	}

	middleware.Logger.InfoContext(c.UserContext(), "user signed up", "user_id", user.ID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":       user,
		"csrf_token": csrfToken,
	})
}

// Login authenticates a user and starts a session. Bad usernames and
// bad passwords get the same response.
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Authenticate(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return respondServiceError(c, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials."))
	}

	csrfToken, err := s.beginSession(c, user.ID, user.Username)
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "session issue failed after login", "error", err)
		return respondServiceError(c, models.NewInternalError(err))
	}

	middleware.Logger.InfoContext(c.UserContext(), "user logged in", "user_id", user.ID)
	return c.JSON(fiber.Map{
		"user":       user,
		"csrf_token": csrfToken,
		"message":    fmt.Sprintf("Hello, %s!", user.Username),
	})
}

// Logout ends the current session.
func (s *Server) Logout(c *fiber.Ctx) error {
	jti, _ := c.Locals("sessionID").(string)
	username, _ := c.Locals("username").(string)
	s.endSession(c, jti)

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("%s has logged out", username),
	})
}
