package server

import (
	"chirper/internal/middleware"
	"chirper/internal/models"
	"chirper/internal/service"

	"github.com/gofiber/fiber/v2"
)

type updateProfileRequest struct {
	Username       string `json:"username" form:"username"`
	Email          string `json:"email" form:"email"`
	ImageURL       string `json:"image_url" form:"image_url"`
	HeaderImageURL string `json:"header_image_url" form:"header_image_url"`
	Bio            string `json:"bio" form:"bio"`
	Location       string `json:"location" form:"location"`
	Password       string `json:"password" form:"password"`
}

// ListUsers returns users matching the optional ?q= substring filter.
func (s *Server) ListUsers(c *fiber.Ctx) error {
	users, err := s.userService.SearchUsers(c.UserContext(), c.Query("q"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// GetUserProfile returns a user's public profile with their messages,
// newest first.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	messages, err := s.messageService.ListByUser(c.UserContext(), id, 100, 0)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":     user,
		"messages": messages,
	})
}

// GetProfile returns the authenticated user's own record.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUserByID(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// UpdateProfile edits the authenticated user's profile. The caller's
// current password must be supplied and is re-verified before any field
// changes.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:         currentUserID(c),
		Username:       req.Username,
		Email:          req.Email,
		ImageURL:       req.ImageURL,
		HeaderImageURL: req.HeaderImageURL,
		Bio:            req.Bio,
		Location:       req.Location,
		Password:       req.Password,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"user": user})
}

// DeleteUser removes an account and everything attached to it. Only the
// account owner may do this; the session ends with the account.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	requesterID := currentUserID(c)
	if err := s.userService.DeleteAccount(c.UserContext(), requesterID, id); err != nil {
		return respondServiceError(c, err)
	}

	jti, _ := c.Locals("sessionID").(string)
	s.endSession(c, jti)

	middleware.Logger.InfoContext(c.UserContext(), "account deleted", "user_id", id)
	return c.JSON(fiber.Map{"message": "Account deleted"})
}

// GetLikedMessages returns the messages a user has liked, newest like
// first. The liked list is public, matching the profile page.
func (s *Server) GetLikedMessages(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	if _, err := s.userService.GetUserByID(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}

	messages, err := s.likeService.ListLikedMessages(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"messages": messages})
}
