package server

import (
	"chirper/internal/middleware"
	"chirper/internal/models"

	"github.com/gofiber/fiber/v2"
)

type createMessageRequest struct {
	Text string `json:"text" form:"text"`
}

// CreateMessage posts a new message for the authenticated user.
func (s *Server) CreateMessage(c *fiber.Ctx) error {
	var req createMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, err := s.messageService.Create(c.UserContext(), currentUserID(c), req.Text)
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "message created", "message_id", message.ID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": message})
}

// GetMessage returns a single message with its author.
func (s *Server) GetMessage(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	message, err := s.messageService.Get(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": message})
}

// DeleteMessage removes a message. Only its author may delete it;
// anyone else is rejected before anything is touched.
func (s *Server) DeleteMessage(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	if err := s.messageService.Delete(c.UserContext(), id, currentUserID(c)); err != nil {
		return respondServiceError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "message deleted", "message_id", id)
	return c.JSON(fiber.Map{"message": "Message deleted"})
}

// ToggleLike flips the authenticated user's like on a message and
// returns the message with its new like state and count.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	message, err := s.likeService.Toggle(c.UserContext(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": message})
}
