package server

import (
	"chirper/internal/models"

	"github.com/gofiber/fiber/v2"
)

// HomeFeed returns the home timeline: the latest messages from the
// authenticated user and everyone they follow. Anonymous visitors get
// an empty feed flagged as such.
func (s *Server) HomeFeed(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.JSON(fiber.Map{
			"anonymous": true,
			"messages":  []models.Message{},
		})
	}

	messages, err := s.feedService.BuildHomeFeed(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"anonymous": false,
		"messages":  messages,
	})
}
