package server

import (
	"chirper/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// FollowUser makes the authenticated user follow :id and returns the
// refreshed following list.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	followerID := currentUserID(c)
	if err := s.followService.Follow(c.UserContext(), followerID, id); err != nil {
		return respondServiceError(c, err)
	}

	following, err := s.followService.ListFollowing(c.UserContext(), followerID)
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "user followed", "followee_id", id)
	return c.JSON(fiber.Map{"following": following})
}

// UnfollowUser removes an existing follow. Unfollowing someone not
// currently followed is a no-op.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	followerID := currentUserID(c)
	if err := s.followService.Unfollow(c.UserContext(), followerID, id); err != nil {
		return respondServiceError(c, err)
	}

	following, err := s.followService.ListFollowing(c.UserContext(), followerID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"following": following})
}

// GetFollowing lists the users that :id follows.
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	following, err := s.followService.ListFollowing(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"following": following})
}

// GetFollowers lists the users following :id.
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	followers, err := s.followService.ListFollowers(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"followers": followers})
}
