package service

import (
	"context"
	"time"

	"chirper/internal/models"
	"chirper/internal/observability"
	"chirper/internal/repository"
)

// HomeFeedLimit is the fixed recent-feed window.
const HomeFeedLimit = 100

// FeedService composes the home timeline from the social graph and the
// message store. The feed is recomputed per request; invalidating a
// cached feed is not worth it at this data scale.
type FeedService struct {
	followRepo  repository.FollowRepository
	messageRepo repository.MessageRepository
}

// NewFeedService returns a new FeedService.
func NewFeedService(followRepo repository.FollowRepository, messageRepo repository.MessageRepository) *FeedService {
	return &FeedService{followRepo: followRepo, messageRepo: messageRepo}
}

// BuildHomeFeed returns the most recent messages authored by the user or
// anyone they follow, newest first, capped at HomeFeedLimit.
func (s *FeedService) BuildHomeFeed(ctx context.Context, userID uint) ([]models.Message, error) {
	start := time.Now()

	authorIDs, err := s.followRepo.ListFollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	authorIDs = append(authorIDs, userID)

	messages, err := s.messageRepo.ListByAuthors(ctx, authorIDs, HomeFeedLimit)
	if err != nil {
		return nil, err
	}

	observability.FeedBuildLatency.Observe(time.Since(start).Seconds())
	return messages, nil
}
