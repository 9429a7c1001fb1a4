package service

import (
	"context"

	"chirper/internal/models"
	"chirper/internal/observability"
	"chirper/internal/repository"
)

// LikeService provides like-index business logic.
type LikeService struct {
	likeRepo    repository.LikeRepository
	messageRepo repository.MessageRepository
}

// NewLikeService returns a new LikeService.
func NewLikeService(likeRepo repository.LikeRepository, messageRepo repository.MessageRepository) *LikeService {
	return &LikeService{likeRepo: likeRepo, messageRepo: messageRepo}
}

// Toggle flips the like state for the pair and returns the message
// annotated with the resulting liked flag and like count.
func (s *LikeService) Toggle(ctx context.Context, userID, messageID uint) (*models.Message, error) {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	liked, err := s.likeRepo.Toggle(ctx, userID, messageID)
	if err != nil {
		return nil, err
	}

	count, err := s.likeRepo.CountForMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}

	if liked {
		observability.LikeToggles.WithLabelValues("liked").Inc()
	} else {
		observability.LikeToggles.WithLabelValues("unliked").Inc()
	}

	message.Liked = liked
	message.LikesCount = count
	return message, nil
}

// IsLikedBy reports whether the user has liked the message.
func (s *LikeService) IsLikedBy(ctx context.Context, userID, messageID uint) (bool, error) {
	return s.likeRepo.IsLiked(ctx, userID, messageID)
}

// ListLikedMessages returns the messages a user has liked, newest
// first. An unknown user yields an empty list; callers that need a 404
// check the user's existence first.
func (s *LikeService) ListLikedMessages(ctx context.Context, userID uint) ([]models.Message, error) {
	return s.likeRepo.ListLikedMessages(ctx, userID)
}
