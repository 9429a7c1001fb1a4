package service

import (
	"context"

	"chirper/internal/models"
	"chirper/internal/observability"
	"chirper/internal/repository"
	"chirper/internal/validation"
)

// MessageService provides message-store business logic.
type MessageService struct {
	messageRepo repository.MessageRepository
}

// NewMessageService returns a new MessageService.
func NewMessageService(messageRepo repository.MessageRepository) *MessageService {
	return &MessageService{messageRepo: messageRepo}
}

// Create persists a new message for the author. The timestamp is
// assigned at write time; message text is immutable afterwards.
func (s *MessageService) Create(ctx context.Context, userID uint, text string) (*models.Message, error) {
	if err := validation.ValidateMessageText(text, models.MaxMessageLength); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	message := &models.Message{Text: text, UserID: userID}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	observability.MessagesCreated.Inc()
	return message, nil
}

// Get returns the message or a NotFound error.
func (s *MessageService) Get(ctx context.Context, id uint) (*models.Message, error) {
	return s.messageRepo.GetByID(ctx, id)
}

// ListByUser returns a user's messages, newest first.
func (s *MessageService) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	return s.messageRepo.ListByUser(ctx, userID, limit, offset)
}

// Delete removes a message. A requester who is not the owner is
// explicitly rejected, never silently ignored.
func (s *MessageService) Delete(ctx context.Context, id, requesterID uint) error {
	return s.messageRepo.Delete(ctx, id, requesterID)
}
