package service

import (
	"context"
	"errors"
	"testing"

	"chirper/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleAnnotatesMessage(t *testing.T) {
	likes := &stubLikeRepo{
		ToggleFn: func(ctx context.Context, userID, messageID uint) (bool, error) {
			return true, nil
		},
		CountForMessageFn: func(ctx context.Context, messageID uint) (int64, error) {
			return 4, nil
		},
	}
	messages := &stubMessageRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.Message, error) {
			return &models.Message{ID: id, Text: "chirp"}, nil
		},
	}
	svc := NewLikeService(likes, messages)

	msg, err := svc.Toggle(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, msg.Liked)
	assert.EqualValues(t, 4, msg.LikesCount)
	assert.Equal(t, "chirp", msg.Text)
}

func TestToggleUnknownMessage(t *testing.T) {
	toggled := false
	svc := NewLikeService(&stubLikeRepo{
		ToggleFn: func(ctx context.Context, userID, messageID uint) (bool, error) {
			toggled = true
			return true, nil
		},
	}, &stubMessageRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.Message, error) {
			return nil, models.NewNotFoundError("Message", id)
		},
	})

	_, err := svc.Toggle(context.Background(), 1, 42)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
	assert.False(t, toggled, "the index must not change for a missing message")
}
