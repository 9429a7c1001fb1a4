package service

import (
	"context"
	"testing"

	"chirper/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHomeFeedAuthorSet(t *testing.T) {
	var gotAuthors []uint
	var gotLimit int

	follows := &stubFollowRepo{
		ListFollowingIDsFn: func(ctx context.Context, userID uint) ([]uint, error) {
			return []uint{2, 3}, nil
		},
	}
	messages := &stubMessageRepo{
		ListByAuthorsFn: func(ctx context.Context, authorIDs []uint, limit int) ([]models.Message, error) {
			gotAuthors = authorIDs
			gotLimit = limit
			return []models.Message{{ID: 1}}, nil
		},
	}
	svc := NewFeedService(follows, messages)

	feed, err := svc.BuildHomeFeed(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, feed, 1)

	// The reader's own messages belong in their feed.
	assert.ElementsMatch(t, []uint{1, 2, 3}, gotAuthors)
	assert.Equal(t, HomeFeedLimit, gotLimit)
}

func TestBuildHomeFeedWithNoFollows(t *testing.T) {
	var gotAuthors []uint
	svc := NewFeedService(&stubFollowRepo{}, &stubMessageRepo{
		ListByAuthorsFn: func(ctx context.Context, authorIDs []uint, limit int) ([]models.Message, error) {
			gotAuthors = authorIDs
			return nil, nil
		},
	})

	feed, err := svc.BuildHomeFeed(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, feed)
	assert.Equal(t, []uint{7}, gotAuthors, "a loner still sees their own messages")
}
