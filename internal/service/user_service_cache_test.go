package service

import (
	"context"
	"testing"

	"chirper/internal/cache"
	"chirper/internal/database"
	"chirper/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Profile edit re-verifies the current password against the stored
// hash, and user reads go through the Redis cache. The cached copy has
// to carry the hash or the edit starts failing as soon as the record
// is cached.
func TestUpdateProfileSucceedsAfterCachedRead(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.InitRedis(mr.Addr())
	t.Cleanup(cache.Close)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	svc := NewUserService(repository.NewUserRepository(db))

	user, err := svc.Signup(context.Background(), SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	// Warm the cache, then read again so the record is served from it.
	_, err = svc.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	cached, err := svc.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, cached.Password, "cache hit must still carry the hash")

	updated, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID:   user.ID,
		Bio:      "gardener",
		Password: "hunter22",
	})
	require.NoError(t, err, "correct password must pass after a cached read")
	assert.Equal(t, "gardener", updated.Bio)

	// And the wrong password is still rejected.
	_, err = svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID:   user.ID,
		Bio:      "impostor",
		Password: "wrong",
	})
	require.Error(t, err)
}
