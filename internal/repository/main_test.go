package repository

import (
	"context"
	"fmt"
	"testing"

	"chirper/internal/database"
	"chirper/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "open sqlite")
	require.NoError(t, database.Migrate(db), "migrate schema")
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "x",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestMessage(t *testing.T, db *gorm.DB, userID uint, text string) *models.Message {
	t.Helper()
	msg := &models.Message{Text: text, UserID: userID}
	require.NoError(t, db.Create(msg).Error)
	return msg
}

func testCtx() context.Context {
	return context.Background()
}
