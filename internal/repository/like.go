package repository

import (
	"context"

	"chirper/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines persistence operations for the like index.
type LikeRepository interface {
	Toggle(ctx context.Context, userID, messageID uint) (liked bool, err error)
	IsLiked(ctx context.Context, userID, messageID uint) (bool, error)
	CountForMessage(ctx context.Context, messageID uint) (int64, error)
	ListLikedMessages(ctx context.Context, userID uint) ([]models.Message, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository returns a new LikeRepository implementation.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle flips the like state for the (user, message) pair against a
// current snapshot inside one transaction. Two concurrent toggles from
// the same user cannot duplicate a row: the composite uniqueness
// constraint absorbs the losing insert (reported as liked, not an
// error), and the losing delete is a no-op.
func (r *likeRepository) Toggle(ctx context.Context, userID, messageID uint) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Like{}).
			Where("user_id = ? AND message_id = ?", userID, messageID).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			liked = false
			return tx.
				Where("user_id = ? AND message_id = ?", userID, messageID).
				Delete(&models.Like{}).Error
		}

		liked = true
		row := models.Like{UserID: userID, MessageID: messageID}
		return tx.
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&row).Error
	})
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return liked, nil
}

func (r *likeRepository) IsLiked(ctx context.Context, userID, messageID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *likeRepository) CountForMessage(ctx context.Context, messageID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("message_id = ?", messageID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *likeRepository) ListLikedMessages(ctx context.Context, userID uint) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN likes l ON messages.id = l.message_id").
		Where("l.user_id = ?", userID).
		Order("messages.created_at DESC, messages.id DESC").
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}
