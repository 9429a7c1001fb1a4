package models

import (
	"time"
)

// MaxMessageLength is the upper bound on message text.
const MaxMessageLength = 140

// Message represents a short text post authored by a user. Text is
// immutable after creation; there is no update operation.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:varchar(140);not null" json:"text"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// Liked and LikesCount are not persisted; computed at query time
	// for the like endpoint's JSON serialization. Serialized without
	// omitempty so the off-state (liked=false, count=0) stays explicit.
	Liked      bool  `gorm:"-" json:"liked"`
	LikesCount int64 `gorm:"-" json:"likes_count"`
}

// TableName specifies the table name for GORM
func (Message) TableName() string {
	return "messages"
}
