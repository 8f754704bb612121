package model

import (
	"time"

	"github.com/google/uuid"
)

// Comment rows are written by the comment service; this service only
// reads the per-post count.
type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	PostID    int64     `json:"post_id" gorm:"index"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid"`
	Content   string    `json:"content" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
