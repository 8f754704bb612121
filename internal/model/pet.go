package model

import (
	"time"

	"github.com/google/uuid"
)

// Pet is a local projection of the pet-service record, maintained the
// same way as User.
type Pet struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	OwnerID   uuid.UUID `json:"owner_id" gorm:"type:uuid;index"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
