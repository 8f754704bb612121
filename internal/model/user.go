package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a local projection of the user-service record, kept fresh by
// the RabbitMQ consumers. Only the fields surfaced in post reads are
// stored.
type User struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Avatar    string    `json:"avatar" gorm:"type:text"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}
