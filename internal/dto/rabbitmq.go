package dto

import "github.com/google/uuid"

type MQUserCreatedMsg struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Avatar    string    `json:"avatar"`
}

type MQPetCreatedMsg struct {
	ID      int64     `json:"id"`
	OwnerID uuid.UUID `json:"owner_id"`
	Name    string    `json:"name"`
}
