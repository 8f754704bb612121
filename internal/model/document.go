package model

import (
	"time"

	"github.com/google/uuid"
)

// PostDocument is the flattened copy of a post written to the search
// index at creation time. It is never updated afterwards, so it can
// drift from the primary store.
type PostDocument struct {
	ID            int64     `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	MediaURL      string    `json:"media_URL"`
	Caption       string    `json:"caption"`
	Pos           string    `json:"pos"`
	ImageStatus   string    `json:"image_status"`
	CaptionStatus string    `json:"caption_status"`
	Upvote        int64     `json:"upvote"`
	Downvote      int64     `json:"downvote"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Mentions      []Mention `json:"mentions"`
	Tags          []PostTag `json:"tags"`
	PetNames      []string  `json:"pet_names"`
	UserName      string    `json:"user_name"`
}

func NewPostDocument(post *Post, petNames []string, userName string) *PostDocument {
	return &PostDocument{
		ID:            post.ID,
		UserID:        post.UserID,
		MediaURL:      post.MediaURL,
		Caption:       post.Caption,
		Pos:           post.Pos,
		ImageStatus:   post.ImageStatus,
		CaptionStatus: post.CaptionStatus,
		Upvote:        post.Upvote,
		Downvote:      post.Downvote,
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
		Mentions:      post.Mentions,
		Tags:          post.Tags,
		PetNames:      petNames,
		UserName:      userName,
	}
}
