package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusNormal  = "normal"
	StatusWarning = "warning"
)

type Post struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	UserID        uuid.UUID `json:"user_id" gorm:"type:uuid;index"`
	MediaURL      string    `json:"media_URL" gorm:"column:media_URL;type:text"`
	Caption       string    `json:"caption"`
	Pos           string    `json:"pos" gorm:"default:'allowed'"`
	ImageStatus   string    `json:"image_status" gorm:"default:'normal'"`
	CaptionStatus string    `json:"caption_status" gorm:"default:'normal'"`
	Upvote        int64     `json:"upvote" gorm:"default:0"`
	Downvote      int64     `json:"downvote" gorm:"default:0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Mentions []Mention `json:"mentions" gorm:"foreignKey:PostID"`
	Tags     []PostTag `json:"tags" gorm:"foreignKey:PostID"`
	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// Mention links a post to a pet referenced in it. Rows are only ever
// written at post creation; there is no update path for mentions.
type Mention struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	PostID    int64     `json:"post_id" gorm:"index"`
	PetID     int64     `json:"pet_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Mention) TableName() string { return "pet_posts" }

// PostTag holds one hashtag occurrence from a post caption, duplicates
// included.
type PostTag struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	PostID    int64     `json:"post_id" gorm:"index"`
	Tag       string    `json:"tag"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullPost is the get-by-id projection: the post with its associations
// plus a live comment count.
type FullPost struct {
	Post
	TotalComments int64 `json:"total_comments"`
}
