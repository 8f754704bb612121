package postgres

import (
	"context"
	"errors"

	"github.com/PawBook/post-service/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrFieldsNotAllowedToUpdate = errors.New("some of the provided fields are not allowed to be updated")

type Post interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id int64) (*model.Post, error)
	FindBrowse(ctx context.Context, limit int, offset int) ([]*model.Post, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.Post, error)
	FindByPetID(ctx context.Context, petID int64, limit int, offset int) ([]*model.Post, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) (*model.Post, error)
}

type Comment interface {
	CountByPostID(ctx context.Context, postID int64) (int64, error)
}

type UserCache interface {
	Upsert(ctx context.Context, user model.User) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type PetCache interface {
	Upsert(ctx context.Context, pet model.Pet) error
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	FindByIDs(ctx context.Context, ids []int64) ([]*model.Pet, error)
}

type PostgresRepository struct {
	Post
	Comment
	UserCache
	PetCache
}

func New(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{
		Post:      newPostRepo(db),
		Comment:   newCommentRepo(db),
		UserCache: newUserCacheRepo(db),
		PetCache:  newPetCacheRepo(db),
	}
}
