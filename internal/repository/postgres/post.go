package postgres

import (
	"context"

	"github.com/PawBook/post-service/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// createFields is the allow-list for inserts: payload fields outside it
// (vote counters, status flags) never reach the row.
var createFields = []string{"UserID", "MediaURL", "Caption", "CreatedAt", "UpdatedAt", "Mentions", "Tags"}

type postRepo struct {
	db *gorm.DB
}

func newPostRepo(db *gorm.DB) Post {
	return &postRepo{
		db: db,
	}
}

// Create inserts the post together with its mention and tag rows in a
// single transaction.
func (r *postRepo) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Select(createFields).Create(post).Error
}

func ownerProjection(db *gorm.DB) *gorm.DB {
	return db.Select("id", "avatar", "first_name", "last_name")
}

func (r *postRepo) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).
		Preload("Mentions").
		Preload("Tags").
		Preload("User", ownerProjection).
		First(&post, "posts.id = ?", id).Error
	if err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) FindBrowse(ctx context.Context, limit int, offset int) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.WithContext(ctx).
		Preload("User", ownerProjection).
		Order("updated_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.WithContext(ctx).
		Preload("User", ownerProjection).
		Where("user_id = ?", userID).
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepo) FindByPetID(ctx context.Context, petID int64, limit int, offset int) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.WithContext(ctx).
		Preload("Mentions").
		Joins("JOIN pet_posts ON pet_posts.post_id = posts.id").
		Where("pet_posts.pet_id = ?", petID).
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

// Update applies the given column map to the row and returns the
// refreshed record. Callers are responsible for allow-listing the map.
func (r *postRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(&post).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return r.FindByID(ctx, id)
}
