package postgres

import (
	"context"

	"github.com/PawBook/post-service/internal/model"
	"gorm.io/gorm"
)

type commentRepo struct {
	db *gorm.DB
}

func newCommentRepo(db *gorm.DB) Comment {
	return &commentRepo{
		db: db,
	}
}

// CountByPostID reports zero for ids with no comments, including ids
// that match no post at all.
func (r *commentRepo) CountByPostID(ctx context.Context, postID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}
