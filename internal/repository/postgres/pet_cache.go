package postgres

import (
	"context"

	"github.com/PawBook/post-service/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type petCacheRepo struct {
	db *gorm.DB
}

func newPetCacheRepo(db *gorm.DB) PetCache {
	return &petCacheRepo{
		db: db,
	}
}

func (r *petCacheRepo) Upsert(ctx context.Context, pet model.Pet) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"owner_id", "name"}),
		}).
		Create(&pet).Error
}

func (r *petCacheRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	allowedFields := []string{"owner_id", "name"}
	allowedFieldsSet := make(map[string]struct{}, len(allowedFields))
	for _, field := range allowedFields {
		allowedFieldsSet[field] = struct{}{}
	}

	for field := range updates {
		if _, ok := allowedFieldsSet[field]; !ok {
			return ErrFieldsNotAllowedToUpdate
		}
	}

	return r.db.WithContext(ctx).
		Model(&model.Pet{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *petCacheRepo) FindByIDs(ctx context.Context, ids []int64) ([]*model.Pet, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var pets []*model.Pet
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&pets).Error
	return pets, err
}
