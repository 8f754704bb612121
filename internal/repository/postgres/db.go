package postgres

import (
	"github.com/PawBook/post-service/internal/config"
	"github.com/PawBook/post-service/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func DB(cfg config.DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Pet{},
		&model.Post{},
		&model.Mention{},
		&model.PostTag{},
		&model.Comment{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
