package repository

import (
	"github.com/PawBook/post-service/internal/repository/postgres"
	"github.com/PawBook/post-service/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Repository struct {
	Postgres *postgres.PostgresRepository
	Redis    *redisrepo.RedisRepository
}

func New(db *gorm.DB, rdb *redis.Client) *Repository {
	return &Repository{
		Postgres: postgres.New(db),
		Redis:    redisrepo.New(rdb),
	}
}
