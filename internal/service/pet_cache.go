package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/PawBook/post-service/internal/dto"
	"github.com/PawBook/post-service/internal/model"
	"github.com/PawBook/post-service/internal/rabbitmq"
	"github.com/PawBook/post-service/internal/repository"
	"github.com/PawBook/post-service/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type petCacheService struct {
	logger   *zap.Logger
	repo     *repository.Repository
	rabbitmq *rabbitmq.MQConn
}

func newPetCacheService(logger *zap.Logger, repo *repository.Repository, mq *rabbitmq.MQConn) PetCache {
	return &petCacheService{
		logger:   logger,
		repo:     repo,
		rabbitmq: mq,
	}
}

// FindByIDs serves each pet from redis when possible and falls back to
// postgres for the misses. Ids with no matching pet are skipped, so
// the result may be shorter than the input.
func (s *petCacheService) FindByIDs(ctx context.Context, ids []int64) ([]*model.Pet, error) {
	pets := make([]*model.Pet, 0, len(ids))
	var misses []int64

	for _, id := range ids {
		cachedPet, err := redisrepo.Get[model.Pet](s.repo.Redis.Default, ctx, redisrepo.PetCacheKey(id))
		if err == nil && cachedPet != nil {
			pets = append(pets, cachedPet)
			continue
		}
		if err != nil && err != redis.Nil {
			s.logger.Sugar().Errorf("failed to get cached pet(%d) from redis: %s", id, err.Error())
			return nil, ErrInternal
		}

		misses = append(misses, id)
	}

	if len(misses) == 0 {
		return pets, nil
	}

	fetched, err := s.repo.Postgres.PetCache.FindByIDs(ctx, misses)
	if err != nil {
		s.logger.Sugar().Errorf("failed to get cached pets from postgres: %s", err.Error())
		return nil, ErrInternal
	}

	for _, pet := range fetched {
		if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.PetCacheKey(pet.ID), pet, time.Hour); err != nil {
			s.logger.Sugar().Errorf("failed to set pet(%d) in redis: %s", pet.ID, err.Error())
		}
		pets = append(pets, pet)
	}

	return pets, nil
}

func (s *petCacheService) StartConsume(ctx context.Context) {
	go s.consumePetCreated(ctx)
	go s.consumePetUpdates(ctx)
}

func (s *petCacheService) consumePetCreated(ctx context.Context) {
	queue := rabbitmq.PET_CREATED_QUEUE
	msgs, err := s.rabbitmq.Consume(queue)
	if err != nil {
		s.logger.Sugar().Fatalf("failed to start consuming from queue(%s): %s", queue, err.Error())
	}

	for msg := range msgs {
		var data dto.MQPetCreatedMsg
		if err := json.Unmarshal(msg.Body, &data); err != nil {
			s.logger.Sugar().Errorf("failed to unmarshal json in queue(%s): %s", queue, err.Error())
			msg.Nack(false, false)
			continue
		}

		pet := model.Pet{
			ID:      data.ID,
			OwnerID: data.OwnerID,
			Name:    data.Name,
		}
		if err := s.repo.Postgres.PetCache.Upsert(ctx, pet); err != nil {
			s.logger.Sugar().Errorf("failed to create cached pet(%d): %s", data.ID, err.Error())
			msg.Nack(false, true)
			continue
		}

		msg.Ack(false)
	}
}

func (s *petCacheService) consumePetUpdates(ctx context.Context) {
	queue := rabbitmq.PET_INFO_UPDATED_QUEUE
	msgs, err := s.rabbitmq.Consume(queue)
	if err != nil {
		s.logger.Sugar().Fatalf("failed to start consuming from queue(%s): %s", queue, err.Error())
	}

	for msg := range msgs {
		var data map[string]interface{}
		if err := json.Unmarshal(msg.Body, &data); err != nil {
			s.logger.Sugar().Errorf("failed to unmarshal json in queue(%s): %s", queue, err.Error())
			msg.Nack(false, false)
			continue
		}

		petIDFloat, exists := data["pet_id"].(float64)
		if !exists {
			s.logger.Sugar().Errorf("'pet_id' field is not provided in queue(%s)", queue)
			msg.Nack(false, false)
			continue
		}
		petID := int64(petIDFloat)

		delete(data, "pet_id")

		if err := s.update(ctx, petID, data); err != nil {
			msg.Nack(false, true)
			continue
		}

		msg.Ack(false)
	}
}

func (s *petCacheService) update(ctx context.Context, id int64, updates map[string]interface{}) error {
	if err := s.repo.Postgres.PetCache.Update(ctx, id, updates); err != nil {
		s.logger.Sugar().Errorf("failed to update cached pet(%d): %s", id, err.Error())
		return ErrInternal
	}

	if err := s.repo.Redis.Default.Del(ctx, redisrepo.PetCacheKey(id)).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete cached pet(%d) from redis: %s", id, err.Error())
	}

	return nil
}
