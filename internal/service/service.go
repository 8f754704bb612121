package service

import (
	"context"

	"github.com/PawBook/post-service/internal/dto"
	"github.com/PawBook/post-service/internal/model"
	"github.com/PawBook/post-service/internal/rabbitmq"
	"github.com/PawBook/post-service/internal/repository"
	"github.com/PawBook/post-service/internal/search"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DEFAULT_EXPLORE_LIMIT is the page size used by the explore feed when
// the caller does not pass one. The by-owner/user/pet listings default
// to DEFAULT_LISTING_LIMIT instead. Neither is an upper bound: an
// explicit limit is passed through as-is.
const (
	DEFAULT_EXPLORE_LIMIT = 100
	DEFAULT_LISTING_LIMIT = 1
)

type Post interface {
	Create(ctx context.Context, userID uuid.UUID, input dto.CreatePostRequest) (*model.PostDocument, error)
	FindByID(ctx context.Context, id int64) (*model.FullPost, error)
	Search(ctx context.Context, query string, page int, limit int) ([]model.PostDocument, error)
	Browse(ctx context.Context, page int, limit int) ([]*model.Post, error)
	FindUserPosts(ctx context.Context, userID uuid.UUID, page int, limit int) ([]*model.Post, error)
	FindPetPosts(ctx context.Context, petID int64, page int, limit int) ([]*model.Post, error)
	Update(ctx context.Context, id int64, callerID uuid.UUID, input dto.UpdatePostRequest) (*model.Post, error)
	Report(ctx context.Context, id int64, statusField string) (*model.Post, error)
	UpdateStatus(ctx context.Context, id int64, imageStatus string, captionStatus string) (*model.Post, error)
	CountComments(ctx context.Context, postID int64) (int64, error)
}

type UserCache interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	StartConsume(ctx context.Context)
}

type PetCache interface {
	FindByIDs(ctx context.Context, ids []int64) ([]*model.Pet, error)
	StartConsume(ctx context.Context)
}

type Service struct {
	Post
	UserCache
	PetCache
}

func New(logger *zap.Logger, repo *repository.Repository, mq *rabbitmq.MQConn, index search.Index) *Service {
	userCache := newUserCacheService(logger, repo, mq)
	petCache := newPetCacheService(logger, repo, mq)

	return &Service{
		Post:      newPostService(logger, repo, index, userCache, petCache),
		UserCache: userCache,
		PetCache:  petCache,
	}
}

func (s *Service) StartConsumeAll(ctx context.Context) {
	go s.UserCache.StartConsume(ctx)
	go s.PetCache.StartConsume(ctx)
}
