package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PawBook/post-service/internal/dto"
	"github.com/PawBook/post-service/internal/model"
	"github.com/PawBook/post-service/internal/repository"
	"github.com/PawBook/post-service/internal/repository/redisrepo"
	"github.com/PawBook/post-service/internal/search"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// hashtagPattern is case-sensitive: uppercase letters end a tag.
var hashtagPattern = regexp.MustCompile(`#[a-z0-9_]+`)

// reportableFields are the only columns the report endpoint may touch.
var reportableFields = map[string]struct{}{
	"image_status":   {},
	"caption_status": {},
}

type postService struct {
	logger    *zap.Logger
	repo      *repository.Repository
	index     search.Index
	userCache UserCache
	petCache  PetCache
}

func newPostService(logger *zap.Logger, repo *repository.Repository, index search.Index, userCache UserCache, petCache PetCache) Post {
	return &postService{
		logger:    logger,
		repo:      repo,
		index:     index,
		userCache: userCache,
		petCache:  petCache,
	}
}

// Create parses mentions and hashtags out of the payload, persists the
// post with its association rows in one transaction, then mirrors the
// denormalized record into the search index. The mirror write is
// best-effort: its failure is logged and the creation still succeeds,
// leaving the primary store as the source of truth.
func (s *postService) Create(ctx context.Context, userID uuid.UUID, input dto.CreatePostRequest) (*model.PostDocument, error) {
	mentions, err := parseMentions(input.Mentions)
	if err != nil {
		return nil, err
	}

	post := model.Post{
		UserID:   userID,
		MediaURL: input.MediaURL,
		Caption:  input.Caption,
		Mentions: mentions,
		Tags:     parseTags(input.Caption),
	}

	if err := s.repo.Postgres.Post.Create(ctx, &post); err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) post: %s", userID.String(), err.Error())
		return nil, err
	}

	petNames, err := s.resolvePetNames(ctx, post.Mentions)
	if err != nil {
		s.logger.Sugar().Errorf("failed to resolve pet names for post(%d): %s", post.ID, err.Error())
		return nil, err
	}

	user, err := s.userCache.FindByID(ctx, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to resolve owner(%s) of post(%d): %s", userID.String(), post.ID, err.Error())
		return nil, err
	}

	doc := model.NewPostDocument(&post, petNames, user.DisplayName())

	if err := s.index.IndexPost(ctx, *doc); err != nil {
		s.logger.Sugar().Errorf("failed to index post(%d): %s", post.ID, err.Error())
	}

	return doc, nil
}

func (s *postService) resolvePetNames(ctx context.Context, mentions []model.Mention) ([]string, error) {
	petIDs := make([]int64, 0, len(mentions))
	for _, mention := range mentions {
		petIDs = append(petIDs, mention.PetID)
	}

	pets, err := s.petCache.FindByIDs(ctx, petIDs)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(pets))
	for _, pet := range pets {
		names = append(names, pet.Name)
	}

	return names, nil
}

func parseMentions(raw string) ([]model.Mention, error) {
	var mentions []model.Mention
	for _, entry := range strings.Split(raw, ",") {
		if entry == "" {
			continue
		}

		petID, err := strconv.ParseInt(entry, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMention, entry)
		}

		mentions = append(mentions, model.Mention{PetID: petID})
	}

	return mentions, nil
}

func parseTags(caption string) []model.PostTag {
	matches := hashtagPattern.FindAllString(caption, -1)

	tags := make([]model.PostTag, 0, len(matches))
	for _, match := range matches {
		tags = append(tags, model.PostTag{Tag: match})
	}

	return tags
}

// FindByID serves a cached copy of the post when one exists; the
// comment count is always fetched live so it never goes stale.
func (s *postService) FindByID(ctx context.Context, id int64) (*model.FullPost, error) {
	cachedPost, err := redisrepo.Get[model.Post](s.repo.Redis.Default, ctx, redisrepo.PostKey(id))
	if err == nil && cachedPost != nil {
		return s.withCommentCount(ctx, cachedPost)
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get post(%d) from redis: %s", id, err.Error())
		return nil, err
	}

	post, err := s.repo.Postgres.Post.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to find post(%d) from postgres: %s", id, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.PostKey(id), post, time.Hour); err != nil {
		s.logger.Sugar().Errorf("failed to set post(%d) in redis: %s", id, err.Error())
		return nil, ErrInternal
	}

	return s.withCommentCount(ctx, post)
}

func (s *postService) withCommentCount(ctx context.Context, post *model.Post) (*model.FullPost, error) {
	total, err := s.repo.Postgres.Comment.CountByPostID(ctx, post.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count comments of post(%d): %s", post.ID, err.Error())
		return nil, ErrInternal
	}

	return &model.FullPost{Post: *post, TotalComments: total}, nil
}

// Search delegates to the search index and returns the indexed
// documents as they were at creation time, with no freshness guarantee.
func (s *postService) Search(ctx context.Context, query string, page int, limit int) ([]model.PostDocument, error) {
	if limit <= 0 {
		limit = DEFAULT_EXPLORE_LIMIT
	}

	docs, err := s.index.SearchPosts(ctx, query, offset(page, limit), limit)
	if err != nil {
		s.logger.Sugar().Errorf("failed to search posts(%q): %s", query, err.Error())
		return nil, err
	}

	return docs, nil
}

// Browse is the no-search-term explore mode: live rows ordered by last
// update, oldest first.
func (s *postService) Browse(ctx context.Context, page int, limit int) ([]*model.Post, error) {
	if limit <= 0 {
		limit = DEFAULT_EXPLORE_LIMIT
	}

	posts, err := s.repo.Postgres.Post.FindBrowse(ctx, limit, offset(page, limit))
	if err != nil {
		s.logger.Sugar().Errorf("failed to browse posts: %s", err.Error())
		return nil, err
	}

	return posts, nil
}

func (s *postService) FindUserPosts(ctx context.Context, userID uuid.UUID, page int, limit int) ([]*model.Post, error) {
	if limit <= 0 {
		limit = DEFAULT_LISTING_LIMIT
	}

	posts, err := s.repo.Postgres.Post.FindByUserID(ctx, userID, limit, offset(page, limit))
	if err != nil {
		s.logger.Sugar().Errorf("failed to find user(%s) posts: %s", userID.String(), err.Error())
		return nil, err
	}

	return posts, nil
}

func (s *postService) FindPetPosts(ctx context.Context, petID int64, page int, limit int) ([]*model.Post, error) {
	if limit <= 0 {
		limit = DEFAULT_LISTING_LIMIT
	}

	posts, err := s.repo.Postgres.Post.FindByPetID(ctx, petID, limit, offset(page, limit))
	if err != nil {
		s.logger.Sugar().Errorf("failed to find pet(%d) posts: %s", petID, err.Error())
		return nil, err
	}

	return posts, nil
}

func offset(page int, limit int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * limit
}

// Update applies allow-listed fields to an owned post. The search
// index is deliberately not touched on this path, so the indexed copy
// drifts from the row until the post is re-created.
func (s *postService) Update(ctx context.Context, id int64, callerID uuid.UUID, input dto.UpdatePostRequest) (*model.Post, error) {
	post, err := s.repo.Postgres.Post.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to find post(%d) from postgres: %s", id, err.Error())
		return nil, ErrInternal
	}

	if post.UserID != callerID {
		return nil, ErrNotPostOwner
	}

	updates := make(map[string]interface{})
	if input.Caption != nil {
		updates["caption"] = *input.Caption
	}
	if input.MediaURL != nil {
		updates["media_URL"] = *input.MediaURL
	}

	updated, err := s.repo.Postgres.Post.Update(ctx, id, updates)
	if err != nil {
		s.logger.Sugar().Errorf("failed to update post(%d): %s", id, err.Error())
		return nil, err
	}

	s.invalidate(ctx, id)

	return updated, nil
}

// Report flips the named status field to "warning". There is no
// ownership or role check on this path.
func (s *postService) Report(ctx context.Context, id int64, statusField string) (*model.Post, error) {
	if _, ok := reportableFields[statusField]; !ok {
		return nil, ErrUnknownReportType
	}

	updated, err := s.repo.Postgres.Post.Update(ctx, id, map[string]interface{}{statusField: model.StatusWarning})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to report post(%d): %s", id, err.Error())
		return nil, err
	}

	s.invalidate(ctx, id)

	return updated, nil
}

// UpdateStatus overwrites both status fields with whatever the caller
// sent, coerced to text. No ownership or role check here either.
func (s *postService) UpdateStatus(ctx context.Context, id int64, imageStatus string, captionStatus string) (*model.Post, error) {
	updated, err := s.repo.Postgres.Post.Update(ctx, id, map[string]interface{}{
		"image_status":   imageStatus,
		"caption_status": captionStatus,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to update post(%d) status: %s", id, err.Error())
		return nil, err
	}

	s.invalidate(ctx, id)

	return updated, nil
}

func (s *postService) CountComments(ctx context.Context, postID int64) (int64, error) {
	count, err := s.repo.Postgres.Comment.CountByPostID(ctx, postID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count comments of post(%d): %s", postID, err.Error())
		return 0, err
	}

	return count, nil
}

func (s *postService) invalidate(ctx context.Context, id int64) {
	if err := s.repo.Redis.Default.Del(ctx, redisrepo.PostKey(id)).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete post(%d) from redis: %s", id, err.Error())
	}
}
