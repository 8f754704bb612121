package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/PawBook/post-service/internal/dto"
	"github.com/PawBook/post-service/internal/model"
	"github.com/PawBook/post-service/internal/repository"
	"github.com/PawBook/post-service/internal/repository/postgres"
	"github.com/PawBook/post-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakePostRepo struct {
	created  *model.Post
	findPost *model.Post
	findErr  error

	updateCalled bool
	updateID     int64
	updates      map[string]interface{}
	updateErr    error

	browseLimit  int
	browseOffset int
	userLimit    int
	userOffset   int
	petLimit     int
	petOffset    int
}

func (f *fakePostRepo) Create(ctx context.Context, post *model.Post) error {
	post.ID = 1
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	f.created = post
	return nil
}

func (f *fakePostRepo) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findPost, nil
}

func (f *fakePostRepo) FindBrowse(ctx context.Context, limit int, offset int) ([]*model.Post, error) {
	f.browseLimit, f.browseOffset = limit, offset
	return nil, nil
}

func (f *fakePostRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.Post, error) {
	f.userLimit, f.userOffset = limit, offset
	return nil, nil
}

func (f *fakePostRepo) FindByPetID(ctx context.Context, petID int64, limit int, offset int) ([]*model.Post, error) {
	f.petLimit, f.petOffset = limit, offset
	return nil, nil
}

func (f *fakePostRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) (*model.Post, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updateCalled = true
	f.updateID = id
	f.updates = updates
	return f.findPost, nil
}

type fakeCommentRepo struct {
	count int64
}

func (f *fakeCommentRepo) CountByPostID(ctx context.Context, postID int64) (int64, error) {
	return f.count, nil
}

type fakeIndex struct {
	indexed    []model.PostDocument
	indexErr   error
	searchFrom int
	searchSize int
	searchDocs []model.PostDocument
}

func (f *fakeIndex) IndexPost(ctx context.Context, doc model.PostDocument) error {
	if f.indexErr != nil {
		return f.indexErr
	}
	f.indexed = append(f.indexed, doc)
	return nil
}

func (f *fakeIndex) SearchPosts(ctx context.Context, query string, from int, size int) ([]model.PostDocument, error) {
	f.searchFrom, f.searchSize = from, size
	return f.searchDocs, nil
}

type fakeUserCache struct {
	user *model.User
	err  error
}

func (f *fakeUserCache) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return f.user, f.err
}

func (f *fakeUserCache) StartConsume(ctx context.Context) {}

type fakePetCache struct {
	pets []*model.Pet
	ids  []int64
}

func (f *fakePetCache) FindByIDs(ctx context.Context, ids []int64) ([]*model.Pet, error) {
	f.ids = ids
	return f.pets, nil
}

func (f *fakePetCache) StartConsume(ctx context.Context) {}

type fakeRedis struct {
	deleted []string
}

func (f *fakeRedis) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.deleted = append(f.deleted, keys...)
	return redis.NewIntResult(0, nil)
}

type postFixture struct {
	svc      Post
	posts    *fakePostRepo
	comments *fakeCommentRepo
	index    *fakeIndex
	pets     *fakePetCache
	users    *fakeUserCache
	redis    *fakeRedis
}

func newPostFixture() *postFixture {
	posts := &fakePostRepo{}
	comments := &fakeCommentRepo{}
	index := &fakeIndex{}
	users := &fakeUserCache{user: &model.User{ID: uuid.New(), FirstName: "Jane", LastName: "Doe"}}
	pets := &fakePetCache{}
	rdb := &fakeRedis{}

	repo := &repository.Repository{
		Postgres: &postgres.PostgresRepository{Post: posts, Comment: comments},
		Redis:    &redisrepo.RedisRepository{Default: rdb},
	}

	return &postFixture{
		svc:      newPostService(zap.NewNop(), repo, index, users, pets),
		posts:    posts,
		comments: comments,
		index:    index,
		pets:     pets,
		users:    users,
		redis:    rdb,
	}
}

func TestCreate_ParsesMentionsAndTags(t *testing.T) {
	f := newPostFixture()
	f.pets.pets = []*model.Pet{{ID: 3, Name: "Rex"}, {ID: 7, Name: "Bella"}}

	doc, err := f.svc.Create(context.Background(), f.users.user.ID, dto.CreatePostRequest{
		Caption:  "Look at my dog #cute #dog_lover",
		Mentions: "3,7",
	})
	require.NoError(t, err)

	require.Len(t, f.posts.created.Mentions, 2)
	assert.Equal(t, int64(3), f.posts.created.Mentions[0].PetID)
	assert.Equal(t, int64(7), f.posts.created.Mentions[1].PetID)

	require.Len(t, f.posts.created.Tags, 2)
	assert.Equal(t, "#cute", f.posts.created.Tags[0].Tag)
	assert.Equal(t, "#dog_lover", f.posts.created.Tags[1].Tag)

	assert.Equal(t, []string{"Rex", "Bella"}, doc.PetNames)
	assert.Equal(t, "Jane Doe", doc.UserName)
	require.Len(t, f.index.indexed, 1)
	assert.Equal(t, doc.ID, f.index.indexed[0].ID)
}

func TestCreate_DuplicateTagsAreKept(t *testing.T) {
	f := newPostFixture()

	_, err := f.svc.Create(context.Background(), f.users.user.ID, dto.CreatePostRequest{
		Caption: "#dog says #dog twice, #Dog does not count",
	})
	require.NoError(t, err)

	require.Len(t, f.posts.created.Tags, 2)
	assert.Equal(t, "#dog", f.posts.created.Tags[0].Tag)
	assert.Equal(t, "#dog", f.posts.created.Tags[1].Tag)
}

func TestCreate_EmptyMentionEntriesAreSkipped(t *testing.T) {
	f := newPostFixture()

	for _, mentions := range []string{"", ",", ",,"} {
		_, err := f.svc.Create(context.Background(), f.users.user.ID, dto.CreatePostRequest{
			Caption:  "no mentions here",
			Mentions: mentions,
		})
		require.NoError(t, err)
		assert.Empty(t, f.posts.created.Mentions)
	}
}

func TestCreate_InvalidMentionFailsTheRequest(t *testing.T) {
	f := newPostFixture()

	_, err := f.svc.Create(context.Background(), f.users.user.ID, dto.CreatePostRequest{
		Caption:  "bad mention list",
		Mentions: "3,rex",
	})
	require.ErrorIs(t, err, ErrInvalidMention)
	assert.Nil(t, f.posts.created)
}

func TestCreate_IndexFailureDoesNotFailCreation(t *testing.T) {
	f := newPostFixture()
	f.index.indexErr = errors.New("search index unreachable")

	doc, err := f.svc.Create(context.Background(), f.users.user.ID, dto.CreatePostRequest{
		Caption: "still works #fine",
	})
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.NotNil(t, f.posts.created)
}

func TestFindByID_NotFound(t *testing.T) {
	f := newPostFixture()
	f.posts.findErr = gorm.ErrRecordNotFound

	_, err := f.svc.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestFindByID_IncludesLiveCommentCount(t *testing.T) {
	f := newPostFixture()
	f.posts.findPost = &model.Post{ID: 42}
	f.comments.count = 5

	post, err := f.svc.FindByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(5), post.TotalComments)
}

func TestCountComments_MissingPostYieldsZero(t *testing.T) {
	f := newPostFixture()

	count, err := f.svc.CountComments(context.Background(), 9999)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUpdate_NonOwnerIsRejected(t *testing.T) {
	f := newPostFixture()
	f.posts.findPost = &model.Post{ID: 1, UserID: uuid.New()}

	caption := "hijacked"
	_, err := f.svc.Update(context.Background(), 1, uuid.New(), dto.UpdatePostRequest{Caption: &caption})
	require.ErrorIs(t, err, ErrNotPostOwner)
	assert.False(t, f.posts.updateCalled)
}

func TestUpdate_NotFound(t *testing.T) {
	f := newPostFixture()
	f.posts.findErr = gorm.ErrRecordNotFound

	_, err := f.svc.Update(context.Background(), 1, uuid.New(), dto.UpdatePostRequest{})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestUpdate_OnlyAllowListedFieldsAreApplied(t *testing.T) {
	f := newPostFixture()
	owner := uuid.New()
	f.posts.findPost = &model.Post{ID: 1, UserID: owner}

	caption := "new caption"
	mediaURL := "https://cdn.example.com/dog.png"
	_, err := f.svc.Update(context.Background(), 1, owner, dto.UpdatePostRequest{
		Caption:  &caption,
		MediaURL: &mediaURL,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{
		"caption":   "new caption",
		"media_URL": "https://cdn.example.com/dog.png",
	}, f.posts.updates)
}

func TestSearch_Pagination(t *testing.T) {
	f := newPostFixture()

	_, err := f.svc.Search(context.Background(), "rex", 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, f.index.searchFrom)
	assert.Equal(t, 10, f.index.searchSize)
}

func TestSearch_Defaults(t *testing.T) {
	f := newPostFixture()

	_, err := f.svc.Search(context.Background(), "rex", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, f.index.searchFrom)
	assert.Equal(t, DEFAULT_EXPLORE_LIMIT, f.index.searchSize)
}

func TestBrowse_Pagination(t *testing.T) {
	f := newPostFixture()

	_, err := f.svc.Browse(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, f.posts.browseLimit)
	assert.Equal(t, 10, f.posts.browseOffset)

	_, err = f.svc.Browse(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, DEFAULT_EXPLORE_LIMIT, f.posts.browseLimit)
	assert.Equal(t, 0, f.posts.browseOffset)
}

func TestListings_DefaultLimit(t *testing.T) {
	f := newPostFixture()

	_, err := f.svc.FindUserPosts(context.Background(), uuid.New(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, DEFAULT_LISTING_LIMIT, f.posts.userLimit)
	assert.Equal(t, 0, f.posts.userOffset)

	_, err = f.svc.FindPetPosts(context.Background(), 7, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, f.posts.petLimit)
	assert.Equal(t, 4, f.posts.petOffset)
}

func TestReport_SetsWarning(t *testing.T) {
	f := newPostFixture()
	f.posts.findPost = &model.Post{ID: 1}

	_, err := f.svc.Report(context.Background(), 1, "image_status")
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"image_status": model.StatusWarning}, f.posts.updates)
}

func TestReport_UnknownType(t *testing.T) {
	f := newPostFixture()

	_, err := f.svc.Report(context.Background(), 1, "upvote")
	assert.ErrorIs(t, err, ErrUnknownReportType)
	assert.False(t, f.posts.updateCalled)
}

func TestUpdateStatus_OverwritesBothFields(t *testing.T) {
	f := newPostFixture()
	f.posts.findPost = &model.Post{ID: 1}

	_, err := f.svc.UpdateStatus(context.Background(), 1, "warning", "normal")
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"image_status":   "warning",
		"caption_status": "normal",
	}, f.posts.updates)
}

func TestMutationsInvalidateCachedPost(t *testing.T) {
	f := newPostFixture()
	owner := uuid.New()
	f.posts.findPost = &model.Post{ID: 1, UserID: owner}

	caption := "fresh caption"
	_, err := f.svc.Update(context.Background(), 1, owner, dto.UpdatePostRequest{Caption: &caption})
	require.NoError(t, err)

	_, err = f.svc.Report(context.Background(), 1, "image_status")
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), 1, "warning", "normal")
	require.NoError(t, err)

	key := redisrepo.PostKey(1)
	assert.Equal(t, []string{key, key, key}, f.redis.deleted)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	f := newPostFixture()
	f.posts.updateErr = gorm.ErrRecordNotFound

	_, err := f.svc.UpdateStatus(context.Background(), 404, "warning", "warning")
	assert.ErrorIs(t, err, ErrPostNotFound)
}
