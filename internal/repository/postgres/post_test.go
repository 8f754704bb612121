package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/PawBook/post-service/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// named per-test so the in-memory database survives pool reconnects
	// without leaking between tests
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Pet{},
		&model.Post{},
		&model.Mention{},
		&model.PostTag{},
		&model.Comment{},
	))

	return db
}

func seedOwner(t *testing.T, db *gorm.DB) model.User {
	t.Helper()

	owner := model.User{ID: uuid.New(), FirstName: "Jane", LastName: "Doe", Avatar: "https://cdn.example.com/jane.png"}
	require.NoError(t, db.Create(&owner).Error)
	return owner
}

func TestPostRepo_CreateWithAssociations(t *testing.T) {
	db := newTestDB(t)
	repo := newPostRepo(db)
	owner := seedOwner(t, db)
	ctx := context.Background()

	post := model.Post{
		UserID:   owner.ID,
		Caption:  "walkies #park #park",
		Mentions: []model.Mention{{PetID: 3}, {PetID: 7}},
		Tags:     []model.PostTag{{Tag: "#park"}, {Tag: "#park"}},
	}
	require.NoError(t, repo.Create(ctx, &post))
	require.NotZero(t, post.ID)

	found, err := repo.FindByID(ctx, post.ID)
	require.NoError(t, err)

	require.Len(t, found.Mentions, 2)
	assert.Equal(t, int64(3), found.Mentions[0].PetID)
	assert.Equal(t, int64(7), found.Mentions[1].PetID)
	require.Len(t, found.Tags, 2)
	assert.Equal(t, "#park", found.Tags[0].Tag)

	require.NotNil(t, found.User)
	assert.Equal(t, "Jane", found.User.FirstName)
	assert.Equal(t, "Doe", found.User.LastName)
}

func TestPostRepo_CreateIgnoresNonAllowListedFields(t *testing.T) {
	db := newTestDB(t)
	repo := newPostRepo(db)
	owner := seedOwner(t, db)
	ctx := context.Background()

	post := model.Post{
		UserID:  owner.ID,
		Caption: "forged counters",
		Upvote:  9999,
		Pos:     "warning",
	}
	require.NoError(t, repo.Create(ctx, &post))

	found, err := repo.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Zero(t, found.Upvote)
	assert.Equal(t, "allowed", found.Pos)
	assert.Equal(t, model.StatusNormal, found.ImageStatus)
	assert.Equal(t, model.StatusNormal, found.CaptionStatus)
}

func TestPostRepo_FindByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := newPostRepo(db)

	_, err := repo.FindByID(context.Background(), 404)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPostRepo_FindByPetID(t *testing.T) {
	db := newTestDB(t)
	repo := newPostRepo(db)
	owner := seedOwner(t, db)
	ctx := context.Background()

	withPet := model.Post{UserID: owner.ID, Caption: "with rex", Mentions: []model.Mention{{PetID: 7}}}
	require.NoError(t, repo.Create(ctx, &withPet))
	withoutPet := model.Post{UserID: owner.ID, Caption: "no pets"}
	require.NoError(t, repo.Create(ctx, &withoutPet))

	posts, err := repo.FindByPetID(ctx, 7, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, withPet.ID, posts[0].ID)
	require.Len(t, posts[0].Mentions, 1)
	assert.Equal(t, int64(7), posts[0].Mentions[0].PetID)
}

func TestPostRepo_FindBrowse_OrderAndPagination(t *testing.T) {
	db := newTestDB(t)
	repo := newPostRepo(db)
	owner := seedOwner(t, db)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var ids []int64
	for i := 0; i < 3; i++ {
		post := model.Post{UserID: owner.ID, Caption: "post"}
		require.NoError(t, repo.Create(ctx, &post))
		require.NoError(t, db.Model(&model.Post{}).
			Where("id = ?", post.ID).
			UpdateColumn("updated_at", base.Add(time.Duration(i)*time.Minute)).Error)
		ids = append(ids, post.ID)
	}

	// oldest update first
	posts, err := repo.FindBrowse(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, ids[0], posts[0].ID)
	assert.Equal(t, ids[1], posts[1].ID)

	posts, err = repo.FindBrowse(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, ids[2], posts[0].ID)
}

func TestPostRepo_Update(t *testing.T) {
	db := newTestDB(t)
	repo := newPostRepo(db)
	owner := seedOwner(t, db)
	ctx := context.Background()

	post := model.Post{UserID: owner.ID, Caption: "before", Mentions: []model.Mention{{PetID: 3}}}
	require.NoError(t, repo.Create(ctx, &post))

	updated, err := repo.Update(ctx, post.ID, map[string]interface{}{"caption": "after"})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Caption)
	// mentions are immutable after creation
	require.Len(t, updated.Mentions, 1)
	assert.Equal(t, int64(3), updated.Mentions[0].PetID)
}

func TestPostRepo_Update_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := newPostRepo(db)

	_, err := repo.Update(context.Background(), 404, map[string]interface{}{"caption": "x"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCommentRepo_CountByPostID(t *testing.T) {
	db := newTestDB(t)
	repo := newCommentRepo(db)
	ctx := context.Background()

	// unknown post id yields zero, not an error
	count, err := repo.CountByPostID(ctx, 404)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, db.Create(&model.Comment{PostID: 1, UserID: uuid.New(), Content: "cute!"}).Error)
	require.NoError(t, db.Create(&model.Comment{PostID: 1, UserID: uuid.New(), Content: "so fluffy"}).Error)

	count, err = repo.CountByPostID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestUserCacheRepo_Upsert(t *testing.T) {
	db := newTestDB(t)
	repo := newUserCacheRepo(db)
	ctx := context.Background()

	id := uuid.New()
	require.NoError(t, repo.Upsert(ctx, model.User{ID: id, FirstName: "Jane", LastName: "Doe"}))
	require.NoError(t, repo.Upsert(ctx, model.User{ID: id, FirstName: "Janet", LastName: "Doe"}))

	user, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Janet", user.FirstName)
}

func TestUserCacheRepo_UpdateRejectsUnknownFields(t *testing.T) {
	db := newTestDB(t)
	repo := newUserCacheRepo(db)
	ctx := context.Background()

	id := uuid.New()
	require.NoError(t, repo.Upsert(ctx, model.User{ID: id, FirstName: "Jane"}))

	err := repo.Update(ctx, id, map[string]interface{}{"id": uuid.New().String()})
	assert.ErrorIs(t, err, ErrFieldsNotAllowedToUpdate)
}

func TestPetCacheRepo_FindByIDs(t *testing.T) {
	db := newTestDB(t)
	repo := newPetCacheRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, model.Pet{ID: 3, OwnerID: uuid.New(), Name: "Rex"}))
	require.NoError(t, repo.Upsert(ctx, model.Pet{ID: 7, OwnerID: uuid.New(), Name: "Bella"}))

	pets, err := repo.FindByIDs(ctx, []int64{3, 7, 404})
	require.NoError(t, err)
	require.Len(t, pets, 2)

	pets, err = repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, pets)
}
