package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/blog-records/internal/model"
	"github.com/d60-Lab/blog-records/internal/testutil"
)

func TestPostRepository_CRUD(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	content := strings.Repeat("x", 250)
	p, err := model.NewPost("Valid Title", &content, testutil.Ptr("ok"), testutil.Ptr(model.CategoryFiction))
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, p))
	assert.NotZero(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Valid Title", got.Title)
	assert.Equal(t, content, *got.Content)
	assert.Equal(t, "ok", *got.Summary)
	assert.Equal(t, "Fiction", *got.Category)

	require.NoError(t, got.SetCategory(nil))
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Category)

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), ErrNotFound)
}

func TestPostRepository_RejectsInvalidDirectWrites(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)

	err := repo.Create(context.Background(), &model.Post{Title: "Why this fails"})
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))

	cnt, err := repo.Count(context.Background(), PostFilter{})
	require.NoError(t, err)
	assert.Zero(t, cnt)
}

func TestPostRepository_ListByCategory(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	cats := []*string{testutil.Ptr("Fiction"), testutil.Ptr("Non-Fiction"), nil, testutil.Ptr("Fiction")}
	for i, c := range cats {
		p, err := model.NewPost("Title "+string(rune('A'+i)), nil, nil, c)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, p))
	}

	fiction, err := repo.List(ctx, PostFilter{Category: "Fiction"}, 0, 10)
	require.NoError(t, err)
	require.Len(t, fiction, 2)
	assert.Equal(t, "Title A", fiction[0].Title)
	assert.Equal(t, "Title D", fiction[1].Title)

	n, err := repo.Count(ctx, PostFilter{Category: "Fiction"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	all, err := repo.List(ctx, PostFilter{}, 0, 10)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestRepositories_PersistLongTitleAndName(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	long := strings.Repeat("é", 300)

	a := mustAuthor(t, long, nil)
	require.NoError(t, NewAuthorRepository(db).Create(ctx, a))
	gotAuthor, err := NewAuthorRepository(db).GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, long, gotAuthor.Name)

	p, err := model.NewPost(long, nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, NewPostRepository(db).Create(ctx, p))
	gotPost, err := NewPostRepository(db).GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, long, gotPost.Title)
}
