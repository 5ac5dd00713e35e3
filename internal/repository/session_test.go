package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/blog-records/internal/model"
	"github.com/d60-Lab/blog-records/internal/testutil"
)

func countAuthors(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&model.Author{}).Count(&n).Error)
	return n
}

func TestSession_FlushWritesBatch(t *testing.T) {
	db := testutil.NewDB(t)
	s := NewSession(db)

	a1 := mustAuthor(t, "Vonda", nil)
	a2 := mustAuthor(t, "Joanna", nil)
	content := strings.Repeat("x", 250)
	p, err := model.NewPost("Valid Title", &content, testutil.Ptr("ok"), testutil.Ptr("Fiction"))
	require.NoError(t, err)

	s.Add(a1, a2, p)
	assert.Len(t, s.Pending(), 3)
	require.NoError(t, s.Flush(context.Background()))
	assert.Empty(t, s.Pending())

	assert.NotZero(t, a1.ID)
	assert.NotZero(t, a2.ID)
	assert.NotZero(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
	assert.EqualValues(t, 2, countAuthors(t, db))

	// empty flush is a no-op
	require.NoError(t, s.Flush(context.Background()))
}

func TestSession_DuplicateAgainstStoreAbortsWholeBatch(t *testing.T) {
	db := testutil.NewDB(t)
	require.NoError(t, NewAuthorRepository(db).Create(context.Background(), mustAuthor(t, "Herbert", nil)))

	s := NewSession(db)
	fresh := mustAuthor(t, "Zelazny", nil)
	s.Add(fresh, mustAuthor(t, "Herbert", nil))

	err := s.Flush(context.Background())
	require.Error(t, err)
	assert.True(t, model.IsDuplicateAuthorName(err))
	assert.Zero(t, fresh.ID)
	assert.True(t, fresh.CreatedAt.IsZero())
	assert.Len(t, s.Pending(), 2, "pending kept after failed flush")
	assert.EqualValues(t, 1, countAuthors(t, db), "no partial writes")
}

func TestSession_DuplicateWithinBatch(t *testing.T) {
	db := testutil.NewDB(t)
	s := NewSession(db)
	s.Add(mustAuthor(t, "Sturgeon", nil), mustAuthor(t, "Sturgeon", nil))

	err := s.Flush(context.Background())
	assert.True(t, model.IsDuplicateAuthorName(err))
	assert.EqualValues(t, 0, countAuthors(t, db))
}

func TestSession_HookSeesPendingAndCanVeto(t *testing.T) {
	db := testutil.NewDB(t)
	veto := errors.New("veto")
	var seen int
	s := NewSession(db, func(tx *gorm.DB, pending []any) error {
		seen = len(pending)
		return veto
	})
	s.Add(mustAuthor(t, "Pohl", nil))

	err := s.Flush(context.Background())
	assert.ErrorIs(t, err, veto)
	assert.Equal(t, 1, seen)
	assert.EqualValues(t, 0, countAuthors(t, db))
}

func TestSession_InvalidRecordAbortsBatch(t *testing.T) {
	db := testutil.NewDB(t)
	s := NewSession(db)

	ok := mustAuthor(t, "Kornbluth", nil)
	bad := &model.Author{Name: "   "}
	s.Add(ok, bad)

	err := s.Flush(context.Background())
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))
	assert.Zero(t, ok.ID)
	assert.True(t, ok.CreatedAt.IsZero(), "rolled back insert must not look persisted")
	assert.True(t, ok.UpdatedAt.IsZero())
	assert.EqualValues(t, 0, countAuthors(t, db))
}
