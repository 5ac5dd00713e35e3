package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/blog-records/internal/model"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RecordCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRecordCache(client, ttl), mr
}

func TestRecordCache_AuthorRoundTrip(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	_, ok := c.GetAuthor(ctx, 1)
	assert.False(t, ok)

	phone := "0123456789"
	c.SetAuthor(ctx, &model.Author{ID: 1, Name: "Banks", PhoneNumber: &phone})
	assert.True(t, mr.Exists("author:1"))

	got, ok := c.GetAuthor(ctx, 1)
	require.True(t, ok)
	assert.Equal(t, "Banks", got.Name)
	assert.Equal(t, phone, *got.PhoneNumber)

	c.InvalidateAuthor(ctx, 1)
	_, ok = c.GetAuthor(ctx, 1)
	assert.False(t, ok)

	assert.Equal(t, Counters{Hits: 1, Misses: 2}, c.Counters())
	c.ResetCounters()
	assert.Equal(t, Counters{}, c.Counters())
}

func TestRecordCache_PostExpires(t *testing.T) {
	c, mr := newTestCache(t, 30*time.Second)
	ctx := context.Background()

	c.SetPost(ctx, &model.Post{ID: 7, Title: "Title"})
	got, ok := c.GetPost(ctx, 7)
	require.True(t, ok)
	assert.Equal(t, "Title", got.Title)

	mr.FastForward(31 * time.Second)
	_, ok = c.GetPost(ctx, 7)
	assert.False(t, ok)
}

func TestRecordCache_CorruptEntryIsMiss(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	require.NoError(t, mr.Set("post:3", "{not json"))

	_, ok := c.GetPost(context.Background(), 3)
	assert.False(t, ok)
}

func TestRecordCache_NilIsNoop(t *testing.T) {
	var c *RecordCache
	ctx := context.Background()

	c.SetAuthor(ctx, &model.Author{ID: 1})
	_, ok := c.GetAuthor(ctx, 1)
	assert.False(t, ok)
	c.InvalidatePost(ctx, 1)
	assert.Equal(t, Counters{}, c.Counters())
}

func TestRecordCache_RedisDownIsMiss(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	mr.Close()

	ctx := context.Background()
	c.SetPost(ctx, &model.Post{ID: 1, Title: "x"})
	_, ok := c.GetPost(ctx, 1)
	assert.False(t, ok)
}
