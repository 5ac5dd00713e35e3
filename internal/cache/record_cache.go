package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/d60-Lab/blog-records/internal/model"
)

// RecordCache is a read-through cache for single records keyed by id.
// Writes are best effort: a Redis failure never fails the caller, it only costs a DB read.
// A nil *RecordCache is valid and caches nothing.
type RecordCache struct {
	client *redis.Client
	ttl    time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

func NewRecordCache(client *redis.Client, ttl time.Duration) *RecordCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RecordCache{client: client, ttl: ttl}
}

func authorKey(id uint) string { return fmt.Sprintf("author:%d", id) }
func postKey(id uint) string   { return fmt.Sprintf("post:%d", id) }

func (c *RecordCache) GetAuthor(ctx context.Context, id uint) (*model.Author, bool) {
	return getJSON[model.Author](ctx, c, authorKey(id))
}

func (c *RecordCache) SetAuthor(ctx context.Context, a *model.Author) {
	c.setJSON(ctx, authorKey(a.ID), a)
}

func (c *RecordCache) InvalidateAuthor(ctx context.Context, id uint) {
	c.del(ctx, authorKey(id))
}

func (c *RecordCache) GetPost(ctx context.Context, id uint) (*model.Post, bool) {
	return getJSON[model.Post](ctx, c, postKey(id))
}

func (c *RecordCache) SetPost(ctx context.Context, p *model.Post) {
	c.setJSON(ctx, postKey(p.ID), p)
}

func (c *RecordCache) InvalidatePost(ctx context.Context, id uint) {
	c.del(ctx, postKey(id))
}

func getJSON[T any](ctx context.Context, c *RecordCache, key string) (*T, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		c.misses.Add(1)
		return nil, false
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return &out, true
}

func (c *RecordCache) setJSON(ctx context.Context, key string, v any) {
	if c == nil {
		return
	}
	if payload, err := json.Marshal(v); err == nil {
		_ = c.client.Set(ctx, key, payload, c.ttl).Err()
	}
}

func (c *RecordCache) del(ctx context.Context, key string) {
	if c == nil {
		return
	}
	_ = c.client.Del(ctx, key).Err()
}

// Counters reports cache hits and misses since creation or the last reset.
func (c *RecordCache) Counters() Counters {
	if c == nil {
		return Counters{}
	}
	return Counters{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

func (c *RecordCache) ResetCounters() {
	if c == nil {
		return
	}
	c.hits.Store(0)
	c.misses.Store(0)
}

type Counters struct {
	Hits   int64
	Misses int64
}
