package source

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"leadboard/internal/model"
)

const cacheKey = "leadboard:leads"

// Cache wraps a Source with a Redis read-through cache.
type Cache struct {
	base  Source
	redis *redis.Client
	ttl   time.Duration
}

func NewCache(base Source, client *redis.Client, ttl time.Duration) *Cache {
	if base == nil {
		panic("source.NewCache: base source is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Cache{base: base, redis: client, ttl: ttl}
}

func (c *Cache) FetchLeads(ctx context.Context) ([]model.Lead, error) {
	if leads, ok := c.load(ctx); ok {
		return leads, nil
	}

	leads, err := c.base.FetchLeads(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, leads)
	return leads, nil
}

// Invalidate drops the cached batch so the next fetch hits the base source.
func (c *Cache) Invalidate(ctx context.Context) error {
	if c.redis == nil {
		return nil
	}
	return c.redis.Del(ctx, cacheKey).Err()
}

func (c *Cache) load(ctx context.Context) ([]model.Lead, bool) {
	if c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, cacheKey).Bytes()
	if err != nil {
		// miss or unreachable redis: fall back to the base source
		return nil, false
	}
	var leads []model.Lead
	if err := sonic.Unmarshal(data, &leads); err != nil {
		// corrupt entry
		_ = c.redis.Del(ctx, cacheKey).Err()
		return nil, false
	}
	return leads, true
}

func (c *Cache) store(ctx context.Context, leads []model.Lead) {
	if c.redis == nil {
		return
	}
	data, err := sonic.Marshal(leads)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, cacheKey, data, c.ttl).Err()
}
