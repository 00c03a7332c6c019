package slugcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"docvoice/internal/config"
	"docvoice/internal/domain/docmodel"
	"docvoice/pkg/logx"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "slug:"

// Cache is a read-through redis cache in front of the relational slug
// lookup. Cache failures degrade to store reads, they never fail a request.
type Cache struct {
	client *redis.Client
	store  docmodel.Store
	ttl    time.Duration
	logger *logx.Logger
}

func New(client *redis.Client, store docmodel.Store, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = config.SlugCacheTTL
	}
	return &Cache{
		client: client,
		store:  store,
		ttl:    ttl,
		logger: logx.New("slug_cache"),
	}
}

// Connect builds the redis client the cache rides on.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:                  addr,
		ContextTimeoutEnabled: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis failed: %w", err)
	}
	return client, nil
}

func (c *Cache) GetShareSurfaceBySlug(ctx context.Context, slug string) (docmodel.ShareSurface, bool, error) {
	log := c.logger.WithTrace(ctx, config.TraceIDKey)

	if c.client != nil {
		raw, err := c.client.Get(ctx, keyPrefix+slug).Result()
		if err == nil {
			var surface docmodel.ShareSurface
			if err := json.Unmarshal([]byte(raw), &surface); err == nil {
				return surface, true, nil
			}
			log.Warn("corrupt slug cache entry", "slug", slug)
		} else if err != redis.Nil {
			log.Warn("slug cache read failed", "error", err.Error())
		}
	}

	surface, found, err := c.store.GetShareSurfaceBySlug(ctx, slug)
	if err != nil || !found {
		return surface, found, err
	}

	if c.client != nil {
		if raw, err := json.Marshal(surface); err == nil {
			if err := c.client.Set(ctx, keyPrefix+slug, raw, c.ttl).Err(); err != nil {
				log.Warn("slug cache write failed", "error", err.Error())
			}
		}
	}
	return surface, true, nil
}

// Invalidate drops a slug's cached entry, called after a re-ingest moves
// the live version pointer.
func (c *Cache) Invalidate(ctx context.Context, slug string) {
	if c.client == nil || slug == "" {
		return
	}
	if err := c.client.Del(ctx, keyPrefix+slug).Err(); err != nil {
		c.logger.WithTrace(ctx, config.TraceIDKey).Warn("slug cache invalidate failed", "error", err.Error())
	}
}
