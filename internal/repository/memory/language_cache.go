package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LanguageCache remembers the preferred reply language per widget session.
// Redis-backed with TTL so the hint survives instance restarts and is shared
// across replicas. It is a pure optimization: any failure degrades to the
// site default, never to an error.
type LanguageCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewLanguageCache(rdb *redis.Client, ttl time.Duration) *LanguageCache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &LanguageCache{rdb: rdb, ttl: ttl}
}

func (c *LanguageCache) key(sessionId string) string {
	return fmt.Sprintf("widget:lang:%s", sessionId)
}

// Get returns the cached language code, or "" when unknown or unreachable.
func (c *LanguageCache) Get(ctx context.Context, sessionId string) string {
	if c.rdb == nil {
		return ""
	}
	val, err := c.rdb.Get(ctx, c.key(sessionId)).Result()
	if err != nil {
		return ""
	}
	return val
}

// Set stores the language code, refreshing the TTL. Errors are discarded.
func (c *LanguageCache) Set(ctx context.Context, sessionId, lang string) {
	if c.rdb == nil || lang == "" {
		return
	}
	_ = c.rdb.Set(ctx, c.key(sessionId), lang, c.ttl).Err()
}
