package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheVersionKey = "events:version"

// Cache wraps Redis based caching of the public events listing with
// versioning controls: mutations bump the version instead of deleting
// keys, so stale entries simply expire.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper. A nil client disables caching.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Version returns the current cache version, initialising when missing.
func (c *Cache) Version(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.Set(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// Bump invalidates all cached listings by advancing the version.
func (c *Cache) Bump(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, cacheVersionKey).Err()
}

func (c *Cache) key(ver int64) string {
	return fmt.Sprintf("events:public:v%d", ver)
}

// GetPublic returns the cached public listing, or ok=false on miss.
func (c *Cache) GetPublic(ctx context.Context) ([]Event, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	ver, err := c.Version(ctx)
	if err != nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, c.key(ver)).Bytes()
	if err != nil {
		return nil, false
	}
	var events []Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, false
	}
	return events, true
}

// SetPublic stores the public listing under the current version.
func (c *Cache) SetPublic(ctx context.Context, events []Event) {
	if c == nil || c.client == nil {
		return
	}
	ver, err := c.Version(ctx)
	if err != nil {
		return
	}
	raw, err := json.Marshal(events)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.key(ver), raw, c.ttl).Err()
}
