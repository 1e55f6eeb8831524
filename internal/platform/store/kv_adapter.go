package store

import (
	"context"
	"errors"
	"time"

	perr "farescout/internal/platform/errors"

	"github.com/redis/go-redis/v9"
)

// kvAdapter wraps *redis.Client and implements the KV seam
// every backend failure is mapped to a CacheUnavailable project error so
// callers can uniformly treat it as a soft miss
type kvAdapter struct {
	c *redis.Client
}

func newKVAdapter(c *redis.Client) *kvAdapter { return &kvAdapter{c: c} }

var _ KV = (*kvAdapter)(nil)

func (a *kvAdapter) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := a.c.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, perr.Wrapf(err, perr.ErrorCodeCacheUnavailable, "kv get %s", key)
	}
	return v, true, nil
}

func (a *kvAdapter) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := a.c.Set(ctx, key, value, ttl).Err(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeCacheUnavailable, "kv set %s", key)
	}
	return nil
}

// Ping verifies connectivity with redis
func (a *kvAdapter) Ping(ctx context.Context) error {
	if a == nil || a.c == nil {
		return errors.New("kv: nil adapter")
	}
	return a.c.Ping(ctx).Err()
}

// Close closes the underlying client
func (a *kvAdapter) Close() error { return a.c.Close() }
