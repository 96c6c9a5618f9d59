package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Aside implements the cache-aside pattern: on hit, dest is populated from
// the cached JSON; on miss, fetch runs and its result (already written into
// dest by the caller's closure) is stored under key with the given TTL.
// When no Redis client is configured, fetch always runs and nothing is cached.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, fetch func() error) error {
	if client == nil {
		return fetch()
	}

	raw, err := client.Get(ctx, key).Result()
	if err == nil {
		if unmarshalErr := json.Unmarshal([]byte(raw), dest); unmarshalErr == nil {
			return nil
		}
		// Corrupt entry: drop it and fall through to the fetch path.
		client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		// Redis unavailable: serve from the source rather than failing the request.
		return fetch()
	}

	if err := fetch(); err != nil {
		return err
	}

	buf, err := json.Marshal(dest)
	if err != nil {
		// The fetched value is still valid even if it cannot be cached.
		return nil
	}
	client.Set(ctx, key, buf, ttl)
	return nil
}
