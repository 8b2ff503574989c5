// Package cache memoizes dgp.Report values. Because Evaluate is a pure
// function (spec §5), an identical (capsule.version, task.id, output,
// baseline) tuple always produces an identical Report; this cache lets a
// host skip recomputation without touching kernel semantics.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgp-systems/compliance-kernel/pkg/dgp"
	"github.com/redis/go-redis/v9"
)

// Key computes the memoization key for a given evaluation input. Get
// reports a cache miss as found = false and returns any Redis-side failure
// as an error.
func Key(capsuleVersion, taskID, output string, baseline *string) string {
	h := sha256.New()
	h.Write([]byte(capsuleVersion))
	h.Write([]byte{0})
	h.Write([]byte(taskID))
	h.Write([]byte{0})
	h.Write([]byte(output))
	h.Write([]byte{0})
	if baseline != nil {
		h.Write([]byte(*baseline))
	}
	return "dgp:report:" + hex.EncodeToString(h.Sum(nil))
}

// ReportCache is the memoization contract.
type ReportCache interface {
	Get(ctx context.Context, key string) (*dgp.Report, bool, error)
	Set(ctx context.Context, key string, report *dgp.Report, ttl time.Duration) error
}

// RedisCache is a ReportCache backed by go-redis/v9. It is equally at home
// against a real Redis server or, in tests, an alicebob/miniredis/v2
// in-process instance.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache wraps an already-configured redis.Client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get returns (nil, false, nil) on a cache miss. A Redis-side failure is
// returned as an error so the caller can decide whether to fall back to
// recomputation or propagate.
func (c *RedisCache) Get(ctx context.Context, key string) (*dgp.Report, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache: getting %s: %w", key, err)
	}

	var report dgp.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, false, fmt.Errorf("cache: decoding %s: %w", key, err)
	}
	return &report, true, nil
}

// Set stores report under key with the given ttl. A zero ttl means "no
// expiration".
func (c *RedisCache) Set(ctx context.Context, key string, report *dgp.Report, ttl time.Duration) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("cache: encoding %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache: setting %s: %w", key, err)
	}
	return nil
}
