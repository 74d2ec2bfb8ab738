package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// MonthCacheTTL bounds staleness for entries that miss an explicit
// invalidation (e.g. written by another instance).
const MonthCacheTTL = 15 * time.Minute

// MonthCache stores per-user, per-month derived data (expense lists and
// statistics). Keys carry the month, so a month rollover is a natural miss.
type MonthCache struct {
	client *redis.Client
}

func NewMonthCache(client *redis.Client) *MonthCache {
	return &MonthCache{client: client}
}

func (c *MonthCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}
	return []byte(val), nil
}

func (c *MonthCache) Set(ctx context.Context, key string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, jsonData, MonthCacheTTL).Err()
}

// Invalidate drops the given keys, typically after a write that makes
// their cached derivations stale.
func (c *MonthCache) Invalidate(ctx context.Context, keys ...string) error {
	return c.client.Del(ctx, keys...).Err()
}

// ExpensesKey is the cache key for a user's current-month expense list.
func ExpensesKey(userID int, month time.Time) string {
	return fmt.Sprintf("expenses:user:%d:%s", userID, month.Format("2006-01"))
}

// StatisticsKey is the cache key for a user's current-month statistics.
func StatisticsKey(userID int, month time.Time) string {
	return fmt.Sprintf("stats:user:%d:%s", userID, month.Format("2006-01"))
}
