package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the sliding window in a sorted set per key, scored by
// request time. It lets multiple instances share one window.
type RedisStore struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
}

// NewRedisStore creates a redis-backed sliding-window store.
func NewRedisStore(rdb *redis.Client, limit int, window time.Duration) *RedisStore {
	return &RedisStore{
		rdb:    rdb,
		limit:  limit,
		window: window,
		prefix: "ratelimit:",
	}
}

// Take implements Store.
func (s *RedisStore) Take(ctx context.Context, key string, now time.Time) (Result, error) {
	redisKey := s.prefix + key
	windowStart := now.Add(-s.window)

	pipe := s.rdb.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart.UnixMilli(), 10))
	countCmd := pipe.ZCard(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, err
	}

	count := int(countCmd.Val())
	if count >= s.limit {
		retryAfter := s.window
		oldest, err := s.rdb.ZRangeWithScores(ctx, redisKey, 0, 0).Result()
		if err != nil {
			return Result{}, err
		}
		if len(oldest) > 0 {
			oldestAt := time.UnixMilli(int64(oldest[0].Score))
			retryAfter = oldestAt.Add(s.window).Sub(now)
			if retryAfter < 0 {
				retryAfter = 0
			}
		}
		return Result{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: retryAfter,
			Reset:      now.Add(s.window),
		}, nil
	}

	pipe = s.rdb.Pipeline()
	pipe.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixMilli()),
		Member: strconv.FormatInt(now.UnixNano(), 10),
	})
	pipe.Expire(ctx, redisKey, s.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, err
	}

	return Result{
		Allowed:   true,
		Remaining: s.limit - count - 1,
		Reset:     now.Add(s.window),
	}, nil
}
