package middleware

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// StatsRecorder receives rate-limit decisions. Recording is best-effort
// and must never block or fail a request.
type StatsRecorder interface {
	Record(ctx context.Context, identity string, allowed bool) error
}

// RedisStatsRecorder keeps allowed/denied counters in Redis: a
// cumulative total hash plus per-minute buckets that expire. Intended
// for deployments that want limiter visibility across restarts.
type RedisStatsRecorder struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStatsRecorder(rdb *redis.Client) *RedisStatsRecorder {
	return &RedisStatsRecorder{
		rdb:    rdb,
		prefix: "slotdesk:ratelimit",
		ttl:    24 * time.Hour,
	}
}

func (s *RedisStatsRecorder) Record(ctx context.Context, identity string, allowed bool) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	field := "denied"
	if allowed {
		field = "allowed"
	}

	now := time.Now().UTC()
	bucketKey := s.prefix + ":minute:" + now.Format("200601021504")

	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, s.prefix+":total", field, 1)
	pipe.HIncrBy(ctx, bucketKey, field, 1)
	pipe.Expire(ctx, bucketKey, s.ttl)

	_, err := pipe.Exec(ctx)
	return err
}
