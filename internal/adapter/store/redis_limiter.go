package store

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter caps the number of chat messages a sender may submit
// per UTC day. The counter key rolls over at midnight and carries a
// 24h expiry as a safety net.
type RedisLimiter struct {
	client *redis.Client
	limit  int // max messages per sender per day
}

func NewRedisLimiter(client *redis.Client, limit int) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
	}
}

func (r *RedisLimiter) Allow(ctx context.Context, sender string) (bool, error) {
	if r.limit <= 0 {
		return true, nil
	}
	val, err := r.client.Get(ctx, r.key(sender)).Result()
	if err == redis.Nil {
		return true, nil // no messages today
	}
	if err != nil {
		// Fail open; the caller logs the outage.
		return true, err
	}
	count, _ := strconv.Atoi(val)
	return count < r.limit, nil
}

func (r *RedisLimiter) Record(ctx context.Context, sender string) error {
	key := r.key(sender)
	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return err
	}
	if count == 1 {
		r.client.Expire(ctx, key, 24*time.Hour)
	}
	return nil
}

func (r *RedisLimiter) key(sender string) string {
	return "msgs:" + sender + ":" + time.Now().UTC().Format("2006-01-02")
}
