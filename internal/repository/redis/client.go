package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const scoreKeyPrefix = "connect4:score:"

// InitRedis connects to Redis. It returns nil when no address is configured
// or the server cannot be reached, so callers can carry on without a shared cache.
func InitRedis(ctx context.Context, addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("component", "redis").Str("addr", addr).
			Msg("could not connect to Redis, falling back to in-process cache")
		_ = client.Close()
		return nil
	}

	log.Info().Str("component", "redis").Str("addr", addr).Msg("connected")
	return client
}

// RedisCache stores solver scores in Redis, shared between processes.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a new RedisCache; a zero ttl keeps entries forever.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func scoreKey(key uint64) string {
	return scoreKeyPrefix + strconv.FormatUint(key, 16)
}

func (r *RedisCache) GetScore(ctx context.Context, key uint64) (int, bool, error) {
	val, err := r.client.Get(ctx, scoreKey(key)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("redis get score: %w", err)
	}
	return val, true, nil
}

func (r *RedisCache) SetScore(ctx context.Context, key uint64, score int) error {
	if err := r.client.Set(ctx, scoreKey(key), score, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set score: %w", err)
	}
	return nil
}

// Flush removes every cached score.
func (r *RedisCache) Flush(ctx context.Context) (int, error) {
	removed := 0
	iter := r.client.Scan(ctx, 0, scoreKeyPrefix+"*", 500).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return removed, fmt.Errorf("redis del: %w", err)
		}
		removed++
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("redis scan: %w", err)
	}
	return removed, nil
}
