package postal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (r *RedisCache) Get(ctx context.Context, postalCode string) (Address, error) {
	data, err := r.client.Get(ctx, cacheKey(postalCode)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Address{}, ErrCacheMiss
	}
	if err != nil {
		return Address{}, fmt.Errorf("redis get: %w", err)
	}
	var addr Address
	if err := json.Unmarshal(data, &addr); err != nil {
		return Address{}, fmt.Errorf("unmarshal address: %w", err)
	}
	return addr, nil
}

func (r *RedisCache) Set(ctx context.Context, postalCode string, addr Address) error {
	data, err := json.Marshal(addr)
	if err != nil {
		return fmt.Errorf("marshal address: %w", err)
	}
	if err := r.client.Set(ctx, cacheKey(postalCode), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func cacheKey(postalCode string) string {
	return "cep:" + postalCode
}
