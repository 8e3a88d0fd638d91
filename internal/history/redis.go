package history

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type RedisGateway struct {
	client *redis.Client
	prefix string
}

func NewRedisGateway(ctx context.Context, address, password string, db int, prefix string) (*RedisGateway, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         address,
		Password:     password,
		DB:           db,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if prefix == "" {
		prefix = "weather-widget"
	}
	return &RedisGateway{client: client, prefix: prefix}, nil
}

func (r *RedisGateway) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.key(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get from Redis: %w", err)
	}
	return value, true, nil
}

func (r *RedisGateway) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set in Redis: %w", err)
	}
	return nil
}

func (r *RedisGateway) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisGateway) Close() error {
	return r.client.Close()
}

func (r *RedisGateway) key(key string) string {
	return r.prefix + ":" + key
}

var _ StorageGateway = (*RedisGateway)(nil)
