// Package cache adaptadores de ports.Cache.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Warehousing-api/internal/application/ports"
	"github.com/jhoicas/Warehousing-api/pkg/config"
)

var _ ports.Cache = (*Redis)(nil)

// Redis caché respaldada por un servidor Redis.
type Redis struct {
	client *redis.Client
}

// NewRedis devuelve nil si no hay dirección configurada; el llamador trabaja sin caché.
func NewRedis(cfg config.RedisConfig) *Redis {
	if !cfg.Enabled() {
		return nil
	}
	return &Redis{client: redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})}
}

// NewRedisFromClient envuelve un cliente ya construido.
func NewRedisFromClient(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Ping verifica la conexión al arrancar.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return b, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Close libera el pool de conexiones.
func (r *Redis) Close() error {
	return r.client.Close()
}
