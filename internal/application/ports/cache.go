package ports

import (
	"context"
	"time"
)

// Cache almacén clave/valor con expiración. Get devuelve (nil, nil) si la clave no existe.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
