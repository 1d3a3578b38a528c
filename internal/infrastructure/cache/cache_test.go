package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Warehousing-api/pkg/config"
)

func TestNewRedis_SinDireccionDevuelveNil(t *testing.T) {
	assert.Nil(t, NewRedis(config.RedisConfig{}))
}

func TestMemory_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	b, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, b)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	b, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), b)

	require.NoError(t, c.Delete(ctx, "k"))
	b, _ = c.Get(ctx, "k")
	assert.Nil(t, b)
}

func TestMemory_Expira(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	c := NewMemory()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	now = now.Add(59 * time.Second)
	b, _ := c.Get(ctx, "k")
	assert.NotNil(t, b)

	now = now.Add(time.Second)
	b, _ = c.Get(ctx, "k")
	assert.Nil(t, b)
}
