package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Warehousing-api/internal/application/ports"
)

var _ ports.Cache = (*Memory)(nil)

type memoryItem struct {
	value   []byte
	expires time.Time
}

// Memory caché local del proceso; se usa cuando no hay Redis configurado.
type Memory struct {
	mu    sync.Mutex
	items map[string]memoryItem
	now   func() time.Time
}

// NewMemory construye una caché vacía.
func NewMemory() *Memory {
	return &Memory{items: map[string]memoryItem{}, now: time.Now}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[key]
	if !ok {
		return nil, nil
	}
	if !it.expires.IsZero() && !m.now().Before(it.expires) {
		delete(m.items, key)
		return nil, nil
	}
	return it.value, nil
}

// Set ttl <= 0 no expira.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	it := memoryItem{value: append([]byte(nil), value...)}
	if ttl > 0 {
		it.expires = m.now().Add(ttl)
	}
	m.items[key] = it
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}
