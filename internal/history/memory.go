package history

import (
	"context"
	"sync"
)

// MemoryGateway keeps values in process memory.
type MemoryGateway struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{values: make(map[string]string)}
}

func (m *MemoryGateway) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryGateway) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryGateway) Close() error {
	return nil
}

var _ StorageGateway = (*MemoryGateway)(nil)
