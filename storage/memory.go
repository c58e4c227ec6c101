package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps values in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]string
	closed bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return "", false, ErrClosed
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(ctx context.Context, key, value string) error {
	return m.Apply(ctx, []Mutation{SetMutation(key, value)})
}

func (m *MemoryStore) Remove(ctx context.Context, key string) error {
	return m.Apply(ctx, []Mutation{RemoveMutation(key)})
}

func (m *MemoryStore) Apply(ctx context.Context, muts []Mutation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	for _, mu := range muts {
		if mu.Value == nil {
			delete(m.data, mu.Key)
			continue
		}
		m.data[mu.Key] = *mu.Value
	}
	return nil
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
