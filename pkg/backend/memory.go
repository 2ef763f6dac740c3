package backend

import (
	"context"
	"sync"
)

// Memory is an in-process Store guarded by a mutex. It exists so that unit
// tests (and single-process deployments) do not need a Redis server.
type Memory struct {
	mutex sync.RWMutex
	db    map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		db: make(map[string][]byte),
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	value, ok := m.db[key]
	if !ok {
		return nil, false, nil
	}
	// Copy so callers cannot mutate stored bytes.
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	m.db[key] = stored
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	_, ok := m.db[key]
	delete(m.db, key)
	return ok, nil
}

func (m *Memory) SetIfAbsent(_ context.Context, key string, value []byte) (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, ok := m.db[key]; ok {
		return false, nil
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.db[key] = stored
	return true, nil
}

func (m *Memory) FlushAll(_ context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.db = make(map[string][]byte)
	return nil
}
