// ABOUTME: In-memory KeyValueStore for tests and the ephemeral storage backend
// ABOUTME: Thread-safe map with optional fault injection for write failures
package store

import (
	"sync"
)

// MemoryStore keeps values in process memory only.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string

	// FailWrites makes Set and Delete return this error when non-nil.
	FailWrites error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	delete(m.data, key)
	return nil
}

// Keys returns a snapshot of the stored keys (for debugging/tests).
func (m *MemoryStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys
}
