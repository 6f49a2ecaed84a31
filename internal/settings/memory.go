package settings

import (
	"context"
	"sync"
)

// MemoryBackend keeps values in process memory. Used for tests and the
// "memory" store backend.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryBackend creates an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte)}
}

// Load implements Backend.
func (m *MemoryBackend) Load(_ context.Context, p Partition, key Key) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[p.StorageKey(key)]
	if !ok {
		return nil, false, nil
	}

	out := make([]byte, len(v))
	copy(out, v)

	return out, true, nil
}

// Save implements Backend.
func (m *MemoryBackend) Save(_ context.Context, p Partition, key Key, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	m.values[p.StorageKey(key)] = buf

	return nil
}

// Snapshot returns a copy of every stored value by storage key.
func (m *MemoryBackend) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = string(v)
	}

	return out
}
