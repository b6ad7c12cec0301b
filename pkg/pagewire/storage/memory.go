package storage

import (
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory slot store. Data is lost when the process
// exits; it is the default when no persistent store is wired in.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]storedSlot
	closed bool
}

// storedSlot holds a value with its last write time.
type storedSlot struct {
	value     []byte
	updatedAt time.Time
}

// NewMemoryStore creates a new in-memory slot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]storedSlot),
	}
}

// Get implements Store.
func (m *MemoryStore) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	slot, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}

	// Return a copy to prevent modification.
	result := make([]byte, len(slot.value))
	copy(result, slot.value)
	return result, nil
}

// Set implements Store.
func (m *MemoryStore) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	// Copy to avoid retaining the caller's slice.
	stored := make([]byte, len(value))
	copy(stored, value)

	m.data[key] = storedSlot{
		value:     stored,
		updatedAt: time.Now().UTC(),
	}
	return nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data, key)
	return nil
}

// Keys implements Store.
func (m *MemoryStore) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	return nil
}

// Len returns the number of stored slots. Useful for testing.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
