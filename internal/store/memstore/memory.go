// Package memstore provides an in-memory implementation of store.HistoryStore.
// This implementation is designed for fast unit testing and demos and does
// not persist data.
package memstore

import (
	"sync"

	"github.com/yiblet/eqplot/internal/store"
)

// MemoryStore is an in-memory implementation of store.HistoryStore.
// It is thread-safe via a mutex. Data exists only for the lifetime of the process.
type MemoryStore struct {
	mu      sync.RWMutex
	records []store.Record
	saves   int

	// SaveErr, when set, makes every Save fail with it and store nothing.
	SaveErr error
	// LoadErr, when set, makes every Load fail with it.
	LoadErr error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWith creates a store that already holds records, as if a
// previous session had saved them.
func NewMemoryStoreWith(records []store.Record) *MemoryStore {
	return &MemoryStore{records: clone(records)}
}

// Load returns a copy of the stored records.
func (m *MemoryStore) Load() ([]store.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return clone(m.records), nil
}

// Save replaces the stored records with a copy of records.
func (m *MemoryStore) Save(records []store.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.records = clone(records)
	m.saves++
	return nil
}

// Location implements store.HistoryStore.
func (m *MemoryStore) Location() string {
	return "memory"
}

// Close releases resources (no-op for memory store).
func (m *MemoryStore) Close() error {
	return nil
}

// Saves returns how many times Save succeeded.
func (m *MemoryStore) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

// Snapshot returns what a fresh Load would see, ignoring LoadErr.
func (m *MemoryStore) Snapshot() []store.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return clone(m.records)
}

func clone(records []store.Record) []store.Record {
	out := make([]store.Record, len(records))
	copy(out, records)
	return out
}
