package cart

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/sokoni/sokoni-api/storage"
)

// Manager hands out the live cart Store for a cart key, hydrating each one
// from snapshot storage exactly once. Concurrent first requests for the
// same key share a single hydration via singleflight.
type Manager struct {
	storage storage.SnapshotStorage

	mu     sync.Mutex
	stores map[string]*Store
	sfg    singleflight.Group
}

func NewManager(snapshots storage.SnapshotStorage) *Manager {
	return &Manager{
		storage: snapshots,
		stores:  make(map[string]*Store),
	}
}

// Cart returns the store for the key, loading its persisted snapshot on
// first use. Hydration failures degrade to an empty cart inside Load, so
// Cart never fails.
func (m *Manager) Cart(ctx context.Context, key string) *Store {
	m.mu.Lock()
	if store, ok := m.stores[key]; ok {
		m.mu.Unlock()
		return store
	}
	m.mu.Unlock()

	v, _, _ := m.sfg.Do(key, func() (interface{}, error) {
		// Re-check under the flight: a previous flight may have finished
		// between the map lookup above and Do.
		m.mu.Lock()
		if store, ok := m.stores[key]; ok {
			m.mu.Unlock()
			return store, nil
		}
		m.mu.Unlock()

		store := NewStore(key, m.storage)
		store.Load(ctx)

		m.mu.Lock()
		m.stores[key] = store
		m.mu.Unlock()
		return store, nil
	})

	return v.(*Store)
}

// Flush waits for pending snapshot writes across all live carts.
func (m *Manager) Flush() {
	m.mu.Lock()
	stores := make([]*Store, 0, len(m.stores))
	for _, store := range m.stores {
		stores = append(stores, store)
	}
	m.mu.Unlock()

	for _, store := range stores {
		store.Flush()
	}
}
