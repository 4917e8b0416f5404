package cart

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/sokoni/sokoni-api/storage"
)

// Store is the authoritative in-memory cart for one shopper. Every mutation
// applies to memory first and then triggers a best-effort snapshot write to
// durable storage; a failed write is logged and never rolls the mutation
// back. Insertion order of line items is preserved for display stability.
type Store struct {
	key     string
	storage storage.SnapshotStorage

	mu     sync.Mutex
	items  []LineItem
	loaded bool
	// version counts mutations. Snapshot writes can complete out of call
	// order, so each write carries the version it serialized and persist
	// drops any write older than the newest one already on disk.
	version uint64

	saveMu       sync.Mutex
	savedVersion uint64

	pending sync.WaitGroup
}

func NewStore(key string, snapshots storage.SnapshotStorage) *Store {
	return &Store{key: key, storage: snapshots}
}

// Load hydrates the cart from its persisted snapshot. Missing or malformed
// data means an empty cart, never an error for the caller. Mutations made
// before Load completes are not persisted.
func (s *Store) Load(ctx context.Context) {
	data, ok, err := s.storage.Load(ctx, s.key)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true

	if err != nil {
		log.Printf("cart %s: snapshot load failed: %v", s.key, err)
		return
	}
	if !ok {
		return
	}

	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("cart %s: discarding malformed snapshot: %v", s.key, err)
		return
	}
	s.items = items
}

// AddToCart appends a new line item with quantity 1, or increments the
// quantity of the existing entry for the same product. Descriptive fields
// of an existing entry are left untouched.
func (s *Store) AddToCart(item LineItem) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ProductId == item.ProductId {
			s.items[i].Quantity++
			s.persistLocked()
			s.mu.Unlock()
			return
		}
	}

	item.Quantity = 1
	s.items = append(s.items, item.normalized())
	s.persistLocked()
	s.mu.Unlock()
}

// RemoveFromCart deletes the entry for the product. Removing a product that
// is not in the cart is a no-op.
func (s *Store) RemoveFromCart(productId string) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ProductId == productId {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persistLocked()
			break
		}
	}
	s.mu.Unlock()
}

// UpdateQuantity sets the quantity of an existing entry. A quantity below 1
// removes the entry. Updating a product that is not in the cart is a no-op;
// it never creates an entry.
func (s *Store) UpdateQuantity(productId string, quantity int) {
	if quantity < 1 {
		s.RemoveFromCart(productId)
		return
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ProductId == productId {
			s.items[i].Quantity = quantity
			s.persistLocked()
			break
		}
	}
	s.mu.Unlock()
}

// ClearCart empties the cart unconditionally.
func (s *Store) ClearCart() {
	s.mu.Lock()
	s.items = nil
	s.persistLocked()
	s.mu.Unlock()
}

// Items returns a copy of the current line items in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]LineItem, len(s.items))
	copy(items, s.items)
	return items
}

// CartTotal returns the sum of price times quantity across all entries.
func (s *Store) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, item := range s.items {
		total += item.lineTotal()
	}
	return total
}

// ItemsCount returns the sum of quantities across all entries.
func (s *Store) ItemsCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// persistLocked serializes the current cart and hands it to a background
// write. Callers must hold s.mu. Writes before the initial load are skipped
// so a slow hydration cannot be clobbered by an empty snapshot.
func (s *Store) persistLocked() {
	if !s.loaded {
		return
	}

	s.version++
	version := s.version

	data, err := json.Marshal(s.items)
	if err != nil {
		log.Printf("cart %s: snapshot marshal failed: %v", s.key, err)
		return
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.write(version, data)
	}()
}

func (s *Store) write(version uint64, data []byte) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	// A newer snapshot already landed; this one is stale.
	if version < s.savedVersion {
		return
	}

	if err := s.storage.Save(context.Background(), s.key, data); err != nil {
		log.Printf("cart %s: snapshot write failed: %v", s.key, err)
		return
	}
	s.savedVersion = version
}

// Flush blocks until all snapshot writes triggered so far have settled.
// Used on shutdown and in tests.
func (s *Store) Flush() {
	s.pending.Wait()
}
