package cart

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerReturnsTheSameStorePerKey(t *testing.T) {
	manager := NewManager(newFakeStorage())

	first := manager.Cart(context.Background(), "user-1")
	second := manager.Cart(context.Background(), "user-1")
	other := manager.Cart(context.Background(), "user-2")

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
}

func TestManagerHydratesEachCartOnce(t *testing.T) {
	snapshots := newFakeStorage()
	seeded := []LineItem{{ProductId: "p1", StoreId: "s1", Price: 10, Quantity: 2}}
	data, err := json.Marshal(seeded)
	require.NoError(t, err)
	snapshots.data["user-1"] = data

	manager := NewManager(snapshots)

	store := manager.Cart(context.Background(), "user-1")
	assert.Equal(t, seeded, store.Items())

	manager.Cart(context.Background(), "user-1")
	manager.Cart(context.Background(), "user-1")

	snapshots.mu.Lock()
	defer snapshots.mu.Unlock()
	assert.Equal(t, 1, snapshots.loads)
}

func TestManagerConcurrentFirstAccessSharesOneHydration(t *testing.T) {
	snapshots := newFakeStorage()
	manager := NewManager(snapshots)

	const callers = 16
	stores := make([]*Store, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			stores[i] = manager.Cart(context.Background(), "user-1")
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		assert.Same(t, stores[0], stores[i])
	}

	snapshots.mu.Lock()
	defer snapshots.mu.Unlock()
	assert.Equal(t, 1, snapshots.loads)
}
