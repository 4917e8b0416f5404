package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	mu       sync.Mutex
	data     map[string][]byte
	loads    int
	saves    int
	failLoad bool
	failSave bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{data: make(map[string][]byte)}
}

func (f *fakeStorage) Load(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	if f.failLoad {
		return nil, false, errors.New("storage unavailable")
	}
	data, ok := f.data[key]
	return data, ok, nil
}

func (f *fakeStorage) Save(_ context.Context, key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.failSave {
		return errors.New("storage unavailable")
	}
	f.data[key] = data
	return nil
}

func (f *fakeStorage) snapshot(t *testing.T, key string) []LineItem {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.data[key]
	require.True(t, ok, "no snapshot stored for %s", key)
	var items []LineItem
	require.NoError(t, json.Unmarshal(data, &items))
	return items
}

func loadedStore(t *testing.T) (*Store, *fakeStorage) {
	t.Helper()
	snapshots := newFakeStorage()
	store := NewStore("cart-1", snapshots)
	store.Load(context.Background())
	return store, snapshots
}

func widget(productId, storeId string, price float64) LineItem {
	return LineItem{
		ProductId: productId,
		StoreId:   storeId,
		StoreName: "Acme",
		Name:      "Widget " + productId,
		Price:     price,
	}
}

func TestAddToCartKeepsOneEntryPerProduct(t *testing.T) {
	store, _ := loadedStore(t)

	store.AddToCart(widget("p1", "s1", 9.99))
	store.AddToCart(widget("p1", "s1", 9.99))
	store.AddToCart(widget("p1", "s1", 9.99))

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductId)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddToCartFirstWriteWinsForDescriptiveFields(t *testing.T) {
	store, _ := loadedStore(t)

	first := widget("p1", "s1", 9.99)
	store.AddToCart(first)

	changed := first
	changed.Name = "Renamed"
	changed.Price = 19.99
	store.AddToCart(changed)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Widget p1", items[0].Name)
	assert.Equal(t, 9.99, items[0].Price)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddToCartNormalizesNegativePrice(t *testing.T) {
	store, _ := loadedStore(t)

	store.AddToCart(widget("p1", "s1", -5))

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, float64(0), items[0].Price)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestRemoveFromCart(t *testing.T) {
	store, _ := loadedStore(t)
	store.AddToCart(widget("p1", "s1", 10))
	store.AddToCart(widget("p2", "s1", 5))

	store.RemoveFromCart("p1")

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ProductId)

	// Removing an absent product is a no-op.
	store.RemoveFromCart("p1")
	assert.Len(t, store.Items(), 1)
}

func TestUpdateQuantitySetsValue(t *testing.T) {
	store, _ := loadedStore(t)
	store.AddToCart(widget("p1", "s1", 10))

	store.UpdateQuantity("p1", 7)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestUpdateQuantityBelowOneRemoves(t *testing.T) {
	for _, quantity := range []int{0, -3} {
		store, _ := loadedStore(t)
		store.AddToCart(widget("p1", "s1", 10))

		store.UpdateQuantity("p1", quantity)

		assert.Empty(t, store.Items())
	}
}

func TestUpdateQuantityNeverCreatesEntries(t *testing.T) {
	store, _ := loadedStore(t)

	store.UpdateQuantity("missing", 4)

	assert.Empty(t, store.Items())
}

func TestClearCart(t *testing.T) {
	store, _ := loadedStore(t)
	store.AddToCart(widget("p1", "s1", 10))
	store.AddToCart(widget("p2", "s2", 20))

	store.ClearCart()

	assert.Empty(t, store.Items())
	assert.Equal(t, float64(0), store.CartTotal())
	assert.Equal(t, 0, store.ItemsCount())
}

func TestCartTotalAndItemsCount(t *testing.T) {
	store, _ := loadedStore(t)
	store.AddToCart(widget("p1", "s1", 10))
	store.AddToCart(widget("p1", "s1", 10))
	store.AddToCart(widget("p2", "s1", 5))

	assert.Equal(t, float64(25), store.CartTotal())
	assert.Equal(t, 3, store.ItemsCount())
}

func TestItemsPreserveInsertionOrder(t *testing.T) {
	store, _ := loadedStore(t)
	store.AddToCart(widget("p3", "s1", 1))
	store.AddToCart(widget("p1", "s2", 1))
	store.AddToCart(widget("p2", "s1", 1))
	store.AddToCart(widget("p1", "s2", 1))

	items := store.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "p3", items[0].ProductId)
	assert.Equal(t, "p1", items[1].ProductId)
	assert.Equal(t, "p2", items[2].ProductId)
}

func TestLoadHydratesFromSnapshot(t *testing.T) {
	snapshots := newFakeStorage()
	seeded := []LineItem{
		{ProductId: "p1", StoreId: "s1", StoreName: "Acme", Name: "Widget", Price: 9.99, Quantity: 2},
	}
	data, err := json.Marshal(seeded)
	require.NoError(t, err)
	snapshots.data["cart-1"] = data

	store := NewStore("cart-1", snapshots)
	store.Load(context.Background())

	assert.Equal(t, seeded, store.Items())
	assert.Equal(t, 2, store.ItemsCount())
}

func TestLoadTreatsMalformedSnapshotAsEmpty(t *testing.T) {
	snapshots := newFakeStorage()
	snapshots.data["cart-1"] = []byte("{not json")

	store := NewStore("cart-1", snapshots)
	store.Load(context.Background())

	assert.Empty(t, store.Items())

	// The store stays fully usable after a bad snapshot.
	store.AddToCart(widget("p1", "s1", 10))
	assert.Equal(t, 1, store.ItemsCount())
}

func TestLoadStorageErrorMeansEmptyCart(t *testing.T) {
	snapshots := newFakeStorage()
	snapshots.failLoad = true

	store := NewStore("cart-1", snapshots)
	store.Load(context.Background())

	assert.Empty(t, store.Items())
}

func TestMutationsPersistFullSnapshot(t *testing.T) {
	store, snapshots := loadedStore(t)

	store.AddToCart(widget("p1", "s1", 10))
	store.AddToCart(widget("p2", "s2", 20))
	store.UpdateQuantity("p1", 3)
	store.Flush()

	persisted := snapshots.snapshot(t, "cart-1")
	assert.Equal(t, store.Items(), persisted)
}

func TestMutationsBeforeLoadAreNotPersisted(t *testing.T) {
	snapshots := newFakeStorage()
	store := NewStore("cart-1", snapshots)

	store.AddToCart(widget("p1", "s1", 10))
	store.Flush()

	snapshots.mu.Lock()
	defer snapshots.mu.Unlock()
	assert.Zero(t, snapshots.saves)
}

func TestSaveFailureKeepsInMemoryState(t *testing.T) {
	store, snapshots := loadedStore(t)
	snapshots.failSave = true

	store.AddToCart(widget("p1", "s1", 10))
	store.Flush()

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductId)
}
