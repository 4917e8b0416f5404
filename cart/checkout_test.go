package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmitter struct {
	mu       sync.Mutex
	requests []OrderRequest
	failFor  map[string]error
	nextId   int
}

func newFakeSubmitter() *fakeSubmitter {
	return &fakeSubmitter{failFor: make(map[string]error)}
}

func (f *fakeSubmitter) SubmitOrder(_ context.Context, req OrderRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if err, ok := f.failFor[req.StoreId]; ok {
		return "", err
	}
	f.nextId++
	return fmt.Sprintf("order-%d", f.nextId), nil
}

func (f *fakeSubmitter) requestFor(t *testing.T, storeId string) OrderRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, req := range f.requests {
		if req.StoreId == storeId {
			return req
		}
	}
	t.Fatalf("no submission for store %s", storeId)
	return OrderRequest{}
}

func TestGroupByStorePartitionsCompletely(t *testing.T) {
	items := []LineItem{
		{ProductId: "p1", StoreId: "s1", StoreName: "Acme", Price: 10, Quantity: 2},
		{ProductId: "p2", StoreId: "s2", StoreName: "Bazaar", Price: 20, Quantity: 1},
		{ProductId: "p3", StoreId: "s1", StoreName: "Acme Renamed", Price: 5, Quantity: 1},
	}

	groups := GroupByStore(items)
	require.Len(t, groups, 2)

	// Groups appear in the order their stores first appear in the cart and
	// keep the first store name seen.
	assert.Equal(t, "s1", groups[0].StoreId)
	assert.Equal(t, "Acme", groups[0].StoreName)
	assert.Equal(t, "s2", groups[1].StoreId)

	// The union of group items is the whole cart, with no item in two groups.
	var total int
	seen := make(map[string]bool)
	for _, group := range groups {
		for _, item := range group.Items {
			assert.False(t, seen[item.ProductId], "item %s appears twice", item.ProductId)
			seen[item.ProductId] = true
			assert.Equal(t, group.StoreId, item.StoreId)
			total++
		}
	}
	assert.Equal(t, len(items), total)

	assert.Equal(t, float64(25), groups[0].Total)
	assert.Equal(t, float64(20), groups[1].Total)
}

func TestGroupByStoreCoercesMalformedLines(t *testing.T) {
	// A snapshot written by an older client can carry zero quantities or
	// negative prices; they default to 1 and 0 instead of poisoning totals.
	items := []LineItem{
		{ProductId: "p1", StoreId: "s1", Price: 10, Quantity: 0},
		{ProductId: "p2", StoreId: "s1", Price: -4, Quantity: 3},
	}

	groups := GroupByStore(items)
	require.Len(t, groups, 1)
	assert.Equal(t, float64(10), groups[0].Total)
}

func TestCheckoutSingleStore(t *testing.T) {
	store, _ := loadedStore(t)
	store.AddToCart(LineItem{ProductId: "p1", StoreId: "s1", StoreName: "Acme", Name: "Widget", Price: 10})
	store.AddToCart(LineItem{ProductId: "p1", StoreId: "s1", StoreName: "Acme", Name: "Widget", Price: 10})
	store.AddToCart(LineItem{ProductId: "p2", StoreId: "s1", StoreName: "Acme", Name: "Gadget", Price: 5})

	submitter := newFakeSubmitter()
	result, err := Checkout(context.Background(), store, submitter, Identity{})

	require.NoError(t, err)
	require.Len(t, submitter.requests, 1)

	req := submitter.requestFor(t, "s1")
	assert.Equal(t, float64(25), req.Total)
	require.Len(t, req.Items, 2)
	assert.Equal(t, 2, req.Items[0].Quantity)
	assert.Equal(t, "placed", req.Status)

	assert.Equal(t, map[string]string{"s1": "order-1"}, result.OrderIds)
	assert.Empty(t, store.Items(), "cart should be cleared after a successful checkout")
}

func TestCheckoutCreatesOneOrderPerStore(t *testing.T) {
	store, _ := loadedStore(t)
	store.AddToCart(LineItem{ProductId: "p1", StoreId: "s1", StoreName: "Acme", Price: 10})
	store.AddToCart(LineItem{ProductId: "p2", StoreId: "s2", StoreName: "Bazaar", Price: 20})

	submitter := newFakeSubmitter()
	result, err := Checkout(context.Background(), store, submitter, Identity{})

	require.NoError(t, err)
	assert.Len(t, result.OrderIds, 2)
	assert.Equal(t, float64(10), submitter.requestFor(t, "s1").Total)
	assert.Equal(t, float64(20), submitter.requestFor(t, "s2").Total)
	assert.Empty(t, store.Items())
}

func TestCheckoutEmptyCartMakesNoSubmissions(t *testing.T) {
	store, _ := loadedStore(t)
	submitter := newFakeSubmitter()

	_, err := Checkout(context.Background(), store, submitter, Identity{})

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, submitter.requests)
	assert.Empty(t, store.Items())
}

func TestCheckoutLeavesCartWhenEverySubmissionFails(t *testing.T) {
	store, _ := loadedStore(t)
	store.AddToCart(LineItem{ProductId: "p1", StoreId: "s1", Price: 10})
	store.AddToCart(LineItem{ProductId: "p2", StoreId: "s2", Price: 20})

	before := store.Items()

	submitter := newFakeSubmitter()
	submitter.failFor["s1"] = errors.New("backend down")
	submitter.failFor["s2"] = errors.New("backend down")

	result, err := Checkout(context.Background(), store, submitter, Identity{})

	assert.ErrorIs(t, err, ErrNoOrdersCreated)
	assert.Empty(t, result.OrderIds)
	assert.ElementsMatch(t, []string{"s1", "s2"}, result.FailedStores)
	assert.Equal(t, before, store.Items(), "cart must be untouched when no order was created")
}

func TestCheckoutClearsCartOnAnySuccess(t *testing.T) {
	store, _ := loadedStore(t)
	store.AddToCart(LineItem{ProductId: "p1", StoreId: "s1", Price: 10})
	store.AddToCart(LineItem{ProductId: "p2", StoreId: "s2", Price: 20})

	submitter := newFakeSubmitter()
	submitter.failFor["s2"] = errors.New("backend down")

	result, err := Checkout(context.Background(), store, submitter, Identity{})

	require.NoError(t, err)
	assert.Contains(t, result.OrderIds, "s1")
	assert.Equal(t, []string{"s2"}, result.FailedStores)
	assert.Empty(t, store.Items(), "one success is enough to clear the cart")
}

func TestCheckoutDropsGroupsWithoutStoreIdentity(t *testing.T) {
	// A line with no store id can only arrive through a corrupt snapshot.
	snapshots := newFakeStorage()
	seeded := []LineItem{
		{ProductId: "p1", StoreId: "", Name: "Orphan", Price: 10, Quantity: 1},
		{ProductId: "p2", StoreId: "s1", Name: "Widget", Price: 20, Quantity: 1},
	}
	data, err := json.Marshal(seeded)
	require.NoError(t, err)
	snapshots.data["cart-1"] = data

	store := NewStore("cart-1", snapshots)
	store.Load(context.Background())

	submitter := newFakeSubmitter()
	result, err := Checkout(context.Background(), store, submitter, Identity{})

	require.NoError(t, err)
	require.Len(t, submitter.requests, 1)
	assert.Equal(t, "s1", submitter.requests[0].StoreId)
	assert.Equal(t, map[string]string{"s1": "order-1"}, result.OrderIds)
}

func TestCheckoutAnonymousIdentity(t *testing.T) {
	store, _ := loadedStore(t)
	store.AddToCart(LineItem{ProductId: "p1", StoreId: "s1", Price: 10})

	submitter := newFakeSubmitter()
	_, err := Checkout(context.Background(), store, submitter, Identity{})
	require.NoError(t, err)

	req := submitter.requestFor(t, "s1")
	assert.Nil(t, req.UserId)
	assert.Equal(t, "anonymous", req.UserEmail)
}

func TestCheckoutAuthenticatedIdentity(t *testing.T) {
	store, _ := loadedStore(t)
	store.AddToCart(LineItem{ProductId: "p1", StoreId: "s1", Price: 10})

	submitter := newFakeSubmitter()
	_, err := Checkout(context.Background(), store, submitter, Identity{UserId: "42", Email: "jane@example.com"})
	require.NoError(t, err)

	req := submitter.requestFor(t, "s1")
	require.NotNil(t, req.UserId)
	assert.Equal(t, "42", *req.UserId)
	assert.Equal(t, "jane@example.com", req.UserEmail)
}

func TestCheckoutStampsOneIdempotencyKeyPerAttempt(t *testing.T) {
	store, _ := loadedStore(t)
	store.AddToCart(LineItem{ProductId: "p1", StoreId: "s1", Price: 10})
	store.AddToCart(LineItem{ProductId: "p2", StoreId: "s2", Price: 20})

	submitter := newFakeSubmitter()
	result, err := Checkout(context.Background(), store, submitter, Identity{})
	require.NoError(t, err)

	require.NotEmpty(t, result.IdempotencyKey)
	for _, req := range submitter.requests {
		assert.Equal(t, result.IdempotencyKey, req.IdempotencyKey)
	}
}
