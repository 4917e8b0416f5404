package cart

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrEmptyCart rejects a checkout before any order is submitted.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNoOrdersCreated reports a checkout in which every store group was
	// invalid or every submission failed. The cart is left untouched.
	ErrNoOrdersCreated = errors.New("no orders were created")
)

// StoreOrderGroup is the slice of the cart belonging to one store. It is
// derived from the cart on demand and never persisted.
type StoreOrderGroup struct {
	StoreId   string     `json:"storeId"`
	StoreName string     `json:"storeName"`
	Items     []LineItem `json:"items"`
	Total     float64    `json:"total"`
}

// OrderLine is one resolved line of an order submission.
type OrderLine struct {
	ProductId string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageUrl  string  `json:"imageUrl,omitempty"`
}

// OrderRequest is the create-order payload sent to the backend, one per
// store represented in the cart. CreatedAt is assigned by the backend.
type OrderRequest struct {
	StoreId        string      `json:"storeId"`
	StoreName      string      `json:"storeName"`
	Items          []OrderLine `json:"items"`
	Total          float64     `json:"total"`
	UserId         *string     `json:"userId"`
	UserEmail      string      `json:"userEmail"`
	Status         string      `json:"status"`
	IdempotencyKey string      `json:"idempotencyKey"`
}

// OrderSubmitter creates one backend order from a request and returns the
// created order's id.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, req OrderRequest) (orderId string, err error)
}

// Identity is the shopper placing the orders. A zero value means an
// anonymous checkout.
type Identity struct {
	UserId string
	Email  string
}

// CheckoutResult reports the outcome of a checkout attempt.
type CheckoutResult struct {
	// OrderIds maps store id to the created order id.
	OrderIds map[string]string
	// FailedStores lists store ids whose submission failed.
	FailedStores []string
	// IdempotencyKey is the key stamped on every order of this attempt.
	IdempotencyKey string
}

// GroupByStore partitions line items by store id, preserving the order in
// which stores first appear. The group's display name is taken from the
// first item encountered for that store.
func GroupByStore(items []LineItem) []StoreOrderGroup {
	var groups []StoreOrderGroup
	index := make(map[string]int)

	for _, item := range items {
		i, ok := index[item.StoreId]
		if !ok {
			i = len(groups)
			index[item.StoreId] = i
			groups = append(groups, StoreOrderGroup{
				StoreId:   item.StoreId,
				StoreName: item.StoreName,
			})
		}
		groups[i].Items = append(groups[i].Items, item)
		groups[i].Total += item.lineTotal()
	}

	return groups
}

// Checkout converts the current cart into one order per store. All
// submissions run concurrently and the call waits for all of them. The cart
// is cleared only when at least one order was created; on zero successes it
// is left exactly as it was so the shopper can retry.
func Checkout(ctx context.Context, store *Store, submitter OrderSubmitter, who Identity) (*CheckoutResult, error) {
	items := store.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	result := &CheckoutResult{
		OrderIds:       make(map[string]string),
		IdempotencyKey: uuid.NewString(),
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, group := range GroupByStore(items) {
		if group.StoreId == "" {
			log.Printf("checkout %s: dropping %d item(s) with no store id", result.IdempotencyKey, len(group.Items))
			continue
		}

		wg.Add(1)
		go func(group StoreOrderGroup) {
			defer wg.Done()

			orderId, err := submitter.SubmitOrder(ctx, buildOrderRequest(group, who, result.IdempotencyKey))

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("checkout %s: order for store %s failed: %v", result.IdempotencyKey, group.StoreId, err)
				result.FailedStores = append(result.FailedStores, group.StoreId)
				return
			}
			result.OrderIds[group.StoreId] = orderId
		}(group)
	}
	wg.Wait()

	if len(result.OrderIds) == 0 {
		return result, ErrNoOrdersCreated
	}

	store.ClearCart()
	return result, nil
}

func buildOrderRequest(group StoreOrderGroup, who Identity, idempotencyKey string) OrderRequest {
	lines := make([]OrderLine, 0, len(group.Items))
	for _, item := range group.Items {
		n := item.normalized()
		lines = append(lines, OrderLine{
			ProductId: n.ProductId,
			Name:      n.Name,
			Price:     n.Price,
			Quantity:  n.Quantity,
			ImageUrl:  n.ImageUrl,
		})
	}

	req := OrderRequest{
		StoreId:        group.StoreId,
		StoreName:      group.StoreName,
		Items:          lines,
		Total:          group.Total,
		UserEmail:      "anonymous",
		Status:         "placed",
		IdempotencyKey: idempotencyKey,
	}

	if who.UserId != "" {
		userId := who.UserId
		req.UserId = &userId
	}
	if who.Email != "" {
		req.UserEmail = who.Email
	}

	return req
}
