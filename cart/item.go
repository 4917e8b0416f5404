package cart

// LineItem is one product entry in a shopper's cart, carrying the quantity
// and the denormalized display data captured when the product was added.
// StoreName may be stale relative to the store record; it is only a label.
type LineItem struct {
	ProductId string  `json:"productId"`
	StoreId   string  `json:"storeId"`
	StoreName string  `json:"storeName"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageUrl  string  `json:"imageUrl,omitempty"`
	Quantity  int     `json:"quantity"`
}

// normalized clamps price and quantity to usable values so a single
// malformed entry cannot break totals or checkout.
func (item LineItem) normalized() LineItem {
	if item.Price < 0 {
		item.Price = 0
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	return item
}

func (item LineItem) lineTotal() float64 {
	n := item.normalized()
	return n.Price * float64(n.Quantity)
}
