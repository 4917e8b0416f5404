package models

import "gorm.io/gorm"

type Order struct {
	gorm.Model
	StoreID        int         `json:"storeId"`
	UserID         *int        `json:"userId"`
	UserEmail      string      `json:"userEmail"`
	Total          float64     `json:"total"`
	Status         string      `json:"status"`
	IdempotencyKey string      `json:"idempotencyKey" gorm:"index:idx_orders_idem"`
	OrderItems     []OrderItem `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderItem struct {
	gorm.Model
	OrderID   int     `json:"orderId"`
	ProductId int     `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageUrl  string  `json:"imageUrl"`
}
