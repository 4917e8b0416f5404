package controllers

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/sokoni/sokoni-api/cart"
	"github.com/sokoni/sokoni-api/initializers"
	"github.com/sokoni/sokoni-api/models"
)

// dbOrderSubmitter writes one order document per store group into the
// application database. The idempotency key stamped on each checkout
// attempt makes a retried submission return the already-created order
// instead of inserting a duplicate.
type dbOrderSubmitter struct {
	db *gorm.DB
}

func newDBOrderSubmitter() dbOrderSubmitter {
	return dbOrderSubmitter{db: initializers.DB}
}

func (s dbOrderSubmitter) SubmitOrder(ctx context.Context, req cart.OrderRequest) (string, error) {
	storeId, err := strconv.Atoi(req.StoreId)
	if err != nil {
		return "", fmt.Errorf("invalid store id %q: %w", req.StoreId, err)
	}

	var existing models.Order
	err = s.db.WithContext(ctx).
		Where("idempotency_key = ? AND store_id = ?", req.IdempotencyKey, storeId).
		First(&existing).Error
	if err == nil {
		return strconv.Itoa(int(existing.ID)), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	order := models.Order{
		StoreID:        storeId,
		UserEmail:      req.UserEmail,
		Total:          req.Total,
		Status:         req.Status,
		IdempotencyKey: req.IdempotencyKey,
	}

	if req.UserId != nil {
		userId, err := strconv.Atoi(*req.UserId)
		if err != nil {
			return "", fmt.Errorf("invalid user id %q: %w", *req.UserId, err)
		}
		order.UserID = &userId
	}

	for _, line := range req.Items {
		productId, _ := strconv.Atoi(line.ProductId)
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			ProductId: productId,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			ImageUrl:  line.ImageUrl,
		})
	}

	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return "", err
	}

	return strconv.Itoa(int(order.ID)), nil
}
