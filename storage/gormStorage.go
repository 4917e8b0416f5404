package storage

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CartSnapshot struct {
	gorm.Model
	CartKey string         `json:"cartKey" gorm:"uniqueIndex;size:64"`
	Payload datatypes.JSON `json:"payload"`
}

// GormStorage persists cart snapshots in the application database, one row
// per cart key.
type GormStorage struct {
	db *gorm.DB
}

func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db}
}

func (g *GormStorage) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var snapshot CartSnapshot
	err := g.db.WithContext(ctx).Where("cart_key = ?", key).First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(snapshot.Payload), true, nil
}

func (g *GormStorage) Save(ctx context.Context, key string, data []byte) error {
	var existing CartSnapshot
	err := g.db.WithContext(ctx).Where("cart_key = ?", key).First(&existing).Error

	if err == nil {
		existing.Payload = datatypes.JSON(data)
		return g.db.WithContext(ctx).Save(&existing).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	snapshot := CartSnapshot{CartKey: key, Payload: datatypes.JSON(data)}
	return g.db.WithContext(ctx).Create(&snapshot).Error
}
