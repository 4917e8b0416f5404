package models

import "gorm.io/gorm"

type Store struct {
	gorm.Model
	OwnerID     int       `json:"ownerId"`
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	LogoUrl     string    `json:"logoUrl"`
	Products    []Product `json:"products" gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
}
