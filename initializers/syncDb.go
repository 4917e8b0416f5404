package initializers

import (
	"log"

	"github.com/sokoni/sokoni-api/models"
	"github.com/sokoni/sokoni-api/storage"
)

func SyncDatabase() {
	DB.AutoMigrate(
		&models.User{},
		&models.Store{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductSpecs{},
		&models.Order{},
		&models.OrderItem{},
		&storage.CartSnapshot{},
	)
	log.Println("Database synced successfully.")
}
