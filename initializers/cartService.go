package initializers

import (
	"log"
	"os"

	"github.com/sokoni/sokoni-api/cart"
	"github.com/sokoni/sokoni-api/storage"
)

var Carts *cart.Manager

// InitCartService wires the cart manager to its snapshot backend. CART_STORAGE
// picks "db" (cart_snapshots table) or "file" (one JSON file per cart under
// CART_DATA_DIR, the default).
func InitCartService() {
	if os.Getenv("CART_STORAGE") == "db" {
		Carts = cart.NewManager(storage.NewGormStorage(DB))
		return
	}

	dir := os.Getenv("CART_DATA_DIR")
	if dir == "" {
		dir = "data/carts"
	}

	fileStorage, err := storage.NewFileStorage(dir)
	if err != nil {
		log.Fatal("Failed to initialize cart storage: ", err)
	}
	Carts = cart.NewManager(fileStorage)
}
