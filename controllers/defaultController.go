package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Sokoni API. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create user account
- POST "/auth/login" - Access user account
- POST "/auth/verify-email/:activationToken" - Activate user account
- POST "/auth/forgot-password" - Request password reset
- POST "/auth/reset-password/:resetToken" - Reset user password

STORE
- POST "/store" - Create a store (seller)
- GET "/store" - List stores
- GET "/store/:id" - Get store with its products
- PUT "/store/:id" - Update store (owner)
- DELETE "/store/:id" - Delete store (owner or admin)

PRODUCT
- POST "/product" - Create new product (store owner)
- GET "/product" - List products (search, category, storeId filters)
- GET "/product/:id" - Get product by ID
- POST "/product-specs" - Add product specifications
- POST "/product-images" - Upload product images
- DELETE "/product/:id" - Delete product (store owner)

CART
- GET "/cart" - Get current cart
- POST "/cart/items" - Add item to cart
- PATCH "/cart/items/:productId" - Update item quantity
- DELETE "/cart/items/:productId" - Remove item from cart
- DELETE "/cart" - Clear cart
- POST "/cart/checkout" - Place one order per store in the cart

ORDER
- GET "/order" - Retrieve all orders (admin)
- GET "/user/:userId/orders" - Get orders for a specific user
- GET "/store/:storeId/orders" - Get orders for a store (seller)
- GET "/order/:orderId" - Get order by ID
- PATCH "/order/:orderId" - Update order status
- DELETE "/order/:orderId" - Delete order by ID`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
