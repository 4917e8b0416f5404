package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sokoni/sokoni-api/controllers"
)

func CartRoutes(server *gin.Engine) {
	server.GET("/cart", controllers.GetCart)
	server.POST("/cart/items", controllers.AddCartItem)
	server.PATCH("/cart/items/:productId", controllers.UpdateCartItemQuantity)
	server.DELETE("/cart/items/:productId", controllers.RemoveCartItem)
	server.DELETE("/cart", controllers.ClearCart)
	server.POST("/cart/checkout", controllers.Checkout)
}
