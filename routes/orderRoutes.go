package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sokoni/sokoni-api/controllers"
	"github.com/sokoni/sokoni-api/middlewares"
)

func OrderRoutes(server *gin.Engine) {
	server.GET("/order", middlewares.RequireAdmin(), controllers.GetOrders)
	server.GET("/order/:orderId", middlewares.RequireAuth(), controllers.GetOrderById)
	server.PATCH("/order/:orderId", middlewares.RequireSeller(), controllers.UpdateOrderStatus)
	server.DELETE("/order/:orderId", middlewares.RequireAdmin(), controllers.DeleteOrder)
	server.GET("/order-stats/undelivered", middlewares.RequireAdmin(), controllers.GetUndeliveredOrders)
	server.GET("/user/:userId/orders", middlewares.RequireAuth(), controllers.GetOrdersByCustomerId)
	server.GET("/store/:id/orders", middlewares.RequireSeller(), controllers.GetOrdersByStoreId)
}
