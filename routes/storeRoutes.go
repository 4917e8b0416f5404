package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sokoni/sokoni-api/controllers"
	"github.com/sokoni/sokoni-api/middlewares"
)

func StoreRoutes(server *gin.Engine) {
	server.POST("/store", middlewares.RequireSeller(), controllers.CreateStore)
	server.GET("/store", controllers.GetStores)
	server.GET("/store/:id", controllers.GetStore)
	server.PUT("/store/:id", middlewares.RequireSeller(), controllers.UpdateStore)
	server.DELETE("/store/:id", middlewares.RequireSeller(), controllers.DeleteStore)
}
