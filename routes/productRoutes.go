package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sokoni/sokoni-api/controllers"
	"github.com/sokoni/sokoni-api/middlewares"
)

func ProductRoutes(server *gin.Engine) {
	server.POST("/product", middlewares.RequireSeller(), controllers.CreateProduct)
	server.POST("/product-specs", middlewares.RequireSeller(), controllers.CreateProductSpecs)
	server.POST("/product-images", middlewares.RequireSeller(), controllers.UploadProductImages)
	server.GET("/product", controllers.GetProducts)
	server.GET("/product/:id", controllers.GetProduct)
	server.DELETE("/product/:id", middlewares.RequireSeller(), controllers.DeleteProduct)
}
