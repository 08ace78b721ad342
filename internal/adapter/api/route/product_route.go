package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/rms-api/internal/adapter/api/controller"
)

// RegisterProductRoutes registra as rotas do módulo de produtos
func RegisterProductRoutes(r *gin.RouterGroup, productController *controller.ProductController, auth gin.HandlerFunc) {
	products := r.Group("/products")
	products.Use(auth)
	{
		products.POST("", productController.Create)
		products.GET("", productController.List)
		products.GET("/:id", productController.Get)
		products.PUT("/:id", productController.Update)
		products.DELETE("/:id", productController.Delete)
	}
}
