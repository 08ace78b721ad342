package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/rms-api/internal/adapter/api/controller"
)

// RegisterSaleRoutes registra as rotas do módulo de vendas
func RegisterSaleRoutes(r *gin.RouterGroup, saleController *controller.SaleController, auth gin.HandlerFunc) {
	sales := r.Group("/sales")
	sales.Use(auth)
	{
		sales.POST("", saleController.Create)
		sales.GET("", saleController.List)
		sales.GET("/:id", saleController.Get)
	}
}
