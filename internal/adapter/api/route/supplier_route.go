package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/rms-api/internal/adapter/api/controller"
)

// RegisterSupplierRoutes registra as rotas do módulo de fornecedores
func RegisterSupplierRoutes(r *gin.RouterGroup, supplierController *controller.SupplierController, auth gin.HandlerFunc) {
	suppliers := r.Group("/suppliers")
	suppliers.Use(auth)
	{
		suppliers.POST("", supplierController.Create)
		suppliers.GET("", supplierController.List)
		suppliers.GET("/:id", supplierController.Get)
	}
}
