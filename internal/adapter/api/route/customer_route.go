package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/rms-api/internal/adapter/api/controller"
)

// RegisterCustomerRoutes registra as rotas do módulo de clientes
func RegisterCustomerRoutes(r *gin.RouterGroup, customerController *controller.CustomerController, auth gin.HandlerFunc) {
	customers := r.Group("/customers")
	customers.Use(auth)
	{
		customers.POST("", customerController.Create)
		customers.GET("", customerController.List)
		customers.GET("/:id", customerController.Get)
	}
}
