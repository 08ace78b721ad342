package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/rms-api/internal/adapter/api/controller"
)

// BasePath é o prefixo das rotas de negócio
const BasePath = "/api"

// Controllers agrupa os controllers da API
type Controllers struct {
	System    *controller.SystemController
	Suppliers *controller.SupplierController
	Products  *controller.ProductController
	Customers *controller.CustomerController
	Sales     *controller.SaleController
	Reports   *controller.ReportController
}

// SetupRoutes configura todas as rotas da API. auth protege apenas as rotas de negócio.
func SetupRoutes(router *gin.Engine, c Controllers, auth gin.HandlerFunc) {
	router.GET("/", c.System.Root)
	router.GET("/health", c.System.Health)

	api := router.Group(BasePath)

	RegisterSupplierRoutes(api, c.Suppliers, auth)
	RegisterProductRoutes(api, c.Products, auth)
	RegisterCustomerRoutes(api, c.Customers, auth)
	RegisterSaleRoutes(api, c.Sales, auth)
	RegisterReportRoutes(api, c.Reports, auth)
}
