package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/rms-api/internal/adapter/api/controller"
)

// RegisterReportRoutes registra as rotas de relatórios
func RegisterReportRoutes(r *gin.RouterGroup, reportController *controller.ReportController, auth gin.HandlerFunc) {
	reports := r.Group("/reports")
	reports.Use(auth)
	{
		reports.GET("/sales-summary", reportController.SalesSummary)
		reports.GET("/low-stock", reportController.LowStock)
	}
}
