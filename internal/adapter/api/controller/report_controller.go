package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/rms-api/internal/adapter/api/dto"
	productdomain "github.com/hugohenrick/rms-api/internal/domain/product"
	reportdomain "github.com/hugohenrick/rms-api/internal/domain/report"
	"github.com/hugohenrick/rms-api/pkg/apperr"
	"github.com/hugohenrick/rms-api/pkg/logger"
)

// ReportService produz os relatórios de vendas e estoque
type ReportService interface {
	ParseDate(field, value string) (time.Time, error)
	Summarize(ctx context.Context, fromDate, toDate time.Time) (reportdomain.SalesSummary, error)
	LowStock(ctx context.Context, threshold *int64) ([]*productdomain.Product, error)
}

// ReportController gerencia as requisições de relatórios
type ReportController struct {
	reports ReportService
	logger  logger.Logger
}

// NewReportController cria uma nova instância de ReportController
func NewReportController(reports ReportService, logger logger.Logger) *ReportController {
	return &ReportController{
		reports: reports,
		logger:  logger,
	}
}

// SalesSummary resume as vendas de um período
// @Summary Resumo de vendas
// @Description Soma receita e quantidade de vendas entre from_date e to_date, inclusive
// @Tags reports
// @Produce json
// @Param from_date query string true "Data inicial (YYYY-MM-DD)"
// @Param to_date query string true "Data final (YYYY-MM-DD)"
// @Success 200 {object} dto.SalesSummaryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/reports/sales-summary [get]
func (c *ReportController) SalesSummary(ctx *gin.Context) {
	from, err := c.reports.ParseDate("from_date", ctx.Query("from_date"))
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao gerar resumo de vendas")
		return
	}
	to, err := c.reports.ParseDate("to_date", ctx.Query("to_date"))
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao gerar resumo de vendas")
		return
	}

	summary, err := c.reports.Summarize(ctx.Request.Context(), from, to)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao gerar resumo de vendas")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSalesSummaryResponse(summary))
}

// LowStock lista os produtos com estoque baixo
// @Summary Produtos com estoque baixo
// @Description Sem threshold, cada produto é comparado ao próprio nível de reposição
// @Tags reports
// @Produce json
// @Param threshold query int false "Limite de estoque"
// @Success 200 {array} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/reports/low-stock [get]
func (c *ReportController) LowStock(ctx *gin.Context) {
	var threshold *int64
	if raw, ok := ctx.GetQuery("threshold"); ok && raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(ctx, c.logger, apperr.InvalidRequest("threshold must be an integer"), "")
			return
		}
		threshold = &v
	}

	products, err := c.reports.LowStock(ctx.Request.Context(), threshold)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao listar estoque baixo")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductResponses(products))
}
