package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/rms-api/internal/adapter/api/dto"
	saledomain "github.com/hugohenrick/rms-api/internal/domain/sale"
	"github.com/hugohenrick/rms-api/pkg/idempotency"
	"github.com/hugohenrick/rms-api/pkg/logger"
)

// SaleService é o motor de vendas usado pelo controller
type SaleService interface {
	CreateSale(ctx context.Context, req saledomain.CreateRequest) (*saledomain.Sale, bool, error)
	FindByID(ctx context.Context, id string) (*saledomain.Sale, error)
	List(ctx context.Context, limit, offset int) ([]*saledomain.Sale, error)
}

// SaleController gerencia as requisições relacionadas a vendas
type SaleController struct {
	sales  SaleService
	logger logger.Logger
}

// NewSaleController cria uma nova instância de SaleController
func NewSaleController(sales SaleService, logger logger.Logger) *SaleController {
	return &SaleController{
		sales:  sales,
		logger: logger,
	}
}

// Create registra uma venda
// @Summary Registrar venda
// @Description Registra a venda de forma atômica: valida estoque, calcula imposto e baixa as quantidades.
// @Description Com Idempotency-Key, uma repetição devolve a venda original com status 200.
// @Tags sales
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Chave de idempotência"
// @Param sale body dto.SaleCreateRequest true "Itens da venda"
// @Success 201 {object} dto.SaleResponse
// @Success 200 {object} dto.SaleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/sales [post]
func (c *SaleController) Create(ctx *gin.Context) {
	key, err := idempotency.Key(ctx.Request)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao ler Idempotency-Key")
		return
	}

	var req dto.SaleCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	created, replayed, err := c.sales.CreateSale(ctx.Request.Context(), req.ToCreateRequest(key))
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao registrar venda")
		return
	}

	status := http.StatusCreated
	if replayed {
		status = http.StatusOK
	}
	ctx.JSON(status, dto.ToSaleResponse(created))
}

// List lista as vendas
// @Summary Listar vendas
// @Description Lista as vendas da mais recente para a mais antiga
// @Tags sales
// @Produce json
// @Param skip query int false "Registros a pular" default(0)
// @Param limit query int false "Máximo de registros" default(100)
// @Success 200 {array} dto.SaleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/sales [get]
func (c *SaleController) List(ctx *gin.Context) {
	pagination, err := dto.GetPagination(ctx)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao listar vendas")
		return
	}

	sales, err := c.sales.List(ctx.Request.Context(), pagination.Limit, pagination.Skip)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao listar vendas")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleResponses(sales))
}

// Get retorna uma venda pelo ID
// @Summary Buscar venda
// @Tags sales
// @Produce json
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/sales/{id} [get]
func (c *SaleController) Get(ctx *gin.Context) {
	s, err := c.sales.FindByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao buscar venda")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleResponse(s))
}
