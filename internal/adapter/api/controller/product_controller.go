package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/rms-api/internal/adapter/api/dto"
	productdomain "github.com/hugohenrick/rms-api/internal/domain/product"
	"github.com/hugohenrick/rms-api/pkg/logger"
)

// ProductController gerencia as requisições relacionadas a produtos
type ProductController struct {
	productRepo productdomain.Repository
	logger      logger.Logger
}

// NewProductController cria uma nova instância de ProductController
func NewProductController(productRepo productdomain.Repository, logger logger.Logger) *ProductController {
	return &ProductController{
		productRepo: productRepo,
		logger:      logger,
	}
}

// Create cria um novo produto
// @Summary Criar produto
// @Description Cria um novo produto; o SKU deve ser único
// @Tags products
// @Accept json
// @Produce json
// @Param product body dto.ProductCreateRequest true "Dados do produto"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/products [post]
func (c *ProductController) Create(ctx *gin.Context) {
	var req dto.ProductCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	p, err := productdomain.NewProduct(
		req.Name,
		req.SKU,
		*req.UnitPriceCents,
		*req.QuantityAvailable,
		req.ReorderLevel,
		req.SupplierID,
	)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao criar produto")
		return
	}

	if err := c.productRepo.Create(ctx.Request.Context(), p); err != nil {
		respondError(ctx, c.logger, err, "erro ao salvar produto")
		return
	}

	// Recarrega para incluir o fornecedor
	if stored, err := c.productRepo.FindByID(ctx.Request.Context(), p.ID); err == nil {
		p = stored
	} else {
		c.logger.Warn("erro ao recarregar produto criado", "id", p.ID, "error", err)
	}

	ctx.JSON(http.StatusCreated, dto.ToProductResponse(p))
}

// List lista os produtos
// @Summary Listar produtos
// @Description Lista os produtos ordenados por nome
// @Tags products
// @Produce json
// @Param skip query int false "Registros a pular" default(0)
// @Param limit query int false "Máximo de registros" default(100)
// @Success 200 {array} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/products [get]
func (c *ProductController) List(ctx *gin.Context) {
	pagination, err := dto.GetPagination(ctx)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao listar produtos")
		return
	}

	products, err := c.productRepo.List(ctx.Request.Context(), pagination.Limit, pagination.Skip)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao listar produtos")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductResponses(products))
}

// Get retorna um produto pelo ID
// @Summary Buscar produto
// @Tags products
// @Produce json
// @Param id path string true "ID do produto"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/products/{id} [get]
func (c *ProductController) Get(ctx *gin.Context) {
	p, err := c.productRepo.FindByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao buscar produto")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductResponse(p))
}

// Update atualiza parcialmente um produto
// @Summary Atualizar produto
// @Description Atualiza apenas os campos enviados; "supplier_id": null remove o fornecedor
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "ID do produto"
// @Param product body dto.ProductUpdateRequest true "Campos a atualizar"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/products/{id} [put]
func (c *ProductController) Update(ctx *gin.Context) {
	var req dto.ProductUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	p, err := c.productRepo.Update(ctx.Request.Context(), ctx.Param("id"), req.ToPatch())
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao atualizar produto")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductResponse(p))
}

// Delete remove um produto
// @Summary Excluir produto
// @Description Produtos com vendas registradas não podem ser excluídos
// @Tags products
// @Param id path string true "ID do produto"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/products/{id} [delete]
func (c *ProductController) Delete(ctx *gin.Context) {
	if err := c.productRepo.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, c.logger, err, "erro ao excluir produto")
		return
	}

	ctx.Status(http.StatusNoContent)
}
