package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/rms-api/internal/adapter/api/dto"
	supplierdomain "github.com/hugohenrick/rms-api/internal/domain/supplier"
	"github.com/hugohenrick/rms-api/pkg/logger"
)

// SupplierController gerencia as requisições relacionadas a fornecedores
type SupplierController struct {
	supplierRepo supplierdomain.Repository
	logger       logger.Logger
}

// NewSupplierController cria uma nova instância de SupplierController
func NewSupplierController(supplierRepo supplierdomain.Repository, logger logger.Logger) *SupplierController {
	return &SupplierController{
		supplierRepo: supplierRepo,
		logger:       logger,
	}
}

// Create cria um novo fornecedor
// @Summary Criar fornecedor
// @Tags suppliers
// @Accept json
// @Produce json
// @Param supplier body dto.SupplierCreateRequest true "Dados do fornecedor"
// @Success 201 {object} dto.SupplierResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/suppliers [post]
func (c *SupplierController) Create(ctx *gin.Context) {
	var req dto.SupplierCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	s, err := supplierdomain.NewSupplier(req.Name, req.ContactName, req.Phone, req.Email, req.Address)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao criar fornecedor")
		return
	}

	if err := c.supplierRepo.Create(ctx.Request.Context(), s); err != nil {
		respondError(ctx, c.logger, err, "erro ao salvar fornecedor")
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSupplierResponse(s))
}

// List lista os fornecedores
// @Summary Listar fornecedores
// @Tags suppliers
// @Produce json
// @Param skip query int false "Registros a pular" default(0)
// @Param limit query int false "Máximo de registros" default(100)
// @Success 200 {array} dto.SupplierResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/suppliers [get]
func (c *SupplierController) List(ctx *gin.Context) {
	pagination, err := dto.GetPagination(ctx)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao listar fornecedores")
		return
	}

	suppliers, err := c.supplierRepo.List(ctx.Request.Context(), pagination.Limit, pagination.Skip)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao listar fornecedores")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSupplierResponses(suppliers))
}

// Get retorna um fornecedor pelo ID
// @Summary Buscar fornecedor
// @Tags suppliers
// @Produce json
// @Param id path string true "ID do fornecedor"
// @Success 200 {object} dto.SupplierResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/suppliers/{id} [get]
func (c *SupplierController) Get(ctx *gin.Context) {
	s, err := c.supplierRepo.FindByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao buscar fornecedor")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSupplierResponse(s))
}
