package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/rms-api/internal/adapter/api/dto"
	customerdomain "github.com/hugohenrick/rms-api/internal/domain/customer"
	"github.com/hugohenrick/rms-api/pkg/logger"
)

// CustomerController gerencia as requisições relacionadas a clientes
type CustomerController struct {
	customerRepo customerdomain.Repository
	logger       logger.Logger
}

// NewCustomerController cria uma nova instância de CustomerController
func NewCustomerController(customerRepo customerdomain.Repository, logger logger.Logger) *CustomerController {
	return &CustomerController{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Create cria um novo cliente
// @Summary Criar cliente
// @Description Cria um novo cliente; o e-mail, quando informado, deve ser único
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body dto.CustomerRequest true "Dados do cliente"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/customers [post]
func (c *CustomerController) Create(ctx *gin.Context) {
	var req dto.CustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	customer, err := customerdomain.NewCustomer(req.Name, req.Phone, req.Email)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao criar cliente")
		return
	}

	if err := c.customerRepo.Create(ctx.Request.Context(), customer); err != nil {
		respondError(ctx, c.logger, err, "erro ao salvar cliente")
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// List lista os clientes
// @Summary Listar clientes
// @Tags customers
// @Produce json
// @Param skip query int false "Registros a pular" default(0)
// @Param limit query int false "Máximo de registros" default(100)
// @Success 200 {array} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/customers [get]
func (c *CustomerController) List(ctx *gin.Context) {
	pagination, err := dto.GetPagination(ctx)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao listar clientes")
		return
	}

	customers, err := c.customerRepo.List(ctx.Request.Context(), pagination.Limit, pagination.Skip)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao listar clientes")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerResponses(customers))
}

// Get retorna um cliente pelo ID
// @Summary Buscar cliente
// @Tags customers
// @Produce json
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/customers/{id} [get]
func (c *CustomerController) Get(ctx *gin.Context) {
	customer, err := c.customerRepo.FindByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao buscar cliente")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}
