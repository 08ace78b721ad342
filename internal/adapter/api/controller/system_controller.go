package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/rms-api/internal/adapter/api/dto"
	"github.com/hugohenrick/rms-api/pkg/logger"
)

// WelcomeMessage é a mensagem retornada na raiz da API
const WelcomeMessage = "Welcome to the RMS API. Check out the docs at /docs/index.html"

// Pinger verifica a disponibilidade do armazenamento
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemController responde às rotas de infraestrutura
type SystemController struct {
	storage Pinger
	logger  logger.Logger
}

// NewSystemController cria uma nova instância de SystemController
func NewSystemController(storage Pinger, logger logger.Logger) *SystemController {
	return &SystemController{
		storage: storage,
		logger:  logger,
	}
}

// Root retorna a mensagem de boas-vindas
// @Summary Boas-vindas
// @Tags system
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router / [get]
func (c *SystemController) Root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: WelcomeMessage})
}

// Health verifica a conexão com o armazenamento
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (c *SystemController) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := c.storage.Ping(pingCtx); err != nil {
		c.logger.Warn("health check falhou", "error", err)
		ctx.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "degraded", Database: "down"})
		return
	}

	ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Database: "up"})
}
