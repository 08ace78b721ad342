package dto

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/rms-api/pkg/apperr"
)

// Limites de paginação
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// ErrorResponse representa a estrutura de resposta para erros
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// MessageResponse representa uma resposta apenas com mensagem
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse representa a resposta do health check
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Pagination representa os parâmetros skip/limit
type Pagination struct {
	Skip  int
	Limit int
}

// NewErrorResponse cria uma nova resposta de erro
func NewErrorResponse(code int, message, details string) ErrorResponse {
	return ErrorResponse{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// GetPagination lê skip e limit da query string aplicando padrões e limites
func GetPagination(c *gin.Context) (Pagination, error) {
	p := Pagination{Skip: 0, Limit: DefaultLimit}

	if raw := c.Query("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil {
			return p, apperr.InvalidRequest("skip must be an integer")
		}
		if skip > 0 {
			p.Skip = skip
		}
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return p, apperr.InvalidRequest("limit must be an integer")
		}
		switch {
		case limit < 0:
			p.Limit = DefaultLimit
		case limit > MaxLimit:
			p.Limit = MaxLimit
		default:
			p.Limit = limit
		}
	}

	return p, nil
}
