package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/rms-api/internal/adapter/api/dto"
	"github.com/hugohenrick/rms-api/pkg/apperr"
	"github.com/hugohenrick/rms-api/pkg/logger"
)

// respondError traduz o erro para o status HTTP. Falhas internas são logadas
// e respondidas com a mensagem da operação e o diagnóstico em details.
func respondError(ctx *gin.Context, log logger.Logger, err error, internalMessage string) {
	status := apperr.HTTPStatus(err)

	if status == http.StatusInternalServerError {
		log.Error(internalMessage, "error", err, "method", ctx.Request.Method, "path", ctx.Request.URL.Path)
		ctx.JSON(status, dto.NewErrorResponse(status, internalMessage, err.Error()))
		return
	}

	if apperr.IsRetryable(err) {
		ctx.Header("Retry-After", "1")
	}
	ctx.JSON(status, dto.NewErrorResponse(status, apperr.Message(err), ""))
}

// respondBindError responde a um corpo JSON malformado ou incompleto
func respondBindError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid request body", err.Error()))
}
