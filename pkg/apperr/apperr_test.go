package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid", InvalidRequest("sale must contain at least one item"), http.StatusBadRequest},
		{"conflict", Conflict("insufficient stock"), http.StatusBadRequest},
		{"not found", NotFound("product not found: id %s", "x"), http.StatusNotFound},
		{"internal", Internal(errors.New("boom"), "erro ao salvar"), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("camada: %w", NotFound("missing")), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestMessageAndRetry(t *testing.T) {
	cause := errors.New("lock timeout")
	err := fmt.Errorf("venda: %w", Retry(cause, "product is locked by another sale, retry the request"))

	assert.Equal(t, KindConflict, KindOf(err))
	assert.True(t, IsRetryable(err))
	assert.Equal(t, "product is locked by another sale, retry the request", Message(err))
	assert.ErrorIs(t, err, cause)

	assert.False(t, IsRetryable(Conflict("duplicate sku")))
	assert.Equal(t, "boom", Message(errors.New("boom")))
}

func TestInternalErrorIncludesCause(t *testing.T) {
	err := Internal(errors.New("connection refused"), "erro ao buscar produto")
	assert.Equal(t, "erro ao buscar produto: connection refused", err.Error())
	assert.Equal(t, "internal", KindInternal.String())
	assert.Equal(t, "conflict", KindConflict.String())
}
