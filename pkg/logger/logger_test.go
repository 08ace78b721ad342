package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerFormatsKeyValues(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewLoggerWithWriters(&out, &errOut, true)

	l.Info("venda criada", "sale_id", "abc", "total_cents", 3240)
	l.Error("erro ao criar venda", "error", errors.New("boom"))
	l.Debug("detalhe", "odd")

	assert.Contains(t, out.String(), "INFO: ")
	assert.Contains(t, out.String(), "venda criada sale_id=abc total_cents=3240")
	assert.Contains(t, out.String(), "detalhe extra=odd")
	assert.Contains(t, errOut.String(), "ERROR: ")
	assert.Contains(t, errOut.String(), "erro ao criar venda error=boom")
}

func TestDebugDisabled(t *testing.T) {
	var out bytes.Buffer
	l := NewLoggerWithWriters(&out, &out, false)

	l.Debug("escondido")
	l.Warn("visível")

	assert.NotContains(t, out.String(), "escondido")
	assert.Contains(t, out.String(), "WARN: ")
}
