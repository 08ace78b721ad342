package idempotency

import (
	"net/http"
	"strings"

	"github.com/hugohenrick/rms-api/pkg/apperr"
)

// Header é o cabeçalho HTTP que carrega a chave de idempotência
const Header = "Idempotency-Key"

// MaxLength é o tamanho máximo aceito para a chave
const MaxLength = 255

// ErrInvalidKey indica uma chave longa demais ou com caracteres de controle
var ErrInvalidKey = apperr.InvalidRequest("Idempotency-Key must be 1-255 printable characters")

// Key extrai a chave da requisição; string vazia quando ausente
func Key(r *http.Request) (string, error) {
	key := strings.TrimSpace(r.Header.Get(Header))
	if key == "" {
		return "", nil
	}
	if len(key) > MaxLength {
		return "", ErrInvalidKey
	}
	for _, c := range key {
		if c < 0x20 || c == 0x7f {
			return "", ErrInvalidKey
		}
	}
	return key, nil
}
