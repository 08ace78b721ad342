package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifica um erro da aplicação
type Kind int

const (
	// KindInternal representa falhas de armazenamento ou inesperadas
	KindInternal Kind = iota
	// KindInvalidRequest representa entrada malformada ou semanticamente inválida
	KindInvalidRequest
	// KindNotFound representa uma entidade referenciada inexistente
	KindNotFound
	// KindConflict representa violação de regra de negócio (estoque, unicidade, referência)
	KindConflict
)

// String retorna o nome do tipo de erro
func (k Kind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid_request"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error é o erro tipado propagado entre as camadas
type Error struct {
	Kind      Kind
	Message   string
	Retryable bool
	Err       error
}

// Error implementa a interface error
func (e *Error) Error() string {
	if e.Err != nil && e.Kind == KindInternal {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap expõe a causa original
func (e *Error) Unwrap() error {
	return e.Err
}

// InvalidRequest cria um erro de requisição inválida
func InvalidRequest(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidRequest, Message: fmt.Sprintf(format, args...)}
}

// NotFound cria um erro de entidade não encontrada
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict cria um erro de conflito de regra de negócio
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Retry cria um conflito transitório; o cliente pode repetir a requisição
func Retry(err error, format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...), Retryable: true, Err: err}
}

// Internal envolve uma falha inesperada
func Internal(err error, message string) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf retorna o tipo do erro; erros desconhecidos são internos
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsRetryable indica se o erro é um conflito transitório
func IsRetryable(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Retryable
}

// Message retorna a mensagem legível do erro
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// HTTPStatus traduz o tipo do erro para o código HTTP
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInvalidRequest, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
