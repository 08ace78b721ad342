package customer

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/rms-api/pkg/apperr"
)

var (
	ErrEmptyName      = apperr.InvalidRequest("customer name must not be empty")
	ErrInvalidEmail   = apperr.InvalidRequest("customer email is invalid")
	ErrNotFound       = apperr.NotFound("customer not found")
	ErrDuplicateEmail = apperr.Conflict("customer with this email already exists")
)

// Customer representa um cliente no sistema
type Customer struct {
	ID        string    `json:"id"`         // ID do Cliente
	Name      string    `json:"name"`       // Nome
	Phone     string    `json:"phone"`      // Telefone
	Email     *string   `json:"email"`      // Email, único quando informado
	CreatedAt time.Time `json:"created_at"` // Data de Criação
}

// NewCustomer cria um novo cliente
func NewCustomer(name, phone string, email *string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	var mail *string
	if email != nil {
		v := strings.TrimSpace(*email)
		if v != "" {
			// Validação mínima; o formato completo é verificado na camada HTTP
			if !strings.Contains(v, "@") {
				return nil, ErrInvalidEmail
			}
			mail = &v
		}
	}

	return &Customer{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     phone,
		Email:     mail,
		CreatedAt: time.Now().UTC(),
	}, nil
}
