package supplier

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/rms-api/pkg/apperr"
)

var (
	ErrEmptyName = apperr.InvalidRequest("supplier name must not be empty")
	ErrNotFound  = apperr.NotFound("supplier not found")
)

// Supplier representa um fornecedor de produtos
type Supplier struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewSupplier cria um novo fornecedor
func NewSupplier(name, contactName, phone, email, address string) (*Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	return &Supplier{
		ID:          uuid.New().String(),
		Name:        name,
		ContactName: contactName,
		Phone:       phone,
		Email:       email,
		Address:     address,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
