package dto

import (
	"time"

	"github.com/hugohenrick/rms-api/internal/domain/supplier"
)

// SupplierCreateRequest representa a requisição de criação de fornecedor
type SupplierCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email" binding:"omitempty,email"`
	Address     string `json:"address"`
}

// SupplierResponse representa a resposta de fornecedor
type SupplierResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToSupplierResponse converte um fornecedor em resposta
func ToSupplierResponse(s *supplier.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		ContactName: s.ContactName,
		Phone:       s.Phone,
		Email:       s.Email,
		Address:     s.Address,
		CreatedAt:   s.CreatedAt,
	}
}

// ToSupplierResponses converte uma lista de fornecedores
func ToSupplierResponses(suppliers []*supplier.Supplier) []SupplierResponse {
	out := make([]SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, ToSupplierResponse(s))
	}
	return out
}
