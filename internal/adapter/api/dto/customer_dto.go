package dto

import (
	"time"

	"github.com/hugohenrick/rms-api/internal/domain/customer"
)

// CustomerRequest representa a requisição de cliente
type CustomerRequest struct {
	Name  string  `json:"name" binding:"required"`
	Phone string  `json:"phone"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// CustomerResponse representa a resposta de cliente
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     *string   `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ToCustomerResponse converte um cliente em resposta
func ToCustomerResponse(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
	}
}

// ToCustomerResponses converte uma lista de clientes
func ToCustomerResponses(customers []*customer.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, ToCustomerResponse(c))
	}
	return out
}
