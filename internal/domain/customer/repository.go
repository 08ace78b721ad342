package customer

import (
	"context"
)

// Repository define a interface para operações de repositório de clientes
type Repository interface {
	// Create cria um novo cliente
	Create(ctx context.Context, c *Customer) error

	// FindByID busca um cliente pelo ID
	FindByID(ctx context.Context, id string) (*Customer, error)

	// List lista os clientes com paginação, ordenados por nome
	List(ctx context.Context, limit, offset int) ([]*Customer, error)
}
