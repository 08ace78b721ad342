package product

import (
	"context"
)

// Repository define a interface para operações de repositório de produtos
type Repository interface {
	// Create cria um novo produto
	Create(ctx context.Context, p *Product) error

	// FindByID busca um produto pelo ID
	FindByID(ctx context.Context, id string) (*Product, error)

	// List lista os produtos ordenados por nome
	List(ctx context.Context, limit, offset int) ([]*Product, error)

	// Update aplica uma atualização parcial sob bloqueio da linha e retorna o produto atualizado
	Update(ctx context.Context, id string, patch Patch) (*Product, error)

	// Delete remove um produto que não esteja referenciado por vendas
	Delete(ctx context.Context, id string) error
}
