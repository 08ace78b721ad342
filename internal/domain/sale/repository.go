package sale

import (
	"context"

	"github.com/hugohenrick/rms-api/internal/domain/product"
)

// Tx reúne as operações disponíveis dentro da transação de criação de venda.
// Toda escrita feita por um Tx só fica visível após o commit.
type Tx interface {
	// ClaimIdempotencyKey reserva a chave; se ela já estiver associada a uma venda
	// retorna o ID da venda e claimed=false
	ClaimIdempotencyKey(ctx context.Context, key string) (saleID string, claimed bool, err error)

	// BindIdempotencyKey associa a chave reservada à venda criada
	BindIdempotencyKey(ctx context.Context, key, saleID string) error

	// LockProduct lê o produto com bloqueio exclusivo até o fim da transação
	LockProduct(ctx context.Context, id string) (*product.Product, error)

	// CustomerExists verifica se o cliente existe
	CustomerExists(ctx context.Context, id string) (bool, error)

	// InsertSale grava a venda e seus itens
	InsertSale(ctx context.Context, s *Sale) error

	// DecrementStock baixa o estoque de um produto bloqueado
	DecrementStock(ctx context.Context, productID string, quantity int64) error

	// FindByID busca uma venda com itens e cliente
	FindByID(ctx context.Context, id string) (*Sale, error)
}

// Repository define a interface para operações de repositório de vendas
type Repository interface {
	// WithinTx executa fn em uma transação; qualquer erro ou cancelamento desfaz todas as escritas
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error

	// FindByID busca uma venda pelo ID
	FindByID(ctx context.Context, id string) (*Sale, error)

	// List lista as vendas da mais recente para a mais antiga
	List(ctx context.Context, limit, offset int) ([]*Sale, error)
}
