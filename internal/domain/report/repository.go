package report

import (
	"context"
	"time"

	"github.com/hugohenrick/rms-api/internal/domain/product"
)

// Repository define as consultas agregadas usadas pelos relatórios
type Repository interface {
	// SalesTotals soma total_cents e conta as vendas com created_at em [from, to)
	SalesTotals(ctx context.Context, from, to time.Time) (Totals, error)

	// LowStock lista produtos no limite informado ou, com threshold nil, no próprio nível de reposição.
	// O resultado é ordenado pelo estoque disponível, do menor para o maior.
	LowStock(ctx context.Context, threshold *int64) ([]*product.Product, error)
}
