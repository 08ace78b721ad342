package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/hugohenrick/rms-api/internal/domain/product"
	"github.com/hugohenrick/rms-api/internal/domain/report"
	"github.com/hugohenrick/rms-api/internal/infrastructure/database"
)

// ReportRepository implementa a interface report.Repository
type ReportRepository struct {
	db *database.PostgresDB
}

// NewReportRepository cria uma nova instância de ReportRepository
func NewReportRepository(db *database.PostgresDB) report.Repository {
	return &ReportRepository{
		db: db,
	}
}

// SalesTotals implementa report.Repository.SalesTotals
func (r *ReportRepository) SalesTotals(ctx context.Context, from, to time.Time) (report.Totals, error) {
	var t report.Totals
	err := r.db.Pool().QueryRow(ctx,
		`SELECT COALESCE(SUM(total_cents), 0)::bigint, COUNT(*)
		FROM sales WHERE created_at >= $1 AND created_at < $2`,
		from, to).Scan(&t.RevenueCents, &t.Count)
	if err != nil {
		return report.Totals{}, fmt.Errorf("erro ao totalizar vendas: %w", err)
	}

	return t, nil
}

// LowStock implementa report.Repository.LowStock
func (r *ReportRepository) LowStock(ctx context.Context, threshold *int64) ([]*product.Product, error) {
	rows, err := r.db.Pool().Query(ctx,
		productSelect+`
		WHERE p.quantity_available <= COALESCE($1::bigint, p.reorder_level)
		ORDER BY p.quantity_available ASC, p.name ASC, p.id ASC`,
		threshold)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar produtos com estoque baixo: %w", err)
	}

	return collectProducts(rows)
}
