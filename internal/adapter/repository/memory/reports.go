package memory

import (
	"context"
	"time"

	"github.com/hugohenrick/rms-api/internal/domain/product"
	"github.com/hugohenrick/rms-api/internal/domain/report"
)

type reportRepo struct{ s *Store }

func (r *reportRepo) SalesTotals(ctx context.Context, from, to time.Time) (report.Totals, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var t report.Totals
	for _, sl := range r.s.sales {
		if sl.CreatedAt.Before(from) || !sl.CreatedAt.Before(to) {
			continue
		}
		t.RevenueCents += sl.TotalCents
		t.Count++
	}
	return t, nil
}

func (r *reportRepo) LowStock(ctx context.Context, threshold *int64) ([]*product.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	low := []*product.Product{}
	for _, p := range r.s.products {
		if p.IsLowStock(threshold) {
			low = append(low, r.s.productView(p))
		}
	}
	sortProducts(low, func(a, b *product.Product) bool {
		if a.QuantityAvailable != b.QuantityAvailable {
			return a.QuantityAvailable < b.QuantityAvailable
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return low, nil
}
