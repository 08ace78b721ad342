package memory

import (
	"context"
	"sort"
	"time"

	"github.com/hugohenrick/rms-api/internal/domain/product"
	"github.com/hugohenrick/rms-api/internal/domain/sale"
	"github.com/hugohenrick/rms-api/pkg/apperr"
)

type saleRepo struct{ s *Store }

// WithinTx executa fn com o bloqueio de escrita; as escritas ficam pendentes
// e só são aplicadas se fn terminar sem erro e o contexto continuar válido
func (r *saleRepo) WithinTx(ctx context.Context, fn func(ctx context.Context, tx sale.Tx) error) error {
	if err := r.s.acquire(ctx); err != nil {
		return err
	}
	defer r.s.release()

	tx := &memTx{
		s:          r.s,
		decrements: make(map[string]int64),
		bound:      make(map[string]string),
		claimed:    make(map[string]bool),
	}

	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tx.commit()
	return nil
}

func (r *saleRepo) FindByID(ctx context.Context, id string) (*sale.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sl, ok := r.s.sales[id]
	if !ok {
		return nil, sale.ErrNotFound
	}
	return r.s.saleView(sl), nil
}

func (r *saleRepo) List(ctx context.Context, limit, offset int) ([]*sale.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := make([]*sale.Sale, 0, len(r.s.sales))
	for _, sl := range r.s.sales {
		all = append(all, r.s.saleView(sl))
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	return page(all, limit, offset), nil
}

// memTx implementa sale.Tx; o bloqueio de escrita do Store já está adquirido
type memTx struct {
	s          *Store
	decrements map[string]int64
	sales      []*sale.Sale
	claimed    map[string]bool
	bound      map[string]string
}

func (t *memTx) ClaimIdempotencyKey(ctx context.Context, key string) (string, bool, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	if saleID, ok := t.s.idempotency[key]; ok {
		return saleID, false, nil
	}
	t.claimed[key] = true
	return "", true, nil
}

func (t *memTx) BindIdempotencyKey(ctx context.Context, key, saleID string) error {
	if !t.claimed[key] {
		return apperr.Internal(nil, "chave de idempotência não reservada")
	}
	t.bound[key] = saleID
	return nil
}

func (t *memTx) LockProduct(ctx context.Context, id string) (*product.Product, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	p, ok := t.s.products[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	view := t.s.productView(p)
	view.QuantityAvailable -= t.decrements[id]
	return view, nil
}

func (t *memTx) CustomerExists(ctx context.Context, id string) (bool, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	_, ok := t.s.customers[id]
	return ok, nil
}

func (t *memTx) InsertSale(ctx context.Context, sl *sale.Sale) error {
	cp := *sl
	cp.Customer = nil
	cp.Items = append([]sale.Item{}, sl.Items...)
	t.sales = append(t.sales, &cp)
	return nil
}

func (t *memTx) DecrementStock(ctx context.Context, productID string, quantity int64) error {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	p, ok := t.s.products[productID]
	if !ok {
		return product.ErrNotFound
	}
	if p.QuantityAvailable-t.decrements[productID] < quantity {
		return apperr.Conflict("insufficient stock for product %s", productID)
	}
	t.decrements[productID] += quantity
	return nil
}

func (t *memTx) FindByID(ctx context.Context, id string) (*sale.Sale, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	for _, sl := range t.sales {
		if sl.ID == id {
			return t.s.saleView(sl), nil
		}
	}
	sl, ok := t.s.sales[id]
	if !ok {
		return nil, sale.ErrNotFound
	}
	return t.s.saleView(sl), nil
}

func (t *memTx) commit() {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	now := time.Now().UTC()
	for id, qty := range t.decrements {
		next := *t.s.products[id]
		next.QuantityAvailable -= qty
		next.UpdatedAt = now
		t.s.products[id] = &next
	}
	for _, sl := range t.sales {
		t.s.sales[sl.ID] = sl
	}
	for key, saleID := range t.bound {
		t.s.idempotency[key] = saleID
	}
}
