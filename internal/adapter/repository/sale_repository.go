package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/rms-api/internal/domain/customer"
	"github.com/hugohenrick/rms-api/internal/domain/product"
	"github.com/hugohenrick/rms-api/internal/domain/sale"
	"github.com/hugohenrick/rms-api/internal/infrastructure/database"
	"github.com/hugohenrick/rms-api/pkg/apperr"
	"github.com/jackc/pgx/v5"
)

const saleSelect = `
	SELECT
		s.id, s.customer_id, s.subtotal_cents, s.tax_cents, s.total_cents, s.created_at,
		c.id, c.name, c.phone, c.email, c.created_at
	FROM sales s
	LEFT JOIN customers c ON c.id = s.customer_id`

// SaleRepository implementa a interface sale.Repository
type SaleRepository struct {
	db          *database.PostgresDB
	lockTimeout time.Duration
}

// NewSaleRepository cria uma nova instância de SaleRepository.
// lockTimeout limita a espera por linhas bloqueadas dentro de WithinTx.
func NewSaleRepository(db *database.PostgresDB, lockTimeout time.Duration) sale.Repository {
	return &SaleRepository{
		db:          db,
		lockTimeout: lockTimeout,
	}
}

// WithinTx implementa sale.Repository.WithinTx
func (r *SaleRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, tx sale.Tx) error) error {
	err := r.db.LockingTransaction(ctx, r.lockTimeout, func(tx pgx.Tx) error {
		return fn(ctx, &saleTx{tx: tx})
	})
	return translateLockError(err)
}

// FindByID implementa sale.Repository.FindByID
func (r *SaleRepository) FindByID(ctx context.Context, id string) (*sale.Sale, error) {
	return findSale(ctx, r.db.Pool(), id)
}

// List implementa sale.Repository.List
func (r *SaleRepository) List(ctx context.Context, limit, offset int) ([]*sale.Sale, error) {
	q := r.db.Pool()

	rows, err := q.Query(ctx,
		saleSelect+` ORDER BY s.created_at DESC, s.id DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar vendas: %w", err)
	}

	sales, err := collectSales(rows)
	if err != nil {
		return nil, err
	}
	if err := attachItems(ctx, q, sales); err != nil {
		return nil, err
	}

	return sales, nil
}

// saleTx implementa sale.Tx sobre uma transação pgx
type saleTx struct {
	tx pgx.Tx
}

func (t *saleTx) ClaimIdempotencyKey(ctx context.Context, key string) (string, bool, error) {
	// Uma chave concorrente espera aqui até a outra transação terminar
	tag, err := t.tx.Exec(ctx,
		`INSERT INTO sale_idempotency (idempotency_key) VALUES ($1)
		ON CONFLICT (idempotency_key) DO NOTHING`, key)
	if err != nil {
		return "", false, fmt.Errorf("erro ao registrar chave de idempotência: %w", translateLockError(err))
	}
	if tag.RowsAffected() == 1 {
		return "", true, nil
	}

	var saleID *string
	err = t.tx.QueryRow(ctx,
		`SELECT sale_id FROM sale_idempotency WHERE idempotency_key = $1`, key).Scan(&saleID)
	if err != nil {
		return "", false, fmt.Errorf("erro ao buscar chave de idempotência: %w", err)
	}
	if saleID == nil {
		return "", false, apperr.Retry(nil, "a sale with this idempotency key is still being processed, retry the request")
	}

	return *saleID, false, nil
}

func (t *saleTx) BindIdempotencyKey(ctx context.Context, key, saleID string) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE sale_idempotency SET sale_id = $2 WHERE idempotency_key = $1`, key, saleID)
	if err != nil {
		return fmt.Errorf("erro ao associar chave de idempotência: %w", err)
	}
	return nil
}

func (t *saleTx) LockProduct(ctx context.Context, id string) (*product.Product, error) {
	return findProduct(ctx, t.tx, id, " FOR UPDATE OF p")
}

func (t *saleTx) CustomerExists(ctx context.Context, id string) (bool, error) {
	return customerExists(ctx, t.tx, id)
}

func (t *saleTx) InsertSale(ctx context.Context, s *sale.Sale) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO sales (id, customer_id, subtotal_cents, tax_cents, total_cents, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.CustomerID, s.SubtotalCents, s.TaxCents, s.TotalCents, s.CreatedAt)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return customer.ErrNotFound
		}
		return fmt.Errorf("erro ao criar venda: %w", err)
	}

	for _, item := range s.Items {
		_, err := t.tx.Exec(ctx,
			`INSERT INTO sale_items (
				id, sale_id, product_id, line_no, unit_price_cents, quantity, line_total_cents
			) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			item.ID, s.ID, item.ProductID, item.LineNo, item.UnitPriceCents,
			item.Quantity, item.LineTotalCents)
		if err != nil {
			return fmt.Errorf("erro ao criar item da venda: %w", err)
		}
	}

	return nil
}

func (t *saleTx) DecrementStock(ctx context.Context, productID string, quantity int64) error {
	// A condição no WHERE garante que o estoque nunca fique negativo
	tag, err := t.tx.Exec(ctx,
		`UPDATE products
		SET quantity_available = quantity_available - $2, updated_at = NOW()
		WHERE id = $1 AND quantity_available >= $2`,
		productID, quantity)
	if err != nil {
		if pgErrorCode(err) == pgCheckViolation {
			return apperr.Conflict("insufficient stock for product %s", productID)
		}
		return fmt.Errorf("erro ao baixar estoque: %w", translateLockError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperr.Conflict("insufficient stock for product %s", productID)
	}

	return nil
}

func (t *saleTx) FindByID(ctx context.Context, id string) (*sale.Sale, error) {
	return findSale(ctx, t.tx, id)
}

func findSale(ctx context.Context, q querier, id string) (*sale.Sale, error) {
	if !validID(id) {
		return nil, sale.ErrNotFound
	}

	s, err := scanSale(q.QueryRow(ctx, saleSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sale.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao buscar venda: %w", err)
	}

	if err := attachItems(ctx, q, []*sale.Sale{s}); err != nil {
		return nil, err
	}

	return s, nil
}

func collectSales(rows pgx.Rows) ([]*sale.Sale, error) {
	defer rows.Close()

	sales := []*sale.Sale{}
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler venda: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar vendas: %w", err)
	}

	return sales, nil
}

func scanSale(row pgx.Row) (*sale.Sale, error) {
	var s sale.Sale
	var (
		cID, cName, cPhone, cEmail *string
		cCreatedAt                 *time.Time
	)

	err := row.Scan(
		&s.ID, &s.CustomerID, &s.SubtotalCents, &s.TaxCents, &s.TotalCents, &s.CreatedAt,
		&cID, &cName, &cPhone, &cEmail, &cCreatedAt)
	if err != nil {
		return nil, err
	}

	if cID != nil {
		s.Customer = &customer.Customer{
			ID:    *cID,
			Name:  deref(cName),
			Phone: deref(cPhone),
			Email: cEmail,
		}
		if cCreatedAt != nil {
			s.Customer.CreatedAt = cCreatedAt.UTC()
		}
	}
	s.CreatedAt = s.CreatedAt.UTC()
	s.Items = []sale.Item{}

	return &s, nil
}

// attachItems carrega os itens de todas as vendas em uma única consulta
func attachItems(ctx context.Context, q querier, sales []*sale.Sale) error {
	if len(sales) == 0 {
		return nil
	}

	ids := make([]string, 0, len(sales))
	byID := make(map[string]*sale.Sale, len(sales))
	for _, s := range sales {
		ids = append(ids, s.ID)
		byID[s.ID] = s
	}

	rows, err := q.Query(ctx,
		`SELECT id, sale_id, product_id, line_no, unit_price_cents, quantity, line_total_cents
		FROM sale_items WHERE sale_id = ANY($1::uuid[]) ORDER BY sale_id, line_no`, ids)
	if err != nil {
		return fmt.Errorf("erro ao buscar itens das vendas: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it sale.Item
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.LineNo,
			&it.UnitPriceCents, &it.Quantity, &it.LineTotalCents); err != nil {
			return fmt.Errorf("erro ao ler item da venda: %w", err)
		}
		if s, ok := byID[it.SaleID]; ok {
			s.Items = append(s.Items, it)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("erro ao iterar itens das vendas: %w", err)
	}

	return nil
}
