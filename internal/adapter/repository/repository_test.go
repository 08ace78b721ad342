package repository

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/rms-api/internal/domain/customer"
	"github.com/hugohenrick/rms-api/internal/domain/product"
	"github.com/hugohenrick/rms-api/internal/domain/sale"
	"github.com/hugohenrick/rms-api/internal/infrastructure/database"
	"github.com/hugohenrick/rms-api/pkg/apperr"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productColumns = []string{
	"id", "name", "sku", "unit_price_cents", "quantity_available", "reorder_level",
	"supplier_id", "created_at", "updated_at",
	"s_id", "s_name", "s_contact_name", "s_phone", "s_email", "s_address", "s_created_at",
}

func ptr[T any](v T) *T { return &v }

func newMockDB(t *testing.T) (*database.PostgresDB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return database.NewPostgresDBWithPool(mock, &database.PostgresConfig{}), mock
}

func q(sql string) string { return regexp.QuoteMeta(sql) }

func TestProductCreateDuplicateSKU(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	p, err := product.NewProduct("Coffee", "CF-1", 1000, 5, nil, nil)
	require.NoError(t, err)

	mock.ExpectExec(q("INSERT INTO products")).
		WithArgs(p.ID, "Coffee", "CF-1", int64(1000), int64(5), product.DefaultReorderLevel,
			p.SupplierID, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	err = repo.Create(context.Background(), p)
	assert.ErrorIs(t, err, product.ErrDuplicateSKU)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductFindByIDWithSupplier(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	id := uuid.NewString()
	supID := uuid.NewString()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(q("LEFT JOIN suppliers s ON s.id = p.supplier_id WHERE p.id = $1")).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(productColumns).AddRow(
			id, "Coffee", "CF-1", int64(1000), int64(5), int64(10),
			&supID, now, now,
			&supID, ptr("Acme"), ptr("Joan"), ptr(""), ptr(""), ptr(""), &now))

	p, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, "CF-1", p.SKU)
	assert.Equal(t, int64(5), p.QuantityAvailable)
	require.NotNil(t, p.Supplier)
	assert.Equal(t, "Acme", p.Supplier.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductFindByIDMalformedID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	_, err := repo.FindByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, product.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductDeleteReferencedBySales(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)
	id := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT id FROM products WHERE id = $1 FOR UPDATE")).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(id))
	mock.ExpectQuery(q("SELECT EXISTS (SELECT 1 FROM sale_items WHERE product_id = $1)")).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), id)
	assert.ErrorIs(t, err, product.ErrReferencedBySales)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductDeleteUnreferenced(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)
	id := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT id FROM products WHERE id = $1 FOR UPDATE")).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(id))
	mock.ExpectQuery(q("SELECT EXISTS")).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(q("DELETE FROM products WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerCreateDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCustomerRepository(db)

	c, err := customer.NewCustomer("Ana", "", ptr("ana@example.com"))
	require.NoError(t, err)

	mock.ExpectExec(q("INSERT INTO customers")).
		WithArgs(c.ID, "Ana", "", c.Email, pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	err = repo.Create(context.Background(), c)
	assert.ErrorIs(t, err, customer.ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaleTxDecrementStockGuard(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSaleRepository(db, 2*time.Second)
	id := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectExec(q("SET LOCAL lock_timeout = '2000ms'")).WillReturnResult(pgxmock.NewResult("SET", 0))
	mock.ExpectExec(q("WHERE id = $1 AND quantity_available >= $2")).
		WithArgs(id, int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err := repo.WithinTx(context.Background(), func(ctx context.Context, tx sale.Tx) error {
		return tx.DecrementStock(ctx, id, 3)
	})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaleTxLockTimeoutIsRetryable(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSaleRepository(db, time.Second)
	id := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectExec(q("SET LOCAL lock_timeout")).WillReturnResult(pgxmock.NewResult("SET", 0))
	mock.ExpectQuery(q("FOR UPDATE OF p")).
		WithArgs(id).
		WillReturnError(&pgconn.PgError{Code: pgLockNotAvailable})
	mock.ExpectRollback()

	err := repo.WithinTx(context.Background(), func(ctx context.Context, tx sale.Tx) error {
		_, err := tx.LockProduct(ctx, id)
		return err
	})
	assert.True(t, apperr.IsRetryable(err))
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaleTxIdempotencyReplay(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSaleRepository(db, 0)
	saleID := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectExec(q("INSERT INTO sale_idempotency")).
		WithArgs("key-1").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectQuery(q("SELECT sale_id FROM sale_idempotency WHERE idempotency_key = $1")).
		WithArgs("key-1").
		WillReturnRows(pgxmock.NewRows([]string{"sale_id"}).AddRow(&saleID))
	mock.ExpectCommit()

	var (
		gotID   string
		claimed bool
	)
	err := repo.WithinTx(context.Background(), func(ctx context.Context, tx sale.Tx) error {
		var err error
		gotID, claimed, err = tx.ClaimIdempotencyKey(ctx, "key-1")
		return err
	})
	require.NoError(t, err)
	assert.False(t, claimed)
	assert.Equal(t, saleID, gotID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaleFindByIDLoadsItems(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSaleRepository(db, 0)

	saleID := uuid.NewString()
	productID := uuid.NewString()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(q("FROM sales s")).
		WithArgs(saleID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "customer_id", "subtotal_cents", "tax_cents", "total_cents", "created_at",
			"c_id", "c_name", "c_phone", "c_email", "c_created_at",
		}).AddRow(saleID, nil, int64(3000), int64(240), int64(3240), now, nil, nil, nil, nil, nil))
	mock.ExpectQuery(q("FROM sale_items WHERE sale_id = ANY($1::uuid[])")).
		WithArgs([]string{saleID}).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "sale_id", "product_id", "line_no", "unit_price_cents", "quantity", "line_total_cents",
		}).AddRow(uuid.NewString(), saleID, productID, 1, int64(1000), int64(3), int64(3000)))

	s, err := repo.FindByID(context.Background(), saleID)
	require.NoError(t, err)

	assert.Nil(t, s.CustomerID)
	assert.Nil(t, s.Customer)
	assert.Equal(t, int64(3240), s.TotalCents)
	require.Len(t, s.Items, 1)
	assert.Equal(t, productID, s.Items[0].ProductID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportSalesTotals(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	mock.ExpectQuery(q("SELECT COALESCE(SUM(total_cents), 0)::bigint, COUNT(*)")).
		WithArgs(from, to).
		WillReturnRows(pgxmock.NewRows([]string{"sum", "count"}).AddRow(int64(6480), int64(2)))

	totals, err := repo.SalesTotals(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(6480), totals.RevenueCents)
	assert.Equal(t, int64(2), totals.Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslateLockError(t *testing.T) {
	assert.True(t, apperr.IsRetryable(translateLockError(&pgconn.PgError{Code: pgLockNotAvailable})))
	assert.True(t, apperr.IsRetryable(translateLockError(&pgconn.PgError{Code: pgDeadlockDetected})))

	err := translateLockError(fmt.Errorf("erro ao bloquear produto: %w", context.DeadlineExceeded))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, apperr.IsRetryable(err))
	assert.Equal(t, 500, apperr.HTTPStatus(err))

	assert.NoError(t, translateLockError(nil))
}
