package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/rms-api/internal/domain/product"
	"github.com/hugohenrick/rms-api/internal/domain/supplier"
	"github.com/hugohenrick/rms-api/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

const productSelect = `
	SELECT
		p.id, p.name, p.sku, p.unit_price_cents, p.quantity_available, p.reorder_level,
		p.supplier_id, p.created_at, p.updated_at,
		s.id, s.name, s.contact_name, s.phone, s.email, s.address, s.created_at
	FROM products p
	LEFT JOIN suppliers s ON s.id = p.supplier_id`

// ProductRepository implementa a interface product.Repository
type ProductRepository struct {
	db *database.PostgresDB
}

// NewProductRepository cria uma nova instância de ProductRepository
func NewProductRepository(db *database.PostgresDB) product.Repository {
	return &ProductRepository{
		db: db,
	}
}

// Create implementa product.Repository.Create
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	if p.SupplierID != nil && !validID(*p.SupplierID) {
		return product.ErrUnknownSupplier
	}

	_, err := r.db.Pool().Exec(ctx,
		`INSERT INTO products (
			id, name, sku, unit_price_cents, quantity_available, reorder_level,
			supplier_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Name, p.SKU, p.UnitPriceCents, p.QuantityAvailable, p.ReorderLevel,
		p.SupplierID, p.CreatedAt, p.UpdatedAt)

	if err != nil {
		return translateProductWriteError(err, "erro ao criar produto")
	}

	return nil
}

// FindByID implementa product.Repository.FindByID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	return findProduct(ctx, r.db.Pool(), id, "")
}

// List implementa product.Repository.List
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*product.Product, error) {
	rows, err := r.db.Pool().Query(ctx,
		productSelect+` ORDER BY p.name ASC, p.id ASC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar produtos: %w", err)
	}

	return collectProducts(rows)
}

// Update implementa product.Repository.Update
func (r *ProductRepository) Update(ctx context.Context, id string, patch product.Patch) (*product.Product, error) {
	if patch.SupplierID != nil && !patch.ClearSupplier && !validID(*patch.SupplierID) {
		return nil, product.ErrUnknownSupplier
	}

	var updated *product.Product
	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		// Bloqueia a linha para não perder a baixa de estoque de uma venda concorrente
		p, err := findProduct(ctx, tx, id, " FOR UPDATE OF p")
		if err != nil {
			return err
		}

		if err := p.Apply(patch); err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`UPDATE products SET
				name = $2, sku = $3, unit_price_cents = $4, quantity_available = $5,
				reorder_level = $6, supplier_id = $7, updated_at = $8
			WHERE id = $1`,
			p.ID, p.Name, p.SKU, p.UnitPriceCents, p.QuantityAvailable,
			p.ReorderLevel, p.SupplierID, p.UpdatedAt)
		if err != nil {
			return translateProductWriteError(err, "erro ao atualizar produto")
		}

		updated, err = findProduct(ctx, tx, id, "")
		return err
	})
	if err != nil {
		return nil, translateLockError(err)
	}

	return updated, nil
}

// Delete implementa product.Repository.Delete
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return product.ErrNotFound
	}

	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		var lockedID string
		err := tx.QueryRow(ctx, `SELECT id FROM products WHERE id = $1 FOR UPDATE`, id).Scan(&lockedID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return product.ErrNotFound
			}
			return fmt.Errorf("erro ao bloquear produto: %w", err)
		}

		var referenced bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM sale_items WHERE product_id = $1)`, id).Scan(&referenced)
		if err != nil {
			return fmt.Errorf("erro ao verificar vendas do produto: %w", err)
		}
		if referenced {
			return product.ErrReferencedBySales
		}

		if _, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
			if pgErrorCode(err) == pgForeignKeyViolation {
				return product.ErrReferencedBySales
			}
			return fmt.Errorf("erro ao excluir produto: %w", err)
		}
		return nil
	})

	return translateLockError(err)
}

func translateProductWriteError(err error, msg string) error {
	switch pgErrorCode(err) {
	case pgUniqueViolation:
		return product.ErrDuplicateSKU
	case pgForeignKeyViolation:
		return product.ErrUnknownSupplier
	case pgCheckViolation:
		return product.ErrNegativeQuantity
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func findProduct(ctx context.Context, q querier, id, suffix string) (*product.Product, error) {
	if !validID(id) {
		return nil, product.ErrNotFound
	}

	p, err := scanProduct(q.QueryRow(ctx, productSelect+` WHERE p.id = $1`+suffix, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao buscar produto: %w", translateLockError(err))
	}
	return p, nil
}

func collectProducts(rows pgx.Rows) ([]*product.Product, error) {
	defer rows.Close()

	products := []*product.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler produto: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar produtos: %w", err)
	}

	return products, nil
}

func scanProduct(row pgx.Row) (*product.Product, error) {
	var p product.Product
	var (
		sID, sName, sContact, sPhone, sEmail, sAddress *string
		sCreatedAt                                     *time.Time
	)

	err := row.Scan(
		&p.ID, &p.Name, &p.SKU, &p.UnitPriceCents, &p.QuantityAvailable, &p.ReorderLevel,
		&p.SupplierID, &p.CreatedAt, &p.UpdatedAt,
		&sID, &sName, &sContact, &sPhone, &sEmail, &sAddress, &sCreatedAt)
	if err != nil {
		return nil, err
	}

	if sID != nil {
		p.Supplier = &supplier.Supplier{
			ID:          *sID,
			Name:        deref(sName),
			ContactName: deref(sContact),
			Phone:       deref(sPhone),
			Email:       deref(sEmail),
			Address:     deref(sAddress),
		}
		if sCreatedAt != nil {
			p.Supplier.CreatedAt = sCreatedAt.UTC()
		}
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()

	return &p, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
