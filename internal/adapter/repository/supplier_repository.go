package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/rms-api/internal/domain/supplier"
	"github.com/hugohenrick/rms-api/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

// SupplierRepository implementa a interface supplier.Repository
type SupplierRepository struct {
	db *database.PostgresDB
}

// NewSupplierRepository cria uma nova instância de SupplierRepository
func NewSupplierRepository(db *database.PostgresDB) supplier.Repository {
	return &SupplierRepository{
		db: db,
	}
}

// Create implementa supplier.Repository.Create
func (r *SupplierRepository) Create(ctx context.Context, s *supplier.Supplier) error {
	_, err := r.db.Pool().Exec(ctx,
		`INSERT INTO suppliers (id, name, contact_name, phone, email, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.Name, s.ContactName, s.Phone, s.Email, s.Address, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar fornecedor: %w", err)
	}

	return nil
}

// FindByID implementa supplier.Repository.FindByID
func (r *SupplierRepository) FindByID(ctx context.Context, id string) (*supplier.Supplier, error) {
	if !validID(id) {
		return nil, supplier.ErrNotFound
	}

	var s supplier.Supplier
	err := r.db.Pool().QueryRow(ctx,
		`SELECT id, name, contact_name, phone, email, address, created_at
		FROM suppliers WHERE id = $1`, id).Scan(
		&s.ID, &s.Name, &s.ContactName, &s.Phone, &s.Email, &s.Address, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, supplier.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao buscar fornecedor: %w", err)
	}
	s.CreatedAt = s.CreatedAt.UTC()

	return &s, nil
}

// List implementa supplier.Repository.List
func (r *SupplierRepository) List(ctx context.Context, limit, offset int) ([]*supplier.Supplier, error) {
	rows, err := r.db.Pool().Query(ctx,
		`SELECT id, name, contact_name, phone, email, address, created_at
		FROM suppliers ORDER BY name ASC, id ASC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar fornecedores: %w", err)
	}
	defer rows.Close()

	suppliers := []*supplier.Supplier{}
	for rows.Next() {
		var s supplier.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.ContactName, &s.Phone, &s.Email, &s.Address, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler fornecedor: %w", err)
		}
		s.CreatedAt = s.CreatedAt.UTC()
		suppliers = append(suppliers, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar fornecedores: %w", err)
	}

	return suppliers, nil
}
