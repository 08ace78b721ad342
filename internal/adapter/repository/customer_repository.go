package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/rms-api/internal/domain/customer"
	"github.com/hugohenrick/rms-api/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

// CustomerRepository implementa a interface customer.Repository
type CustomerRepository struct {
	db *database.PostgresDB
}

// NewCustomerRepository cria uma nova instância de CustomerRepository
func NewCustomerRepository(db *database.PostgresDB) customer.Repository {
	return &CustomerRepository{
		db: db,
	}
}

// Create implementa customer.Repository.Create
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	_, err := r.db.Pool().Exec(ctx,
		`INSERT INTO customers (id, name, phone, email, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.Phone, c.Email, c.CreatedAt)

	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return customer.ErrDuplicateEmail
		}
		return fmt.Errorf("erro ao criar cliente: %w", err)
	}

	return nil
}

// FindByID implementa customer.Repository.FindByID
func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	if !validID(id) {
		return nil, customer.ErrNotFound
	}

	var c customer.Customer
	err := r.db.Pool().QueryRow(ctx,
		`SELECT id, name, phone, email, created_at FROM customers WHERE id = $1`,
		id).Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao buscar cliente: %w", err)
	}
	c.CreatedAt = c.CreatedAt.UTC()

	return &c, nil
}

// List implementa customer.Repository.List
func (r *CustomerRepository) List(ctx context.Context, limit, offset int) ([]*customer.Customer, error) {
	rows, err := r.db.Pool().Query(ctx,
		`SELECT id, name, phone, email, created_at
		FROM customers ORDER BY name ASC, id ASC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar clientes: %w", err)
	}
	defer rows.Close()

	customers := []*customer.Customer{}
	for rows.Next() {
		var c customer.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler cliente: %w", err)
		}
		c.CreatedAt = c.CreatedAt.UTC()
		customers = append(customers, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar clientes: %w", err)
	}

	return customers, nil
}

func customerExists(ctx context.Context, q querier, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("erro ao verificar existência do cliente: %w", err)
	}

	return exists, nil
}
