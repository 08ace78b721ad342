package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hugohenrick/rms-api/pkg/apperr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos de erro do PostgreSQL tratados pelos repositórios
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgCheckViolation       = "23514"
	pgLockNotAvailable     = "55P03"
	pgDeadlockDetected     = "40P01"
	pgSerializationFailure = "40001"
)

// querier é satisfeito tanto pelo pool quanto por pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// translateLockError converte falhas transitórias de concorrência em conflito retentável
func translateLockError(err error) error {
	if err == nil {
		return nil
	}
	switch pgErrorCode(err) {
	case pgLockNotAvailable:
		return apperr.Retry(err, "timed out waiting for a locked row, retry the request")
	case pgDeadlockDetected, pgSerializationFailure:
		return apperr.Retry(err, "concurrent update detected, retry the request")
	}
	return err
}

// validID indica se o identificador tem formato de UUID; IDs malformados não existem
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
