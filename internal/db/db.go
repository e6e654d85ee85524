package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the slice of pgxpool.Pool the repository needs. pgxmock
// satisfies it too, which is what the repository tests run against.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Postgres struct {
	Pool Querier
}

func New(pool Querier) *Postgres {
	return &Postgres{Pool: pool}
}

// EnsureSchema creates the registry tables when they are missing. The cars
// brand foreign key carries no ON DELETE action: deleting a brand that is
// still referenced fails at the database and is surfaced as a conflict.
func (db *Postgres) EnsureSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			surname TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL,
			img TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS brands (
			id BIGSERIAL PRIMARY KEY,
			name_brand TEXT NOT NULL,
			warranty INTEGER NOT NULL,
			country TEXT NOT NULL
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS cars (
			id BIGSERIAL PRIMARY KEY,
			brand_id BIGINT NOT NULL REFERENCES brands(id),
			model TEXT NOT NULL,
			milleage INTEGER NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			year_car INTEGER NOT NULL,
			description TEXT NOT NULL,
			colour TEXT NOT NULL,
			fuel_type TEXT NOT NULL,
			num_doors INTEGER NOT NULL
		)
		`,
		`CREATE INDEX IF NOT EXISTS cars_brand_id_idx ON cars(brand_id)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
