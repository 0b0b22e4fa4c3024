package db

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool creates a new pgx connection pool
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	config.MaxConns = 20
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Println("Database connection pool established")
	return pool, nil
}

// Migrate creates the element document table. Elements of every type live
// in one JSONB documents table; relations between them are weak business
// key refs inside the documents, not foreign keys.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	const schema = `
CREATE TABLE IF NOT EXISTS network_elements (
	id           UUID PRIMARY KEY,
	element_type TEXT NOT NULL,
	business_id  TEXT NOT NULL,
	doc          JSONB NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (element_type, business_id)
);
CREATE INDEX IF NOT EXISTS idx_network_elements_input
	ON network_elements ((doc->'input'->>'type'), (doc->'input'->>'business_id'));
`
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate network_elements: %w", err)
	}
	return nil
}
