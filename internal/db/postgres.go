package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx pool against dsn and makes sure the schema exists.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return pool, nil
}

// initSchema creates or updates the database schema.
func initSchema(ctx context.Context, pool *pgxpool.Pool) error {

	// -------------------------------
	// USERS
	// -------------------------------
	usersSQL := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := pool.Exec(ctx, usersSQL); err != nil {
		return err
	}

	// -------------------------------
	// RECEIPT ITEMS
	// -------------------------------
	// The UNIQUE (owner, name) constraint is what makes the commit merge
	// atomic: reconciliation upserts against it.
	itemsSQL := `
		CREATE TABLE IF NOT EXISTS receipt_items (
			id UUID PRIMARY KEY,
			owner UUID NOT NULL,
			name TEXT NOT NULL,
			price DOUBLE PRECISION NOT NULL DEFAULT 0,
			quantity DOUBLE PRECISION NOT NULL DEFAULT 0,
			unit VARCHAR(50) NOT NULL DEFAULT '',
			category VARCHAR(50) NOT NULL DEFAULT 'Other',
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (owner, name)
		)
	`
	if _, err := pool.Exec(ctx, itemsSQL); err != nil {
		return err
	}

	ownerIndexSQL := `
		CREATE INDEX IF NOT EXISTS receipt_items_owner_created_idx
		ON receipt_items (owner, created_at DESC)
	`
	if _, err := pool.Exec(ctx, ownerIndexSQL); err != nil {
		return err
	}

	return nil
}
