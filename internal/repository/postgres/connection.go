package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Table  string // fully prefixed menu embedding table name
	Logger *slog.Logger
}

// MenuTableName builds the environment-prefixed table name for a menu
// embedding collection, e.g. prefix "dev_" + collection "menu" ->
// "dev_menu_embeddings". The name is interpolated into SQL before it is
// sent, so each environment gets its own statements.
func MenuTableName(prefix, collection string) string {
	return fmt.Sprintf("%s%s_embeddings", prefix, collection)
}

// CreateConnectionPool creates a new pgx connection pool.
//
// The pool is created once per process and shared across turns; pgxpool
// hands each query its own connection, so concurrent searches never share
// a cursor. Ping verifies the configuration before first use.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	// Configure pool size
	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
