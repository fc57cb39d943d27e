// Package database owns the Postgres connection pool and schema setup.
package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hartlaw-ai/lexrag/internal/config"
	"github.com/hartlaw-ai/lexrag/internal/feedback"
	"github.com/hartlaw-ai/lexrag/internal/vectorstore"
)

func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MaxConns = int32(cfg.MaxConns)
	poolCfg.MinConns = int32(cfg.MinConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// Migrate applies the embedded schema: the pgvector document index and the
// feedback table. Statements are idempotent, so reruns are safe.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, vectorstore.Schema); err != nil {
		return fmt.Errorf("migrate vector store schema: %w", err)
	}
	if _, err := pool.Exec(ctx, feedback.Schema); err != nil {
		return fmt.Errorf("migrate feedback schema: %w", err)
	}
	slog.Info("database schema up to date")
	return nil
}
