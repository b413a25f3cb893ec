package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/studentrecords/internal/config"
	"github.com/yigit/studentrecords/internal/pkg/helpers"
	"github.com/yigit/studentrecords/internal/pkg/logger"
)

const (
	connectTimeout     = 10 * time.Second
	transactionTimeout = 30 * time.Second
	healthCheckPeriod  = 30 * time.Second
)

// PostgresDB wraps the pgx pool shared by the repositories
type PostgresDB struct {
	Pool *pgxpool.Pool
}

// NewPostgresDB opens a pool sized from the database section and verifies it with a ping
func NewPostgresDB(ctx context.Context, cfg *config.Config) (*PostgresDB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.GetPostgresConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgxpool config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.Database.MaxIdleConns)
	poolConfig.MaxConnLifetime = helpers.ParseDuration(cfg.Database.ConnMaxLifetime, time.Hour)
	poolConfig.HealthCheckPeriod = healthCheckPeriod

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}

	database := &PostgresDB{Pool: pool}
	if err := database.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	logger.Debug().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.DBName).
		Int32("maxConns", poolConfig.MaxConns).
		Msg("Database pool ready")
	return database, nil
}

// Ping checks that a connection can be acquired and used
func (db *PostgresDB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// Close releases the pool
func (db *PostgresDB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, tx pgx.Tx) error

// WithTransaction runs fn in a transaction, committing when it returns nil and rolling back otherwise.
// Contexts without a deadline get a default one.
func (db *PostgresDB) WithTransaction(ctx context.Context, fn TransactionFn) error {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, transactionTimeout)
		defer cancel()
	}

	return pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		return fn(ctx, tx)
	})
}
