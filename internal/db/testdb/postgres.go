//go:build integration

// Package testdb starts a throwaway PostgreSQL for integration tests.
package testdb

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/yigit/studentrecords/internal/app/migrations"
	"github.com/yigit/studentrecords/internal/db"
)

// Tables lists every application table in truncation order
var Tables = []string{"student_lectures", "students", "department_lectures", "lectures", "departments"}

// PostgresContainer wraps the postgres testcontainer
type PostgresContainer struct {
	Container *postgres.PostgresContainer
	DB        *db.PostgresDB
	DSN       string
}

// Start runs a PostgreSQL container and applies the bundled schema.
// Tests sharing one container cannot run in parallel.
func Start(ctx context.Context) (*PostgresContainer, error) {
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("studentrecords"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("starting postgres container: %w", err)
	}

	pc := &PostgresContainer{Container: pgContainer}

	pc.DSN, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		pc.Terminate(ctx)
		return nil, err
	}

	pool, err := pgxpool.New(ctx, pc.DSN)
	if err != nil {
		pc.Terminate(ctx)
		return nil, err
	}
	pc.DB = &db.PostgresDB{Pool: pool}

	if err := migrations.NewMigrator(pool).Migrate(ctx); err != nil {
		pc.Terminate(ctx)
		return nil, fmt.Errorf("migrating test database: %w", err)
	}
	return pc, nil
}

// Terminate closes the pool and removes the container
func (pc *PostgresContainer) Terminate(ctx context.Context) {
	if pc.DB != nil {
		pc.DB.Close()
	}
	if pc.Container != nil {
		_ = pc.Container.Terminate(ctx)
	}
}

// CleanupTables empties every application table
func (pc *PostgresContainer) CleanupTables(t *testing.T) {
	t.Helper()

	for _, table := range Tables {
		_, err := pc.DB.Pool.Exec(context.Background(), "TRUNCATE "+table+" CASCADE")
		require.NoError(t, err, "failed to truncate table: %s", table)
	}
}
