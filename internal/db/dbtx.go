package db

import (
	"context"
	"database/sql"
)

// DBTX is the querying surface the entry, user, and survey repositories
// depend on. Both *sql.DB and *sql.Tx satisfy it, so a repository can run
// against the pool or inside a transaction without caring which.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
