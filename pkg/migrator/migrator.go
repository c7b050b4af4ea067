// Package migrator applies goose migrations embedded by each service's migrations/<service> command.
package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Result summarises one migration run.
type Result struct {
	Applied []string // sources applied by this run, in order
	Version int64    // schema version after the run
}

// RunMigrations applies all pending goose migrations from the embedded FS against dbURL.
func RunMigrations(ctx context.Context, dbURL string, files fs.FS) (Result, error) {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	return Up(ctx, db, files)
}

// Up applies pending migrations on an open connection.
func Up(ctx context.Context, db *sql.DB, files fs.FS) (Result, error) {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, files)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to up migrations: %w", err)
	}

	var out Result
	for _, r := range results {
		out.Applied = append(out.Applied, r.Source.Path)
	}
	if out.Version, err = provider.GetDBVersion(ctx); err != nil {
		return out, fmt.Errorf("failed to read schema version: %w", err)
	}
	return out, nil
}
