package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/yourusername/pickpulse/internal/config"
)

// ErrSchemaMissing is returned when the graded pick table has not been migrated
var ErrSchemaMissing = errors.New("pick_results table not found")

// Initialize creates a database connection pool and verifies the graded
// pick table exists. The table is owned by the settlement process.
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	var exists bool
	err = db.QueryRow(ctx, "SELECT to_regclass('public.pick_results') IS NOT NULL").Scan(&exists)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to inspect schema: %w", err)
	}
	if !exists {
		db.Close()
		return nil, fmt.Errorf("%w: apply migrations/001_pick_results.sql", ErrSchemaMissing)
	}

	return db, nil
}
