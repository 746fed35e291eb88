package sqlstore

import (
	"context"
	"fmt"
)

// Timestamps are stored as epoch integers so both drivers compare them exactly.
// Prize creation times are nanoseconds (catalog order), everything else milliseconds.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS configs (
		id INTEGER PRIMARY KEY,
		business_name TEXT NOT NULL,
		instagram_qr_url TEXT NOT NULL DEFAULT '',
		exempt_dnis TEXT NOT NULL DEFAULT '[]',
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS prizes (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		image TEXT NOT NULL DEFAULT '',
		weight DOUBLE PRECISION NOT NULL CHECK (weight >= 0),
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_prizes_created_at ON prizes(created_at)`,
	`CREATE TABLE IF NOT EXISTS spins (
		dni TEXT PRIMARY KEY,
		last_spin_at BIGINT NOT NULL,
		next_available_at BIGINT NOT NULL,
		last_prize_id TEXT NOT NULL DEFAULT '',
		last_prize_name TEXT NOT NULL DEFAULT '',
		last_prize_image TEXT NOT NULL DEFAULT '',
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func (db *DB) CreateSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
