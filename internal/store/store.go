// Package store opens the configured backing store and exposes its repositories.
package store

import (
	"context"
	"fmt"

	"github.com/ArowuTest/spin-wheel-backend/internal/config"
	"github.com/ArowuTest/spin-wheel-backend/internal/repositories"
	mongorepo "github.com/ArowuTest/spin-wheel-backend/internal/repositories/mongodb"
	"github.com/ArowuTest/spin-wheel-backend/internal/repositories/sqlstore"
	mongodb "github.com/ArowuTest/spin-wheel-backend/pkg/mongodb"
)

// Store bundles the repositories of one backing store
type Store struct {
	Configs repositories.ConfigurationRepository
	Prizes  repositories.PrizeRepository
	Spins   repositories.SpinRepository

	pinger repositories.Pinger
	close  func(ctx context.Context) error
}

// Open connects to the store selected by cfg.Driver
func Open(ctx context.Context, cfg config.StoreConfig) (*Store, error) {
	switch cfg.Driver {
	case config.DriverMongoDB:
		client, err := mongodb.NewClient(ctx, cfg.URI)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		db := client.Database(cfg.Database)
		if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &Store{
			Configs: mongorepo.NewConfigurationRepository(db),
			Prizes:  mongorepo.NewPrizeRepository(db),
			Spins:   mongorepo.NewSpinRepository(db),
			pinger:  client,
			close:   client.Disconnect,
		}, nil

	case config.DriverSQLite, config.DriverPostgres:
		db, err := sqlstore.Open(ctx, cfg.Driver, cfg.URI)
		if err != nil {
			return nil, err
		}
		return NewSQL(db), nil
	}
	return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
}

// NewSQL wraps an already opened SQL database
func NewSQL(db *sqlstore.DB) *Store {
	return &Store{
		Configs: sqlstore.NewConfigurationRepository(db),
		Prizes:  sqlstore.NewPrizeRepository(db),
		Spins:   sqlstore.NewSpinRepository(db),
		pinger:  db,
		close:   func(context.Context) error { return db.Close() },
	}
}

// Ping reports whether the store is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.pinger.Ping(ctx)
}

// Close releases the underlying connection
func (s *Store) Close(ctx context.Context) error {
	return s.close(ctx)
}
