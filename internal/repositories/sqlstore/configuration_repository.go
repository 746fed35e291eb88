package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ArowuTest/spin-wheel-backend/internal/models"
	"github.com/ArowuTest/spin-wheel-backend/internal/repositories"
)

const singletonID = 1

var _ repositories.ConfigurationRepository = (*ConfigurationRepository)(nil)

// ConfigurationRepository stores the configuration singleton in the configs table
type ConfigurationRepository struct {
	db *DB
}

// NewConfigurationRepository creates a new ConfigurationRepository
func NewConfigurationRepository(db *DB) *ConfigurationRepository {
	return &ConfigurationRepository{db: db}
}

// Get retrieves the configuration singleton
func (r *ConfigurationRepository) Get(ctx context.Context) (*models.Configuration, error) {
	var (
		cfg                  models.Configuration
		exempt               string
		createdAt, updatedAt int64
	)
	err := r.db.queryRow(ctx, `
		SELECT business_name, instagram_qr_url, exempt_dnis, created_at, updated_at
		FROM configs WHERE id = ?`, singletonID,
	).Scan(&cfg.BusinessName, &cfg.InstagramQRURL, &exempt, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(exempt), &cfg.ExemptDNIs); err != nil {
		return nil, fmt.Errorf("decode exempt_dnis: %w", err)
	}
	if cfg.ExemptDNIs == nil {
		cfg.ExemptDNIs = []string{}
	}
	cfg.CreatedAt = fromMillis(createdAt)
	cfg.UpdatedAt = fromMillis(updatedAt)
	return &cfg, nil
}

// Create inserts the singleton, or returns the stored one if it already exists
func (r *ConfigurationRepository) Create(ctx context.Context, cfg *models.Configuration) (*models.Configuration, error) {
	exempt, err := encodeDNIs(cfg.ExemptDNIs)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	res, err := r.db.exec(ctx, `
		INSERT INTO configs (id, business_name, instagram_qr_url, exempt_dnis, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING`,
		singletonID, cfg.BusinessName, cfg.InstagramQRURL, exempt, toMillis(now), toMillis(now))
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return r.Get(ctx)
	}
	cfg.CreatedAt = fromMillis(toMillis(now))
	cfg.UpdatedAt = cfg.CreatedAt
	return cfg, nil
}

// Update upserts the singleton
func (r *ConfigurationRepository) Update(ctx context.Context, cfg *models.Configuration) error {
	exempt, err := encodeDNIs(cfg.ExemptDNIs)
	if err != nil {
		return err
	}
	now := time.Now()
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = now
	}
	cfg.UpdatedAt = now
	_, err = r.db.exec(ctx, `
		INSERT INTO configs (id, business_name, instagram_qr_url, exempt_dnis, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			business_name = excluded.business_name,
			instagram_qr_url = excluded.instagram_qr_url,
			exempt_dnis = excluded.exempt_dnis,
			updated_at = excluded.updated_at`,
		singletonID, cfg.BusinessName, cfg.InstagramQRURL, exempt, toMillis(cfg.CreatedAt), toMillis(now))
	return err
}

func encodeDNIs(dnis []string) (string, error) {
	if dnis == nil {
		dnis = []string{}
	}
	b, err := json.Marshal(dnis)
	if err != nil {
		return "", fmt.Errorf("encode exempt_dnis: %w", err)
	}
	return string(b), nil
}
