package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ArowuTest/spin-wheel-backend/internal/models"
	"github.com/ArowuTest/spin-wheel-backend/internal/repositories"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure ConfigServiceImpl implements ConfigService
var _ ConfigService = (*ConfigServiceImpl)(nil)

// ConfigServiceImpl implements ConfigService
type ConfigServiceImpl struct {
	repo     repositories.ConfigurationRepository
	defaults models.Configuration
}

// NewConfigService creates a new ConfigServiceImpl. defaults seeds the
// singleton the first time it is read.
func NewConfigService(repo repositories.ConfigurationRepository, defaults models.Configuration) *ConfigServiceImpl {
	if defaults.BusinessName == "" {
		defaults.BusinessName = "Tu Negocio"
	}
	return &ConfigServiceImpl{repo: repo, defaults: defaults}
}

// GetConfig retrieves the configuration, creating it with defaults if absent
func (s *ConfigServiceImpl) GetConfig(ctx context.Context) (*models.Configuration, error) {
	cfg, err := s.repo.Get(ctx)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	seed := s.defaults
	seed.ExemptDNIs = append([]string{}, s.defaults.ExemptDNIs...)
	cfg, err = s.repo.Create(ctx, &seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create configuration: %w", err)
	}
	slog.Info("Configuration created", "businessName", cfg.BusinessName, "exemptDnis", len(cfg.ExemptDNIs))
	return cfg, nil
}

// UpdateConfig applies the fields present in req
func (s *ConfigServiceImpl) UpdateConfig(ctx context.Context, req *models.UpdateConfigRequest) (*models.Configuration, error) {
	var exempt []string
	if req.ExemptDNIs != nil {
		exempt = make([]string, 0, len(req.ExemptDNIs))
		seen := make(map[string]bool, len(req.ExemptDNIs))
		for _, d := range req.ExemptDNIs {
			d = strings.TrimSpace(d)
			if !IsValidDNI(d) {
				return nil, invalid("DNI exento inválido: " + d)
			}
			if !seen[d] {
				seen[d] = true
				exempt = append(exempt, d)
			}
		}
	}

	cfg, err := s.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	if req.BusinessName != nil {
		cfg.BusinessName = strings.TrimSpace(*req.BusinessName)
	}
	if req.InstagramQRURL != nil {
		cfg.InstagramQRURL = strings.TrimSpace(*req.InstagramQRURL)
	}
	if exempt != nil {
		cfg.ExemptDNIs = exempt
	}

	if err := s.repo.Update(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save configuration: %w", err)
	}
	slog.Info("Configuration updated", "businessName", cfg.BusinessName)
	return cfg, nil
}
