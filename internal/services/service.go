package services

import (
	"context"
	"time"

	"github.com/ArowuTest/spin-wheel-backend/internal/models"
)

// AuthService issues and verifies stateless admin session tokens
type AuthService interface {
	// IssueToken checks the admin code and signs a session for the current instant
	IssueToken(code string) (*models.AdminSession, error)

	// VerifyToken reports whether token is authentic and unexpired. It never fails loudly.
	VerifyToken(token string) bool

	// SessionTTL is the lifetime of every issued token
	SessionTTL() time.Duration
}

// ConfigService manages the business configuration singleton
type ConfigService interface {
	// GetConfig returns the configuration, creating it with defaults on first use
	GetConfig(ctx context.Context) (*models.Configuration, error)

	// UpdateConfig applies the non-nil fields of req
	UpdateConfig(ctx context.Context, req *models.UpdateConfigRequest) (*models.Configuration, error)
}

// PrizeService manages the prize catalog
type PrizeService interface {
	ListPrizes(ctx context.Context) ([]*models.Prize, error)
	CreatePrize(ctx context.Context, req *models.CreatePrizeRequest) (*models.Prize, error)
	UpdatePrize(ctx context.Context, id string, req *models.UpdatePrizeRequest) (*models.Prize, error)
	DeletePrize(ctx context.Context, id string) error

	// SeedDefaults loads the example catalog when it is empty and reports how many prizes were added
	SeedDefaults(ctx context.Context) (int, error)

	// ImportPrizes validates and stores prizes in order, optionally wiping the catalog first
	ImportPrizes(ctx context.Context, prizes []*models.Prize, replace bool) (int, error)
}

// SpinService runs the wheel for a DNI
type SpinService interface {
	Spin(ctx context.Context, dni string) (*models.SpinResult, error)

	// LastPrize returns the snapshot shown on the per-DNI result page
	LastPrize(ctx context.Context, dni string) (*models.LastPrizeView, error)
}
