package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/ArowuTest/spin-wheel-backend/internal/models"
)

var (
	// ErrNotFound is returned when the requested document does not exist
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a conditional write lost against a concurrent one
	ErrConflict = errors.New("conflicting write")
)

// ConfigurationRepository defines the interface for the configuration singleton
type ConfigurationRepository interface {
	// Get returns ErrNotFound when no configuration exists yet
	Get(ctx context.Context) (*models.Configuration, error)
	// Create inserts cfg unless a configuration already exists, in which case the stored one is returned
	Create(ctx context.Context, cfg *models.Configuration) (*models.Configuration, error)
	Update(ctx context.Context, cfg *models.Configuration) error
}

// PrizeRepository defines the interface for prize catalog operations
type PrizeRepository interface {
	Create(ctx context.Context, prize *models.Prize) error
	CreateMany(ctx context.Context, prizes []*models.Prize) error
	FindByID(ctx context.Context, id string) (*models.Prize, error)
	// FindAll returns the catalog in creation order
	FindAll(ctx context.Context) ([]*models.Prize, error)
	Update(ctx context.Context, id string, upd models.PrizeUpdate) (*models.Prize, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// SpinRepository defines the interface for per-DNI spin records
type SpinRepository interface {
	FindByDNI(ctx context.Context, dni string) (*models.SpinRecord, error)
	// Save creates or overwrites the record for rec.DNI
	Save(ctx context.Context, rec *models.SpinRecord) error
	// SaveIfUnchanged writes rec only if the stored record still has the
	// given nextAvailableAt, or, when prevNextAvailableAt is nil, only if no
	// record exists. Returns ErrConflict otherwise.
	SaveIfUnchanged(ctx context.Context, rec *models.SpinRecord, prevNextAvailableAt *time.Time) error
}

// Pinger is implemented by stores that can report their health
type Pinger interface {
	Ping(ctx context.Context) error
}
