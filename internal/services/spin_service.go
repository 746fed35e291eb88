package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/ArowuTest/spin-wheel-backend/internal/models"
	"github.com/ArowuTest/spin-wheel-backend/internal/repositories"
	"golang.org/x/exp/slog"
)

var dniPattern = regexp.MustCompile(`^\d{8}$`)

// IsValidDNI reports whether dni is exactly 8 decimal digits
func IsValidDNI(dni string) bool {
	return dniPattern.MatchString(dni)
}

// SpinState is the eligibility of a DNI at a given instant
type SpinState string

const (
	StateNeverSpun   SpinState = "NEVER_SPUN"
	StateCoolingDown SpinState = "COOLING_DOWN"
	StateEligible    SpinState = "ELIGIBLE"
)

// EvaluateState derives the state of a DNI from its record. Exemption wins over
// any stored timestamp.
func EvaluateState(rec *models.SpinRecord, exempt bool, now time.Time) SpinState {
	switch {
	case exempt:
		return StateEligible
	case rec == nil:
		return StateNeverSpun
	case rec.NextAvailableAt.After(now):
		return StateCoolingDown
	default:
		return StateEligible
	}
}

// Compile-time check to ensure SpinServiceImpl implements SpinService
var _ SpinService = (*SpinServiceImpl)(nil)

// SpinServiceImpl runs spins against the catalog and the per-DNI records
type SpinServiceImpl struct {
	configService ConfigService
	prizeRepo     repositories.PrizeRepository
	spinRepo      repositories.SpinRepository
	cooldown      time.Duration
	rng           RandomSource
	now           func() time.Time
}

// SpinOption customizes a SpinServiceImpl
type SpinOption func(*SpinServiceImpl)

// WithRandomSource replaces the random source used for prize selection
func WithRandomSource(src RandomSource) SpinOption {
	return func(s *SpinServiceImpl) { s.rng = src }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) SpinOption {
	return func(s *SpinServiceImpl) { s.now = now }
}

// NewSpinService creates a new SpinServiceImpl
func NewSpinService(
	configService ConfigService,
	prizeRepo repositories.PrizeRepository,
	spinRepo repositories.SpinRepository,
	cooldown time.Duration,
	opts ...SpinOption,
) *SpinServiceImpl {
	s := &SpinServiceImpl{
		configService: configService,
		prizeRepo:     prizeRepo,
		spinRepo:      spinRepo,
		cooldown:      cooldown,
		rng:           globalSource{},
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Spin validates dni, enforces the cooldown, picks a prize and records it.
//
// Non-exempt DNIs are written with a compare-and-swap on nextAvailableAt, so
// two concurrent spins for the same DNI cannot both win: the loser gets the
// cooldown the winner just set. Exempt DNIs are always eligible and simply
// overwrite their record.
func (s *SpinServiceImpl) Spin(ctx context.Context, dni string) (*models.SpinResult, error) {
	if !IsValidDNI(dni) {
		return nil, invalid("DNI debe tener 8 dígitos")
	}

	cfg, err := s.configService.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	exempt := cfg.IsExempt(dni)
	// stores keep milliseconds; working at that precision keeps the CAS comparison exact
	now := time.UnixMilli(s.now().UnixMilli())

	rec, err := s.findRecord(ctx, dni)
	if err != nil {
		return nil, err
	}
	if EvaluateState(rec, exempt, now) == StateCoolingDown {
		return nil, newRateLimited(rec.NextAvailableAt, now)
	}

	prizes, err := s.prizeRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load prizes: %w", err)
	}
	if len(prizes) == 0 {
		return nil, ErrCatalogEmpty
	}
	chosen := PickWeighted(prizes, s.rng)

	next := now
	if !exempt {
		next = now.Add(s.cooldown)
	}
	newRec := &models.SpinRecord{
		DNI:             dni,
		LastSpinAt:      now,
		NextAvailableAt: next,
		LastPrizeID:     chosen.ID,
		LastPrizeName:   chosen.Name,
		LastPrizeImage:  chosen.Image,
	}

	if exempt {
		err = s.spinRepo.Save(ctx, newRec)
	} else {
		var prev *time.Time
		if rec != nil {
			prev = &rec.NextAvailableAt
		}
		err = s.spinRepo.SaveIfUnchanged(ctx, newRec, prev)
		if errors.Is(err, repositories.ErrConflict) {
			slog.Warn("Concurrent spin lost the write", "dni", maskDNI(dni))
			return nil, s.conflictOutcome(ctx, dni, now)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save spin: %w", err)
	}

	slog.Info("Spin recorded", "dni", maskDNI(dni), "prizeId", chosen.ID, "prize", chosen.Name, "exempt", exempt)
	return &models.SpinResult{
		Prize:    chosen,
		Redirect: "/premio/" + dni,
	}, nil
}

// LastPrize returns the business info and the prize snapshot of dni
func (s *SpinServiceImpl) LastPrize(ctx context.Context, dni string) (*models.LastPrizeView, error) {
	if !IsValidDNI(dni) {
		return nil, invalid("DNI inválido")
	}
	cfg, err := s.configService.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := s.findRecord(ctx, dni)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return &models.LastPrizeView{
		BusinessName:   cfg.BusinessName,
		InstagramQRURL: cfg.InstagramQRURL,
		DNI:            dni,
		PrizeName:      rec.LastPrizeName,
		PrizeImage:     rec.LastPrizeImage,
	}, nil
}

// findRecord returns nil, nil when dni never spun
func (s *SpinServiceImpl) findRecord(ctx context.Context, dni string) (*models.SpinRecord, error) {
	rec, err := s.spinRepo.FindByDNI(ctx, dni)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load spin record: %w", err)
	}
	return rec, nil
}

func (s *SpinServiceImpl) conflictOutcome(ctx context.Context, dni string, now time.Time) error {
	rec, err := s.findRecord(ctx, dni)
	if err != nil {
		return err
	}
	if rec != nil && rec.NextAvailableAt.After(now) {
		return newRateLimited(rec.NextAvailableAt, now)
	}
	return ErrSpinConflict
}

func maskDNI(dni string) string {
	if len(dni) < 4 {
		return "****"
	}
	return dni[:4] + "****"
}
