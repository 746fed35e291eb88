package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ArowuTest/spin-wheel-backend/internal/models"
	"github.com/ArowuTest/spin-wheel-backend/internal/repositories"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure PrizeServiceImpl implements PrizeService
var _ PrizeService = (*PrizeServiceImpl)(nil)

// PrizeServiceImpl implements PrizeService
type PrizeServiceImpl struct {
	prizeRepo repositories.PrizeRepository
}

// NewPrizeService creates a new PrizeServiceImpl
func NewPrizeService(prizeRepo repositories.PrizeRepository) *PrizeServiceImpl {
	return &PrizeServiceImpl{prizeRepo: prizeRepo}
}

// DefaultPrizes is the example catalog loaded on an empty store
func DefaultPrizes() []*models.Prize {
	return []*models.Prize{
		{Name: "10% de descuento", Weight: 30},
		{Name: "2x1 en remeras", Weight: 10},
		{Name: "Sticker gratis", Weight: 25},
		{Name: "Gorra de regalo", Weight: 5},
		{Name: "Sigue participando", Weight: 30},
	}
}

// ListPrizes returns the catalog in creation order
func (s *PrizeServiceImpl) ListPrizes(ctx context.Context) ([]*models.Prize, error) {
	prizes, err := s.prizeRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list prizes: %w", err)
	}
	return prizes, nil
}

// CreatePrize validates and stores a new prize
func (s *PrizeServiceImpl) CreatePrize(ctx context.Context, req *models.CreatePrizeRequest) (*models.Prize, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.Weight == nil || !validWeight(*req.Weight) {
		return nil, invalid("Datos inválidos")
	}

	prize := &models.Prize{
		Name:   name,
		Image:  strings.TrimSpace(req.Image),
		Weight: *req.Weight,
	}
	if err := s.prizeRepo.Create(ctx, prize); err != nil {
		return nil, fmt.Errorf("failed to create prize: %w", err)
	}
	slog.Info("Prize created", "prizeId", prize.ID, "name", prize.Name, "weight", prize.Weight)
	return prize, nil
}

// UpdatePrize applies the fields present in req
func (s *PrizeServiceImpl) UpdatePrize(ctx context.Context, id string, req *models.UpdatePrizeRequest) (*models.Prize, error) {
	var upd models.PrizeUpdate
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, invalid("El nombre no puede estar vacío")
		}
		upd.Name = &name
	}
	if req.Image != nil {
		image := strings.TrimSpace(*req.Image)
		upd.Image = &image
	}
	if req.Weight != nil {
		if !validWeight(*req.Weight) {
			return nil, invalid("El peso debe ser un número mayor o igual a 0")
		}
		w := *req.Weight
		upd.Weight = &w
	}

	prize, err := s.prizeRepo.Update(ctx, id, upd)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update prize %s: %w", id, err)
	}
	slog.Info("Prize updated", "prizeId", id)
	return prize, nil
}

// DeletePrize removes a prize. Spin records keep their snapshot of it.
func (s *PrizeServiceImpl) DeletePrize(ctx context.Context, id string) error {
	err := s.prizeRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete prize %s: %w", id, err)
	}
	slog.Info("Prize deleted", "prizeId", id)
	return nil
}

// SeedDefaults loads DefaultPrizes into an empty catalog
func (s *PrizeServiceImpl) SeedDefaults(ctx context.Context) (int, error) {
	count, err := s.prizeRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count prizes: %w", err)
	}
	if count > 0 {
		return 0, nil
	}
	prizes := DefaultPrizes()
	if err := s.prizeRepo.CreateMany(ctx, prizes); err != nil {
		return 0, fmt.Errorf("failed to seed prizes: %w", err)
	}
	slog.Info("Example prizes loaded", "count", len(prizes))
	return len(prizes), nil
}

// ImportPrizes stores prizes in order after validating every one of them
func (s *PrizeServiceImpl) ImportPrizes(ctx context.Context, prizes []*models.Prize, replace bool) (int, error) {
	for i, p := range prizes {
		p.Name = strings.TrimSpace(p.Name)
		p.Image = strings.TrimSpace(p.Image)
		if p.Name == "" || !validWeight(p.Weight) {
			return 0, invalid(fmt.Sprintf("premio %d inválido", i+1))
		}
	}

	if replace {
		removed, err := s.prizeRepo.DeleteAll(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to clear catalog: %w", err)
		}
		slog.Info("Catalog cleared", "removed", removed)
	}
	if err := s.prizeRepo.CreateMany(ctx, prizes); err != nil {
		return 0, fmt.Errorf("failed to import prizes: %w", err)
	}
	slog.Info("Prizes imported", "count", len(prizes), "replace", replace)
	return len(prizes), nil
}

func validWeight(w float64) bool {
	return w >= 0 && !math.IsInf(w, 0) && !math.IsNaN(w)
}
