package services

import (
	"math/rand"

	"github.com/ArowuTest/spin-wheel-backend/internal/models"
)

// RandomSource yields uniform values in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// globalSource uses the goroutine-safe top-level math/rand functions
type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// PickWeighted selects one prize with probability proportional to its weight.
//
// Prizes with weight <= 0 never win while any positive weight exists. If none
// does, the first prize of the catalog is returned, so a non-empty catalog
// always yields a prize. Returns nil only for an empty catalog.
func PickWeighted(prizes []*models.Prize, src RandomSource) *models.Prize {
	candidates := make([]*models.Prize, 0, len(prizes))
	total := 0.0
	for _, p := range prizes {
		if p.Weight > 0 {
			candidates = append(candidates, p)
			total += p.Weight
		}
	}

	if total <= 0 {
		if len(candidates) > 0 {
			return candidates[0]
		}
		if len(prizes) > 0 {
			return prizes[0]
		}
		return nil
	}

	r := src.Float64() * total
	for _, p := range candidates {
		if r < p.Weight {
			return p
		}
		r -= p.Weight
	}
	// rounding slack
	return candidates[len(candidates)-1]
}
