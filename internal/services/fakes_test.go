package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ArowuTest/spin-wheel-backend/internal/models"
	"github.com/ArowuTest/spin-wheel-backend/internal/repositories"
)

type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

type fakeConfigRepo struct {
	mu  sync.Mutex
	cfg *models.Configuration
}

func (r *fakeConfigRepo) Get(ctx context.Context) (*models.Configuration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cfg == nil {
		return nil, repositories.ErrNotFound
	}
	c := *r.cfg
	c.ExemptDNIs = append([]string{}, r.cfg.ExemptDNIs...)
	return &c, nil
}

func (r *fakeConfigRepo) Create(ctx context.Context, cfg *models.Configuration) (*models.Configuration, error) {
	r.mu.Lock()
	if r.cfg == nil {
		c := *cfg
		r.cfg = &c
	}
	r.mu.Unlock()
	return r.Get(ctx)
}

func (r *fakeConfigRepo) Update(ctx context.Context, cfg *models.Configuration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *cfg
	r.cfg = &c
	return nil
}

type fakePrizeRepo struct {
	mu     sync.Mutex
	prizes []*models.Prize
	seq    int
}

func (r *fakePrizeRepo) Create(ctx context.Context, prize *models.Prize) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	prize.ID = fmt.Sprintf("p%d", r.seq)
	r.prizes = append(r.prizes, prize)
	return nil
}

func (r *fakePrizeRepo) CreateMany(ctx context.Context, prizes []*models.Prize) error {
	for _, p := range prizes {
		if err := r.Create(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakePrizeRepo) FindByID(ctx context.Context, id string) (*models.Prize, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.prizes {
		if p.ID == id {
			c := *p
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakePrizeRepo) FindAll(ctx context.Context) ([]*models.Prize, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Prize, 0, len(r.prizes))
	for _, p := range r.prizes {
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakePrizeRepo) Update(ctx context.Context, id string, upd models.PrizeUpdate) (*models.Prize, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.prizes {
		if p.ID != id {
			continue
		}
		if upd.Name != nil {
			p.Name = *upd.Name
		}
		if upd.Image != nil {
			p.Image = *upd.Image
		}
		if upd.Weight != nil {
			p.Weight = *upd.Weight
		}
		c := *p
		return &c, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakePrizeRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.prizes {
		if p.ID == id {
			r.prizes = append(r.prizes[:i], r.prizes[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakePrizeRepo) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.prizes))
	r.prizes = nil
	return n, nil
}

func (r *fakePrizeRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.prizes)), nil
}

type fakeSpinRepo struct {
	mu      sync.Mutex
	records map[string]models.SpinRecord
	// beforeCAS runs once before the next SaveIfUnchanged, simulating a concurrent writer
	beforeCAS func(r *fakeSpinRepo)
}

func newFakeSpinRepo() *fakeSpinRepo {
	return &fakeSpinRepo{records: map[string]models.SpinRecord{}}
}

func (r *fakeSpinRepo) FindByDNI(ctx context.Context, dni string) (*models.SpinRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[dni]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &rec, nil
}

func (r *fakeSpinRepo) Save(ctx context.Context, rec *models.SpinRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[rec.DNI] = *rec
	return nil
}

func (r *fakeSpinRepo) SaveIfUnchanged(ctx context.Context, rec *models.SpinRecord, prev *time.Time) error {
	if hook := r.beforeCAS; hook != nil {
		r.beforeCAS = nil
		hook(r)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.records[rec.DNI]
	switch {
	case prev == nil && ok:
		return repositories.ErrConflict
	case prev != nil && (!ok || !cur.NextAvailableAt.Equal(*prev)):
		return repositories.ErrConflict
	}
	r.records[rec.DNI] = *rec
	return nil
}
