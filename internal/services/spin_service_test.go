package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ArowuTest/spin-wheel-backend/internal/models"
)

const (
	regularDNI = "12345678"
	exemptDNI  = "45035781"
)

type spinFixture struct {
	clock  *testClock
	prizes *fakePrizeRepo
	spins  *fakeSpinRepo
	svc    *SpinServiceImpl
}

func newSpinFixture(t *testing.T, weights ...float64) *spinFixture {
	t.Helper()
	f := &spinFixture{
		clock:  &testClock{t: time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)},
		prizes: &fakePrizeRepo{},
		spins:  newFakeSpinRepo(),
	}
	for i, w := range weights {
		if err := f.prizes.Create(context.Background(), &models.Prize{Name: "Premio " + string(rune('A'+i)), Image: "/img.png", Weight: w}); err != nil {
			t.Fatal(err)
		}
	}
	configs := NewConfigService(&fakeConfigRepo{}, models.Configuration{
		BusinessName: "Mi Local",
		ExemptDNIs:   []string{exemptDNI},
	})
	f.svc = NewSpinService(configs, f.prizes, f.spins, 24*time.Hour,
		WithClock(f.clock.Now), WithRandomSource(fixedSource(0.32)))
	return f
}

func TestSpinCooldown(t *testing.T) {
	f := newSpinFixture(t, 30, 10, 25, 5, 30)
	ctx := context.Background()
	t0 := f.clock.t

	res, err := f.svc.Spin(ctx, regularDNI)
	if err != nil {
		t.Fatalf("first spin: %v", err)
	}
	if res.Prize.Name != "Premio B" {
		t.Errorf("prize = %s, want Premio B", res.Prize.Name)
	}
	if res.Redirect != "/premio/"+regularDNI {
		t.Errorf("redirect = %s", res.Redirect)
	}
	rec := f.spins.records[regularDNI]
	if !rec.NextAvailableAt.Equal(t0.Add(24 * time.Hour)) {
		t.Errorf("nextAvailableAt = %v, want %v", rec.NextAvailableAt, t0.Add(24*time.Hour))
	}

	f.clock.t = t0.Add(time.Hour)
	_, err = f.svc.Spin(ctx, regularDNI)
	var limited *RateLimitedError
	if !errors.As(err, &limited) {
		t.Fatalf("second spin err = %v, want RateLimitedError", err)
	}
	if limited.RetryInMs() != (23 * time.Hour).Milliseconds() {
		t.Errorf("retryInMs = %d, want %d", limited.RetryInMs(), (23 * time.Hour).Milliseconds())
	}
	if limited.Hours() != 23 || limited.Minutes() != 0 {
		t.Errorf("remaining = %dh %dm, want 23h 0m", limited.Hours(), limited.Minutes())
	}
	if got := limited.Error(); got != "Este DNI ya giró. Faltan 23h 0m para volver a tirar." {
		t.Errorf("message = %q", got)
	}

	f.clock.t = t0.Add(24 * time.Hour)
	if _, err := f.svc.Spin(ctx, regularDNI); err != nil {
		t.Fatalf("spin after cooldown: %v", err)
	}
	if got := f.spins.records[regularDNI].NextAvailableAt; !got.Equal(t0.Add(48 * time.Hour)) {
		t.Errorf("nextAvailableAt after second spin = %v", got)
	}
}

func TestSpinExemptNeverCoolsDown(t *testing.T) {
	f := newSpinFixture(t, 1, 1)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		f.clock.t = f.clock.t.Add(time.Duration(i) * time.Second)
		if _, err := f.svc.Spin(ctx, exemptDNI); err != nil {
			t.Fatalf("spin %d: %v", i, err)
		}
		rec := f.spins.records[exemptDNI]
		if !rec.NextAvailableAt.Equal(f.clock.t) || !rec.LastSpinAt.Equal(f.clock.t) {
			t.Fatalf("spin %d: nextAvailableAt %v, lastSpinAt %v, want both %v", i, rec.NextAvailableAt, rec.LastSpinAt, f.clock.t)
		}
	}
}

func TestSpinExemptionBeatsStoredCooldown(t *testing.T) {
	f := newSpinFixture(t, 1)
	f.spins.records[exemptDNI] = models.SpinRecord{DNI: exemptDNI, NextAvailableAt: f.clock.t.Add(10 * time.Hour)}

	if _, err := f.svc.Spin(context.Background(), exemptDNI); err != nil {
		t.Fatalf("exempt spin with a stored cooldown: %v", err)
	}
}

func TestSpinValidation(t *testing.T) {
	f := newSpinFixture(t, 1)
	for _, dni := range []string{"", "1234567", "123456789", "1234567a", " 12345678", "１２３４５６７８"} {
		_, err := f.svc.Spin(context.Background(), dni)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("Spin(%q) err = %v, want ValidationError", dni, err)
			continue
		}
		if verr.Message != "DNI debe tener 8 dígitos" {
			t.Errorf("Spin(%q) message = %q", dni, verr.Message)
		}
	}
	if len(f.spins.records) != 0 {
		t.Error("invalid DNIs must not write records")
	}
}

func TestSpinEmptyCatalog(t *testing.T) {
	f := newSpinFixture(t)
	if _, err := f.svc.Spin(context.Background(), regularDNI); !errors.Is(err, ErrCatalogEmpty) {
		t.Fatalf("err = %v, want ErrCatalogEmpty", err)
	}
	if len(f.spins.records) != 0 {
		t.Error("a failed spin must not start a cooldown")
	}
}

func TestSpinSnapshotSurvivesCatalogEdits(t *testing.T) {
	f := newSpinFixture(t, 1)
	ctx := context.Background()

	res, err := f.svc.Spin(ctx, regularDNI)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.prizes.Delete(ctx, res.Prize.ID); err != nil {
		t.Fatal(err)
	}

	view, err := f.svc.LastPrize(ctx, regularDNI)
	if err != nil {
		t.Fatalf("LastPrize: %v", err)
	}
	if view.PrizeName != res.Prize.Name || view.PrizeImage != "/img.png" {
		t.Errorf("snapshot = %+v, want %s", view, res.Prize.Name)
	}
	if view.BusinessName != "Mi Local" || view.DNI != regularDNI {
		t.Errorf("view = %+v", view)
	}
}

func TestLastPrizeErrors(t *testing.T) {
	f := newSpinFixture(t, 1)
	ctx := context.Background()

	var verr *ValidationError
	if _, err := f.svc.LastPrize(ctx, "abc"); !errors.As(err, &verr) || verr.Message != "DNI inválido" {
		t.Errorf("invalid dni err = %v", err)
	}
	if _, err := f.svc.LastPrize(ctx, regularDNI); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown dni err = %v, want ErrNotFound", err)
	}
}

func TestSpinLosesRaceToConcurrentSpin(t *testing.T) {
	f := newSpinFixture(t, 1)
	winnerNext := f.clock.t.Add(24 * time.Hour)
	f.spins.beforeCAS = func(r *fakeSpinRepo) {
		r.records[regularDNI] = models.SpinRecord{DNI: regularDNI, LastSpinAt: f.clock.t, NextAvailableAt: winnerNext}
	}

	_, err := f.svc.Spin(context.Background(), regularDNI)
	var limited *RateLimitedError
	if !errors.As(err, &limited) {
		t.Fatalf("err = %v, want RateLimitedError", err)
	}
	if !limited.NextAvailableAt.Equal(winnerNext) {
		t.Errorf("nextAvailableAt = %v, want the winner's %v", limited.NextAvailableAt, winnerNext)
	}
}

func TestSpinConflictWithoutCooldown(t *testing.T) {
	f := newSpinFixture(t, 1)
	f.spins.records[regularDNI] = models.SpinRecord{DNI: regularDNI, NextAvailableAt: f.clock.t.Add(-time.Hour)}
	f.spins.beforeCAS = func(r *fakeSpinRepo) {
		// a concurrent writer moved the record without leaving it cooling down
		r.records[regularDNI] = models.SpinRecord{DNI: regularDNI, NextAvailableAt: f.clock.t.Add(-time.Minute)}
	}

	if _, err := f.svc.Spin(context.Background(), regularDNI); !errors.Is(err, ErrSpinConflict) {
		t.Fatalf("err = %v, want ErrSpinConflict", err)
	}
}

func TestEvaluateState(t *testing.T) {
	now := time.Now()
	future := &models.SpinRecord{NextAvailableAt: now.Add(time.Minute)}
	past := &models.SpinRecord{NextAvailableAt: now.Add(-time.Minute)}
	exact := &models.SpinRecord{NextAvailableAt: now}

	tests := []struct {
		name   string
		rec    *models.SpinRecord
		exempt bool
		want   SpinState
	}{
		{"never spun", nil, false, StateNeverSpun},
		{"cooling down", future, false, StateCoolingDown},
		{"cooldown over", past, false, StateEligible},
		{"cooldown ends now", exact, false, StateEligible},
		{"exempt cooling down", future, true, StateEligible},
		{"exempt never spun", nil, true, StateEligible},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EvaluateState(tt.rec, tt.exempt, now); got != tt.want {
				t.Errorf("EvaluateState = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRateLimitedRoundsMinutesUp(t *testing.T) {
	now := time.Now()
	e := newRateLimited(now.Add(2*time.Hour+30*time.Minute+time.Second), now)
	if e.Hours() != 2 || e.Minutes() != 31 {
		t.Errorf("remaining = %dh %dm, want 2h 31m", e.Hours(), e.Minutes())
	}
}
