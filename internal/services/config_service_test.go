package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/ArowuTest/spin-wheel-backend/internal/models"
)

func strPtr(s string) *string { return &s }

func TestGetConfigCreatesDefaultsOnce(t *testing.T) {
	repo := &fakeConfigRepo{}
	svc := NewConfigService(repo, models.Configuration{ExemptDNIs: []string{exemptDNI}})
	ctx := context.Background()

	first, err := svc.GetConfig(ctx)
	if err != nil {
		t.Fatalf("GetConfig: %v", err)
	}
	if first.BusinessName != "Tu Negocio" {
		t.Errorf("businessName = %q, want Tu Negocio", first.BusinessName)
	}
	if !reflect.DeepEqual(first.ExemptDNIs, []string{exemptDNI}) {
		t.Errorf("exemptDnis = %v", first.ExemptDNIs)
	}

	if _, err := svc.UpdateConfig(ctx, &models.UpdateConfigRequest{BusinessName: strPtr("Otro")}); err != nil {
		t.Fatal(err)
	}
	second, err := svc.GetConfig(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if second.BusinessName != "Otro" {
		t.Errorf("GetConfig recreated the defaults: %+v", second)
	}
}

func TestUpdateConfigPartial(t *testing.T) {
	svc := NewConfigService(&fakeConfigRepo{}, models.Configuration{BusinessName: "Mi Local", InstagramQRURL: "https://qr", ExemptDNIs: []string{exemptDNI}})
	ctx := context.Background()

	cfg, err := svc.UpdateConfig(ctx, &models.UpdateConfigRequest{InstagramQRURL: strPtr("  https://nuevo  ")})
	if err != nil {
		t.Fatalf("UpdateConfig: %v", err)
	}
	if cfg.BusinessName != "Mi Local" || cfg.InstagramQRURL != "https://nuevo" {
		t.Errorf("cfg = %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.ExemptDNIs, []string{exemptDNI}) {
		t.Errorf("exemptDnis changed to %v", cfg.ExemptDNIs)
	}

	cfg, err = svc.UpdateConfig(ctx, &models.UpdateConfigRequest{ExemptDNIs: []string{" 11111111", "22222222", "11111111"}})
	if err != nil {
		t.Fatalf("UpdateConfig: %v", err)
	}
	if !reflect.DeepEqual(cfg.ExemptDNIs, []string{"11111111", "22222222"}) {
		t.Errorf("exemptDnis = %v", cfg.ExemptDNIs)
	}

	cfg, err = svc.UpdateConfig(ctx, &models.UpdateConfigRequest{ExemptDNIs: []string{}})
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.ExemptDNIs) != 0 {
		t.Errorf("empty list should clear exemptions, got %v", cfg.ExemptDNIs)
	}
}

func TestUpdateConfigRejectsBadDNI(t *testing.T) {
	repo := &fakeConfigRepo{}
	svc := NewConfigService(repo, models.Configuration{ExemptDNIs: []string{exemptDNI}})

	_, err := svc.UpdateConfig(context.Background(), &models.UpdateConfigRequest{
		BusinessName: strPtr("Nuevo"),
		ExemptDNIs:   []string{"12345678", "123"},
	})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Message != "DNI exento inválido: 123" {
		t.Fatalf("err = %v, want DNI validation error", err)
	}
	if repo.cfg != nil && repo.cfg.BusinessName == "Nuevo" {
		t.Error("a rejected update must not be partially applied")
	}
}
