package mongodb

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/ArowuTest/spin-wheel-backend/internal/models"
	"github.com/ArowuTest/spin-wheel-backend/internal/repositories"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// testDatabase connects to MONGO_TEST_URI and returns a throwaway database
func testDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	db := client.Database("ruleta_test_" + uuid.NewString()[:8])
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	if err := EnsureIndexes(ctx, db); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}
	return db
}

func TestSpinRepositoryCompareAndSwap(t *testing.T) {
	repo := NewSpinRepository(testDatabase(t))
	ctx := context.Background()
	t0 := time.UnixMilli(time.Now().UnixMilli())

	rec := &models.SpinRecord{DNI: "12345678", LastSpinAt: t0, NextAvailableAt: t0.Add(24 * time.Hour), LastPrizeName: "Gorra"}
	if err := repo.SaveIfUnchanged(ctx, rec, nil); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := repo.SaveIfUnchanged(ctx, rec, nil); !errors.Is(err, repositories.ErrConflict) {
		t.Fatalf("duplicate insert err = %v, want ErrConflict", err)
	}

	stored, err := repo.FindByDNI(ctx, rec.DNI)
	if err != nil {
		t.Fatalf("FindByDNI: %v", err)
	}
	next := &models.SpinRecord{DNI: rec.DNI, LastSpinAt: t0.Add(25 * time.Hour), NextAvailableAt: t0.Add(49 * time.Hour), LastPrizeName: "Sticker"}
	stale := t0
	if err := repo.SaveIfUnchanged(ctx, next, &stale); !errors.Is(err, repositories.ErrConflict) {
		t.Fatalf("stale CAS err = %v, want ErrConflict", err)
	}
	if err := repo.SaveIfUnchanged(ctx, next, &stored.NextAvailableAt); err != nil {
		t.Fatalf("CAS with current value: %v", err)
	}

	stored, _ = repo.FindByDNI(ctx, rec.DNI)
	if stored.LastPrizeName != "Sticker" {
		t.Errorf("after CAS = %+v", stored)
	}
}

func TestConfigurationRepositorySingleton(t *testing.T) {
	repo := NewConfigurationRepository(testDatabase(t))
	ctx := context.Background()

	if _, err := repo.Get(ctx); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("Get err = %v, want ErrNotFound", err)
	}
	if _, err := repo.Create(ctx, &models.Configuration{BusinessName: "Mi Local"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.Create(ctx, &models.Configuration{BusinessName: "Otro"})
	if err != nil {
		t.Fatalf("second Create: %v", err)
	}
	if got.BusinessName != "Mi Local" {
		t.Errorf("second Create returned %+v", got)
	}
}

func TestPrizeRepositoryOrder(t *testing.T) {
	repo := NewPrizeRepository(testDatabase(t))
	ctx := context.Background()

	if err := repo.CreateMany(ctx, []*models.Prize{{Name: "Uno", Weight: 1}, {Name: "Dos", Weight: 2}, {Name: "Tres", Weight: 3}}); err != nil {
		t.Fatalf("CreateMany: %v", err)
	}
	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].Name != "Uno" || all[2].Name != "Tres" {
		t.Errorf("catalog = %+v", all)
	}
}
