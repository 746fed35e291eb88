package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/ArowuTest/spin-wheel-backend/internal/models"
	"github.com/ArowuTest/spin-wheel-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// singletonID pins the configuration to one document so concurrent first boots
// collide on _id instead of creating two.
const singletonID = "config"

// Compile-time check to ensure ConfigurationRepository implements the interface
var _ repositories.ConfigurationRepository = (*ConfigurationRepository)(nil)

// ConfigurationRepository implements repositories.ConfigurationRepository
type ConfigurationRepository struct {
	collection *mongo.Collection
}

// NewConfigurationRepository creates a new ConfigurationRepository
func NewConfigurationRepository(db *mongo.Database) *ConfigurationRepository {
	return &ConfigurationRepository{
		collection: db.Collection("configs"),
	}
}

// Get retrieves the configuration singleton
func (r *ConfigurationRepository) Get(ctx context.Context) (*models.Configuration, error) {
	var cfg models.Configuration
	err := r.collection.FindOne(ctx, bson.M{"_id": singletonID}).Decode(&cfg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Create inserts the singleton, or returns the stored one if another writer got there first
func (r *ConfigurationRepository) Create(ctx context.Context, cfg *models.Configuration) (*models.Configuration, error) {
	now := time.Now()
	cfg.ID = singletonID
	cfg.CreatedAt = now
	cfg.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, cfg)
	if mongo.IsDuplicateKeyError(err) {
		return r.Get(ctx)
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Update replaces the singleton, creating it if needed
func (r *ConfigurationRepository) Update(ctx context.Context, cfg *models.Configuration) error {
	cfg.ID = singletonID
	cfg.UpdatedAt = time.Now()
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = cfg.UpdatedAt
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": singletonID}, cfg, opts)
	return err
}
