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

// Compile-time check to ensure SpinRepository implements the interface
var _ repositories.SpinRepository = (*SpinRepository)(nil)

// SpinRepository handles MongoDB operations for SpinRecord. The dni field
// carries a unique index (see EnsureIndexes).
type SpinRepository struct {
	collection *mongo.Collection
}

// NewSpinRepository creates a new SpinRepository
func NewSpinRepository(db *mongo.Database) *SpinRepository {
	return &SpinRepository{
		collection: db.Collection(spinsCollection),
	}
}

// FindByDNI finds the spin record of a DNI
func (r *SpinRepository) FindByDNI(ctx context.Context, dni string) (*models.SpinRecord, error) {
	var rec models.SpinRecord
	err := r.collection.FindOne(ctx, bson.M{"dni": dni}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Save upserts the record for rec.DNI
func (r *SpinRepository) Save(ctx context.Context, rec *models.SpinRecord) error {
	now := time.Now()
	update := bson.M{
		"$set": spinFields(rec, now),
		"$setOnInsert": bson.M{
			"dni":       rec.DNI,
			"createdAt": now,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"dni": rec.DNI}, update, opts)
	return err
}

// SaveIfUnchanged performs a compare-and-swap on nextAvailableAt
func (r *SpinRepository) SaveIfUnchanged(ctx context.Context, rec *models.SpinRecord, prevNextAvailableAt *time.Time) error {
	now := time.Now()
	if prevNextAvailableAt == nil {
		rec.CreatedAt = now
		rec.UpdatedAt = now
		_, err := r.collection.InsertOne(ctx, rec)
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrConflict
		}
		return err
	}

	filter := bson.M{"dni": rec.DNI, "nextAvailableAt": *prevNextAvailableAt}
	res, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": spinFields(rec, now)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrConflict
	}
	return nil
}

func spinFields(rec *models.SpinRecord, now time.Time) bson.M {
	return bson.M{
		"lastSpinAt":      rec.LastSpinAt,
		"nextAvailableAt": rec.NextAvailableAt,
		"lastPrizeId":     rec.LastPrizeID,
		"lastPrizeName":   rec.LastPrizeName,
		"lastPrizeImage":  rec.LastPrizeImage,
		"updatedAt":       now,
	}
}
