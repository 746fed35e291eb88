package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/ArowuTest/spin-wheel-backend/internal/models"
	"github.com/ArowuTest/spin-wheel-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure PrizeRepository implements the interface
var _ repositories.PrizeRepository = (*PrizeRepository)(nil)

// PrizeRepository handles MongoDB operations for Prize
type PrizeRepository struct {
	collection *mongo.Collection
}

// NewPrizeRepository creates a new PrizeRepository
func NewPrizeRepository(db *mongo.Database) *PrizeRepository {
	return &PrizeRepository{
		collection: db.Collection("prizes"),
	}
}

// Create inserts a new prize
func (r *PrizeRepository) Create(ctx context.Context, prize *models.Prize) error {
	// ObjectID hex keeps ids sortable by creation within the same millisecond
	prize.ID = primitive.NewObjectID().Hex()
	prize.CreatedAt = time.Now()
	prize.UpdatedAt = prize.CreatedAt
	_, err := r.collection.InsertOne(ctx, prize)
	return err
}

// CreateMany inserts prizes in the given order
func (r *PrizeRepository) CreateMany(ctx context.Context, prizes []*models.Prize) error {
	if len(prizes) == 0 {
		return nil
	}
	now := time.Now()
	docs := make([]interface{}, 0, len(prizes))
	for _, p := range prizes {
		p.ID = primitive.NewObjectID().Hex()
		p.CreatedAt = now
		p.UpdatedAt = now
		docs = append(docs, p)
	}
	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	return err
}

// FindByID finds a prize by ID
func (r *PrizeRepository) FindByID(ctx context.Context, id string) (*models.Prize, error) {
	var prize models.Prize
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&prize)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &prize, nil
}

// FindAll returns the whole catalog in creation order
func (r *PrizeRepository) FindAll(ctx context.Context) ([]*models.Prize, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var prizes []*models.Prize
	if err := cursor.All(ctx, &prizes); err != nil {
		return nil, err
	}
	if prizes == nil {
		prizes = []*models.Prize{}
	}
	return prizes, nil
}

// Update applies a partial update and returns the updated prize
func (r *PrizeRepository) Update(ctx context.Context, id string, upd models.PrizeUpdate) (*models.Prize, error) {
	set := bson.M{"updatedAt": time.Now()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Image != nil {
		set["image"] = *upd.Image
	}
	if upd.Weight != nil {
		set["weight"] = *upd.Weight
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var prize models.Prize
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&prize)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &prize, nil
}

// Delete deletes a prize by ID
func (r *PrizeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// DeleteAll empties the catalog
func (r *PrizeRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count counts all prizes
func (r *PrizeRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
