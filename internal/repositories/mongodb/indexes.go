package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const spinsCollection = "spins"

// EnsureIndexes creates the indexes the repositories rely on. Safe to call on every boot.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(spinsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "dni", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("dni_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create spins.dni index: %w", err)
	}

	_, err = db.Collection("prizes").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}},
		Options: options.Index().SetName("catalog_order"),
	})
	if err != nil {
		return fmt.Errorf("failed to create prizes order index: %w", err)
	}
	return nil
}
