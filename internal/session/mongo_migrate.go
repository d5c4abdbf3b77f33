package session

import (
	"context"
	"fmt"

	"hotelinfinity/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SessionValidator rejects documents that the mongo store could not decode.
var SessionValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "payload", "updated_at"},
		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
				"enum":     []string{Key},
			},
			"payload": bson.M{
				"bsonType": "binData",
			},
			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

var SessionIndexes = []mongo.IndexModel{
	{Keys: bson.D{{Key: "updated_at", Value: -1}}},
}

// MigrateMongo creates the sessions collection with its validator and
// indexes, or refreshes the validator when the collection already exists.
func MigrateMongo(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	if err := ensureCollection(ctx, db, CollectionName, SessionValidator, log); err != nil {
		return fmt.Errorf("failed to ensure collection %s: %w", CollectionName, err)
	}
	if _, err := db.Collection(CollectionName).Indexes().CreateMany(ctx, SessionIndexes); err != nil {
		return fmt.Errorf("failed to ensure indexes for %s: %w", CollectionName, err)
	}
	log.Info("Session collection migrated", "database", db.Name(), "collection", CollectionName)
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating collection validator", "collection", name, "error", err)
	}
	return nil
}
