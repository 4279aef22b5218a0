package bootstrap

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the application relies on. Safe to
// run on every startup.
func EnsureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	// One role per crew member per submission.
	if _, err := db.Collection("crew_assignments").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "submissionId", Value: 1},
			{Key: "crewMemberId", Value: 1},
			{Key: "crewRoleId", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	if _, err := db.Collection("submission_genres").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "submissionId", Value: 1}},
	}); err != nil {
		return err
	}

	if _, err := db.Collection("nominations").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "submissionId", Value: 1}},
	}); err != nil {
		return err
	}

	if _, err := db.Collection("submissions").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
	}); err != nil {
		return err
	}

	return nil
}
