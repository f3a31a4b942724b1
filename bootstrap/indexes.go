package bootstrap

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EnsureJobIndexes creates the indexes the query paths depend on:
// the text index backing relevance search, the search/sort compound,
// the caller-scoped lookups, and the unique email on users.
func EnsureJobIndexes(ctx context.Context, db *mongo.Database) error {
	jobs := db.Collection("jobs")

	_, err := jobs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "description", Value: "text"},
			{Key: "company", Value: "text"},
		}},
		{Keys: bson.D{
			{Key: "is_active", Value: 1},
			{Key: "created_at", Value: -1},
		}},
		{Keys: bson.D{{Key: "posted_by", Value: 1}}},
		{Keys: bson.D{{Key: "applications.user_id", Value: 1}}},
	})
	if err != nil {
		return err
	}

	users := db.Collection("users")
	_, err = users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
