package events

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// DefaultCollection is the Mongo collection events are appended to.
const DefaultCollection = "events"

// MongoStorage appends events to a MongoDB collection.
type MongoStorage struct {
	coll *mongo.Collection
}

// NewMongoStorage creates a storage writing to collection in db.
// An empty collection name falls back to DefaultCollection.
func NewMongoStorage(db *mongo.Database, collection string) *MongoStorage {
	if collection == "" {
		collection = DefaultCollection
	}
	return &MongoStorage{coll: db.Collection(collection)}
}

// EnsureIndexes creates the indexes used by event lookups.
func (s *MongoStorage) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}

func (s *MongoStorage) Store(ctx context.Context, event Event) error {
	if _, err := s.coll.InsertOne(ctx, event); err != nil {
		return errors.Join(ErrStorageNotAvailable, err)
	}
	return nil
}
