package notifications

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DefaultCollection is the Mongo collection notifications are stored in.
const DefaultCollection = "notifications"

// MongoStorage stores notifications as documents in a MongoDB collection.
type MongoStorage struct {
	coll *mongo.Collection
}

// MongoStorageOption configures a MongoStorage.
type MongoStorageOption func(*mongoStorageConfig)

type mongoStorageConfig struct {
	collection string
}

// WithCollection overrides the collection name.
func WithCollection(name string) MongoStorageOption {
	return func(c *mongoStorageConfig) {
		if name != "" {
			c.collection = name
		}
	}
}

// NewMongoStorage creates a storage backed by db.
func NewMongoStorage(db *mongo.Database, opts ...MongoStorageOption) *MongoStorage {
	cfg := mongoStorageConfig{collection: DefaultCollection}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &MongoStorage{coll: db.Collection(cfg.collection)}
}

// EnsureIndexes creates the indexes recipient queries rely on. Safe to call on every start.
func (s *MongoStorage) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "subject_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "audience_role", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "read", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}

func (s *MongoStorage) Create(ctx context.Context, notif Notification) error {
	if notif.ID == "" {
		return ErrMissingID
	}
	if notif.CreatedAt.IsZero() {
		notif.CreatedAt = time.Now().UTC()
	}
	_, err := s.coll.InsertOne(ctx, notif)
	return err
}

func (s *MongoStorage) List(ctx context.Context, r Recipient, opts ListOptions) ([]Notification, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if opts.Limit > 0 {
		findOpts.SetLimit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		findOpts.SetSkip(int64(opts.Offset))
	}

	cur, err := s.coll.Find(ctx, listFilter(r, opts), findOpts)
	if err != nil {
		return nil, err
	}

	result := make([]Notification, 0)
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *MongoStorage) CountUnread(ctx context.Context, r Recipient) (int, error) {
	n, err := s.coll.CountDocuments(ctx, listFilter(r, ListOptions{OnlyUnread: true}))
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (s *MongoStorage) MarkRead(ctx context.Context, r Recipient, notifIDs ...string) error {
	filter, ok := markReadFilter(r, notifIDs)
	if !ok {
		return nil
	}

	_, err := s.coll.UpdateMany(ctx, filter, bson.M{
		"$set": bson.M{"read": true, "read_at": time.Now().UTC()},
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	return err
}

// recipientFilter matches records addressed to the user, to the role, or to everyone.
// Empty identity fields are not stored (omitempty), hence $exists for broadcasts.
func recipientFilter(r Recipient) bson.A {
	or := bson.A{
		bson.M{"subject_id": bson.M{"$exists": false}, "audience_role": bson.M{"$exists": false}},
	}
	if r.UserID != "" {
		or = append(or, bson.M{"subject_id": r.UserID})
	}
	if r.Role != "" {
		or = append(or, bson.M{"audience_role": r.Role})
	}
	return or
}

// markReadFilter selects what MarkRead updates. Without ids only records addressed
// to the user qualify; false means there is nothing to update.
func markReadFilter(r Recipient, notifIDs []string) (bson.D, bool) {
	if len(notifIDs) == 0 {
		if r.UserID == "" {
			return nil, false
		}
		return bson.D{{Key: "subject_id", Value: r.UserID}, {Key: "read", Value: false}}, true
	}
	filter := listFilter(r, ListOptions{OnlyUnread: true})
	return append(filter, bson.E{Key: "_id", Value: bson.M{"$in": notifIDs}}), true
}

func listFilter(r Recipient, opts ListOptions) bson.D {
	filter := bson.D{{Key: "$or", Value: recipientFilter(r)}}
	if opts.OnlyUnread {
		filter = append(filter, bson.E{Key: "read", Value: false})
	}
	if len(opts.Types) > 0 {
		filter = append(filter, bson.E{Key: "type", Value: bson.M{"$in": opts.Types}})
	}
	if opts.Since != nil {
		filter = append(filter, bson.E{Key: "created_at", Value: bson.M{"$gte": *opts.Since}})
	}
	return filter
}
