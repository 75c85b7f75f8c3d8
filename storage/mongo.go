package storage

import (
	"context"
	"errors"
	"fmt"

	"videobrowse-service/errs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type kvDocument struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

// Mongo stores each item as one document keyed by _id.
type Mongo struct {
	collection *mongo.Collection
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{collection: db.Collection("kv")}
}

func (m *Mongo) GetItem(ctx context.Context, key string) (string, bool, error) {
	var doc kvDocument
	err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("mongo: get %q: %w: %w", key, errs.ErrStorageUnavailable, err)
	}
	return doc.Value, true, nil
}

func (m *Mongo) SetItem(ctx context.Context, key, value string) error {
	_, err := m.collection.UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{"$set": bson.M{"value": value}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo: set %q: %w: %w", key, errs.ErrStorageUnavailable, err)
	}
	return nil
}

func (m *Mongo) RemoveItem(ctx context.Context, key string) error {
	if _, err := m.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo: remove %q: %w: %w", key, errs.ErrStorageUnavailable, err)
	}
	return nil
}
