// Package mongostore implements docstore.Store on MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/shopapp/pkg/docstore"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials uri and verifies the connection with a ping.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongostore: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongostore: ping: %w", err)
	}

	return &Store{client: client, db: client.Database(database)}, nil
}

func (s *Store) Collection(name string) docstore.Collection {
	return &Collection{col: s.db.Collection(name)}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

type Collection struct {
	col *mongo.Collection
}

// Query converts a docstore filter into a MongoDB query document.
func Query(filter docstore.Filter) bson.M {
	q := bson.M{}
	for k, v := range filter {
		q[k] = v
	}
	return q
}

func (c *Collection) Find(ctx context.Context, filter docstore.Filter, results any) error {
	cur, err := c.col.Find(ctx, Query(filter), options.Find().SetSort(bson.D{{Key: "$natural", Value: 1}}))
	if err != nil {
		return fmt.Errorf("mongostore: find %s: %w", c.col.Name(), err)
	}
	if err := cur.All(ctx, results); err != nil {
		return fmt.Errorf("mongostore: decode %s: %w", c.col.Name(), err)
	}
	return nil
}

func (c *Collection) FindByID(ctx context.Context, id primitive.ObjectID, result any) error {
	err := c.col.FindOne(ctx, bson.M{"_id": id}).Decode(result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return docstore.ErrNoDocument
	}
	if err != nil {
		return fmt.Errorf("mongostore: find %s %s: %w", c.col.Name(), id.Hex(), err)
	}
	return nil
}

func (c *Collection) Insert(ctx context.Context, doc any) error {
	raw, _, err := docstore.Encode(doc)
	if err != nil {
		return err
	}
	if _, err := c.col.InsertOne(ctx, raw); err != nil {
		return fmt.Errorf("mongostore: insert %s: %w", c.col.Name(), err)
	}
	return nil
}

func (c *Collection) Replace(ctx context.Context, id primitive.ObjectID, doc any) error {
	res, err := c.col.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return fmt.Errorf("mongostore: replace %s %s: %w", c.col.Name(), id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return docstore.ErrNoDocument
	}
	return nil
}

func (c *Collection) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := c.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("mongostore: delete %s %s: %w", c.col.Name(), id.Hex(), err)
	}
	return res.DeletedCount > 0, nil
}
