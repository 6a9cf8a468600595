// Package memstore is an in-process docstore.Store. Documents are kept as
// encoded BSON so callers never share memory with the store.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/shopapp/pkg/docstore"
)

type Store struct {
	mu          sync.Mutex
	collections map[string]*Collection
}

func New() *Store {
	return &Store{collections: make(map[string]*Collection)}
}

func (s *Store) Collection(name string) docstore.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[name]
	if !ok {
		c = &Collection{docs: make(map[primitive.ObjectID]bson.Raw)}
		s.collections[name] = c
	}
	return c
}

func (s *Store) Ping(context.Context) error  { return nil }
func (s *Store) Close(context.Context) error { return nil }

type Collection struct {
	mu    sync.RWMutex
	docs  map[primitive.ObjectID]bson.Raw
	order []primitive.ObjectID
}

func (c *Collection) Find(ctx context.Context, filter docstore.Filter, results any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.RLock()
	matched := make([]bson.Raw, 0, len(c.order))
	for _, id := range c.order {
		raw := c.docs[id]
		ok, err := docstore.Matches(raw, filter)
		if err != nil {
			c.mu.RUnlock()
			return err
		}
		if ok {
			matched = append(matched, raw)
		}
	}
	c.mu.RUnlock()

	return docstore.DecodeAll(matched, results)
}

func (c *Collection) FindByID(ctx context.Context, id primitive.ObjectID, result any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.RLock()
	raw, ok := c.docs[id]
	c.mu.RUnlock()
	if !ok {
		return docstore.ErrNoDocument
	}
	return bson.Unmarshal(raw, result)
}

func (c *Collection) Insert(ctx context.Context, doc any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, id, err := docstore.Encode(doc)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.docs[id]; exists {
		return fmt.Errorf("memstore: duplicate _id %s", id.Hex())
	}
	c.docs[id] = raw
	c.order = append(c.order, id)
	return nil
}

func (c *Collection) Replace(ctx context.Context, id primitive.ObjectID, doc any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, docID, err := docstore.Encode(doc)
	if err != nil {
		return err
	}
	if docID != id {
		return fmt.Errorf("memstore: replace %s with document %s", id.Hex(), docID.Hex())
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.docs[id]; !ok {
		return docstore.ErrNoDocument
	}
	c.docs[id] = raw
	return nil
}

func (c *Collection) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.docs[id]; !ok {
		return false, nil
	}
	delete(c.docs, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true, nil
}
