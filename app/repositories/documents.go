package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/shopapp/pkg/docstore"
	"github.com/shashiranjanraj/shopapp/pkg/fault"
	"github.com/shashiranjanraj/shopapp/pkg/metrics"
)

// documents is the typed view of one collection shared by the repositories.
// It turns store results into faults: a missing id is NotFound and an id
// that is not 24 hex characters is MalformedID.
type documents[T any] struct {
	col  docstore.Collection
	name string // collection name
	kind string // entity kind used in fault messages
}

func newDocuments[T any](store docstore.Store, name, kind string) documents[T] {
	return documents[T]{col: store.Collection(name), name: name, kind: kind}
}

func (d documents[T]) parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, &fault.MalformedID{Kind: d.kind, ID: id, Err: err}
	}
	return oid, nil
}

func (d documents[T]) list(ctx context.Context, filter docstore.Filter) ([]T, error) {
	defer metrics.ObserveStore(d.name, "find", time.Now())

	out := []T{}
	if err := d.col.Find(ctx, filter, &out); err != nil {
		metrics.RecordStoreError(d.name, "find")
		return nil, err
	}
	return out, nil
}

func (d documents[T]) get(ctx context.Context, id primitive.ObjectID) (T, error) {
	defer metrics.ObserveStore(d.name, "get", time.Now())

	var out T
	err := d.col.FindByID(ctx, id, &out)
	if errors.Is(err, docstore.ErrNoDocument) {
		return out, fault.NotFoundf(d.kind, id.Hex())
	}
	if err != nil {
		metrics.RecordStoreError(d.name, "get")
		return out, err
	}
	return out, nil
}

func (d documents[T]) insert(ctx context.Context, doc T) error {
	defer metrics.ObserveStore(d.name, "insert", time.Now())

	if err := d.col.Insert(ctx, doc); err != nil {
		metrics.RecordStoreError(d.name, "insert")
		return err
	}
	return nil
}

func (d documents[T]) replace(ctx context.Context, id primitive.ObjectID, doc T) error {
	defer metrics.ObserveStore(d.name, "replace", time.Now())

	err := d.col.Replace(ctx, id, doc)
	if errors.Is(err, docstore.ErrNoDocument) {
		return fault.NotFoundf(d.kind, id.Hex())
	}
	if err != nil {
		metrics.RecordStoreError(d.name, "replace")
		return err
	}
	return nil
}

func (d documents[T]) delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	defer metrics.ObserveStore(d.name, "delete", time.Now())

	existed, err := d.col.Delete(ctx, id)
	if err != nil {
		metrics.RecordStoreError(d.name, "delete")
		return false, err
	}
	return existed, nil
}
