// Package docstore is the persistence boundary of the catalog: named
// collections of BSON documents keyed by ObjectID, with equality filters.
//
// Three implementations exist:
//
//	mongostore  MongoDB (production default)
//	sqlstore    one gorm-managed "documents" table on sqlite/postgres/mysql/sqlserver
//	memstore    in-process, for tests and STORE_DRIVER=memory
package docstore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNoDocument is returned when an id matches no document.
var ErrNoDocument = errors.New("docstore: no document")

// Filter is a conjunction of top-level field equalities. A nil or empty
// filter matches every document.
type Filter map[string]any

// Collection is one named set of documents. Documents are any value the
// BSON codec can marshal and must carry an ObjectID "_id".
type Collection interface {
	// Find decodes every matching document into results, a pointer to a
	// slice, in insertion order.
	Find(ctx context.Context, filter Filter, results any) error
	// FindByID decodes the document with id into result or returns ErrNoDocument.
	FindByID(ctx context.Context, id primitive.ObjectID, result any) error
	Insert(ctx context.Context, doc any) error
	// Replace overwrites the document with id or returns ErrNoDocument.
	Replace(ctx context.Context, id primitive.ObjectID, doc any) error
	// Delete removes the document with id and reports whether it existed.
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// Store hands out collections.
type Store interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// ErrMissingID is returned by Encode for documents without an ObjectID _id.
var ErrMissingID = errors.New("docstore: document has no ObjectID _id")

// Encode marshals doc and extracts its _id.
func Encode(doc any) (bson.Raw, primitive.ObjectID, error) {
	b, err := bson.Marshal(doc)
	if err != nil {
		return nil, primitive.NilObjectID, fmt.Errorf("docstore: encode: %w", err)
	}
	raw := bson.Raw(b)

	val, err := raw.LookupErr("_id")
	if err != nil {
		return nil, primitive.NilObjectID, ErrMissingID
	}
	id, ok := val.ObjectIDOK()
	if !ok || id.IsZero() {
		return nil, primitive.NilObjectID, ErrMissingID
	}
	return raw, id, nil
}
