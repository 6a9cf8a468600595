// Package storetest is the behavioural contract every docstore.Store
// implementation must satisfy.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/shopapp/pkg/docstore"
)

type item struct {
	ID    primitive.ObjectID  `bson:"_id"`
	Name  string              `bson:"name"`
	Kind  string              `bson:"kind,omitempty"`
	Owner *primitive.ObjectID `bson:"owner,omitempty"`
	Tags  []string            `bson:"tags"`
}

// Run exercises store against the docstore contract. Each call uses a fresh
// collection name so it may share a database with other runs.
func Run(t *testing.T, store docstore.Store) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))

	t.Run("insert and find by id", func(t *testing.T) {
		col := store.Collection("items_" + primitive.NewObjectID().Hex())
		owner := primitive.NewObjectID()
		in := item{ID: primitive.NewObjectID(), Name: "Kaos", Kind: "Baju", Owner: &owner, Tags: []string{"a"}}
		require.NoError(t, col.Insert(ctx, in))

		var out item
		require.NoError(t, col.FindByID(ctx, in.ID, &out))
		assert.Equal(t, in, out)
	})

	t.Run("missing id", func(t *testing.T) {
		col := store.Collection("items_" + primitive.NewObjectID().Hex())
		var out item
		assert.ErrorIs(t, col.FindByID(ctx, primitive.NewObjectID(), &out), docstore.ErrNoDocument)
	})

	t.Run("insert requires id", func(t *testing.T) {
		col := store.Collection("items_" + primitive.NewObjectID().Hex())
		assert.Error(t, col.Insert(ctx, item{Name: "no id"}))
	})

	t.Run("find filters in insertion order", func(t *testing.T) {
		col := store.Collection("items_" + primitive.NewObjectID().Hex())
		a := item{ID: primitive.NewObjectID(), Name: "a", Kind: "Baju"}
		b := item{ID: primitive.NewObjectID(), Name: "b", Kind: "Celana"}
		c := item{ID: primitive.NewObjectID(), Name: "c", Kind: "Baju"}
		for _, it := range []item{a, b, c} {
			require.NoError(t, col.Insert(ctx, it))
		}

		var all []item
		require.NoError(t, col.Find(ctx, nil, &all))
		require.Len(t, all, 3)
		assert.Equal(t, []string{"a", "b", "c"}, []string{all[0].Name, all[1].Name, all[2].Name})

		var baju []item
		require.NoError(t, col.Find(ctx, docstore.Filter{"kind": "Baju"}, &baju))
		require.Len(t, baju, 2)
		assert.Equal(t, "a", baju[0].Name)
		assert.Equal(t, "c", baju[1].Name)

		var none []item
		require.NoError(t, col.Find(ctx, docstore.Filter{"kind": "Jaket"}, &none))
		assert.Empty(t, none)
	})

	t.Run("replace", func(t *testing.T) {
		col := store.Collection("items_" + primitive.NewObjectID().Hex())
		it := item{ID: primitive.NewObjectID(), Name: "before"}
		require.NoError(t, col.Insert(ctx, it))

		it.Name = "after"
		require.NoError(t, col.Replace(ctx, it.ID, it))

		var out item
		require.NoError(t, col.FindByID(ctx, it.ID, &out))
		assert.Equal(t, "after", out.Name)
		require.NoError(t, col.Replace(ctx, it.ID, it), "an unchanged document still exists")

		ghost := item{ID: primitive.NewObjectID(), Name: "ghost"}
		assert.ErrorIs(t, col.Replace(ctx, ghost.ID, ghost), docstore.ErrNoDocument)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		col := store.Collection("items_" + primitive.NewObjectID().Hex())
		it := item{ID: primitive.NewObjectID(), Name: "x"}
		require.NoError(t, col.Insert(ctx, it))

		existed, err := col.Delete(ctx, it.ID)
		require.NoError(t, err)
		assert.True(t, existed)

		existed, err = col.Delete(ctx, it.ID)
		require.NoError(t, err)
		assert.False(t, existed)

		var out item
		assert.ErrorIs(t, col.FindByID(ctx, it.ID, &out), docstore.ErrNoDocument)
	})
}
