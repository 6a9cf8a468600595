package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/shopapp/app/models"
	"github.com/shashiranjanraj/shopapp/pkg/cache"
	"github.com/shashiranjanraj/shopapp/pkg/docstore"
	"github.com/shashiranjanraj/shopapp/pkg/logger"
)

// ProductRepository handles store operations for Product. Single-product
// reads go through the cache; every write invalidates the cached copy.
type ProductRepository struct {
	docs  documents[models.Product]
	cache cache.Store
	ttl   time.Duration
}

func NewProductRepository(store docstore.Store, c cache.Store, ttl time.Duration) *ProductRepository {
	if c == nil {
		c = cache.Nop{}
	}
	return &ProductRepository{
		docs:  newDocuments[models.Product](store, "products", "Product"),
		cache: c,
		ttl:   ttl,
	}
}

// List returns every product, or only those in category when it is non-empty.
func (r *ProductRepository) List(ctx context.Context, category string) ([]models.Product, error) {
	var filter docstore.Filter
	if category != "" {
		filter = docstore.Filter{"category": category}
	}
	return r.docs.list(ctx, filter)
}

// Get looks up a product by its hex identifier.
func (r *ProductRepository) Get(ctx context.Context, id string) (models.Product, error) {
	oid, err := r.docs.parseID(id)
	if err != nil {
		return models.Product{}, err
	}
	return r.GetByObjectID(ctx, oid)
}

func (r *ProductRepository) GetByObjectID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	key := cache.Key("product", id.Hex())

	var p models.Product
	if r.cache.Get(ctx, key, &p) {
		return p, nil
	}

	p, err := r.docs.get(ctx, id)
	if err != nil {
		return models.Product{}, err
	}

	if err := r.cache.Set(ctx, key, p, r.ttl); err != nil {
		logger.WithCtx(ctx).Warn("cache: set product failed", "product_id", id.Hex(), "error", err.Error())
	}
	return p, nil
}

// Create validates fields and persists a new standalone product.
func (r *ProductRepository) Create(ctx context.Context, fields models.Fields) (models.Product, error) {
	p, err := models.NewProduct(fields)
	if err != nil {
		return models.Product{}, err
	}
	if err := r.Insert(ctx, p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// Insert persists an already validated product.
func (r *ProductRepository) Insert(ctx context.Context, p models.Product) error {
	return r.docs.insert(ctx, p)
}

// Update merges fields into the stored product and persists the result.
func (r *ProductRepository) Update(ctx context.Context, id string, fields models.Fields) (models.Product, error) {
	oid, err := r.docs.parseID(id)
	if err != nil {
		return models.Product{}, err
	}

	current, err := r.docs.get(ctx, oid)
	if err != nil {
		return models.Product{}, err
	}

	updated, err := current.Apply(fields)
	if err != nil {
		return models.Product{}, err
	}

	if err := r.Save(ctx, updated); err != nil {
		return models.Product{}, err
	}
	return updated, nil
}

// Save replaces the stored copy of p.
func (r *ProductRepository) Save(ctx context.Context, p models.Product) error {
	defer r.forget(ctx, p.ID)
	return r.docs.replace(ctx, p.ID, p)
}

// Delete removes the product and reports whether it existed. Deleting a
// missing product is not an error.
func (r *ProductRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := r.docs.parseID(id)
	if err != nil {
		return false, err
	}
	return r.DeleteByObjectID(ctx, oid)
}

func (r *ProductRepository) DeleteByObjectID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	defer r.forget(ctx, id)
	return r.docs.delete(ctx, id)
}

func (r *ProductRepository) forget(ctx context.Context, id primitive.ObjectID) {
	if err := r.cache.Del(ctx, cache.Key("product", id.Hex())); err != nil {
		logger.WithCtx(ctx).Warn("cache: invalidate product failed", "product_id", id.Hex(), "error", err.Error())
	}
}
