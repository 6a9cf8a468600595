package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/shopapp/app/models"
	"github.com/shashiranjanraj/shopapp/pkg/docstore"
)

// GarmentRepository handles store operations for Garment.
type GarmentRepository struct {
	docs documents[models.Garment]
}

func NewGarmentRepository(store docstore.Store) *GarmentRepository {
	return &GarmentRepository{docs: newDocuments[models.Garment](store, "garments", "Garment")}
}

func (r *GarmentRepository) List(ctx context.Context) ([]models.Garment, error) {
	return r.docs.list(ctx, nil)
}

// Get looks up a garment by its hex identifier.
func (r *GarmentRepository) Get(ctx context.Context, id string) (models.Garment, error) {
	oid, err := r.docs.parseID(id)
	if err != nil {
		return models.Garment{}, err
	}
	return r.docs.get(ctx, oid)
}

func (r *GarmentRepository) GetByObjectID(ctx context.Context, id primitive.ObjectID) (models.Garment, error) {
	return r.docs.get(ctx, id)
}

func (r *GarmentRepository) Create(ctx context.Context, fields models.Fields) (models.Garment, error) {
	g, err := models.NewGarment(fields)
	if err != nil {
		return models.Garment{}, err
	}
	if err := r.docs.insert(ctx, g); err != nil {
		return models.Garment{}, err
	}
	return g, nil
}

// Update merges fields into the stored garment and persists the result.
func (r *GarmentRepository) Update(ctx context.Context, id string, fields models.Fields) (models.Garment, error) {
	oid, err := r.docs.parseID(id)
	if err != nil {
		return models.Garment{}, err
	}

	current, err := r.docs.get(ctx, oid)
	if err != nil {
		return models.Garment{}, err
	}

	updated, err := current.Apply(fields)
	if err != nil {
		return models.Garment{}, err
	}

	if err := r.docs.replace(ctx, oid, updated); err != nil {
		return models.Garment{}, err
	}
	return updated, nil
}

// Save replaces the stored copy of g.
func (r *GarmentRepository) Save(ctx context.Context, g models.Garment) error {
	return r.docs.replace(ctx, g.ID, g)
}

// Delete removes the garment and reports whether it existed.
func (r *GarmentRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := r.docs.parseID(id)
	if err != nil {
		return false, err
	}
	return r.docs.delete(ctx, oid)
}
