package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/shopapp/app/models"
	"github.com/shashiranjanraj/shopapp/pkg/fault"
	"github.com/shashiranjanraj/shopapp/pkg/logger"
	"github.com/shashiranjanraj/shopapp/pkg/workerpool"
)

// ProductStore is the product data access the catalog needs.
type ProductStore interface {
	List(ctx context.Context, category string) ([]models.Product, error)
	Get(ctx context.Context, id string) (models.Product, error)
	GetByObjectID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	Create(ctx context.Context, fields models.Fields) (models.Product, error)
	Insert(ctx context.Context, p models.Product) error
	Update(ctx context.Context, id string, fields models.Fields) (models.Product, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteByObjectID(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// GarmentStore is the garment data access the catalog needs.
type GarmentStore interface {
	List(ctx context.Context) ([]models.Garment, error)
	Get(ctx context.Context, id string) (models.Garment, error)
	GetByObjectID(ctx context.Context, id primitive.ObjectID) (models.Garment, error)
	Create(ctx context.Context, fields models.Fields) (models.Garment, error)
	Update(ctx context.Context, id string, fields models.Fields) (models.Garment, error)
	Save(ctx context.Context, g models.Garment) error
	Delete(ctx context.Context, id string) (bool, error)
}

// Policy decides what deleting one side of the garment/product relation
// does to the other side. The zero value touches neither.
type Policy struct {
	// CascadeGarmentDelete deletes every product a garment owns with it.
	CascadeGarmentDelete bool
	// DetachOnProductDelete removes a deleted product from its garment's list.
	DetachOnProductDelete bool
}

// CatalogService keeps garments and their products consistent.
type CatalogService struct {
	products ProductStore
	garments GarmentStore
	policy   Policy
	pool     *workerpool.Pool
}

// Option configures a CatalogService.
type Option func(*CatalogService)

// WithPool fans product lookups and cascade deletes out over pool. Without
// it they run one after another.
func WithPool(pool *workerpool.Pool) Option {
	return func(s *CatalogService) { s.pool = pool }
}

func NewCatalogService(products ProductStore, garments GarmentStore, policy Policy, opts ...Option) *CatalogService {
	s := &CatalogService{products: products, garments: garments, policy: policy}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ─── Products ────────────────────────────────────────────────────────────────

func (s *CatalogService) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	return s.products.List(ctx, category)
}

func (s *CatalogService) Product(ctx context.Context, id string) (models.Product, error) {
	return s.products.Get(ctx, id)
}

// ProductWithGarment resolves the product's owner. A dangling owner
// reference leaves Garment nil.
func (s *CatalogService) ProductWithGarment(ctx context.Context, id string) (models.ProductDetail, error) {
	p, err := s.products.Get(ctx, id)
	if err != nil {
		return models.ProductDetail{}, err
	}

	detail := models.ProductDetail{Product: p}
	if p.Garment == nil {
		return detail, nil
	}

	g, err := s.garments.GetByObjectID(ctx, *p.Garment)
	switch {
	case err == nil:
		detail.Garment = &g
	case isNotFound(err):
		logger.WithCtx(ctx).Debug("product references a missing garment",
			"product_id", p.ID.Hex(), "garment_id", p.Garment.Hex())
	default:
		return models.ProductDetail{}, err
	}
	return detail, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, fields models.Fields) (models.Product, error) {
	return s.products.Create(ctx, fields)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, fields models.Fields) (models.Product, error) {
	return s.products.Update(ctx, id, fields)
}

// DeleteProduct removes the product. Deleting a missing product succeeds.
// With DetachOnProductDelete the id is also dropped from its garment.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if !s.policy.DetachOnProductDelete {
		_, err := s.products.Delete(ctx, id)
		return err
	}

	p, err := s.products.Get(ctx, id)
	if isNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}

	if _, err := s.products.DeleteByObjectID(ctx, p.ID); err != nil {
		return err
	}
	if p.Garment == nil {
		return nil
	}

	g, err := s.garments.GetByObjectID(ctx, *p.Garment)
	if isNotFound(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("detach product %s: %w", p.ID.Hex(), err)
	}
	if g, found := g.RemoveProduct(p.ID); found {
		if err := s.garments.Save(ctx, g); err != nil && !isNotFound(err) {
			return fmt.Errorf("detach product %s: %w", p.ID.Hex(), err)
		}
	}
	return nil
}

// ─── Garments ────────────────────────────────────────────────────────────────

func (s *CatalogService) ListGarments(ctx context.Context) ([]models.Garment, error) {
	return s.garments.List(ctx)
}

func (s *CatalogService) Garment(ctx context.Context, id string) (models.Garment, error) {
	return s.garments.Get(ctx, id)
}

// GarmentWithProducts resolves the garment's product list in order. Ids of
// products that no longer exist are skipped.
func (s *CatalogService) GarmentWithProducts(ctx context.Context, id string) (models.GarmentDetail, error) {
	g, err := s.garments.Get(ctx, id)
	if err != nil {
		return models.GarmentDetail{}, err
	}

	resolved := make([]*models.Product, len(g.Products))
	err = s.pool.Each(len(g.Products), func(i int) error {
		pid := g.Products[i]
		p, err := s.products.GetByObjectID(ctx, pid)
		if isNotFound(err) {
			logger.WithCtx(ctx).Debug("garment references a missing product",
				"garment_id", g.ID.Hex(), "product_id", pid.Hex())
			return nil
		}
		if err != nil {
			return err
		}
		resolved[i] = &p
		return nil
	})
	if err != nil {
		return models.GarmentDetail{}, err
	}

	detail := models.GarmentDetail{Garment: g, Products: make([]models.Product, 0, len(resolved))}
	for _, p := range resolved {
		if p != nil {
			detail.Products = append(detail.Products, *p)
		}
	}
	return detail, nil
}

func (s *CatalogService) CreateGarment(ctx context.Context, fields models.Fields) (models.Garment, error) {
	return s.garments.Create(ctx, fields)
}

func (s *CatalogService) UpdateGarment(ctx context.Context, id string, fields models.Fields) (models.Garment, error) {
	return s.garments.Update(ctx, id, fields)
}

// DeleteGarment removes the garment. Its products are left in place unless
// CascadeGarmentDelete is set. Deleting a missing garment succeeds.
func (s *CatalogService) DeleteGarment(ctx context.Context, id string) error {
	if !s.policy.CascadeGarmentDelete {
		_, err := s.garments.Delete(ctx, id)
		return err
	}

	g, err := s.garments.Get(ctx, id)
	if isNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}

	err = s.pool.Each(len(g.Products), func(i int) error {
		_, err := s.products.DeleteByObjectID(ctx, g.Products[i])
		return err
	})
	if err != nil {
		return fmt.Errorf("cascade garment %s: %w", g.ID.Hex(), err)
	}
	_, err = s.garments.Delete(ctx, id)
	return err
}

// Attach creates a product owned by the garment. The garment's list is
// written first; if the product write then fails the garment write is
// undone so no reference to a missing product is left behind.
func (s *CatalogService) Attach(ctx context.Context, garmentID string, fields models.Fields) (models.Garment, models.Product, error) {
	g, err := s.garments.Get(ctx, garmentID)
	if err != nil {
		return models.Garment{}, models.Product{}, err
	}

	p, err := models.NewProduct(fields)
	if err != nil {
		return models.Garment{}, models.Product{}, err
	}
	owner := g.ID
	p.Garment = &owner

	linked := g.AddProduct(p.ID)
	if err := s.garments.Save(ctx, linked); err != nil {
		return models.Garment{}, models.Product{}, err
	}

	if err := s.products.Insert(ctx, p); err != nil {
		s.compensateAttach(ctx, g.ID, p.ID)
		return models.Garment{}, models.Product{}, err
	}

	return linked, p, nil
}

// compensateAttach removes productID from the garment again. It reloads the
// garment so concurrent attachments are not lost.
func (s *CatalogService) compensateAttach(ctx context.Context, garmentID, productID primitive.ObjectID) {
	log := logger.WithCtx(ctx)

	g, err := s.garments.GetByObjectID(ctx, garmentID)
	if err != nil {
		log.Error("attach: compensation failed to reload garment",
			"garment_id", garmentID.Hex(), "product_id", productID.Hex(), "error", err.Error())
		return
	}

	g, found := g.RemoveProduct(productID)
	if !found {
		return
	}
	if err := s.garments.Save(ctx, g); err != nil {
		log.Error("attach: compensation failed, garment references a missing product",
			"garment_id", garmentID.Hex(), "product_id", productID.Hex(), "error", err.Error())
	}
}

func isNotFound(err error) bool {
	var nf *fault.NotFound
	return errors.As(err, &nf)
}
