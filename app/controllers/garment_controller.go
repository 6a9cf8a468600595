package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/shopapp/app/models"
	"github.com/shashiranjanraj/shopapp/app/services"
	"github.com/shashiranjanraj/shopapp/pkg/ctx"
	"github.com/shashiranjanraj/shopapp/pkg/render"
)

type GarmentController struct {
	catalog *services.CatalogService
}

func NewGarmentController(catalog *services.CatalogService) *GarmentController {
	return &GarmentController{catalog: catalog}
}

func (gc *GarmentController) Index(c *ctx.Context) error {
	garments, err := gc.catalog.ListGarments(c.Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "garments/index", render.Map{"garments": garments})
}

func (gc *GarmentController) Create(c *ctx.Context) error {
	return c.Render(http.StatusOK, "garments/create", nil)
}

func (gc *GarmentController) Store(c *ctx.Context) error {
	fields, err := c.Fields()
	if err != nil {
		return err
	}

	if _, err := gc.catalog.CreateGarment(c.Context(), models.Fields(fields)); err != nil {
		return err
	}
	return c.Redirect("/garments")
}

func (gc *GarmentController) Show(c *ctx.Context) error {
	detail, err := gc.catalog.GarmentWithProducts(c.Context(), c.Param("garment_id"))
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "garments/show", render.Map{"garment": detail})
}

func (gc *GarmentController) Edit(c *ctx.Context) error {
	g, err := gc.catalog.Garment(c.Context(), c.Param("garment_id"))
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "garments/edit", render.Map{"garment": g})
}

func (gc *GarmentController) Update(c *ctx.Context) error {
	fields, err := c.Fields()
	if err != nil {
		return err
	}

	g, err := gc.catalog.UpdateGarment(c.Context(), c.Param("garment_id"), models.Fields(fields))
	if err != nil {
		return err
	}
	return c.Redirect("/garments/" + g.ID.Hex())
}

func (gc *GarmentController) Destroy(c *ctx.Context) error {
	if err := gc.catalog.DeleteGarment(c.Context(), c.Param("garment_id")); err != nil {
		return err
	}
	return c.Redirect("/garments")
}

// CreateProduct renders the form for a product owned by the garment.
func (gc *GarmentController) CreateProduct(c *ctx.Context) error {
	g, err := gc.catalog.Garment(c.Context(), c.Param("garment_id"))
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "products/create_for_garment", render.Map{
		"garment":    g,
		"categories": models.Categories,
	})
}

// StoreProduct attaches a new product to the garment.
func (gc *GarmentController) StoreProduct(c *ctx.Context) error {
	fields, err := c.Fields()
	if err != nil {
		return err
	}

	g, _, err := gc.catalog.Attach(c.Context(), c.Param("garment_id"), models.Fields(fields))
	if err != nil {
		return err
	}
	return c.Redirect("/garments/" + g.ID.Hex())
}
