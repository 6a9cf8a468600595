package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/shopapp/app/models"
	"github.com/shashiranjanraj/shopapp/app/services"
	"github.com/shashiranjanraj/shopapp/pkg/ctx"
	"github.com/shashiranjanraj/shopapp/pkg/render"
)

// allCategories labels an unfiltered product list.
const allCategories = "All"

type ProductController struct {
	catalog *services.CatalogService
}

func NewProductController(catalog *services.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

// Index lists products, filtered by ?category= when present.
func (pc *ProductController) Index(c *ctx.Context) error {
	category := c.Query("category")

	products, err := pc.catalog.ListProducts(c.Context(), category)
	if err != nil {
		return err
	}

	label := category
	if label == "" {
		label = allCategories
	}
	return c.Render(http.StatusOK, "products/index", render.Map{
		"products": products,
		"category": label,
	})
}

func (pc *ProductController) Create(c *ctx.Context) error {
	return c.Render(http.StatusOK, "products/create", render.Map{
		"categories": models.Categories,
	})
}

func (pc *ProductController) Store(c *ctx.Context) error {
	fields, err := c.Fields()
	if err != nil {
		return err
	}

	p, err := pc.catalog.CreateProduct(c.Context(), models.Fields(fields))
	if err != nil {
		return err
	}
	return c.Redirect("/products/" + p.ID.Hex())
}

func (pc *ProductController) Show(c *ctx.Context) error {
	detail, err := pc.catalog.ProductWithGarment(c.Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "products/show", render.Map{
		"product": detail,
		"rupiah":  models.Rupiah(detail.Price),
	})
}

func (pc *ProductController) Edit(c *ctx.Context) error {
	p, err := pc.catalog.Product(c.Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "products/edit", render.Map{
		"product":    p,
		"categories": models.Categories,
	})
}

func (pc *ProductController) Update(c *ctx.Context) error {
	fields, err := c.Fields()
	if err != nil {
		return err
	}

	p, err := pc.catalog.UpdateProduct(c.Context(), c.Param("id"), models.Fields(fields))
	if err != nil {
		return err
	}
	return c.Redirect("/products/" + p.ID.Hex())
}

// Destroy deletes the product. A missing product redirects like a deleted one.
func (pc *ProductController) Destroy(c *ctx.Context) error {
	if err := pc.catalog.DeleteProduct(c.Context(), c.Param("id")); err != nil {
		return err
	}
	return c.Redirect("/products/")
}
