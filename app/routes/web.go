package routes

import (
	"github.com/shashiranjanraj/shopapp/app/controllers"
	"github.com/shashiranjanraj/shopapp/pkg/ctx"
	"github.com/shashiranjanraj/shopapp/pkg/router"
)

// Controllers are the handlers mounted by RegisterWeb.
type Controllers struct {
	Home     *controllers.HomeController
	Products *controllers.ProductController
	Garments *controllers.GarmentController
}

// RegisterWeb mounts the catalog's HTTP surface. Static segments such as
// /products/create take precedence over {id}.
func RegisterWeb(r *router.Router, d *ctx.Dispatcher, c Controllers) {
	r.Get("/", "home", d.Wrap(c.Home.Index))

	products := r.Group("/products")
	products.Get("/", "products.index", d.Wrap(c.Products.Index))
	products.Get("/create", "products.create", d.Wrap(c.Products.Create))
	products.Post("/", "products.store", d.Wrap(c.Products.Store))
	products.Get("/{id}", "products.show", d.Wrap(c.Products.Show))
	products.Get("/{id}/edit", "products.edit", d.Wrap(c.Products.Edit))
	products.Put("/{id}", "products.update", d.Wrap(c.Products.Update))
	products.Delete("/{id}", "products.destroy", d.Wrap(c.Products.Destroy))

	garments := r.Group("/garments")
	garments.Get("/", "garments.index", d.Wrap(c.Garments.Index))
	garments.Get("/create", "garments.create", d.Wrap(c.Garments.Create))
	garments.Post("/", "garments.store", d.Wrap(c.Garments.Store))
	garments.Get("/{garment_id}", "garments.show", d.Wrap(c.Garments.Show))
	garments.Get("/{garment_id}/edit", "garments.edit", d.Wrap(c.Garments.Edit))
	garments.Put("/{garment_id}", "garments.update", d.Wrap(c.Garments.Update))
	garments.Delete("/{garment_id}", "garments.destroy", d.Wrap(c.Garments.Destroy))
	garments.Get("/{garment_id}/products/create", "garments.products.create", d.Wrap(c.Garments.CreateProduct))
	garments.Post("/{garment_id}/products", "garments.products.store", d.Wrap(c.Garments.StoreProduct))
}
