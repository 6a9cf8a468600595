// Package kernel assembles the shop's HTTP handler from its collaborators
// and boots those collaborators from configuration.
package kernel

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/shashiranjanraj/shopapp/app/controllers"
	"github.com/shashiranjanraj/shopapp/app/repositories"
	"github.com/shashiranjanraj/shopapp/app/routes"
	"github.com/shashiranjanraj/shopapp/app/services"
	"github.com/shashiranjanraj/shopapp/pkg/cache"
	"github.com/shashiranjanraj/shopapp/pkg/ctx"
	"github.com/shashiranjanraj/shopapp/pkg/docstore"
	"github.com/shashiranjanraj/shopapp/pkg/fault"
	"github.com/shashiranjanraj/shopapp/pkg/metrics"
	"github.com/shashiranjanraj/shopapp/pkg/middleware"
	"github.com/shashiranjanraj/shopapp/pkg/render"
	"github.com/shashiranjanraj/shopapp/pkg/reqid"
	"github.com/shashiranjanraj/shopapp/pkg/router"
	"github.com/shashiranjanraj/shopapp/pkg/workerpool"
)

// Options are the collaborators the kernel is built from. Store is required.
type Options struct {
	Store                  docstore.Store
	Cache                  cache.Store
	CacheTTL               time.Duration
	Policy                 services.Policy
	EntityAwareMalformedID bool
	Renderer               render.Renderer
	// Pool bounds per-garment store fan-out. Nil runs lookups sequentially.
	Pool                   *workerpool.Pool
}

// Kernel is a fully wired application: the catalog service and the router
// that exposes it.
type Kernel struct {
	Catalog *services.CatalogService
	Router  *router.Router
}

// New wires repositories, the catalog service, controllers and routes.
func New(opts Options) *Kernel {
	products := repositories.NewProductRepository(opts.Store, opts.Cache, opts.CacheTTL)
	garments := repositories.NewGarmentRepository(opts.Store)
	catalog := services.NewCatalogService(products, garments, opts.Policy, services.WithPool(opts.Pool))

	normalizer := fault.Normalizer{EntityAwareMalformedID: opts.EntityAwareMalformedID}
	d := ctx.NewDispatcher(opts.Renderer, normalizer)

	r := router.New()

	// Global middleware stack, outermost first. Metrics wraps everything so
	// latency is total; Recovery sits outside the request logger; the id is
	// assigned before anything logs. StripSlashes makes /products/ match
	// /products, and MethodOverride must run before routing.
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(chimw.StripSlashes)
	r.Use(middleware.MethodOverride)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		normalizer.HandleError(w, req, fault.New(http.StatusNotFound, http.StatusText(http.StatusNotFound)))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		normalizer.HandleError(w, req, fault.New(http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed)))
	})

	r.HandleFunc("/metrics", metrics.Handler())

	routes.RegisterWeb(r, d, routes.Controllers{
		Home:     controllers.NewHomeController(),
		Products: controllers.NewProductController(catalog),
		Garments: controllers.NewGarmentController(catalog),
	})

	return &Kernel{Catalog: catalog, Router: r}
}

// Handler returns the root http.Handler.
func (k *Kernel) Handler() http.Handler { return k.Router.Handler() }

// NewHandler is shorthand for New(opts).Handler().
func NewHandler(opts Options) http.Handler { return New(opts).Handler() }
