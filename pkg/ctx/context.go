// Package ctx provides the request context shop handlers run against.
//
// A handler receives a *Context and returns an error. It either renders a
// view or redirects on success, and returns any failure untouched:
//
//	func (pc *ProductController) Show(c *ctx.Context) error {
//	    p, err := pc.catalog.ProductWithGarment(c.Context(), c.Param("id"))
//	    if err != nil {
//	        return err
//	    }
//	    return c.Render(http.StatusOK, "products/show", render.Map{"product": p})
//	}
//
// A Dispatcher adapts handlers to http.HandlerFunc and sends every returned
// error to its ErrorHandler, so no failure is ever dropped:
//
//	d := ctx.NewDispatcher(render.JSON{}, fault.Normalizer{})
//	router.Get("/products/{id}", "products.show", d.Wrap(pc.Show))
package ctx

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/shopapp/pkg/bind"
	"github.com/shashiranjanraj/shopapp/pkg/fault"
	"github.com/shashiranjanraj/shopapp/pkg/logger"
	"github.com/shashiranjanraj/shopapp/pkg/render"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context) error

// ErrorHandler writes the terminal response for a failed request.
type ErrorHandler interface {
	HandleError(w http.ResponseWriter, r *http.Request, err error)
}

// Dispatcher binds handlers to a renderer and an error handler.
type Dispatcher struct {
	renderer render.Renderer
	errors   ErrorHandler
}

// NewDispatcher returns a Dispatcher. A nil renderer defaults to render.JSON.
func NewDispatcher(renderer render.Renderer, errors ErrorHandler) *Dispatcher {
	if renderer == nil {
		renderer = render.JSON{}
	}
	if errors == nil {
		errors = fault.Normalizer{}
	}
	return &Dispatcher{renderer: renderer, errors: errors}
}

// Wrap converts a HandlerFunc to a standard http.HandlerFunc. A returned
// error reaches the ErrorHandler exactly once. If the handler already wrote
// a response the error is only logged.
func (d *Dispatcher) Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r, d.renderer)
		defer release(c)

		err := h(c)
		if err == nil {
			return
		}
		if status := c.WrittenStatus(); status != 0 {
			logger.WithCtx(r.Context()).Error("handler failed after response was written",
				"status", status, "error", err.Error())
			return
		}
		d.errors.HandleError(w, r, err)
	}
}

// ─── Context ──────────────────────────────────────────────────────────────────

// Context wraps a request/response pair.
type Context struct {
	W        http.ResponseWriter
	R        *http.Request
	renderer render.Renderer
	status   int // written status code (0 = not written yet)
}

// pool recycles Context objects to reduce GC pressure.
var pool = sync.Pool{
	New: func() any { return new(Context) },
}

func acquire(w http.ResponseWriter, r *http.Request, renderer render.Renderer) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	c.renderer = renderer
	c.status = 0
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	c.renderer = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter (e.g. "/products/{id}" → c.Param("id")).
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// Query returns a query-string value. Returns "" if not present.
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Fields returns the submitted body fields. A body that cannot be read is a
// 400 fault.
func (c *Context) Fields() (map[string]string, error) {
	fields, err := bind.Fields(c.R)
	if err != nil {
		return nil, fault.New(http.StatusBadRequest, err.Error())
	}
	return fields, nil
}

// ─── Response helpers ─────────────────────────────────────────────────────────

// Render hands view and data to the renderer. The response only counts as
// written once the renderer succeeds, so a failed render still reaches the
// ErrorHandler.
func (c *Context) Render(code int, view string, data render.Map) error {
	if err := c.renderer.Render(c.W, code, view, data); err != nil {
		return fmt.Errorf("render %s: %w", view, err)
	}
	c.status = code
	return nil
}

// Redirect sends a 302 Found to path.
func (c *Context) Redirect(path string) error {
	c.status = http.StatusFound
	http.Redirect(c.W, c.R, path, http.StatusFound)
	return nil
}

// String writes a plain-text response.
func (c *Context) String(code int, format string, args ...any) error {
	c.W.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.W.WriteHeader(code)
	c.status = code
	_, err := fmt.Fprintf(c.W, format, args...)
	return err
}

// WrittenStatus returns the HTTP status code that was written to the response,
// or 0 if no response has been written yet.
func (c *Context) WrittenStatus() int { return c.status }
