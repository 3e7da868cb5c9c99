// Generic entity REST endpoints.
//
// This file exposes the uniform REST surface shared by every clinic entity:
//   - POST   /{resource}            (create)
//   - PUT    /{resource}/{id}       (full update)
//   - PATCH  /{resource}/{id}       (partial update, merge-patch semantics)
//   - GET    /{resource}            (list, paginated)
//   - GET    /{resource}/{id}       (fetch one)
//   - DELETE /{resource}/{id}       (delete, idempotent)
//   - GET    /{resource}/_search    (query the search index mirror)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses. The service behind each resource
// is the generic CrudService; this binder only differs per entity in its wire
// type parameter and route path.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/petstack/go-petclinic-backend/internal/search"
	"github.com/petstack/go-petclinic-backend/internal/services"
	"github.com/petstack/go-petclinic-backend/internal/sysutil"
	"github.com/petstack/go-petclinic-backend/internal/utils"
)

// totalCountHeader exposes the total row count on paginated responses so
// clients can size their pagers without a second request.
const totalCountHeader = "X-Total-Count"

//
// Service contract (context-aware)
//

// ResourceService defines the entity lifecycle operations consumed by the
// generic REST binder. Satisfied by every services.CrudService instantiation.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ResourceService[D any] interface {
	// Create persists a new record; the payload must not carry an id.
	Create(ctx context.Context, d *D) (*D, error)
	// Update replaces the record wholesale; payload id must match.
	Update(ctx context.Context, id int64, d *D) (*D, error)
	// PartialUpdate merges the payload's present fields onto the record.
	PartialUpdate(ctx context.Context, id int64, d *D) (*D, error)
	// Get fetches one record with its eager associations resolved.
	Get(ctx context.Context, id int64) (*D, error)
	// ListPage returns a page of records and the total count.
	ListPage(ctx context.Context, page, size int, order string, eager bool) ([]*D, int64, error)
	// Delete removes the record; deleting an absent id succeeds.
	Delete(ctx context.Context, id int64) error
	// Search queries the index mirror and hydrates hits from the store.
	Search(ctx context.Context, query string, page, size int) ([]*D, int64, error)
}

//
// Resource wiring
//

// PageLimits bounds client-supplied pagination parameters.
type PageLimits struct {
	// Default is the page size applied when the request omits one.
	Default int
	// Max caps requested page sizes.
	Max int
}

// Resource binds one entity's service to its REST routes.
type Resource[D any] struct {
	// Svc performs the entity lifecycle operations.
	Svc ResourceService[D]
	// Name is the entity's singular display name, used in error messages.
	Name string
	// ID extracts the identity from a wire object (for Location headers).
	ID func(*D) *int64
	// Limits bounds pagination; zero values fall back to 20/100.
	Limits PageLimits
}

// Register mounts the resource's routes on rg under the given path segment
// (e.g. "owners"). The _search collection route is registered alongside the
// :id routes; Gin resolves static segments before parameters.
func (r *Resource[D]) Register(rg *gin.RouterGroup, path string) {
	g := rg.Group("/" + path)
	g.POST("", r.create)
	g.GET("", r.list)
	g.GET("/_search", r.search)
	g.GET("/:id", r.get)
	g.PUT("/:id", r.update)
	g.PATCH("/:id", r.partialUpdate)
	g.DELETE("/:id", r.remove)
}

//
// Helpers
//

// pathID parses the :id path parameter. A non-numeric id is a client error,
// reported with the id_invalid code.
func (r *Resource[D]) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeIDInvalid, r.Name+" id must be a number")
		return 0, false
	}
	return id, true
}

// clampPage parses and bounds the page and size query params.
func (r *Resource[D]) clampPage(c *gin.Context) (page, size int) {
	def, max := r.Limits.Default, r.Limits.Max
	if def < 1 {
		def = 20
	}
	if max < def {
		max = 100
	}
	page = utils.AtoiDefault(c.Query("page"), 1)
	if page < 1 {
		page = 1
	}
	size = utils.AtoiDefault(c.Query("size"), def)
	if size < 1 {
		size = 1
	}
	if size > max {
		size = max
	}
	return
}

// pageHeaders writes the total count and RFC 5988 Link headers for a page.
// Links carry the request's full query string with only page/size replaced,
// so following rel="next" on a search keeps the search expression (and sort,
// eagerload on lists).
func pageHeaders(c *gin.Context, page, size int, total int64) {
	c.Header(totalCountHeader, strconv.FormatInt(total, 10))

	last := int((total + int64(size) - 1) / int64(size))
	if last < 1 {
		last = 1
	}
	params := c.Request.URL.Query()
	link := func(p int, rel string) string {
		params.Set("page", strconv.Itoa(p))
		params.Set("size", strconv.Itoa(size))
		u := url.URL{Path: c.Request.URL.Path, RawQuery: params.Encode()}
		return fmt.Sprintf(`<%s>; rel="%s"`, u.String(), rel)
	}
	links := make([]byte, 0, 128)
	if page < last {
		links = append(links, link(page+1, "next")...)
		links = append(links, ',')
	}
	if page > 1 {
		links = append(links, link(page-1, "prev")...)
		links = append(links, ',')
	}
	links = append(links, link(last, "last")...)
	links = append(links, ',')
	links = append(links, link(1, "first")...)
	c.Header("Link", string(links))
}

//
// Handlers
//

// create handles POST /{resource}.
//
// @Success 201 with the persisted object and a Location header; a payload
// that already carries an id is rejected (400, id_exists).
func (r *Resource[D]) create(c *gin.Context) {
	var d D
	if err := c.ShouldBindJSON(&d); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	out, err := r.Svc.Create(c.Request.Context(), &d)
	if err != nil {
		if errors.Is(err, services.ErrIDAlreadySet) {
			fail(c, http.StatusBadRequest, ErrCodeIDExists, "a new "+r.Name+" cannot already have an id")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	if id := r.ID(out); id != nil {
		c.Header("Location", fmt.Sprintf("%s/%d", c.Request.URL.Path, *id))
	}
	ok(c, http.StatusCreated, out)
}

// update handles PUT /{resource}/{id}: a wholesale replacement. The payload
// id must be present and equal to the path id, and the record must exist;
// PUT never creates.
func (r *Resource[D]) update(c *gin.Context) {
	id, okID := r.pathID(c)
	if !okID {
		return
	}
	var d D
	if err := c.ShouldBindJSON(&d); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	out, err := r.Svc.Update(c.Request.Context(), id, &d)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrIDNull):
			fail(c, http.StatusBadRequest, ErrCodeIDNull, "payload id is required")
		case errors.Is(err, services.ErrIDMismatch):
			fail(c, http.StatusBadRequest, ErrCodeIDMismatch, "payload id does not match path id")
		case errors.Is(err, services.ErrNotFound):
			fail(c, http.StatusBadRequest, ErrCodeNotFound, r.Name+" not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, out)
}

// partialUpdate handles PATCH /{resource}/{id} with merge-patch semantics:
// only the fields present in the payload are applied; omitted fields keep
// their stored values. Accepts application/json and
// application/merge-patch+json bodies.
func (r *Resource[D]) partialUpdate(c *gin.Context) {
	id, okID := r.pathID(c)
	if !okID {
		return
	}
	var d D
	if err := c.ShouldBindBodyWithJSON(&d); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	out, err := r.Svc.PartialUpdate(c.Request.Context(), id, &d)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrIDNull):
			fail(c, http.StatusBadRequest, ErrCodeIDNull, "payload id is required")
		case errors.Is(err, services.ErrIDMismatch):
			fail(c, http.StatusBadRequest, ErrCodeIDMismatch, "payload id does not match path id")
		case errors.Is(err, services.ErrNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, r.Name+" not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, out)
}

// get handles GET /{resource}/{id}.
func (r *Resource[D]) get(c *gin.Context) {
	id, okID := r.pathID(c)
	if !okID {
		return
	}
	out, err := r.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, r.Name+" not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, out)
}

// list handles GET /{resource} (paginated).
//
// Query params: page (1-based), size, sort (e.g. "last_name desc";
// non-whitelisted values fall back to id order), eagerload (resolve
// relationship projections). Responds with X-Total-Count and Link headers.
func (r *Resource[D]) list(c *gin.Context) {
	page, size := r.clampPage(c)
	order := c.Query("sort")
	eager := sysutil.IsTruthy(c.DefaultQuery("eagerload", "true"))

	items, total, err := r.Svc.ListPage(c.Request.Context(), page, size, order, eager)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	pageHeaders(c, page, size, total)
	ok(c, http.StatusOK, items)
}

// remove handles DELETE /{resource}/{id}. Always 204: deleting an absent id
// is idempotent.
func (r *Resource[D]) remove(c *gin.Context) {
	id, okID := r.pathID(c)
	if !okID {
		return
	}
	if err := r.Svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}

// search handles GET /{resource}/_search.
//
// Query params: query (the search expression, required), page, size. Hits
// come back in relevance order, hydrated from the entity store. A malformed
// query is a client error; an index fault maps to 503.
func (r *Resource[D]) search(c *gin.Context) {
	query := c.Query("query")
	page, size := r.clampPage(c)

	items, total, err := r.Svc.Search(c.Request.Context(), query, page, size)
	if err != nil {
		switch {
		case errors.Is(err, search.ErrBadQuery):
			fail(c, http.StatusBadRequest, ErrCodeBadQuery, err.Error())
		case errors.Is(err, services.ErrSearchUnavailable):
			fail(c, http.StatusServiceUnavailable, ErrCodeSearchUnavailable, "search is temporarily unavailable")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	pageHeaders(c, page, size, total)
	ok(c, http.StatusOK, items)
}
