// Administrative endpoints.
//
// The search index mirrors are derived state: the entity store is
// authoritative, and an index write that failed after a committed store write
// leaves the two diverged until rebuilt. POST /admin/search/reindex is the
// operator-facing reconciliation path (the same rebuild runs at startup).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petstack/go-petclinic-backend/internal/http/middleware"
	"github.com/petstack/go-petclinic-backend/internal/services"
)

// ReindexResponse reports the rebuild outcome per entity type.
type ReindexResponse struct {
	// Indexed maps entity name to the number of documents rebuilt.
	Indexed map[string]int `json:"indexed"`
}

// Reindex godoc
// @ID          reindexSearch
// @Summary     Rebuild all search indexes
// @Description Rebuilds every entity's search index mirror from the entity store.
// @Tags        Admin
// @Produce     json
//
// @Success     200  {object}  handlers.ReindexResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /admin/search/reindex [post]
func Reindex(reg *services.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := reg.ReindexAll(c.Request.Context())
		if err != nil {
			lg := middleware.LoggerFrom(c)
			lg.Error().Err(err).Msg("search reindex failed")
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "reindex failed: "+err.Error())
			return
		}
		ok(c, http.StatusOK, ReindexResponse{Indexed: counts})
	}
}
