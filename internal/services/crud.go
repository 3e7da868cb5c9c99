// Package services — generic CRUD + search service.
//
// One CrudService implementation manages the lifecycle of every clinic
// entity; the per-entity instances are assembled in registry.go from the
// entity's mapper functions and relationship configuration.
//
// Every mutating call follows the same contract: the entity-store write is
// synchronous and authoritative, and happens-before the search-index write.
// The index step re-reads the committed row by id rather than trusting the
// in-memory copy, so the index can lag the store but never run ahead of it.
// Index failures are logged and counted, never surfaced to the mutating
// caller; Reindex is the reconciliation path (see also the startup rebuild
// in cmd/server).
//
// Observability: public methods are OpenTelemetry-instrumented; spans carry
// the entity name and target id where applicable.
package services

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/petstack/go-petclinic-backend/internal/repo"
	"github.com/petstack/go-petclinic-backend/internal/search"
)

// indexOps counts search-index mutations by entity, operation, and outcome.
// The "error" outcome is the dual-write gap made visible: the store write
// committed but the mirror write failed.
var indexOps = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "search_index_ops_total",
		Help: "Search index mutations by entity, operation, and outcome.",
	},
	[]string{"entity", "op", "outcome"},
)

func init() {
	prometheus.MustRegister(indexOps)
}

// CrudService provides create/update/patch/get/list/delete/search/reindex
// for one entity type E with wire form D. All fields must be populated; see
// registry.go for the seven instantiations.
type CrudService[E, D any] struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Index is this entity's search index mirror.
	Index *search.Index
	// Name identifies the entity type in logs, spans, and metrics.
	Name string

	// EntityID / DTOID extract the surrogate identity.
	EntityID func(*E) *int64
	DTOID    func(*D) *int64

	// ToDTO / ToEntity / Merge are the pure mapping functions.
	ToDTO    func(*E) *D
	ToEntity func(*D) *E
	Merge    func(*E, *D)

	// Doc derives the denormalized search document from an entity row.
	Doc func(*E) search.Document

	// Preloads are the associations resolved on eager loads.
	Preloads []string

	// AfterSave runs after the row upsert, inside the same request, for
	// association maintenance (e.g. replacing a many-to-many set). Optional.
	AfterSave func(ctx context.Context, db *gorm.DB, e *E) error
	// BeforeDelete runs before the row delete (e.g. clearing join rows).
	// Optional.
	BeforeDelete func(ctx context.Context, db *gorm.DB, id int64) error
	// AfterLoad post-processes eagerly loaded rows (e.g. relinking
	// reciprocal association views). Optional.
	AfterLoad func(rows []*E)
}

func (s *CrudService[E, D]) span(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tr := otel.Tracer("services/CrudService")
	attrs = append(attrs, attribute.String("entity", s.Name))
	return tr.Start(ctx, op, trace.WithAttributes(attrs...))
}

// Create persists a new record and mirrors it into the search index.
// A payload that already carries an identity is rejected with
// ErrIDAlreadySet regardless of its other fields.
func (s *CrudService[E, D]) Create(ctx context.Context, d *D) (*D, error) {
	ctx, span := s.span(ctx, "Create")
	defer span.End()

	log.Debug().Str("entity", s.Name).Msg("request to save")
	if s.DTOID(d) != nil {
		return nil, ErrIDAlreadySet
	}

	e := s.ToEntity(d)
	saved, err := repo.Save(ctx, s.DB, e)
	if err != nil {
		return nil, err
	}
	if err := s.runAfterSave(ctx, saved); err != nil {
		return nil, err
	}
	s.indexByID(ctx, "index", s.EntityID(saved))
	return s.ToDTO(saved), nil
}

// Update replaces an existing record wholesale and re-indexes it. The
// payload identity must be present (ErrIDNull), must match the target id
// (ErrIDMismatch), and the target row must exist (ErrNotFound).
func (s *CrudService[E, D]) Update(ctx context.Context, id int64, d *D) (*D, error) {
	ctx, span := s.span(ctx, "Update", attribute.Int64("id", id))
	defer span.End()

	log.Debug().Str("entity", s.Name).Int64("id", id).Msg("request to update")
	dtoID := s.DTOID(d)
	if dtoID == nil {
		return nil, ErrIDNull
	}
	if *dtoID != id {
		return nil, ErrIDMismatch
	}
	ok, err := repo.Exists[E](ctx, s.DB, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	e := s.ToEntity(d)
	saved, err := repo.Save(ctx, s.DB, e)
	if err != nil {
		return nil, err
	}
	if err := s.runAfterSave(ctx, saved); err != nil {
		return nil, err
	}
	s.indexByID(ctx, "index", s.EntityID(saved))
	return s.ToDTO(saved), nil
}

// PartialUpdate applies merge-patch semantics: only the non-nil fields of d
// are written onto the existing row; omitted fields keep their values. The
// payload identity must be present and match the target; an absent row
// yields ErrNotFound.
func (s *CrudService[E, D]) PartialUpdate(ctx context.Context, id int64, d *D) (*D, error) {
	ctx, span := s.span(ctx, "PartialUpdate", attribute.Int64("id", id))
	defer span.End()

	log.Debug().Str("entity", s.Name).Int64("id", id).Msg("request to partially update")
	dtoID := s.DTOID(d)
	if dtoID == nil {
		return nil, ErrIDNull
	}
	if *dtoID != id {
		return nil, ErrIDMismatch
	}

	existing, err := repo.Get[E](ctx, s.DB, id, s.Preloads...)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.Merge(existing, d)
	saved, err := repo.Save(ctx, s.DB, existing)
	if err != nil {
		return nil, err
	}
	if err := s.runAfterSave(ctx, saved); err != nil {
		return nil, err
	}
	s.indexByID(ctx, "index", s.EntityID(saved))
	return s.ToDTO(saved), nil
}

// Get fetches one record with its eager associations resolved. An absent id
// yields ErrNotFound (a normal empty result on read paths).
func (s *CrudService[E, D]) Get(ctx context.Context, id int64) (*D, error) {
	log.Debug().Str("entity", s.Name).Int64("id", id).Msg("request to get")
	e, err := repo.Get[E](ctx, s.DB, id, s.Preloads...)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.runAfterLoad([]*E{e})
	return s.ToDTO(e), nil
}

// ListPage returns one page of records plus the total count. When eager is
// true the configured associations are preloaded so relationship
// projections carry their labels.
func (s *CrudService[E, D]) ListPage(ctx context.Context, page, size int, order string, eager bool) ([]*D, int64, error) {
	log.Debug().Str("entity", s.Name).Int("page", page).Int("size", size).Msg("request to get all")
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	offset := (page - 1) * size

	total, err := repo.Count[E](ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []*D{}, 0, nil
	}

	var preloads []string
	if eager {
		preloads = s.Preloads
	}
	rows, err := repo.ListPage[E](ctx, s.DB, offset, size, order, preloads...)
	if err != nil {
		return nil, 0, err
	}
	s.runAfterLoad(rows)
	return s.toDTOs(rows), total, nil
}

// Delete removes the record and its index document. Neither step requires
// the record to exist; delete is idempotent end to end. The store delete
// happens-before the index delete.
func (s *CrudService[E, D]) Delete(ctx context.Context, id int64) error {
	ctx, span := s.span(ctx, "Delete", attribute.Int64("id", id))
	defer span.End()

	log.Debug().Str("entity", s.Name).Int64("id", id).Msg("request to delete")
	if s.BeforeDelete != nil {
		if err := s.BeforeDelete(ctx, s.DB, id); err != nil {
			return err
		}
	}
	if err := repo.DeleteByID[E](ctx, s.DB, id); err != nil {
		return err
	}
	s.Index.Delete(id)
	indexOps.WithLabelValues(s.Name, "delete", "ok").Inc()
	return nil
}

// Search evaluates the query against the index mirror and hydrates the hits
// from the entity store, preserving relevance order. A malformed query
// propagates search.ErrBadQuery; any other index fault is wrapped as
// ErrSearchUnavailable.
func (s *CrudService[E, D]) Search(ctx context.Context, query string, page, size int) ([]*D, int64, error) {
	ctx, span := s.span(ctx, "Search", attribute.String("query", query))
	defer span.End()

	log.Debug().Str("entity", s.Name).Str("query", query).Msg("request to search")
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}

	ids, total, err := s.Index.Search(query, (page-1)*size, size)
	if err != nil {
		if errors.Is(err, search.ErrBadQuery) {
			return nil, 0, err
		}
		return nil, 0, errors.Join(ErrSearchUnavailable, err)
	}

	rows, err := repo.ListByIDs(ctx, s.DB, ids, s.EntityID, s.Preloads...)
	if err != nil {
		return nil, 0, err
	}
	s.runAfterLoad(rows)
	return s.toDTOs(rows), total, nil
}

// Reindex rebuilds the index mirror from the entity store and returns the
// number of documents indexed. This is the explicit reconciliation
// capability for the dual-write gap.
func (s *CrudService[E, D]) Reindex(ctx context.Context) (int, error) {
	ctx, span := s.span(ctx, "Reindex")
	defer span.End()

	rows, err := repo.ListAll[E](ctx, s.DB)
	if err != nil {
		return 0, err
	}
	s.Index.Clear()
	for _, e := range rows {
		s.Index.Upsert(s.Doc(e))
	}
	indexOps.WithLabelValues(s.Name, "reindex", "ok").Inc()
	log.Info().Str("entity", s.Name).Int("documents", len(rows)).Msg("search index rebuilt")
	return len(rows), nil
}

// indexByID mirrors the committed row into the index. It re-reads the row
// by id so stale in-memory state is never indexed; a row that vanished in
// the meantime is treated as deleted. Failures are logged and counted but
// never fail the caller — the store write already committed.
func (s *CrudService[E, D]) indexByID(ctx context.Context, op string, id *int64) {
	if id == nil {
		return
	}
	e, err := repo.Get[E](ctx, s.DB, *id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.Index.Delete(*id)
			indexOps.WithLabelValues(s.Name, op, "ok").Inc()
			return
		}
		indexOps.WithLabelValues(s.Name, op, "error").Inc()
		log.Warn().Err(err).Str("entity", s.Name).Int64("id", *id).
			Msg("search index write failed; store and index diverge until reindex")
		return
	}
	s.Index.Upsert(s.Doc(e))
	indexOps.WithLabelValues(s.Name, op, "ok").Inc()
}

func (s *CrudService[E, D]) runAfterSave(ctx context.Context, e *E) error {
	if s.AfterSave == nil {
		return nil
	}
	return s.AfterSave(ctx, s.DB, e)
}

func (s *CrudService[E, D]) runAfterLoad(rows []*E) {
	if s.AfterLoad != nil {
		s.AfterLoad(rows)
	}
}

func (s *CrudService[E, D]) toDTOs(rows []*E) []*D {
	out := make([]*D, 0, len(rows))
	for _, e := range rows {
		out = append(out, s.ToDTO(e))
	}
	return out
}
