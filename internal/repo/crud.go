// Package repo — generic CRUD.
//
// One repository implementation serves every clinic entity. The functions
// are parameterized over the entity type and follow the package's
// conventions: context-aware, *gorm.DB as an explicit handle (safe for use
// inside transactions), no business logic, raw gorm errors propagated.
//
// Error semantics:
//   - Get returns ErrNotFound (gorm.ErrRecordNotFound) for an absent id.
//   - DeleteByID of an absent id is a no-op, not an error; existence checks
//     belong to the caller when the operation requires them.
//   - Save is an upsert on the primary key: a nil-id entity is inserted and
//     receives its generated identity, an identified one is updated in place.
package repo

import (
	"context"
	"regexp"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a requested record does not exist. It aliases
// gorm.ErrRecordNotFound for convenience and consistency across the service
// layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// orderRE whitelists order clauses of the form "column" or "column desc".
// Anything else falls back to the primary key so request-supplied sort
// fields can never smuggle SQL.
var orderRE = regexp.MustCompile(`^[a-z_]+( (asc|desc))?$`)

// SafeOrder returns the order clause if it matches the whitelist, or
// "id asc" otherwise.
func SafeOrder(order string) string {
	if orderRE.MatchString(order) {
		return order
	}
	return "id asc"
}

// Save upserts e. On insert the generated identity is written back into e.
// Associations are omitted: related rows are attached by foreign-key id, and
// many-to-many sets are maintained explicitly by the service layer, so a
// save can never auto-create stub rows for its relationships.
func Save[E any](ctx context.Context, db *gorm.DB, e *E) (*E, error) {
	if err := db.WithContext(ctx).Omit(clause.Associations).Save(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// Get fetches one entity by id, preloading the named associations. Returns
// ErrNotFound when the row is absent.
func Get[E any](ctx context.Context, db *gorm.DB, id int64, preloads ...string) (*E, error) {
	tx := db.WithContext(ctx)
	for _, p := range preloads {
		tx = tx.Preload(p)
	}
	e := new(E)
	if err := tx.First(e, id).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// Exists reports whether a row with the given id exists.
func Exists[E any](ctx context.Context, db *gorm.DB, id int64) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(new(E)).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// Count returns the total number of rows for the entity type.
func Count[E any](ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(new(E)).Count(&n).Error
	return n, err
}

// ListPage returns a page of entities ordered by the (whitelisted) order
// clause, preloading the named associations. The caller computes offset and
// limit; Count supplies the total for pagination metadata.
func ListPage[E any](ctx context.Context, db *gorm.DB, offset, limit int, order string, preloads ...string) ([]*E, error) {
	tx := db.WithContext(ctx).Order(SafeOrder(order)).Offset(offset).Limit(limit)
	for _, p := range preloads {
		tx = tx.Preload(p)
	}
	var out []*E
	err := tx.Find(&out).Error
	return out, err
}

// ListAll returns every row of the entity type ordered by id. Used by the
// index rebuild path; listing endpoints paginate instead.
func ListAll[E any](ctx context.Context, db *gorm.DB) ([]*E, error) {
	var out []*E
	err := db.WithContext(ctx).Order("id asc").Find(&out).Error
	return out, err
}

// ListByIDs fetches the rows for ids and returns them in the order the ids
// were given (absent ids are skipped). The search layer ranks by relevance;
// this preserves that ranking while the row data stays authoritative.
// idOf extracts the identity from a loaded row.
func ListByIDs[E any](ctx context.Context, db *gorm.DB, ids []int64, idOf func(*E) *int64, preloads ...string) ([]*E, error) {
	if len(ids) == 0 {
		return []*E{}, nil
	}
	tx := db.WithContext(ctx).Where("id IN ?", ids)
	for _, p := range preloads {
		tx = tx.Preload(p)
	}
	var rows []*E
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[int64]*E, len(rows))
	for _, r := range rows {
		if id := idOf(r); id != nil {
			byID[*id] = r
		}
	}
	out := make([]*E, 0, len(rows))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// DeleteByID removes the row with the given id. Deleting an absent id is a
// no-op from the store's perspective.
func DeleteByID[E any](ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Delete(new(E), id).Error
}
