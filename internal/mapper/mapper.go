// Package mapper converts between persistence entities (internal/domain) and
// wire DTOs (internal/dto). Every function is pure and total: no I/O, no
// shared state, nil in → nil out.
//
// Conventions:
//   - ToXDTO shrinks related entities to id+label projections.
//   - ToXEntity resolves relationship refs to foreign-key ids only; the
//     store attaches the related row by id on save.
//   - PartialUpdateX implements merge-patch semantics: only non-nil DTO
//     fields are copied onto the existing entity, everything else is left
//     untouched.
//
// Pointer fields are cloned rather than aliased so a mapped value never
// shares memory with its source.
package mapper

import (
	"time"

	"github.com/petstack/go-petclinic-backend/internal/dto"
)

// clone returns a fresh pointer holding a copy of *p, or nil for nil.
func clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// dateOf converts a wire LocalDate to a stored time value.
func dateOf(d *dto.LocalDate) *time.Time {
	if d == nil {
		return nil
	}
	t := dto.NewLocalDate(d.Time).Time
	return &t
}

// localDateOf converts a stored time value to a wire LocalDate.
func localDateOf(t *time.Time) *dto.LocalDate {
	if t == nil {
		return nil
	}
	d := dto.NewLocalDate(*t)
	return &d
}
