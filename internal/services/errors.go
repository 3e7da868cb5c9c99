// Package services defines the business logic shared by every clinic
// entity: the dual-write orchestration between the entity store and the
// search index mirror. This file centralizes the service-level error values
// so they can be consistently returned by service methods and checked by
// callers with errors.Is.
//
// Translation into HTTP statuses is performed at the handler layer.
package services

import "errors"

var (
	// ErrIDAlreadySet is returned when a create payload already carries an
	// identity. Identity is assigned exactly once, by the store.
	ErrIDAlreadySet = errors.New("a new record cannot already have an id")

	// ErrIDNull is returned when an update payload carries no identity.
	ErrIDNull = errors.New("invalid id: missing")

	// ErrIDMismatch is returned when the payload identity does not match the
	// update target.
	ErrIDMismatch = errors.New("invalid id: payload does not match target")

	// ErrNotFound indicates the referenced record does not exist. Read paths
	// treat this as an empty result; write paths surface it to the caller.
	ErrNotFound = errors.New("record not found")

	// ErrSearchUnavailable indicates the index layer failed during a search.
	// It is distinguishable from a generic fault so the API can map it to a
	// dedicated status.
	ErrSearchUnavailable = errors.New("search backend unavailable")
)
