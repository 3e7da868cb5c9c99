// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants that are mapped to HTTP
// responses (via the `fail()` helper in this package). These codes provide
// clients with a stable, machine-readable error taxonomy that supplements
// human-readable messages.
//
// Conventions:
//   - Codes are lowercase, snake_case, and domain-agnostic unless explicitly noted.
//   - Generic codes (e.g., bad_request, not_found) mirror common HTTP status
//     semantics to aid interoperability.
//   - Domain-specific codes (e.g., id_exists, id_mismatch) identify identity
//     handling errors on the entity endpoints that a bare status cannot convey.
//   - All error responses must include both an HTTP status and one of these codes.
//
// Usage:
//   - Handlers select the most specific matching code and pass it to `fail()`
//     along with the corresponding HTTP status and message.
//   - Clients are expected to branch on these codes for programmatic error handling.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "id_mismatch",
//	  "message": "payload id does not match path id"
//	}
package handlers

const (
	ErrCodeBadRequest  = "bad_request"
	ErrCodeNotFound    = "not_found"
	ErrCodeRateLimited = "too_many_requests"
	ErrCodeInternal    = "internal_error"

	// Domain-specific:
	ErrCodeIDExists          = "id_exists"
	ErrCodeIDNull            = "id_null"
	ErrCodeIDInvalid         = "id_invalid"
	ErrCodeIDMismatch        = "id_mismatch"
	ErrCodeBadQuery          = "bad_query"
	ErrCodeSearchUnavailable = "search_unavailable"
	ErrCodeMethodNotAllowed  = "method_not_allowed"
)
