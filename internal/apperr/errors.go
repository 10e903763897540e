// Package apperr defines the sentinel errors shared across the retrieval
// core. The Store and adapters return these (wrapped with %w) rather than
// ad-hoc error strings, so the Shell can classify failures with errors.Is
// at the dispatcher boundary instead of string matching.
package apperr

import "errors"

var (
	// ErrNotFound indicates a lookup found no matching row.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable indicates the Store, or a specific table within it,
	// could not be opened or does not exist — distinct from a query that
	// legitimately returned zero rows against a present table.
	ErrUnavailable = errors.New("unavailable")
	// ErrConflict is reserved for precondition mismatches; the core
	// performs no writes today but adapters may use it internally.
	ErrConflict = errors.New("conflict")
)
