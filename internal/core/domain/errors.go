package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrTheoryNotLoaded indicates no snapshot exists for the theory.
	ErrTheoryNotLoaded = errors.New("theory not loaded")

	// ErrLoadFailed indicates a content file could not be read or decoded.
	// It is recorded per file; sibling files remain available.
	ErrLoadFailed = errors.New("load failed")

	// ErrNoContent indicates a theory yielded no loadable files at all.
	// Unlike a per-file ErrLoadFailed this is fatal to the load.
	ErrNoContent = errors.New("no content loaded")

	// ErrMalformedType indicates a member's type expression could not be
	// tokenized. The graph builder skips the member's contribution.
	ErrMalformedType = errors.New("malformed type expression")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAmbiguousVariant indicates a tagged-union value carried more than
	// one variant key. Exactly one variant must be populated.
	ErrAmbiguousVariant = errors.New("ambiguous variant")
)
