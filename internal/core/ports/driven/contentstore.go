package driven

import (
	"context"

	"github.com/mathtrail/mathtrail-cli/internal/core/domain"
)

// ContentStore holds loaded theory snapshots and answers lookups over
// them. Implementations must replace a theory's snapshot wholesale:
// readers either see the previous snapshot or the new one, never a mix.
type ContentStore interface {
	// ReplaceTheory atomically installs a theory snapshot, discarding
	// any previous snapshot for the same theory.
	ReplaceTheory(ctx context.Context, snapshot *domain.TheorySnapshot) error

	// GetDocument retrieves a document by logical file name and id.
	// Returns domain.ErrNotFound when the file or id is absent.
	GetDocument(ctx context.Context, file, id string) (*domain.ContentDocument, error)

	// ListIDs returns the document ids of a file in file order.
	// Returns domain.ErrNotFound when the file is absent.
	ListIDs(ctx context.Context, file string) ([]string, error)

	// ListFiles returns the logical file names loaded for a theory.
	// Returns domain.ErrTheoryNotLoaded when the theory is absent.
	ListFiles(ctx context.Context, theory string) ([]string, error)

	// ListDefinitions returns a theory's definitions in file order.
	// Returns domain.ErrTheoryNotLoaded when the theory is absent.
	ListDefinitions(ctx context.Context, theory string) ([]domain.Definition, error)

	// ListTheories returns the names of all loaded theories.
	ListTheories(ctx context.Context) ([]string, error)
}
