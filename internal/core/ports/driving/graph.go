package driving

import (
	"context"

	"github.com/mathtrail/mathtrail-cli/internal/core/domain"
)

// GraphService builds the definition dependency graph for a theory.
type GraphService interface {
	// BuildForTheory builds the graph over a loaded theory's
	// definitions.
	BuildForTheory(ctx context.Context, theory string) (*domain.DependencyGraph, error)

	// Build builds the graph over an explicit definition sequence.
	// Output ordering is deterministic in the input order.
	Build(definitions []domain.Definition) *domain.DependencyGraph
}
