package driving

import (
	"context"

	"github.com/mathtrail/mathtrail-cli/internal/core/domain"
)

// ResolverService turns symbolic references into navigation targets.
// Resolution is pure with respect to the loaded snapshot and never
// fails on a mere miss: an exhausted lookup yields an unresolved
// Resolution carrying suggestions.
type ResolverService interface {
	// Resolve resolves a reference against the current snapshot.
	Resolve(ctx context.Context, ref domain.Reference) (domain.Resolution, error)
}
