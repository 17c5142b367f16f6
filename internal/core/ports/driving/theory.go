package driving

import (
	"context"

	"github.com/mathtrail/mathtrail-cli/internal/core/domain"
)

// TheoryService loads theories from the content source into the
// configured stores. Loading is idempotent per theory: a second load
// replaces the previous snapshot wholesale.
type TheoryService interface {
	// Load reads a theory's files and installs a fresh snapshot.
	// Individual file failures are reported in the snapshot's
	// Statuses; Load fails only when no file loaded at all.
	Load(ctx context.Context, theory string) (*domain.TheorySnapshot, error)

	// Theories lists the loaded theory names.
	Theories(ctx context.Context) ([]string, error)
}
