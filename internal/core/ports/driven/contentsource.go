package driven

import (
	"context"

	"github.com/mathtrail/mathtrail-cli/internal/core/domain"
)

// ContentSource discovers and reads a theory's raw content files.
// Reading is the only I/O the core awaits; everything downstream of a
// loaded snapshot is pure.
type ContentSource interface {
	// Discover returns the logical file names available for a theory,
	// e.g. ["group_theory.definitions", "group_theory.theorems"].
	Discover(ctx context.Context, theory string) ([]string, error)

	// LoadFile reads and decodes one content file. Both accepted wire
	// shapes (id->document mapping, legacy document array) normalize
	// to the ordered TheoryFile form. A missing or undecodable file
	// returns an error wrapping domain.ErrLoadFailed.
	LoadFile(ctx context.Context, file string) (*domain.TheoryFile, error)
}

// ContentWatcher observes a content source and reports which theories
// changed so the caller can trigger reloads. Watching is best-effort.
type ContentWatcher interface {
	// Watch blocks until ctx is cancelled, invoking onChange with the
	// theory token of each changed content file.
	Watch(ctx context.Context, onChange func(theory string)) error
}
