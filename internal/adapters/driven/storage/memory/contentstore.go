package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mathtrail/mathtrail-cli/internal/core/domain"
	"github.com/mathtrail/mathtrail-cli/internal/core/ports/driven"
)

// Ensure ContentStore implements the interface.
var _ driven.ContentStore = (*ContentStore)(nil)

// ContentStore is an in-memory implementation of driven.ContentStore.
// It holds one immutable snapshot per theory; ReplaceTheory swaps the
// snapshot pointer wholesale, so concurrent readers see either the old
// snapshot or the new one, never a mix.
type ContentStore struct {
	mu        sync.RWMutex
	snapshots map[string]*domain.TheorySnapshot
	fileIndex map[string]*domain.TheoryFile
}

// NewContentStore creates a new in-memory content store.
func NewContentStore() *ContentStore {
	return &ContentStore{
		snapshots: make(map[string]*domain.TheorySnapshot),
		fileIndex: make(map[string]*domain.TheoryFile),
	}
}

// ReplaceTheory atomically installs a theory snapshot.
func (s *ContentStore) ReplaceTheory(_ context.Context, snapshot *domain.TheorySnapshot) error {
	token := domain.TheoryToken(snapshot.Theory)

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.snapshots[token]; ok {
		for i := range old.Files {
			delete(s.fileIndex, old.Files[i].Name)
		}
	}

	s.snapshots[token] = snapshot
	for i := range snapshot.Files {
		s.fileIndex[snapshot.Files[i].Name] = &snapshot.Files[i]
	}
	return nil
}

// GetDocument retrieves a document by file name and id.
func (s *ContentStore) GetDocument(_ context.Context, file, id string) (*domain.ContentDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.fileIndex[file]
	if !ok {
		return nil, domain.ErrNotFound
	}
	doc := f.Document(id)
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	copied := *doc
	return &copied, nil
}

// ListIDs returns the document ids of a file in file order.
func (s *ContentStore) ListIDs(_ context.Context, file string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.fileIndex[file]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return f.IDs(), nil
}

// ListFiles returns the logical file names loaded for a theory.
func (s *ContentStore) ListFiles(_ context.Context, theory string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, ok := s.snapshots[domain.TheoryToken(theory)]
	if !ok {
		return nil, domain.ErrTheoryNotLoaded
	}
	names := make([]string, len(snapshot.Files))
	for i := range snapshot.Files {
		names[i] = snapshot.Files[i].Name
	}
	return names, nil
}

// ListDefinitions returns a theory's definitions in file order.
func (s *ContentStore) ListDefinitions(_ context.Context, theory string) ([]domain.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, ok := s.snapshots[domain.TheoryToken(theory)]
	if !ok {
		return nil, domain.ErrTheoryNotLoaded
	}
	defs := make([]domain.Definition, len(snapshot.Definitions))
	copy(defs, snapshot.Definitions)
	return defs, nil
}

// ListTheories returns the names of all loaded theories, sorted.
func (s *ContentStore) ListTheories(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var names []string
	for _, snapshot := range s.snapshots {
		names = append(names, snapshot.Theory)
	}
	sort.Strings(names)
	return names, nil
}
