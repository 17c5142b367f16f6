package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mathtrail/mathtrail-cli/internal/core/domain"
	"github.com/mathtrail/mathtrail-cli/internal/core/ports/driven"
	"github.com/mathtrail/mathtrail-cli/internal/core/ports/driving"
	"github.com/mathtrail/mathtrail-cli/internal/logger"
)

// Ensure TheoryLoader implements the interface.
var _ driving.TheoryService = (*TheoryLoader)(nil)

// TheoryLoader orchestrates theory loads: it reads a theory's files
// from the content source, assembles an immutable snapshot and
// replaces it atomically in every configured store. At most one load
// per theory runs at a time; concurrent readers keep the previous
// snapshot until the replace lands.
type TheoryLoader struct {
	source driven.ContentSource
	stores []driven.ContentStore

	mu        sync.Mutex
	loading   map[string]*sync.Mutex
	onReplace []func(theory string)
}

// NewTheoryLoader creates a loader that installs snapshots into the
// given stores.
func NewTheoryLoader(source driven.ContentSource, stores ...driven.ContentStore) *TheoryLoader {
	return &TheoryLoader{
		source:  source,
		stores:  stores,
		loading: make(map[string]*sync.Mutex),
	}
}

// OnReplace registers a hook invoked after a theory's snapshot has
// been replaced (resolver cache invalidation, UI refresh).
func (l *TheoryLoader) OnReplace(fn func(theory string)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onReplace = append(l.onReplace, fn)
}

// Load reads a theory's content files and installs a fresh snapshot.
// Per-file failures are recorded in the snapshot's Statuses and do not
// fail the load; Load fails only when not a single file loaded.
func (l *TheoryLoader) Load(ctx context.Context, theory string) (*domain.TheorySnapshot, error) {
	if l.source == nil {
		return nil, domain.ErrNoContent
	}

	unlock := l.lockTheory(theory)
	defer unlock()

	files, err := l.source.Discover(ctx, theory)
	if err != nil {
		return nil, fmt.Errorf("discovering files for %s: %w", theory, err)
	}

	snapshot := &domain.TheorySnapshot{
		ID:       uuid.NewString(),
		Theory:   theory,
		LoadedAt: time.Now().UTC(),
	}

	for _, file := range files {
		loaded, err := l.source.LoadFile(ctx, file)
		snapshot.Statuses = append(snapshot.Statuses, domain.FileStatus{File: file, Err: err})
		if err != nil {
			logger.Warn("load: %s: %v", file, err)
			continue
		}
		snapshot.Files = append(snapshot.Files, *loaded)
		if strings.HasSuffix(file, "."+domain.FileDefinitions) {
			for i := range loaded.Documents {
				if def := loaded.Documents[i].Definition; def != nil {
					snapshot.Definitions = append(snapshot.Definitions, *def)
				}
			}
		}
	}

	if len(snapshot.Files) == 0 {
		return nil, fmt.Errorf("%w: theory %s", domain.ErrNoContent, theory)
	}

	for _, store := range l.stores {
		if err := store.ReplaceTheory(ctx, snapshot); err != nil {
			return nil, fmt.Errorf("replacing snapshot for %s: %w", theory, err)
		}
	}

	l.mu.Lock()
	hooks := append([]func(string){}, l.onReplace...)
	l.mu.Unlock()
	for _, hook := range hooks {
		hook(theory)
	}

	logger.Info("load: %s snapshot %s: %d files, %d definitions",
		theory, snapshot.ID, len(snapshot.Files), len(snapshot.Definitions))
	return snapshot, nil
}

// Theories lists the loaded theory names from the primary store.
func (l *TheoryLoader) Theories(ctx context.Context) ([]string, error) {
	if len(l.stores) == 0 {
		return nil, nil
	}
	return l.stores[0].ListTheories(ctx)
}

// lockTheory serializes loads per theory and returns the unlock func.
func (l *TheoryLoader) lockTheory(theory string) func() {
	l.mu.Lock()
	lock, ok := l.loading[theory]
	if !ok {
		lock = &sync.Mutex{}
		l.loading[theory] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
