package file

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/mathtrail/mathtrail-cli/internal/core/ports/driven"
	"github.com/mathtrail/mathtrail-cli/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.ContentWatcher = (*Watcher)(nil)

// Watcher observes a content directory and reports which theory a
// changed file belongs to. Watching is best-effort: watcher errors are
// logged, not escalated.
type Watcher struct {
	dir string
}

// NewWatcher creates a watcher over the given content directory.
func NewWatcher(dir string) *Watcher {
	return &Watcher{dir: dir}
}

// Watch blocks until ctx is cancelled, invoking onChange with the
// theory token of each changed content file.
func (w *Watcher) Watch(ctx context.Context, onChange func(theory string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return err
	}
	logger.Info("watch: observing %s", w.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
				!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			theory, ok := theoryForPath(event.Name)
			if !ok {
				continue
			}
			logger.Debug("watch: %s changed (%s)", theory, event.Op)
			onChange(theory)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)
		}
	}
}

// theoryForPath extracts the theory token from a content file path:
// ".../group_theory.definitions.json" yields "group_theory".
func theoryForPath(path string) (string, bool) {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, ".json") {
		return "", false
	}
	name := strings.TrimSuffix(base, ".json")
	idx := strings.LastIndex(name, ".")
	if idx <= 0 {
		return "", false
	}
	return name[:idx], true
}
