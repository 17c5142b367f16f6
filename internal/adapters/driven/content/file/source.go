package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/mathtrail/mathtrail-cli/internal/core/domain"
	"github.com/mathtrail/mathtrail-cli/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.ContentSource = (*Source)(nil)

// Source reads theory content files from a directory.
type Source struct {
	dir string
}

// NewSource creates a content source over the given directory.
// If dir is empty, defaults to ~/.mathtrail/content.
func NewSource(dir string) (*Source, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".mathtrail", "content")
	}
	return &Source{dir: dir}, nil
}

// Dir returns the content directory.
func (s *Source) Dir() string {
	return s.dir
}

// Discover returns the logical file names available for a theory.
// When no file exists on disk, both canonical names are returned so
// the load records a useful per-file failure for each.
func (s *Source) Discover(_ context.Context, theory string) ([]string, error) {
	token := domain.TheoryToken(theory)
	candidates := []string{
		token + "." + domain.FileDefinitions,
		token + "." + domain.FileTheorems,
	}

	var found []string
	for _, name := range candidates {
		if _, err := os.Stat(s.path(name)); err == nil {
			found = append(found, name)
		}
	}
	if len(found) == 0 {
		return candidates, nil
	}
	return found, nil
}

// LoadFile reads and decodes one content file, accepting both wire
// shapes. Failures wrap domain.ErrLoadFailed.
func (s *Source) LoadFile(_ context.Context, file string) (*domain.TheoryFile, error) {
	data, err := os.ReadFile(s.path(file))
	if err != nil {
		return nil, loadFailed(file, err)
	}

	docs, err := decodeDocuments(data)
	if err != nil {
		return nil, loadFailed(file, err)
	}
	return &domain.TheoryFile{Name: file, Documents: docs}, nil
}

func (s *Source) path(file string) string {
	return filepath.Join(s.dir, file+".json")
}

// decodeDocuments accepts an id->document mapping (canonical, keys
// sorted for a deterministic order) or a legacy document array (order
// preserved, ids mandatory).
func decodeDocuments(data []byte) ([]domain.ContentDocument, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, errors.New("empty file")
	}

	switch trimmed[0] {
	case '{':
		var byID map[string]domain.ContentDocument
		if err := json.Unmarshal(data, &byID); err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(byID))
		for id := range byID {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		docs := make([]domain.ContentDocument, 0, len(byID))
		for _, id := range ids {
			doc := byID[id]
			// The mapping key is authoritative.
			doc.ID = id
			docs = append(docs, doc)
		}
		return docs, nil

	case '[':
		var docs []domain.ContentDocument
		if err := json.Unmarshal(data, &docs); err != nil {
			return nil, err
		}
		for i := range docs {
			if docs[i].ID == "" {
				return nil, fmt.Errorf("array document %d has no id", i)
			}
		}
		return docs, nil

	default:
		return nil, errors.New("content is neither a mapping nor an array")
	}
}

func loadFailed(file string, cause error) error {
	return fmt.Errorf("loading %s: %w", file, errors.Join(domain.ErrLoadFailed, cause))
}
