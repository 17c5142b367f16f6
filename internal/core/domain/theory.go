package domain

import (
	"strings"
	"time"
	"unicode"
)

// File suffixes within a theory, per the content file convention
// "{theory}.{definitions|theorems}".
const (
	FileDefinitions = "definitions"
	FileTheorems    = "theorems"
)

// TheorySnapshot is the immutable result of loading one theory.
// A snapshot is built once per load and replaced wholesale on reload;
// it is never mutated afterwards and is safe to share across
// concurrent readers.
type TheorySnapshot struct {
	// ID uniquely identifies this load (for log correlation and the
	// persistent index).
	ID string

	// Theory is the theory name as referenced, e.g. "GroupTheory".
	Theory string

	// LoadedAt is when the snapshot was assembled.
	LoadedAt time.Time

	// Files are the successfully loaded content files, in discovery
	// order.
	Files []TheoryFile

	// Definitions are the theory's formal definitions in file order,
	// collected from the definitions file.
	Definitions []Definition

	// Statuses records the per-file load outcome, including failures.
	Statuses []FileStatus
}

// File returns the named content file, or nil.
func (s *TheorySnapshot) File(name string) *TheoryFile {
	for i := range s.Files {
		if s.Files[i].Name == name {
			return &s.Files[i]
		}
	}
	return nil
}

// TheoryFile is one loaded content file: an ordered sequence of
// documents keyed by id.
type TheoryFile struct {
	// Name is the logical file name, e.g. "group_theory.definitions".
	Name string

	// Documents are the file's documents in their canonical order.
	Documents []ContentDocument
}

// Document returns the document with the given id, or nil.
func (f *TheoryFile) Document(id string) *ContentDocument {
	for i := range f.Documents {
		if f.Documents[i].ID == id {
			return &f.Documents[i]
		}
	}
	return nil
}

// IDs returns the document ids in file order.
func (f *TheoryFile) IDs() []string {
	ids := make([]string, len(f.Documents))
	for i := range f.Documents {
		ids[i] = f.Documents[i].ID
	}
	return ids
}

// FileStatus is the per-file outcome of a theory load. A failed file
// never fails the load of its siblings.
type FileStatus struct {
	// File is the logical file name.
	File string

	// Err is the load failure, nil on success.
	Err error
}

// TheoryToken converts a theory context name to its file token:
// "GroupTheory" becomes "group_theory". Already-lowercase names pass
// through unchanged.
func TheoryToken(theory string) string {
	var b strings.Builder
	for i, r := range theory {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// TheoryFileName returns the logical file name for a theory and file
// suffix, e.g. ("GroupTheory", FileDefinitions) -> "group_theory.definitions".
func TheoryFileName(theory, suffix string) string {
	return TheoryToken(theory) + "." + suffix
}
