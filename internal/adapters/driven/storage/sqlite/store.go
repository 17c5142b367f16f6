package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/mathtrail/mathtrail-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/mathtrail/mathtrail-cli/internal/core/domain"
	"github.com/mathtrail/mathtrail-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ContentStore = (*Store)(nil)

// Store is a SQLite-backed ContentStore. Snapshots are written in a
// single transaction per theory so readers never observe a partial
// replace.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.mathtrail/data/corpus.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".mathtrail", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "corpus.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ReplaceTheory installs a theory snapshot, discarding any previous
// rows for the same theory in the same transaction.
func (s *Store) ReplaceTheory(ctx context.Context, snapshot *domain.TheorySnapshot) error {
	token := domain.TheoryToken(snapshot.Theory)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Cascades clear files, documents and definitions.
	if _, err := tx.ExecContext(ctx, "DELETE FROM theories WHERE token = ?", token); err != nil {
		return fmt.Errorf("clearing theory %s: %w", token, err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO theories (token, name, snapshot_id, loaded_at)
		VALUES (?, ?, ?, ?)
	`, token, snapshot.Theory, snapshot.ID, snapshot.LoadedAt); err != nil {
		return fmt.Errorf("inserting theory %s: %w", token, err)
	}

	for filePos := range snapshot.Files {
		file := &snapshot.Files[filePos]
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO files (name, theory_token, position) VALUES (?, ?, ?)
		`, file.Name, token, filePos); err != nil {
			return fmt.Errorf("inserting file %s: %w", file.Name, err)
		}

		for docPos := range file.Documents {
			doc := &file.Documents[docPos]
			body, err := json.Marshal(doc)
			if err != nil {
				return fmt.Errorf("marshalling document %s: %w", doc.ID, err)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO documents (file, id, position, body) VALUES (?, ?, ?, ?)
			`, file.Name, doc.ID, docPos, string(body)); err != nil {
				return fmt.Errorf("inserting document %s: %w", doc.ID, err)
			}
		}
	}

	for pos := range snapshot.Definitions {
		def := &snapshot.Definitions[pos]
		body, err := json.Marshal(def)
		if err != nil {
			return fmt.Errorf("marshalling definition %s: %w", def.Name, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO definitions (theory_token, position, name, body) VALUES (?, ?, ?, ?)
		`, token, pos, def.Name, string(body)); err != nil {
			return fmt.Errorf("inserting definition %s: %w", def.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot for %s: %w", token, err)
	}
	return nil
}

// GetDocument retrieves a document by file name and id.
func (s *Store) GetDocument(ctx context.Context, file, id string) (*domain.ContentDocument, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT body FROM documents WHERE file = ? AND id = ?", file, id)

	var body string
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	var doc domain.ContentDocument
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("unmarshalling document %s: %w", id, err)
	}
	return &doc, nil
}

// ListIDs returns the document ids of a file in file order.
func (s *Store) ListIDs(ctx context.Context, file string) ([]string, error) {
	var exists int
	row := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM files WHERE name = ?", file)
	if err := row.Scan(&exists); err != nil {
		return nil, fmt.Errorf("checking file: %w", err)
	}
	if exists == 0 {
		return nil, domain.ErrNotFound
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM documents WHERE file = ? ORDER BY position", file)
	if err != nil {
		return nil, fmt.Errorf("listing ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListFiles returns the logical file names loaded for a theory.
func (s *Store) ListFiles(ctx context.Context, theory string) ([]string, error) {
	token := domain.TheoryToken(theory)
	if err := s.theoryExists(ctx, token); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM files WHERE theory_token = ? ORDER BY position", token)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning file name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ListDefinitions returns a theory's definitions in file order.
func (s *Store) ListDefinitions(ctx context.Context, theory string) ([]domain.Definition, error) {
	token := domain.TheoryToken(theory)
	if err := s.theoryExists(ctx, token); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT body FROM definitions WHERE theory_token = ? ORDER BY position", token)
	if err != nil {
		return nil, fmt.Errorf("listing definitions: %w", err)
	}
	defer rows.Close()

	var defs []domain.Definition
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scanning definition: %w", err)
		}
		var def domain.Definition
		if err := json.Unmarshal([]byte(body), &def); err != nil {
			return nil, fmt.Errorf("unmarshalling definition: %w", err)
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

// ListTheories returns the names of all stored theories, sorted.
func (s *Store) ListTheories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM theories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing theories: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning theory name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// theoryExists maps a missing theory row to ErrTheoryNotLoaded.
func (s *Store) theoryExists(ctx context.Context, token string) error {
	var count int
	row := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM theories WHERE token = ?", token)
	if err := row.Scan(&count); err != nil {
		return fmt.Errorf("checking theory: %w", err)
	}
	if count == 0 {
		return domain.ErrTheoryNotLoaded
	}
	return nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Sort and run migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
