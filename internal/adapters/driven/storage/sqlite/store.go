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
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/born05/schematic/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/born05/schematic/internal/core/domain"
	"github.com/born05/schematic/internal/core/ports/driven"
)

// DefaultDataDir is used when NewStore is given an empty directory.
const DefaultDataDir = ".schematic"

// Category names stored in the records table.
const (
	CategoryPlugins         = "plugins"
	CategorySites           = "sites"
	CategoryVolumes         = "volumes"
	CategoryAssetTransforms = "assetTransforms"
	CategoryFields          = "fields"
	CategorySections        = "sections"
	CategoryCategoryGroups  = "categoryGroups"
	CategoryGlobalSets      = "globalSets"
)

// Store is a SQLite database holding the records of one host environment.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store in the specified data directory.
// If dataDir is empty, defaults to DefaultDataDir.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = DefaultDataDir
	}

	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "environment.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

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

// Environment registers the given element types and returns every
// category store of the database as driven ports.
func (s *Store) Environment(ctx context.Context, elementTypes []string) (*driven.Environment, error) {
	indexes := &elementIndexStore{store: s}
	if err := indexes.register(ctx, elementTypes); err != nil {
		return nil, err
	}

	return &driven.Environment{
		Plugins:         NewRecordStore(s, CategoryPlugins, domain.Plugin.WithID),
		Sites:           NewRecordStore(s, CategorySites, domain.Site.WithID),
		Volumes:         NewRecordStore(s, CategoryVolumes, domain.Volume.WithID),
		AssetTransforms: NewRecordStore(s, CategoryAssetTransforms, domain.AssetTransform.WithID),
		Fields:          NewRecordStore(s, CategoryFields, domain.Field.WithID),
		Sections:        NewRecordStore(s, CategorySections, domain.Section.WithID),
		CategoryGroups:  NewRecordStore(s, CategoryCategoryGroups, domain.CategoryGroup.WithID),
		GlobalSets:      NewRecordStore(s, CategoryGlobalSets, domain.GlobalSet.WithID),
		ElementIndexes:  indexes,
	}, nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
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
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Record Store ====================

// Ensure RecordStore implements the interface.
var _ driven.RecordStore[domain.Site] = (*RecordStore[domain.Site])(nil)

// RecordStore implements driven.RecordStore for one category.
// Records are stored as JSON and listed in insertion order.
type RecordStore[T domain.Record] struct {
	store    *Store
	category string
	withID   func(T, string) T
}

// NewRecordStore creates a store for the records of category.
// withID returns a copy of a record carrying the given ID.
func NewRecordStore[T domain.Record](store *Store, category string, withID func(T, string) T) *RecordStore[T] {
	return &RecordStore[T]{store: store, category: category, withID: withID}
}

// List returns all records of the category.
func (s *RecordStore[T]) List(ctx context.Context) ([]T, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, data FROM records
		WHERE category = ?
		ORDER BY position, id
	`, s.category)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", s.category, err)
	}
	defer rows.Close()

	records := []T{}
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", s.category, err)
		}

		var record T
		if err := json.Unmarshal([]byte(data), &record); err != nil {
			return nil, fmt.Errorf("unmarshaling %s %s: %w", s.category, id, err)
		}
		records = append(records, s.withID(record, id))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", s.category, err)
	}
	return records, nil
}

// Save creates or updates a record. Records without an ID get a new one
// and are appended after the existing records.
func (s *RecordStore[T]) Save(ctx context.Context, record T) (T, error) {
	if record.RecordID() == "" {
		record = s.withID(record, uuid.New().String())
	}

	data, err := json.Marshal(record)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("marshalling %s: %w", s.category, err)
	}

	now := time.Now().UTC()
	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO records (category, id, handle, position, data, created_at, updated_at)
		VALUES (?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM records WHERE category = ?), ?, ?, ?)
		ON CONFLICT(category, id) DO UPDATE SET
			handle = excluded.handle,
			data = excluded.data,
			updated_at = excluded.updated_at
	`, s.category, record.RecordID(), record.NaturalKey(), s.category, string(data), now, now)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("saving %s: %w", s.category, err)
	}
	return record, nil
}

// Delete removes a record by ID.
func (s *RecordStore[T]) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx,
		"DELETE FROM records WHERE category = ? AND id = ?", s.category, id)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", s.category, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting %s: %w", s.category, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ==================== Element Index Store ====================

// elementIndexStore implements driven.ElementIndexStore.
type elementIndexStore struct {
	store *Store
}

var _ driven.ElementIndexStore = (*elementIndexStore)(nil)

// register records the element types known to the installation.
func (s *elementIndexStore) register(ctx context.Context, elementTypes []string) error {
	for i, elementType := range elementTypes {
		_, err := s.store.db.ExecContext(ctx, `
			INSERT INTO element_types (element_type, position) VALUES (?, ?)
			ON CONFLICT(element_type) DO UPDATE SET position = excluded.position
		`, elementType, i)
		if err != nil {
			return fmt.Errorf("registering element type %s: %w", elementType, err)
		}
	}
	return nil
}

// ElementTypes returns the registered element types.
func (s *elementIndexStore) ElementTypes(ctx context.Context) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT element_type FROM element_types ORDER BY position, element_type")
	if err != nil {
		return nil, fmt.Errorf("querying element types: %w", err)
	}
	defer rows.Close()

	types := []string{}
	for rows.Next() {
		var elementType string
		if err := rows.Scan(&elementType); err != nil {
			return nil, fmt.Errorf("scanning element type: %w", err)
		}
		types = append(types, elementType)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating element types: %w", err)
	}
	return types, nil
}

// Settings returns the index settings of an element type.
func (s *elementIndexStore) Settings(ctx context.Context, elementType string) (domain.ElementIndex, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT t.element_type, e.sources
		FROM element_types t
		LEFT JOIN element_index_settings e ON e.element_type = t.element_type
		WHERE t.element_type = ?
	`, elementType)

	var name string
	var sources sql.NullString
	if err := row.Scan(&name, &sources); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ElementIndex{}, domain.ErrNotFound
		}
		return domain.ElementIndex{}, fmt.Errorf("scanning element index: %w", err)
	}

	index := domain.ElementIndex{ElementType: name}
	if sources.Valid {
		if err := json.Unmarshal([]byte(sources.String), &index.Sources); err != nil {
			return domain.ElementIndex{}, fmt.Errorf("unmarshaling sources of %s: %w", name, err)
		}
	}
	return index, nil
}

// SaveSettings stores the index settings of a registered element type.
func (s *elementIndexStore) SaveSettings(ctx context.Context, index domain.ElementIndex) error {
	var known int
	err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM element_types WHERE element_type = ?", index.ElementType).Scan(&known)
	if err != nil {
		return fmt.Errorf("checking element type: %w", err)
	}
	if known == 0 {
		return domain.ErrNotFound
	}

	sources, err := json.Marshal(index.Sources)
	if err != nil {
		return fmt.Errorf("marshalling sources: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO element_index_settings (element_type, sources, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(element_type) DO UPDATE SET
			sources = excluded.sources,
			updated_at = excluded.updated_at
	`, index.ElementType, string(sources), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving element index: %w", err)
	}
	return nil
}
