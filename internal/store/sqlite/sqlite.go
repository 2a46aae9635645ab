package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/maloquacious/arrowtower/internal/logger"
	"github.com/maloquacious/arrowtower/internal/model"
	"github.com/maloquacious/arrowtower/internal/store"
	_ "modernc.org/sqlite"
)

// pragmas are applied by the driver on every new connection, so foreign
// key enforcement is on before the first statement runs.
var pragmas = []string{
	"foreign_keys(1)",
	"busy_timeout(5000)",
	"journal_mode(WAL)",
	"synchronous(NORMAL)",
}

// SQLiteStore implements the Store interface using modernc.org/sqlite.
type SQLiteStore struct {
	dbPath         string
	db             *sql.DB
	expectedSchema string
	enums          *model.Enums
	log            logger.Logger
}

var _ store.Store = (*SQLiteStore)(nil)

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithEnums sets the enumeration sets used to validate inserts.
func WithEnums(e *model.Enums) Option {
	return func(s *SQLiteStore) {
		if e != nil {
			s.enums = e
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *SQLiteStore) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a new SQLiteStore.
func New(dbPath string, expectedSchema string, opts ...Option) *SQLiteStore {
	s := &SQLiteStore{
		dbPath:         dbPath,
		expectedSchema: expectedSchema,
		enums:          model.DefaultEnums(),
		log:            logger.Discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// dsn builds a file: URI for path. The path is escaped, so reserved URI
// characters in a file name reach SQLite unchanged.
func dsn(path string) string {
	q := url.Values{}
	for _, p := range pragmas {
		q.Add("_pragma", p)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path), RawQuery: q.Encode()}
	return u.String()
}

// Open opens the SQLite database with safe defaults.
// The file is created if it does not exist.
func (s *SQLiteStore) Open(ctx context.Context) error {
	db, err := sql.Open("sqlite", dsn(s.dbPath))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// one writer, one connection
	db.SetMaxOpenConns(1)

	var fk int
	if err := db.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk); err != nil {
		db.Close()
		return fmt.Errorf("failed to read foreign_keys pragma: %w", err)
	}
	if fk != 1 {
		db.Close()
		return fmt.Errorf("foreign key enforcement is off for %s", s.dbPath)
	}

	s.log.Debug("opened %s", s.dbPath)
	s.db = db
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// InitSchema creates the tables and indexes, records the schema version
// and optionally seeds the baseline rows. Everything runs in one
// transaction; any error rolls it back.
func (s *SQLiteStore) InitSchema(ctx context.Context, opts store.InitOptions) error {
	if s.db == nil {
		return store.ErrNotOpen
	}
	if opts.Version == "" {
		opts.Version = s.expectedSchema
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `INSERT OR IGNORE INTO schema_migrations (version, applied_at) VALUES (?, strftime('%s', 'now'))`, opts.Version)
	if err != nil {
		return fmt.Errorf("failed to insert schema version: %w", err)
	}

	if opts.Seed {
		seeded, err := s.seed(ctx, tx)
		if err != nil {
			return fmt.Errorf("failed to seed: %w", err)
		}
		if seeded {
			s.log.Debug("seeded route %s and poi %s", seedRoute.ID, seedPOI.ID)
		} else {
			s.log.Debug("routes present, seed skipped")
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.log.Debug("schema %s applied to %s", opts.Version, s.dbPath)
	return nil
}

// CheckState returns the current state of the datastore.
func (s *SQLiteStore) CheckState(ctx context.Context) (store.StoreState, error) {
	if s.db == nil {
		return store.StateMissing, store.ErrNotOpen
	}

	// Check if schema_migrations table exists
	present, err := s.objects(ctx, "table")
	if err != nil {
		return store.StateUninitialized, fmt.Errorf("failed to list tables: %w", err)
	}
	if !present["schema_migrations"] {
		return store.StateUninitialized, nil
	}
	for _, name := range domainTables {
		if !present[name] {
			return store.StateUninitialized, nil
		}
	}

	// Check schema version
	version, err := s.GetSchemaVersion(ctx)
	if err != nil {
		return store.StateUninitialized, fmt.Errorf("failed to get schema version: %w", err)
	}

	if version != s.expectedSchema {
		return store.StateVersionMismatch, nil
	}

	return store.StateReady, nil
}

// GetSchemaVersion returns the current schema version from the database.
func (s *SQLiteStore) GetSchemaVersion(ctx context.Context) (string, error) {
	if s.db == nil {
		return "", store.ErrNotOpen
	}

	var version string
	err := s.db.QueryRowContext(ctx, `SELECT version FROM schema_migrations ORDER BY applied_at DESC, rowid DESC LIMIT 1`).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query schema version: %w", err)
	}

	return version, nil
}

// objects returns the names of sqlite_master entries of the given type.
func (s *SQLiteStore) objects(ctx context.Context, typ string) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM sqlite_master WHERE type = ?`, typ)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names[name] = true
	}
	return names, rows.Err()
}
