package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// SchemaVersion is the run history layout this package reads and writes.
// It is stamped into PRAGMA user_version when a history is created.
const SchemaVersion = 1

var (
	// ErrNotFound is returned by OpenExisting when the database file is missing.
	ErrNotFound = errors.New("database not found")

	// ErrNotRunHistory is returned when a database has no run history tables
	// or was written by a newer schema version.
	ErrNotRunHistory = errors.New("not a tapevm run history")
)

// Store is a SQLite-backed run history.
type Store struct {
	db *sql.DB
}

// Open opens the run history at path, creating the file and its tables if
// needed. Recording runs uses Open.
func Open(path string) (*Store, error) {
	db, err := connect(path)
	if err != nil {
		return nil, err
	}

	version, err := userVersion(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	if version > SchemaVersion {
		db.Close()
		return nil, fmt.Errorf("%w: schema version %d, this build supports %d", ErrNotRunHistory, version, SchemaVersion)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to stamp schema version: %w", err)
	}

	return &Store{db: db}, nil
}

// OpenExisting opens a run history that must already exist. history and
// replay use it so a mistyped path fails instead of creating an empty file.
func OpenExisting(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat database: %w", err)
	}

	db, err := connect(path)
	if err != nil {
		return nil, err
	}

	if err := checkRunHistory(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// connect opens a single-connection handle with the run history pragmas.
func connect(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Runs are assigned seq inside a transaction; one connection keeps
	// that serialized.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return db, nil
}

func userVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// checkRunHistory verifies the schema version and that both history tables
// are present.
func checkRunHistory(db *sql.DB) error {
	version, err := userVersion(db)
	if err != nil {
		return err
	}
	if version != SchemaVersion {
		return fmt.Errorf("%w: schema version %d, want %d", ErrNotRunHistory, version, SchemaVersion)
	}

	for _, table := range []string{"programs", "runs"} {
		var n int
		err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&n)
		if err != nil {
			return fmt.Errorf("failed to inspect schema: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: missing table %s", ErrNotRunHistory, table)
		}
	}
	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	if err := s.db.QueryRow(fmt.Sprintf("PRAGMA %s", name)).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
