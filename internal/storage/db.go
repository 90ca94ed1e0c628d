// Package storage provides SQLite database access for solve history and
// the pattern table registry.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB is the history database. It holds a single connection, so the
// pragmas below apply to every statement.
type DB struct {
	*sql.DB
	path string
}

// pragmas run once on the connection before migrations. A table build and
// a solve may write to the same file from two processes, hence the busy
// timeout.
var pragmas = []string{
	"foreign_keys = ON",
	"journal_mode = WAL",
	"busy_timeout = 5000",
}

// Open opens or creates the database at dbPath, creating its directory,
// and brings the schema up to date.
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dbPath, err)
	}
	conn.SetMaxOpenConns(1)

	db := &DB{DB: conn, path: dbPath}
	if err := db.setup(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) setup() error {
	for _, p := range pragmas {
		if _, err := db.Exec("PRAGMA " + p); err != nil {
			return fmt.Errorf("failed to set %s: %w", p, err)
		}
	}
	return applyMigrations(db.DB)
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// CurrentVersion returns the applied schema version.
func (db *DB) CurrentVersion() (int, error) {
	return currentVersion(db.DB)
}

// Transaction runs fn in a transaction, committing when it returns nil
// and rolling back otherwise.
func (db *DB) Transaction(fn func(*sql.Tx) error) (err error) {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// After a commit Rollback reports ErrTxDone.
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) && err != nil {
			err = fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
