package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// TableRecord registers one pattern table file.
type TableRecord struct {
	Name          string
	Path          string
	Kind          string
	Pieces        string // space separated piece indices
	Entries       int64
	MaxValue      int
	BuildMaxDepth int
	BuildMs       int64
	BuiltAt       time.Time
}

// TableRepository provides CRUD operations for the table registry.
type TableRepository struct {
	db *DB
}

// NewTableRepository creates a new table repository.
func NewTableRepository(db *DB) *TableRepository {
	return &TableRepository{db: db}
}

// Upsert inserts or replaces the record for t.Name.
func (r *TableRepository) Upsert(t *TableRecord) error {
	if t.BuiltAt.IsZero() {
		t.BuiltAt = time.Now().UTC()
	}
	_, err := r.db.Exec(`
		INSERT INTO pattern_tables (name, path, kind, pieces, entries, max_value, build_max_depth, build_ms, built_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			path = excluded.path,
			kind = excluded.kind,
			pieces = excluded.pieces,
			entries = excluded.entries,
			max_value = excluded.max_value,
			build_max_depth = excluded.build_max_depth,
			build_ms = excluded.build_ms,
			built_at = excluded.built_at
	`, t.Name, t.Path, t.Kind, t.Pieces, t.Entries, t.MaxValue, t.BuildMaxDepth, t.BuildMs, t.BuiltAt.UTC().Format(timeLayout))

	if err != nil {
		return fmt.Errorf("failed to upsert table %s: %w", t.Name, err)
	}
	return nil
}

const tableColumns = `name, path, kind, pieces, entries, max_value, build_max_depth, build_ms, built_at`

func scanTable(row rowScanner) (*TableRecord, error) {
	var t TableRecord
	var builtAtStr string
	err := row.Scan(&t.Name, &t.Path, &t.Kind, &t.Pieces, &t.Entries, &t.MaxValue, &t.BuildMaxDepth, &t.BuildMs, &builtAtStr)
	if err != nil {
		return nil, err
	}
	if t.BuiltAt, err = time.Parse(timeLayout, builtAtStr); err != nil {
		return nil, fmt.Errorf("table %s: bad built_at %q: %w", t.Name, builtAtStr, err)
	}
	return &t, nil
}

// Get retrieves a table record by name. It returns nil when none matches.
func (r *TableRepository) Get(name string) (*TableRecord, error) {
	t, err := scanTable(r.db.QueryRow(`SELECT `+tableColumns+` FROM pattern_tables WHERE name = ?`, name))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get table: %w", err)
	}
	return t, nil
}

// List retrieves every registered table ordered by name.
func (r *TableRepository) List() ([]TableRecord, error) {
	rows, err := r.db.Query(`SELECT ` + tableColumns + ` FROM pattern_tables ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []TableRecord
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		tables = append(tables, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return tables, nil
}

// Delete removes a table record.
func (r *TableRepository) Delete(name string) error {
	if _, err := r.db.Exec("DELETE FROM pattern_tables WHERE name = ?", name); err != nil {
		return fmt.Errorf("failed to delete table: %w", err)
	}
	return nil
}
