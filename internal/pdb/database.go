package pdb

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
)

// Database combines several tables into one heuristic.
type Database struct {
	tables []*Table
}

// New creates a database over already built or loaded tables.
func New(tables ...*Table) *Database {
	return &Database{tables: tables}
}

// Unreachable is the heuristic of a cube some table never reached from
// the solved state. It matches the search package's dead-state cost.
const Unreachable = math.MaxInt32

// Heuristic returns the largest table cost for c. Each table is an exact
// distance for its piece subset, so the maximum never overestimates the
// moves needed to solve the whole cube. An Unvisited entry makes the
// cube unsolvable and yields Unreachable.
func (db *Database) Heuristic(c *cube.Cube) int {
	h := 0
	for _, t := range db.tables {
		v := t.Lookup(c)
		if v == int(Unvisited) {
			return Unreachable
		}
		if v > h {
			h = v
		}
	}
	return h
}

// Tables returns the tables in the order they were added.
func (db *Database) Tables() []*Table {
	return db.tables
}

// Table returns the table with the given pattern name, or nil.
func (db *Database) Table(name string) *Table {
	for _, t := range db.tables {
		if t.Pattern.Name() == name {
			return t
		}
	}
	return nil
}

// Build constructs one table per pattern. Up to workers tables are built
// at the same time; each table is written by a single goroutine.
func Build(ctx context.Context, patterns []*Pattern, workers int, opts BuildOptions) (*Database, error) {
	tables := make([]*Table, len(patterns))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, p := range patterns {
		g.Go(func() error {
			t, err := BuildTable(ctx, p, opts)
			if err != nil {
				return fmt.Errorf("failed to build %s: %w", p.Name(), err)
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return New(tables...), nil
}

// TablePath returns the file path of a pattern's table inside dir.
func TablePath(dir string, p *Pattern) string {
	return filepath.Join(dir, p.Name()+".pdb")
}

// Save writes every table to dir, one file per table.
func (db *Database) Save(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create table directory: %w", err)
	}
	for _, t := range db.tables {
		if err := SaveTable(TablePath(dir, t.Pattern), t); err != nil {
			return err
		}
	}
	return nil
}

// Load reads one table per pattern from dir. A missing or malformed
// file fails the whole load; there is no fallback to a weaker heuristic.
func Load(dir string, patterns []*Pattern) (*Database, error) {
	tables := make([]*Table, 0, len(patterns))
	for _, p := range patterns {
		t, err := LoadTable(TablePath(dir, p), p)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return New(tables...), nil
}
