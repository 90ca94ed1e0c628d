package pdb

import (
	"context"
	"fmt"
	"time"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
)

// Unvisited marks a rank the search has not reached. After a complete
// build it marks configurations unreachable from the solved cube.
const Unvisited uint8 = 0xFF

// MaxBuildDepth is the largest BuildOptions.MaxDepth whose fill value
// still differs from Unvisited.
const MaxBuildDepth = int(Unvisited) - 2

// Table holds one cost per rank of its pattern.
type Table struct {
	Pattern *Pattern
	Costs   []uint8

	// BuildTime is set by BuildTable; loaded tables leave it zero.
	BuildTime time.Duration
}

// NewTable allocates a table with every entry Unvisited.
func NewTable(p *Pattern) *Table {
	costs := make([]uint8, p.Size())
	for i := range costs {
		costs[i] = Unvisited
	}
	return &Table{Pattern: p, Costs: costs}
}

// Lookup returns the stored cost for the configuration of c.
func (t *Table) Lookup(c *cube.Cube) int {
	return int(t.Costs[t.Pattern.Rank(c)])
}

// Progress reports one completed BFS level.
type Progress struct {
	Table      string
	Depth      int // cost assigned during this level
	Discovered int // entries first reached at Depth
	Visited    int // entries assigned so far
	Size       int
}

// BuildOptions tunes table construction.
type BuildOptions struct {
	// MaxDepth stops the BFS after assigning this cost. Entries still
	// unassigned then receive MaxDepth+1, which remains a lower bound.
	// Zero runs the BFS to completion.
	MaxDepth int

	// OnProgress, if set, is called after every level. Builds running
	// concurrently call it from several goroutines.
	OnProgress func(Progress)
}

// BuildTable fills a table by backward breadth-first search from the
// solved cube. Levels are processed in order: every entry holding cost d
// is unranked, its 18 successors are ranked, and entries not yet
// assigned receive d+1. The first assignment is the BFS distance.
func BuildTable(ctx context.Context, p *Pattern, opts BuildOptions) (*Table, error) {
	if opts.MaxDepth < 0 || opts.MaxDepth > MaxBuildDepth {
		return nil, fmt.Errorf("pattern %s: max depth %d outside [0, %d]", p.Name(), opts.MaxDepth, MaxBuildDepth)
	}

	start := time.Now()
	t := NewTable(p)
	goal := cube.Solved()
	t.Costs[p.Rank(&goal)] = 0
	visited := 1

	complete := false
	for depth := 0; ; depth++ {
		if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
			break
		}
		if depth+1 >= int(Unvisited) {
			return nil, fmt.Errorf("pattern %s: depth %d overflows table entries", p.Name(), depth+1)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		discovered := t.expandLevel(uint8(depth))
		visited += discovered
		if opts.OnProgress != nil {
			opts.OnProgress(Progress{
				Table:      p.Name(),
				Depth:      depth + 1,
				Discovered: discovered,
				Visited:    visited,
				Size:       p.Size(),
			})
		}
		if discovered == 0 {
			complete = true
			break
		}
	}

	if !complete {
		fill := uint8(opts.MaxDepth + 1)
		for i, v := range t.Costs {
			if v == Unvisited {
				t.Costs[i] = fill
			}
		}
	}
	t.BuildTime = time.Since(start)
	return t, nil
}

// expandLevel assigns depth+1 to every unassigned successor of an entry
// holding depth, and returns how many entries it assigned.
func (t *Table) expandLevel(depth uint8) int {
	p := t.Pattern
	next := depth + 1
	discovered := 0
	for r, v := range t.Costs {
		if v != depth {
			continue
		}
		c := p.Unrank(r)
		for _, s := range c.Successors() {
			sr := p.Rank(&s)
			if t.Costs[sr] == Unvisited {
				t.Costs[sr] = next
				discovered++
			}
		}
	}
	return discovered
}

// MaxValue returns the largest assigned cost.
func (t *Table) MaxValue() int {
	highest := 0
	for _, v := range t.Costs {
		if v != Unvisited && int(v) > highest {
			highest = int(v)
		}
	}
	return highest
}

// Histogram counts entries per cost. Unvisited entries are counted in
// the second return value.
func (t *Table) Histogram() ([]int, int) {
	var counts [256]int
	for _, v := range t.Costs {
		counts[v]++
	}
	hist := make([]int, t.MaxValue()+1)
	copy(hist, counts[:len(hist)])
	return hist, counts[Unvisited]
}

// Verify checks that the table fits its pattern and that the solved cube
// costs zero and nothing else does.
func (t *Table) Verify() error {
	if len(t.Costs) != t.Pattern.Size() {
		return fmt.Errorf("%w: %s has %d entries, want %d", ErrMalformedTable, t.Pattern.Name(), len(t.Costs), t.Pattern.Size())
	}
	goal := cube.Solved()
	g := t.Pattern.Rank(&goal)
	if t.Costs[g] != 0 {
		return fmt.Errorf("%w: %s solved entry is %d", ErrMalformedTable, t.Pattern.Name(), t.Costs[g])
	}
	for i, v := range t.Costs {
		if v == 0 && i != g {
			return fmt.Errorf("%w: %s entry %d is zero", ErrMalformedTable, t.Pattern.Name(), i)
		}
	}
	return nil
}
