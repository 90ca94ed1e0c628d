// Package search finds optimal move sequences with iterative-deepening
// A* over a pruned move tree.
package search

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/pkg/types"
)

// Infinity is the candidate limit of a branch that can never reach the
// goal. A heuristic returning Infinity or more marks a dead state.
const Infinity = math.MaxInt32

// Heuristic estimates the number of moves left to solve a cube. It must
// never overestimate and must return 0 for the solved cube.
type Heuristic interface {
	Heuristic(c *cube.Cube) int
}

// HeuristicFunc adapts a function to the Heuristic interface.
type HeuristicFunc func(c *cube.Cube) int

// Heuristic calls f(c).
func (f HeuristicFunc) Heuristic(c *cube.Cube) int { return f(c) }

// Iteration describes one finished depth-first pass.
type Iteration struct {
	Number   int
	Limit    int
	Next     int // Infinity when the pass found a solution or nothing
	Expanded int64
	Found    bool
}

// Result is a solution with search statistics.
type Result struct {
	Moves         []types.Move
	Length        int
	Iterations    int
	Expanded      int64
	Limits        []int
	RootHeuristic int
	Duration      time.Duration
}

// Solver runs IDA* with an injected heuristic.
type Solver struct {
	h   Heuristic
	cfg *config
}

// NewSolver creates a solver. The heuristic must stay valid for the
// duration of every Solve call.
func NewSolver(h Heuristic, opts ...Option) *Solver {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Solver{h: h, cfg: cfg}
}

// Solve returns a shortest move sequence taking c to the solved state.
// Cancellation is checked between iterations; a running pass is not
// interrupted.
func (s *Solver) Solve(ctx context.Context, c *cube.Cube) (res Result, err error) {
	if err := c.Validate(); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidCube, err)
	}

	start := time.Now()
	defer func() { res.Duration = time.Since(start) }()

	root := *c
	limit := s.heuristic(&root)
	res.RootHeuristic = limit

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if limit >= Infinity {
			return res, ErrExhausted
		}
		if s.cfg.maxDepth > 0 && limit > s.cfg.maxDepth {
			return res, fmt.Errorf("%w: limit %d exceeds %d", ErrDepthLimit, limit, s.cfg.maxDepth)
		}

		res.Iterations++
		res.Limits = append(res.Limits, limit)

		var (
			moves    []types.Move
			found    bool
			next     int
			expanded int64
		)
		if s.cfg.workers > 1 {
			moves, found, next, expanded = s.iterateParallel(root, limit)
		} else {
			moves, found, next, expanded = s.iterate(root, limit)
		}
		res.Expanded += expanded

		if s.cfg.onIteration != nil {
			s.cfg.onIteration(Iteration{
				Number:   res.Iterations,
				Limit:    limit,
				Next:     next,
				Expanded: expanded,
				Found:    found,
			})
		}

		if found {
			res.Moves = moves
			res.Length = len(moves)
			return res, nil
		}
		limit = next
	}
}

func (s *Solver) heuristic(c *cube.Cube) int {
	h := s.h.Heuristic(c)
	if h >= Infinity {
		return Infinity
	}
	return h
}

// iterate runs one bounded depth-first pass from the root.
func (s *Solver) iterate(root cube.Cube, limit int) ([]types.Move, bool, int, int64) {
	d := &dfs{solver: s, arena: NewArena(root), limit: limit}
	goal, next := d.run(0)
	if goal < 0 {
		return nil, false, next, d.expanded
	}
	return reverse(d.arena.ExtractSolution(goal)), true, Infinity, d.expanded
}

// iterateParallel searches the root's children as independent subtrees.
// The first worker to reach the goal stops the others; when several
// finish with a solution, the lowest move index wins.
func (s *Solver) iterateParallel(root cube.Cube, limit int) ([]types.Move, bool, int, int64) {
	if root.IsSolved() {
		return []types.Move{}, true, Infinity, 0
	}
	if s.heuristic(&root) > limit {
		return nil, false, s.heuristic(&root), 0
	}

	top := NewArena(root)
	first, last := top.Expand(0, s.cfg.pruning)
	children := make([]Node, 0, last-first)
	for i := first; i < last; i++ {
		children = append(children, *top.Node(i))
	}

	var (
		stop     atomic.Bool
		expanded atomic.Int64
	)
	type branch struct {
		moves []types.Move
		found bool
		next  int
	}
	results := make([]branch, len(children))

	var g errgroup.Group
	g.SetLimit(s.cfg.workers)
	for i, child := range children {
		g.Go(func() error {
			if stop.Load() {
				results[i] = branch{next: Infinity}
				return nil
			}
			arena := NewArena(root)
			child.Parent = 0
			idx := arena.Push(child)
			d := &dfs{solver: s, arena: arena, limit: limit, stop: &stop}
			goal, next := d.run(idx)
			expanded.Add(d.expanded)
			if goal >= 0 {
				stop.Store(true)
				results[i] = branch{moves: reverse(arena.ExtractSolution(goal)), found: true}
				return nil
			}
			results[i] = branch{next: next}
			return nil
		})
	}
	_ = g.Wait()

	total := expanded.Load() + 1
	next := Infinity
	for _, r := range results {
		if r.found {
			return r.moves, true, Infinity, total
		}
		next = min(next, r.next)
	}
	return nil, false, next, total
}

// dfs is the state of one bounded depth-first pass.
type dfs struct {
	solver   *Solver
	arena    *Arena
	limit    int
	stop     *atomic.Bool
	expanded int64
}

// run searches below node i. It returns the goal's arena index, or -1
// together with the smallest f-cost that exceeded the limit.
func (d *dfs) run(i int) (int, int) {
	if d.stop != nil && d.stop.Load() {
		return -1, Infinity
	}

	n := d.arena.Node(i)
	h := d.solver.heuristic(&n.State)
	if h >= Infinity {
		return -1, Infinity
	}
	f := n.Cost + h
	if f > d.limit {
		return -1, f
	}
	if n.State.IsSolved() {
		return i, f
	}

	d.expanded++
	start, end := d.arena.Expand(i, d.solver.cfg.pruning)
	next := Infinity
	for c := start; c < end; c++ {
		goal, candidate := d.run(c)
		if goal >= 0 {
			return goal, candidate
		}
		next = min(next, candidate)
	}
	d.arena.Truncate(start)
	return -1, next
}
