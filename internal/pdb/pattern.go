// Package pdb builds, stores and queries pattern databases: tables that
// map the ranked configuration of a subset of pieces to the exact number
// of moves needed to solve that subset. The maximum over several tables
// is an admissible heuristic for the whole cube.
package pdb

import (
	"fmt"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/internal/rank"
)

// Kind selects which piece type a pattern tracks.
type Kind uint8

const (
	KindCorners Kind = 1
	KindEdges   Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindCorners:
		return "corners"
	case KindEdges:
		return "edges"
	default:
		return "unknown"
	}
}

// Pattern is an ordered set of tracked pieces of one kind. Pieces are
// named by location index: 0..7 for corners, 0..11 for edges (see
// cube.CornerSlot and cube.EdgeSlot).
type Pattern struct {
	name   string
	kind   Kind
	pieces []int

	n        int // locations of this kind
	base     int // orientation states per piece
	homes    []int
	tracked  [32]int8 // home slot -> index in pieces, -1 if untracked
	oriCount int
	size     int
}

// Standard patterns: all corners and two disjoint halves of the edges.
var (
	CornersPattern = MustPattern("corners", KindCorners, []int{0, 1, 2, 3, 4, 5, 6, 7})
	// Edges on the left face and the top-front and front-bottom edges.
	Edges1Pattern = MustPattern("edges1", KindEdges, []int{0, 1, 2, 3, 8, 9})
	// Edges on the right face and the bottom-back and back-top edges.
	Edges2Pattern = MustPattern("edges2", KindEdges, []int{4, 5, 6, 7, 10, 11})
)

// DefaultPatterns returns the three standard patterns.
func DefaultPatterns() []*Pattern {
	return []*Pattern{CornersPattern, Edges1Pattern, Edges2Pattern}
}

// PatternsByName resolves standard pattern names, keeping their order.
func PatternsByName(names []string) ([]*Pattern, error) {
	out := make([]*Pattern, 0, len(names))
	seen := make(map[string]bool)
	for _, name := range names {
		var found *Pattern
		for _, p := range DefaultPatterns() {
			if p.Name() == name {
				found = p
			}
		}
		if found == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPattern, name)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, found)
	}
	return out, nil
}

// NewPattern validates the piece list and precomputes the rank domain.
func NewPattern(name string, kind Kind, pieces []int) (*Pattern, error) {
	p := &Pattern{name: name, kind: kind, pieces: append([]int(nil), pieces...)}
	switch kind {
	case KindCorners:
		p.n, p.base = cube.NumCorners, 3
	case KindEdges:
		p.n, p.base = cube.NumEdges, 2
	default:
		return nil, fmt.Errorf("pattern %s: unknown kind %d", name, kind)
	}
	if len(pieces) == 0 || len(pieces) > p.n {
		return nil, fmt.Errorf("pattern %s: %d pieces, want 1..%d", name, len(pieces), p.n)
	}

	for i := range p.tracked {
		p.tracked[i] = -1
	}
	p.homes = make([]int, len(pieces))
	for j, piece := range pieces {
		if piece < 0 || piece >= p.n {
			return nil, fmt.Errorf("pattern %s: piece %d out of range", name, piece)
		}
		home := p.slotOf(piece)
		if p.tracked[home] >= 0 {
			return nil, fmt.Errorf("pattern %s: piece %d listed twice", name, piece)
		}
		p.tracked[home] = int8(j)
		p.homes[j] = home
	}

	m := len(pieces)
	p.oriCount = rank.Pow(p.base, m)
	p.size = rank.Count(p.n-m, p.n) * p.oriCount
	return p, nil
}

// MustPattern is NewPattern for package-level definitions.
func MustPattern(name string, kind Kind, pieces []int) *Pattern {
	p, err := NewPattern(name, kind, pieces)
	if err != nil {
		panic(err)
	}
	return p
}

// Name returns the pattern name, also used for its file name.
func (p *Pattern) Name() string { return p.name }

// Kind returns the tracked piece type.
func (p *Pattern) Kind() Kind { return p.kind }

// Pieces returns a copy of the tracked piece list.
func (p *Pattern) Pieces() []int { return append([]int(nil), p.pieces...) }

// Size returns the number of ranks: n!/(n-m)! * base^m.
func (p *Pattern) Size() int { return p.size }

// Same reports whether two patterns track the same pieces in the same order.
func (p *Pattern) Same(o *Pattern) bool {
	if p.kind != o.kind || len(p.pieces) != len(o.pieces) {
		return false
	}
	for i := range p.pieces {
		if p.pieces[i] != o.pieces[i] {
			return false
		}
	}
	return true
}

func (p *Pattern) String() string {
	return fmt.Sprintf("%s(%s %v)", p.name, p.kind, p.pieces)
}

func (p *Pattern) slotOf(loc int) int {
	if p.kind == KindCorners {
		return cube.CornerSlot(loc)
	}
	return cube.EdgeSlot(loc)
}

// Rank maps the tracked pieces of c to an index in [0, Size()). It panics
// when a tracked piece is missing or has an orientation its slot cannot hold.
func (p *Pattern) Rank(c *cube.Cube) int {
	var loc, digits [cube.NumEdges]int
	m := len(p.pieces)
	found := 0
	for i := 0; i < p.n; i++ {
		s := p.slotOf(i)
		v := c.Slot(s)
		j := p.tracked[v.Position()]
		if j < 0 {
			continue
		}
		loc[j] = i
		digits[j] = p.digit(s, v.Axis())
		found++
	}
	if found != m {
		panic(fmt.Sprintf("pdb: pattern %s found %d of %d tracked pieces", p.name, found, m))
	}

	var seq, inv [cube.NumEdges]int
	var used [cube.NumEdges]bool
	for j := 0; j < m; j++ {
		seq[p.n-m+j] = loc[j]
		used[loc[j]] = true
	}
	k := 0
	for v := 0; v < p.n; v++ {
		if !used[v] {
			seq[k] = v
			k++
		}
	}
	rank.Inverse(seq[:p.n], inv[:p.n])

	perm := rank.Rank(p.n-m, p.n, seq[:p.n], inv[:p.n])
	return perm*p.oriCount + rank.RankDigits(digits[:m], p.base)
}

// Unrank rebuilds a partial cube from a rank. Tracked pieces are placed
// with their orientation; every other slot is cube.DontCare.
func (p *Pattern) Unrank(r int) cube.Cube {
	if r < 0 || r >= p.size {
		panic(fmt.Sprintf("pdb: rank %d outside pattern %s domain %d", r, p.name, p.size))
	}
	m := len(p.pieces)

	var seq, digits [cube.NumEdges]int
	rank.Identity(seq[:p.n])
	rank.Unrank(p.n-m, p.n, r/p.oriCount, seq[:p.n])
	rank.UnrankDigits(r%p.oriCount, p.base, digits[:m])

	c := cube.Empty()
	for j := 0; j < m; j++ {
		s := p.slotOf(seq[p.n-m+j])
		c.SetSlot(s, cube.NewCubie(p.homes[j], p.axis(s, digits[j])))
	}
	return c
}

// digit maps an orientation axis to its radix digit. Corners use
// Z=0, Y=1, X=2. Edges are relative to their slot: on the side-face rings
// X is 1, on the middle slots Y is 1; the slot's other axis is 0.
func (p *Pattern) digit(s int, a cube.Axis) int {
	if p.kind == KindCorners {
		switch a {
		case cube.AxisZ:
			return 0
		case cube.AxisY:
			return 1
		case cube.AxisX:
			return 2
		}
		panic(fmt.Sprintf("pdb: corner in slot %d has orientation %s", s, a))
	}

	axes := cube.EdgeAxes(s)
	if !a.Valid() || a&axes == 0 {
		panic(fmt.Sprintf("pdb: edge in slot %d has orientation %s", s, a))
	}
	if a == edgeFlipAxis(s) {
		return 1
	}
	return 0
}

// axis is the inverse of digit.
func (p *Pattern) axis(s, d int) cube.Axis {
	if p.kind == KindCorners {
		return [3]cube.Axis{cube.AxisZ, cube.AxisY, cube.AxisX}[d]
	}
	flip := edgeFlipAxis(s)
	if d == 1 {
		return flip
	}
	return cube.EdgeAxes(s) &^ flip
}

func edgeFlipAxis(s int) cube.Axis {
	if s >= 16 {
		return cube.AxisY
	}
	return cube.AxisX
}
