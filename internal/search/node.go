package search

import (
	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/pkg/types"
)

// Node is one state in the move tree. Parent is an index into the same
// Arena, -1 at the root.
type Node struct {
	State  cube.Cube
	Parent int
	Action types.Move
	Cost   int
}

// Arena stores the nodes of the current depth-first path together with
// the pending siblings at each level. The search uses it as a stack.
type Arena struct {
	nodes []Node
}

// NewArena returns an arena holding only the root.
func NewArena(root cube.Cube) *Arena {
	a := &Arena{nodes: make([]Node, 0, 256)}
	a.nodes = append(a.nodes, Node{State: root, Parent: -1, Action: types.NoMove})
	return a
}

// Node returns the node at index i. The pointer is invalidated by the
// next Expand.
func (a *Arena) Node(i int) *Node {
	return &a.nodes[i]
}

// Len returns the number of nodes in the arena.
func (a *Arena) Len() int {
	return len(a.nodes)
}

// Truncate drops every node at index n and above.
func (a *Arena) Truncate(n int) {
	a.nodes = a.nodes[:n]
}

// Push appends a node and returns its index.
func (a *Arena) Push(n Node) int {
	a.nodes = append(a.nodes, n)
	return len(a.nodes) - 1
}

// Expand appends the children of node i and returns the index range
// [start, end) they occupy. With prune set, faces excluded by the
// node's action are skipped; otherwise all 18 moves are generated.
func (a *Arena) Expand(i int, prune bool) (start, end int) {
	start = len(a.nodes)
	parent := a.nodes[i]
	for _, f := range types.Faces {
		if prune && Excluded(parent.Action, f) {
			continue
		}
		next := parent.State
		for amount := 1; amount <= 3; amount++ {
			next.Turn(f, 1)
			a.nodes = append(a.nodes, Node{
				State:  next,
				Parent: i,
				Action: types.NewMove(f, amount),
				Cost:   parent.Cost + 1,
			})
		}
	}
	return start, len(a.nodes)
}

// Excluded reports whether face f may not follow move last. A face never
// follows itself, and of two opposite faces the first of the pair may
// not follow the second: after R, L is excluded; after L, R is allowed.
func Excluded(last types.Move, f types.Face) bool {
	if !last.Valid() {
		return false
	}
	lf := last.Face()
	if f == lf {
		return true
	}
	return lf.IsSecondOfPair() && f == lf.Partner()
}

// ExtractSolution returns the actions on the path from the root to node
// goal, in goal-to-root order.
func (a *Arena) ExtractSolution(goal int) []types.Move {
	var moves []types.Move
	for i := goal; i >= 0 && a.nodes[i].Parent >= 0; i = a.nodes[i].Parent {
		moves = append(moves, a.nodes[i].Action)
	}
	return moves
}

// reverse returns moves in the opposite order.
func reverse(moves []types.Move) []types.Move {
	out := make([]types.Move, len(moves))
	for i, m := range moves {
		out[len(moves)-1-i] = m
	}
	return out
}
