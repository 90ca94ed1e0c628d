// Package analysis provides move sequence and solve history analysis.
package analysis

import (
	"github.com/SeamusWaldron/gocube_solver/pkg/types"
)

// Redundancy is a pair of turns of the same face separated by nothing or
// by turns of the opposite face only, so the two can be combined.
type Redundancy struct {
	First  int
	Second int
	// Merged is the single turn the pair reduces to, or NoMove when the
	// pair cancels out.
	Merged types.Move
}

// Cancels reports whether the pair is the identity.
func (r Redundancy) Cancels() bool {
	return r.Merged == types.NoMove
}

// RedundancyReport lists the redundant pairs of a sequence.
type RedundancyReport struct {
	Pairs  []Redundancy
	Wasted int // moves saved by resolving every pair
}

// Cancellations counts pairs that cancel out.
func (r *RedundancyReport) Cancellations() int {
	n := 0
	for _, p := range r.Pairs {
		if p.Cancels() {
			n++
		}
	}
	return n
}

// Merges counts pairs that reduce to one turn.
func (r *RedundancyReport) Merges() int {
	return len(r.Pairs) - r.Cancellations()
}

// mergeMoves combines two turns of the same face. ok is false when they
// cancel.
func mergeMoves(m1, m2 types.Move) (merged types.Move, ok bool) {
	total := (m1.Amount() + m2.Amount()) % 4
	if total == 0 {
		return types.NoMove, false
	}
	return types.NewMove(m1.Face(), total), true
}

// FindRedundancies scans a sequence for combinable pairs. Each move is
// counted in at most one pair.
func FindRedundancies(moves []types.Move) *RedundancyReport {
	report := &RedundancyReport{}
	used := make([]bool, len(moves))

	for i := range moves {
		if used[i] {
			continue
		}
		j := i + 1
		if j < len(moves) && moves[j].Face() == moves[i].Face().Partner() {
			j++
		}
		if j >= len(moves) || used[j] || moves[j].Face() != moves[i].Face() {
			continue
		}

		merged, ok := mergeMoves(moves[i], moves[j])
		if !ok {
			merged = types.NoMove
			report.Wasted += 2
		} else {
			report.Wasted++
		}
		report.Pairs = append(report.Pairs, Redundancy{First: i, Second: j, Merged: merged})
		used[i], used[j] = true, true
	}

	return report
}

// OptimizeMoves returns an equivalent sequence with cancellations and merges
// applied. Turns of opposite faces commute, so R L R becomes R2 L.
func OptimizeMoves(moves []types.Move) []types.Move {
	result := append([]types.Move(nil), moves...)
	for {
		next := optimizePass(result)
		if len(next) == len(result) {
			return next
		}
		result = next
	}
}

func optimizePass(moves []types.Move) []types.Move {
	result := make([]types.Move, 0, len(moves))

	for _, m := range moves {
		n := len(result)
		j := -1
		switch {
		case n > 0 && result[n-1].Face() == m.Face():
			j = n - 1
		case n > 1 && result[n-1].Face() == m.Face().Partner() && result[n-2].Face() == m.Face():
			j = n - 2
		}

		if j < 0 {
			result = append(result, m)
			continue
		}
		if merged, ok := mergeMoves(result[j], m); ok {
			result[j] = merged
		} else {
			result = append(result[:j], result[j+1:]...)
		}
	}

	return result
}

// Efficiency is the length of optimized relative to original. An empty
// original counts as fully efficient.
func Efficiency(original, optimized []types.Move) float64 {
	if len(original) == 0 {
		return 1
	}
	return float64(len(optimized)) / float64(len(original))
}
