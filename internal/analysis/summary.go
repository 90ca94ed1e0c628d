package analysis

import (
	"sort"

	"github.com/SeamusWaldron/gocube_solver/internal/storage"
	"github.com/SeamusWaldron/gocube_solver/pkg/types"
)

// HistorySummary contains statistics over a set of recorded solves.
type HistorySummary struct {
	Solves          int         `json:"solves"`
	Solved          int         `json:"solved"`
	Failed          int         `json:"failed"`
	MeanLength      float64     `json:"mean_length"`
	MinLength       int         `json:"min_length"`
	MaxLength       int         `json:"max_length"`
	LengthCounts    map[int]int `json:"length_counts"`
	TotalNodes      int64       `json:"total_nodes"`
	TotalDurationMs int64       `json:"total_duration_ms"`
	NodesPerSecond  float64     `json:"nodes_per_second"`
	// MeanHeuristicGap is the mean of solution length minus the heuristic
	// at the scrambled state.
	MeanHeuristicGap float64 `json:"mean_heuristic_gap"`
}

// Summarize computes statistics for solves. Failed solves count towards
// the search effort but not the length statistics.
func Summarize(solves []storage.Solve) *HistorySummary {
	s := &HistorySummary{
		Solves:       len(solves),
		LengthCounts: make(map[int]int),
	}

	var totalLength, totalGap int
	for _, solve := range solves {
		s.TotalNodes += solve.NodesExpanded
		s.TotalDurationMs += solve.DurationMs

		if solve.Status != storage.StatusSolved || solve.SolutionLength == nil {
			s.Failed++
			continue
		}

		n := *solve.SolutionLength
		if s.Solved == 0 || n < s.MinLength {
			s.MinLength = n
		}
		if n > s.MaxLength {
			s.MaxLength = n
		}
		s.Solved++
		s.LengthCounts[n]++
		totalLength += n
		totalGap += n - solve.RootHeuristic
	}

	if s.Solved > 0 {
		s.MeanLength = float64(totalLength) / float64(s.Solved)
		s.MeanHeuristicGap = float64(totalGap) / float64(s.Solved)
	}
	if s.TotalDurationMs > 0 {
		s.NodesPerSecond = float64(s.TotalNodes) / (float64(s.TotalDurationMs) / 1000.0)
	}

	return s
}

// Lengths returns the solution lengths present, in increasing order.
func (s *HistorySummary) Lengths() []int {
	lengths := make([]int, 0, len(s.LengthCounts))
	for n := range s.LengthCounts {
		lengths = append(lengths, n)
	}
	sort.Ints(lengths)
	return lengths
}

// MovementProfile analyzes which faces and turn amounts a set of solutions uses.
type MovementProfile struct {
	FaceCounts   map[types.Face]int `json:"face_counts"`
	AmountCounts map[int]int        `json:"amount_counts"`
	MostUsedFace types.Face         `json:"most_used_face"`
	Total        int                `json:"total"`
}

// AnalyzeMovementProfile counts faces and turn amounts over sequences.
func AnalyzeMovementProfile(sequences ...[]types.Move) *MovementProfile {
	profile := &MovementProfile{
		FaceCounts:   make(map[types.Face]int),
		AmountCounts: make(map[int]int),
	}

	for _, moves := range sequences {
		for _, m := range moves {
			profile.FaceCounts[m.Face()]++
			profile.AmountCounts[m.Amount()]++
			profile.Total++
		}
	}

	// Iterate in face order so ties resolve the same way every time.
	maxFaceCount := 0
	for _, f := range types.Faces {
		if profile.FaceCounts[f] > maxFaceCount {
			maxFaceCount = profile.FaceCounts[f]
			profile.MostUsedFace = f
		}
	}

	return profile
}
