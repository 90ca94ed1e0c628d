package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_solver/internal/analysis"
	"github.com/SeamusWaldron/gocube_solver/internal/storage"
	"github.com/SeamusWaldron/gocube_solver/pkg/types"
)

var (
	historyLimit      int
	historyStatsLimit int
	historyLast       bool
	replaySpeed       float64
	replayStep        bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse recorded solves",
	Long:  `Commands for listing, inspecting, replaying and deleting recorded solves.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent solves",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [solve-id]",
	Short: "Show solve details",
	Long:  `Display a recorded solve with its solution and the cost limit of every search iteration.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistoryShow,
}

var historyReplayCmd = &cobra.Command{
	Use:   "replay [solve-id]",
	Short: "Step through a solution",
	Long: `Replay a recorded solution move by move, starting from the scrambled cube.

Usage:
  gocube-solver history replay --last
  gocube-solver history replay <id> --speed 2
  gocube-solver history replay <id> --step`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistoryReplay,
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize recorded solves",
	Long:  `Display solution length distribution, search effort and face usage over recent solves.`,
	RunE:  runHistoryStats,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <solve-id>",
	Short: "Delete a recorded solve",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.AddCommand(historyListCmd)
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of solves to show")

	historyCmd.AddCommand(historyShowCmd)
	historyShowCmd.Flags().BoolVar(&historyLast, "last", false, "Show the most recent solve")

	historyCmd.AddCommand(historyReplayCmd)
	historyReplayCmd.Flags().BoolVar(&historyLast, "last", false, "Replay the most recent solve")
	historyReplayCmd.Flags().Float64VarP(&replaySpeed, "speed", "s", 1.0, "Moves per second")
	historyReplayCmd.Flags().BoolVarP(&replayStep, "step", "t", false, "Step through moves manually")

	historyCmd.AddCommand(historyStatsCmd)
	historyStatsCmd.Flags().IntVarP(&historyStatsLimit, "limit", "n", 1000, "Number of recent solves to include")

	historyCmd.AddCommand(historyDeleteCmd)
}

// findSolve resolves a solve from an ID argument or --last.
func findSolve(repo *storage.SolveRepository, args []string, last bool) (*storage.Solve, error) {
	var (
		s   *storage.Solve
		err error
	)
	switch {
	case last:
		s, err = repo.GetLast()
		if err == nil && s == nil {
			return nil, fmt.Errorf("no solves found")
		}
	case len(args) > 0:
		s, err = repo.Get(args[0])
		if err == nil && s == nil {
			return nil, fmt.Errorf("solve not found: %s", args[0])
		}
	default:
		return nil, fmt.Errorf("please provide a solve ID or use --last")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get solve: %w", err)
	}
	return s, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	solves, err := storage.NewSolveRepository(db).List(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list solves: %w", err)
	}

	if len(solves) == 0 {
		fmt.Println("No solves recorded yet")
		fmt.Println("Solve a scramble with: gocube-solver solve --random 10")
		return nil
	}

	fmt.Printf("Recent solves (showing %d):\n", len(solves))
	fmt.Println()
	fmt.Printf("%-8s  %-19s  %-6s  %-6s  %-10s  %s\n", "ID", "Created", "Status", "Length", "Time", "Scramble")
	fmt.Println("--------  -------------------  ------  ------  ----------  --------")

	for _, s := range solves {
		length := "-"
		if s.SolutionLength != nil {
			length = fmt.Sprintf("%d", *s.SolutionLength)
		}
		status := s.Status
		if status == storage.StatusFailed {
			status = errorStyle.Render(fmt.Sprintf("%-6s", status))
		}
		scramble := s.ScrambleText
		if len(scramble) > 40 {
			scramble = scramble[:37] + "..."
		}

		fmt.Printf("%-8s  %-19s  %-6s  %-6s  %-10s  %s\n",
			shortID(s.SolveID),
			s.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			status, length,
			formatDuration(time.Duration(s.DurationMs)*time.Millisecond),
			scramble)
	}

	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := findSolve(storage.NewSolveRepository(db), args, historyLast)
	if err != nil {
		return err
	}
	iterations, err := storage.NewIterationRepository(db).GetBySolve(s.SolveID)
	if err != nil {
		return fmt.Errorf("failed to get iterations: %w", err)
	}

	fmt.Println("Solve Details")
	fmt.Println("=============")
	fmt.Println()
	fmt.Printf("ID:        %s\n", s.SolveID)
	fmt.Printf("Created:   %s\n", s.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Scramble:  %s\n", s.ScrambleText)
	if s.SolutionText != nil {
		fmt.Printf("Solution:  %s\n", moveStyle.Render(*s.SolutionText))
		fmt.Printf("Length:    %d moves\n", *s.SolutionLength)
	}
	if s.ErrorText != nil {
		fmt.Printf("Error:     %s\n", errorStyle.Render(*s.ErrorText))
	}
	fmt.Println()

	fmt.Println("Statistics")
	fmt.Println("----------")
	fmt.Printf("Heuristic:  %d\n", s.RootHeuristic)
	fmt.Printf("Iterations: %d\n", s.Iterations)
	fmt.Printf("Nodes:      %s\n", formatCount(s.NodesExpanded))
	fmt.Printf("Time:       %s\n", formatDuration(time.Duration(s.DurationMs)*time.Millisecond))
	if s.DurationMs > 0 {
		fmt.Printf("Rate:       %s nodes/s\n", formatCount(s.NodesExpanded*1000/s.DurationMs))
	}

	if len(iterations) > 0 {
		fmt.Println()
		fmt.Println("Iterations")
		fmt.Println("----------")
		fmt.Printf("%-4s  %-5s  %-5s  %14s  %s\n", "#", "Limit", "Next", "Nodes", "")
		for _, it := range iterations {
			next := "-"
			if it.NextLimit != nil {
				next = fmt.Sprintf("%d", *it.NextLimit)
			}
			found := ""
			if it.Found {
				found = moveStyle.Render("found")
			}
			fmt.Printf("%-4d  %-5d  %-5s  %14s  %s\n", it.Number, it.CostLimit, next, formatCount(it.NodesExpanded), found)
		}
	}

	return nil
}

func runHistoryReplay(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := findSolve(storage.NewSolveRepository(db), args, historyLast)
	if err != nil {
		return err
	}
	if s.SolutionText == nil {
		return fmt.Errorf("solve %s has no solution to replay", shortID(s.SolveID))
	}

	scramble, err := types.ParseMoves(s.ScrambleText)
	if err != nil {
		return fmt.Errorf("failed to parse scramble: %w", err)
	}
	solution, err := types.ParseMoves(*s.SolutionText)
	if err != nil {
		return fmt.Errorf("failed to parse solution: %w", err)
	}

	model := newReplayModel(scramble, solution, replaySpeed, replayStep)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("replay error: %w", err)
	}
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := storage.NewSolveRepository(db)
	s, err := findSolve(repo, args, false)
	if err != nil {
		return err
	}
	if err := repo.Delete(s.SolveID); err != nil {
		return err
	}

	fmt.Printf("Deleted solve %s\n", shortID(s.SolveID))
	return nil
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	solves, err := storage.NewSolveRepository(db).List(historyStatsLimit)
	if err != nil {
		return fmt.Errorf("failed to list solves: %w", err)
	}
	if len(solves) == 0 {
		fmt.Println("No solves recorded yet")
		return nil
	}

	summary := analysis.Summarize(solves)

	var solutions [][]types.Move
	for _, s := range solves {
		if s.SolutionText == nil {
			continue
		}
		moves, err := types.ParseMoves(*s.SolutionText)
		if err != nil {
			return fmt.Errorf("solve %s: failed to parse solution: %w", shortID(s.SolveID), err)
		}
		solutions = append(solutions, moves)
	}
	profile := analysis.AnalyzeMovementProfile(solutions...)

	fmt.Print(formatSummary(summary, profile))
	return nil
}

// formatSummary renders history statistics as text.
func formatSummary(s *analysis.HistorySummary, p *analysis.MovementProfile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Solves:     %d (%d solved, %d failed)\n", s.Solves, s.Solved, s.Failed)
	if s.Solved > 0 {
		fmt.Fprintf(&b, "Length:     mean %.2f, min %d, max %d\n", s.MeanLength, s.MinLength, s.MaxLength)
		fmt.Fprintf(&b, "Heuristic:  mean gap %.2f moves\n", s.MeanHeuristicGap)
	}
	fmt.Fprintf(&b, "Nodes:      %s\n", formatCount(s.TotalNodes))
	fmt.Fprintf(&b, "Time:       %s\n", formatDuration(time.Duration(s.TotalDurationMs)*time.Millisecond))
	if s.NodesPerSecond > 0 {
		fmt.Fprintf(&b, "Rate:       %s nodes/s\n", formatCount(int64(s.NodesPerSecond)))
	}

	if lengths := s.Lengths(); len(lengths) > 0 {
		b.WriteString("\nLengths\n-------\n")
		for _, n := range lengths {
			count := s.LengthCounts[n]
			fmt.Fprintf(&b, "  %2d  %5d  %s\n", n, count, moveStyle.Render(strings.Repeat("█", min(count, 40))))
		}
	}

	if p.Total > 0 {
		b.WriteString("\nFaces\n-----\n")
		for _, f := range types.Faces {
			fmt.Fprintf(&b, "  %-6s %5d  %4.1f%%\n", f.Name(), p.FaceCounts[f], 100*float64(p.FaceCounts[f])/float64(p.Total))
		}
	}

	return b.String()
}
