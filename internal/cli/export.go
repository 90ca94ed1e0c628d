package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_solver/internal/storage"
	"github.com/SeamusWaldron/gocube_solver/pkg/types"
)

var (
	exportSolveID string
	exportFormat  string
	exportOutput  string
	exportLast    bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export solve data",
	Long:  `Export solve data in various formats.`,
}

var exportSolutionCmd = &cobra.Command{
	Use:   "solution",
	Short: "Export the solution of a solve",
	Long: `Export a recorded solution in text or JSON format.

Examples:
  gocube-solver export solution --last
  gocube-solver export solution --id <solve_id> --format json
  gocube-solver export solution --id <solve_id> --format txt -o solution.txt`,
	RunE: runExportSolution,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.AddCommand(exportSolutionCmd)
	exportSolutionCmd.Flags().StringVar(&exportSolveID, "id", "", "Solve ID to export")
	exportSolutionCmd.Flags().BoolVar(&exportLast, "last", false, "Export the last solve")
	exportSolutionCmd.Flags().StringVar(&exportFormat, "format", "txt", "Export format (txt, json)")
	exportSolutionCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

type moveJSON struct {
	Index    int    `json:"index"`
	Face     string `json:"face"`
	Amount   int    `json:"amount"`
	Notation string `json:"notation"`
	Label    string `json:"label"`
}

type solutionJSON struct {
	SolveID    string     `json:"solve_id"`
	CreatedAt  time.Time  `json:"created_at"`
	Scramble   string     `json:"scramble"`
	Solution   string     `json:"solution"`
	Labels     string     `json:"labels"`
	Length     int        `json:"length"`
	Moves      []moveJSON `json:"moves"`
	Nodes      int64      `json:"nodes_expanded"`
	DurationMs int64      `json:"duration_ms"`
}

// formatSolution renders a solved record as txt or json.
func formatSolution(s *storage.Solve, format string) (string, error) {
	if s.SolutionText == nil {
		return "", fmt.Errorf("solve %s has no solution", shortID(s.SolveID))
	}
	moves, err := types.ParseMoves(*s.SolutionText)
	if err != nil {
		return "", fmt.Errorf("failed to parse solution: %w", err)
	}

	switch strings.ToLower(format) {
	case "txt":
		return *s.SolutionText, nil

	case "json":
		out := solutionJSON{
			SolveID:    s.SolveID,
			CreatedAt:  s.CreatedAt,
			Scramble:   s.ScrambleText,
			Solution:   *s.SolutionText,
			Labels:     types.Labels(moves),
			Length:     len(moves),
			Moves:      make([]moveJSON, 0, len(moves)),
			Nodes:      s.NodesExpanded,
			DurationMs: s.DurationMs,
		}
		for i, m := range moves {
			out.Moves = append(out.Moves, moveJSON{
				Index:    i,
				Face:     m.Face().String(),
				Amount:   m.Amount(),
				Notation: m.Notation(),
				Label:    string(m.Label()),
			})
		}

		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data), nil

	default:
		return "", fmt.Errorf("unknown format: %s (use txt or json)", format)
	}
}

func runExportSolution(cmd *cobra.Command, args []string) error {
	if exportSolveID == "" && !exportLast {
		return fmt.Errorf("specify --id or --last")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	var ids []string
	if exportSolveID != "" {
		ids = []string{exportSolveID}
	}
	s, err := findSolve(storage.NewSolveRepository(db), ids, exportLast)
	if err != nil {
		return err
	}

	output, err := formatSolution(s, exportFormat)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		fmt.Println(output)
		return nil
	}

	dir := filepath.Dir(exportOutput)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(exportOutput, []byte(output+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Printf("Exported to %s\n", exportOutput)
	return nil
}
