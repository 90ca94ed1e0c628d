package cli

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_solver/internal/analysis"
	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/internal/pdb"
	"github.com/SeamusWaldron/gocube_solver/internal/search"
	"github.com/SeamusWaldron/gocube_solver/internal/storage"
	"github.com/SeamusWaldron/gocube_solver/pkg/types"
)

var (
	solveMoves    string
	solveRandom   int
	solveSeed     int64
	solveWorkers  int
	solveNoPrune  bool
	solveMaxDepth int
	solveNoSave   bool
	solveShow     bool
)

var solveCmd = &cobra.Command{
	Use:   "solve [moves...]",
	Short: "Solve a scramble",
	Long: `Find a shortest solution for a scramble.

The scramble is given as standard notation (L R U D F B with ' and 2
suffixes) or as a string of move labels (a-r). Use --random to generate
a random scramble instead.

Examples:
  gocube-solver solve "R U R' U'"
  gocube-solver solve --moves "F2 L' D B"
  gocube-solver solve --random 12 --seed 7`,
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().StringVar(&solveMoves, "moves", "", "Scramble in notation or labels")
	solveCmd.Flags().IntVar(&solveRandom, "random", 0, "Generate a random scramble of this many moves")
	solveCmd.Flags().Int64Var(&solveSeed, "seed", 0, "Seed for --random (default: time based)")
	solveCmd.Flags().IntVar(&solveWorkers, "workers", 0, "Parallel search workers (default: from config)")
	solveCmd.Flags().BoolVar(&solveNoPrune, "no-prune", false, "Search all 18 moves at every node")
	solveCmd.Flags().IntVar(&solveMaxDepth, "max-depth", 0, "Give up beyond this many moves (default: from config)")
	solveCmd.Flags().BoolVar(&solveNoSave, "no-save", false, "Do not record the solve in the history")
	solveCmd.Flags().BoolVar(&solveShow, "show", false, "Draw the scrambled cube")
}

// parseScramble reads notation, or labels when the input is a single
// lowercase word.
func parseScramble(s string) ([]types.Move, error) {
	s = strings.TrimSpace(s)
	if s != "" && !strings.ContainsAny(s, " \t") && strings.ToLower(s) == s {
		return types.ParseLabels(s)
	}
	return types.ParseMoves(s)
}

// scrambleInput picks the scramble from --random, --moves or the arguments.
func scrambleInput(args []string) ([]types.Move, error) {
	if solveRandom > 0 {
		seed := solveSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return cube.RandomMoves(rand.New(rand.NewSource(seed)), solveRandom), nil
	}

	text := solveMoves
	if text == "" {
		text = strings.Join(args, " ")
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("specify a scramble, --moves or --random")
	}
	moves, err := parseScramble(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scramble %q: %w", text, err)
	}
	return moves, nil
}

// loadHeuristic loads the configured tables from the table directory.
func loadHeuristic(logger *log.Logger) (*pdb.Database, error) {
	patterns, err := pdb.PatternsByName(appConfig.Tables)
	if err != nil {
		return nil, err
	}

	prog := newProgress(logger)
	db, err := pdb.Load(appConfig.TableDir, patterns)
	if err != nil {
		return nil, fmt.Errorf("failed to load pattern tables (run 'gocube-solver pdb build' first): %w", err)
	}
	if logger.GetLevel() <= log.DebugLevel {
		prog.done(fmt.Sprintf("Loaded %d tables", len(patterns)))
	}
	return db, nil
}

// solverOptions merges flags over the config.
func solverOptions(cmd *cobra.Command, hook func(search.Iteration)) []search.Option {
	workers := appConfig.Workers
	if solveWorkers > 0 {
		workers = solveWorkers
	}
	maxDepth := appConfig.MaxDepth
	if cmd.Flags().Changed("max-depth") {
		maxDepth = solveMaxDepth
	}
	pruning := appConfig.Pruning && !solveNoPrune

	return []search.Option{
		search.WithPruning(pruning),
		search.WithWorkers(workers),
		search.WithMaxDepth(maxDepth),
		search.WithIterationHook(hook),
	}
}

func runSolve(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	scramble, err := scrambleInput(args)
	if err != nil {
		return err
	}
	start := cube.Solved()
	start.ApplyMoves(scramble)

	fmt.Printf("%s %s\n", labelStyle.Render("Scramble:"), types.FormatMoves(scramble))
	if fields := scrambleRedundancy(scramble); fields != nil {
		logger.Info("scramble simplifies", fields...)
	}
	if solveShow {
		fmt.Println(renderCube(&start))
	}

	heuristic, err := loadHeuristic(logger)
	if err != nil {
		return err
	}

	var iterations []storage.IterationRecord
	hook := func(it search.Iteration) {
		logger.Debug("iteration",
			"n", it.Number, "limit", it.Limit, "expanded", formatCount(it.Expanded), "found", it.Found)
		rec := storage.IterationRecord{
			Number:        it.Number,
			CostLimit:     it.Limit,
			NodesExpanded: it.Expanded,
			Found:         it.Found,
		}
		if it.Next < search.Infinity {
			next := it.Next
			rec.NextLimit = &next
		}
		iterations = append(iterations, rec)
	}

	solver := search.NewSolver(heuristic, solverOptions(cmd, hook)...)
	logger.Info("searching", "heuristic", heuristic.Heuristic(&start))

	res, solveErr := solver.Solve(ctx, &start)

	if !solveNoSave && !errors.Is(solveErr, context.Canceled) {
		if err := recordSolve(scramble, res, solveErr, iterations); err != nil {
			logger.Warn("could not record solve", "err", err)
		}
	}
	if solveErr != nil {
		return fmt.Errorf("failed to solve: %w", solveErr)
	}

	printResult(res)
	return nil
}

func printResult(res search.Result) {
	fmt.Printf("%s %s\n", labelStyle.Render("Solution:"), moveStyle.Render(types.FormatMoves(res.Moves)))
	fmt.Printf("Labels:   %s\n", types.Labels(res.Moves))
	fmt.Printf("Length:   %d moves\n", res.Length)
	fmt.Println()

	limits := make([]string, len(res.Limits))
	for i, l := range res.Limits {
		limits[i] = fmt.Sprintf("%d", l)
	}
	fmt.Println(statusStyle.Render(fmt.Sprintf("Iterations: %d (limits %s)", res.Iterations, strings.Join(limits, ", "))))
	fmt.Println(statusStyle.Render(fmt.Sprintf("Nodes:      %s", formatCount(res.Expanded))))
	fmt.Println(statusStyle.Render(fmt.Sprintf("Time:       %s", formatDuration(res.Duration))))
}

// recordSolve stores the outcome and its iterations in the history.
func recordSolve(scramble []types.Move, res search.Result, solveErr error, iterations []storage.IterationRecord) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	s := &storage.Solve{
		ScrambleText:  types.FormatMoves(scramble),
		Iterations:    res.Iterations,
		NodesExpanded: res.Expanded,
		DurationMs:    res.Duration.Milliseconds(),
		RootHeuristic: res.RootHeuristic,
		Status:        storage.StatusSolved,
	}
	if solveErr != nil {
		msg := solveErr.Error()
		s.Status = storage.StatusFailed
		s.ErrorText = &msg
	} else {
		text := types.FormatMoves(res.Moves)
		s.SolutionText = &text
		s.SolutionLength = &res.Length
	}

	id, err := storage.NewSolveRepository(db).Create(s)
	if err != nil {
		return err
	}
	if len(iterations) > 0 {
		if err := storage.NewIterationRepository(db).CreateBatch(id, iterations); err != nil {
			return err
		}
	}
	return nil
}

// scrambleRedundancy returns log fields describing how the scramble
// shortens, or nil when it is already minimal.
func scrambleRedundancy(scramble []types.Move) []any {
	simplified := analysis.OptimizeMoves(scramble)
	if len(simplified) == len(scramble) {
		return nil
	}
	report := analysis.FindRedundancies(scramble)
	return []any{
		"moves", types.FormatMoves(simplified),
		"length", len(simplified),
		"cancellations", report.Cancellations(),
		"merges", report.Merges(),
		"efficiency", fmt.Sprintf("%.2f", analysis.Efficiency(scramble, simplified)),
	}
}
