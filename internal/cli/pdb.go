package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_solver/internal/pdb"
	"github.com/SeamusWaldron/gocube_solver/internal/storage"
)

var (
	pdbTables   []string
	pdbMaxDepth int
	pdbWorkers  int
	pdbTUI      bool
)

var pdbCmd = &cobra.Command{
	Use:   "pdb",
	Short: "Manage pattern databases",
	Long:  `Commands for building and checking the pattern tables the solver uses as its heuristic.`,
}

var pdbBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build pattern tables",
	Long: `Build pattern tables by breadth-first search from the solved cube and
save them to the table directory.

Available tables:
  corners - all 8 corners      (264,539,520 entries)
  edges1  - left and front edges (42,577,920 entries)
  edges2  - right and back edges (42,577,920 entries)

The full set needs about 350 MB of memory and disk. --max-depth stops the
search early and fills the rest of each table with max-depth+1, which
builds faster but gives a weaker heuristic.`,
	RunE: runPDBBuild,
}

var pdbInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "List built tables",
	Long:  `Display the registered pattern tables with their size, maximum value and build time.`,
	RunE:  runPDBInfo,
}

var pdbVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check table files",
	Long: `Load each table file, check it against its pattern and print the
distribution of its values.`,
	RunE: runPDBVerify,
}

func init() {
	rootCmd.AddCommand(pdbCmd)

	pdbCmd.AddCommand(pdbBuildCmd)
	pdbBuildCmd.Flags().StringSliceVar(&pdbTables, "tables", nil, "Tables to build (default: from config)")
	pdbBuildCmd.Flags().IntVar(&pdbMaxDepth, "max-depth", 0, "Stop each search after this depth (0 = complete)")
	pdbBuildCmd.Flags().IntVar(&pdbWorkers, "workers", 0, "Tables built at once (default: from config)")
	pdbBuildCmd.Flags().BoolVar(&pdbTUI, "tui", false, "Show an interactive progress view")

	pdbCmd.AddCommand(pdbInfoCmd)

	pdbCmd.AddCommand(pdbVerifyCmd)
	pdbVerifyCmd.Flags().StringSliceVar(&pdbTables, "tables", nil, "Tables to verify (default: from config)")
}

// selectedPatterns resolves --tables, falling back to the config.
func selectedPatterns() ([]*pdb.Pattern, error) {
	names := appConfig.Tables
	if len(pdbTables) > 0 {
		names = pdbTables
	}
	return pdb.PatternsByName(names)
}

func runPDBBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	patterns, err := selectedPatterns()
	if err != nil {
		return err
	}

	maxDepth := appConfig.BuildMaxDepth
	if cmd.Flags().Changed("max-depth") {
		maxDepth = pdbMaxDepth
	}
	if maxDepth < 0 || maxDepth > pdb.MaxBuildDepth {
		return fmt.Errorf("max-depth must be between 0 and %d", pdb.MaxBuildDepth)
	}
	workers := appConfig.BuildWorkers
	if pdbWorkers > 0 {
		workers = pdbWorkers
	}

	opts := pdb.BuildOptions{MaxDepth: maxDepth}

	var db *pdb.Database
	if pdbTUI {
		db, err = runBuildTUI(ctx, patterns, workers, opts)
	} else {
		for _, p := range patterns {
			logger.Info("building table", "table", p.Name(), "entries", formatCount(int64(p.Size())))
		}
		opts.OnProgress = func(pr pdb.Progress) {
			logger.Info("level done",
				"table", pr.Table,
				"depth", pr.Depth,
				"new", formatCount(int64(pr.Discovered)),
				"visited", fmt.Sprintf("%.1f%%", 100*float64(pr.Visited)/float64(pr.Size)),
			)
		}
		prog := newProgress(logger)
		db, err = pdb.Build(ctx, patterns, workers, opts)
		if err == nil {
			prog.done(fmt.Sprintf("Built %d tables", len(patterns)))
		}
	}
	if err != nil {
		return fmt.Errorf("failed to build tables: %w", err)
	}

	if err := db.Save(appConfig.TableDir); err != nil {
		return fmt.Errorf("failed to save tables: %w", err)
	}
	logger.Info("tables saved", "dir", appConfig.TableDir)

	store, err := openDB()
	if err != nil {
		return err
	}
	defer store.Close()

	repo := storage.NewTableRepository(store)
	for _, t := range db.Tables() {
		rec := tableRecord(t, maxDepth)
		rec.BuildMs = t.BuildTime.Milliseconds()
		if err := repo.Upsert(rec); err != nil {
			return err
		}
		fmt.Printf("%-8s  %14s entries  max %2d  %s\n",
			t.Pattern.Name(), formatCount(int64(len(t.Costs))), t.MaxValue(), formatDuration(t.BuildTime))
	}

	return nil
}

// tableRecord describes t for the table registry.
func tableRecord(t *pdb.Table, maxDepth int) *storage.TableRecord {
	pieces := make([]string, 0, len(t.Pattern.Pieces()))
	for _, p := range t.Pattern.Pieces() {
		pieces = append(pieces, fmt.Sprintf("%d", p))
	}
	return &storage.TableRecord{
		Name:          t.Pattern.Name(),
		Path:          pdb.TablePath(appConfig.TableDir, t.Pattern),
		Kind:          t.Pattern.Kind().String(),
		Pieces:        strings.Join(pieces, " "),
		Entries:       int64(len(t.Costs)),
		MaxValue:      t.MaxValue(),
		BuildMaxDepth: maxDepth,
	}
}

func runPDBInfo(cmd *cobra.Command, args []string) error {
	store, err := openDB()
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := storage.NewTableRepository(store).List()
	if err != nil {
		return err
	}

	fmt.Printf("Table directory: %s\n", appConfig.TableDir)
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No tables built yet")
		fmt.Println("Build them with: gocube-solver pdb build")
		return nil
	}

	fmt.Printf("%-8s  %-7s  %14s  %-5s  %-10s  %-20s  %s\n", "Name", "Kind", "Entries", "Max", "Build", "Built", "File")
	fmt.Println("--------  -------  --------------  -----  ----------  --------------------  ----")

	registered := make(map[string]bool)
	for _, r := range records {
		registered[r.Name] = true

		file := "ok"
		if info, err := os.Stat(r.Path); err != nil {
			file = errorStyle.Render("missing")
		} else if info.Size() < r.Entries {
			file = errorStyle.Render("short")
		}
		maxValue := fmt.Sprintf("%d", r.MaxValue)
		if r.BuildMaxDepth > 0 {
			maxValue += "*"
		}

		fmt.Printf("%-8s  %-7s  %14s  %-5s  %-10s  %-20s  %s\n",
			r.Name, r.Kind, formatCount(r.Entries), maxValue,
			formatDuration(time.Duration(r.BuildMs)*time.Millisecond),
			r.BuiltAt.Local().Format("2006-01-02 15:04:05"), file)
	}

	var missing []string
	for _, p := range pdb.DefaultPatterns() {
		if !registered[p.Name()] {
			missing = append(missing, p.Name())
		}
	}
	if len(missing) > 0 {
		fmt.Println()
		fmt.Printf("Not built: %s\n", strings.Join(missing, ", "))
	}
	if hasCapped(records) {
		fmt.Println()
		fmt.Println(statusStyle.Render("* built with a depth limit"))
	}

	return nil
}

func hasCapped(records []storage.TableRecord) bool {
	for _, r := range records {
		if r.BuildMaxDepth > 0 {
			return true
		}
	}
	return false
}

func runPDBVerify(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())

	patterns, err := selectedPatterns()
	if err != nil {
		return err
	}

	failed := 0
	for _, p := range patterns {
		path := pdb.TablePath(appConfig.TableDir, p)
		logger.Debug("loading table", "path", path)

		t, err := pdb.LoadTable(path, p)
		if err == nil {
			err = t.Verify()
		}
		if err != nil {
			failed++
			fmt.Printf("%s: %s\n", p.Name(), errorStyle.Render(err.Error()))
			continue
		}

		fmt.Printf("%s: %s\n", titleStyle.Render(p.Name()), moveStyle.Render("ok"))
		fmt.Print(formatHistogram(t))
		fmt.Println()
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d tables failed verification", failed, len(patterns))
	}
	return nil
}

// formatHistogram lists entries per cost with a proportional bar.
func formatHistogram(t *pdb.Table) string {
	hist, unvisited := t.Histogram()
	largest := 0
	for _, n := range hist {
		largest = max(largest, n)
	}

	var b strings.Builder
	for cost, n := range hist {
		bar := 0
		if largest > 0 {
			bar = n * 40 / largest
		}
		fmt.Fprintf(&b, "  %3d  %14s  %s\n", cost, formatCount(int64(n)), moveStyle.Render(strings.Repeat("█", bar)))
	}
	if unvisited > 0 {
		fmt.Fprintf(&b, "  %3s  %14s\n", "-", formatCount(int64(unvisited)))
	}
	return b.String()
}
