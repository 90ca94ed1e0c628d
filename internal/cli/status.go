package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_solver/internal/pdb"
	"github.com/SeamusWaldron/gocube_solver/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and table status",
	Long:  `Display the configuration in effect, which pattern tables are ready and a summary of the solve history.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("GoCube Solver Status")
	fmt.Println("====================")
	fmt.Println()

	fmt.Printf("Data dir:  %s\n", appConfig.DataDir)
	fmt.Printf("Database:  %s\n", appConfig.DBPath)
	fmt.Printf("Tables:    %s\n", appConfig.TableDir)
	fmt.Printf("Workers:   %d\n", appConfig.Workers)
	fmt.Printf("Pruning:   %t\n", appConfig.Pruning)
	if appConfig.MaxDepth > 0 {
		fmt.Printf("Max depth: %d\n", appConfig.MaxDepth)
	}
	fmt.Println()

	fmt.Println("Pattern tables")
	fmt.Println("--------------")
	patterns, err := pdb.PatternsByName(appConfig.Tables)
	if err != nil {
		return err
	}
	var missing []string
	for _, p := range patterns {
		path := pdb.TablePath(appConfig.TableDir, p)
		state := moveStyle.Render("ready")
		if _, err := os.Stat(path); err != nil {
			state = errorStyle.Render("missing")
			missing = append(missing, p.Name())
		}
		fmt.Printf("  %-8s %14s entries  %s\n", p.Name(), formatCount(int64(p.Size())), state)
	}
	if len(missing) > 0 {
		fmt.Println()
		fmt.Printf("Build %s with: gocube-solver pdb build --tables %s\n",
			strings.Join(missing, ", "), strings.Join(missing, ","))
	}
	fmt.Println()

	db, err := openDB()
	if err != nil {
		fmt.Printf("History unavailable: %v\n", err)
		return nil
	}
	defer db.Close()

	version, err := db.CurrentVersion()
	if err == nil {
		fmt.Printf("Schema version: %d\n", version)
	}

	repo := storage.NewSolveRepository(db)
	count, err := repo.Count()
	if err != nil {
		return err
	}
	fmt.Printf("Total solves:   %d\n", count)

	last, err := repo.GetLast()
	if err != nil {
		return err
	}
	if last != nil {
		fmt.Printf("Last solve:     %s (%s, %s)\n",
			last.CreatedAt.Local().Format("2006-01-02 15:04:05"), shortID(last.SolveID), last.Status)
	}

	return nil
}
