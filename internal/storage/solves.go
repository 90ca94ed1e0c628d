package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// timeLayout has a fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Solve statuses.
const (
	StatusSolved = "solved"
	StatusFailed = "failed"
)

// Solve represents one solver run in the database.
type Solve struct {
	SolveID        string
	CreatedAt      time.Time
	ScrambleText   string
	SolutionText   *string
	SolutionLength *int
	Iterations     int
	NodesExpanded  int64
	DurationMs     int64
	RootHeuristic  int
	Status         string
	ErrorText      *string
}

// SolveRepository provides CRUD operations for solves.
type SolveRepository struct {
	db *DB
}

// NewSolveRepository creates a new solve repository.
func NewSolveRepository(db *DB) *SolveRepository {
	return &SolveRepository{db: db}
}

// Create stores a solve and returns its new ID. SolveID and CreatedAt
// are assigned here.
func (r *SolveRepository) Create(s *Solve) (string, error) {
	if s.Status != StatusSolved && s.Status != StatusFailed {
		return "", fmt.Errorf("failed to create solve: unknown status %q", s.Status)
	}
	s.SolveID = uuid.New().String()
	s.CreatedAt = time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO solves (solve_id, created_at, scramble_text, solution_text, solution_length,
			iterations, nodes_expanded, duration_ms, root_heuristic, status, error_text)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.SolveID, s.CreatedAt.Format(timeLayout), s.ScrambleText, s.SolutionText, s.SolutionLength,
		s.Iterations, s.NodesExpanded, s.DurationMs, s.RootHeuristic, s.Status, s.ErrorText)

	if err != nil {
		return "", fmt.Errorf("failed to create solve: %w", err)
	}

	return s.SolveID, nil
}

const solveColumns = `solve_id, created_at, scramble_text, solution_text, solution_length,
	iterations, nodes_expanded, duration_ms, root_heuristic, status, error_text`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSolve(row rowScanner) (*Solve, error) {
	var s Solve
	var createdAtStr string
	var solutionLength sql.NullInt64

	err := row.Scan(
		&s.SolveID, &createdAtStr, &s.ScrambleText, &s.SolutionText, &solutionLength,
		&s.Iterations, &s.NodesExpanded, &s.DurationMs, &s.RootHeuristic, &s.Status, &s.ErrorText,
	)
	if err != nil {
		return nil, err
	}

	if s.CreatedAt, err = time.Parse(timeLayout, createdAtStr); err != nil {
		return nil, fmt.Errorf("solve %s: bad created_at %q: %w", s.SolveID, createdAtStr, err)
	}
	if solutionLength.Valid {
		n := int(solutionLength.Int64)
		s.SolutionLength = &n
	}
	return &s, nil
}

// Get retrieves a solve by ID. It returns nil when no solve matches.
func (r *SolveRepository) Get(solveID string) (*Solve, error) {
	s, err := scanSolve(r.db.QueryRow(`SELECT `+solveColumns+` FROM solves WHERE solve_id = ?`, solveID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get solve: %w", err)
	}
	return s, nil
}

// GetLast retrieves the most recent solve.
func (r *SolveRepository) GetLast() (*Solve, error) {
	s, err := scanSolve(r.db.QueryRow(`
		SELECT ` + solveColumns + ` FROM solves
		ORDER BY created_at DESC
		LIMIT 1
	`))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last solve: %w", err)
	}
	return s, nil
}

// List retrieves recent solves, newest first.
func (r *SolveRepository) List(limit int) ([]Solve, error) {
	rows, err := r.db.Query(`
		SELECT `+solveColumns+` FROM solves
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)

	if err != nil {
		return nil, fmt.Errorf("failed to list solves: %w", err)
	}
	defer rows.Close()

	var solves []Solve
	for rows.Next() {
		s, err := scanSolve(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan solve: %w", err)
		}
		solves = append(solves, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list solves: %w", err)
	}

	return solves, nil
}

// Count returns the number of stored solves.
func (r *SolveRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM solves").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count solves: %w", err)
	}
	return count, nil
}

// Delete deletes a solve and its iterations (cascading).
func (r *SolveRepository) Delete(solveID string) error {
	_, err := r.db.Exec("DELETE FROM solves WHERE solve_id = ?", solveID)
	if err != nil {
		return fmt.Errorf("failed to delete solve: %w", err)
	}
	return nil
}
