package storage

import (
	"database/sql"
	"fmt"
)

// IterationRecord is one IDA* pass of a stored solve.
type IterationRecord struct {
	SolveID       string
	Number        int
	CostLimit     int
	NextLimit     *int // nil when the pass found the goal or had no candidate
	NodesExpanded int64
	Found         bool
}

// IterationRepository provides CRUD operations for solve iterations.
type IterationRepository struct {
	db *DB
}

// NewIterationRepository creates a new iteration repository.
func NewIterationRepository(db *DB) *IterationRepository {
	return &IterationRepository{db: db}
}

// CreateBatch stores the iterations of one solve in a single transaction.
func (r *IterationRepository) CreateBatch(solveID string, records []IterationRecord) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		for _, rec := range records {
			_, err := tx.Exec(`
				INSERT INTO solve_iterations (solve_id, number, cost_limit, next_limit, nodes_expanded, found)
				VALUES (?, ?, ?, ?, ?, ?)
			`, solveID, rec.Number, rec.CostLimit, rec.NextLimit, rec.NodesExpanded, rec.Found)
			if err != nil {
				return fmt.Errorf("failed to create iteration %d: %w", rec.Number, err)
			}
		}
		return nil
	})
}

// GetBySolve retrieves all iterations for a solve in order.
func (r *IterationRepository) GetBySolve(solveID string) ([]IterationRecord, error) {
	rows, err := r.db.Query(`
		SELECT solve_id, number, cost_limit, next_limit, nodes_expanded, found
		FROM solve_iterations
		WHERE solve_id = ?
		ORDER BY number
	`, solveID)

	if err != nil {
		return nil, fmt.Errorf("failed to get iterations: %w", err)
	}
	defer rows.Close()

	var records []IterationRecord
	for rows.Next() {
		var rec IterationRecord
		var next sql.NullInt64
		if err := rows.Scan(&rec.SolveID, &rec.Number, &rec.CostLimit, &next, &rec.NodesExpanded, &rec.Found); err != nil {
			return nil, fmt.Errorf("failed to scan iteration: %w", err)
		}
		if next.Valid {
			n := int(next.Int64)
			rec.NextLimit = &n
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get iterations: %w", err)
	}

	return records, nil
}

// Count returns the number of iterations stored for a solve.
func (r *IterationRepository) Count(solveID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM solve_iterations WHERE solve_id = ?", solveID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count iterations: %w", err)
	}
	return count, nil
}
