package persist

import (
	"context"
	"fmt"
)

// RunRow describes one simulation run.
type RunRow struct {
	ID         int64
	Width      uint32
	Height     uint32
	Population int
	Genome     string
	Seed       int64
}

type RunRepo struct {
	db *DB
}

func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

// Start inserts a run row and returns its ID.
func (r *RunRepo) Start(ctx context.Context, row RunRow) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO runs (width, height, population, genome, seed)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		int32(row.Width), int32(row.Height), int32(row.Population), row.Genome, row.Seed,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("start run: %w", err)
	}
	return id, nil
}

// Finish stamps the run with its final round count and outcome
// ("extinct", "max_rounds", "halted", "interrupted").
func (r *RunRepo) Finish(ctx context.Context, id int64, rounds uint64, outcome string) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE runs SET finished_at = NOW(), rounds = $2, outcome = $3 WHERE id = $1`,
		id, int64(rounds), outcome,
	)
	if err != nil {
		return fmt.Errorf("finish run %d: %w", id, err)
	}
	return nil
}
