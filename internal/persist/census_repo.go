package persist

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// CensusRow is one round's survey.
type CensusRow struct {
	Round         uint64
	Population    int
	Herbivores    int
	Carnivores    int
	Omnivores     int
	Energy        uint64
	Food          uint64
	Genomes       int
	DominantID    string
	DominantGenes string
	DominantCount int
	Births        int
	Starved       int
	Killed        int
}

type CensusRepo struct {
	db *DB
}

func NewCensusRepo(db *DB) *CensusRepo {
	return &CensusRepo{db: db}
}

// InsertBatch writes a batch of census rows for a run in a single
// transaction.
func (r *CensusRepo) InsertBatch(ctx context.Context, runID int64, rows []CensusRow) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("census begin: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, c := range rows {
		batch.Queue(
			`INSERT INTO census (run_id, round, population, herbivores, carnivores, omnivores,
			                     energy, food, genomes, dominant_id, dominant_genes, dominant_count,
			                     births, starved, killed)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			runID, int64(c.Round), int32(c.Population), int32(c.Herbivores), int32(c.Carnivores), int32(c.Omnivores),
			int64(c.Energy), int64(c.Food), int32(c.Genomes), c.DominantID, c.DominantGenes, int32(c.DominantCount),
			int32(c.Births), int32(c.Starved), int32(c.Killed),
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("census insert: %w", err)
	}
	return tx.Commit(ctx)
}
