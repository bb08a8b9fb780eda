package system

import (
	"context"
	"time"

	coresys "github.com/genelife/genelife/internal/core/system"
	"github.com/genelife/genelife/internal/persist"
	"github.com/genelife/genelife/internal/sim"
	"go.uber.org/zap"
)

// CensusWriter stores census rows for a run. *persist.CensusRepo implements it.
type CensusWriter interface {
	InsertBatch(ctx context.Context, runID int64, rows []persist.CensusRow) error
}

// PersistenceSystem buffers one census row per round and writes them in
// batches every interval rounds. Phase 4 (Persist).
type PersistenceSystem struct {
	writer   CensusWriter
	runID    int64
	census   *CensusSystem
	log      *zap.Logger
	interval int

	pending   []persist.CensusRow
	tickCount int
	last      uint64 // round of the newest buffered row
	recorded  bool
}

func NewPersistenceSystem(writer CensusWriter, runID int64, census *CensusSystem, log *zap.Logger, intervalRounds int) *PersistenceSystem {
	if intervalRounds < 1 {
		intervalRounds = 1
	}
	return &PersistenceSystem{
		writer:   writer,
		runID:    runID,
		census:   census,
		log:      log,
		interval: intervalRounds,
		pending:  make([]persist.CensusRow, 0, intervalRounds),
	}
}

func (s *PersistenceSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *PersistenceSystem) Update(_ time.Duration) {
	c := s.census.Latest()
	// A tick that did not advance the round surveys the same round again.
	if s.recorded && c.Round == s.last {
		return
	}
	s.pending = append(s.pending, censusRow(c))
	s.last = c.Round
	s.recorded = true

	s.tickCount++
	if s.tickCount < s.interval {
		return
	}
	s.tickCount = 0
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.Flush(ctx)
}

// Flush writes every buffered row. Called at shutdown so the tail of the run
// is not lost. Census recording is best effort: a failed batch is logged and
// dropped.
func (s *PersistenceSystem) Flush(ctx context.Context) {
	if len(s.pending) == 0 {
		return
	}
	if err := s.writer.InsertBatch(ctx, s.runID, s.pending); err != nil {
		s.log.Error("census flush failed",
			zap.Int64("run", s.runID),
			zap.Int("rows", len(s.pending)),
			zap.Error(err),
		)
	} else {
		s.log.Debug("census flushed", zap.Int64("run", s.runID), zap.Int("rows", len(s.pending)))
	}
	s.pending = s.pending[:0]
}

// Pending returns the number of buffered rows.
func (s *PersistenceSystem) Pending() int { return len(s.pending) }

func censusRow(c sim.Census) persist.CensusRow {
	return persist.CensusRow{
		Round:         c.Round,
		Population:    c.Population,
		Herbivores:    c.Herbivores,
		Carnivores:    c.Carnivores,
		Omnivores:     c.Omnivores,
		Energy:        c.Energy,
		Food:          c.Food,
		Genomes:       c.Genomes,
		DominantID:    c.Dominant.String(),
		DominantGenes: c.DominantGenes,
		DominantCount: c.DominantCount,
		Births:        c.Births,
		Starved:       c.Starved,
		Killed:        c.Killed,
	}
}
