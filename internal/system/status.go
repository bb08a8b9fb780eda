package system

import (
	"os"
	"time"

	coresys "github.com/genelife/genelife/internal/core/system"
	"github.com/shirou/gopsutil/v3/process"
	"go.uber.org/zap"
)

// StatusSystem logs a status line every interval rounds: the latest census,
// simulation speed and process memory. Phase 5 (Report).
type StatusSystem struct {
	census   *CensusSystem
	log      *zap.Logger
	interval int
	proc     *process.Process // nil when the process cannot be inspected

	tickCount int
	lastRound uint64
	lastAt    time.Time
}

func NewStatusSystem(census *CensusSystem, log *zap.Logger, intervalRounds int) *StatusSystem {
	if intervalRounds < 1 {
		intervalRounds = 1
	}
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Warn("process stats unavailable", zap.Error(err))
		proc = nil
	}
	return &StatusSystem{
		census:   census,
		log:      log,
		interval: intervalRounds,
		proc:     proc,
		lastAt:   time.Now(),
	}
}

func (s *StatusSystem) Phase() coresys.Phase { return coresys.PhaseReport }

func (s *StatusSystem) Update(_ time.Duration) {
	s.tickCount++
	if s.tickCount < s.interval {
		return
	}
	s.tickCount = 0

	c := s.census.Latest()
	now := time.Now()
	var rate float64
	if elapsed := now.Sub(s.lastAt).Seconds(); elapsed > 0 {
		rate = float64(c.Round-s.lastRound) / elapsed
	}
	s.lastRound, s.lastAt = c.Round, now

	fields := []zap.Field{
		zap.Uint64("round", c.Round),
		zap.Int("population", c.Population),
		zap.Int("herbivores", c.Herbivores),
		zap.Int("carnivores", c.Carnivores),
		zap.Int("omnivores", c.Omnivores),
		zap.Uint64("energy", c.Energy),
		zap.Uint64("food", c.Food),
		zap.Int("genomes", c.Genomes),
		zap.String("dominant", c.DominantGenes),
		zap.Float64("rounds_per_sec", rate),
	}
	if rss, ok := s.RSS(); ok {
		fields = append(fields, zap.Uint64("rss_mb", rss>>20))
	}
	s.log.Info("status", fields...)
}

// RSS returns the resident set size of this process in bytes.
func (s *StatusSystem) RSS() (uint64, bool) {
	if s.proc == nil {
		return 0, false
	}
	mem, err := s.proc.MemoryInfo()
	if err != nil {
		return 0, false
	}
	return mem.RSS, true
}
