package system

import (
	"time"

	coresys "github.com/genelife/genelife/internal/core/system"
	"github.com/genelife/genelife/internal/sim"
	"go.uber.org/zap"
)

// Outcomes recorded when a run ends.
const (
	OutcomeExtinct     = "extinct"
	OutcomeMaxRounds   = "max_rounds"
	OutcomeHalted      = "halted"
	OutcomeInterrupted = "interrupted"
)

// RoundSystem advances the simulation by one round per tick. Phase 0 (Update).
type RoundSystem struct {
	sim       *sim.Sim
	maxRounds uint64 // 0 = unbounded
	log       *zap.Logger

	done    bool
	outcome string
}

func NewRoundSystem(s *sim.Sim, maxRounds uint64, log *zap.Logger) *RoundSystem {
	return &RoundSystem{sim: s, maxRounds: maxRounds, log: log}
}

func (s *RoundSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *RoundSystem) Update(_ time.Duration) {
	if s.done {
		return
	}
	if !s.sim.Advance() {
		s.finish(OutcomeExtinct)
		return
	}
	if s.maxRounds > 0 && s.sim.Round() >= s.maxRounds {
		s.finish(OutcomeMaxRounds)
	}
}

// Stop ends the run from outside the round loop (script halt, signal).
// An outcome already reached is kept.
func (s *RoundSystem) Stop(outcome string) {
	if !s.done {
		s.finish(outcome)
	}
}

func (s *RoundSystem) finish(outcome string) {
	s.done = true
	s.outcome = outcome
	s.log.Info("simulation finished",
		zap.String("outcome", outcome),
		zap.Uint64("rounds", s.sim.Round()),
	)
}

// Done reports whether the run has ended.
func (s *RoundSystem) Done() bool { return s.done }

// Outcome returns why the run ended, or "" while it is still going.
func (s *RoundSystem) Outcome() string { return s.outcome }
