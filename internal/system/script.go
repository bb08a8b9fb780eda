package system

import (
	"time"

	coresys "github.com/genelife/genelife/internal/core/system"
	"github.com/genelife/genelife/internal/scripting"
	"go.uber.org/zap"
)

// RoundObserver receives each round's census. *scripting.Engine implements it.
type RoundObserver interface {
	OnRound(ctx scripting.RoundContext) bool
}

// ScriptSystem hands the latest census to the Lua observers and stops the
// run when one of them asks to. Phase 3 (Observe).
type ScriptSystem struct {
	observer RoundObserver
	census   *CensusSystem
	rounds   *RoundSystem
	log      *zap.Logger
	halted   bool
}

func NewScriptSystem(observer RoundObserver, census *CensusSystem, rounds *RoundSystem, log *zap.Logger) *ScriptSystem {
	return &ScriptSystem{observer: observer, census: census, rounds: rounds, log: log}
}

func (s *ScriptSystem) Phase() coresys.Phase { return coresys.PhaseObserve }

func (s *ScriptSystem) Update(_ time.Duration) {
	if s.halted {
		return
	}
	c := s.census.Latest()
	if !s.observer.OnRound(scripting.RoundContext{
		Round:         c.Round,
		Population:    c.Population,
		Herbivores:    c.Herbivores,
		Carnivores:    c.Carnivores,
		Omnivores:     c.Omnivores,
		Energy:        c.Energy,
		Food:          c.Food,
		Genomes:       c.Genomes,
		DominantGenes: c.DominantGenes,
		DominantCount: c.DominantCount,
		Births:        c.Births,
		Starved:       c.Starved,
		Killed:        c.Killed,
	}) {
		return
	}
	s.halted = true
	s.log.Info("observer halted simulation", zap.Uint64("round", c.Round))
	s.rounds.Stop(OutcomeHalted)
}

// Halted reports whether an observer stopped the run.
func (s *ScriptSystem) Halted() bool { return s.halted }
