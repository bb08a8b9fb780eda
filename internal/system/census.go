package system

import (
	"time"

	"github.com/genelife/genelife/internal/core/event"
	coresys "github.com/genelife/genelife/internal/core/system"
	"github.com/genelife/genelife/internal/sim"
)

// Totals are the event counts accumulated over the whole run.
type Totals struct {
	Births  int
	Starved int
	Killed  int
}

// CensusSystem surveys the population after each round and folds in the
// round's births and deaths. Phase 2 (Census).
type CensusSystem struct {
	sim    *sim.Sim
	latest sim.Census
	round  Totals // events since the last survey
	totals Totals
}

func NewCensusSystem(s *sim.Sim, bus *event.Bus) *CensusSystem {
	c := &CensusSystem{sim: s}
	event.Subscribe(bus, func(event.CreatureBorn) {
		c.round.Births++
	})
	event.Subscribe(bus, func(e event.CreatureDied) {
		switch e.Cause {
		case event.Killed:
			c.round.Killed++
		default:
			c.round.Starved++
		}
	})
	return c
}

func (s *CensusSystem) Phase() coresys.Phase { return coresys.PhaseCensus }

func (s *CensusSystem) Update(_ time.Duration) {
	c := s.sim.Survey()
	c.Births = s.round.Births
	c.Starved = s.round.Starved
	c.Killed = s.round.Killed

	s.totals.Births += s.round.Births
	s.totals.Starved += s.round.Starved
	s.totals.Killed += s.round.Killed
	s.round = Totals{}
	s.latest = c
}

// Latest returns the most recent survey.
func (s *CensusSystem) Latest() sim.Census { return s.latest }

// Totals returns the event counts for the whole run.
func (s *CensusSystem) Totals() Totals { return s.totals }
