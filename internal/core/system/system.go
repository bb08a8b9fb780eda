package system

import "time"

// Phase defines execution ordering within a single round.
type Phase int

const (
	PhaseUpdate   Phase = iota // 0: advance the simulation one round
	PhaseDispatch              // 1: deliver the round's births and deaths
	PhaseCensus                // 2: survey the population
	PhaseObserve               // 3: Lua observers
	PhasePersist               // 4: census batch flush
	PhaseReport                // 5: status lines
)

// System is the interface every simulation system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
