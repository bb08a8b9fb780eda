package event

import "github.com/genelife/genelife/internal/core/ecs"

// DeathCause says why a creature left the store.
type DeathCause uint8

const (
	Starved DeathCause = iota
	Killed
)

func (c DeathCause) String() string {
	if c == Killed {
		return "killed"
	}
	return "starved"
}

// CreatureBorn is emitted when Reproduce places an offspring.
type CreatureBorn struct {
	Round   uint64
	Parent  ecs.Handle
	Child   ecs.Handle
	X, Y    uint32
	Mutated bool
}

// CreatureDied is emitted when a creature is deallocated.
type CreatureDied struct {
	Round  uint64
	Handle ecs.Handle
	Killer ecs.Handle // zero unless Cause == Killed
	Cause  DeathCause
	X, Y   uint32
}
