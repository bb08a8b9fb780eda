package creature

import (
	"github.com/genelife/genelife/internal/core/event"
	"github.com/genelife/genelife/internal/world"
)

// Rand is the source of every random draw the interpreter makes.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Env is the shared state a creature acts on during its turn. The acting
// creature is not in Store while its turn runs.
type Env struct {
	World *world.World
	Store *Store
	Rand  Rand
	Bus   *event.Bus // optional
	Round uint64
}
