package creature

import (
	"github.com/genelife/genelife/internal/core/ecs"
	"github.com/genelife/genelife/internal/core/event"
)

// Status is the outcome of one tick.
type Status uint8

const (
	Alive Status = iota
	Dead
)

func (s Status) String() string {
	if s == Dead {
		return "dead"
	}
	return "alive"
}

// Simulate runs the creature's whole program once, then metabolism. The
// metabolic cost goes back to the tile as food; a creature that cannot pay
// it drops all its energy there, vacates the tile and is deallocated.
func (c *Creature) Simulate(env *Env) Status {
	if c.Energy == 0 {
		return Dead
	}
	for _, g := range c.Genes {
		c.Execute(g, env)
	}

	tile := env.World.TileAt(c.X, c.Y)
	cost := c.diet.Cost()
	if c.Energy <= cost {
		tile.Food += c.Energy
		c.Energy = 0
		tile.Occupant = ecs.Handle{}
		env.Store.Deallocate(c.handle)
		event.Emit(env.Bus, event.CreatureDied{
			Round:  env.Round,
			Handle: c.handle,
			Cause:  event.Starved,
			X:      c.X,
			Y:      c.Y,
		})
		return Dead
	}
	tile.Food += cost
	c.Energy -= cost
	return Alive
}
