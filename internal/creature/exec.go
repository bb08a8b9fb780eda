package creature

import (
	"github.com/genelife/genelife/internal/core/ecs"
	"github.com/genelife/genelife/internal/core/event"
	"github.com/genelife/genelife/internal/world"
)

const (
	// EatQuota is the most food one Eat moves from a tile.
	EatQuota = 10
	// AttackDamage is the energy one Attack drains from its victim.
	AttackDamage = 20
	// ReproduceThreshold is the energy needed to attempt Reproduce.
	ReproduceThreshold = 200
	// ReproduceCost is paid by the parent on a successful Reproduce.
	ReproduceCost = 100
)

// Execute applies one opcode. Every effect is final before the next opcode
// runs; blocked actions are silent no-ops.
func (c *Creature) Execute(op Opcode, env *Env) {
	switch op {
	case Nop:
	case LookForFood:
		c.lookForFood(env.World)
	case LookForCreature:
		c.lookForCreature(env.World)
	case Move:
		c.move(env)
	case Eat:
		c.eat(env)
	case Attack:
		c.attack(env)
	case Reproduce:
		c.reproduce(env)
	case Invert:
		c.invert()
	}
}

func (c *Creature) lookForFood(w *world.World) {
	for _, d := range world.Directions {
		x, y := w.Step(c.X, c.Y, d)
		food := w.TileAt(x, y).Food
		if food > 255 {
			food = 255
		}
		c.Sensors[d] = uint8(food)
	}
}

func (c *Creature) lookForCreature(w *world.World) {
	for _, d := range world.Directions {
		x, y := w.Step(c.X, c.Y, d)
		if w.TileAt(x, y).Occupied() {
			c.Sensors[d] = 255
		} else {
			c.Sensors[d] = 0
		}
	}
}

// target draws a direction and returns the wrapped destination.
func (c *Creature) target(env *Env) (uint32, uint32) {
	return env.World.Step(c.X, c.Y, c.PickDirection(env.Rand))
}

func (c *Creature) move(env *Env) {
	x, y := c.target(env)
	dst := env.World.TileAt(x, y)
	if dst.Occupied() {
		return
	}
	env.World.TileAt(c.X, c.Y).Occupant = ecs.Handle{}
	dst.Occupant = c.handle
	c.X, c.Y = x, y
}

func (c *Creature) eat(env *Env) {
	x, y := c.target(env)
	tile := env.World.TileAt(x, y)
	if tile.Occupied() {
		return
	}
	taken := tile.Food
	if taken > EatQuota {
		taken = EatQuota
	}
	tile.Food -= taken
	c.Energy += taken
}

func (c *Creature) attack(env *Env) {
	x, y := c.target(env)
	tile := env.World.TileAt(x, y)
	if !tile.Occupied() {
		return
	}
	id := tile.Occupant
	// Misses when the occupant is the actor itself (a 1-wide axis wraps onto
	// its own tile) because the actor is out of the store for its turn.
	victim, ok := env.Store.Get(id)
	if !ok {
		return
	}
	if victim.Energy <= AttackDamage {
		c.Energy += victim.Energy
		victim.Energy = 0
		tile.Occupant = ecs.Handle{}
		env.Store.Deallocate(id)
		event.Emit(env.Bus, event.CreatureDied{
			Round:  env.Round,
			Handle: id,
			Killer: c.handle,
			Cause:  event.Killed,
			X:      x,
			Y:      y,
		})
		return
	}
	victim.Energy -= AttackDamage
	c.Energy += AttackDamage
}

func (c *Creature) reproduce(env *Env) {
	if c.Energy < ReproduceThreshold {
		return
	}
	x, y := c.target(env)
	tile := env.World.TileAt(x, y)
	if tile.Occupied() {
		return
	}
	genes := make([]Opcode, len(c.Genes), MaxGenes)
	copy(genes, c.Genes)
	genes, mutated := Mutate(genes, env.Rand)

	child := Spawn(env.Store, x, y, genes)
	tile.Occupant = child
	c.Energy -= ReproduceCost

	event.Emit(env.Bus, event.CreatureBorn{
		Round:   env.Round,
		Parent:  c.handle,
		Child:   child,
		X:       x,
		Y:       y,
		Mutated: mutated,
	})
}

// invert reflects every register: v -> |v-255|, which for a byte is 255-v.
func (c *Creature) invert() {
	for i := range c.Sensors {
		c.Sensors[i] = 255 - c.Sensors[i]
	}
}
