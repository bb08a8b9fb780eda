package creature

import (
	"fmt"
	"strings"

	"github.com/genelife/genelife/internal/core/ecs"
	"github.com/genelife/genelife/internal/world"
)

const (
	// StartEnergy is the energy of every new creature.
	StartEnergy = 100
	// StartSensor is the initial value of every sensor register.
	StartSensor = 128
)

// Diet is derived from the gene program once, at birth.
type Diet uint8

const (
	Herbivore Diet = iota
	Carnivore
	Omnivore
)

func (d Diet) String() string {
	switch d {
	case Carnivore:
		return "Carnivore"
	case Omnivore:
		return "Omnivore"
	default:
		return "Herbivore"
	}
}

// Cost is the energy burned per tick, returned to the tile as food.
func (d Diet) Cost() uint32 {
	switch d {
	case Carnivore:
		return 5
	case Omnivore:
		return 10
	default:
		return 1
	}
}

// Classify derives the diet of a gene program: both Eat and Attack make an
// Omnivore, Attack alone a Carnivore, anything else a Herbivore.
func Classify(genes []Opcode) Diet {
	var eat, attack bool
	for _, g := range genes {
		switch g {
		case Eat:
			eat = true
		case Attack:
			attack = true
		}
	}
	switch {
	case eat && attack:
		return Omnivore
	case attack:
		return Carnivore
	default:
		return Herbivore
	}
}

// Creature is one individual. Sensors are indexed by world.Direction.
type Creature struct {
	X, Y    uint32
	Energy  uint32
	Sensors [4]uint8
	Genes   []Opcode

	handle ecs.Handle
	diet   Diet
}

// New builds a creature at (x, y). The diet is fixed here and is not
// refreshed if Genes is later rewritten. A program that is empty or longer
// than MaxGenes is a programming error.
func New(h ecs.Handle, x, y uint32, genes []Opcode) *Creature {
	if len(genes) == 0 || len(genes) > MaxGenes {
		panic(fmt.Sprintf("creature: gene program length %d outside 1..%d", len(genes), MaxGenes))
	}
	return &Creature{
		X:       x,
		Y:       y,
		Energy:  StartEnergy,
		Sensors: [4]uint8{StartSensor, StartSensor, StartSensor, StartSensor},
		Genes:   genes,
		handle:  h,
		diet:    Classify(genes),
	}
}

func (c *Creature) Handle() ecs.Handle { return c.handle }
func (c *Creature) Diet() Diet         { return c.diet }

func (c *Creature) String() string {
	var sb strings.Builder
	sb.WriteString("==Creature==\n")
	fmt.Fprintf(&sb, "Type: %s\n", c.diet)
	fmt.Fprintf(&sb, "Stats: Energy: %d E: %d W: %d N: %d S: %d\n",
		c.Energy, c.Sensors[world.East], c.Sensors[world.West], c.Sensors[world.North], c.Sensors[world.South])
	fmt.Fprintf(&sb, "Genes(%d):\n", len(c.Genes))
	for _, g := range c.Genes {
		sb.WriteString(g.String())
		sb.WriteByte('\n')
	}
	sb.WriteString("============")
	return sb.String()
}
