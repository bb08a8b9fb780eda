package sim

import (
	"github.com/genelife/genelife/internal/core/ecs"
	"github.com/genelife/genelife/internal/creature"
)

// Census is a read-only survey of the simulation after a round.
type Census struct {
	Round      uint64
	Population int
	Herbivores int
	Carnivores int
	Omnivores  int
	Energy     uint64 // held by creatures
	Food       uint64 // lying on tiles
	MaxGenes   int    // longest program alive

	Genomes       int // distinct programs alive
	Dominant      creature.GenomeID
	DominantGenes string
	DominantCount int

	// Filled from events by the census system.
	Births  int
	Starved int
	Killed  int
}

// Survey counts the living population. It only reads the world and store.
func (s *Sim) Survey() Census {
	c := Census{Round: s.round, Food: s.World.TotalFood()}
	counts := make(map[creature.GenomeID]int)
	programs := make(map[creature.GenomeID][]creature.Opcode)

	s.Store.Each(func(_ ecs.Handle, cr *creature.Creature) {
		c.Population++
		c.Energy += uint64(cr.Energy)
		switch cr.Diet() {
		case creature.Carnivore:
			c.Carnivores++
		case creature.Omnivore:
			c.Omnivores++
		default:
			c.Herbivores++
		}
		if len(cr.Genes) > c.MaxGenes {
			c.MaxGenes = len(cr.Genes)
		}
		id := creature.Fingerprint(cr.Genes)
		counts[id]++
		if _, ok := programs[id]; !ok {
			programs[id] = cr.Genes
		}
		// Ties go to the program that reached the count first.
		if counts[id] > c.DominantCount {
			c.Dominant = id
			c.DominantCount = counts[id]
		}
	})
	c.Genomes = len(counts)
	if c.DominantCount > 0 {
		c.DominantGenes = creature.FormatGenes(programs[c.Dominant])
	}
	return c
}
