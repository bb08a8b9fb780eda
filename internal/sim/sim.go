package sim

import (
	"errors"
	"fmt"

	"github.com/genelife/genelife/internal/core/ecs"
	"github.com/genelife/genelife/internal/core/event"
	"github.com/genelife/genelife/internal/creature"
	"github.com/genelife/genelife/internal/world"
	"go.uber.org/zap"
)

// ErrOvercrowded is returned when seeding asks for more creatures than there
// are free tiles.
var ErrOvercrowded = errors.New("population exceeds free tiles")

// Sim drives whole rounds over a world and its creature store.
// Accessed only from the simulation goroutine, no locks.
type Sim struct {
	World *world.World
	Store *creature.Store

	rng   creature.Rand
	bus   *event.Bus
	log   *zap.Logger
	round uint64

	active []ecs.Handle // per-round snapshot, reused
}

// New creates a driver over w with an empty store. bus may be nil.
func New(w *world.World, rng creature.Rand, bus *event.Bus, log *zap.Logger) *Sim {
	return &Sim{
		World:  w,
		Store:  creature.NewStore(),
		rng:    rng,
		bus:    bus,
		log:    log,
		active: make([]ecs.Handle, 0, 1024),
	}
}

// Round returns the number of completed rounds.
func (s *Sim) Round() uint64 { return s.round }

// Seed scatters count creatures running genes onto distinct unoccupied tiles
// chosen at random. Each creature gets its own copy of genes.
func (s *Sim) Seed(count int, genes []creature.Opcode) error {
	w, h := s.World.Size()
	free := int(w)*int(h) - s.World.LivingOccupantCount()
	if count > free {
		return fmt.Errorf("seed %d creatures on %d free tiles: %w", count, free, ErrOvercrowded)
	}
	for i := 0; i < count; i++ {
		for {
			x := uint32(s.rng.Intn(int(w)))
			y := uint32(s.rng.Intn(int(h)))
			tile := s.World.TileAt(x, y)
			if tile.Occupied() {
				continue
			}
			g := make([]creature.Opcode, len(genes), creature.MaxGenes)
			copy(g, genes)
			tile.Occupant = creature.Spawn(s.Store, x, y, g)
			break
		}
	}
	return nil
}

// Advance runs one round: every creature alive at the start, in ascending
// slot order, is taken out of the store, simulated against the world and the
// rest of the store, then written back if it survived. Creatures killed
// earlier in the round are skipped; offspring born this round wait for the
// next one. Returns false when no creature was alive at the start or none is
// left at the end.
func (s *Sim) Advance() bool {
	s.active = s.active[:0]
	for i := 0; i < s.Store.Count(); i++ {
		if h, ok := s.Store.HandleAt(i); ok {
			s.active = append(s.active, h)
		}
	}
	s.log.Debug("round start",
		zap.Uint64("round", s.round),
		zap.Int("active", len(s.active)),
	)

	if occupied := s.World.LivingOccupantCount(); occupied != len(s.active) {
		s.log.Warn("occupancy mismatch",
			zap.Uint64("round", s.round),
			zap.Int("store", len(s.active)),
			zap.Int("tiles", occupied),
		)
	}

	if len(s.active) == 0 {
		s.log.Info("every creature died", zap.Uint64("round", s.round))
		return false
	}

	env := &creature.Env{
		World: s.World,
		Store: s.Store,
		Rand:  s.rng,
		Bus:   s.bus,
		Round: s.round,
	}
	for _, h := range s.active {
		c, ok := s.Store.Take(h)
		if !ok {
			continue
		}
		if c.Simulate(env) == creature.Alive {
			s.Store.Set(h, c)
		}
	}
	s.round++
	return s.Store.Live() > 0
}

// Describe renders the tile at (x, y) and its occupant, if any.
func (s *Sim) Describe(x, y uint32) string {
	w, h := s.World.Size()
	if x >= w || y >= h {
		return ""
	}
	tile := s.World.TileAt(x, y)
	out := fmt.Sprintf("X: %d Y: %d\n%s", x, y, tile)
	if c, ok := s.Store.Get(tile.Occupant); ok {
		out += "\n" + c.String()
	}
	return out
}
