package creature

import "github.com/genelife/genelife/internal/core/ecs"

// Store owns every creature. The grid refers to them by handle only.
type Store = ecs.Store[*Creature]

func NewStore() *Store {
	return ecs.NewStore[*Creature]()
}

// Spawn allocates a slot and places a new creature in it. The caller marks
// the tile as occupied.
func Spawn(s *Store, x, y uint32, genes []Opcode) ecs.Handle {
	h := s.Allocate()
	s.Set(h, New(h, x, y, genes))
	return h
}
