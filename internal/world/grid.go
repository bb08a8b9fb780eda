package world

import (
	"fmt"

	"github.com/genelife/genelife/internal/core/ecs"
)

// DefaultFood is the food every tile starts with.
const DefaultFood = 100

// Tile is one cell of the grid. Occupant is the zero Handle when empty; the
// grid only ever holds handles, never creature data.
type Tile struct {
	Food     uint32
	Occupant ecs.Handle
}

// Occupied reports whether a creature stands on the tile.
func (t *Tile) Occupied() bool { return !t.Occupant.IsZero() }

func (t Tile) String() string {
	if t.Occupant.IsZero() {
		return fmt.Sprintf("Food: %d", t.Food)
	}
	return fmt.Sprintf("Food: %d Creature: %s", t.Food, t.Occupant)
}

// World is a fixed width×height toroidal grid stored row-major.
// Accessed only from the simulation goroutine, no locks.
type World struct {
	width  uint32
	height uint32
	tiles  []Tile
}

// New creates a grid with every tile holding food and no occupant.
func New(width, height, food uint32) *World {
	tiles := make([]Tile, int(width)*int(height))
	for i := range tiles {
		tiles[i].Food = food
	}
	return &World{width: width, height: height, tiles: tiles}
}

func (w *World) Size() (uint32, uint32) { return w.width, w.height }

// TileAt returns the tile at (x, y). Coordinates must already be inside the
// grid; TileAt does not wrap.
func (w *World) TileAt(x, y uint32) *Tile {
	return &w.tiles[y*w.width+x]
}

// Adjust applies a single-step delta to (x, y) and wraps the result onto the
// torus: a negative coordinate becomes bound-1, one at or past the bound has
// the bound subtracted.
func (w *World) Adjust(x, y uint32, dx, dy int) (uint32, uint32) {
	return wrap(int64(x)+int64(dx), int64(w.width)), wrap(int64(y)+int64(dy), int64(w.height))
}

func wrap(v, bound int64) uint32 {
	if v < 0 {
		return uint32(bound - 1)
	}
	if v >= bound {
		return uint32(v - bound)
	}
	return uint32(v)
}

// Step returns the neighbour of (x, y) in direction d, wrapped.
func (w *World) Step(x, y uint32, d Direction) (uint32, uint32) {
	dx, dy := d.Delta()
	return w.Adjust(x, y, dx, dy)
}

// LivingOccupantCount scans the grid for occupied tiles.
func (w *World) LivingOccupantCount() int {
	n := 0
	for i := range w.tiles {
		if w.tiles[i].Occupied() {
			n++
		}
	}
	return n
}

// TotalFood sums the food lying on every tile.
func (w *World) TotalFood() uint64 {
	var sum uint64
	for i := range w.tiles {
		sum += uint64(w.tiles[i].Food)
	}
	return sum
}

// EachOccupied calls fn for every occupied tile with its coordinates.
func (w *World) EachOccupied(fn func(x, y uint32, t *Tile)) {
	for i := range w.tiles {
		if w.tiles[i].Occupied() {
			fn(uint32(i)%w.width, uint32(i)/w.width, &w.tiles[i])
		}
	}
}
