package creature

import "github.com/genelife/genelife/internal/world"

// PickDirection draws a direction weighted by the sensor registers. Each
// direction weighs its register plus one, and the dice covers [0, total]
// inclusive: the extra outcome falls in the last bucket, so South wins one
// more draw out of total+1 than its weight alone gives it.
func (c *Creature) PickDirection(r Rand) world.Direction {
	total := 0
	for _, s := range c.Sensors {
		total += int(s) + 1
	}
	dice := r.Intn(total + 1)
	for _, d := range world.Directions[:3] {
		w := int(c.Sensors[d]) + 1
		if dice < w {
			return d
		}
		dice -= w
	}
	return world.South
}
