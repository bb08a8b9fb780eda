package world

// Direction is one of the four cardinal directions. The order matches the
// sensor register layout and the bucket order of the direction selector.
type Direction uint8

const (
	East Direction = iota
	West
	North
	South
)

// Directions lists every direction in register order.
var Directions = [4]Direction{East, West, North, South}

// Delta returns the unit step for d. North is towards y=0.
func (d Direction) Delta() (int, int) {
	switch d {
	case East:
		return 1, 0
	case West:
		return -1, 0
	case North:
		return 0, -1
	default:
		return 0, 1
	}
}

func (d Direction) String() string {
	switch d {
	case East:
		return "E"
	case West:
		return "W"
	case North:
		return "N"
	default:
		return "S"
	}
}
