package system

import (
	"time"

	"github.com/genelife/genelife/internal/core/event"
	coresys "github.com/genelife/genelife/internal/core/system"
)

// EventDispatchSystem delivers the births and deaths emitted during this
// tick's round. Phase 1 (Dispatch).
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhaseDispatch }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
