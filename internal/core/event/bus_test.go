package event

import (
	"testing"

	"github.com/genelife/genelife/internal/core/ecs"
)

func TestEmitVisibleAfterSwap(t *testing.T) {
	b := NewBus()
	var born []CreatureBorn
	var died []CreatureDied
	Subscribe(b, func(e CreatureBorn) { born = append(born, e) })
	Subscribe(b, func(e CreatureDied) { died = append(died, e) })

	Emit(b, CreatureBorn{Round: 1, Child: ecs.Handle{Index: 2, Generation: 5}})
	Emit(b, CreatureDied{Round: 1, Cause: Killed})
	Emit(b, CreatureDied{Round: 1, Cause: Starved})
	if b.Pending() != 3 {
		t.Fatalf("Pending = %d, want 3", b.Pending())
	}

	if n := b.DispatchAll(); n != 0 {
		t.Fatalf("dispatched %d events before swap", n)
	}
	b.SwapBuffers()
	if n := b.DispatchAll(); n != 3 {
		t.Fatalf("DispatchAll = %d, want 3", n)
	}
	if len(born) != 1 || born[0].Child.Generation != 5 {
		t.Errorf("born = %+v", born)
	}
	if len(died) != 2 || died[0].Cause != Killed || died[1].Cause != Starved {
		t.Errorf("died = %+v", died)
	}

	// Next round starts empty.
	b.SwapBuffers()
	if n := b.DispatchAll(); n != 0 {
		t.Errorf("stale events redelivered: %d", n)
	}
}

func TestEmitOnNilBus(t *testing.T) {
	var b *Bus
	Emit(b, CreatureBorn{}) // must not panic
}

func TestDeathCauseString(t *testing.T) {
	if Starved.String() != "starved" || Killed.String() != "killed" {
		t.Errorf("got %q %q", Starved, Killed)
	}
}
