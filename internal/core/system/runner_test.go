package system

import (
	"testing"
	"time"
)

type recorder struct {
	name  string
	phase Phase
	log   *[]string
}

func (r recorder) Phase() Phase            { return r.phase }
func (r recorder) Update(_ time.Duration) { *r.log = append(*r.log, r.name) }

func TestTickRunsInPhaseOrder(t *testing.T) {
	var got []string
	r := NewRunner()
	r.Register(recorder{"report", PhaseReport, &got})
	r.Register(recorder{"census", PhaseCensus, &got})
	r.Register(recorder{"round", PhaseUpdate, &got})
	r.Register(recorder{"census2", PhaseCensus, &got})
	r.Register(recorder{"dispatch", PhaseDispatch, &got})

	r.Tick(0)
	want := []string{"round", "dispatch", "census", "census2", "report"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestTickPhase(t *testing.T) {
	var got []string
	r := NewRunner()
	r.Register(recorder{"round", PhaseUpdate, &got})
	r.Register(recorder{"persist", PhasePersist, &got})

	r.TickPhase(PhasePersist, 0)
	if len(got) != 1 || got[0] != "persist" {
		t.Fatalf("got %v", got)
	}
}
