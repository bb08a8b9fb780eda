package system

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/genelife/genelife/internal/core/ecs"
	"github.com/genelife/genelife/internal/core/event"
	"github.com/genelife/genelife/internal/creature"
	"github.com/genelife/genelife/internal/persist"
	"github.com/genelife/genelife/internal/scripting"
	"github.com/genelife/genelife/internal/sim"
	"github.com/genelife/genelife/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newSim(t *testing.T, w, h uint32, count int, genes ...creature.Opcode) (*sim.Sim, *event.Bus) {
	t.Helper()
	bus := event.NewBus()
	s := sim.New(world.New(w, h, world.DefaultFood), rand.New(rand.NewSource(7)), bus, zap.NewNop())
	if err := s.Seed(count, genes); err != nil {
		t.Fatal(err)
	}
	return s, bus
}

func TestRoundSystemMaxRounds(t *testing.T) {
	s, _ := newSim(t, 8, 8, 4, creature.Eat)
	rs := NewRoundSystem(s, 3, zap.NewNop())
	for i := 0; i < 5; i++ {
		rs.Update(0)
	}
	if !rs.Done() || rs.Outcome() != OutcomeMaxRounds {
		t.Fatalf("done=%v outcome=%q", rs.Done(), rs.Outcome())
	}
	if s.Round() != 3 {
		t.Errorf("Round = %d, want 3", s.Round())
	}
}

func TestRoundSystemExtinction(t *testing.T) {
	// Nop herbivores pay 1 per round and never eat.
	s, _ := newSim(t, 4, 4, 2, creature.Nop)
	rs := NewRoundSystem(s, 0, zap.NewNop())
	for i := 0; i < 200 && !rs.Done(); i++ {
		rs.Update(0)
	}
	if rs.Outcome() != OutcomeExtinct {
		t.Fatalf("outcome = %q", rs.Outcome())
	}
	if s.Round() != creature.StartEnergy {
		t.Errorf("died at round %d, want %d", s.Round(), creature.StartEnergy)
	}
}

func TestRoundSystemStopKeepsFirstOutcome(t *testing.T) {
	s, _ := newSim(t, 4, 4, 1, creature.Eat)
	rs := NewRoundSystem(s, 1, zap.NewNop())
	rs.Update(0)
	rs.Stop(OutcomeInterrupted)
	if rs.Outcome() != OutcomeMaxRounds {
		t.Errorf("outcome = %q", rs.Outcome())
	}
}

func TestCensusCountsEvents(t *testing.T) {
	s, bus := newSim(t, 4, 4, 1, creature.Eat)
	cs := NewCensusSystem(s, bus)
	ds := NewEventDispatchSystem(bus)

	event.Emit(bus, event.CreatureBorn{Child: ecs.Handle{Index: 1, Generation: 99}})
	event.Emit(bus, event.CreatureDied{Cause: event.Killed})
	event.Emit(bus, event.CreatureDied{Cause: event.Starved})
	event.Emit(bus, event.CreatureDied{Cause: event.Starved})
	ds.Update(0)
	cs.Update(0)

	c := cs.Latest()
	if c.Births != 1 || c.Killed != 1 || c.Starved != 2 {
		t.Errorf("census = %+v", c)
	}
	if c.Population != 1 {
		t.Errorf("Population = %d", c.Population)
	}

	ds.Update(0)
	cs.Update(0)
	if c := cs.Latest(); c.Births != 0 || c.Starved != 0 {
		t.Errorf("counts not reset: %+v", c)
	}
	if tot := cs.Totals(); tot != (Totals{Births: 1, Starved: 2, Killed: 1}) {
		t.Errorf("Totals = %+v", tot)
	}
}

func TestCensusSeesStarvation(t *testing.T) {
	s, bus := newSim(t, 4, 4, 3, creature.Nop)
	rs := NewRoundSystem(s, 0, zap.NewNop())
	ds := NewEventDispatchSystem(bus)
	cs := NewCensusSystem(s, bus)
	for !rs.Done() {
		rs.Update(0)
		ds.Update(0)
		cs.Update(0)
	}
	if got := cs.Totals().Starved; got != 3 {
		t.Errorf("Starved = %d, want 3", got)
	}
	if c := cs.Latest(); c.Population != 0 || c.Starved != 3 {
		t.Errorf("final census = %+v", c)
	}
}

type haltAt struct {
	round uint64
	seen  []uint64
}

func (h *haltAt) OnRound(ctx scripting.RoundContext) bool {
	h.seen = append(h.seen, ctx.Round)
	return ctx.Round >= h.round
}

func TestScriptSystemHalts(t *testing.T) {
	s, bus := newSim(t, 8, 8, 4, creature.Eat)
	rs := NewRoundSystem(s, 0, zap.NewNop())
	cs := NewCensusSystem(s, bus)
	obs := &haltAt{round: 2}
	ss := NewScriptSystem(obs, cs, rs, zap.NewNop())

	for i := 0; i < 5 && !rs.Done(); i++ {
		rs.Update(0)
		cs.Update(0)
		ss.Update(0)
	}
	if !ss.Halted() || rs.Outcome() != OutcomeHalted {
		t.Fatalf("halted=%v outcome=%q", ss.Halted(), rs.Outcome())
	}
	if len(obs.seen) != 2 || obs.seen[0] != 1 || obs.seen[1] != 2 {
		t.Errorf("observer saw rounds %v", obs.seen)
	}
}

type memWriter struct {
	batches [][]persist.CensusRow
	err     error
}

func (m *memWriter) InsertBatch(_ context.Context, _ int64, rows []persist.CensusRow) error {
	if m.err != nil {
		return m.err
	}
	m.batches = append(m.batches, append([]persist.CensusRow(nil), rows...))
	return nil
}

func TestPersistenceBatches(t *testing.T) {
	s, bus := newSim(t, 8, 8, 4, creature.Eat)
	rs := NewRoundSystem(s, 0, zap.NewNop())
	cs := NewCensusSystem(s, bus)
	w := &memWriter{}
	ps := NewPersistenceSystem(w, 1, cs, zap.NewNop(), 3)

	for i := 0; i < 7; i++ {
		rs.Update(0)
		cs.Update(0)
		ps.Update(0)
	}
	if len(w.batches) != 2 || len(w.batches[0]) != 3 || len(w.batches[1]) != 3 {
		t.Fatalf("batches = %d", len(w.batches))
	}
	if w.batches[0][0].Round != 1 || w.batches[1][2].Round != 6 {
		t.Errorf("rounds %d..%d", w.batches[0][0].Round, w.batches[1][2].Round)
	}
	if ps.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", ps.Pending())
	}
	ps.Flush(context.Background())
	if len(w.batches) != 3 || w.batches[2][0].Round != 7 || ps.Pending() != 0 {
		t.Errorf("shutdown flush lost rows")
	}
}

func TestPersistenceSkipsRepeatedRound(t *testing.T) {
	s, bus := newSim(t, 4, 4, 0)
	cs := NewCensusSystem(s, bus)
	ps := NewPersistenceSystem(&memWriter{}, 1, cs, zap.NewNop(), 10)
	cs.Update(0)
	ps.Update(0)
	cs.Update(0)
	ps.Update(0)
	if ps.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", ps.Pending())
	}
}

func TestPersistenceFlushErrorLogged(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	s, bus := newSim(t, 4, 4, 1, creature.Eat)
	cs := NewCensusSystem(s, bus)
	ps := NewPersistenceSystem(&memWriter{err: errors.New("down")}, 1, cs, zap.New(core), 1)
	cs.Update(0)
	ps.Update(0)
	if logs.Len() != 1 {
		t.Fatalf("logged %d errors", logs.Len())
	}
	if ps.Pending() != 0 {
		t.Errorf("failed batch kept: %d", ps.Pending())
	}
}

func TestStatusEveryInterval(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s, bus := newSim(t, 4, 4, 2, creature.Eat)
	cs := NewCensusSystem(s, bus)
	st := NewStatusSystem(cs, zap.New(core), 2)
	for i := 0; i < 5; i++ {
		cs.Update(0)
		st.Update(0)
	}
	entries := logs.FilterMessage("status").All()
	if len(entries) != 2 {
		t.Fatalf("status lines = %d, want 2", len(entries))
	}
	if got := entries[0].ContextMap()["population"]; got != int64(2) {
		t.Errorf("population field = %v", got)
	}
}
