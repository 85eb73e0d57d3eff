package system

import (
	"context"
	"reflect"
	"slices"
	"testing"
	"time"

	"github.com/l1jgo/debugconsole/internal/core/ecs"
	"github.com/l1jgo/debugconsole/internal/core/event"
	coresys "github.com/l1jgo/debugconsole/internal/core/system"
	"github.com/l1jgo/debugconsole/internal/data"
	"github.com/l1jgo/debugconsole/internal/scripting"
	"go.uber.org/zap"
)

// scripted replays one command list per call.
type scripted struct {
	ticks  [][]scripting.SimCommand
	seen   []scripting.SimContext
	budget int
}

func (s *scripted) Simulate(ctx scripting.SimContext) []scripting.SimCommand {
	s.seen = append(s.seen, ctx)
	if len(s.ticks) == 0 {
		return nil
	}
	cmds := s.ticks[0]
	s.ticks = s.ticks[1:]
	return cmds
}

func (s *scripted) SpawnBudget(_, fallback int) int {
	if s.budget > 0 {
		return s.budget
	}
	return fallback
}

type host struct {
	world  *ecs.World
	bus    *event.Bus
	runner *coresys.Runner
	sim    *scripted
}

func newHost(t *testing.T, sim *scripted) *host {
	t.Helper()
	scenario := &data.Scenario{
		Components: []data.ComponentDecl{
			{Name: "demo::physics::Position"},
			{Name: "demo::tags::Tagged", Storage: "sparse_set"},
		},
		Resources: []data.ComponentDecl{{Name: "demo::time::Weather"}},
		Spawns:    []data.SpawnGroup{{Count: 2, Components: []string{"Position"}}},
	}
	w := ecs.NewWorld()
	if _, err := scenario.Apply(w); err != nil {
		t.Fatal(err)
	}
	bus := event.NewBus()
	tick, err := NewTickSystem(w, bus)
	if err != nil {
		t.Fatal(err)
	}
	r := coresys.NewRunner(0)
	r.Register(NewEventDispatchSystem(bus))
	r.Register(NewSimulationSystem(w, sim, scenario, bus, zap.NewNop()))
	r.Register(tick)
	r.Register(NewCleanupSystem(w, bus, zap.NewNop()))
	return &host{world: w, bus: bus, runner: r, sim: sim}
}

func (h *host) tick(t *testing.T) {
	t.Helper()
	if err := h.runner.Tick(context.Background(), 10*time.Millisecond); err != nil {
		t.Fatal(err)
	}
}

func TestSimulationChurn(t *testing.T) {
	sim := &scripted{ticks: [][]scripting.SimCommand{
		{
			{Type: "spawn", Components: []string{"Position", "Tagged"}, Count: 3},
			{Type: "remove_resource", Component: "Weather"},
		},
		{
			{Type: "despawn", Entity: 0},
			{Type: "insert", Entity: 1, Component: "Tagged"},
			{Type: "despawn", Entity: 99},
			{Type: "bogus"},
		},
	}}
	h := newHost(t, sim)

	h.tick(t)
	if got := h.world.EntityCount(); got != 5 {
		t.Fatalf("live after spawn = %d", got)
	}
	if len(h.world.Resources().IDs()) != 1 {
		t.Errorf("resources = %v, want only HostClock", h.world.Resources().IDs())
	}

	h.tick(t)
	if got := h.world.EntityCount(); got != 4 {
		t.Errorf("live after despawn = %d", got)
	}
	tagged, _ := h.world.Components().Lookup("demo::tags::Tagged")
	if got := h.world.CountWith(tagged); got != 4 {
		t.Errorf("tagged = %d", got)
	}

	// Events from tick 2 are delivered at the start of tick 3.
	h.tick(t)
	clock, ok := ecs.ResourceOf[HostClock](h.world)
	if !ok {
		t.Fatal("HostClock missing")
	}
	if clock.Ticks != 3 || clock.Elapsed != 30*time.Millisecond {
		t.Errorf("clock = %+v", clock)
	}
	if clock.Spawned != 3 || clock.Despawned != 1 {
		t.Errorf("churn counters = %d/%d", clock.Spawned, clock.Despawned)
	}

	first := sim.seen[0]
	if first.Tick != 0 || len(first.Entities) != 2 {
		t.Errorf("first context = %+v", first)
	}
	if len(first.Components) != 2 || first.Components[0] != "Position" {
		t.Errorf("spawnable = %v", first.Components)
	}
	if len(first.Resources) != 2 {
		t.Errorf("resources seen = %v", first.Resources)
	}
	if sim.seen[1].Tick != 1 {
		t.Errorf("second tick number = %d", sim.seen[1].Tick)
	}
}

func TestSimulationSpawnBudget(t *testing.T) {
	sim := &scripted{
		budget: 2,
		ticks: [][]scripting.SimCommand{{
			{Type: "spawn", Components: []string{"Position"}, Count: 5},
			{Type: "spawn", Components: []string{"Position"}},
		}},
	}
	h := newHost(t, sim)
	h.tick(t)
	if got := h.world.EntityCount(); got != 4 {
		t.Errorf("live = %d, want 2 scenario + 2 budgeted", got)
	}
}

func TestSimulationRegistersBridgeTypes(t *testing.T) {
	h := newHost(t, &scripted{})
	names := h.world.TypeNames()
	for _, want := range []string{
		ecs.TypeName(reflect.TypeFor[scripting.SimContext]()),
		ecs.TypeName(reflect.TypeFor[scripting.SimCommand]()),
		ecs.TypeName(reflect.TypeFor[HostClock]()),
	} {
		if !slices.Contains(names, want) {
			t.Errorf("type %s not registered; have %v", want, names)
		}
	}
	if _, ok := ecs.ComponentOf[scripting.SimCommand](h.world); ok {
		t.Error("bridge type became a component")
	}
}
