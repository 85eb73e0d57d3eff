package system

import (
	"fmt"
	"time"

	"github.com/l1jgo/debugconsole/internal/core/ecs"
	"github.com/l1jgo/debugconsole/internal/core/event"
	coresys "github.com/l1jgo/debugconsole/internal/core/system"
	"github.com/l1jgo/debugconsole/internal/data"
	"github.com/l1jgo/debugconsole/internal/scripting"
	"go.uber.org/zap"
)

// defaultSpawnBudget caps spawns per tick when the scripts define no
// spawn_budget.
const defaultSpawnBudget = 16

// Simulator produces world mutations for one tick.
type Simulator interface {
	Simulate(ctx scripting.SimContext) []scripting.SimCommand
	SpawnBudget(live, fallback int) int
}

// SimulationSystem asks the Lua simulation for commands each running tick
// and applies them to the world. Despawns are deferred to CleanupSystem.
// Phase 2 (Update).
type SimulationSystem struct {
	world     *ecs.World
	sim       Simulator
	scenario  *data.Scenario
	spawnable []string
	bus       *event.Bus
	log       *zap.Logger
}

// NewSimulationSystem wires sim to world. scenario supplies initial values
// and the spawnable component names; nil means an empty scenario.
func NewSimulationSystem(world *ecs.World, sim Simulator, scenario *data.Scenario, bus *event.Bus, log *zap.Logger) *SimulationSystem {
	if scenario == nil {
		scenario = &data.Scenario{}
	}
	// The script bridge types are not components but show up in reflect list.
	ecs.RegisterType[scripting.SimContext](world)
	ecs.RegisterType[scripting.SimCommand](world)

	spawnable := make([]string, 0, len(scenario.Components))
	for _, d := range scenario.Components {
		spawnable = append(spawnable, ecs.ShortName(d.Name))
	}
	return &SimulationSystem{
		world:     world,
		sim:       sim,
		scenario:  scenario,
		spawnable: spawnable,
		bus:       bus,
		log:       log,
	}
}

func (s *SimulationSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *SimulationSystem) Update(_ time.Duration) {
	clock, _ := ecs.ResourceOf[HostClock](s.world)
	ctx := scripting.SimContext{
		Tick:       clock.Ticks,
		Components: s.spawnable,
	}
	s.world.Each(func(e ecs.EntityID) {
		ctx.Entities = append(ctx.Entities, e.Index())
	})
	for _, id := range s.world.Resources().IDs() {
		info, _ := s.world.ComponentInfo(id)
		ctx.Resources = append(ctx.Resources, info.ShortName())
	}

	budget := s.sim.SpawnBudget(len(ctx.Entities), defaultSpawnBudget)
	for _, cmd := range s.sim.Simulate(ctx) {
		if err := s.apply(cmd, &budget); err != nil {
			s.log.Debug("simulation command skipped",
				zap.String("type", cmd.Type),
				zap.Uint32("entity", cmd.Entity),
				zap.String("component", cmd.Component),
				zap.Error(err),
			)
		}
	}
}

func (s *SimulationSystem) apply(cmd scripting.SimCommand, budget *int) error {
	switch cmd.Type {
	case "spawn":
		count := max(cmd.Count, 1)
		for i := 0; i < count && *budget > 0; i++ {
			values, err := s.scenario.Values(s.world, cmd.Components)
			if err != nil {
				return err
			}
			e, err := s.world.Spawn(values)
			if err != nil {
				return err
			}
			*budget--
			event.Emit(s.bus, event.EntitySpawned{EntityID: e})
		}
		return nil
	case "despawn":
		e, err := s.live(cmd.Entity)
		if err != nil {
			return err
		}
		s.world.MarkForDestruction(e)
		return nil
	case "insert", "remove":
		e, err := s.live(cmd.Entity)
		if err != nil {
			return err
		}
		id, err := s.world.Components().Resolve(cmd.Component)
		if err != nil {
			return err
		}
		if cmd.Type == "remove" {
			return s.world.Remove(e, id)
		}
		info, _ := s.world.ComponentInfo(id)
		return s.world.Insert(e, id, s.scenario.Value(info.Name))
	case "insert_resource":
		id, err := s.world.Components().Resolve(cmd.Component)
		if err != nil {
			return err
		}
		info, _ := s.world.ComponentInfo(id)
		return s.world.InsertResource(id, s.scenario.Value(info.Name))
	case "remove_resource":
		id, err := s.world.Components().Resolve(cmd.Component)
		if err != nil {
			return err
		}
		s.world.RemoveResource(id)
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd.Type)
	}
}

func (s *SimulationSystem) live(index uint32) (ecs.EntityID, error) {
	e, ok := s.world.Pool().Current(index)
	if !ok {
		return 0, fmt.Errorf("entity %d: %w", index, ecs.ErrDeadEntity)
	}
	return e, nil
}
