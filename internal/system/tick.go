package system

import (
	"time"

	"github.com/l1jgo/debugconsole/internal/core/ecs"
	"github.com/l1jgo/debugconsole/internal/core/event"
	coresys "github.com/l1jgo/debugconsole/internal/core/system"
)

// HostClock is the host's bookkeeping resource, visible to the console as
// a resource named HostClock.
type HostClock struct {
	Ticks     uint64
	LastDelta time.Duration
	Elapsed   time.Duration
	Spawned   uint64
	Despawned uint64
}

// TickSystem advances HostClock once per completed tick and counts entity
// churn from the event bus. Phase 3 (PostUpdate).
type TickSystem struct {
	world *ecs.World
	clock HostClock
}

func NewTickSystem(world *ecs.World, bus *event.Bus) (*TickSystem, error) {
	s := &TickSystem{world: world}
	event.Subscribe(bus, func(event.EntitySpawned) { s.clock.Spawned++ })
	event.Subscribe(bus, func(event.EntityDespawned) { s.clock.Despawned++ })
	if err := ecs.SetResource(world, s.clock); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *TickSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *TickSystem) Update(dt time.Duration) {
	s.clock.Ticks++
	s.clock.LastDelta = dt
	s.clock.Elapsed += dt
	_ = ecs.SetResource(s.world, s.clock) // registered in NewTickSystem
}
