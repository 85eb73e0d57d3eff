package system

import (
	"time"

	"github.com/l1jgo/debugconsole/internal/core/ecs"
	"github.com/l1jgo/debugconsole/internal/core/event"
	coresys "github.com/l1jgo/debugconsole/internal/core/system"
	"go.uber.org/zap"
)

// CleanupSystem flushes the deferred entity destruction queue at tick end
// and announces each destroyed entity. Phase 5 (Cleanup).
type CleanupSystem struct {
	world *ecs.World
	bus   *event.Bus
	log   *zap.Logger
}

func NewCleanupSystem(world *ecs.World, bus *event.Bus, log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{world: world, bus: bus, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	destroyed := s.world.FlushDestroyQueue()
	for _, e := range destroyed {
		event.Emit(s.bus, event.EntityDespawned{EntityID: e})
	}
	if len(destroyed) > 0 {
		s.log.Debug("entities destroyed", zap.Int("count", len(destroyed)))
	}
}
