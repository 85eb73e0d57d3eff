package system

import (
	"time"

	"github.com/l1jgo/debugconsole/internal/core/event"
	coresys "github.com/l1jgo/debugconsole/internal/core/system"
)

// EventDispatchSystem delivers the previous tick's events. It runs first in
// PreUpdate so a pause requested during Input takes effect before the
// console step is consulted. Phase 1 (PreUpdate).
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
