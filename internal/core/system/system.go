package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: drain input queues, pause triggers
	PhasePreUpdate               // 1: dispatch last tick's events, debug console
	PhaseUpdate                  // 2: simulation
	PhasePostUpdate              // 3: host bookkeeping resources
	PhaseOutput                  // 4: flush output
	PhaseCleanup                 // 5: destroy queued entities
)

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}

// RunDecision is a system's answer to "should I run now?".
type RunDecision int

const (
	// Skip leaves the system out of this tick.
	Skip RunDecision = iota
	// RunThenRecheck runs the system and asks again before the tick moves on.
	RunThenRecheck
)

func (d RunDecision) String() string {
	switch d {
	case Skip:
		return "Skip"
	case RunThenRecheck:
		return "RunThenRecheck"
	default:
		return "Unknown"
	}
}

// Conditional systems are gated by run criteria consulted every tick.
type Conditional interface {
	System
	ShouldRun() RunDecision
}
