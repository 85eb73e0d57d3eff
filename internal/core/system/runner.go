package system

import (
	"context"
	"sort"
	"time"
)

// Runner executes systems in phase order each tick. Systems sharing a phase
// run in registration order.
type Runner struct {
	systems []System
	sorted  bool

	// recheck is the pause between consecutive runs of a Conditional system
	// that keeps answering RunThenRecheck.
	recheck time.Duration
}

func NewRunner(recheck time.Duration) *Runner {
	return &Runner{
		systems: make([]System, 0, 16),
		recheck: recheck,
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// Tick runs every system once, except Conditional systems which run for as
// long as their criteria answer RunThenRecheck. Such a system holds the tick
// (and every later phase) until it answers Skip or ctx is cancelled.
func (r *Runner) Tick(ctx context.Context, dt time.Duration) error {
	r.ensureSorted()
	for _, s := range r.systems {
		if err := r.run(ctx, s, dt); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) run(ctx context.Context, s System, dt time.Duration) error {
	c, ok := s.(Conditional)
	if !ok {
		s.Update(dt)
		return nil
	}
	for first := true; ; first = false {
		if err := ctx.Err(); err != nil {
			return err
		}
		if c.ShouldRun() == Skip {
			return nil
		}
		if !first && r.recheck > 0 {
			t := time.NewTimer(r.recheck)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		}
		s.Update(dt)
	}
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
