package system

import (
	"context"
	"errors"
	"testing"
	"time"
)

type recorder struct {
	name  string
	phase Phase
	log   *[]string
}

func (r *recorder) Phase() Phase { return r.phase }
func (r *recorder) Update(time.Duration) {
	*r.log = append(*r.log, r.name)
}

// gated runs while budget lasts, then skips.
type gated struct {
	recorder
	budget int
	checks int
}

func (g *gated) ShouldRun() RunDecision {
	g.checks++
	if g.budget == 0 {
		return Skip
	}
	g.budget--
	return RunThenRecheck
}

func TestRunnerPhaseOrder(t *testing.T) {
	var log []string
	r := NewRunner(0)
	r.Register(&recorder{name: "cleanup", phase: PhaseCleanup, log: &log})
	r.Register(&recorder{name: "update", phase: PhaseUpdate, log: &log})
	r.Register(&recorder{name: "input-a", phase: PhaseInput, log: &log})
	r.Register(&recorder{name: "input-b", phase: PhaseInput, log: &log})

	if err := r.Tick(context.Background(), time.Millisecond); err != nil {
		t.Fatalf("tick: %v", err)
	}
	want := []string{"input-a", "input-b", "update", "cleanup"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("log = %v, want %v", log, want)
		}
	}
}

func TestRunnerRecheckHoldsTick(t *testing.T) {
	var log []string
	r := NewRunner(0)
	g := &gated{recorder: recorder{name: "console", phase: PhasePreUpdate, log: &log}, budget: 3}
	r.Register(g)
	r.Register(&recorder{name: "update", phase: PhaseUpdate, log: &log})

	if err := r.Tick(context.Background(), time.Millisecond); err != nil {
		t.Fatalf("tick: %v", err)
	}
	want := []string{"console", "console", "console", "update"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("log = %v, want %v", log, want)
		}
	}
	if g.checks != 4 {
		t.Errorf("criteria consulted %d times, want 4", g.checks)
	}
}

func TestRunnerSkipDoesNotRun(t *testing.T) {
	var log []string
	r := NewRunner(0)
	r.Register(&gated{recorder: recorder{name: "console", log: &log}})
	if err := r.Tick(context.Background(), time.Millisecond); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if len(log) != 0 {
		t.Errorf("skipped system ran: %v", log)
	}
}

func TestRunnerCancelWhileHeld(t *testing.T) {
	var log []string
	r := NewRunner(time.Millisecond)
	r.Register(&gated{recorder: recorder{name: "console", log: &log}, budget: -1})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := r.Tick(ctx, time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("tick err = %v, want deadline exceeded", err)
	}
	if len(log) == 0 {
		t.Error("held system never ran")
	}
}
