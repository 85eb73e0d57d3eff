// Package runstate tracks whether the host is paused for the console.
package runstate

import (
	"sync/atomic"

	"github.com/l1jgo/debugconsole/internal/core/system"
)

// Controller owns the paused flag and the one-tick "just entered pause"
// edge. Pause may be called from any goroutine (signal handlers, remote
// sessions); Tick and JustEnteredPause belong to the host loop.
type Controller struct {
	paused     atomic.Bool
	wasPaused  bool
	justPaused bool
}

// New returns a controller, optionally starting paused. A controller that
// starts paused reports the pause edge on its first tick.
func New(startPaused bool) *Controller {
	c := &Controller{}
	c.paused.Store(startPaused)
	return c
}

func (c *Controller) Pause()       { c.paused.Store(true) }
func (c *Controller) Resume()      { c.paused.Store(false) }
func (c *Controller) Paused() bool { return c.paused.Load() }

// Tick recomputes the pause edge and answers the host scheduler:
// RunThenRecheck while paused, Skip while running.
func (c *Controller) Tick() system.RunDecision {
	paused := c.paused.Load()
	c.justPaused = paused && !c.wasPaused
	c.wasPaused = paused
	if paused {
		return system.RunThenRecheck
	}
	return system.Skip
}

// JustEnteredPause is true only for the tick on which paused went from
// false to true.
func (c *Controller) JustEnteredPause() bool { return c.justPaused }
