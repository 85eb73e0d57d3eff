package console

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/l1jgo/debugconsole/internal/console/command"
	"github.com/l1jgo/debugconsole/internal/console/input"
	"github.com/l1jgo/debugconsole/internal/console/runstate"
	coresys "github.com/l1jgo/debugconsole/internal/core/system"
	"go.uber.org/zap"
)

const pausedNotice = "Host paused."

type Options struct {
	Prompt string
	Banner string
}

// Console is the interactive step. It runs in PreUpdate and, through its
// run criteria, holds the tick for as long as the host is paused: each
// round it handles at most one pending line.
type Console struct {
	disp    *Dispatcher
	ctl     *runstate.Controller
	lines   *input.Lines
	out     io.Writer
	opts    Options
	greeted bool
	log     *zap.Logger
}

func New(disp *Dispatcher, ctl *runstate.Controller, lines *input.Lines, out io.Writer, opts Options, log *zap.Logger) *Console {
	return &Console{
		disp:  disp,
		ctl:   ctl,
		lines: lines,
		out:   out,
		opts:  opts,
		log:   log,
	}
}

func (c *Console) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (c *Console) ShouldRun() coresys.RunDecision { return c.ctl.Tick() }

func (c *Console) Update(_ time.Duration) {
	if c.ctl.JustEnteredPause() {
		c.enter()
	}
	line, ok := c.lines.TryRecv()
	if !ok {
		if c.lines.Exhausted() {
			c.log.Info("console input closed, resuming host")
			c.ctl.Resume()
		}
		return
	}
	c.Execute(line)
}

func (c *Console) enter() {
	c.log.Info("host paused")
	if !c.greeted {
		c.greeted = true
		c.write(c.opts.Banner + "\n")
	} else {
		c.write(pausedNotice + "\n")
	}
	c.write(c.opts.Prompt)
}

// Execute parses and runs one line, writing the result and, if the host is
// still paused, a fresh prompt.
func (c *Console) Execute(line string) {
	if strings.TrimSpace(line) != "" {
		inv, err := command.ParseLine(line)
		var pe *command.ParseError
		switch {
		case errors.As(err, &pe):
			c.log.Debug("command rejected", zap.String("line", line), zap.Stringer("kind", pe.Kind))
			c.write(pe.Error() + "\n\n" + pe.Usage())
		case err != nil:
			c.write(err.Error() + "\n")
		default:
			c.write(c.disp.Dispatch(inv))
		}
	}
	if c.ctl.Paused() {
		c.write(c.opts.Prompt)
	}
}

func (c *Console) write(s string) {
	if s == "" {
		return
	}
	if _, err := io.WriteString(c.out, s); err != nil {
		c.log.Warn("console write failed", zap.Error(err))
	}
}
