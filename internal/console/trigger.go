package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/l1jgo/debugconsole/internal/console/input"
	"github.com/l1jgo/debugconsole/internal/console/runstate"
	"github.com/l1jgo/debugconsole/internal/core/event"
	coresys "github.com/l1jgo/debugconsole/internal/core/system"
	"go.uber.org/zap"
)

const runningHint = "Host is running. Type '%s' or press Enter to open the console.\n"

// PauseTrigger turns operator input into pause requests while the host is
// running. A line equal to the pause word, an empty line, or a value on
// signals each emit event.PauseRequested. Other lines are answered with a
// hint and dropped. While paused the console owns the line channel and the
// trigger only watches signals.
type PauseTrigger struct {
	ctl       *runstate.Controller
	lines     *input.Lines
	signals   <-chan os.Signal
	bus       *event.Bus
	pauseWord string
	out       io.Writer
	log       *zap.Logger
}

// NewPauseTrigger builds the trigger and subscribes the controller to
// PauseRequested on bus. signals may be nil.
func NewPauseTrigger(ctl *runstate.Controller, lines *input.Lines, signals <-chan os.Signal, bus *event.Bus, pauseWord string, out io.Writer, log *zap.Logger) *PauseTrigger {
	event.Subscribe(bus, func(ev event.PauseRequested) {
		if ctl.Paused() {
			return
		}
		log.Info("pause requested", zap.String("source", ev.Source))
		ctl.Pause()
	})
	return &PauseTrigger{
		ctl:       ctl,
		lines:     lines,
		signals:   signals,
		bus:       bus,
		pauseWord: pauseWord,
		out:       out,
		log:       log,
	}
}

func (t *PauseTrigger) Phase() coresys.Phase { return coresys.PhaseInput }

func (t *PauseTrigger) Update(_ time.Duration) {
	select {
	case sig := <-t.signals:
		event.Emit(t.bus, event.PauseRequested{Source: sig.String()})
	default:
	}
	if t.ctl.Paused() {
		return
	}
	line, ok := t.lines.TryRecv()
	if !ok {
		return
	}
	word := strings.TrimSpace(line)
	if word == "" || strings.EqualFold(word, t.pauseWord) {
		event.Emit(t.bus, event.PauseRequested{Source: "input"})
		return
	}
	t.log.Debug("input ignored while running", zap.String("line", line))
	if _, err := fmt.Fprintf(t.out, runningHint, t.pauseWord); err != nil {
		t.log.Warn("console write failed", zap.Error(err))
	}
}
