package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/l1jgo/debugconsole/internal/config"
	"github.com/l1jgo/debugconsole/internal/console"
	"github.com/l1jgo/debugconsole/internal/console/input"
	"github.com/l1jgo/debugconsole/internal/console/runstate"
	"github.com/l1jgo/debugconsole/internal/core/ecs"
	"github.com/l1jgo/debugconsole/internal/core/event"
	coresys "github.com/l1jgo/debugconsole/internal/core/system"
	"github.com/l1jgo/debugconsole/internal/data"
	"github.com/l1jgo/debugconsole/internal/remote"
	"github.com/l1jgo/debugconsole/internal/scripting"
	"github.com/l1jgo/debugconsole/internal/system"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

const displayWidth = 46

func printBanner(hostName string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Printf("\033[36;1m  │\033[0m%s\033[36;1m│\033[0m\n", center("ECS debug console", 43))
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mhost:\033[0m %s\n\n", hostName)
}

func center(s string, width int) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad/2) + s + strings.Repeat(" ", pad-pad/2)
}

func printSection(title string) {
	lineLen := max(displayWidth-runewidth.StringWidth(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(displayWidth-4-runewidth.StringWidth(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Host loop ─────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfg, err := config.Load(config.Path())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Host.Name)

	// 3. Build the world from the scenario
	printSection("world")
	world := ecs.NewWorld()
	var scenario *data.Scenario
	if cfg.Host.Scenario != "" {
		scenario, err = data.LoadScenario(cfg.Host.Scenario)
		if err != nil {
			return fmt.Errorf("scenario: %w", err)
		}
		spawned, err := scenario.Apply(world)
		if err != nil {
			return fmt.Errorf("apply scenario %s: %w", scenario.Name, err)
		}
		printOK(fmt.Sprintf("scenario %s", scenario.Name))
		printStat("entities", spawned)
	}
	printStat("components", world.ComponentsLen()-1)
	printStat("archetypes", world.ArchetypesLen())
	fmt.Println()

	// 4. Scripts
	var engine *scripting.Engine
	if cfg.Host.ScriptsDir != "" {
		printSection("scripts")
		engine, err = scripting.NewEngine(cfg.Host.ScriptsDir, log)
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer engine.Close()
		printOK(fmt.Sprintf("loaded %s", cfg.Host.ScriptsDir))
		fmt.Println()
	}

	// 5. Console plumbing
	enc, err := input.LookupEncoding(cfg.Console.InputEncoding)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lines := input.NewLines()
	outputs := []io.Writer{input.EncodeWriter(os.Stdout, enc)}

	var remoteSrv *remote.Server
	if cfg.Remote.Enabled {
		remoteSrv, err = remote.NewServer(cfg.Remote, cfg.Host.Name, lines, log)
		if err != nil {
			return fmt.Errorf("remote: %w", err)
		}
		outputs = append(outputs, remoteSrv.Writer())
		go func() {
			if err := remoteSrv.Serve(ctx); err != nil {
				log.Error("remote console stopped", zap.Error(err))
			}
		}()
	}
	out := io.MultiWriter(outputs...)

	if cfg.Console.Input == "stdin" {
		go func() {
			if err := input.ReadFrom(ctx, input.DecodeReader(os.Stdin, enc), lines); err != nil && !errors.Is(err, context.Canceled) {
				log.Warn("stdin reader stopped", zap.Error(err))
			}
			// With a remote console the channel stays open for operators.
			if remoteSrv == nil {
				lines.Close()
			}
		}()
	} else if remoteSrv == nil {
		lines.Close()
	}

	pauseSignals := make(chan os.Signal, 1)
	signal.Notify(pauseSignals, syscall.SIGUSR1)
	defer signal.Stop(pauseSignals)

	ctl := runstate.New(cfg.Host.StartPaused)
	disp := console.NewDispatcher(world, ctl, func() {
		log.Info("quit requested from console")
		if remoteSrv != nil {
			remoteSrv.Shutdown()
		}
		log.Sync()
		os.Exit(0)
	}, log)

	// 6. Create systems and register with runner
	bus := event.NewBus()
	runner := coresys.NewRunner(cfg.Console.PollInterval)
	runner.Register(console.NewPauseTrigger(ctl, lines, pauseSignals, bus, cfg.Console.PauseWord, out, log))
	runner.Register(system.NewEventDispatchSystem(bus))
	runner.Register(console.New(disp, ctl, lines, out, console.Options{
		Prompt: cfg.Console.Prompt,
		Banner: cfg.Console.Banner,
	}, log))
	if engine != nil {
		runner.Register(system.NewSimulationSystem(world, engine, scenario, bus, log))
	}
	tickSys, err := system.NewTickSystem(world, bus)
	if err != nil {
		return fmt.Errorf("tick system: %w", err)
	}
	runner.Register(tickSys)
	runner.Register(system.NewCleanupSystem(world, bus, log))

	// 7. Start host loop
	ticker := time.NewTicker(cfg.Host.TickRate)
	defer ticker.Stop()

	printSection("ready")
	if remoteSrv != nil {
		printReady(fmt.Sprintf("remote console on %s", remoteSrv.Addr()))
	}
	printReady(fmt.Sprintf("host loop running (tick: %s)", cfg.Host.TickRate))
	printReady(fmt.Sprintf("type '%s', press Enter or send SIGUSR1 to pause", cfg.Console.PauseWord))
	fmt.Println()

	for {
		select {
		case <-ticker.C:
			if err := runner.Tick(ctx, cfg.Host.TickRate); err != nil && ctx.Err() == nil {
				return fmt.Errorf("tick: %w", err)
			}
		case <-ctx.Done():
			log.Info("shutdown signal received")
			if remoteSrv != nil {
				remoteSrv.Shutdown()
			}
			log.Info("host stopped")
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	// Logs go to stderr so console output on stdout stays clean.
	zapCfg.OutputPaths = []string{"stderr"}

	return zapCfg.Build()
}
