package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM that drives world churn.
// Single-goroutine access only (host loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every *.lua file in scriptsDir in
// name order (os.ReadDir sorts). A missing directory loads nothing.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	e := &Engine{vm: vm, log: log}
	vm.SetGlobal("host_log", vm.NewFunction(e.hostLog))

	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load simulation scripts: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// LoadString runs a chunk of Lua source, e.g. an inline script from a test
// or an operator override.
func (e *Engine) LoadString(src string) error {
	return e.vm.DoString(src)
}

// hostLog lets scripts write to the host log: host_log(msg).
func (e *Engine) hostLog(L *lua.LState) int {
	e.log.Info("lua", zap.String("msg", L.CheckString(1)))
	return 0
}

// SimContext is the world summary handed to simulate(ctx).
type SimContext struct {
	Tick       uint64
	Entities   []uint32 // live entity indices
	Components []string // short names of spawnable components
	Resources  []string // short names of present resources
}

// SimCommand is a single world mutation returned by Lua.
type SimCommand struct {
	Type       string   // "spawn", "despawn", "insert", "remove", "insert_resource", "remove_resource"
	Entity     uint32   // despawn, insert, remove
	Component  string   // insert, remove, insert_resource, remove_resource
	Components []string // spawn
	Count      int      // spawn; 0 means 1
}

// Simulate calls Lua simulate(ctx) and returns its commands. A missing
// function or a failing call yields no commands.
func (e *Engine) Simulate(ctx SimContext) []SimCommand {
	fn := e.vm.GetGlobal("simulate")
	if fn == lua.LNil {
		return nil
	}

	t := e.vm.NewTable()
	t.RawSetString("tick", lua.LNumber(ctx.Tick))
	t.RawSetString("entities", e.intList(ctx.Entities))
	t.RawSetString("components", e.stringList(ctx.Components))
	t.RawSetString("resources", e.stringList(ctx.Resources))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua simulate error", zap.Error(err), zap.Uint64("tick", ctx.Tick))
		return nil
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return nil
	}

	// Parse commands array
	var cmds []SimCommand
	rt.ForEach(func(_, v lua.LValue) {
		row, ok := v.(*lua.LTable)
		if !ok {
			return
		}
		cmd := SimCommand{
			Type:      lStr(row, "type"),
			Entity:    uint32(lInt(row, "entity")),
			Component: lStr(row, "component"),
			Count:     lInt(row, "count"),
		}
		if list, ok := row.RawGetString("components").(*lua.LTable); ok {
			list.ForEach(func(_, name lua.LValue) {
				cmd.Components = append(cmd.Components, lua.LVAsString(name))
			})
		}
		cmds = append(cmds, cmd)
	})
	return cmds
}

// SpawnBudget calls Lua spawn_budget(live) if defined, returning fallback
// otherwise.
func (e *Engine) SpawnBudget(live, fallback int) int {
	if e.vm.GetGlobal("spawn_budget") == lua.LNil {
		return fallback
	}
	return e.callIntFunc("spawn_budget", live)
}

func (e *Engine) intList(vals []uint32) *lua.LTable {
	t := e.vm.CreateTable(len(vals), 0)
	for i, v := range vals {
		t.RawSetInt(i+1, lua.LNumber(v))
	}
	return t
}

func (e *Engine) stringList(vals []string) *lua.LTable {
	t := e.vm.CreateTable(len(vals), 0)
	for i, v := range vals {
		t.RawSetInt(i+1, lua.LString(v))
	}
	return t
}

// lInt reads an integer field from a Lua table.
func lInt(t *lua.LTable, key string) int {
	return int(lua.LVAsNumber(t.RawGetString(key)))
}

// lStr reads a string field from a Lua table.
func lStr(t *lua.LTable, key string) string {
	return lua.LVAsString(t.RawGetString(key))
}

// callIntFunc calls a Lua function with int args and returns an int result.
func (e *Engine) callIntFunc(name string, args ...int) int {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		e.log.Error("lua function not found", zap.String("name", name))
		return 0
	}

	lArgs := make([]lua.LValue, len(args))
	for i, a := range args {
		lArgs[i] = lua.LNumber(a)
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lArgs...); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return 0
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return int(lua.LVAsNumber(result))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
