package scripting

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"
)

func newTestEngine(t *testing.T, scripts map[string]string) *Engine {
	t.Helper()
	dir := t.TempDir()
	for name, src := range scripts {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func TestSimulateCommands(t *testing.T) {
	e := newTestEngine(t, map[string]string{
		"sim.lua": `
function simulate(ctx)
  return {
    { type = "spawn", components = { ctx.components[1], "Velocity" }, count = ctx.tick },
    { type = "despawn", entity = ctx.entities[#ctx.entities] },
    { type = "insert", entity = 3, component = "Tagged" },
    { type = "remove_resource", component = ctx.resources[1] },
  }
end`,
	})
	got := e.Simulate(SimContext{
		Tick:       2,
		Entities:   []uint32{1, 4, 7},
		Components: []string{"Position"},
		Resources:  []string{"Weather"},
	})
	want := []SimCommand{
		{Type: "spawn", Components: []string{"Position", "Velocity"}, Count: 2},
		{Type: "despawn", Entity: 7},
		{Type: "insert", Entity: 3, Component: "Tagged"},
		{Type: "remove_resource", Component: "Weather"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v\nwant %+v", got, want)
	}
}

func TestSimulateFailuresYieldNothing(t *testing.T) {
	cases := map[string]string{
		"missing function": `x = 1`,
		"runtime error":    `function simulate(ctx) error("boom") end`,
		"non-table result": `function simulate(ctx) return 42 end`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			e := newTestEngine(t, map[string]string{"sim.lua": src})
			if cmds := e.Simulate(SimContext{Tick: 1}); cmds != nil {
				t.Errorf("got %+v", cmds)
			}
		})
	}
}

func TestLoadOrderAndMissingDir(t *testing.T) {
	e := newTestEngine(t, map[string]string{
		"a.lua":     `order = "a"`,
		"b.lua":     `order = order .. "b"`,
		"notes.txt": `not lua`,
	})
	if err := e.LoadString(`function simulate(ctx) return { { type = order } } end`); err != nil {
		t.Fatal(err)
	}
	if cmds := e.Simulate(SimContext{}); len(cmds) != 1 || cmds[0].Type != "ab" {
		t.Errorf("cmds = %+v", cmds)
	}

	missing, err := NewEngine(filepath.Join(t.TempDir(), "absent"), zap.NewNop())
	if err != nil {
		t.Fatalf("missing dir: %v", err)
	}
	missing.Close()

	bad := t.TempDir()
	os.WriteFile(filepath.Join(bad, "bad.lua"), []byte("function ("), 0o644)
	if _, err := NewEngine(bad, zap.NewNop()); err == nil {
		t.Error("syntax error not reported")
	}
}

func TestSpawnBudget(t *testing.T) {
	e := newTestEngine(t, nil)
	if got := e.SpawnBudget(10, 8); got != 8 {
		t.Errorf("fallback = %d", got)
	}
	if err := e.LoadString(`function spawn_budget(live) return 100 - live end`); err != nil {
		t.Fatal(err)
	}
	if got := e.SpawnBudget(10, 8); got != 90 {
		t.Errorf("budget = %d", got)
	}
}

func TestChurnScript(t *testing.T) {
	e, err := NewEngine(filepath.Join("..", "..", "scripts", "sim"), zap.NewNop())
	if err != nil {
		t.Fatalf("load churn script: %v", err)
	}
	defer e.Close()
	cmds := e.Simulate(SimContext{Tick: 5, Components: []string{"Position", "Velocity"}})
	if len(cmds) != 1 || cmds[0].Type != "spawn" || cmds[0].Count != 2 {
		t.Errorf("tick 5 = %+v", cmds)
	}
	if got := e.SpawnBudget(64, 0); got != 0 {
		t.Errorf("budget at cap = %d", got)
	}
}
