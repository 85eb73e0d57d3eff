package data

import (
	"fmt"
	"os"

	"github.com/l1jgo/debugconsole/internal/core/ecs"
	"gopkg.in/yaml.v3"
)

// ComponentDecl declares a component or resource type by name.
type ComponentDecl struct {
	Name     string `yaml:"name"`
	Storage  string `yaml:"storage"`   // "table" (default) or "sparse_set"
	SendSync *bool  `yaml:"send_sync"` // default true
	Value    any    `yaml:"value"`     // initial value for spawns and resources
}

// SpawnGroup spawns Count entities holding the named components.
type SpawnGroup struct {
	Count      int      `yaml:"count"`
	Components []string `yaml:"components"`
}

// Scenario is the initial shape of the host world.
type Scenario struct {
	Name       string          `yaml:"name"`
	Components []ComponentDecl `yaml:"components"`
	Resources  []ComponentDecl `yaml:"resources"`
	Spawns     []SpawnGroup    `yaml:"spawns"`

	values map[string]any // declared values by full name
}

// LoadScenario loads a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	s.values = make(map[string]any, len(s.Components)+len(s.Resources))
	for _, decls := range [][]ComponentDecl{s.Components, s.Resources} {
		for _, d := range decls {
			if d.Name == "" {
				return fmt.Errorf("component declared without a name")
			}
			if _, err := d.storage(); err != nil {
				return err
			}
			s.values[d.Name] = d.Value
		}
	}
	for i, g := range s.Spawns {
		if g.Count < 0 {
			return fmt.Errorf("spawn group %d: negative count %d", i, g.Count)
		}
	}
	return nil
}

func (d ComponentDecl) storage() (ecs.StorageType, error) {
	switch d.Storage {
	case "", "table":
		return ecs.StorageTable, nil
	case "sparse_set":
		return ecs.StorageSparseSet, nil
	default:
		return 0, fmt.Errorf("component %s: unknown storage %q", d.Name, d.Storage)
	}
}

func (d ComponentDecl) sendSync() bool {
	return d.SendSync == nil || *d.SendSync
}

// Apply registers every declared component, inserts the resources and
// spawns the groups. Spawn groups may name components by full or short
// name. It returns the number of entities spawned.
func (s *Scenario) Apply(w *ecs.World) (int, error) {
	for _, d := range s.Components {
		if err := register(w, d); err != nil {
			return 0, err
		}
	}
	for _, d := range s.Resources {
		if err := register(w, d); err != nil {
			return 0, err
		}
		id, _ := w.Components().Lookup(d.Name)
		if err := w.InsertResource(id, d.Value); err != nil {
			return 0, fmt.Errorf("resource %s: %w", d.Name, err)
		}
	}

	spawned := 0
	for i, g := range s.Spawns {
		for n := 0; n < g.Count; n++ {
			values, err := s.Values(w, g.Components)
			if err != nil {
				return spawned, fmt.Errorf("spawn group %d: %w", i, err)
			}
			if _, err := w.Spawn(values); err != nil {
				return spawned, fmt.Errorf("spawn group %d: %w", i, err)
			}
			spawned++
		}
	}
	return spawned, nil
}

// Values resolves component names to ids paired with their declared
// initial values.
func (s *Scenario) Values(w *ecs.World, names []string) (map[ecs.ComponentID]any, error) {
	values := make(map[ecs.ComponentID]any, len(names))
	for _, name := range names {
		id, err := w.Components().Resolve(name)
		if err != nil {
			return nil, err
		}
		info, _ := w.ComponentInfo(id)
		values[id] = s.Value(info.Name)
	}
	return values, nil
}

// Value is the declared initial value for a component's full name.
func (s *Scenario) Value(fullName string) any {
	return s.values[fullName]
}

func register(w *ecs.World, d ComponentDecl) error {
	storage, err := d.storage()
	if err != nil {
		return err
	}
	if _, ok := w.Components().Lookup(d.Name); ok {
		return nil
	}
	if _, err := w.Components().Register(d.Name, storage, d.sendSync()); err != nil {
		return fmt.Errorf("register %s: %w", d.Name, err)
	}
	return nil
}

// Count returns the number of entities the scenario spawns.
func (s *Scenario) Count() int {
	n := 0
	for _, g := range s.Spawns {
		n += g.Count
	}
	return n
}
