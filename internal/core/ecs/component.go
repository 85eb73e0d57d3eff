package ecs

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	ErrAlreadyRegistered = errors.New("component already registered")
	ErrUnknownComponent  = errors.New("unknown component")
	ErrAmbiguousName     = errors.New("ambiguous component name")
)

// ComponentID is a dense id handed out at registration. Id 0 is reserved.
type ComponentID uint32

// StorageType is the physical layout used for a component's values.
type StorageType int

const (
	StorageTable     StorageType = iota // dense columns shared by archetypes
	StorageSparseSet                    // per-entity map
)

func (s StorageType) String() string {
	switch s {
	case StorageTable:
		return "Table"
	case StorageSparseSet:
		return "SparseSet"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// ComponentInfo describes a registered component or resource type.
type ComponentInfo struct {
	ID          ComponentID
	Name        string
	Storage     StorageType
	SendAndSync bool
}

// ShortName is Name with every path qualifier stripped.
func (c ComponentInfo) ShortName() string { return ShortName(c.Name) }

// Components is the descriptor registry. infos[0] is the reserved slot.
type Components struct {
	infos  []ComponentInfo
	byName map[string]ComponentID
}

func NewComponents() *Components {
	return &Components{
		infos:  make([]ComponentInfo, 1, 64),
		byName: make(map[string]ComponentID, 64),
	}
}

// Register adds a descriptor and returns its id.
func (c *Components) Register(name string, storage StorageType, sendAndSync bool) (ComponentID, error) {
	if name == "" {
		return 0, fmt.Errorf("register component: empty name")
	}
	if _, ok := c.byName[name]; ok {
		return 0, fmt.Errorf("register %s: %w", name, ErrAlreadyRegistered)
	}
	id := ComponentID(len(c.infos))
	c.infos = append(c.infos, ComponentInfo{
		ID:          id,
		Name:        name,
		Storage:     storage,
		SendAndSync: sendAndSync,
	})
	c.byName[name] = id
	return id, nil
}

// Lookup finds a component by its fully qualified name.
func (c *Components) Lookup(name string) (ComponentID, bool) {
	id, ok := c.byName[name]
	return id, ok
}

// Resolve finds a component by fully qualified name or, failing that, by a
// short name that only one component has.
func (c *Components) Resolve(name string) (ComponentID, error) {
	if id, ok := c.byName[name]; ok {
		return id, nil
	}
	var found ComponentID
	for _, info := range c.infos[1:] {
		if info.ShortName() != name {
			continue
		}
		if found != 0 {
			return 0, fmt.Errorf("resolve %s: %w", name, ErrAmbiguousName)
		}
		found = info.ID
	}
	if found == 0 {
		return 0, fmt.Errorf("resolve %s: %w", name, ErrUnknownComponent)
	}
	return found, nil
}

func (c *Components) Info(id ComponentID) (ComponentInfo, bool) {
	if id == 0 || int(id) >= len(c.infos) {
		return ComponentInfo{}, false
	}
	return c.infos[id], true
}

// Len is the exclusive upper bound of component ids, reserved slot included.
func (c *Components) Len() int { return len(c.infos) }

// Count is the number of registered descriptors.
func (c *Components) Count() int { return len(c.infos) - 1 }

// ShortName strips module, package and "::" path qualifiers from every type
// name inside a (possibly generic) type name:
//
//	github.com/l1jgo/debugconsole/internal/system.HostClock -> HostClock
//	demo::physics::Position                                  -> Position
//	pool.Store[github.com/x/y.Item]                          -> Store[Item]
func ShortName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	start := 0
	flush := func(end int) {
		b.WriteString(lastSegment(name[start:end]))
	}
	for i := 0; i < len(name); i++ {
		switch name[i] {
		case '[', ']', '<', '>', ',', ' ', '(', ')', '*', '&':
			flush(i)
			b.WriteByte(name[i])
			start = i + 1
		}
	}
	flush(len(name))
	return b.String()
}

func lastSegment(s string) string {
	if i := strings.LastIndex(s, "::"); i >= 0 {
		s = s[i+2:]
	}
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		s = s[i+1:]
	}
	return s
}

// TypeName is the fully qualified name used when a Go type is registered.
func TypeName(t reflect.Type) string {
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// SparseSet is a map-backed store for one sparse-set component.
type SparseSet struct {
	id   ComponentID
	data map[EntityID]any
}

func NewSparseSet(id ComponentID) *SparseSet {
	return &SparseSet{
		id:   id,
		data: make(map[EntityID]any, 64),
	}
}

func (s *SparseSet) Set(id EntityID, v any) {
	s.data[id] = v
}

func (s *SparseSet) Get(id EntityID) (any, bool) {
	v, ok := s.data[id]
	return v, ok
}

func (s *SparseSet) Remove(id EntityID) {
	delete(s.data, id)
}

func (s *SparseSet) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}
