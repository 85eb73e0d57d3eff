// Package inspect answers read-only questions about a running ECS world and
// renders the answers as operator-facing text.
//
// Every query borrows a MetadataSource for the duration of one call and
// reads live state; nothing is cached between calls.
package inspect

import "github.com/l1jgo/debugconsole/internal/core/ecs"

// MetadataSource is the host's read-only view of its world: the component
// registry, the archetype registry (plus the resource pseudo-archetype), the
// entity table and the reflected type registry.
type MetadataSource interface {
	// ComponentsLen is the exclusive upper bound of component ids. Id 0 is
	// reserved and never resolves.
	ComponentsLen() int
	ComponentInfo(id ecs.ComponentID) (ecs.ComponentInfo, bool)

	ArchetypesLen() int
	Archetype(id ecs.ArchetypeID) (ecs.ArchetypeView, bool)
	// EachArchetype visits archetypes in host order.
	EachArchetype(fn func(ecs.ArchetypeView))
	ResourceArchetype() ecs.ArchetypeView

	// EntitiesLen is the size of the entity index space; EntityCount the
	// number of live entities.
	EntitiesLen() int
	EntityCount() int
	EntityLocation(index uint32) (ecs.EntityLocation, bool)

	TypeNames() []string
}

// componentEntry is an (id, name) pair as listed to the operator.
type componentEntry struct {
	id   ecs.ComponentID
	name string
}

// components collects every resolvable component, with short or full names,
// keeping those whose name contains filter.
func components(src MetadataSource, long bool, filter string) []componentEntry {
	var out []componentEntry
	for i := 1; i < src.ComponentsLen(); i++ {
		info, ok := src.ComponentInfo(ecs.ComponentID(i))
		if !ok {
			continue
		}
		name := info.ShortName()
		if long {
			name = info.Name
		}
		out = append(out, componentEntry{id: info.ID, name: name})
	}
	if filter == "" {
		return out
	}
	kept := out[:0]
	for _, c := range out {
		if containsName(c.name, filter) {
			kept = append(kept, c)
		}
	}
	return kept
}
