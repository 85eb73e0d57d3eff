package inspect

import (
	"fmt"
	"strings"

	"github.com/l1jgo/debugconsole/internal/core/ecs"
)

// ListEntities renders "index archetypeId" for every index that currently
// resolves to a live entity.
func ListEntities(src MetadataSource) string {
	var b strings.Builder
	b.WriteString("[entity index] [archetype id]\n")
	for i := 0; i < src.EntitiesLen(); i++ {
		loc, ok := src.EntityLocation(uint32(i))
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%d %d\n", i, loc.Archetype)
	}
	return b.String()
}

// FindEntitiesByComponentID lists the entities holding component id.
func FindEntitiesByComponentID(src MetadataSource, id ecs.ComponentID) string {
	entities := entitiesWith(src, id)
	if len(entities) == 0 {
		return fmt.Sprintf("No entity found with component id %d\n", id)
	}
	var b strings.Builder
	b.WriteString("entity ids:\n")
	writeEntityIDs(&b, entities)
	return b.String()
}

// FindEntitiesByComponentName lists entities for every component whose full
// name contains name, one group per matching component. Unlike the
// archetype search it does not require the name to be unique.
func FindEntitiesByComponentName(src MetadataSource, name string) string {
	matches := components(src, true, name)
	if len(matches) == 0 {
		return fmt.Sprintf("No component found with name %s\n", name)
	}
	var b strings.Builder
	for i, m := range matches {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "[%d] %s\n", m.id, m.name)
		entities := entitiesWith(src, m.id)
		if len(entities) == 0 {
			b.WriteString("no entities\n")
			continue
		}
		writeEntityIDs(&b, entities)
	}
	return b.String()
}

func entitiesWith(src MetadataSource, id ecs.ComponentID) []ecs.EntityID {
	var out []ecs.EntityID
	src.EachArchetype(func(a ecs.ArchetypeView) {
		if hasComponent(a, id) {
			out = append(out, a.Entities()...)
		}
	})
	return out
}

func writeEntityIDs(b *strings.Builder, entities []ecs.EntityID) {
	for _, e := range entities {
		fmt.Fprintf(b, "%d\n", e.Index())
	}
}
