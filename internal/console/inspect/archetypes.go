package inspect

import (
	"fmt"
	"slices"
	"strings"

	"github.com/l1jgo/debugconsole/internal/core/ecs"
)

// ListArchetypes renders "id entityCount" per archetype in host order.
func ListArchetypes(src MetadataSource) string {
	var b strings.Builder
	b.WriteString("[id] [entity count]\n")
	src.EachArchetype(func(a ecs.ArchetypeView) {
		fmt.Fprintf(&b, "%d %d\n", a.ID(), len(a.Entities()))
	})
	return b.String()
}

// DescribeArchetype renders an archetype's storage group, members and both
// component partitions.
func DescribeArchetype(src MetadataSource, id ecs.ArchetypeID) string {
	a, ok := src.Archetype(id)
	if !ok {
		return fmt.Sprintf("No archetype found with id: %d\n", id)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "id: %d\n", a.ID())
	fmt.Fprintf(&b, "table_id: %d\n", a.TableID())

	entities := a.Entities()
	fmt.Fprintf(&b, "entities (%d): ", len(entities))
	for _, e := range entities {
		fmt.Fprintf(&b, "%d, ", e.Index())
	}
	b.WriteByte('\n')

	table := a.TableComponents()
	fmt.Fprintf(&b, "table_components (%d): ", len(table))
	for _, c := range table {
		fmt.Fprintf(&b, "%d %s, ", c, shortNameOf(src, c))
	}
	b.WriteByte('\n')

	sparse := a.SparseSetComponents()
	fmt.Fprintf(&b, "sparse set components (%d): ", len(sparse))
	for _, c := range sparse {
		fmt.Fprintf(&b, "%d %s, ", c, shortNameOf(src, c))
	}
	b.WriteByte('\n')
	return b.String()
}

// FindArchetypesByComponentID lists the archetypes whose component set
// contains id.
func FindArchetypesByComponentID(src MetadataSource, id ecs.ComponentID) string {
	ids := archetypesWith(src, id)
	if len(ids) == 0 {
		return fmt.Sprintf("No archetype found with component id %d\n", id)
	}
	return archetypeIDList(ids)
}

// FindArchetypesByComponentName resolves name to exactly one component
// (substring match on full names) and lists its archetypes. Zero or several
// matches are reported instead of guessed.
func FindArchetypesByComponentName(src MetadataSource, name string) string {
	matches := components(src, true, name)
	switch len(matches) {
	case 0:
		return fmt.Sprintf("No component found with name %s\n", name)
	case 1:
		return FindArchetypesByComponentID(src, matches[0].id)
	default:
		return ambiguous(name, matches)
	}
}

// FindArchetypesByEntityID lists the archetype holding the live entity with
// the given index.
func FindArchetypesByEntityID(src MetadataSource, entityID uint32) string {
	var ids []ecs.ArchetypeID
	src.EachArchetype(func(a ecs.ArchetypeView) {
		if slices.ContainsFunc(a.Entities(), func(e ecs.EntityID) bool { return e.Index() == entityID }) {
			ids = append(ids, a.ID())
		}
	})
	if len(ids) == 0 {
		return fmt.Sprintf("No archetype found with entity id %d\n", entityID)
	}
	return archetypeIDList(ids)
}

func archetypesWith(src MetadataSource, id ecs.ComponentID) []ecs.ArchetypeID {
	var ids []ecs.ArchetypeID
	src.EachArchetype(func(a ecs.ArchetypeView) {
		if hasComponent(a, id) {
			ids = append(ids, a.ID())
		}
	})
	return ids
}

func hasComponent(a ecs.ArchetypeView, id ecs.ComponentID) bool {
	return slices.Contains(a.TableComponents(), id) || slices.Contains(a.SparseSetComponents(), id)
}

func archetypeIDList(ids []ecs.ArchetypeID) string {
	var b strings.Builder
	b.WriteString("archetype ids:\n")
	for _, id := range ids {
		fmt.Fprintf(&b, "%d, ", id)
	}
	b.WriteByte('\n')
	return b.String()
}
