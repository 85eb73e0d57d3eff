package inspect

import (
	"fmt"
	"slices"
	"strings"

	"github.com/l1jgo/debugconsole/internal/core/ecs"
)

// ListResources renders the short names of all registered resources in
// lexicographic order.
func ListResources(src MetadataSource) string {
	ra := src.ResourceArchetype()
	var names []string
	for _, ids := range [][]ecs.ComponentID{ra.TableComponents(), ra.SparseSetComponents()} {
		for _, id := range ids {
			names = append(names, shortNameOf(src, id))
		}
	}
	slices.Sort(names)

	var b strings.Builder
	b.WriteString("[resource name]\n")
	for _, n := range names {
		b.WriteString(n)
		b.WriteByte('\n')
	}
	return b.String()
}

// CountsSummary renders live entity, registered component and archetype
// totals on one line.
func CountsSummary(src MetadataSource) string {
	registered := 0
	for i := 1; i < src.ComponentsLen(); i++ {
		if _, ok := src.ComponentInfo(ecs.ComponentID(i)); ok {
			registered++
		}
	}
	return fmt.Sprintf("entities: %d, components: %d, archetypes: %d\n",
		src.EntityCount(), registered, src.ArchetypesLen())
}

// ListTypes renders the short names of the host's reflected types in
// registration order.
func ListTypes(src MetadataSource) string {
	names := src.TypeNames()
	if len(names) == 0 {
		return "No reflected types registered\n"
	}
	var b strings.Builder
	for _, n := range names {
		b.WriteString(ecs.ShortName(n))
		b.WriteByte('\n')
	}
	return b.String()
}
