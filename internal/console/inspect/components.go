package inspect

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/l1jgo/debugconsole/internal/core/ecs"
)

func containsName(name, filter string) bool {
	return strings.Contains(name, filter)
}

// ListComponents renders "id name" per registered component, sorted by id
// then name. Names are short unless long is set; a non-empty filter keeps
// names containing it (case-sensitive).
func ListComponents(src MetadataSource, long bool, filter string) string {
	entries := components(src, long, filter)
	if len(entries) == 0 {
		if filter != "" {
			return fmt.Sprintf("No component found matching %s\n", filter)
		}
		return "No components registered\n"
	}
	slices.SortFunc(entries, func(a, b componentEntry) int {
		if c := cmp.Compare(a.id, b.id); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%d %s\n", e.id, e.name)
	}
	return b.String()
}

// DescribeComponent renders one component descriptor.
func DescribeComponent(src MetadataSource, id ecs.ComponentID) string {
	info, ok := src.ComponentInfo(id)
	if !ok {
		return fmt.Sprintf("No component found with id: %d\n", id)
	}
	var b strings.Builder
	writeComponent(&b, info)
	return b.String()
}

// DescribeComponentByName describes every component whose full name
// contains name.
func DescribeComponentByName(src MetadataSource, name string) string {
	matches := components(src, true, name)
	if len(matches) == 0 {
		return fmt.Sprintf("No component found with name %s\n", name)
	}
	var b strings.Builder
	for i, m := range matches {
		if i > 0 {
			b.WriteByte('\n')
		}
		info, _ := src.ComponentInfo(m.id)
		writeComponent(&b, info)
	}
	return b.String()
}

func writeComponent(b *strings.Builder, info ecs.ComponentInfo) {
	fmt.Fprintf(b, "Name: %s\n", info.Name)
	fmt.Fprintf(b, "Id: %d\n", info.ID)
	fmt.Fprintf(b, "StorageType: %s\n", info.Storage)
	fmt.Fprintf(b, "SendAndSync: %t\n", info.SendAndSync)
}

// shortNameOf resolves id to its short name for listings embedded in other
// reports.
func shortNameOf(src MetadataSource, id ecs.ComponentID) string {
	info, ok := src.ComponentInfo(id)
	if !ok {
		return "<unregistered>"
	}
	return info.ShortName()
}

// ambiguous renders the candidate list for a name that resolved to more
// than one component.
func ambiguous(name string, matches []componentEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "More than one component found with name %s\n", name)
	b.WriteString("Consider searching with '--componentid' instead\n\n")
	b.WriteString("[component id] [component name]\n")
	for _, m := range matches {
		fmt.Fprintf(&b, "%d %s\n", m.id, m.name)
	}
	return b.String()
}
