package ecs

// Each calls fn for every live entity whose component set contains all of
// ids. It walks matching archetypes rather than entities, so archetypes
// missing any id are skipped whole.
func (w *World) Each(fn func(EntityID), ids ...ComponentID) {
	for _, a := range w.archetypes.list {
		if !hasAll(a, ids) {
			continue
		}
		for _, e := range a.entities {
			fn(e)
		}
	}
}

// CountWith returns how many live entities hold all of ids.
func (w *World) CountWith(ids ...ComponentID) int {
	n := 0
	for _, a := range w.archetypes.list {
		if hasAll(a, ids) {
			n += len(a.entities)
		}
	}
	return n
}

func hasAll(a *Archetype, ids []ComponentID) bool {
	for _, id := range ids {
		if !a.Has(id) {
			return false
		}
	}
	return true
}
