package ecs

// Read-only accessors used by introspection tools. They expose the three
// registries (components, archetypes, entities) plus the resource
// pseudo-archetype and the type registry without handing out the World's
// mutable internals.

func (w *World) ComponentsLen() int { return w.components.Len() }

func (w *World) ComponentInfo(id ComponentID) (ComponentInfo, bool) {
	return w.components.Info(id)
}

func (w *World) ArchetypesLen() int { return w.archetypes.Len() }

func (w *World) Archetype(id ArchetypeID) (ArchetypeView, bool) {
	a, ok := w.archetypes.Get(id)
	if !ok {
		return nil, false
	}
	return a, true
}

func (w *World) EachArchetype(fn func(ArchetypeView)) {
	for _, a := range w.archetypes.list {
		fn(a)
	}
}

func (w *World) ResourceArchetype() ArchetypeView { return w.resources.arch }

func (w *World) EntitiesLen() int { return w.pool.Len() }

func (w *World) EntityCount() int { return w.pool.Count() }

// EntityLocation resolves an entity index to its current location. Indices
// that are free (destroyed and not yet reused) do not resolve.
func (w *World) EntityLocation(index uint32) (EntityLocation, bool) {
	if _, ok := w.pool.Current(index); !ok {
		return EntityLocation{}, false
	}
	return w.locations[index], true
}

func (w *World) TypeNames() []string { return w.types.Names() }
