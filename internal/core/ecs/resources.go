package ecs

import "slices"

// Resources holds process-wide singletons keyed by component id. Their ids
// are mirrored in a pseudo-archetype so they can be inspected like any
// other component set.
type Resources struct {
	values map[ComponentID]any
	arch   *Archetype
}

func NewResources() *Resources {
	return &Resources{
		values: make(map[ComponentID]any, 16),
		arch:   &Archetype{id: ResourceArchetypeID},
	}
}

func (r *Resources) get(id ComponentID) (any, bool) {
	v, ok := r.values[id]
	return v, ok
}

func (r *Resources) insert(info ComponentInfo, v any) {
	if _, ok := r.values[info.ID]; !ok {
		if info.Storage == StorageSparseSet {
			r.arch.sparse = withID(r.arch.sparse, info.ID)
		} else {
			r.arch.table = withID(r.arch.table, info.ID)
		}
	}
	r.values[info.ID] = v
}

func (r *Resources) remove(info ComponentInfo) bool {
	if _, ok := r.values[info.ID]; !ok {
		return false
	}
	delete(r.values, info.ID)
	r.arch.table = withoutID(r.arch.table, info.ID)
	r.arch.sparse = withoutID(r.arch.sparse, info.ID)
	return true
}

// IDs returns the resource ids in ascending order.
func (r *Resources) IDs() []ComponentID {
	ids := make([]ComponentID, 0, len(r.values))
	ids = append(ids, r.arch.table...)
	ids = append(ids, r.arch.sparse...)
	slices.Sort(ids)
	return ids
}
