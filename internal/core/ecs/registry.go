package ecs

// Removable is implemented by every per-entity store so the world can
// bulk-remove an entity's data on despawn.
type Removable interface {
	Remove(id EntityID)
}

// Registry tracks the sparse-set stores, created on first use per component.
type Registry struct {
	sets   map[ComponentID]*SparseSet
	stores []Removable
}

func NewRegistry() *Registry {
	return &Registry{
		sets:   make(map[ComponentID]*SparseSet, 16),
		stores: make([]Removable, 0, 16),
	}
}

// Set returns the sparse set for id, creating it if needed.
func (r *Registry) Set(id ComponentID) *SparseSet {
	if s, ok := r.sets[id]; ok {
		return s
	}
	s := NewSparseSet(id)
	r.sets[id] = s
	r.stores = append(r.stores, s)
	return s
}

// Lookup returns the sparse set for id without creating it.
func (r *Registry) Lookup(id ComponentID) (*SparseSet, bool) {
	s, ok := r.sets[id]
	return s, ok
}

// RemoveAll clears the given entity from every registered store.
func (r *Registry) RemoveAll(id EntityID) {
	for _, s := range r.stores {
		s.Remove(id)
	}
}
