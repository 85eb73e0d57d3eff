package ecs

import "reflect"

// TypeRegistry records the Go types registered with the world, in
// registration order.
type TypeRegistry struct {
	types []reflect.Type
	seen  map[reflect.Type]struct{}
}

func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		seen: make(map[reflect.Type]struct{}, 16),
	}
}

// Register adds t once; repeated registrations are ignored.
func (r *TypeRegistry) Register(t reflect.Type) {
	if _, ok := r.seen[t]; ok {
		return
	}
	r.seen[t] = struct{}{}
	r.types = append(r.types, t)
}

// Names returns the fully qualified type names.
func (r *TypeRegistry) Names() []string {
	names := make([]string, len(r.types))
	for i, t := range r.types {
		names[i] = TypeName(t)
	}
	return names
}

// RegisterType records T without making it a component.
func RegisterType[T any](w *World) {
	w.types.Register(reflect.TypeFor[T]())
}

// RegisterComponent registers T as a component named after its Go type.
// Registering the same type twice returns the existing id.
func RegisterComponent[T any](w *World, storage StorageType, sendAndSync bool) (ComponentID, error) {
	t := reflect.TypeFor[T]()
	w.types.Register(t)
	if id, ok := w.components.Lookup(TypeName(t)); ok {
		return id, nil
	}
	return w.components.Register(TypeName(t), storage, sendAndSync)
}

// ComponentOf returns the id T was registered under.
func ComponentOf[T any](w *World) (ComponentID, bool) {
	return w.components.Lookup(TypeName(reflect.TypeFor[T]()))
}

// Get returns e's value of component T.
func Get[T any](w *World, e EntityID) (T, bool) {
	var zero T
	id, ok := ComponentOf[T](w)
	if !ok {
		return zero, false
	}
	v, ok := w.Get(e, id)
	if !ok {
		return zero, false
	}
	tv, ok := v.(T)
	return tv, ok
}

// SetResource registers T if needed and stores v as its resource value.
func SetResource[T any](w *World, v T) error {
	id, err := RegisterComponent[T](w, StorageTable, true)
	if err != nil {
		return err
	}
	return w.InsertResource(id, v)
}

// ResourceOf returns the resource value of type T.
func ResourceOf[T any](w *World) (T, bool) {
	var zero T
	id, ok := ComponentOf[T](w)
	if !ok {
		return zero, false
	}
	v, ok := w.Resource(id)
	if !ok {
		return zero, false
	}
	tv, ok := v.(T)
	return tv, ok
}
