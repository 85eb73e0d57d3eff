package ecs

import (
	"errors"
	"fmt"
	"slices"
)

var ErrDeadEntity = errors.New("entity is not alive")

// EntityLocation is where a live entity's data currently sits.
type EntityLocation struct {
	Archetype ArchetypeID
	Row       int // index in the archetype's entity list
	TableRow  int
}

// World is the top-level ECS container. It owns the entity pool, the component
// descriptors, archetypes with their tables, sparse sets, resources, and a
// deferred destruction queue flushed by CleanupSystem each tick.
//
// A World is not safe for concurrent use; the host loop owns it.
type World struct {
	pool         *EntityPool
	components   *Components
	tables       *Tables
	archetypes   *Archetypes
	registry     *Registry
	resources    *Resources
	types        *TypeRegistry
	locations    []EntityLocation
	destroyQueue []EntityID
}

func NewWorld() *World {
	tables := NewTables()
	return &World{
		pool:         NewEntityPool(),
		components:   NewComponents(),
		tables:       tables,
		archetypes:   NewArchetypes(tables),
		registry:     NewRegistry(),
		resources:    NewResources(),
		types:        NewTypeRegistry(),
		locations:    make([]EntityLocation, 0, 1024),
		destroyQueue: make([]EntityID, 0, 64),
	}
}

func (w *World) Pool() *EntityPool       { return w.pool }
func (w *World) Components() *Components { return w.components }
func (w *World) Registry() *Registry     { return w.registry }
func (w *World) Resources() *Resources   { return w.resources }

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Spawn creates an entity holding the given component values. A nil map
// spawns into the empty archetype.
func (w *World) Spawn(values map[ComponentID]any) (EntityID, error) {
	var table, sparse []ComponentID
	for id := range values {
		info, ok := w.components.Info(id)
		if !ok {
			return 0, fmt.Errorf("spawn with component %d: %w", id, ErrUnknownComponent)
		}
		if info.Storage == StorageSparseSet {
			sparse = append(sparse, id)
		} else {
			table = append(table, id)
		}
	}
	slices.Sort(table)
	slices.Sort(sparse)

	arch := w.archetypes.getOrCreate(table, sparse, w.tables)
	e := w.pool.Create()
	t := w.tables.list[arch.tableID]
	w.setLocation(e.Index(), EntityLocation{
		Archetype: arch.id,
		Row:       arch.push(e),
		TableRow:  t.push(e),
	})
	for id, v := range values {
		w.write(e, id, v)
	}
	return e, nil
}

// Insert adds or overwrites component id on e, moving e to the archetype
// that matches its new component set.
func (w *World) Insert(e EntityID, id ComponentID, v any) error {
	if !w.pool.Alive(e) {
		return fmt.Errorf("insert %d: %w", id, ErrDeadEntity)
	}
	info, ok := w.components.Info(id)
	if !ok {
		return fmt.Errorf("insert %d: %w", id, ErrUnknownComponent)
	}
	loc := w.locations[e.Index()]
	arch := w.archetypes.list[loc.Archetype]
	if arch.Has(id) {
		w.write(e, id, v)
		return nil
	}

	table, sparse := arch.table, arch.sparse
	if info.Storage == StorageSparseSet {
		sparse = withID(sparse, id)
	} else {
		table = withID(table, id)
	}
	w.move(e, loc, w.archetypes.getOrCreate(table, sparse, w.tables))
	w.write(e, id, v)
	return nil
}

// Remove drops component id from e. Removing an absent component is a no-op.
func (w *World) Remove(e EntityID, id ComponentID) error {
	if !w.pool.Alive(e) {
		return fmt.Errorf("remove %d: %w", id, ErrDeadEntity)
	}
	loc := w.locations[e.Index()]
	arch := w.archetypes.list[loc.Archetype]
	if !arch.Has(id) {
		return nil
	}
	info, _ := w.components.Info(id)

	table, sparse := arch.table, arch.sparse
	if info.Storage == StorageSparseSet {
		sparse = withoutID(sparse, id)
		if s, ok := w.registry.Lookup(id); ok {
			s.Remove(e)
		}
	} else {
		table = withoutID(table, id)
	}
	w.move(e, loc, w.archetypes.getOrCreate(table, sparse, w.tables))
	return nil
}

// Get returns the value of component id on e.
func (w *World) Get(e EntityID, id ComponentID) (any, bool) {
	if !w.pool.Alive(e) {
		return nil, false
	}
	info, ok := w.components.Info(id)
	if !ok {
		return nil, false
	}
	loc := w.locations[e.Index()]
	if !w.archetypes.list[loc.Archetype].Has(id) {
		return nil, false
	}
	if info.Storage == StorageSparseSet {
		s, ok := w.registry.Lookup(id)
		if !ok {
			return nil, false
		}
		return s.Get(e)
	}
	return w.tables.list[w.archetypes.list[loc.Archetype].tableID].get(id, loc.TableRow)
}

// Despawn destroys e immediately.
func (w *World) Despawn(e EntityID) error {
	if !w.pool.Alive(e) {
		return ErrDeadEntity
	}
	loc := w.locations[e.Index()]
	arch := w.archetypes.list[loc.Archetype]
	if moved, ok := arch.swapRemove(loc.Row); ok {
		w.locations[moved.Index()].Row = loc.Row
	}
	t := w.tables.list[arch.tableID]
	if moved, ok := t.swapRemove(loc.TableRow); ok {
		w.locations[moved.Index()].TableRow = loc.TableRow
	}
	w.registry.RemoveAll(e)
	w.pool.Destroy(e)
	w.locations[e.Index()] = EntityLocation{}
	return nil
}

// MarkForDestruction queues an entity for end-of-tick cleanup.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// FlushDestroyQueue destroys all queued entities and clears their components.
// Called by CleanupSystem at the end of each tick. It returns the entities
// actually destroyed; stale or duplicate entries are skipped.
func (w *World) FlushDestroyQueue() []EntityID {
	var destroyed []EntityID
	for _, id := range w.destroyQueue {
		if w.Despawn(id) == nil {
			destroyed = append(destroyed, id)
		}
	}
	w.destroyQueue = w.destroyQueue[:0]
	return destroyed
}

// InsertResource sets the singleton value for a registered component id.
func (w *World) InsertResource(id ComponentID, v any) error {
	info, ok := w.components.Info(id)
	if !ok {
		return fmt.Errorf("insert resource %d: %w", id, ErrUnknownComponent)
	}
	w.resources.insert(info, v)
	return nil
}

// RemoveResource drops a resource. It reports whether one was present.
func (w *World) RemoveResource(id ComponentID) bool {
	info, ok := w.components.Info(id)
	if !ok {
		return false
	}
	return w.resources.remove(info)
}

func (w *World) Resource(id ComponentID) (any, bool) {
	return w.resources.get(id)
}

func (w *World) setLocation(index uint32, loc EntityLocation) {
	for int(index) >= len(w.locations) {
		w.locations = append(w.locations, EntityLocation{})
	}
	w.locations[index] = loc
}

func (w *World) write(e EntityID, id ComponentID, v any) {
	info, _ := w.components.Info(id)
	if info.Storage == StorageSparseSet {
		w.registry.Set(id).Set(e, v)
		return
	}
	loc := w.locations[e.Index()]
	w.tables.list[w.archetypes.list[loc.Archetype].tableID].set(id, loc.TableRow, v)
}

// move relocates e from loc into target, carrying over the table values that
// both tables share.
func (w *World) move(e EntityID, loc EntityLocation, target *Archetype) {
	src := w.archetypes.list[loc.Archetype]
	if moved, ok := src.swapRemove(loc.Row); ok {
		w.locations[moved.Index()].Row = loc.Row
	}
	next := EntityLocation{
		Archetype: target.id,
		Row:       target.push(e),
		TableRow:  loc.TableRow,
	}
	if target.tableID != src.tableID {
		from := w.tables.list[src.tableID]
		to := w.tables.list[target.tableID]
		row := to.push(e)
		for _, c := range to.components {
			if v, ok := from.get(c, loc.TableRow); ok {
				to.set(c, row, v)
			}
		}
		if moved, ok := from.swapRemove(loc.TableRow); ok {
			w.locations[moved.Index()].TableRow = loc.TableRow
		}
		next.TableRow = row
	}
	w.locations[e.Index()] = next
}
