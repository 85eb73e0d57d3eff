package ecs

import (
	"math"
	"slices"
)

// ArchetypeID identifies an archetype. Ids are dense and never reused.
type ArchetypeID uint32

const (
	// EmptyArchetypeID holds entities without components. It always exists.
	EmptyArchetypeID ArchetypeID = 0
	// ResourceArchetypeID is the pseudo-archetype grouping resources. It is
	// not part of the archetype list.
	ResourceArchetypeID ArchetypeID = math.MaxUint32
)

// ArchetypeView is the read-only face of an archetype. Returned slices are
// owned by the world and must not be modified.
type ArchetypeView interface {
	ID() ArchetypeID
	TableID() TableID
	Entities() []EntityID
	TableComponents() []ComponentID
	SparseSetComponents() []ComponentID
}

// Archetype groups the entities sharing one exact component set. The table
// and sparse component sets are sorted and disjoint.
type Archetype struct {
	id       ArchetypeID
	tableID  TableID
	table    []ComponentID
	sparse   []ComponentID
	entities []EntityID
}

func (a *Archetype) ID() ArchetypeID                    { return a.id }
func (a *Archetype) TableID() TableID                   { return a.tableID }
func (a *Archetype) Entities() []EntityID               { return a.entities }
func (a *Archetype) TableComponents() []ComponentID     { return a.table }
func (a *Archetype) SparseSetComponents() []ComponentID { return a.sparse }

// Has reports whether c is part of the archetype's component set.
func (a *Archetype) Has(c ComponentID) bool {
	_, inTable := slices.BinarySearch(a.table, c)
	if inTable {
		return true
	}
	_, inSparse := slices.BinarySearch(a.sparse, c)
	return inSparse
}

func (a *Archetype) push(e EntityID) int {
	a.entities = append(a.entities, e)
	return len(a.entities) - 1
}

func (a *Archetype) swapRemove(row int) (EntityID, bool) {
	last := len(a.entities) - 1
	moved := a.entities[last]
	a.entities[row] = moved
	a.entities = a.entities[:last]
	return moved, row != last
}

// Archetypes owns every archetype in creation order.
type Archetypes struct {
	list  []*Archetype
	byKey map[string]ArchetypeID
}

func NewArchetypes(tables *Tables) *Archetypes {
	as := &Archetypes{
		list:  make([]*Archetype, 0, 32),
		byKey: make(map[string]ArchetypeID, 32),
	}
	as.getOrCreate(nil, nil, tables)
	return as
}

func (as *Archetypes) Get(id ArchetypeID) (*Archetype, bool) {
	if int(id) >= len(as.list) {
		return nil, false
	}
	return as.list[id], true
}

func (as *Archetypes) Len() int { return len(as.list) }

func (as *Archetypes) getOrCreate(table, sparse []ComponentID, tables *Tables) *Archetype {
	key := setKey(table) + "|" + setKey(sparse)
	if id, ok := as.byKey[key]; ok {
		return as.list[id]
	}
	a := &Archetype{
		id:      ArchetypeID(len(as.list)),
		tableID: tables.getOrCreate(table).id,
		table:   table,
		sparse:  sparse,
	}
	as.list = append(as.list, a)
	as.byKey[key] = a.id
	return a
}
