package ecs

import (
	"slices"
	"strconv"
	"strings"
)

// TableID identifies the column storage shared by every archetype with the
// same set of table components.
type TableID uint32

// Table stores table-component values as one column per component; row i of
// every column belongs to entities[i].
type Table struct {
	id         TableID
	components []ComponentID
	columns    map[ComponentID][]any
	entities   []EntityID
}

func (t *Table) push(e EntityID) int {
	for _, c := range t.components {
		t.columns[c] = append(t.columns[c], nil)
	}
	t.entities = append(t.entities, e)
	return len(t.entities) - 1
}

func (t *Table) get(c ComponentID, row int) (any, bool) {
	col, ok := t.columns[c]
	if !ok || row >= len(col) {
		return nil, false
	}
	return col[row], true
}

func (t *Table) set(c ComponentID, row int, v any) {
	if col, ok := t.columns[c]; ok {
		col[row] = v
	}
}

// swapRemove drops row by moving the last row into it. It reports the entity
// that now occupies row, if one moved.
func (t *Table) swapRemove(row int) (EntityID, bool) {
	last := len(t.entities) - 1
	for _, c := range t.components {
		col := t.columns[c]
		col[row] = col[last]
		col[last] = nil
		t.columns[c] = col[:last]
	}
	moved := t.entities[last]
	t.entities[row] = moved
	t.entities = t.entities[:last]
	return moved, row != last
}

// Tables owns every table. Table 0 has no columns and backs the empty archetype.
type Tables struct {
	list  []*Table
	byKey map[string]TableID
}

func NewTables() *Tables {
	ts := &Tables{
		list:  make([]*Table, 0, 16),
		byKey: make(map[string]TableID, 16),
	}
	ts.getOrCreate(nil)
	return ts
}

func (ts *Tables) getOrCreate(components []ComponentID) *Table {
	key := setKey(components)
	if id, ok := ts.byKey[key]; ok {
		return ts.list[id]
	}
	t := &Table{
		id:         TableID(len(ts.list)),
		components: components,
		columns:    make(map[ComponentID][]any, len(components)),
	}
	for _, c := range components {
		t.columns[c] = make([]any, 0, 16)
	}
	ts.list = append(ts.list, t)
	ts.byKey[key] = t.id
	return t
}

func setKey(ids []ComponentID) string {
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	return b.String()
}

// withID returns a sorted copy of ids with id added.
func withID(ids []ComponentID, id ComponentID) []ComponentID {
	out := make([]ComponentID, 0, len(ids)+1)
	out = append(out, ids...)
	out = append(out, id)
	slices.Sort(out)
	return slices.Compact(out)
}

// withoutID returns a copy of ids with id removed.
func withoutID(ids []ComponentID, id ComponentID) []ComponentID {
	out := make([]ComponentID, 0, len(ids))
	for _, c := range ids {
		if c != id {
			out = append(out, c)
		}
	}
	return out
}
