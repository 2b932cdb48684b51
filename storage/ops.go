package storage

import (
	"pkg.world.dev/tablestore/types/entity"
)

// Insert appends one entity to d and one uninitialized element to every
// non-tag column, returning the 0-based row of the new record. Inserting
// the first record into a main block outside a read pass activates the
// table. If any column buffer reallocated and d is the table's main block,
// the engine-wide resolution flag is raised.
func (e *Engine) Insert(t *Table, d *TableData, id entity.ID) int {
	if t == nil || d == nil {
		fatalf("insert into nil table or block")
	}
	if d.columns == nil && t.typ.Len() > 0 {
		fatalf("insert into block with freed column array")
	}

	d.entities = append(d.entities, id)
	row := len(d.entities) - 1

	reallocated := false
	for i := range d.columns {
		if d.columns[i].appendN(1) {
			reallocated = true
		}
	}

	if d == t.main && !e.ReadPassActive() && row == 0 {
		t.activate(nil, true)
	}
	if reallocated && t.main == d {
		e.shouldResolve = true
	}
	return row
}

// Grow appends count entities with the sequential ids first..first+count-1
// and returns the 0-based row of the first one. The table is activated only
// when the post-grow count equals the count just added, so a grow into an
// already populated block fires nothing.
func (e *Engine) Grow(t *Table, d *TableData, count int, first entity.ID) int {
	if t == nil || d == nil {
		fatalf("grow of nil table or block")
	}
	if count <= 0 {
		fatalf("grow count must be positive, got %d", count)
	}

	for i := 0; i < count; i++ {
		d.entities = append(d.entities, first+entity.ID(i))
	}

	reallocated := false
	for i := range d.columns {
		if d.columns[i].appendN(count) {
			reallocated = true
		}
	}

	rowCount := len(d.entities)
	if d == t.main && !e.ReadPassActive() && rowCount == count {
		t.activate(nil, true)
	}
	if reallocated && t.main == d {
		e.shouldResolve = true
	}
	return rowCount - count
}

// Delete swap-removes the record at row: unless row is the tail, the last
// record's id and every non-tag column's last element are moved into row
// and the moved record's index entry is rewritten. Deleting the final
// record of a main block outside a read pass deactivates the table.
func (e *Engine) Delete(t *Table, d *TableData, row int) {
	if t == nil || d == nil {
		fatalf("delete from nil table or block")
	}
	count := len(d.entities)
	if count == 0 {
		fatalf("delete from empty block of %s", t.typ)
	}
	count--
	if row < 0 || row > count {
		fatalf("delete row %d out of range (count %d) in %s", row, count+1, t.typ)
	}

	if row != count {
		moved := d.entities[count]
		d.entities[row] = moved
		for i := range d.columns {
			d.columns[i].swapRemove(row)
		}
		d.entities = d.entities[:count]

		// The moved record now lives at row; its index entry must follow.
		e.locations.SetLocation(moved, NewLocation(t.typ, RowOf(row)))
	} else {
		d.entities = d.entities[:count]
		for i := range d.columns {
			d.columns[i].removeLast()
		}
	}

	if d == t.main && !e.ReadPassActive() && count == 0 {
		t.activate(nil, false)
	}
}

// SetSize pre-sizes the entity list and every non-tag column to hold
// target entities. This is a reservation hint; the logical row count does
// not change and the resolution flag is not raised.
func (e *Engine) SetSize(t *Table, d *TableData, target int) {
	if t == nil || d == nil {
		fatalf("set size of nil table or block")
	}
	if cap(d.entities) < target {
		entities := make([]entity.ID, len(d.entities), target)
		copy(entities, d.entities)
		d.entities = entities
	}
	for i := range d.columns {
		d.columns[i].reserve(target)
	}
}

// Swap exchanges the records at rows a and b, rewriting both index
// entries. locA and locB may carry prefetched location records to avoid a
// redundant index lookup; pass nil to have the engine fetch them. No-op
// when a == b.
func (e *Engine) Swap(t *Table, d *TableData, a, b int, locA, locB *Location) {
	if t == nil || d == nil {
		fatalf("swap on nil table or block")
	}
	if a < 0 || b < 0 || a >= len(d.entities) || b >= len(d.entities) {
		fatalf("swap rows %d, %d out of range (count %d)", a, b, len(d.entities))
	}
	if a == b {
		return
	}

	entityA := d.entities[a]
	entityB := d.entities[b]

	if locA == nil {
		loc, ok := e.locations.Location(entityA)
		if !ok {
			fatalf("entity %d at row %d has no index entry", entityA, a)
		}
		locA = &loc
	}
	if locB == nil {
		loc, ok := e.locations.Location(entityB)
		if !ok {
			fatalf("entity %d at row %d has no index entry", entityB, b)
		}
		locB = &loc
	}

	d.entities[a] = entityB
	d.entities[b] = entityA
	locA.Row = RowOf(b)
	locB.Row = RowOf(a)
	e.locations.SetLocation(entityA, *locA)
	e.locations.SetLocation(entityB, *locB)

	for i := range d.columns {
		d.columns[i].swap(a, b)
	}
}

// MoveBackAndSwap carries the record at row-1 past the count records
// starting at row, which each shift down by one, and lands it at
// row+count-1. Every affected record's index entry is rewritten. This
// relocates one record past a contiguous run while preserving the run's
// relative order.
func (e *Engine) MoveBackAndSwap(t *Table, d *TableData, row, count int) {
	if t == nil || d == nil {
		fatalf("move back and swap on nil table or block")
	}
	if row < 1 || count < 1 || row+count > len(d.entities) {
		fatalf("move back rows [%d, %d) out of range (count %d)", row-1, row+count, len(d.entities))
	}

	carried := d.entities[row-1]
	for i := 0; i < count; i++ {
		cur := d.entities[row+i]
		d.entities[row+i-1] = cur
		e.rewriteRow(cur, t, row+i-1)
	}
	d.entities[row+count-1] = carried
	e.rewriteRow(carried, t, row+count-1)

	for i := range d.columns {
		d.columns[i].moveBack(row, count)
	}
}

func (e *Engine) rewriteRow(id entity.ID, t *Table, row int) {
	loc, ok := e.locations.Location(id)
	if !ok {
		fatalf("entity %d has no index entry", id)
	}
	loc.Type = t.typ
	loc.Row = RowOf(row)
	e.locations.SetLocation(id, loc)
}

// Clear frees every column buffer and the entity list of t's main block
// without invoking removal notifications, deactivating the table if it was
// populated. Used when restoring a table to a prior state.
func (e *Engine) Clear(t *Table) {
	count := t.main.Count()
	t.main.clearColumns()
	if count > 0 {
		t.activate(nil, false)
	}
}

// Replace atomically swaps in data as t's main block, freeing the old one,
// and fires the activation edge if the table's emptiness changed. A nil
// data just empties the existing block.
func (e *Engine) Replace(t *Table, data *TableData) {
	prev := t.main.Count()
	t.main.clearColumns()
	if data != nil {
		t.main = data
	}

	count := t.main.Count()
	if prev == 0 && count > 0 {
		t.activate(nil, true)
	} else if prev > 0 && count == 0 {
		t.activate(nil, false)
	}
}

// Deinit issues a removal notification covering every current row of t's
// main block. The caller is expected to Clear afterwards; DeleteAll does
// both.
func (e *Engine) Deinit(t *Table) {
	count := t.main.Count()
	if count > 0 && e.removal != nil {
		e.removal(t, t.main, 0, count)
	}
}

// DeleteAll removes every entity in the table, invoking removal
// notifications and deactivating the table.
func (e *Engine) DeleteAll(t *Table) {
	e.Deinit(t)
	e.Clear(t)
}
