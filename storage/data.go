package storage

import (
	"pkg.world.dev/tablestore/types/archetype"
	"pkg.world.dev/tablestore/types/component"
	"pkg.world.dev/tablestore/types/entity"
)

// ComponentSizer resolves the column element width of a component id. A
// zero width means the id is a tag (or not a component at all) and gets no
// column storage.
type ComponentSizer interface {
	SizeOf(id component.TypeID) int
}

// TableData is the block of storage that actually holds entity state: the
// ordered entity id list plus one parallel column per entry of the owning
// table's type. Row i across the id list and every non-tag column refers to
// the same logical entity.
type TableData struct {
	entities []entity.ID
	columns  []Column
}

// newTableData allocates an empty block for typ, resolving each column's
// element size once via sizes. It also derives the flag bits the owning
// table is classified by.
func newTableData(typ archetype.Type, sizes ComponentSizer, capacity int) (*TableData, tableFlags) {
	d := &TableData{
		columns: make([]Column, typ.Len()),
	}
	if capacity > 0 {
		d.entities = make([]entity.ID, 0, capacity)
	}

	var flags tableFlags
	for i := 0; i < typ.Len(); i++ {
		id := typ.At(i)
		d.columns[i] = newColumn(sizes.SizeOf(id))

		if id <= component.LastBuiltin {
			flags |= tableHasBuiltins
		}
		if id == component.Prefab {
			flags |= tableIsPrefab
		}
	}
	return d, flags
}

// Count returns the number of rows in the block.
func (d *TableData) Count() int {
	return len(d.entities)
}

// Entities returns the entity id list. Callers must not modify it.
func (d *TableData) Entities() []entity.ID {
	return d.entities
}

// EntityAt returns the entity id at row.
func (d *TableData) EntityAt(row int) entity.ID {
	if row < 0 || row >= len(d.entities) {
		fatalf("row %d out of range (count %d)", row, len(d.entities))
	}
	return d.entities[row]
}

// Column returns the column at position i of the owning table's type.
func (d *TableData) Column(i int) *Column {
	return &d.columns[i]
}

// ColumnCount returns the number of columns, equal to the type length.
func (d *TableData) ColumnCount() int {
	return len(d.columns)
}

// clearColumns frees every column buffer and the entity list, leaving an
// empty block. The column slice itself is kept.
func (d *TableData) clearColumns() {
	for i := range d.columns {
		d.columns[i].free()
	}
	d.entities = nil
}
