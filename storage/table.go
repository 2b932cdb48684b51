package storage

import (
	"github.com/rs/zerolog"

	"pkg.world.dev/tablestore/log"
	"pkg.world.dev/tablestore/types/archetype"
	"pkg.world.dev/tablestore/types/component"
)

type tableFlags uint8

// Flag bits are derived once at creation from the type's membership and
// never change afterward.
const (
	tableHasBuiltins tableFlags = 1 << iota
	tableIsPrefab
)

// Table is the storage unit for all entities sharing an identical
// composition: a composition descriptor bound to one canonical main data
// block plus the observers registered against it. Overlay blocks created
// during read passes live in the Stage, not here.
type Table struct {
	typ       archetype.Type
	flags     tableFlags
	main      *TableData
	observers []Observer
	log       log.Logger
}

// Type returns the table's composition descriptor.
func (t *Table) Type() archetype.Type {
	return t.typ
}

// ComponentIDs returns the ordered component ids of the table's type.
func (t *Table) ComponentIDs() []component.TypeID {
	return t.typ.IDs()
}

// HasBuiltins reports whether the type contains any built-in component id.
func (t *Table) HasBuiltins() bool {
	return t.flags&tableHasBuiltins != 0
}

// IsPrefab reports whether the type contains the prefab marker.
func (t *Table) IsPrefab() bool {
	return t.flags&tableIsPrefab != 0
}

// Count returns the current row count of the main block.
func (t *Table) Count() int {
	return t.main.Count()
}

// Data returns the main block. Writers must go through Stage.Data instead
// so that structural mutations are routed correctly during a read pass.
func (t *Table) Data() *TableData {
	return t.main
}

// ColumnIndex returns the position of id within the table's type.
func (t *Table) ColumnIndex(id component.TypeID) (int, bool) {
	for i := 0; i < t.typ.Len(); i++ {
		if t.typ.At(i) == id {
			return i, true
		}
	}
	return 0, false
}

// RegisterObserver adds an observer to the table. Registering against a
// non-empty table activates the observer immediately.
func (t *Table) RegisterObserver(obs Observer) {
	t.observers = append(t.observers, obs)
	if t.main.Count() > 0 {
		t.activate(obs, true)
	}
}

// activate notifies obs, or every registered observer when obs is nil, that
// the table's emptiness state changed.
func (t *Table) activate(obs Observer, active bool) {
	t.log.LogActivation(zerolog.DebugLevel, t, active)
	if obs != nil {
		obs.ActivateTable(t, active)
		return
	}
	for _, o := range t.observers {
		o.ActivateTable(t, active)
	}
}

// free releases all storage and the observer list without notifying
// anyone. This is the teardown path.
func (t *Table) free() {
	t.main.clearColumns()
	t.main.columns = nil
	t.observers = nil
}
