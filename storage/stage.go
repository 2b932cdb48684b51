package storage

// Stage is a mutation context. The engine's main stage routes writes
// straight to a table's main block. A deferred stage, created by
// Engine.BeginReadPass, instead routes them to a per-type overlay block it
// owns, so that the main block and any iterators over it stay stable for
// the duration of the pass. Overlay blocks are created lazily on first
// write and merged back into their main blocks by Engine.EndReadPass.
type Stage struct {
	engine   *Engine
	deferred bool
	overlays map[string]*overlay
}

type overlay struct {
	table *Table
	data  *TableData
}

// Deferred reports whether writes through this stage are staged rather
// than applied to main blocks directly.
func (s *Stage) Deferred() bool {
	return s.deferred
}

// Data returns the block a write through this stage must target: the
// table's main block for the main stage, or the stage's overlay block for
// the table's type, creating it if this is the first write of the pass.
func (s *Stage) Data(t *Table) *TableData {
	if !s.deferred {
		return t.main
	}
	key := t.typ.Key()
	ov, ok := s.overlays[key]
	if !ok {
		data, _ := newTableData(t.typ, s.engine.sizes, 0)
		ov = &overlay{table: t, data: data}
		s.overlays[key] = ov
	}
	return ov.data
}
