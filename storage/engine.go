package storage

import (
	"os"

	"github.com/rs/zerolog"

	"pkg.world.dev/tablestore/log"
	"pkg.world.dev/tablestore/types/archetype"
)

// Engine owns the tables of one storage world together with the state that
// cuts across them: the shared entity index, the mutation stages, and the
// sticky pointer-resolution flag. All operations are synchronous and
// single-threaded; the engine assumes exclusive access for the duration of
// any one call.
type Engine struct {
	sizes     ComponentSizer
	locations LocationStorage
	tables    map[string]*Table
	main      *Stage
	pass      *Stage
	removal   RemovalNotifier

	// shouldResolve is raised when a direct (non-staged) write reallocated
	// a column buffer. Call sites holding raw column views must re-fetch
	// them before next use; there is no per-pointer tracking.
	shouldResolve bool

	initialCapacity int
	log             log.Logger
}

// NewEngine creates a storage engine. sizes resolves component element
// widths and locations is the shared entity index, both owned by the
// caller.
func NewEngine(sizes ComponentSizer, locations LocationStorage, opts ...Option) *Engine {
	cfg := GetConfig()
	level, err := log.ParseLevel(cfg.TablestoreLogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	e := &Engine{
		sizes:           sizes,
		locations:       locations,
		tables:          map[string]*Table{},
		removal:         nil,
		initialCapacity: cfg.TablestoreInitialCapacity,
		log:             log.New(os.Stderr, level),
	}
	e.main = &Stage{engine: e}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Table returns the table for typ, creating it if this is the first time
// the composition is seen.
func (e *Engine) Table(typ archetype.Type) *Table {
	key := typ.Key()
	if t, ok := e.tables[key]; ok {
		return t
	}
	data, flags := newTableData(typ, e.sizes, e.initialCapacity)
	t := &Table{
		typ:   typ,
		flags: flags,
		main:  data,
		log:   e.log,
	}
	e.tables[key] = t
	e.log.LogTable(zerolog.DebugLevel, t)
	return t
}

// NewBlock allocates a detached, empty data block for typ. Detached blocks
// are populated off to the side and swapped in with Replace; writes to them
// never fire activation or the resolution flag.
func (e *Engine) NewBlock(typ archetype.Type) *TableData {
	d, _ := newTableData(typ, e.sizes, e.initialCapacity)
	return d
}

// Lookup returns the table for typ if one exists.
func (e *Engine) Lookup(typ archetype.Type) (*Table, bool) {
	t, ok := e.tables[typ.Key()]
	return t, ok
}

// MainStage returns the direct-write mutation context.
func (e *Engine) MainStage() *Stage {
	return e.main
}

// BeginReadPass marks the start of a read pass and returns the deferred
// stage structural writes must be routed through until EndReadPass. Only
// one read pass may be active at a time.
func (e *Engine) BeginReadPass() *Stage {
	if e.pass != nil {
		fatalf("a read pass is already in progress")
	}
	e.pass = &Stage{
		engine:   e,
		deferred: true,
		overlays: map[string]*overlay{},
	}
	return e.pass
}

// EndReadPass merges every overlay block of the pass back into its table's
// main block and discards the stage. Merge-back produces the same main
// block state an immediate write would have, including activation edges.
func (e *Engine) EndReadPass(s *Stage) {
	if s == nil || !s.deferred || s != e.pass {
		fatalf("EndReadPass called with a stage that is not the active read pass")
	}
	e.pass = nil
	for _, ov := range s.overlays {
		srcCount := ov.data.Count()
		dstCount := ov.table.main.Count()
		for i, id := range ov.data.entities {
			e.locations.SetLocation(id, NewLocation(ov.table.typ, RowOf(dstCount+i)))
		}
		e.mergeData(ov.table, ov.data, ov.table.typ, srcCount)
	}
	s.overlays = nil
}

// ReadPassActive reports whether structural writes are currently deferred.
func (e *Engine) ReadPassActive() bool {
	return e.pass != nil
}

// ShouldResolve reports whether a direct write reallocated any column
// buffer since the last ResetResolve. When true, cached column views are
// stale and must be re-fetched.
func (e *Engine) ShouldResolve() bool {
	return e.shouldResolve
}

// ResetResolve clears the resolution flag after callers re-fetched their
// column views.
func (e *Engine) ResetResolve() {
	e.shouldResolve = false
}

// Locations returns the shared entity index the engine rewrites.
func (e *Engine) Locations() LocationStorage {
	return e.locations
}

// Free releases every table's storage without notifying observers. This is
// the world teardown path.
func (e *Engine) Free() {
	for _, t := range e.tables {
		t.free()
	}
	e.tables = map[string]*Table{}
}
