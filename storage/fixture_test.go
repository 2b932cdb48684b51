package storage_test

import (
	"testing"

	"pkg.world.dev/tablestore/assert"
	"pkg.world.dev/tablestore/storage"
	"pkg.world.dev/tablestore/types/component"
	"pkg.world.dev/tablestore/types/entity"
)

type Position struct {
	X, Y float32
}

func (Position) Name() string { return "position" }

type Velocity struct {
	X, Y float32
}

func (Velocity) Name() string { return "velocity" }

type Health struct {
	Value uint32
}

func (Health) Name() string { return "health" }

// Alive is a tag: zero size, no column storage.
type Alive struct{}

func (Alive) Name() string { return "alive" }

type fixture struct {
	registry  *component.Registry
	locations *storage.LocationMap
	engine    *storage.Engine

	position component.Metadata
	velocity component.Metadata
	health   component.Metadata
	alive    component.Metadata
}

func newFixture(t *testing.T, opts ...storage.Option) *fixture {
	t.Helper()
	f := &fixture{
		registry:  component.NewRegistry(),
		locations: storage.NewLocationMap(),
		position:  component.NewMetadata[Position](),
		velocity:  component.NewMetadata[Velocity](),
		health:    component.NewMetadata[Health](),
		alive:     component.NewMetadata[Alive](),
	}
	assert.NilError(t, f.registry.Register(f.position))
	assert.NilError(t, f.registry.Register(f.velocity))
	assert.NilError(t, f.registry.Register(f.health))
	assert.NilError(t, f.registry.Register(f.alive))
	f.engine = storage.NewEngine(f.registry, f.locations, opts...)
	return f
}

// insert adds an entity through the main stage and records its location,
// the way an embedding engine would.
func (f *fixture) insert(tbl *storage.Table, id entity.ID) int {
	d := f.engine.MainStage().Data(tbl)
	row := f.engine.Insert(tbl, d, id)
	f.locations.SetLocation(id, storage.NewLocation(tbl.Type(), storage.RowOf(row)))
	return row
}

// assertAligned checks the alignment invariant: every non-tag column holds
// exactly one element per entity.
func assertAligned(t *testing.T, d *storage.TableData) {
	t.Helper()
	for i := 0; i < d.ColumnCount(); i++ {
		col := d.Column(i)
		if col.IsTag() {
			continue
		}
		assert.Equal(t, col.Len(), d.Count(), "column %d out of sync with entity list", i)
	}
}

// countingObserver records activation edges.
type countingObserver struct {
	activations   int
	deactivations int
	active        bool
}

func (o *countingObserver) ActivateTable(_ *storage.Table, active bool) {
	if active {
		o.activations++
	} else {
		o.deactivations++
	}
	o.active = active
}
