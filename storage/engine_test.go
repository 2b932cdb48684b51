package storage_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"

	"pkg.world.dev/tablestore/assert"
	"pkg.world.dev/tablestore/log"
	"pkg.world.dev/tablestore/storage"
	"pkg.world.dev/tablestore/types/archetype"
)

func TestTableFindOrCreate(t *testing.T) {
	f := newFixture(t)
	typ := archetype.NewType(f.position.ID(), f.velocity.ID())

	first := f.engine.Table(typ)
	second := f.engine.Table(archetype.NewType(f.velocity.ID(), f.position.ID()))
	assert.Equal(t, first, second, "same composition resolves to the same table")

	other := f.engine.Table(archetype.NewType(f.position.ID()))
	assert.Assert(t, first != other)
}

func TestLookup(t *testing.T) {
	f := newFixture(t)
	typ := archetype.NewType(f.position.ID())

	_, ok := f.engine.Lookup(typ)
	assert.False(t, ok)

	tbl := f.engine.Table(typ)
	found, ok := f.engine.Lookup(typ)
	assert.True(t, ok)
	assert.Equal(t, found, tbl)
}

func TestNewBlockIsDetached(t *testing.T) {
	f := newFixture(t)
	typ := archetype.NewType(f.position.ID())
	tbl := f.engine.Table(typ)
	obs := &countingObserver{}
	tbl.RegisterObserver(obs)

	block := f.engine.NewBlock(typ)
	assert.Assert(t, block != tbl.Data())

	f.engine.ResetResolve()
	f.engine.Insert(tbl, block, 1)
	assert.Equal(t, tbl.Count(), 0, "detached blocks do not feed the table")
	assert.Equal(t, obs.activations, 0)
	assert.False(t, f.engine.ShouldResolve())
}

func TestEngineFreeReleasesTables(t *testing.T) {
	f := newFixture(t)
	typ := archetype.NewType(f.position.ID())
	tbl := f.engine.Table(typ)
	obs := &countingObserver{}
	tbl.RegisterObserver(obs)
	f.insert(tbl, 1)
	obs.activations = 0

	f.engine.Free()
	assert.Equal(t, obs.deactivations, 0, "teardown skips activation edges")

	recreated := f.engine.Table(typ)
	assert.Assert(t, recreated != tbl, "freed tables are forgotten")
	assert.Equal(t, recreated.Count(), 0)
}

func TestWithLoggerEmitsTableCreation(t *testing.T) {
	f := newFixture(t)
	buf := &bytes.Buffer{}
	engine := storage.NewEngine(f.registry, f.locations,
		storage.WithLogger(log.New(buf, zerolog.DebugLevel)))

	engine.Table(archetype.NewType(f.position.ID(), f.alive.ID()))
	out := buf.String()
	assert.Assert(t, bytes.Contains([]byte(out), []byte("component_ids")), "got log output %q", out)
	assert.Assert(t, bytes.Contains([]byte(out), []byte("entity_count")), "got log output %q", out)
}
