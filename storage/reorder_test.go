package storage_test

import (
	"testing"

	"pkg.world.dev/tablestore/assert"
	"pkg.world.dev/tablestore/storage"
	"pkg.world.dev/tablestore/types/archetype"
	"pkg.world.dev/tablestore/types/entity"
)

func populated(t *testing.T, f *fixture, ids ...entity.ID) (*storage.Table, int) {
	t.Helper()
	tbl := f.engine.Table(archetype.NewType(f.position.ID(), f.alive.ID()))
	posIdx, _ := tbl.ColumnIndex(f.position.ID())
	for _, id := range ids {
		row := f.insert(tbl, id)
		b := byte(id)
		tbl.Data().Column(posIdx).SetBytes(row, []byte{b, b, b, b, b, b, b, b})
	}
	return tbl, posIdx
}

func TestSwap(t *testing.T) {
	f := newFixture(t)
	tbl, posIdx := populated(t, f, 1, 2, 3)
	d := tbl.Data()

	f.engine.Swap(tbl, d, 0, 2, nil, nil)

	assert.Equal(t, d.EntityAt(0), entity.ID(3))
	assert.Equal(t, d.EntityAt(2), entity.ID(1))
	assert.DeepEqual(t, d.Column(posIdx).Bytes(0), []byte{3, 3, 3, 3, 3, 3, 3, 3})
	assert.DeepEqual(t, d.Column(posIdx).Bytes(2), []byte{1, 1, 1, 1, 1, 1, 1, 1})

	loc1, _ := f.locations.Location(1)
	loc3, _ := f.locations.Location(3)
	assert.Equal(t, loc1.Row, storage.RowOf(2))
	assert.Equal(t, loc3.Row, storage.RowOf(0))
	assertAligned(t, d)
}

func TestSwapSameRowIsNoop(t *testing.T) {
	f := newFixture(t)
	tbl, _ := populated(t, f, 1, 2)
	d := tbl.Data()

	f.engine.Swap(tbl, d, 1, 1, nil, nil)
	assert.Equal(t, d.EntityAt(1), entity.ID(2))
	loc, _ := f.locations.Location(2)
	assert.Equal(t, loc.Row, storage.RowOf(1))
}

func TestSwapWithPrefetchedLocations(t *testing.T) {
	f := newFixture(t)
	tbl, _ := populated(t, f, 1, 2)
	d := tbl.Data()

	locA, _ := f.locations.Location(1)
	locB, _ := f.locations.Location(2)
	f.engine.Swap(tbl, d, 0, 1, &locA, &locB)

	// The caller-held records were updated in place.
	assert.Equal(t, locA.Row, storage.RowOf(1))
	assert.Equal(t, locB.Row, storage.RowOf(0))

	stored, _ := f.locations.Location(1)
	assert.Equal(t, stored.Row, storage.RowOf(1))
}

func TestSwapOutOfRangePanics(t *testing.T) {
	f := newFixture(t)
	tbl, _ := populated(t, f, 1)

	assert.Panics(t, func() {
		f.engine.Swap(tbl, tbl.Data(), 0, 3, nil, nil)
	})
}

func TestMoveBackAndSwap(t *testing.T) {
	f := newFixture(t)
	tbl, posIdx := populated(t, f, 1, 2, 3, 4)
	d := tbl.Data()

	// Carry entity 1 (row 0) past the run {2, 3} so the run keeps its
	// relative order.
	f.engine.MoveBackAndSwap(tbl, d, 1, 2)

	want := []entity.ID{2, 3, 1, 4}
	for i, id := range want {
		assert.Equal(t, d.EntityAt(i), id, "row %d", i)
		b := byte(id)
		assert.DeepEqual(t, d.Column(posIdx).Bytes(i), []byte{b, b, b, b, b, b, b, b})
		loc, ok := f.locations.Location(id)
		assert.True(t, ok)
		assert.Equal(t, loc.Row, storage.RowOf(i))
	}
	assertAligned(t, d)
}

func TestMoveBackAndSwapFullRange(t *testing.T) {
	f := newFixture(t)
	tbl, _ := populated(t, f, 1, 2, 3)
	d := tbl.Data()

	f.engine.MoveBackAndSwap(tbl, d, 1, 2)
	want := []entity.ID{2, 3, 1}
	for i, id := range want {
		assert.Equal(t, d.EntityAt(i), id)
	}
}

func TestMoveBackAndSwapOutOfRangePanics(t *testing.T) {
	f := newFixture(t)
	tbl, _ := populated(t, f, 1, 2)

	assert.Panics(t, func() {
		f.engine.MoveBackAndSwap(tbl, tbl.Data(), 0, 1)
	})
	assert.Panics(t, func() {
		f.engine.MoveBackAndSwap(tbl, tbl.Data(), 1, 2)
	})
}
