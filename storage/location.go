package storage

import (
	"pkg.world.dev/tablestore/types/archetype"
	"pkg.world.dev/tablestore/types/entity"
)

// Row is a 1-based row reference as stored in the entity index. The zero
// value means "no location yet", which keeps the has-a-location check a
// single comparison.
type Row uint32

// RowOf converts a 0-based table row to its stored form.
func RowOf(index int) Row {
	return Row(index + 1)
}

// IsSet reports whether the row reference points at an actual row.
func (r Row) IsSet() bool {
	return r != 0
}

// Index returns the 0-based table row. Only valid when IsSet.
func (r Row) Index() int {
	return int(r) - 1
}

// Location is where an entity currently lives: the composition it belongs
// to and its row within that table.
type Location struct {
	Type archetype.Type
	Row  Row
}

// NewLocation creates an entity location.
func NewLocation(typ archetype.Type, row Row) Location {
	return Location{
		Type: typ,
		Row:  row,
	}
}

// LocationStorage is the shared entity index. It is owned by the embedding
// engine; the storage core only rewrites entries to keep them consistent
// after moves and swaps, and never removes them.
type LocationStorage interface {
	Location(id entity.ID) (Location, bool)
	SetLocation(id entity.ID, loc Location)
}

var _ LocationStorage = &LocationMap{}

// LocationMap is an in-memory LocationStorage.
type LocationMap struct {
	locations map[entity.ID]Location
}

func NewLocationMap() *LocationMap {
	return &LocationMap{locations: map[entity.ID]Location{}}
}

func (lm *LocationMap) Location(id entity.ID) (Location, bool) {
	loc, ok := lm.locations[id]
	return loc, ok
}

func (lm *LocationMap) SetLocation(id entity.ID, loc Location) {
	lm.locations[id] = loc
}
