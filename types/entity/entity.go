package entity

import "math"

// ID is the unique identifier of an entity. IDs are allocated by the
// embedding engine; the storage core only moves them between tables.
type ID uint64

// BadID is a sentinel for an invalid entity.
var BadID ID = math.MaxUint64
