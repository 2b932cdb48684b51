package archetype

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"pkg.world.dev/tablestore/types/component"
)

// Type is an ordered, duplicate-free sequence of component ids. Two tables
// hold the same composition iff their Types are equal. A Type is immutable
// once created; ordering is numeric id comparison and is what the merge
// algorithm aligns on.
type Type struct {
	ids []component.TypeID
}

// NewType builds a Type from the given ids, sorting and de-duplicating them.
func NewType(ids ...component.TypeID) Type {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	return Type{ids: sorted}
}

// Len returns the number of component ids in the type.
func (t Type) Len() int {
	return len(t.ids)
}

// At returns the i-th component id in ascending order.
func (t Type) At(i int) component.TypeID {
	return t.ids[i]
}

// IDs returns the underlying id sequence. Callers must not modify it.
func (t Type) IDs() []component.TypeID {
	return t.ids
}

// Contains reports whether id is part of the type.
func (t Type) Contains(id component.TypeID) bool {
	_, ok := slices.BinarySearch(t.ids, id)
	return ok
}

// Equals reports whether two types describe the same composition.
func (t Type) Equals(other Type) bool {
	return slices.Equal(t.ids, other.ids)
}

// IsZero reports whether the type holds no component ids. The zero Type is
// used as the "no destination" composition when records are discarded.
func (t Type) IsZero() bool {
	return len(t.ids) == 0
}

// Key returns a stable string key for the type, suitable for map keying.
func (t Type) Key() string {
	var sb strings.Builder
	for i, id := range t.ids {
		if i != 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.Itoa(int(id)))
	}
	return sb.String()
}

func (t Type) String() string {
	var out bytes.Buffer
	out.WriteString("Type{")
	for i, id := range t.ids {
		if i != 0 {
			out.WriteString(", ")
		}
		out.WriteString(fmt.Sprintf("%d", id))
	}
	out.WriteString("}")
	return out.String()
}
