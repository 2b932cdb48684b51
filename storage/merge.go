package storage

import (
	"github.com/rs/zerolog"

	"pkg.world.dev/tablestore/types/archetype"
	"pkg.world.dev/tablestore/types/entity"
)

// Merge moves every record and all matching column data from src's main
// block into dst's main block. dst's type must be a superset of src's type;
// anything else is a caller defect and aborts. A nil dst means the records
// no longer match any composition: src is bulk-deleted with removal
// notifications instead.
//
// Every migrated record's index entry is rewritten before the column data
// moves, since the destination row is deterministic either way.
func (e *Engine) Merge(dst *Table, src *Table) {
	if src == nil {
		fatalf("merge from nil source table")
	}
	if dst == src {
		fatalf("cannot merge table %s into itself", src.typ)
	}

	srcData := src.main
	srcCount := srcData.Count()

	var dstType archetype.Type
	dstCount := 0
	if dst != nil {
		dstType = dst.typ
		dstCount = dst.main.Count()
		if dstType.Equals(src.typ) {
			fatalf("cannot merge between two tables of type %s", src.typ)
		}
	}

	for i, id := range srcData.entities {
		e.locations.SetLocation(id, NewLocation(dstType, RowOf(dstCount+i)))
	}

	if dst == nil {
		e.DeleteAll(src)
		return
	}

	e.log.LogMerge(zerolog.DebugLevel, dst, src, srcCount)
	e.mergeData(dst, srcData, src.typ, srcCount)

	if srcCount > 0 {
		src.activate(nil, false)
	}
}

// mergeData reconciles srcData (of composition srcType) into dst's main
// block with a two-pointer walk over both ordered types. Matching ids are
// merge-appended; a destination id absent from the source keeps its
// existing data and gets uninitialized elements for the migrated rows; a
// source id absent from the destination violates the superset precondition
// and aborts. srcData is left empty.
func (e *Engine) mergeData(dst *Table, srcData *TableData, srcType archetype.Type, srcCount int) {
	if srcCount == 0 {
		return
	}
	dstData := dst.main
	if dstData.columns == nil && dst.typ.Len() > 0 {
		fatalf("merge into block with freed column array")
	}

	i, j := 0, 0
	for j < srcType.Len() {
		if i == dst.typ.Len() {
			fatalf("source component %d of %s not found in destination %s",
				srcType.At(j), srcType, dst.typ)
		}
		dstID := dst.typ.At(i)
		srcID := srcType.At(j)
		switch {
		case dstID == srcID:
			dstData.columns[i].merge(&srcData.columns[j])
			i++
			j++
		case dstID < srcID:
			// Destination-only component; the source has no data for it, so
			// the migrated rows get uninitialized elements.
			dstData.columns[i].appendN(srcCount)
			i++
		default:
			fatalf("source component %d of %s not found in destination %s",
				srcID, srcType, dst.typ)
		}
	}
	for ; i < dst.typ.Len(); i++ {
		dstData.columns[i].appendN(srcCount)
	}

	wasEmpty := dstData.Count() == 0
	dstData.entities = mergeEntities(dstData.entities, srcData.entities)
	srcData.entities = nil

	if wasEmpty && dstData.Count() > 0 {
		dst.activate(nil, true)
	}
}

func mergeEntities(dst, src []entity.ID) []entity.ID {
	if len(dst) == 0 {
		return src
	}
	return append(dst, src...)
}
