package storage

// Column is a densely packed, growable buffer of fixed-width elements for a
// single component, one element per entity of the owning block. A zero
// element size marks a tag column, which is a placeholder with no buffer.
//
// Growth may reallocate the backing buffer. Any previously obtained element
// bytes must be treated as invalid after an operation that grows the column
// and re-fetched by row index.
type Column struct {
	size int
	data []byte
}

func newColumn(elementSize int) Column {
	return Column{size: elementSize}
}

// ElementSize returns the fixed width in bytes of one element.
func (c *Column) ElementSize() int {
	return c.size
}

// IsTag reports whether the column is a storage-less tag placeholder.
func (c *Column) IsTag() bool {
	return c.size == 0
}

// Len returns the number of elements currently stored.
func (c *Column) Len() int {
	if c.size == 0 {
		return 0
	}
	return len(c.data) / c.size
}

// Bytes returns a view of the element at row. The view is invalidated by
// any operation that grows or reorders the column.
func (c *Column) Bytes(row int) []byte {
	if c.size == 0 {
		return nil
	}
	if row < 0 || row >= c.Len() {
		fatalf("column element %d out of range (len %d)", row, c.Len())
	}
	return c.data[row*c.size : (row+1)*c.size]
}

// SetBytes copies bz into the element at row. len(bz) must equal the
// element size.
func (c *Column) SetBytes(row int, bz []byte) {
	if c.size == 0 {
		return
	}
	if len(bz) != c.size {
		fatalf("value width %d does not match column element size %d", len(bz), c.size)
	}
	copy(c.Bytes(row), bz)
}

// appendN extends the column by n uninitialized elements and reports
// whether the backing buffer was reallocated.
func (c *Column) appendN(n int) (reallocated bool) {
	if c.size == 0 || n <= 0 {
		return false
	}
	need := len(c.data) + n*c.size
	if need <= cap(c.data) {
		c.data = c.data[:need]
		return false
	}
	newCap := max(cap(c.data)*2, need)
	buf := make([]byte, need, newCap)
	copy(buf, c.data)
	c.data = buf
	return true
}

// reserve grows the backing buffer capacity to hold n elements without
// changing the element count.
func (c *Column) reserve(n int) {
	if c.size == 0 {
		return
	}
	need := n * c.size
	if need <= cap(c.data) {
		return
	}
	buf := make([]byte, len(c.data), need)
	copy(buf, c.data)
	c.data = buf
}

// removeLast drops the tail element.
func (c *Column) removeLast() {
	if c.size == 0 {
		return
	}
	c.data = c.data[:len(c.data)-c.size]
}

// swapRemove copies the tail element into row and drops the tail.
func (c *Column) swapRemove(row int) {
	if c.size == 0 {
		return
	}
	last := c.Len() - 1
	if row != last {
		copy(c.data[row*c.size:(row+1)*c.size], c.data[last*c.size:])
	}
	c.data = c.data[:last*c.size]
}

// swap exchanges the elements at rows a and b.
func (c *Column) swap(a, b int) {
	if c.size == 0 {
		return
	}
	tmp := make([]byte, c.size)
	elA := c.data[a*c.size : (a+1)*c.size]
	elB := c.data[b*c.size : (b+1)*c.size]
	copy(tmp, elA)
	copy(elA, elB)
	copy(elB, tmp)
}

// moveBack rotates the range [row-1, row+count-1) left by one element: the
// element at row-1 is carried past the count elements starting at row,
// which each shift down by one.
func (c *Column) moveBack(row, count int) {
	if c.size == 0 {
		return
	}
	s := c.size
	tmp := make([]byte, s)
	copy(tmp, c.data[(row-1)*s:row*s])
	copy(c.data[(row-1)*s:(row+count-1)*s], c.data[row*s:(row+count)*s])
	copy(c.data[(row+count-1)*s:(row+count)*s], tmp)
}

// merge appends src's element bytes after c's and empties src. If c holds
// no data yet the source buffer is adopted wholesale.
func (c *Column) merge(src *Column) {
	if c.size != src.size {
		fatalf("cannot merge column with element size %d into column with element size %d", src.size, c.size)
	}
	if c.size == 0 {
		return
	}
	if len(c.data) == 0 {
		c.data = src.data
	} else {
		c.data = append(c.data, src.data...)
	}
	src.data = nil
}

// free releases the backing buffer, leaving an empty column.
func (c *Column) free() {
	c.data = nil
}
