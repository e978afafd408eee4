package roaring

// andNot performs AND NOT with a single bitmap efficiently
func (rb *Bitmap) andNot(other *Bitmap) {
	switch {
	case other == rb:
		rb.Clear()
		return
	case other == nil || len(other.containers) == 0:
		return // A AND NOT ∅ = A
	case len(rb.containers) == 0:
		return
	}

	// Only containers present on both sides can lose values
	empty := make([]int, 0, 8)
	for i := range rb.containers {
		idx, exists := find16(other.index, rb.index[i])
		if exists && !rb.ctrAndNot(&rb.containers[i], &other.containers[idx]) {
			empty = append(empty, i)
		}
	}

	// Batch remove empty containers (in reverse order to maintain indices)
	for i := len(empty) - 1; i >= 0; i-- {
		rb.ctrDel(empty[i])
	}
}

// ctrAndNot removes the values of c2 from c1 and reports whether c1 stayed non-empty
func (rb *Bitmap) ctrAndNot(c1, c2 *container) bool {
	switch c1.Type {
	case typeArray:
		switch c2.Type {
		case typeArray:
			rb.arrAndNotArr(c1, c2)
		case typeBitmap:
			rb.arrAndNotBmp(c1, c2)
		}
	case typeBitmap:
		switch c2.Type {
		case typeArray:
			rb.bmpAndNotArr(c1, c2)
		case typeBitmap:
			rb.bmpAndNotBmp(c1, c2)
		}
	}

	c1.optimize()
	return c1.Size > 0
}

// arrAndNotArr performs AND NOT between two array containers
func (rb *Bitmap) arrAndNotArr(c1, c2 *container) {
	if useVector {
		out := subVector(c1.Data, c2.Data, rb.scratch[:0])
		c1.Data = append(c1.Data[:0], out...)
		c1.Size = uint32(len(c1.Data))
		rb.scratch = out[:0]
		return
	}

	a, b := c1.Data, c2.Data
	out := a[:0]
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		av, bv := a[i], b[j]
		switch {
		case av == bv:
			i++
			j++
		case av < bv:
			out = append(out, av)
			i++
		default: // av > bv
			j++
		}
	}

	out = append(out, a[i:]...)
	c1.Data = out
	c1.Size = uint32(len(out))
}

// arrAndNotBmp performs AND NOT between array and bitmap containers
func (rb *Bitmap) arrAndNotBmp(c1, c2 *container) {
	a, b := c1.Data, c2.bmp()
	out := a[:0]

	for _, val := range a {
		if !b.Contains(uint32(val)) {
			out = append(out, val)
		}
	}

	c1.Data = out
	c1.Size = uint32(len(out))
}

// bmpAndNotArr performs AND NOT between bitmap and array containers
func (rb *Bitmap) bmpAndNotArr(c1, c2 *container) {
	bmp := c1.bmp()
	for _, val := range c2.Data {
		if bmp.Contains(uint32(val)) {
			bmp.Remove(uint32(val))
			c1.Size--
		}
	}
}

// bmpAndNotBmp performs AND NOT between two bitmap containers
func (rb *Bitmap) bmpAndNotBmp(c1, c2 *container) {
	a, b := c1.bmp(), c2.bmp()
	a.AndNot(b)
	c1.Size = uint32(a.Count())
}
