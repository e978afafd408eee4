// Copyright (c) saik0 and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

// and performs AND with a single bitmap efficiently
func (rb *Bitmap) and(other *Bitmap) {
	switch {
	case other == rb:
		return
	case other == nil || len(other.containers) == 0:
		rb.Clear()
		return
	case len(rb.containers) == 0:
		return
	}

	// Iterate through all containers in this bitmap
	empty := make([]int, 0, 8)
	for i := range rb.containers {
		idx, exists := find16(other.index, rb.index[i])
		if !exists || !rb.ctrAnd(&rb.containers[i], &other.containers[idx]) {
			empty = append(empty, i)
		}
	}

	// Batch remove empty containers (in reverse order to maintain indices)
	for i := len(empty) - 1; i >= 0; i-- {
		rb.ctrDel(empty[i])
	}
}

// ctrAnd intersects c1 with c2 in place and reports whether c1 stayed non-empty
func (rb *Bitmap) ctrAnd(c1, c2 *container) bool {
	switch c1.Type {
	case typeArray:
		switch c2.Type {
		case typeArray:
			rb.arrAndArr(c1, c2)
		case typeBitmap:
			rb.arrAndBmp(c1, c2)
		}
	case typeBitmap:
		switch c2.Type {
		case typeArray:
			rb.bmpAndArr(c1, c2)
		case typeBitmap:
			rb.bmpAndBmp(c1, c2)
		}
	}

	c1.optimize()
	return c1.Size > 0
}

// arrAndArr performs AND between two array containers, picking a strategy by
// how skewed the lengths are: a galloping parallel binary search when one
// side is at least 64x smaller, the vector kernel when both sides are wide,
// a linear walk otherwise.
func (rb *Bitmap) arrAndArr(c1, c2 *container) {
	a, b := c1.Data, c2.Data
	switch {
	case len(a)*skewThreshold < len(b):
		c1.Data = intersectSkewed(a, b, a[:0])

	case len(b)*skewThreshold < len(a):
		out := intersectSkewed(b, a, rb.scratch[:0])
		c1.Data = append(c1.Data[:0], out...)
		rb.scratch = out[:0]

	case useVector:
		out := andVector(a, b, rb.scratch[:0])
		c1.Data = append(c1.Data[:0], out...)
		rb.scratch = out[:0]

	default:
		i, j, k := 0, 0, 0
		for i < len(a) && j < len(b) {
			av, bv := a[i], b[j]
			switch {
			case av == bv:
				a[k] = av
				k++
				i++
				j++
			case av < bv:
				i++
			default: // av > bv
				j++
			}
		}
		c1.Data = a[:k]
	}

	c1.Size = uint32(len(c1.Data))
}

// arrAndBmp performs AND between array and bitmap containers
func (rb *Bitmap) arrAndBmp(c1, c2 *container) {
	a, b := c1.Data, c2.bmp()
	out := a[:0]

	for _, val := range a {
		if b.Contains(uint32(val)) {
			out = append(out, val)
		}
	}

	c1.Data = out
	c1.Size = uint32(len(out))
}

// bmpAndArr performs AND between bitmap and array containers. The result is
// at most as large as the array, so it comes back as an array container.
func (rb *Bitmap) bmpAndArr(c1, c2 *container) {
	a, b := c1.bmp(), c2.Data
	out := rb.scratch[:0]

	for _, val := range b {
		if a.Contains(uint32(val)) {
			out = append(out, val)
		}
	}

	c1.Data = append(c1.Data[:0], out...)
	c1.Size = uint32(len(c1.Data))
	c1.Type = typeArray
	rb.scratch = out[:0]
}

// bmpAndBmp performs AND between two bitmap containers
func (rb *Bitmap) bmpAndBmp(c1, c2 *container) {
	a, b := c1.bmp(), c2.bmp()
	a.And(b)
	c1.Size = uint32(a.Count())
}
