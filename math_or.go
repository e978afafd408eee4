// Copyright (c) saik0 and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

// or performs OR with a single bitmap efficiently
func (rb *Bitmap) or(other *Bitmap) {
	switch {
	case other == rb || other == nil || len(other.containers) == 0:
		return // No change needed
	}

	newContainers := make([]container, 0, len(rb.containers)+len(other.containers))
	newIndex := make([]uint16, 0, len(rb.containers)+len(other.containers))

	p := pairs{a: rb, b: other}
	for {
		key, ca, cb, ok := p.next()
		if !ok {
			break
		}

		switch {
		case cb == nil:
			newContainers = append(newContainers, *ca)
		case ca == nil:
			newContainers = append(newContainers, cb.clone())
		default:
			rb.ctrOr(ca, cb)
			newContainers = append(newContainers, *ca)
		}
		newIndex = append(newIndex, key)
	}

	rb.containers = newContainers
	rb.index = newIndex
}

// ctrOr merges c2 into c1
func (rb *Bitmap) ctrOr(c1, c2 *container) {
	switch c1.Type {
	case typeArray:
		switch c2.Type {
		case typeArray:
			rb.arrOrArr(c1, c2)
		case typeBitmap:
			rb.arrOrBmp(c1, c2)
		}
	case typeBitmap:
		switch c2.Type {
		case typeArray:
			rb.bmpOrArr(c1, c2)
		case typeBitmap:
			rb.bmpOrBmp(c1, c2)
		}
	}

	c1.optimize()
}

// arrOrArr performs OR between two array containers
func (rb *Bitmap) arrOrArr(c1, c2 *container) {
	var out []uint16
	if useVector {
		out = orVector(c1.Data, c2.Data, rb.scratch[:0])
	} else {
		out = orWalk(c1.Data, c2.Data, rb.scratch[:0])
	}

	c1.Data = append(c1.Data[:0], out...)
	c1.Size = uint32(len(c1.Data))
	rb.scratch = out[:0]
}

// arrOrBmp performs OR between array and bitmap containers
func (rb *Bitmap) arrOrBmp(c1, c2 *container) {
	// Convert to bitmap for efficient OR
	c1.arrToBmp()
	rb.bmpOrBmp(c1, c2)
}

// bmpOrArr performs OR between bitmap and array containers
func (rb *Bitmap) bmpOrArr(c1, c2 *container) {
	bmp := c1.bmp()
	for _, val := range c2.Data {
		if !bmp.Contains(uint32(val)) {
			bmp.Set(uint32(val))
			c1.Size++
		}
	}
}

// bmpOrBmp performs OR between two bitmap containers
func (rb *Bitmap) bmpOrBmp(c1, c2 *container) {
	a, b := c1.bmp(), c2.bmp()
	a.Or(b)
	c1.Size = uint32(a.Count())
}
