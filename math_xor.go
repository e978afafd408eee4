// Copyright (c) saik0 and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

// xor performs XOR with a single bitmap efficiently
func (rb *Bitmap) xor(other *Bitmap) {
	switch {
	case other == rb:
		rb.Clear()
		return
	case other == nil || len(other.containers) == 0:
		return
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
			if !rb.ctrXor(ca, cb) {
				continue // Shared values cancelled out entirely
			}
			newContainers = append(newContainers, *ca)
		}
		newIndex = append(newIndex, key)
	}

	rb.containers = newContainers
	rb.index = newIndex
}

// ctrXor computes the symmetric difference of c1 and c2 into c1 and reports
// whether c1 stayed non-empty
func (rb *Bitmap) ctrXor(c1, c2 *container) bool {
	switch c1.Type {
	case typeArray:
		switch c2.Type {
		case typeArray:
			rb.arrXorArr(c1, c2)
		case typeBitmap:
			c1.arrToBmp()
			rb.bmpXorBmp(c1, c2)
		}
	case typeBitmap:
		switch c2.Type {
		case typeArray:
			rb.bmpXorArr(c1, c2)
		case typeBitmap:
			rb.bmpXorBmp(c1, c2)
		}
	}

	c1.optimize()
	return c1.Size > 0
}

// arrXorArr performs XOR between two array containers. The scalar path is
// an in-place cursor walk: equal values are dropped, values only in c2 are
// inserted at the cursor, and the c2 tail is appended.
func (rb *Bitmap) arrXorArr(c1, c2 *container) {
	if useVector {
		out := xorVector(c1.Data, c2.Data, rb.scratch[:0])
		c1.Data = append(c1.Data[:0], out...)
		c1.Size = uint32(len(c1.Data))
		rb.scratch = out[:0]
		return
	}

	a, b := c1.Data, c2.Data
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			copy(a[i:], a[i+1:])
			a = a[:len(a)-1]
			j++
		case a[i] < b[j]:
			i++
		default: // a[i] > b[j]
			a = append(a, 0)
			copy(a[i+1:], a[i:])
			a[i] = b[j]
			i++
			j++
		}
	}

	a = append(a, b[j:]...)
	c1.Data = a
	c1.Size = uint32(len(a))
}

// bmpXorArr performs XOR between bitmap and array containers by toggling
// one bit per array value
func (rb *Bitmap) bmpXorArr(c1, c2 *container) {
	bmp := c1.bmp()
	for _, val := range c2.Data {
		if bmp.Contains(uint32(val)) {
			bmp.Remove(uint32(val))
			c1.Size--
		} else {
			bmp.Set(uint32(val))
			c1.Size++
		}
	}
}

// bmpXorBmp performs XOR between two bitmap containers
func (rb *Bitmap) bmpXorBmp(c1, c2 *container) {
	a, b := c1.bmp(), c2.bmp()
	a.Xor(b)
	c1.Size = uint32(a.Count())
}
