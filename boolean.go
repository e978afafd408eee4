package roaring

// IsSubset reports whether every value of this bitmap is present in other.
func (rb *Bitmap) IsSubset(other *Bitmap) bool {
	if other == nil {
		return len(rb.containers) == 0
	}

	for i := range rb.containers {
		idx, exists := find16(other.index, rb.index[i])
		if !exists || !ctrSubset(&rb.containers[i], &other.containers[idx]) {
			return false
		}
	}
	return true
}

// IsDisjoint reports whether the two bitmaps share no value.
func (rb *Bitmap) IsDisjoint(other *Bitmap) bool {
	if other == nil {
		return true
	}

	p := pairs{a: rb, b: other}
	for {
		_, ca, cb, ok := p.next()
		if !ok {
			return true
		}
		if ca != nil && cb != nil && !ctrDisjoint(ca, cb) {
			return false
		}
	}
}

// ctrSubset reports whether every value of c1 exists in c2
func ctrSubset(c1, c2 *container) bool {
	if c1.Size > c2.Size {
		return false
	}

	switch c1.Type {
	case typeArray:
		switch c2.Type {
		case typeArray:
			return arrSubsetArr(c1.Data, c2.Data)
		case typeBitmap:
			bm := c2.bmp()
			for _, v := range c1.Data {
				if !bm.Contains(uint32(v)) {
					return false
				}
			}
			return true
		}
	case typeBitmap:
		switch c2.Type {
		case typeArray:
			return c1.bmpRange(func(v uint16) bool {
				return c2.arrHas(v)
			})
		case typeBitmap:
			a, b := c1.bmp(), c2.bmp()
			for i := range a {
				if a[i]&^b[i] != 0 {
					return false
				}
			}
			return true
		}
	}
	return false
}

// arrSubsetArr walks both arrays; any value of a skipped over by b refutes
// the inclusion.
func arrSubsetArr(a, b []uint16) bool {
	i, j := 0, 0
	for i < len(a) {
		if j == len(b) {
			return false
		}
		switch {
		case a[i] == b[j]:
			i++
			j++
		case a[i] < b[j]:
			return false
		default: // a[i] > b[j]
			j++
		}
	}
	return true
}

// ctrDisjoint reports whether c1 and c2 share no value
func ctrDisjoint(c1, c2 *container) bool {
	switch c1.Type {
	case typeArray:
		switch c2.Type {
		case typeArray:
			return arrDisjointArr(c1.Data, c2.Data)
		case typeBitmap:
			bm := c2.bmp()
			for _, v := range c1.Data {
				if bm.Contains(uint32(v)) {
					return false
				}
			}
			return true
		}
	case typeBitmap:
		switch c2.Type {
		case typeArray:
			return ctrDisjoint(c2, c1)
		case typeBitmap:
			a, b := c1.bmp(), c2.bmp()
			for i := range a {
				if a[i]&b[i] != 0 {
					return false
				}
			}
			return true
		}
	}
	return true
}

// arrDisjointArr merges both arrays looking for a shared value.
func arrDisjointArr(a, b []uint16) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			return false
		case a[i] < b[j]:
			i++
		default: // a[i] > b[j]
			j++
		}
	}
	return true
}
