package roaring

// Range calls the given function for each value in ascending order, stopping
// early when the function returns false.
func (rb *Bitmap) Range(fn func(x uint32) bool) {
	for i := range rb.containers {
		c := &rb.containers[i]
		base := uint32(rb.index[i]) << 16

		switch c.Type {
		case typeArray:
			data := c.Data
			for j := 0; j < len(data); j++ {
				if !fn(base | uint32(data[j])) {
					return
				}
			}

		case typeBitmap:
			if !c.bmpRange(func(value uint16) bool {
				return fn(base | uint32(value))
			}) {
				return
			}
		}
	}
}

// Filter iterates over the bitmap elements and calls a predicate provided for
// each containing element. If the predicate returns false, the bitmap at the
// element's position is set to zero.
func (rb *Bitmap) Filter(f func(x uint32) bool) {
	// Collect all values to remove first to avoid modification during iteration
	var toRemove []uint32

	rb.Range(func(x uint32) bool {
		if !f(x) {
			toRemove = append(toRemove, x)
		}
		return true
	})

	for _, x := range toRemove {
		rb.Remove(x)
	}
}
