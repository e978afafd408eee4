package roaring

import "math/bits"

// Iterator yields the values of a bitmap in ascending order. The bitmap
// must not be mutated while an iterator is live.
type Iterator struct {
	rb        *Bitmap
	ci        int    // container cursor
	pos       int    // position within an array container
	at        int    // word index within a bitmap container
	word      uint64 // unconsumed bits of the current word
	remaining int
}

// Iterator returns a new iterator positioned before the first value.
func (rb *Bitmap) Iterator() *Iterator {
	return &Iterator{rb: rb, at: -1, remaining: rb.Count()}
}

// Remaining returns the exact number of values left to yield.
func (it *Iterator) Remaining() int {
	return it.remaining
}

// Next returns the next value in ascending order, or false when exhausted.
func (it *Iterator) Next() (uint32, bool) {
	for it.ci < len(it.rb.containers) {
		c := &it.rb.containers[it.ci]
		base := uint32(it.rb.index[it.ci]) << 16

		switch c.Type {
		case typeArray:
			if it.pos < len(c.Data) {
				v := base | uint32(c.Data[it.pos])
				it.pos++
				it.remaining--
				return v, true
			}

		case typeBitmap:
			w := c.bmp()
			for {
				if it.word != 0 {
					b := bits.TrailingZeros64(it.word)
					it.word &= it.word - 1
					it.remaining--
					return base | uint32(it.at)<<6 | uint32(b), true
				}
				if it.at++; it.at >= len(w) {
					break
				}
				it.word = w[it.at]
			}
		}

		it.ci++
		it.pos = 0
		it.at = -1
		it.word = 0
	}
	return 0, false
}

// ToArray returns all values of the bitmap in ascending order.
func (rb *Bitmap) ToArray() []uint32 {
	out := make([]uint32, 0, rb.Count())
	rb.Range(func(x uint32) bool {
		out = append(out, x)
		return true
	})
	return out
}
