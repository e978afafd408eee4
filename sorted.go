package roaring

import "errors"

// ErrOutOfOrder is returned by FromSorted when the input is not strictly increasing.
var ErrOutOfOrder = errors.New("roaring: values must be strictly increasing")

// FromSorted builds a bitmap from strictly increasing values. Each value is
// pushed onto the current container: a slice append while it is an array,
// a bit set after a word scan for the current maximum once it is a bitmap.
// A new container is appended whenever the high 16 bits change.
func FromSorted(values ...uint32) (*Bitmap, error) {
	rb := New()
	var last uint32
	for i, x := range values {
		if i > 0 && x <= last {
			return nil, ErrOutOfOrder
		}
		last = x

		hi, lo := split(x)
		if n := len(rb.index); n == 0 || rb.index[n-1] != hi {
			rb.ctrAdd(hi, len(rb.containers), &container{
				Type: typeArray,
				Data: make([]uint16, 0, 64),
			})
		}
		rb.containers[len(rb.containers)-1].push(lo)
	}
	return rb, nil
}
