package roaring

import "container/heap"

// Or computes the union of the given bitmaps in a single pass. Container
// cursors are merged through a min-heap keyed by container key; runs of
// equal keys collapse into one accumulator which is promoted to a bitmap
// before the second peer is merged in, keeping each merge step O(words).
func Or(bitmaps ...*Bitmap) *Bitmap {
	h := make(orHeap, 0, len(bitmaps))
	for _, rb := range bitmaps {
		if rb != nil && len(rb.containers) > 0 {
			h = append(h, &orCursor{rb: rb})
		}
	}
	heap.Init(&h)

	out := New()
	var cur *container
	var curKey uint16
	for h.Len() > 0 {
		top := h[0]
		key := top.rb.index[top.at]
		src := &top.rb.containers[top.at]
		if top.at++; top.at < len(top.rb.containers) {
			heap.Fix(&h, 0)
		} else {
			heap.Pop(&h)
		}

		switch {
		case cur == nil:
			c := src.clone()
			cur, curKey = &c, key

		case curKey == key:
			if cur.Type == typeArray {
				cur.arrToBmp() // promote before merging a second peer
			}
			switch src.Type {
			case typeArray:
				out.bmpOrArr(cur, src)
			case typeBitmap:
				out.bmpOrBmp(cur, src)
			}

		default:
			cur.optimize()
			out.ctrAdd(curKey, len(out.containers), cur)
			c := src.clone()
			cur, curKey = &c, key
		}
	}

	if cur != nil {
		cur.optimize()
		out.ctrAdd(curKey, len(out.containers), cur)
	}
	return out
}

// And computes the intersection of the given bitmaps, folding left to right
// and stopping as soon as the accumulator empties out.
func And(bitmaps ...*Bitmap) *Bitmap {
	out := New()
	if len(bitmaps) == 0 || bitmaps[0] == nil {
		return out
	}

	bitmaps[0].Clone(out)
	for _, rb := range bitmaps[1:] {
		if out.IsEmpty() {
			break
		}
		out.and(rb)
	}
	return out
}

// Xor computes the symmetric difference of the given bitmaps, left to right.
func Xor(bitmaps ...*Bitmap) *Bitmap {
	out := New()
	for _, rb := range bitmaps {
		out.xor(rb)
	}
	return out
}

// AndNot computes the difference between the first bitmap and the union of
// the rest, folding left to right.
func AndNot(bitmaps ...*Bitmap) *Bitmap {
	out := New()
	if len(bitmaps) == 0 || bitmaps[0] == nil {
		return out
	}

	bitmaps[0].Clone(out)
	for _, rb := range bitmaps[1:] {
		if out.IsEmpty() {
			break
		}
		out.andNot(rb)
	}
	return out
}

// lazyOr is the naive reduction used as an oracle for Or: containers are
// accumulated in key order, combining on collision with an eagerly promoted
// bitmap accumulator, and a final pass recounts, normalizes and drops
// empties.
func lazyOr(bitmaps ...*Bitmap) *Bitmap {
	out := New()
	for _, rb := range bitmaps {
		if rb == nil {
			continue
		}
		for i := range rb.containers {
			src := &rb.containers[i]
			key := rb.index[i]

			idx, exists := find16(out.index, key)
			if !exists {
				c := src.clone()
				out.ctrAdd(key, idx, &c)
				continue
			}

			dst := &out.containers[idx]
			if dst.Type == typeArray {
				dst.arrToBmp()
			}
			switch src.Type {
			case typeArray:
				out.bmpOrArr(dst, src)
			case typeBitmap:
				out.bmpOrBmp(dst, src)
			}
		}
	}

	// Late normalization
	for i := 0; i < len(out.containers); {
		c := &out.containers[i]
		c.Size = uint32(c.population())
		c.optimize()
		if c.Size == 0 {
			out.ctrDel(i)
			continue
		}
		i++
	}
	return out
}

// orCursor walks one bitmap's container sequence during the heap merge
type orCursor struct {
	rb *Bitmap
	at int
}

type orHeap []*orCursor

func (h orHeap) Len() int { return len(h) }

func (h orHeap) Less(i, j int) bool {
	return h[i].rb.index[h[i].at] < h[j].rb.index[h[j].at]
}

func (h orHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *orHeap) Push(x any) { *h = append(*h, x.(*orCursor)) }

func (h *orHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
