package roaring

// Scalar merge kernels over sorted, duplicate-free uint16 slices. Each
// appends to out and returns it; out must not alias the right-hand input.
// The vector kernels in vector.go produce byte-identical output.

// andWalk appends the values present in both slices.
func andWalk(a, b, out []uint16) []uint16 {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		av, bv := a[i], b[j]
		switch {
		case av == bv:
			out = append(out, av)
			i++
			j++
		case av < bv:
			i++
		default: // av > bv
			j++
		}
	}
	return out
}

// orWalk appends the values present in either slice, once.
func orWalk(a, b, out []uint16) []uint16 {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		av, bv := a[i], b[j]
		switch {
		case av == bv:
			out = append(out, av)
			i++
			j++
		case av < bv:
			out = append(out, av)
			i++
		default: // av > bv
			out = append(out, bv)
			j++
		}
	}

	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// xorWalk appends the values present in exactly one slice.
func xorWalk(a, b, out []uint16) []uint16 {
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
			out = append(out, bv)
			j++
		}
	}

	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// subWalk appends the values of a that are absent from b.
func subWalk(a, b, out []uint16) []uint16 {
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
	return out
}

// skewThreshold selects the galloping intersection once one operand is at
// least this many times smaller than the other.
const skewThreshold = 64

// intersectSkewed intersects a small sorted slice against a much larger one
// by searching four targets per round with a shared branchless binary
// search, appending matches to out. out may alias a prefix of small but
// must not alias large.
func intersectSkewed(small, large, out []uint16) []uint16 {
	idxS, idxL := 0, 0
	for idxS+4 <= len(small) && idxL < len(large) {
		t1, t2, t3, t4 := small[idxS], small[idxS+1], small[idxS+2], small[idxS+3]
		i1, i2, i3, i4 := binarySearch4(large[idxL:], t1, t2, t3, t4)
		if idxL+i1 < len(large) && large[idxL+i1] == t1 {
			out = append(out, t1)
		}
		if idxL+i2 < len(large) && large[idxL+i2] == t2 {
			out = append(out, t2)
		}
		if idxL+i3 < len(large) && large[idxL+i3] == t3 {
			out = append(out, t3)
		}
		if idxL+i4 < len(large) && large[idxL+i4] == t4 {
			out = append(out, t4)
		}
		idxS += 4
		idxL += i4
	}

	if idxS+2 <= len(small) && idxL < len(large) {
		t1, t2 := small[idxS], small[idxS+1]
		i1, i2 := binarySearch2(large[idxL:], t1, t2)
		if idxL+i1 < len(large) && large[idxL+i1] == t1 {
			out = append(out, t1)
		}
		if idxL+i2 < len(large) && large[idxL+i2] == t2 {
			out = append(out, t2)
		}
		idxS += 2
		idxL += i2
	}

	if idxS < len(small) && idxL < len(large) {
		if _, ok := gallop16(large[idxL:], small[idxS]); ok {
			out = append(out, small[idxS])
		}
	}
	return out
}

// sort16 is an insertion sort for the short flush buffers of the vector kernels.
func sort16(a []uint16) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j] < a[j-1]; j-- {
			a[j], a[j-1] = a[j-1], a[j]
		}
	}
}

// dedup16 removes adjacent duplicates in place, keeping one copy.
func dedup16(a []uint16) []uint16 {
	if len(a) == 0 {
		return a
	}

	pos := 1
	for i := 1; i < len(a); i++ {
		if a[i] != a[i-1] {
			a[pos] = a[i]
			pos++
		}
	}
	return a[:pos]
}

// xorDedup16 removes adjacent duplicates in place, dropping both copies.
// No value may occur more than twice.
func xorDedup16(a []uint16) []uint16 {
	if len(a) == 0 {
		return a
	}

	pos := 1
	for i := 1; i < len(a); i++ {
		if a[i] != a[i-1] {
			a[pos] = a[i]
			pos++
		} else {
			pos-- // identical to previous, delete it
		}
	}
	return a[:pos]
}
