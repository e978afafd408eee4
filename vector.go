package roaring

import (
	"math/bits"

	"github.com/klauspost/cpuid/v2"
)

// Portable 8-lane merge kernels for sorted uint16 slices, after the SSE
// formulations in CRoaring (Lemire et al., Roaring Bitmaps: Implementation
// of an Optimized Software Library; Schlegel et al., Fast Sorted-Set
// Intersection using SIMD Instructions). Each kernel produces output
// byte-identical to its scalar counterpart in merge.go.

const vecLanes = 8

type vec8 [vecLanes]uint16

// useVector gates the 8-lane kernels at runtime; the scalar walks remain
// the fallback on everything else.
var useVector = cpuid.CPU.Supports(cpuid.SSE2) || cpuid.CPU.Supports(cpuid.ASIMD)

// compact8 maps a lane mask to the selected lane indices packed to the
// front, standing in for the 4096-byte byte-shuffle table of the SSE code.
var compact8 [256][vecLanes]uint8

func init() {
	for mask := 0; mask < 256; mask++ {
		pos := 0
		for lane := 0; lane < vecLanes; lane++ {
			if mask&(1<<lane) != 0 {
				compact8[mask][pos] = uint8(lane)
				pos++
			}
		}
	}
}

func load8(src []uint16) (v vec8) {
	copy(v[:], src[:vecLanes])
	return
}

func splat8(x uint16) (v vec8) {
	for i := range v {
		v[i] = x
	}
	return
}

// rot1 rotates the lanes down by one: lane 0 receives lane 1, lane 7 wraps
// around to receive lane 0.
func rot1(v vec8) vec8 {
	return vec8{v[1], v[2], v[3], v[4], v[5], v[6], v[7], v[0]}
}

func lanesMin(a, b vec8) (v vec8) {
	for i := range v {
		v[i] = min(a[i], b[i])
	}
	return
}

func lanesMax(a, b vec8) (v vec8) {
	for i := range v {
		v[i] = max(a[i], b[i])
	}
	return
}

// shr1 shifts v up by one lane, pulling the last lane of prev into lane 0.
func shr1(v, prev vec8) vec8 {
	return vec8{prev[7], v[0], v[1], v[2], v[3], v[4], v[5], v[6]}
}

// shr2 shifts v up by two lanes, pulling the last two lanes of prev.
func shr2(v, prev vec8) vec8 {
	return vec8{prev[6], prev[7], v[0], v[1], v[2], v[3], v[4], v[5]}
}

// eqMask compares lanes pairwise into a bitmask.
func eqMask(a, b vec8) (mask uint8) {
	for i := range a {
		if a[i] == b[i] {
			mask |= 1 << i
		}
	}
	return
}

// matrixCmp reports for each lane of a whether its value occurs anywhere in
// b, as the union of eight rotated lane comparisons.
func matrixCmp(a, b vec8) (mask uint8) {
	for k := 0; k < vecLanes; k++ {
		for i := 0; i < vecLanes; i++ {
			if a[i] == b[(i+k)&7] {
				mask |= 1 << i
			}
		}
	}
	return
}

// simdMerge merges two sorted vectors into sorted low and high halves using
// eight min/max rounds with a one-lane rotation (bitonic merge).
func simdMerge(a, b vec8) (lo, hi vec8) {
	tmp, mx := lanesMin(a, b), lanesMax(a, b)
	tmp = rot1(tmp)
	mn := lanesMin(tmp, mx)
	for r := 0; r < 6; r++ {
		mx = lanesMax(tmp, mx)
		tmp = rot1(mn)
		mn = lanesMin(tmp, mx)
	}
	mx = lanesMax(tmp, mx)
	mn = rot1(mn)
	return mn, mx
}

// appendShuffle appends the lanes of v selected by mask, in lane order.
func appendShuffle(out []uint16, v vec8, mask uint8) []uint16 {
	sel := &compact8[mask]
	for i := 0; i < bits.OnesCount8(mask); i++ {
		out = append(out, v[sel[i]])
	}
	return out
}

// appendUnique appends the lanes of v that differ from their predecessor in
// the merged stream, prev being the vector emitted just before v.
func appendUnique(out []uint16, prev, v vec8) []uint16 {
	return appendShuffle(out, v, ^eqMask(shr1(v, prev), v))
}

// appendUniqueXor appends the lanes of the one-lane-delayed vector that
// equal neither of their neighbours, realizing xor over the merged stream.
func appendUniqueXor(out []uint16, prev, v vec8) []uint16 {
	tmp1 := shr2(v, prev)
	tmp2 := shr1(v, prev)
	mask := eqMask(tmp2, tmp1) | eqMask(tmp2, v)
	return appendShuffle(out, tmp2, ^mask)
}

// andVector intersects two sorted slices. Eight lanes of each side are
// compared all-to-all; the side whose maximum is smaller advances. The
// sub-vector tails fall back to the scalar walk.
func andVector(a, b, out []uint16) []uint16 {
	stA, stB := len(a)/vecLanes*vecLanes, len(b)/vecLanes*vecLanes

	i, j := 0, 0
	if i < stA && j < stB {
		vA, vB := load8(a), load8(b)
		for {
			out = appendShuffle(out, vA, matrixCmp(vA, vB))

			aMax, bMax := a[i+vecLanes-1], b[j+vecLanes-1]
			if aMax <= bMax {
				i += vecLanes
				if i == stA {
					break
				}
				vA = load8(a[i:])
			}
			if bMax <= aMax {
				j += vecLanes
				if j == stB {
					break
				}
				vB = load8(b[j:])
			}
		}
	}

	return andWalk(a[i:], b[j:], out)
}

// subVector computes a minus b. A running mask records which lanes of the
// current a-vector have been seen anywhere in b; the complement is emitted
// once b can no longer contain them.
func subVector(a, b, out []uint16) []uint16 {
	switch {
	case len(a) == 0:
		return out
	case len(b) == 0:
		return append(out, a...)
	}

	stA, stB := len(a)/vecLanes*vecLanes, len(b)/vecLanes*vecLanes

	i, j := 0, 0
	if i < stA && j < stB {
		vA, vB := load8(a), load8(b)
		var found uint8
		for {
			found |= matrixCmp(vA, vB)

			aMax, bMax := a[i+vecLanes-1], b[j+vecLanes-1]
			if aMax <= bMax {
				out = appendShuffle(out, vA, ^found)
				i += vecLanes
				if i == stA {
					break
				}
				found = 0
				vA = load8(a[i:])
			}
			if bMax <= aMax {
				j += vecLanes
				if j == stB {
					break
				}
				vB = load8(b[j:])
			}
		}

		// Here i == stA or j == stB. If b ran out of full vectors first,
		// the loaded a-vector still has to meet the remaining b values
		// before its complement can be written.
		if i < stA {
			for _, bv := range b[stB:] {
				for k := 0; k < vecLanes; k++ {
					if vA[k] == bv {
						found |= 1 << k
					}
				}
			}
			out = appendShuffle(out, vA, ^found)
			i += vecLanes
		}
	}

	return subWalk(a[i:], b[j:], out)
}

// orVector unions two sorted slices with a one-pass merge: the side with
// the smaller head feeds the bitonic merge, the low half is emitted with
// duplicates masked out against the previously emitted vector.
func orVector(a, b, out []uint16) []uint16 {
	if len(a) < vecLanes || len(b) < vecLanes {
		return orWalk(a, b, out)
	}

	len1, len2 := len(a)/vecLanes, len(b)/vecLanes
	vMin, vMax := simdMerge(load8(a), load8(b))

	i, j := 1, 1
	out = appendUnique(out, splat8(0xFFFF), vMin)
	vPrev := vMin
	if i < len1 && j < len2 {
		var v vec8
		curA, curB := a[vecLanes*i], b[vecLanes*j]
		for {
			if curA <= curB {
				v = load8(a[vecLanes*i:])
				if i++; i < len1 {
					curA = a[vecLanes*i]
				} else {
					break
				}
			} else {
				v = load8(b[vecLanes*j:])
				if j++; j < len2 {
					curB = b[vecLanes*j]
				} else {
					break
				}
			}
			vMin, vMax = simdMerge(v, vMax)
			out = appendUnique(out, vPrev, vMin)
			vPrev = vMin
		}
		vMin, vMax = simdMerge(v, vMax)
		out = appendUnique(out, vPrev, vMin)
		vPrev = vMin
	}

	// Flush the in-flight maximums together with the sub-vector remainder
	// of the exhausted side, then merge scalar with the rest.
	var buf [16]uint16
	tail := appendUnique(buf[:0], vPrev, vMax)

	var tailA, tailB []uint16
	if i == len1 {
		tailA, tailB = a[vecLanes*i:], b[vecLanes*j:]
	} else {
		tailA, tailB = b[vecLanes*j:], a[vecLanes*i:]
	}

	tail = append(tail, tailA...)
	if len(tail) == 0 {
		return append(out, tailB...)
	}

	sort16(tail)
	tail = dedup16(tail)
	return orWalk(tail, tailB, out)
}

// xorVector is the union skeleton with the xor emit rule: lanes equal to
// either neighbour are dropped instead of deduplicated.
func xorVector(a, b, out []uint16) []uint16 {
	if len(a) < vecLanes || len(b) < vecLanes {
		return xorWalk(a, b, out)
	}

	len1, len2 := len(a)/vecLanes, len(b)/vecLanes
	vMin, vMax := simdMerge(load8(a), load8(b))

	i, j := 1, 1
	out = appendUniqueXor(out, splat8(0xFFFF), vMin)
	vPrev := vMin
	if i < len1 && j < len2 {
		var v vec8
		curA, curB := a[vecLanes*i], b[vecLanes*j]
		for {
			if curA <= curB {
				v = load8(a[vecLanes*i:])
				if i++; i < len1 {
					curA = a[vecLanes*i]
				} else {
					break
				}
			} else {
				v = load8(b[vecLanes*j:])
				if j++; j < len2 {
					curB = b[vecLanes*j]
				} else {
					break
				}
			}
			vMin, vMax = simdMerge(v, vMax)
			out = appendUniqueXor(out, vPrev, vMin)
			vPrev = vMin
		}
		vMin, vMax = simdMerge(v, vMax)
		out = appendUniqueXor(out, vPrev, vMin)
		vPrev = vMin
	}

	// The delayed emit never writes the last lane of vMax; carry it by
	// hand unless it duplicates its neighbour.
	var buf [17]uint16
	tail := appendUniqueXor(buf[:0], vPrev, vMax)
	if vMax[6] != vMax[7] {
		tail = append(tail, vMax[7])
	}

	var tailA, tailB []uint16
	if i == len1 {
		tailA, tailB = a[vecLanes*i:], b[vecLanes*j:]
	} else {
		tailA, tailB = b[vecLanes*j:], a[vecLanes*i:]
	}

	tail = append(tail, tailA...)
	if len(tail) == 0 {
		return append(out, tailB...)
	}

	sort16(tail)
	tail = xorDedup16(tail)
	return xorWalk(tail, tailB, out)
}
