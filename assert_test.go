// Copyright (c) saik0 and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func bitmapWith(c *container) (*Bitmap, []uint16) {
	v := New()
	v.ctrAdd(0, 0, c)
	return v, valuesOf(v)
}

func valuesOf(v *Bitmap) []uint16 {
	out := []uint16{}
	v.Range(func(x uint32) bool {
		out = append(out, uint16(x))
		return true
	})
	return out
}

func newArr(data ...uint32) *container {
	return newContainer(typeArray, data...)
}

func newBmp(data ...uint32) *container {
	return newContainer(typeBitmap, data...)
}

func newContainer(typ ctype, data ...uint32) *container {
	var backing []uint16
	switch typ {
	case typeBitmap:
		backing = make([]uint16, bitmapUint16s)
	default:
		backing = make([]uint16, 0, len(data))
	}

	c := &container{
		Type: typ,
		Data: backing,
	}

	for _, v := range data {
		switch c.Type {
		case typeArray:
			c.arrSet(uint16(v))
		case typeBitmap:
			c.bmpSet(uint16(v))
		}
	}
	return c
}

// validate checks the representation invariants after an operation: keys
// strictly increasing, no empty containers, cached cardinality accurate,
// and each representation on its side of the density threshold.
func validate(t *testing.T, rb *Bitmap) {
	t.Helper()
	assert.Equal(t, len(rb.containers), len(rb.index))

	for i := range rb.containers {
		c := &rb.containers[i]
		if i > 0 {
			assert.Less(t, rb.index[i-1], rb.index[i], "container keys must be strictly increasing")
		}

		assert.NotZero(t, c.Size, "container %d is empty", i)
		assert.Equal(t, c.population(), int(c.Size), "container %d cardinality is stale", i)

		switch c.Type {
		case typeArray:
			assert.LessOrEqual(t, c.Size, uint32(densityThreshold), "container %d should be a bitmap", i)
		case typeBitmap:
			assert.Greater(t, c.Size, uint32(densityThreshold), "container %d should be an array", i)
		}
	}
}

// ---------------------------------------- Data Generators ----------------------------------------

type dataGen = func() ([]uint32, string)

var rng = rand.New(rand.NewPCG(42, 1))

// genSeq creates consecutive integers starting from offset
func genSeq(size int, offset uint32) dataGen {
	return func() ([]uint32, string) {
		data := make([]uint32, size)
		for i := 0; i < size; i++ {
			data[i] = offset + uint32(i)
		}
		return data, "seq"
	}
}

// genRand creates random integers within a range
func genRand(size int, maxVal uint32) dataGen {
	return func() ([]uint32, string) {
		data := make([]uint32, size)
		for i := 0; i < size; i++ {
			data[i] = uint32(rng.IntN(int(maxVal)))
		}
		return data, "rnd"
	}
}

// genSparse creates sparse integers (large gaps)
func genSparse(size int) dataGen {
	return func() ([]uint32, string) {
		data := make([]uint32, size)
		for i := 0; i < size; i++ {
			data[i] = uint32(i * 1000)
		}
		return data, "sps"
	}
}

// genDense creates dense integers in a small range
func genDense(size int) dataGen {
	return func() ([]uint32, string) {
		data := make([]uint32, size)
		for i := 0; i < size; i++ {
			data[i] = uint32(rng.IntN(size / 10))
		}
		return data, "dns"
	}
}

// genBoundary creates boundary/edge case values
func genBoundary() dataGen {
	return func() ([]uint32, string) {
		data := []uint32{0, 65535, 65536, 131071, 131072, 4294967295}
		return data, "bnd"
	}
}

// genMixed creates values across multiple containers and both representations
func genMixed() dataGen {
	return func() ([]uint32, string) {
		var data []uint32
		// Container 0: sparse array values
		data = append(data, 1, 5, 10, 100, 500, 1000)
		// Container 1: enough values to promote to a bitmap
		for i := 0; i < 5000; i++ {
			data = append(data, uint32(65536+i*3))
		}
		// Container 2: a dense block
		for i := 131072; i <= 131172; i++ {
			data = append(data, uint32(i))
		}
		return data, "mix"
	}
}
