// Copyright (c) saik0 and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"
)

func TestArrayInsertRange(t *testing.T) {
	c := newArr(1, 2, 8, 9)
	assert.Equal(t, 2, c.arrInsertRange(4, 5))
	assert.Equal(t, []uint16{1, 2, 4, 5, 8, 9}, c.Data)
	assert.Equal(t, uint32(6), c.Size)

	// Overlapping the existing values adds nothing new
	assert.Equal(t, 0, c.arrInsertRange(4, 5))
	assert.Equal(t, 2, c.arrInsertRange(3, 6))
	assert.Equal(t, []uint16{1, 2, 3, 4, 5, 6, 8, 9}, c.Data)
}

func TestBitmapInsertRange(t *testing.T) {
	c := newArr(1, 2, 3, 62, 63)
	c.arrToBmp()

	assert.Equal(t, 58, c.bmpInsertRange(1, 62))
	assert.Equal(t, uint32(63), c.Size)
	for v := uint16(1); v <= 63; v++ {
		assert.True(t, c.bmpHas(v), "missing %d", v)
	}
	assert.False(t, c.bmpHas(0))
	assert.False(t, c.bmpHas(64))

	// Range spanning several words
	assert.Equal(t, 936, c.bmpInsertRange(64, 999))
	assert.Equal(t, uint32(999), c.Size)
	assert.Equal(t, 999, c.population())
}

func TestBitmapRemoveRange(t *testing.T) {
	c := newArr()
	c.arrToBmp()
	c.bmpInsertRange(0, 999)

	assert.Equal(t, 500, c.bmpRemoveRange(250, 749))
	assert.Equal(t, uint32(500), c.Size)
	assert.True(t, c.bmpHas(249))
	assert.False(t, c.bmpHas(250))
	assert.False(t, c.bmpHas(749))
	assert.True(t, c.bmpHas(750))

	// Removing an absent range is a no-op
	assert.Equal(t, 0, c.bmpRemoveRange(250, 749))
}

func TestSetRangeAgainstModel(t *testing.T) {
	const span = 3 << 16

	rb := New()
	model := bitset.New(span)

	type op struct{ start, end uint32 }
	ops := []op{
		{100, 200},
		{65530, 65600}, // crosses a container boundary
		{0, 9000},      // promotes to bitmap
		{130000, 140000},
		{5, 5}, // single value
	}

	for _, o := range ops {
		expected := 0
		for v := o.start; v <= o.end; v++ {
			if !model.Test(uint(v)) {
				model.Set(uint(v))
				expected++
			}
		}
		assert.Equal(t, expected, rb.SetRange(o.start, o.end))
		validate(t, rb)
	}

	assert.Equal(t, int(model.Count()), rb.Count())
	rb.Range(func(x uint32) bool {
		assert.True(t, model.Test(uint(x)))
		return true
	})
}

func TestRemoveRangeAgainstModel(t *testing.T) {
	const span = 3 << 16

	rb := New()
	model := bitset.New(span)
	rb.SetRange(0, span-1)
	for v := uint(0); v < span; v++ {
		model.Set(v)
	}

	type op struct{ start, end uint32 }
	ops := []op{
		{10, 20},
		{65000, 66000}, // crosses a container boundary
		{0, 64},
		{131072, span - 1}, // empties the last container
	}

	for _, o := range ops {
		expected := 0
		for v := o.start; v <= o.end; v++ {
			if model.Test(uint(v)) {
				model.Clear(uint(v))
				expected++
			}
		}
		assert.Equal(t, expected, rb.RemoveRange(o.start, o.end))
		validate(t, rb)
	}

	assert.Equal(t, int(model.Count()), rb.Count())
	rb.Range(func(x uint32) bool {
		assert.True(t, model.Test(uint(x)))
		return true
	})
}

func TestSetRangeOverlapAtThreshold(t *testing.T) {
	// The second insert's worst-case estimate exceeds the threshold and
	// promotes the container, but the overlap keeps the actual population
	// at exactly densityThreshold: it must come back down to an array.
	rb := New()
	rb.SetRange(0, 4000)
	assert.Equal(t, typeArray, rb.containers[0].Type)

	assert.Equal(t, 95, rb.SetRange(0, densityThreshold-1))
	assert.Equal(t, densityThreshold, rb.Count())
	assert.Equal(t, typeArray, rb.containers[0].Type)
	validate(t, rb)

	buf := rb.ToBytes()
	assert.Equal(t, rb.SerializedSize(), len(buf))

	back, err := FromBytes(buf)
	assert.NoError(t, err)
	bitmapsEqual(t, rb, back)
	validate(t, back)
}

func TestInvertedRange(t *testing.T) {
	rb := From(1, 2, 3)
	assert.Equal(t, 0, rb.SetRange(10, 5))
	assert.Equal(t, 0, rb.RemoveRange(10, 5))
	assert.Equal(t, []uint32{1, 2, 3}, rb.ToArray())
}

func TestRangeEarlyExit(t *testing.T) {
	rb := From(1, 2, 3, 4, 5)

	var seen []uint32
	rb.Range(func(x uint32) bool {
		seen = append(seen, x)
		return x < 3
	})
	assert.Equal(t, []uint32{1, 2, 3}, seen)
}

func TestFilter(t *testing.T) {
	rb := New()
	rb.SetRange(0, 99)

	rb.Filter(func(x uint32) bool {
		return x%2 == 0
	})
	assert.Equal(t, 50, rb.Count())
	rb.Range(func(x uint32) bool {
		assert.Zero(t, x%2)
		return true
	})
}
