package roaring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromSorted(t *testing.T) {
	rb, err := FromSorted(0, 65535, 65536, 131072)
	assert.NoError(t, err)

	assert.Equal(t, []uint16{0, 1, 2}, rb.index)
	assert.Equal(t, uint32(2), rb.containers[0].Size)
	assert.Equal(t, uint32(1), rb.containers[1].Size)
	assert.Equal(t, uint32(1), rb.containers[2].Size)
	assert.Equal(t, []uint32{0, 65535, 65536, 131072}, rb.ToArray())
	validate(t, rb)
}

func TestFromSortedRejectsDisorder(t *testing.T) {
	_, err := FromSorted(1, 3, 2)
	assert.ErrorIs(t, err, ErrOutOfOrder)

	_, err = FromSorted(1, 1)
	assert.ErrorIs(t, err, ErrOutOfOrder)

	rb, err := FromSorted()
	assert.NoError(t, err)
	assert.True(t, rb.IsEmpty())
}

func TestFromSortedMatchesFrom(t *testing.T) {
	for _, gen := range []dataGen{genSeq(10000, 60000), genSparse(300), genBoundary()} {
		data, name := gen()
		sorted := From(data...).ToArray() // deduplicated ascending input

		rb, err := FromSorted(sorted...)
		assert.NoError(t, err, name)
		assert.Equal(t, sorted, rb.ToArray(), name)
		validate(t, rb)
	}
}

func TestFromSortedPromotes(t *testing.T) {
	values := make([]uint32, 10000)
	for i := range values {
		values[i] = uint32(i)
	}

	rb, err := FromSorted(values...)
	assert.NoError(t, err)
	assert.Equal(t, typeBitmap, rb.containers[0].Type)
	assert.Equal(t, 10000, rb.Count())
	validate(t, rb)
}

func TestIterator(t *testing.T) {
	data, _ := genMixed()()
	rb := From(data...)
	want := rb.ToArray()

	it := rb.Iterator()
	assert.Equal(t, rb.Count(), it.Remaining())

	got := make([]uint32, 0, len(want))
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, v)
		assert.Equal(t, len(want)-len(got), it.Remaining())
	}

	assert.Equal(t, want, got)
	assert.Zero(t, it.Remaining())

	// Exhausted iterators stay exhausted
	_, ok := it.Next()
	assert.False(t, ok)
}

func TestIteratorEmpty(t *testing.T) {
	it := New().Iterator()
	assert.Zero(t, it.Remaining())
	_, ok := it.Next()
	assert.False(t, ok)
}
