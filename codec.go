// Copyright (c) saik0 and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"unsafe"
)

// Portable serialization. The stream opens with a 4-byte cookie: 0x00003B31
// announces the short header (no run containers) followed by a 2-byte
// container count minus one. Streams whose low cookie half is 0x3B30 carry
// the long header with a run-flag bitmap; this implementation writes none
// and refuses to read a non-zero flag. The descriptive header lists one
// (key, cardinality-1) pair per container, the offset header (short layout,
// four containers or more) the absolute byte position of each body. Bodies
// are little-endian: 2·cardinality bytes per array container, 8192 bytes
// per bitmap container. An empty bitmap serializes to an empty stream.

var (
	ErrInvalidCookie = errors.New("roaring: invalid serialization cookie")
	ErrRunContainer  = errors.New("roaring: run containers are not supported")
	ErrCardinality   = errors.New("roaring: container cardinality does not match its payload")
	ErrMalformed     = errors.New("roaring: malformed container payload")
)

const (
	cookieNoRuns    = 0x3B31
	cookieRuns      = 0x3B30
	offsetThreshold = 4
)

var isLittleEndian = func() bool {
	var probe uint16 = 1
	return *(*byte)(unsafe.Pointer(&probe)) == 1
}()

// ToBytes converts the bitmap to a byte slice
func (rb *Bitmap) ToBytes() []byte {
	var buf bytes.Buffer
	if _, err := rb.WriteTo(&buf); err != nil {
		panic(err)
	}

	return buf.Bytes()
}

// SerializedSize returns the exact number of bytes WriteTo would produce.
func (rb *Bitmap) SerializedSize() int {
	n := len(rb.containers)
	if n == 0 {
		return 0
	}

	size := 6 + 4*n
	if n >= offsetThreshold {
		size += 4 * n
	}
	for i := range rb.containers {
		size += rb.containers[i].bodySize()
	}
	return size
}

// bodySize is the serialized payload size of one container
func (c *container) bodySize() int {
	if c.Size > densityThreshold {
		return 2 * bitmapUint16s
	}
	return 2 * int(c.Size)
}

// WriteTo writes the bitmap to a writer
func (rb *Bitmap) WriteTo(w io.Writer) (int64, error) {
	count := len(rb.containers)
	if count == 0 {
		return 0, nil
	}

	var n int64
	if err := binary.Write(w, binary.LittleEndian, uint32(cookieNoRuns)); err != nil {
		return n, err
	}
	n += 4

	if err := binary.Write(w, binary.LittleEndian, uint16(count-1)); err != nil {
		return n, err
	}
	n += 2

	// Descriptive header
	for i := range rb.containers {
		c := &rb.containers[i]
		if err := binary.Write(w, binary.LittleEndian, rb.index[i]); err != nil {
			return n, err
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(c.Size-1)); err != nil {
			return n, err
		}
		n += 4
	}

	// Offset header
	if count >= offsetThreshold {
		offset := uint32(6 + 8*count)
		for i := range rb.containers {
			if err := binary.Write(w, binary.LittleEndian, offset); err != nil {
				return n, err
			}
			n += 4
			offset += uint32(rb.containers[i].bodySize())
		}
	}

	// Container bodies
	for i := range rb.containers {
		c := &rb.containers[i]
		payload := c.Data
		if c.Type == typeBitmap {
			payload = c.Data[:bitmapUint16s]
		}
		if len(payload) == 0 {
			continue
		}

		if err := writeUint16s(w, payload); err != nil {
			return n, err
		}
		n += int64(2 * len(payload))
	}
	return n, nil
}

// ReadFrom reads the bitmap from a reader, replacing its current contents.
// A clean EOF before the cookie yields an empty bitmap.
func (rb *Bitmap) ReadFrom(r io.Reader) (int64, error) {
	rb.Clear()
	var n int64

	var head [6]byte
	m, err := io.ReadFull(r, head[:4])
	n += int64(m)
	switch {
	case err == io.EOF:
		return n, nil
	case err != nil:
		return n, err
	}

	cookie := binary.LittleEndian.Uint32(head[:4])
	var count int
	long := false
	switch {
	case cookie&0xFFFF == cookieRuns:
		long = true
		count = int(cookie>>16) + 1

		flags := make([]byte, (count+7)/8)
		m, err := io.ReadFull(r, flags)
		n += int64(m)
		if err != nil {
			return n, noEOF(err)
		}
		for _, f := range flags {
			if f != 0 {
				return n, ErrRunContainer
			}
		}

	case cookie == cookieNoRuns:
		m, err := io.ReadFull(r, head[4:6])
		n += int64(m)
		if err != nil {
			return n, noEOF(err)
		}
		count = int(binary.LittleEndian.Uint16(head[4:6])) + 1

	default:
		return n, ErrInvalidCookie
	}

	// Descriptive header
	desc := make([]byte, 4*count)
	m, err = io.ReadFull(r, desc)
	n += int64(m)
	if err != nil {
		return n, noEOF(err)
	}

	keys := make([]uint16, count)
	sizes := make([]int, count)
	for i := 0; i < count; i++ {
		keys[i] = binary.LittleEndian.Uint16(desc[4*i:])
		sizes[i] = int(binary.LittleEndian.Uint16(desc[4*i+2:])) + 1
		if i > 0 && keys[i] <= keys[i-1] {
			return n, ErrMalformed
		}
	}

	// Offset header, cross-checked against the sizes just read
	if !long && count >= offsetThreshold {
		offs := make([]byte, 4*count)
		m, err = io.ReadFull(r, offs)
		n += int64(m)
		if err != nil {
			return n, noEOF(err)
		}

		expect := uint32(6 + 8*count)
		for i := 0; i < count; i++ {
			if binary.LittleEndian.Uint32(offs[4*i:]) != expect {
				return n, ErrMalformed
			}
			if sizes[i] > densityThreshold {
				expect += 2 * bitmapUint16s
			} else {
				expect += uint32(2 * sizes[i])
			}
		}
	}

	// Container bodies
	for i := 0; i < count; i++ {
		var c container
		switch size := sizes[i]; {
		case size > densityThreshold:
			payload, err := readUint16s(r, bitmapUint16s)
			if err != nil {
				return n, err
			}
			n += 2 * bitmapUint16s

			c = container{Type: typeBitmap, Data: payload}
			c.Size = uint32(c.population())
			if int(c.Size) != size {
				return n, ErrCardinality
			}

		default:
			payload, err := readUint16s(r, size)
			if err != nil {
				return n, err
			}
			n += int64(2 * size)

			for j := 1; j < len(payload); j++ {
				if payload[j] <= payload[j-1] {
					return n, ErrMalformed
				}
			}
			c = container{Type: typeArray, Size: uint32(size), Data: payload}
		}

		rb.ctrAdd(keys[i], len(rb.containers), &c)
	}
	return n, nil
}

// FromBytes creates a roaring bitmap from a byte buffer
func FromBytes(buffer []byte) (*Bitmap, error) {
	return ReadFrom(bytes.NewReader(buffer))
}

// ReadFrom reads a roaring bitmap from an io.Reader
func ReadFrom(r io.Reader) (*Bitmap, error) {
	rb := New()
	if _, err := rb.ReadFrom(r); err != nil {
		return nil, err
	}
	return rb, nil
}

// noEOF turns a clean EOF in the middle of the stream into an unexpected one
func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// writeUint16s writes a slice of uint16s to a writer, reinterpreting it as
// bytes when the machine is little endian.
func writeUint16s(w io.Writer, data []uint16) error {
	if isLittleEndian {
		buf := unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*2)
		_, err := w.Write(buf)
		return err
	}
	return binary.Write(w, binary.LittleEndian, data)
}

// readUint16s reads count uint16s from a reader, reinterpreting the raw
// bytes when the machine is little endian.
func readUint16s(r io.Reader, count int) ([]uint16, error) {
	if isLittleEndian {
		raw := make([]byte, count*2)
		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, noEOF(err)
		}
		return unsafe.Slice((*uint16)(unsafe.Pointer(&raw[0])), count), nil
	}

	out := make([]uint16, count)
	if err := binary.Read(r, binary.LittleEndian, out); err != nil {
		return nil, noEOF(err)
	}
	return out, nil
}
