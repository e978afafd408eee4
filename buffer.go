package roaring

import (
	"unsafe"

	"github.com/kelindar/bitmap"
)

// bmp views the container payload as the dense word form. Only valid for
// bitmap containers, whose payload is always bitmapUint16s long.
func (c *container) bmp() bitmap.Bitmap {
	return asBitmap(c.Data)
}

// asBitmap reinterprets a uint16 payload as bitmap words
func asBitmap(data []uint16) bitmap.Bitmap {
	if len(data) == 0 {
		return nil
	}

	return bitmap.Bitmap(unsafe.Slice((*uint64)(unsafe.Pointer(&data[0])), len(data)/4))
}
