package lump

import (
	"bytes"
	"encoding/binary"

	"golang.org/x/exp/constraints"
)

// cursor reads little-endian fields from a lump buffer. Reads past the end
// set short instead of panicking, so a decoder can check once at the end.
type cursor struct {
	data  []byte
	pos   int
	short bool
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

func (c *cursor) seek(pos int) {
	c.pos = pos
}

func (c *cursor) take(n int) []byte {
	if c.short || n < 0 || c.pos < 0 || c.pos+n > len(c.data) {
		c.short = true
		return nil
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b
}

func (c *cursor) skip(n int) {
	c.take(n)
}

func (c *cursor) u8() uint8 {
	b := c.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (c *cursor) u16() uint16 {
	b := c.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (c *cursor) i16() int16 {
	return int16(c.u16())
}

func (c *cursor) u32() uint32 {
	b := c.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (c *cursor) i32() int32 {
	return int32(c.u32())
}

func (c *cursor) name() string {
	b := c.take(8)
	if b == nil {
		return ""
	}
	return Name8(b)
}

// Name8 converts a fixed 8 byte lump name field to a string, cutting at the
// first NUL.
func Name8(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// PutName8 writes name into an 8 byte field, NUL padded.
func PutName8(dst []byte, name string) {
	n := copy(dst[:8], name)
	for i := n; i < 8; i++ {
		dst[i] = 0
	}
}

func within[T constraints.Integer](v, lo, hi T) bool {
	return v >= lo && v <= hi
}
