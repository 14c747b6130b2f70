package lump

import (
	"encoding/binary"
	"image/color"
)

type testPost struct {
	delta  byte
	pixels []byte
}

// buildPicture assembles a patch lump from per-column posts.
func buildPicture(width, height, left, top int, columns [][]testPost) []byte {
	header := make([]byte, 8+4*width)
	binary.LittleEndian.PutUint16(header[0:], uint16(width))
	binary.LittleEndian.PutUint16(header[2:], uint16(height))
	binary.LittleEndian.PutUint16(header[4:], uint16(int16(left)))
	binary.LittleEndian.PutUint16(header[6:], uint16(int16(top)))

	var body []byte
	for i, posts := range columns {
		binary.LittleEndian.PutUint32(header[8+4*i:], uint32(len(header)+len(body)))
		for _, p := range posts {
			body = append(body, p.delta, byte(len(p.pixels)), 0)
			body = append(body, p.pixels...)
			body = append(body, 0)
		}
		body = append(body, 0xFF)
	}
	return append(header, body...)
}

// greyPalette maps index i to (i, i, i).
func greyPalette() *Palette {
	var p Palette
	for i := range p {
		p[i] = color.RGBA{R: uint8(i), G: uint8(i), B: uint8(i), A: 255}
	}
	return &p
}

func le16(v int) []byte {
	return binary.LittleEndian.AppendUint16(nil, uint16(int16(v)))
}

func le32(v int) []byte {
	return binary.LittleEndian.AppendUint32(nil, uint32(int32(v)))
}
