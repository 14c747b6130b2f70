package lump

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// IsPNG reports whether data starts with the PNG signature.
func IsPNG(data []byte) bool {
	return bytes.HasPrefix(data, pngSignature)
}

// ReadGrab returns the offsets stored in a PNG grAb chunk, or nil when the
// image has none. Chunks after the first IDAT are not inspected.
func ReadGrab(data []byte) (*Offsets, error) {
	if !IsPNG(data) {
		return nil, fmt.Errorf("not a png")
	}

	pos := len(pngSignature)
	for pos+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[pos:]))
		typ := string(data[pos+4 : pos+8])
		body := pos + 8
		if typ == "IDAT" {
			return nil, nil
		}
		if length < 0 || body+length+4 > len(data) {
			return nil, fmt.Errorf("png chunk %q is truncated", typ)
		}
		if typ == "grAb" {
			if length != 8 {
				return nil, fmt.Errorf("grAb chunk has %d bytes, want 8", length)
			}
			return &Offsets{
				Left: int(int32(binary.BigEndian.Uint32(data[body:]))),
				Top:  int(int32(binary.BigEndian.Uint32(data[body+4:]))),
			}, nil
		}
		pos = body + length + 4
	}
	return nil, nil
}

// EncodePNG encodes img and, when offsets is set, inserts a grAb chunk
// right after IHDR.
func EncodePNG(img image.Image, offsets *Offsets) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	out := buf.Bytes()
	if offsets == nil {
		return out, nil
	}

	grab := make([]byte, 8)
	binary.BigEndian.PutUint32(grab, uint32(int32(offsets.Left)))
	binary.BigEndian.PutUint32(grab[4:], uint32(int32(offsets.Top)))

	// signature + IHDR (length, type, 13 bytes, crc)
	ihdrEnd := len(pngSignature) + 4 + 4 + 13 + 4
	return insertChunk(out, ihdrEnd, "grAb", grab), nil
}

func insertChunk(data []byte, at int, typ string, body []byte) []byte {
	chunk := make([]byte, 0, 12+len(body))
	chunk = binary.BigEndian.AppendUint32(chunk, uint32(len(body)))
	chunk = append(chunk, typ...)
	chunk = append(chunk, body...)
	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(body)
	chunk = binary.BigEndian.AppendUint32(chunk, crc.Sum32())

	out := make([]byte, 0, len(data)+len(chunk))
	out = append(out, data[:at]...)
	out = append(out, chunk...)
	return append(out, data[at:]...)
}
