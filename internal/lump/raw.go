package lump

import (
	"fmt"
	"image"
)

// Flats of the various engines and hires variants, then other known
// fullscreen raw sizes.
var rawSizes = []image.Point{
	{64, 64}, {64, 65}, {64, 128}, {128, 128}, {256, 256},
	{320, 200}, {320, 158}, {16, 16}, {48, 48}, {32, 64},
}

// Raw is a headerless row-major image such as a flat.
type Raw struct {
	Width  int
	Height int
	Pixels []byte
}

// DecodeRaw infers the raw image dimensions from the lump length. Lengths
// not in the known size table are accepted as 320 wide autopages when they
// divide evenly.
func DecodeRaw(data []byte) (*Raw, error) {
	size := len(data)
	for _, s := range rawSizes {
		if s.X*s.Y == size {
			return &Raw{Width: s.X, Height: s.Y, Pixels: data}, nil
		}
	}
	if size > 0 && size%320 == 0 {
		return &Raw{Width: 320, Height: size / 320, Pixels: data}, nil
	}
	return nil, fmt.Errorf("%w: %d bytes", ErrRawSanity, size)
}

// RGBA maps every byte through pal as an opaque pixel.
func (r *Raw) RGBA(pal *Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for i, idx := range r.Pixels {
		img.SetRGBA(i%r.Width, i/r.Width, pal[idx])
	}
	return img
}
