package lump

import (
	"fmt"
	"image/color"
)

const paletteSize = 256 * 3

// Palette is one 256 colour PLAYPAL entry.
type Palette [256]color.RGBA

// Palettes holds every palette in a PLAYPAL lump. Index 0 is the normal
// palette used for picture and raw decoding.
type Palettes []Palette

// DecodePalettes splits a PLAYPAL lump into its palettes. Trailing bytes
// that do not make up a whole palette are ignored.
func DecodePalettes(data []byte) (Palettes, error) {
	n := len(data) / paletteSize
	if n == 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrPaletteSanity, len(data))
	}

	pals := make(Palettes, n)
	for p := range pals {
		base := p * paletteSize
		for i := range pals[p] {
			off := base + i*3
			pals[p][i] = color.RGBA{R: data[off], G: data[off+1], B: data[off+2], A: 255}
		}
	}
	return pals, nil
}

// DecodePalette returns the default palette of a PLAYPAL lump.
func DecodePalette(data []byte) (*Palette, error) {
	pals, err := DecodePalettes(data)
	if err != nil {
		return nil, err
	}
	return pals.Default(), nil
}

func (p Palettes) Default() *Palette {
	return &p[0]
}
