package lump

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// TexturePatch is one patch placement in a TEXTUREx record. StepDir and
// Colormap are only present in the Doom layout and are unused by engines.
type TexturePatch struct {
	OriginX  int
	OriginY  int
	Patch    int
	StepDir  int
	Colormap int
}

// TextureDef is a raw TEXTUREx record before patch names are resolved.
type TextureDef struct {
	Name    string
	Flags   uint16
	ScaleX  uint8
	ScaleY  uint8
	Width   int
	Height  int
	Patches []TexturePatch
}

// TextureX is a decoded TEXTURE1 or TEXTURE2 lump.
type TextureX struct {
	Strife   bool
	Textures []TextureDef
}

// DecodeTextureX parses a texture table. The Doom and Strife layouts are
// told apart by which one accounts exactly for the size of the last record.
// With hacks set, known broken offsets in the vanilla IWAD tables are
// corrected.
func DecodeTextureX(data []byte, hacks bool) (*TextureX, error) {
	offsets, err := textureOffsets(data)
	if err != nil || len(offsets) == 0 {
		return &TextureX{}, err
	}

	var strife bool
	switch {
	case lastRecordFits(data, offsets, true):
		strife = true
	case lastRecordFits(data, offsets, false):
	default:
		return nil, fmt.Errorf("%w: %d bytes", ErrTextureXSanity, len(data))
	}

	tx, err := decodeTextureRecords(data, offsets, strife)
	if err != nil {
		return nil, err
	}
	if hacks {
		sum := md5.Sum(data)
		applyTextureHacks(hex.EncodeToString(sum[:]), tx.Textures)
	}
	return tx, nil
}

// decodeTextureXAs decodes data assuming one layout, failing when that
// layout does not account for the size of the last record.
func decodeTextureXAs(data []byte, strife bool) (*TextureX, error) {
	offsets, err := textureOffsets(data)
	if err != nil || len(offsets) == 0 {
		return &TextureX{}, err
	}
	if !lastRecordFits(data, offsets, strife) {
		return nil, fmt.Errorf("%w: %d bytes", ErrTextureXSanity, len(data))
	}
	return decodeTextureRecords(data, offsets, strife)
}

func textureOffsets(data []byte) ([]int, error) {
	c := newCursor(data)
	count := int(c.i32())
	if c.short || count < 0 || count*4+4 > len(data) {
		return nil, fmt.Errorf("%w: bad texture count %d", ErrTextureXSanity, count)
	}

	offsets := make([]int, count)
	for i := range offsets {
		offsets[i] = int(c.i32())
	}
	return offsets, nil
}

// lastRecordFits reports whether the last record, read in the given layout,
// ends exactly at the end of data.
func lastRecordFits(data []byte, offsets []int, strife bool) bool {
	last := offsets[len(offsets)-1]
	c := newCursor(data)
	if strife {
		c.seek(last + 0x10)
		return !c.short && last+0x12+int(c.i16())*6 == len(data)
	}
	c.seek(last + 0x14)
	return !c.short && last+0x16+int(c.i16())*10 == len(data)
}

func decodeTextureRecords(data []byte, offsets []int, strife bool) (*TextureX, error) {
	c := newCursor(data)
	tx := &TextureX{Strife: strife, Textures: make([]TextureDef, 0, len(offsets))}
	for i, off := range offsets {
		c.short = false
		c.seek(off)
		def := TextureDef{
			Name:   c.name(),
			Flags:  c.u16(),
			ScaleX: c.u8(),
			ScaleY: c.u8(),
			Width:  int(c.i16()),
			Height: int(c.i16()),
		}
		if !strife {
			c.skip(4) // column directory
		}

		n := int(c.i16())
		if n < 0 {
			return nil, fmt.Errorf("%w: texture %d has %d patches", ErrTextureXSanity, i, n)
		}
		def.Patches = make([]TexturePatch, n)
		for j := range def.Patches {
			p := &def.Patches[j]
			p.OriginX = int(c.i16())
			p.OriginY = int(c.i16())
			p.Patch = int(c.i16())
			if !strife {
				p.StepDir = int(c.i16())
				p.Colormap = int(c.i16())
			}
		}
		if c.short {
			return nil, fmt.Errorf("%w: texture %d is truncated", ErrTextureXSanity, i)
		}
		tx.Textures = append(tx.Textures, def)
	}
	return tx, nil
}

// Info resolves a record into a TextureInfo using pnames for patch names.
func (d TextureDef) Info(pnames PNames) (TextureInfo, error) {
	t := NewTextureInfo(d.Name, d.Width, d.Height)
	t.Namespace = "WallTexture"
	if d.ScaleX != 0 {
		t.XScale = float64(d.ScaleX) / 8
	}
	if d.ScaleY != 0 {
		t.YScale = float64(d.ScaleY) / 8
	}
	t.WorldPanning = d.Flags&0x8000 != 0

	for _, p := range d.Patches {
		if p.Patch < 0 || p.Patch >= len(pnames) {
			return TextureInfo{}, fmt.Errorf("%w: texture %s references patch %d of %d", ErrTextureXSanity, d.Name, p.Patch, len(pnames))
		}
		t.Patches = append(t.Patches, NewPatchInfo(pnames[p.Patch], p.OriginX, p.OriginY))
	}
	return t, nil
}

// Resolve converts every record to a TextureInfo.
func (tx *TextureX) Resolve(pnames PNames) ([]TextureInfo, error) {
	infos := make([]TextureInfo, 0, len(tx.Textures))
	for _, def := range tx.Textures {
		info, err := def.Info(pnames)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}
