package lump

import (
	"fmt"
	"image"
	"image/draw"
)

// Composite renders a multi-patch texture. patch returns the lump data for
// a patch name; patches are drawn in order at their origins over a
// transparent canvas. Patch options beyond placement are not rendered.
func Composite(t TextureInfo, patch func(name string) ([]byte, error), pal *Palette) (*image.RGBA, error) {
	if t.Width <= 0 || t.Height <= 0 {
		return nil, fmt.Errorf("texture %s has size %dx%d", t.Name, t.Width, t.Height)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, t.Width, t.Height))
	for _, p := range t.Patches {
		data, err := patch(p.Name)
		if err != nil {
			return nil, fmt.Errorf("reading patch %s: %w", p.Name, err)
		}
		if data == nil {
			return nil, fmt.Errorf("texture %s: patch %s not found", t.Name, p.Name)
		}

		img, err := DecodeImage(data, pal)
		if err != nil {
			return nil, fmt.Errorf("decoding patch %s: %w", p.Name, err)
		}

		at := image.Pt(p.XOrigin, p.YOrigin)
		r := img.RGBA.Bounds().Sub(img.RGBA.Bounds().Min).Add(at)
		draw.Draw(canvas, r, img.RGBA, img.RGBA.Bounds().Min, draw.Over)
	}
	return canvas, nil
}
