package export

import (
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/jchantrell/doomarc/internal/archive"
	"github.com/jchantrell/doomarc/internal/lump"
)

// TextureOptions control Textures.
type TextureOptions struct {
	// NonComposites adds a patchless definition for every drawable image
	// in the sprites, graphics, flats, textures and hires namespaces.
	NonComposites bool
	// Hacks applies the corrections for known broken vanilla tables.
	Hacks bool
}

// nonCompositeNamespaces is walked in order; hires must come after the
// namespaces it can replace.
var nonCompositeNamespaces = []string{"sprites", "graphics", "flats", "textures", "hires"}

// Textures lists the texture definitions of chain: patchless definitions
// first when asked for, then the TEXTUREx composites.
//
// A sprite, graphic or flat is skipped when a texture of the same name
// exists. Otherwise a same-named hires image replaces it, scaled to the
// original, and is consumed so only that one lump is replaced.
func Textures(chain *archive.Archives, opts TextureOptions) ([]lump.TextureInfo, error) {
	var out []lump.TextureInfo
	if opts.NonComposites {
		out = nonComposites(chain, loadPalette(chain))
	}

	if chain.HasLump("texture1", "*") && chain.HasLump("pnames", "*") {
		composites, err := textureDefinitions(chain, opts.Hacks)
		if err != nil {
			return nil, err
		}
		out = append(out, composites...)
	}
	return out, nil
}

func nonComposites(chain *archive.Archives, pal *lump.Palette) []lump.TextureInfo {
	namespaces := chain.Namespaces()
	dropMirroredSprites(namespaces["sprites"])
	textures := namespaces["textures"]
	hires := namespaces["hires"]

	var out []lump.TextureInfo
	for _, ns := range nonCompositeNamespaces {
		headers := namespaces[ns]
		for _, name := range slices.Sorted(maps.Keys(headers)) {
			h := headers[name]
			img, err := decodeHeader(h, pal)
			if err != nil {
				slog.Info("Could not identify lump as an image, skipping", "lump", h.Name, "namespace", ns, "error", err)
				continue
			}

			t := lump.NewTextureInfo(strings.ToUpper(name), img.Width(), img.Height())
			t.Namespace = textureType(ns)
			if img.Offsets != nil {
				t.Offset = [2]int{img.Offsets.Left, img.Offsets.Top}
			}

			if ns == "sprites" || ns == "graphics" || ns == "flats" {
				if _, ok := textures[name]; ok {
					continue
				}
				if hi, ok := hires[name]; ok {
					applyHires(&t, img, hi, pal)
					delete(hires, name)
				}
			}
			out = append(out, t)
		}
	}
	return out
}

// dropMirroredSprites removes combined rotation frames such as TROOA2A8
// when both TROOA2 and TROOA8 exist on their own.
func dropMirroredSprites(sprites map[string]archive.LumpHeader) {
	for name := range sprites {
		if len(name) <= 6 {
			continue
		}
		_, standard := sprites[name[:6]]
		_, mirrored := sprites[name[:4]+name[6:]]
		if standard && mirrored {
			delete(sprites, name)
		}
	}
}

func applyHires(t *lump.TextureInfo, img *lump.Image, hi archive.LumpHeader, pal *lump.Palette) {
	himg, err := decodeHeader(hi, pal)
	if err != nil {
		slog.Info("Could not identify hires replacement as an image", "lump", hi.Name, "error", err)
		return
	}

	t.Width, t.Height = himg.Width(), himg.Height()
	t.XScale = float64(himg.Width()) / float64(img.Width())
	t.YScale = float64(himg.Height()) / float64(img.Height())
	if img.Offsets != nil {
		t.Offset = [2]int{
			int(float64(img.Offsets.Left) * t.XScale),
			int(float64(img.Offsets.Top) * t.YScale),
		}
	}
}

func decodeHeader(h archive.LumpHeader, pal *lump.Palette) (*lump.Image, error) {
	data, err := archive.ReadLump(h)
	if err != nil {
		return nil, err
	}
	return lump.DecodeImage(data, pal)
}

// textureType is the TEXTURES keyword for a namespace; hires images that
// replaced nothing become plain textures.
func textureType(ns string) string {
	switch ns {
	case "sprites":
		return "Sprite"
	case "graphics":
		return "Graphic"
	case "flats":
		return "Flat"
	default:
		return "Texture"
	}
}
