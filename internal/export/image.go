package export

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/jchantrell/doomarc/internal/archive"
	"github.com/jchantrell/doomarc/internal/lump"
)

// Namespaces whose lumps are images.
var imageNamespaces = []string{"sprites", "graphics", "patches", "flats", "textures", "hires"}

func loadPalette(chain *archive.Archives) *lump.Palette {
	data, err := chain.Lookup("playpal")
	if err != nil || data == nil {
		slog.Info("No palette in chain, images stay in their original format")
		return nil
	}
	pal, err := lump.DecodePalette(data)
	if err != nil {
		slog.Warn("Unusable palette, images stay in their original format", "error", err)
		return nil
	}
	return pal
}

func convertImage(h archive.LumpHeader, data []byte, pal *lump.Palette) ([]byte, bool) {
	if pal == nil || h.Extension == "png" || !slices.Contains(imageNamespaces, h.Namespace) {
		return data, false
	}
	out, err := lump.ToPNG(data, pal)
	if err != nil {
		slog.Info("Could not convert image, keeping original", "lump", h.Name, "namespace", h.Namespace, "error", err)
		return data, false
	}
	return out, true
}

// compositePath is where a composite texture render is written, e.g.
// composite/walltextures/startan3.png.
func compositePath(t lump.TextureInfo) string {
	return fmt.Sprintf("composite/%ss/%s.png", strings.ToLower(t.Namespace), strings.ToLower(t.Name))
}

// textureDefinitions decodes TEXTURE1 and TEXTURE2 against PNAMES. Both
// come from the selection being extracted.
func textureDefinitions(selected *archive.Archives, hacks bool) ([]lump.TextureInfo, error) {
	data, err := selected.Lookup("pnames")
	if err != nil {
		return nil, err
	}
	pnames, err := lump.DecodePNames(data)
	if err != nil {
		return nil, err
	}

	var infos []lump.TextureInfo
	for _, name := range []string{"texture1", "texture2"} {
		data, err := selected.Lookup(name)
		if err != nil {
			return nil, err
		}
		if data == nil {
			continue
		}
		tx, err := lump.DecodeTextureX(data, hacks)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", name, err)
		}
		resolved, err := tx.Resolve(pnames)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", name, err)
		}
		infos = append(infos, resolved...)
	}
	return infos, nil
}

func renderComposite(t lump.TextureInfo, chain *archive.Archives, pal *lump.Palette) ([]byte, error) {
	img, err := lump.Composite(t, chain.Lookup, pal)
	if err != nil {
		return nil, err
	}
	return lump.EncodePNG(img, nil)
}
