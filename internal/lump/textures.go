package lump

import (
	"fmt"
	"strconv"
	"strings"
)

// TextureInfo is a texture definition in the ZDoom TEXTURES model.
type TextureInfo struct {
	Name         string
	Namespace    string
	Width        int
	Height       int
	Patches      []PatchInfo
	Optional     bool
	XScale       float64
	YScale       float64
	Offset       [2]int
	Offset2      [2]int
	WorldPanning bool
	NoDecals     bool
	NullTexture  bool
}

// NewTextureInfo returns a texture with default scale and the generic
// Texture namespace.
func NewTextureInfo(name string, width, height int) TextureInfo {
	return TextureInfo{
		Name:      name,
		Namespace: "Texture",
		Width:     width,
		Height:    height,
		XScale:    1,
		YScale:    1,
	}
}

// String prints the definition in TEXTURES syntax. Properties at their
// default value are omitted.
func (t TextureInfo) String() string {
	var b strings.Builder
	b.WriteString(t.Namespace)
	if t.Optional {
		b.WriteString(" optional")
	}
	fmt.Fprintf(&b, " \"%s\", %d, %d\n{\n", t.Name, t.Width, t.Height)

	if t.XScale != 1 {
		fmt.Fprintf(&b, "\tXScale %s\n", formatFloat(t.XScale))
	}
	if t.YScale != 1 {
		fmt.Fprintf(&b, "\tYScale %s\n", formatFloat(t.YScale))
	}
	if t.Offset != [2]int{} {
		fmt.Fprintf(&b, "\tOffset %d, %d\n", t.Offset[0], t.Offset[1])
	}
	if t.Offset2 != [2]int{} {
		fmt.Fprintf(&b, "\tOffset2 %d, %d\n", t.Offset2[0], t.Offset2[1])
	}
	writeFlag(&b, "\t", "WorldPanning", t.WorldPanning)
	writeFlag(&b, "\t", "NoDecals", t.NoDecals)
	writeFlag(&b, "\t", "NullTexture", t.NullTexture)

	for _, p := range t.Patches {
		for _, line := range strings.Split(p.String(), "\n") {
			if strings.TrimSpace(line) != "" {
				b.WriteString("\t" + line + "\n")
			}
		}
	}
	b.WriteString("}\n")
	return b.String()
}

// PatchInfo places one graphic inside a TextureInfo.
type PatchInfo struct {
	Name        string
	XOrigin     int
	YOrigin     int
	Namespace   string
	FlipX       bool
	FlipY       bool
	UseOffsets  bool
	Rotate      int
	Translation string
	Colormap    string
	Blend       string
	Alpha       float64
	Style       string
}

func NewPatchInfo(name string, x, y int) PatchInfo {
	return PatchInfo{Name: name, XOrigin: x, YOrigin: y, Namespace: "Patch", Alpha: 1}
}

func (p PatchInfo) String() string {
	var opts strings.Builder
	writeFlag(&opts, "\t", "FlipX", p.FlipX)
	writeFlag(&opts, "\t", "FlipY", p.FlipY)
	writeFlag(&opts, "\t", "UseOffsets", p.UseOffsets)
	if p.Rotate != 0 {
		fmt.Fprintf(&opts, "\tRotate %d\n", p.Rotate)
	}
	if p.Translation != "" {
		fmt.Fprintf(&opts, "\tTranslation %s\n", p.Translation)
	}
	if p.Colormap != "" {
		fmt.Fprintf(&opts, "\tColormap %s\n", p.Colormap)
	}
	if p.Blend != "" {
		fmt.Fprintf(&opts, "\tBlend %s\n", p.Blend)
	}
	if p.Alpha != 1 {
		fmt.Fprintf(&opts, "\tAlpha %s\n", formatFloat(p.Alpha))
	}
	if p.Style != "" {
		fmt.Fprintf(&opts, "\tStyle %s\n", p.Style)
	}

	s := fmt.Sprintf("%s \"%s\", %d, %d\n", p.Namespace, p.Name, p.XOrigin, p.YOrigin)
	if opts.Len() > 0 {
		s += "{\n" + opts.String() + "}\n"
	}
	return s
}

func writeFlag(b *strings.Builder, indent, name string, set bool) {
	if set {
		b.WriteString(indent + name + "\n")
	}
}

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
