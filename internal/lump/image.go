package lump

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
)

// Kind identifies which decoder recognised an image lump.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindPNG
	KindPicture
	KindRaw
)

func (k Kind) String() string {
	switch k {
	case KindPNG:
		return "png"
	case KindPicture:
		return "picture"
	case KindRaw:
		return "raw"
	default:
		return "unrecognized"
	}
}

// Offsets are the left and top sprite offsets of a graphic.
type Offsets struct {
	Left int
	Top  int
}

// Image is the result of DecodeImage. Offsets is nil when the source
// carries none (raw images, PNGs without a grAb chunk).
type Image struct {
	Kind    Kind
	RGBA    *image.RGBA
	Offsets *Offsets
}

func (i *Image) Width() int {
	return i.RGBA.Bounds().Dx()
}

func (i *Image) Height() int {
	return i.RGBA.Bounds().Dy()
}

// DecodeImage tries each graphic format the engine accepts, in order: PNG,
// picture, raw. pal may be nil when only PNG input is expected.
func DecodeImage(data []byte, pal *Palette) (*Image, error) {
	if IsPNG(data) {
		return decodePNG(data)
	}

	if pic, err := DecodePicture(data); err == nil {
		if pal == nil {
			return nil, ErrNoPalette
		}
		return &Image{Kind: KindPicture, RGBA: pic.RGBA(pal), Offsets: pic.Offsets()}, nil
	} else if !errors.Is(err, ErrPictureSanity) {
		return nil, err
	}

	raw, err := DecodeRaw(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnrecognizedImage, err)
	}
	if pal == nil {
		return nil, ErrNoPalette
	}
	return &Image{Kind: KindRaw, RGBA: raw.RGBA(pal)}, nil
}

func decodePNG(data []byte) (*Image, error) {
	offsets, err := ReadGrab(data)
	if err != nil {
		return nil, err
	}

	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding png: %w", err)
	}

	rgba, ok := src.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(image.Rect(0, 0, src.Bounds().Dx(), src.Bounds().Dy()))
		draw.Draw(rgba, rgba.Bounds(), src, src.Bounds().Min, draw.Src)
	}

	return &Image{Kind: KindPNG, RGBA: rgba, Offsets: offsets}, nil
}

// ToPNG converts any recognised image lump to PNG, keeping its offsets in a
// grAb chunk.
func ToPNG(data []byte, pal *Palette) ([]byte, error) {
	img, err := DecodeImage(data, pal)
	if err != nil {
		return nil, err
	}
	return EncodePNG(img.RGBA, img.Offsets)
}
