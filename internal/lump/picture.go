package lump

import (
	"fmt"
	"image"
)

const maxPictureSize = 2048

// Post is a vertical run of palette indices starting at row Top.
type Post struct {
	Top    int
	Pixels []byte
}

// Picture is a decoded column-based patch image.
type Picture struct {
	Width      int
	Height     int
	LeftOffset int
	TopOffset  int
	Columns    [][]Post
}

// DecodePicture parses a patch lump. The header and column table are
// checked the same way the engine decides whether a lump is a patch, so a
// flat or other raw lump fails with ErrPictureSanity.
func DecodePicture(data []byte) (*Picture, error) {
	size := len(data)
	if size < 13 {
		return nil, fmt.Errorf("%w: %d bytes", ErrPictureSanity, size)
	}

	c := newCursor(data)
	width := int(c.u16())
	height := int(c.u16())
	left := int(c.i16())
	top := int(c.i16())

	if !within(width, 1, maxPictureSize) || !within(height, 1, maxPictureSize) || width*4 >= size {
		return nil, fmt.Errorf("%w: %dx%d in %d bytes", ErrPictureSanity, width, height, size)
	}

	offsets := make([]int, width)
	for i := range offsets {
		off := c.u32()
		if c.short || uint64(off) >= uint64(size) {
			return nil, fmt.Errorf("%w: column %d offset out of range", ErrPictureSanity, i)
		}
		offsets[i] = int(off)
	}

	pic := &Picture{
		Width:      width,
		Height:     height,
		LeftOffset: left,
		TopOffset:  top,
		Columns:    make([][]Post, width),
	}

	currentTop := -1
	for i, off := range offsets {
		c.seek(off)
		var posts []Post
		for {
			delta := int(c.u8())
			if c.short {
				return nil, fmt.Errorf("%w: column %d is unterminated", ErrPictureSanity, i)
			}
			if delta == 0xFF {
				break
			}

			// Tall patches: a delta at or below the previous post's top is
			// relative to that top.
			if len(posts) > 0 && delta <= currentTop {
				currentTop += delta
			} else {
				currentTop = delta
			}

			length := int(c.u8())
			c.skip(1)
			pixels := c.take(length)
			c.skip(1)
			if c.short {
				return nil, fmt.Errorf("%w: column %d post is truncated", ErrPictureSanity, i)
			}
			posts = append(posts, Post{Top: currentTop, Pixels: pixels})
		}
		pic.Columns[i] = posts
	}

	return pic, nil
}

// Offsets returns the picture's sprite offsets.
func (p *Picture) Offsets() *Offsets {
	return &Offsets{Left: p.LeftOffset, Top: p.TopOffset}
}

// RGBA renders the picture through pal. Pixels not covered by a post stay
// transparent and post pixels outside the picture are clipped.
func (p *Picture) RGBA(pal *Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	for x, posts := range p.Columns {
		for _, post := range posts {
			for i, idx := range post.Pixels {
				y := post.Top + i
				if y >= p.Height {
					break
				}
				img.SetRGBA(x, y, pal[idx])
			}
		}
	}
	return img
}
