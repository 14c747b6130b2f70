package lump

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePicture(t *testing.T) {
	t.Parallel()

	data := buildPicture(4, 4, -2, 3, [][]testPost{
		{{delta: 0, pixels: []byte{1, 2, 3, 4}}},
		{{delta: 1, pixels: []byte{5, 6}}},
		{},
		// second post delta is at or below the running top, so it is relative
		{{delta: 1, pixels: []byte{7}}, {delta: 1, pixels: []byte{8, 9}}},
	})

	pic, err := DecodePicture(data)
	require.NoError(t, err)
	assert.Equal(t, 4, pic.Width)
	assert.Equal(t, 4, pic.Height)
	assert.Equal(t, -2, pic.LeftOffset)
	assert.Equal(t, 3, pic.TopOffset)
	require.Len(t, pic.Columns[3], 2)
	assert.Equal(t, 2, pic.Columns[3][1].Top)

	// 0 marks a transparent pixel
	want := [4][4]uint8{
		{1, 0, 0, 0},
		{2, 5, 0, 7},
		{3, 6, 0, 8},
		{4, 0, 0, 9},
	}

	img := pic.RGBA(greyPalette())
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			got := img.RGBAAt(x, y)
			if want[y][x] == 0 {
				assert.Equal(t, color.RGBA{}, got, "pixel %d,%d", x, y)
				continue
			}
			v := want[y][x]
			assert.Equal(t, color.RGBA{R: v, G: v, B: v, A: 255}, got, "pixel %d,%d", x, y)
		}
	}
}

func TestDecodePictureTallPatchDeltas(t *testing.T) {
	t.Parallel()

	data := buildPicture(2, 4, 0, 0, [][]testPost{
		{{delta: 2, pixels: []byte{1}}, {delta: 3, pixels: []byte{2}}},
		{{delta: 200, pixels: []byte{3}}, {delta: 100, pixels: []byte{4}}, {delta: 254, pixels: []byte{5}}},
	})

	pic, err := DecodePicture(data)
	require.NoError(t, err)

	tops := func(posts []Post) []int {
		var out []int
		for _, p := range posts {
			out = append(out, p.Top)
		}
		return out
	}
	// above the running top: absolute
	assert.Equal(t, []int{2, 3}, tops(pic.Columns[0]))
	// at or below the running top: added to it
	assert.Equal(t, []int{200, 300, 554}, tops(pic.Columns[1]))
}

func TestDecodePictureClipsTallPosts(t *testing.T) {
	t.Parallel()

	data := buildPicture(4, 2, 0, 0, [][]testPost{
		{{delta: 1, pixels: []byte{1, 2, 3}}},
		{}, {}, {},
	})

	pic, err := DecodePicture(data)
	require.NoError(t, err)

	img := pic.RGBA(greyPalette())
	assert.Equal(t, uint8(1), img.RGBAAt(0, 1).R)
	assert.Equal(t, 2, img.Bounds().Dy())
}

func TestDecodePictureSanity(t *testing.T) {
	t.Parallel()

	valid := buildPicture(4, 4, 0, 0, [][]testPost{{}, {}, {}, {{delta: 0, pixels: []byte{1}}}})

	zeroWidth := append([]byte(nil), valid...)
	zeroWidth[0], zeroWidth[1] = 0, 0

	tooTall := append([]byte(nil), valid...)
	copy(tooTall[2:], le16(2049))

	badOffset := append([]byte(nil), valid...)
	copy(badOffset[8:], le32(len(valid)))

	unterminated := valid[:len(valid)-1]

	tests := []struct {
		name string
		data []byte
	}{
		{"short", make([]byte, 12)},
		{"zero width", zeroWidth},
		{"too tall", tooTall},
		{"offset past end", badOffset},
		{"unterminated column", unterminated},
		{"flat", make([]byte, 4096)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodePicture(tt.data)
			assert.ErrorIs(t, err, ErrPictureSanity)
		})
	}
}
