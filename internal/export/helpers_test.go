package export

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/jchantrell/doomarc/internal/archive"
	"github.com/jchantrell/doomarc/internal/lump"
)

const testIwadinfo = `
IWad
{
	Name = "DOOM 2: Hell on Earth"
	Autoname = "doom.id.doom2.commercial"
	Game = "Doom"
	MustContain = "MAP01"
}

IWad
{
	Name = "The Plutonia Experiment"
	Autoname = "doom.id.doom2.plutonia"
	Game = "Doom"
	MustContain = "MAP01", "CAMO1"
}
`

type testLump struct {
	name string
	data []byte
}

func le16(v int) []byte { return binary.LittleEndian.AppendUint16(nil, uint16(int16(v))) }
func le32(v int) []byte { return binary.LittleEndian.AppendUint32(nil, uint32(int32(v))) }

func buildWad(magic string, lumps ...testLump) []byte {
	var data []byte
	offsets := make([]int, len(lumps))
	for i, l := range lumps {
		offsets[i] = 12 + len(data)
		data = append(data, l.data...)
	}
	out := []byte(magic)
	out = append(out, le32(len(lumps))...)
	out = append(out, le32(12+len(data))...)
	out = append(out, data...)
	for i, l := range lumps {
		rec := make([]byte, 16)
		binary.LittleEndian.PutUint32(rec, uint32(offsets[i]))
		binary.LittleEndian.PutUint32(rec[4:], uint32(len(l.data)))
		lump.PutName8(rec[8:], l.name)
		out = append(out, rec...)
	}
	return out
}

func buildZip(t *testing.T, files ...testLump) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.Create(f.name)
		require.NoError(t, err)
		_, err = w.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// solidPicture is a patch of the given size filled with one palette index.
func solidPicture(w, h int, index byte) []byte {
	head := append(le16(w), le16(h)...)
	head = append(head, le16(0)...)
	head = append(head, le16(0)...)
	var body []byte
	columnsAt := len(head) + 4*w
	for x := 0; x < w; x++ {
		head = append(head, le32(columnsAt+len(body))...)
		body = append(body, 0, byte(h), 0)
		body = append(body, bytes.Repeat([]byte{index}, h)...)
		body = append(body, 0, 0xFF)
	}
	return append(head, body...)
}

func digitalSound(rate int, samples []byte) []byte {
	b := le16(lump.FormatDigital)
	b = append(b, le16(rate)...)
	b = append(b, le32(len(samples)+32)...)
	b = append(b, make([]byte, 16)...)
	b = append(b, samples...)
	return append(b, make([]byte, 16)...)
}

func pcSpeakerSound(notes ...byte) []byte {
	b := le16(lump.FormatPCSpeaker)
	b = append(b, le16(len(notes))...)
	return append(b, notes...)
}

func greyPlaypal() []byte {
	out := make([]byte, 0, 768)
	for i := 0; i < 256; i++ {
		out = append(out, byte(i), byte(i), byte(i))
	}
	return out
}

func pnames(names ...string) []byte {
	out := le32(len(names))
	for _, n := range names {
		rec := make([]byte, 8)
		lump.PutName8(rec, n)
		out = append(out, rec...)
	}
	return out
}

// texture1 holds one Doom format texture made of a single patch.
func texture1(name string, w, h, patch int) []byte {
	rec := make([]byte, 8)
	lump.PutName8(rec, name)
	rec = append(rec, le16(0)...)
	rec = append(rec, 0, 0)
	rec = append(rec, le16(w)...)
	rec = append(rec, le16(h)...)
	rec = append(rec, 0, 0, 0, 0)
	rec = append(rec, le16(1)...)
	rec = append(rec, le16(0)...)
	rec = append(rec, le16(0)...)
	rec = append(rec, le16(patch)...)
	rec = append(rec, le16(1)...)
	rec = append(rec, le16(0)...)

	out := le32(1)
	out = append(out, le32(8)...)
	return append(out, rec...)
}

func doom2Lumps() []testLump {
	return []testLump{
		{"PLAYPAL", greyPlaypal()},
		{"F_START", nil},
		{"FLOOR0_1", bytes.Repeat([]byte{5}, 4096)},
		{"F_END", nil},
		{"PNAMES", pnames("WALL1")},
		{"TEXTURE1", texture1("BRICK", 8, 8, 0)},
		{"WALL1", solidPicture(8, 8, 200)},
		{"DSPISTOL", digitalSound(11025, []byte{128, 140, 150, 128})},
		{"DPPISTOL", pcSpeakerSound(10, 20, 0)},
		{"D_RUNNIN", []byte("MUS\x1a rest of song")},
		{"MAP01", nil},
		{"THINGS", make([]byte, 10)},
	}
}

// testChain opens engine.pk3 and doom2.wad, plus any extra PWADs, from an
// in-memory filesystem.
func testChain(t *testing.T, fsys afero.Fs, pwads ...[]testLump) *archive.Archives {
	t.Helper()

	require.NoError(t, afero.WriteFile(fsys, "/iwads/engine.pk3",
		buildZip(t, testLump{"iwadinfo.txt", []byte(testIwadinfo)}), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/iwads/doom2.wad", buildWad("IWAD", doom2Lumps()...), 0o644))

	paths := []string{"/iwads/engine.pk3", "/iwads/doom2.wad"}
	for i, lumps := range pwads {
		p := "/pwads/mod" + string(rune('a'+i)) + ".wad"
		require.NoError(t, afero.WriteFile(fsys, p, buildWad("PWAD", lumps...), 0o644))
		paths = append(paths, p)
	}

	var readers []archive.Reader
	for _, p := range paths {
		r, err := archive.Open(fsys, p)
		require.NoError(t, err)
		readers = append(readers, r)
	}
	chain := archive.NewArchives(readers...)
	t.Cleanup(func() { chain.CloseAll() })

	_, err := chain.Identify()
	require.NoError(t, err)
	return chain
}
