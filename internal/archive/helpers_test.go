package archive

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/jchantrell/doomarc/internal/lump"
)

type testLump struct {
	name string
	data []byte
}

func marker(name string) testLump {
	return testLump{name: name}
}

func sized(name string, n int) testLump {
	return testLump{name: name, data: bytes.Repeat([]byte{byte(len(name))}, n)}
}

// buildWadBytes lays out the header, lump data in order, then the directory.
func buildWadBytes(magic string, lumps []testLump) []byte {
	var data []byte
	offsets := make([]int, len(lumps))
	for i, l := range lumps {
		offsets[i] = wadHeaderSize + len(data)
		data = append(data, l.data...)
	}

	out := []byte(magic)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(lumps)))
	out = binary.LittleEndian.AppendUint32(out, uint32(wadHeaderSize+len(data)))
	out = append(out, data...)
	for i, l := range lumps {
		rec := make([]byte, wadEntrySize)
		binary.LittleEndian.PutUint32(rec, uint32(offsets[i]))
		binary.LittleEndian.PutUint32(rec[4:], uint32(len(l.data)))
		lump.PutName8(rec[8:], l.name)
		out = append(out, rec...)
	}
	return out
}

func buildZipBytes(t *testing.T, files map[string][]byte, order ...string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		w, err := zw.Create(name)
		require.NoError(t, err)
		if data, ok := files[name]; ok {
			_, err = w.Write(data)
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func writeFile(t *testing.T, fsys afero.Fs, path string, data []byte) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fsys, path, data, 0o644))
}

func openTestWad(t *testing.T, lumps ...testLump) *Wad {
	t.Helper()

	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/test.wad", buildWadBytes("PWAD", lumps))
	w, err := OpenWad(fsys, "/test.wad")
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })
	return w
}

func pnamesLump(names ...string) []byte {
	out := binary.LittleEndian.AppendUint32(nil, uint32(len(names)))
	for _, n := range names {
		rec := make([]byte, 8)
		lump.PutName8(rec, n)
		out = append(out, rec...)
	}
	return out
}

func headerNames(headers []LumpHeader) []string {
	names := make([]string, len(headers))
	for i, h := range headers {
		names[i] = h.Name
	}
	return names
}

func groupNames(groups []Group) []string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name()
	}
	return names
}
