package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(specs ...testLump) []DirEntry {
	dir := make([]DirEntry, len(specs))
	var offset int64 = wadHeaderSize
	for i, s := range specs {
		dir[i] = DirEntry{Offset: offset, Size: int64(len(s.data)), Name: s.name}
		offset += int64(len(s.data))
	}
	return dir
}

func noRead(DirEntry) ([]byte, error) { return nil, nil }

func TestClassifyDoomMap(t *testing.T) {
	t.Parallel()

	dir := entries(
		marker("MAP01"), sized("THINGS", 10), sized("LINEDEFS", 14), sized("SIDEDEFS", 30),
		sized("VERTEXES", 4), sized("SEGS", 12), sized("SSECTORS", 4), sized("NODES", 28),
		sized("SECTORS", 26),
		marker("MAP02"), sized("THINGS", 10), sized("REJECT", 1), sized("BLOCKMAP", 8),
		sized("GL_VERT", 4), sized("SCRIPTS", 3),
		sized("PLAYPAL", 768),
	)

	c := Classify(dir, noRead)
	maps := c.Groups("maps_doom")
	require.Len(t, maps, 2)

	assert.Equal(t, "MAP01", maps[0].Name())
	assert.Len(t, maps[0], 9)
	assert.Equal(t, "MAP02", maps[1].Name())
	assert.Len(t, maps[1], 6)
	assert.Equal(t, []string{"PLAYPAL"}, groupNames(c.Groups("global")))
}

func TestClassifyVanillaMapLumps(t *testing.T) {
	t.Parallel()

	mapLumps := func(header string) []testLump {
		return []testLump{
			marker(header), sized("THINGS", 10), sized("LINEDEFS", 14), sized("SIDEDEFS", 30),
			sized("VERTEXES", 4), sized("SEGS", 12), sized("SSECTORS", 4), sized("NODES", 28),
			sized("SECTORS", 26), sized("REJECT", 1), sized("BLOCKMAP", 8),
		}
	}
	dir := entries(append(mapLumps("MAP01"), mapLumps("MAP02")...)...)

	c := Classify(dir, noRead)
	maps := c.Groups("maps_doom")
	require.Len(t, maps, 2)

	assert.Equal(t, "MAP01", maps[0].Name())
	require.Len(t, maps[0], 11)
	assert.Equal(t, "BLOCKMAP", maps[0][10].Name)
	assert.Equal(t, "MAP02", maps[1].Name())
	assert.Len(t, maps[1], 11)
	assert.Empty(t, c.Groups("global"))
	assert.Empty(t, c.Unrecognized)
}

func TestClassifyUDMFAndGWA(t *testing.T) {
	t.Parallel()

	dir := entries(
		marker("MAP01"), sized("TEXTMAP", 40), sized("ZNODES", 12), marker("ENDMAP"),
		marker("GL_MAP01"), sized("GL_VERT", 8), sized("GL_SEGS", 8), sized("GL_SSECT", 8),
		sized("GL_NODES", 8), sized("GL_PVS", 8),
		sized("DSPISTOL", 8),
	)

	c := Classify(dir, noRead)
	require.Len(t, c.Groups("maps_udmf"), 1)
	assert.Len(t, c.Groups("maps_udmf")[0], 4)
	require.Len(t, c.Groups("maps_gwa"), 1)
	assert.Len(t, c.Groups("maps_gwa")[0], 6)
	assert.Equal(t, []string{"DSPISTOL"}, groupNames(c.Groups("sounds_digital")))
}

func TestClassifyMarkers(t *testing.T) {
	t.Parallel()

	dir := entries(
		marker("S_START"), sized("TROOA1", 10), marker("SEPARATE"), marker("S_END"),
		marker("SS_START"), sized("BOSSA1", 10), marker("SS_END"),
		marker("FF_START"), sized("FLOOR1", 4096), marker("F_END"),
		marker("TX_START"), sized("BRICK", 30), marker("TX_END"),
		marker("HI_START"), sized("WALL", 30), marker("HI_END"),
	)

	c := Classify(dir, noRead)
	assert.Equal(t, []string{"TROOA1", "BOSSA1"}, groupNames(c.Groups("sprites")))
	assert.Equal(t, []string{"FLOOR1"}, groupNames(c.Groups("flats")))
	assert.Equal(t, []string{"BRICK"}, groupNames(c.Groups("textures")))
	assert.Equal(t, []string{"WALL"}, groupNames(c.Groups("hires")))
	assert.Empty(t, c.Groups("global"))
	assert.Empty(t, c.Unterminated)
}

func TestClassifyMarkerSkipsEmptyEntries(t *testing.T) {
	t.Parallel()

	dir := entries(marker("S_START"), sized("TROOA0", 10), marker("TROOC0"), sized("TROOB0", 10), marker("S_END"))

	c := Classify(dir, noRead)
	assert.Equal(t, []string{"TROOA0", "TROOB0"}, groupNames(c.Groups("sprites")))
	assert.Empty(t, c.Groups("global"))
	assert.Empty(t, c.Unterminated)
}

func TestClassifyUnterminatedMarker(t *testing.T) {
	t.Parallel()

	c := Classify(entries(marker("S_START"), sized("TROOA1", 10)), noRead)
	assert.Equal(t, []string{"TROOA1"}, groupNames(c.Groups("sprites")))
	assert.Equal(t, []string{"S_START"}, c.Unterminated)
}

func TestClassifyByName(t *testing.T) {
	t.Parallel()

	dir := entries(
		sized("PLAYPAL", 768), sized("DPPISTOL", 8), sized("DSPISTOL", 8), sized("D_E1M1", 20),
		sized("TITLEPIC", 64), sized("STBAR", 64), sized("DEMO1", 5), sized("MYSTERY", 5),
	)

	c := Classify(dir, noRead)
	assert.Equal(t, []string{"PLAYPAL", "DEMO1", "MYSTERY"}, groupNames(c.Groups("global")))
	assert.Equal(t, []string{"DPPISTOL"}, groupNames(c.Groups("sounds_pcspkr")))
	assert.Equal(t, []string{"DSPISTOL"}, groupNames(c.Groups("sounds_digital")))
	assert.Equal(t, []string{"D_E1M1"}, groupNames(c.Groups("music")))
	assert.Equal(t, []string{"TITLEPIC", "STBAR"}, groupNames(c.Groups("graphics")))
	assert.Equal(t, []string{"MYSTERY"}, c.Unrecognized)
}

func TestClassifyPNames(t *testing.T) {
	t.Parallel()

	pnames := pnamesLump("WALL1", "TROOA1")
	dir := entries(
		testLump{name: "PNAMES", data: pnames},
		sized("WALL1", 40),
		marker("S_START"), sized("TROOA1", 10), marker("S_END"),
	)
	read := func(e DirEntry) ([]byte, error) {
		if e.Name == "PNAMES" {
			return pnames, nil
		}
		return nil, nil
	}

	c := Classify(dir, read)
	assert.Equal(t, []string{"WALL1", "TROOA1"}, []string(c.PNames))
	assert.Equal(t, []string{"WALL1", "TROOA1"}, groupNames(c.Groups("patches")))
	assert.Equal(t, []string{"TROOA1"}, groupNames(c.Groups("sprites")))
	assert.Equal(t, []string{"PNAMES"}, groupNames(c.Groups("global")))
}
