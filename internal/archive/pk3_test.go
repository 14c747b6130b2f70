package archive

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPk3(t *testing.T) (afero.Fs, *Pk3) {
	t.Helper()

	nested := buildWadBytes("PWAD", []testLump{
		{name: "DSPISTOL", data: []byte("bang")},
	})
	files := map[string][]byte{
		"PLAYPAL.lmp":                               []byte("palette"),
		"sprites/trooa1.png":                        []byte("imp"),
		"filter/doom.id.doom2/graphics/titlepic.png": []byte("doom2 title"),
		"filter/doom.doom1/graphics/help.png":       []byte("doom1 help"),
		"filter/game-heretic/sounds/gldhit.ogg":     []byte("heretic"),
		"filter/doom.id/mapinfo.txt":                []byte("mapinfo"),
		"maps/map01.wad":                            []byte("not opened"),
		"extras/sub.wad":                            nested,
	}
	order := []string{
		"PLAYPAL.lmp", "sprites/", "sprites/trooa1.png",
		"filter/doom.id.doom2/graphics/titlepic.png",
		"filter/doom.doom1/graphics/help.png",
		"filter/game-heretic/sounds/gldhit.ogg",
		"filter/doom.id/mapinfo.txt",
		"maps/map01.wad", "extras/sub.wad",
	}

	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/mod.pk3", buildZipBytes(t, files, order...))

	pk, err := OpenPk3(fsys, "/mod.pk3")
	require.NoError(t, err)
	t.Cleanup(func() { pk.Close() })
	return fsys, pk
}

func TestPk3WithoutContext(t *testing.T) {
	t.Parallel()

	_, pk := testPk3(t)

	headers := pk.Headers("*", "*")
	assert.Equal(t, []string{"PLAYPAL", "trooa1", "map01", "DSPISTOL"}, headerNames(headers))

	assert.Equal(t, "global", headers[0].Namespace)
	assert.Equal(t, "lmp", headers[0].Extension)
	assert.Equal(t, "sprites", headers[1].Namespace)
	assert.Equal(t, "png", headers[1].Extension)
	assert.Equal(t, "maps", headers[2].Namespace)
	assert.Equal(t, "wad", headers[2].Extension)
	assert.Equal(t, "sounds", headers[3].Namespace)
	assert.Equal(t, "digital", headers[3].Type)

	data, err := ReadLump(headers[1])
	require.NoError(t, err)
	assert.Equal(t, "imp", string(data))

	data, err = ReadLump(headers[3])
	require.NoError(t, err)
	assert.Equal(t, "bang", string(data))

	data, err = pk.Lookup("playpal")
	require.NoError(t, err)
	assert.Equal(t, "palette", string(data))
}

func TestPk3FilterVisibility(t *testing.T) {
	t.Parallel()

	_, pk := testPk3(t)
	pk.SetContext(Context{Game: "doom.id.doom2.commercial", GameType: "doom"})

	graphics := pk.Headers("*", "graphics")
	require.Len(t, graphics, 1)
	assert.Equal(t, "titlepic", graphics[0].Name)
	assert.Equal(t, "doom.id.doom2", graphics[0].Filter)

	global := pk.Headers("*", "global")
	assert.Equal(t, []string{"PLAYPAL", "mapinfo"}, headerNames(global))
	assert.Equal(t, "doom.id.doom2.commercial", global[0].Filter)
	assert.Equal(t, "doom.id", global[1].Filter)

	assert.False(t, pk.HasLump("gldhit", "*"))

	// nested readers pick up the context on every query
	nested := pk.Headers("dspistol", "sounds")
	require.Len(t, nested, 1)
	assert.Equal(t, "doom.id.doom2.commercial", nested[0].Filter)

	pk.SetContext(Context{Game: "doom.id.doom1.registered", GameType: "doom"})
	assert.Equal(t, []string{"help"}, headerNames(pk.Headers("*", "graphics")))
	assert.Equal(t, "doom.id.doom1", pk.Headers("*", "graphics")[0].Filter)

	pk.SetContext(Context{Game: "heretic.heretic", GameType: "heretic"})
	assert.Equal(t, []string{"gldhit"}, headerNames(pk.Headers("gldhit", "*")))
	assert.Empty(t, pk.Headers("*", "graphics"))
}

func TestPk3RemovesTempFilesOnce(t *testing.T) {
	t.Parallel()

	fsys, pk := testPk3(t)
	require.Len(t, pk.nested, 1)
	temp := pk.nested[0].temp
	require.NotEmpty(t, temp)

	exists, err := afero.Exists(fsys, temp)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, pk.Close())
	exists, err = afero.Exists(fsys, temp)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, pk.Close())
}

func TestPk3RejectsNonZip(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/broken.pk3", []byte("this is not a zip"))

	_, err := OpenPk3(fsys, "/broken.pk3")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestParseTreePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path      string
		name      string
		namespace string
		extension string
		filter    string
	}{
		{"PLAYPAL", "PLAYPAL", "global", "", ""},
		{"textures.txt", "textures", "global", "txt", ""},
		{"Sprites/TROOA1.PNG", "TROOA1", "sprites", "png", ""},
		{"sprites/monsters/imp/trooa1.png", "trooa1", "sprites", "png", ""},
		{"filter/Doom.Doom2/graphics/titlepic.png", "titlepic", "graphics", "png", "doom.id.doom2"},
		{"filter/heretic/sndinfo.txt", "sndinfo", "global", "txt", "heretic"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			l := parseTreePath(tt.path, 0)
			assert.Equal(t, tt.name, l.name)
			assert.Equal(t, tt.namespace, l.namespace)
			assert.Equal(t, tt.extension, l.extension)
			assert.Equal(t, tt.filter, l.filter)
		})
	}
}
