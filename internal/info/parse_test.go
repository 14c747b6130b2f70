package info

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const iwadinfoText = `
// IWAD definitions
IWad
{
	Name = "DOOM 2: Hell on Earth"
	Autoname = "doom.id.doom2.commercial"
	Game = "Doom"
	Config = "Doom"
	Mapinfo = "mapinfo/doom2.txt"
	Compatibility = "Shorttex"
	MustContain = "MAP01", "MAP02" /* several
	lines of comment */
	BannerColors = "a8 00 00", "a8 a8 a8"
	Load = 2
}

IWad
{
	Name = "DOOM Registered // not a comment"
	Autoname = "doom.id.doom1.registered"
	Game = "Doom"
	MustContain = "E1M1", "E2M1",
		"E3M1"
}

Names
{
	"doom_complete.pk3"
	"doom2.wad"
}
`

func TestParseIwadinfo(t *testing.T) {
	t.Parallel()

	rec, err := Parse(iwadinfoText)
	require.NoError(t, err)

	iwads := rec.Blocks("IWad")
	require.Len(t, iwads, 2)

	doom2 := iwads[0]
	assert.Equal(t, "DOOM 2: Hell on Earth", doom2.Str("Name"))
	assert.Equal(t, "doom.id.doom2.commercial", doom2.Str("Autoname"))
	assert.Equal(t, []string{"MAP01", "MAP02"}, doom2.Get("MustContain").Strings())
	load, ok := doom2.Int("Load")
	assert.True(t, ok)
	assert.Equal(t, 2, load)

	doom := iwads[1]
	assert.Equal(t, "DOOM Registered // not a comment", doom.Str("Name"))
	assert.Equal(t, []string{"E1M1", "E2M1", "E3M1"}, doom.Get("MustContain").Strings())

	names := rec.Get("Names")
	assert.Equal(t, KindList, names.Kind)
	assert.True(t, names.Braced)
	assert.Equal(t, []string{"doom_complete.pk3", "doom2.wad"}, names.Strings())

	assert.True(t, rec.Get("Missing").IsEmpty())
	assert.Empty(t, rec.Blocks("Missing"))
}

func TestParseNestedBlocksWithArgs(t *testing.T) {
	t.Parallel()

	rec, err := Parse(`
map MAP01 "Entryway" {
	next = "MAP02"
	sky1 = "SKY1", 0
	nointermission
	music
	{
		"D_RUNNIN"
	}
}
`)
	require.NoError(t, err)

	maps := rec.Blocks("map")
	require.Len(t, maps, 1)
	assert.Equal(t, []string{"MAP01", `"Entryway"`}, maps[0].Args)
	assert.Equal(t, "MAP02", maps[0].Str("next"))
	assert.Equal(t, List(String("SKY1"), Int(0)), maps[0].Get("sky1"))
	assert.Equal(t, KindFlag, maps[0].Get("nointermission").Kind)
	assert.Equal(t, []string{"D_RUNNIN"}, maps[0].Get("music").Strings())
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	for name, text := range map[string]string{
		"unclosed":   "IWad\n{\nName = \"x\"\n",
		"stray":      "}\n",
		"mixed":      "IWad\n{\nName = \"x\"\n\"y\"\n}\n",
		"bare list":  "\"a\"\n\"b\"\n",
		"empty head": "{\n}\n",
	} {
		_, err := Parse(text)
		assert.Error(t, err, name)
	}
}

func TestPrintRoundTrip(t *testing.T) {
	t.Parallel()

	rec, err := Parse(iwadinfoText)
	require.NoError(t, err)

	again, err := Parse(rec.String())
	require.NoError(t, err)
	assert.Equal(t, rec, again)
}

func TestPrintFormat(t *testing.T) {
	t.Parallel()

	iwad := NewRecord()
	iwad.Set("Name", String("Test"))
	iwad.Set("Load", Int(1))
	iwad.Set("MustContain", List(String("MAP01"), String("MAP02")))

	want := "IWad\n{\n\tName = \"Test\"\n\tLoad = 1\n\tMustContain = \"MAP01\", \"MAP02\"\n}"
	assert.Equal(t, want, WrapIWad(iwad).String())
}

func TestStripComments(t *testing.T) {
	t.Parallel()

	got := StripComments("a // x\nb /* y\nz */ c \"d // e\"")
	assert.Equal(t, "a  \nb  \n c \"d // e\"", got)
}

func TestDecode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "café", Decode([]byte("caf\xe9")))
	assert.Equal(t, "plain", Decode([]byte("\xef\xbb\xbfplain")))
	assert.Equal(t, "über", Decode([]byte("über")))
}
