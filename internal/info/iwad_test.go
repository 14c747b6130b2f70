package info

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentify(t *testing.T) {
	t.Parallel()

	rec, err := Parse(iwadinfoText)
	require.NoError(t, err)

	lumps := map[string]bool{"E1M1": true, "E2M1": true, "E3M1": true}
	iwad, ok := Identify(rec, func(name string) bool { return lumps[name] })
	require.True(t, ok)
	assert.Equal(t, "doom.id.doom1.registered", iwad.Str("Autoname"))

	lumps["MAP01"], lumps["MAP02"] = true, true
	iwad, ok = Identify(rec, func(name string) bool { return lumps[name] })
	require.True(t, ok)
	assert.Equal(t, "Doom", iwad.Str("Game"))
	assert.Equal(t, "DOOM 2: Hell on Earth", iwad.Str("Name"))

	_, ok = Identify(rec, func(string) bool { return false })
	assert.False(t, ok)
}

func TestIdentifyWithoutMustContain(t *testing.T) {
	t.Parallel()

	rec, err := Parse("IWad\n{\n\tName = \"Anything\"\n}\n")
	require.NoError(t, err)

	iwad, ok := Identify(rec, func(string) bool { return false })
	require.True(t, ok)
	assert.Equal(t, "Anything", iwad.Str("Name"))

	single, ok := SingleIWad(rec)
	require.True(t, ok)
	assert.Same(t, iwad, single)
}

func TestCloneIsDeep(t *testing.T) {
	t.Parallel()

	rec, err := Parse(iwadinfoText)
	require.NoError(t, err)

	clone := rec.Blocks("IWad")[0].Clone()
	clone.Set("Name", String("Changed"))
	assert.Equal(t, "DOOM 2: Hell on Earth", rec.Blocks("IWad")[0].Str("Name"))
}

func TestParseSndinfo(t *testing.T) {
	t.Parallel()

	s := ParseSndinfo(`
// comment
weapons/pistol   dspistol
$random weapons/any { weapons/pistol }
$playersound player male *death dspldeth
misc/secret "DSSECRET"
weapons/shotgun dspistol
`)

	lump, ok := s.Lump("weapons/pistol")
	assert.True(t, ok)
	assert.Equal(t, "dspistol", lump)

	lump, ok = s.Lump("*death")
	assert.True(t, ok)
	assert.Equal(t, "dspldeth", lump)

	assert.Equal(t, []string{"weapons/pistol", "*death", "misc/secret", "weapons/shotgun"}, s.Names())
	assert.Equal(t, []string{"dspistol", "dspldeth", "DSSECRET"}, s.SoundLumps())
}
