package palette

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)
	assert.NotEmpty(t, lib.PaperColors())
	assert.NotEmpty(t, lib.FromSource(SOURCE_CHROMOTOME))
	assert.NotEmpty(t, lib.FromSource(SOURCE_RISO))
	assert.NotEmpty(t, lib.FromSource(SOURCE_NICE))
	assert.Len(t, lib.FromSource(""), len(lib.Palettes))

	for _, p := range lib.Palettes {
		cs, err := p.Colors()
		require.NoError(t, err, p.Name)
		assert.Len(t, cs, len(p.Hex))
	}
}

func TestEmbeddedSubsets(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)
	assert.Len(t, lib.Paper, 12)
	assert.Len(t, lib.FromSource(SOURCE_CHROMOTOME), 12)
	riso := lib.FromSource(SOURCE_RISO)
	require.Len(t, riso, 1)
	assert.Len(t, riso[0].Hex, 18)
	assert.Len(t, lib.FromSource(SOURCE_NICE), 5)
}

func TestFind(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)
	p, err := lib.Find("frozen-rose")
	require.NoError(t, err)
	cs, err := p.Colors()
	require.NoError(t, err)
	assert.True(t, cs[0].AlmostEqualRgb(colorful.Color{R: 0x29 / 255.0, G: 0x36 / 255.0, B: 0x8f / 255.0}))

	_, err = lib.Find("does-not-exist")
	assert.Error(t, err)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`paper = ["#zzzzzz"]`))
	assert.ErrorContains(t, err, "#zzzzzz")

	_, err = Parse([]byte("paper = [\"#ffffff\"]\n[[palette]]\nname = \"x\"\ncolors = [\"#12\"]\n"))
	assert.ErrorContains(t, err, "palette 'x'")

	_, err = Parse([]byte("paper = [\"#ffffff\"]\n[[palette]]\nname = \"empty\"\ncolors = []\n"))
	assert.ErrorContains(t, err, "no colors")

	_, err = Parse([]byte("paper = []"))
	assert.Error(t, err)

	_, err = Parse([]byte("paper = [\"#fff\"]\ncolour = 1\n"))
	assert.Error(t, err, "unknown keys are rejected")
}

func TestParseHexShortForm(t *testing.T) {
	c, err := ParseHex("#fff")
	require.NoError(t, err)
	assert.True(t, c.AlmostEqualRgb(colorful.Color{R: 1, G: 1, B: 1}))
}
