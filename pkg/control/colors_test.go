package control_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abworrall/skylayers/pkg/control"
	"github.com/abworrall/skylayers/pkg/sky"
)

func colorsOf(t *testing.T, as []control.Assignment) []string {
	t.Helper()
	var out []string
	for _, a := range as {
		out = append(out, a.Color.Name)
	}
	return out
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "green", control.ShortName("optical_green"))
	assert.Equal(t, "red", control.ShortName("hst_optical_red"))
	assert.Equal(t, "infrared", control.ShortName("infrared"))
}

func TestAssignColorsCanonical(t *testing.T) {
	as, err := control.AssignColors(
		[]string{"optical_red", "optical_green", "infrared"},
		[]string{"red", "green", "blue"})
	require.NoError(t, err)

	assert.Equal(t, "optical_red", as[0].Filter)
	assert.Equal(t, []string{"red", "green", "magenta"}, colorsOf(t, as))
}

func TestAssignColorsDefaultsBeforePalette(t *testing.T) {
	as, err := control.AssignColors(
		[]string{"h_alpha", "oiii", "sii", "nii"},
		[]string{"red", "green", "blue"})
	require.NoError(t, err)
	assert.Equal(t, []string{"red", "green", "blue", "magenta"}, colorsOf(t, as))
}

func TestAssignColorsNeverRepeats(t *testing.T) {
	as, err := control.AssignColors(
		[]string{"optical_red", "optical_magenta", "uv", "optical_cyan"},
		[]string{"red", "magenta", "cyan"})
	require.NoError(t, err)

	// uv would have taken magenta, then cyan; optical_cyan then finds
	// its own color taken.
	assert.Equal(t, []string{"red", "magenta", "cyan", "yellow"}, colorsOf(t, as))

	seen := map[string]bool{}
	for _, a := range as {
		assert.False(t, seen[a.Color.Hex()], a.Color.Name)
		seen[a.Color.Hex()] = true
	}
}

func TestAssignColorsExhausted(t *testing.T) {
	filters := []string{"optical_red"}
	for i := 0; i < len(control.FallbackPalette); i++ {
		filters = append(filters, string(rune('a'+i)))
	}
	_, err := control.AssignColors(filters, nil)
	assert.ErrorIs(t, err, sky.ErrExhaustedPalette)

	as, err := control.AssignColors(filters[:len(filters)-1], nil)
	require.NoError(t, err)
	assert.Len(t, as, len(control.FallbackPalette))
}

func TestAssignColorsBadDefault(t *testing.T) {
	_, err := control.AssignColors([]string{"optical_ultraviolet"}, []string{"ultraviolet"})
	assert.ErrorIs(t, err, sky.ErrInvalidLayerParameter)
}

func TestAssignColorsEmpty(t *testing.T) {
	as, err := control.AssignColors(nil, []string{"red"})
	require.NoError(t, err)
	assert.Empty(t, as)
}
