package ecolor

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in  string
		hex string
	}{
		{"red", "#ff0000"},
		{" Magenta ", "#ff00ff"},
		{"lavender", "#e6e6fa"},
		{"#00FF00", "#00ff00"},
		{"#0f0", "#00ff00"},
	}
	for _, tt := range tests {
		c, err := Parse(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.hex, c.Hex(), tt.in)
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "infrared", "#12345", "#zzzzzz"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrUnknownColor, in)
	}
}

func TestFromColorAndEqual(t *testing.T) {
	c := FromColor(color.RGBA{R: 0xff, A: 0xff})
	assert.Equal(t, "#ff0000", c.Name)
	assert.True(t, c.Equal(MustParse("red")))
	assert.False(t, c.Equal(MustParse("blue")))

	lin := MustParse("white").Linear()
	assert.InDelta(t, 1.0, lin[0], 1e-9)
	assert.InDelta(t, 1.0, lin[2], 1e-9)
}
