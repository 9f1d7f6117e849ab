package sky

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abworrall/skylayers/pkg/ecolor"
)

func TestRemoteMarker(t *testing.T) {
	assert.True(t, IsRemote("*m31"))
	assert.False(t, IsRemote("kepler"))
	assert.Equal(t, "m31", StripRemote("*m31"))
	assert.Equal(t, "kepler", StripRemote("kepler"))
}

func TestLayerParamsValidate(t *testing.T) {
	red := ecolor.MustParse("red")

	assert.NoError(t, DefaultLayerParams(red).Validate())
	assert.NoError(t, LayerParams{Color: red, Opacity: 0}.Validate())

	for _, p := range []LayerParams{
		{Opacity: 0.5},
		{Color: red, Opacity: -0.1},
		{Color: red, Opacity: 1.01},
		{Color: red, Opacity: math.NaN()},
	} {
		assert.ErrorIs(t, p.Validate(), ErrInvalidLayerParameter, p.String())
	}
}
