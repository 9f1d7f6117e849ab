package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abworrall/skylayers/pkg/sky"
)

func TestRenderOptions(t *testing.T) {
	opts, err := renderOptions(nil, 12.5, true)
	require.NoError(t, err)
	assert.Equal(t, 12.5, opts.Width)
	assert.True(t, opts.FullResolution)

	for _, w := range []float64{0, -1, math.NaN(), 0.5, 5000} {
		_, err := renderOptions(nil, w, false)
		assert.ErrorIs(t, err, sky.ErrInvalidLayerParameter, "width %v", w)
	}
}

func TestFilterValues(t *testing.T) {
	fv := filterValues{}
	require.NoError(t, fv.Set("optical_red=0.5"))
	assert.Equal(t, "0.5", fv["optical_red"])
	assert.Error(t, fv.Set("nofilter"))
	assert.Error(t, fv.Set("=0.5"))
}
