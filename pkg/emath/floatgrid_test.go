package emath

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatGridFromImage(t *testing.T) {
	img := image.NewGray16(image.Rect(10, 10, 12, 11))
	img.SetGray16(10, 10, color.Gray16{Y: 0})
	img.SetGray16(11, 10, color.Gray16{Y: 0xFFFF})

	fg := NewFloatGridFromImage(img)
	require.Equal(t, 2, fg.Dx())
	require.Equal(t, 1, fg.Dy())
	assert.Equal(t, 0.0, fg.Get(0, 0))
	assert.Equal(t, 1.0, fg.Get(1, 0))
}

func TestDownSampleTo(t *testing.T) {
	fg := NewFloatGrid(16, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			fg.Set(x, y, 1)
		}
	}

	small := fg.DownSampleTo(4)
	assert.Equal(t, 4, small.Dx())
	assert.Equal(t, 2, small.Dy())
	assert.Equal(t, 1.0, small.Get(3, 1))

	same := fg.DownSampleTo(0)
	assert.Equal(t, 16, same.Dx())
}

func TestNormalizeAndPercentile(t *testing.T) {
	fg := NewFloatGrid(5, 1)
	for i, v := range []float64{10, 20, math.NaN(), 30, 40} {
		fg.Set(i, 0, v)
	}

	min, max := fg.MinMax()
	assert.Equal(t, 10.0, min)
	assert.Equal(t, 40.0, max)

	lo, hi := fg.FindValuesAtPercentile(0, 1)
	assert.Equal(t, 10.0, lo)
	assert.Equal(t, 40.0, hi)

	n := fg.Normalize(20, 30)
	assert.Equal(t, 0.0, n.Get(0, 0))
	assert.Equal(t, 0.0, n.Get(1, 0))
	assert.Equal(t, 0.0, n.Get(2, 0), "NaN maps to zero")
	assert.Equal(t, 1.0, n.Get(3, 0))
	assert.Equal(t, 1.0, n.Get(4, 0))
}

func TestLogStretch(t *testing.T) {
	assert.InDelta(t, 0.0, LogStretch_F64(0, 1000), 1e-12)
	assert.InDelta(t, 1.0, LogStretch_F64(1, 1000), 1e-12)

	prev := -1.0
	for f := 0.0; f <= 1.0; f += 0.05 {
		v := LogStretch_F64(f, 1000)
		assert.Greater(t, v, prev)
		assert.GreaterOrEqual(t, v, f, "log stretch lifts the faint end")
		prev = v
	}

	assert.Equal(t, 0.3, LogStretch_F64(0.3, 0), "non-positive a is the identity")
}

func TestAff3Scale(t *testing.T) {
	m := Identity().Scale(2, 3).Translate(1, 1)
	assert.Equal(t, Aff3{2, 0, 2, 0, 3, 3}, m)
}
