package emath

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/fogleman/gg" // Move to https://pkg.go.dev/golang.org/x/image/font#Drawer sometime
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// A FloatGrid is a grid of floats, with some operations. Filter rasters
// are held in these, one value per pixel.
type FloatGrid struct {
	stride int
	values []float64
}

func NewFloatGrid(w, h int) FloatGrid {
	return FloatGrid{
		stride: w,
		values: make([]float64, w*h),
	}
}

func (g1 *FloatGrid) NewFromThis() FloatGrid  { return NewFloatGrid(g1.Dx(), g1.Dy()) }
func (fg *FloatGrid) Set(x, y int, v float64) { fg.values[fg.stride*y+x] = v }
func (fg *FloatGrid) Get(x, y int) float64    { return fg.values[fg.stride*y+x] }
func (fg *FloatGrid) Dx() int                 { return fg.stride }
func (fg *FloatGrid) Empty() bool             { return fg.stride == 0 || len(fg.values) == 0 }

func (fg *FloatGrid) Dy() int {
	if fg.stride == 0 {
		return 0
	}
	return len(fg.values) / fg.stride
}

func (g1 *FloatGrid) Copy() *FloatGrid {
	g2 := FloatGrid{stride: g1.stride, values: make([]float64, len(g1.values))}
	copy(g2.values, g1.values)
	return &g2
}

// NewFloatGridFromImage reads the luminance of every pixel in img,
// scaled into [0, 1]. Filter images are monochrome, so for those this is
// just the one channel.
func NewFloatGridFromImage(img image.Image) FloatGrid {
	b := img.Bounds()
	fg := NewFloatGrid(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.Gray16Model.Convert(img.At(x, y)).(color.Gray16)
			fg.Set(x-b.Min.X, y-b.Min.Y, float64(g.Y)/float64(0xFFFF))
		}
	}
	return fg
}

// DownSample returns a grid that is 1/4 of the size, averaging the values from the
// original.
func (g1 *FloatGrid) DownSample() FloatGrid {
	width := g1.Dx() / 2
	height := g1.Dy() / 2
	g2 := NewFloatGrid(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := g1.Get(2*x, 2*y)
			p += g1.Get(2*x+1, 2*y)
			p += g1.Get(2*x, 2*y+1)
			p += g1.Get(2*x+1, 2*y+1)
			g2.Set(x, y, p/4.0)
		}
	}

	return g2
}

// DownSampleTo keeps halving the grid until it is no wider than maxWidth.
func (g1 *FloatGrid) DownSampleTo(maxWidth int) FloatGrid {
	g2 := *g1.Copy()
	for maxWidth > 0 && g2.Dx() > maxWidth && g2.Dx() >= 2 && g2.Dy() >= 2 {
		g2 = g2.DownSample()
	}
	return g2
}

// MinMax ignores NaNs, which FITS uses for blank pixels.
func (fg *FloatGrid) MinMax() (float64, float64) {
	vals := fg.finiteValues()
	if len(vals) == 0 {
		return 0, 0
	}
	return floats.Min(vals), floats.Max(vals)
}

// FindValuesAtPercentile returns the values at the two given quantiles
// (in [0,1]) of the finite values in the grid.
func (fg *FloatGrid) FindValuesAtPercentile(minPrct, maxPrct float64) (float64, float64) {
	vals := fg.finiteValues()
	if len(vals) == 0 {
		return 0, 0
	}
	sort.Float64s(vals)

	return stat.Quantile(minPrct, stat.Empirical, vals, nil),
		stat.Quantile(maxPrct, stat.Empirical, vals, nil)
}

// Normalize maps [lo, hi] onto [0, 1], clamping anything outside. NaNs
// become 0.
func (fg *FloatGrid) Normalize(lo, hi float64) FloatGrid {
	g2 := fg.NewFromThis()
	span := hi - lo
	for i, v := range fg.values {
		switch {
		case math.IsNaN(v) || span <= 0:
			g2.values[i] = 0
		default:
			g2.values[i] = Clamp((v-lo)/span, 0, 1)
		}
	}
	return g2
}

// LogStretch applies log10(a*v+1)/log10(a+1) to every value; values are
// expected to already be normalized into [0, 1].
func (fg *FloatGrid) LogStretch(a float64) FloatGrid {
	g2 := fg.NewFromThis()
	for i, v := range fg.values {
		g2.values[i] = LogStretch_F64(v, a)
	}
	return g2
}

func (fg *FloatGrid) Stats() string {
	min, max := fg.MinMax()
	return fmt.Sprintf("fg[%dx%d, vals{%f,%f}]", fg.Dx(), fg.Dy(), min, max)
}

func (fg *FloatGrid) finiteValues() []float64 {
	vals := make([]float64, 0, len(fg.values))
	for _, v := range fg.values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			vals = append(vals, v)
		}
	}
	return vals
}

// ToImg saves a simple grayscale, based on the range of values in the grid, and gamma scaling the
// gray to look normal for human vision
func (fg *FloatGrid) ToImg(title, filename string) error {
	min, max := fg.MinMax()

	img := image.NewRGBA64(image.Rectangle{Max: image.Point{fg.Dx(), fg.Dy()}})
	for x := 0; x < fg.Dx(); x++ {
		for y := 0; y < fg.Dy(); y++ {
			gray := 0.0
			if max > min {
				gray = GammaExpand_F64(Clamp((fg.Get(x, y)-min)/(max-min), 0, 1))
			}
			col := color.RGBA64{uint16(gray * 65535.0), uint16(gray * 65535.0), uint16(gray * 65535.0), 0xFFFF}
			img.Set(x, y, col)
		}
	}

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1, 1, 1)
	dc.DrawString(title, 50, 50)
	return dc.SavePNG(filename)
}
