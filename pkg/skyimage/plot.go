package skyimage

import (
	"image"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/abworrall/skylayers/pkg/ecolor"
	"github.com/abworrall/skylayers/pkg/emath"
	"github.com/abworrall/skylayers/pkg/sky"
)

const (
	titleHeight  = 24.0
	legendHeight = 20.0
	swatchSize   = 10.0
)

// ScaleToWidth resamples src so it is w pixels wide, keeping the aspect ratio.
func ScaleToWidth(src image.Image, w int) image.Image {
	b := src.Bounds()
	if b.Dx() == w || b.Dx() == 0 {
		return src
	}
	s := float64(w) / float64(b.Dx())
	h := int(float64(b.Dy())*s + 0.5)
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xform := emath.Identity().Scale(s, s).Translate(float64(-b.Min.X), float64(-b.Min.Y))
	draw.CatmullRom.Transform(dst, f64.Aff3(xform), src, b, draw.Src, nil)
	return dst
}

// Plot puts the composite into a figure: the object name above it, and
// a key of filter colors below it.
func (img *Image) Plot(composite image.Image, layers []sky.LayerState) image.Image {
	b := composite.Bounds()
	height := float64(b.Dy()) + titleHeight
	if img.Config.Legend && len(layers) > 0 {
		height += legendHeight
	}

	dc := gg.NewContext(b.Dx(), int(height))
	bg, err := ecolor.Parse(img.Config.Background)
	if err != nil {
		bg = ecolor.MustParse("black")
	}
	dc.SetColor(bg)
	dc.Clear()

	dc.DrawImage(composite, 0, int(titleHeight))

	fg := contrasting(bg)
	dc.SetColor(fg)
	dc.DrawStringAnchored(img.Object, float64(b.Dx())/2, titleHeight/2, 0.5, 0.5)

	if img.Config.Legend {
		x := 4.0
		y := titleHeight + float64(b.Dy()) + legendHeight/2
		for _, l := range layers {
			dc.SetColor(l.Color)
			dc.DrawRectangle(x, y-swatchSize/2, swatchSize, swatchSize)
			dc.Fill()
			x += swatchSize + 4

			dc.SetColor(fg)
			dc.DrawStringAnchored(l.Filter, x, y, 0, 0.5)
			tw, _ := dc.MeasureString(l.Filter)
			x += tw + 12
		}
	}

	return dc.Image()
}

func contrasting(c ecolor.Color) ecolor.Color {
	l, _, _ := c.Lab()
	if l > 0.5 {
		return ecolor.MustParse("black")
	}
	return ecolor.MustParse("white")
}
