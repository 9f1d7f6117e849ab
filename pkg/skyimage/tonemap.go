package skyimage

import (
	"fmt"
	"image"
	"image/color"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/tmo"

	"github.com/abworrall/skylayers/pkg/emath"
)

var (
	Tonemappers = []string{"clip", "drago03", "linear", "reinhard05"}
)

func ListTonemappers() string {
	return fmt.Sprintf("%v", Tonemappers)
}

func knownTonemapper(name string) bool {
	for _, n := range Tonemappers {
		if n == name {
			return true
		}
	}
	return false
}

// Tonemap maps the HDR composite down to an LDR image. Layers add up, so
// wherever several bright filters overlap the sum goes well past 1.0.
func Tonemap(name string, m hdr.Image) (image.Image, error) {
	if name == "clip" {
		return clipToLDR(m), nil
	}
	op, err := SetupTonemapper(name, m)
	if err != nil {
		return nil, err
	}
	return op.Perform(), nil
}

// Tweak the tmo parameters so faint layers are not crushed to black by
// a few saturated stars.
func SetupTonemapper(name string, m hdr.Image) (tmo.ToneMappingOperator, error) {
	switch name {
	case "drago03":
		op := tmo.NewDefaultDrago03(m)
		op.Bias = 0.85
		return op, nil

	case "linear":
		return tmo.NewLinear(m), nil

	case "reinhard05":
		op := tmo.NewDefaultReinhard05(m)
		op.Chromatic = 0.2
		op.Light = 0.5
		return op, nil
	}

	return nil, fmt.Errorf("ToneMapper %q not recognized, wanted %s", name, ListTonemappers())
}

// clipToLDR just clamps each channel to [0,1] and gamma expands; what you
// want when the layers were balanced by hand.
func clipToLDR(m hdr.Image) image.Image {
	b := m.Bounds()
	out := image.NewRGBA64(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bb, _ := m.HDRAt(x, y).HDRRGBA()
			v := emath.Vec3{r, g, bb}
			v.FloorAt(0)
			v.CeilingAt(1)
			v = emath.GammaExpand_sRGB(v)
			out.SetRGBA64(x, y, color.RGBA64{
				uint16(v[0] * 0xFFFF), uint16(v[1] * 0xFFFF), uint16(v[2] * 0xFFFF), 0xFFFF,
			})
		}
	}
	return out
}
