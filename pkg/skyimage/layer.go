package skyimage

import (
	"fmt"
	"sync"

	"github.com/abworrall/skylayers/pkg/ecolor"
	"github.com/abworrall/skylayers/pkg/emath"
	"github.com/abworrall/skylayers/pkg/sky"
)

// A Layer holds one filter's raster, loaded from its file in the
// catalog, with the display parameters it is composited with.
type Layer struct {
	Object       string
	FilterName   string
	LoadFilename string
	Raw          emath.FloatGrid // As loaded; FITS layers hold physical values

	mu      sync.Mutex
	params  sky.LayerParams
	preview *emath.FloatGrid // Raw downsampled to the preview size, made on first use
}

func newLayer(object, filter, filename string, raw emath.FloatGrid, c ecolor.Color) *Layer {
	return &Layer{
		Object:       object,
		FilterName:   filter,
		LoadFilename: filename,
		Raw:          raw,
		params:       sky.DefaultLayerParams(c),
	}
}

func (l *Layer) String() string {
	return fmt.Sprintf("%s/%s: %s, %s", l.Object, l.FilterName, l.Raw.Stats(), l.Params())
}

func (l *Layer) Filter() string { return l.FilterName }

func (l *Layer) Params() sky.LayerParams {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.params
}

// Update replaces all of the layer's display parameters. It is fine to
// send the same values again. Rejected values leave the layer as it was.
func (l *Layer) Update(p sky.LayerParams) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%s/%s: %w", l.Object, l.FilterName, err)
	}
	l.mu.Lock()
	l.params = p
	l.mu.Unlock()
	return nil
}

// Stretched returns the layer's values mapped into [0,1], ready to be
// multiplied by its color: clipped at the configured percentiles, and log
// stretched if the layer asks for it.
func (l *Layer) Stretched(cfg Config, fullres bool) emath.FloatGrid {
	src := &l.Raw
	if !fullres {
		src = l.previewGrid(cfg.PreviewMaxPixels)
	}

	lo, hi := src.FindValuesAtPercentile(cfg.ClipLow, cfg.ClipHigh)
	if hi <= lo {
		lo, hi = src.MinMax()
	}
	fg := src.Normalize(lo, hi)

	if l.Params().LogScale {
		fg = fg.LogStretch(cfg.LogStretch)
	}
	return fg
}

func (l *Layer) previewGrid(maxWidth int) *emath.FloatGrid {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.preview == nil || (maxWidth > 0 && l.preview.Dx() > maxWidth) {
		g := l.Raw.DownSampleTo(maxWidth)
		l.preview = &g
	}
	return l.preview
}
