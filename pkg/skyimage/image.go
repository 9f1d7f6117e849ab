package skyimage

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"sync"
	"time"

	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"
	"go.uber.org/zap"

	"github.com/abworrall/skylayers/pkg/catalog"
	"github.com/abworrall/skylayers/pkg/ecolor"
	"github.com/abworrall/skylayers/pkg/emath"
	"github.com/abworrall/skylayers/pkg/sky"
)

// Image is one catalog object: the filters it was observed in, and the
// layers appended for them so far. Render composites the layers.
type Image struct {
	Object        string
	Filters       []string // In catalog order
	DefaultColors []string
	Layers        []*Layer
	Config

	catalog *catalog.Catalog
	log     *zap.Logger

	mu   sync.Mutex
	last *Composite // The most recent HDR composite, for WriteHDR
}

func Open(object string, cat *catalog.Catalog, cfg Config, log *zap.Logger) (*Image, error) {
	o, err := cat.Lookup(object)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Image{
		Object:        o.Name,
		Filters:       o.FilterNames(),
		DefaultColors: append([]string{}, o.DefaultColors...),
		Layers:        []*Layer{},
		Config:        cfg,
		catalog:       cat,
		log:           log.With(zap.String("object", o.Name)),
	}, nil
}

func (img *Image) String() string {
	str := fmt.Sprintf("Image %s [\n", img.Object)
	for _, l := range img.Layers {
		str += fmt.Sprintf("  %s\n", l)
	}
	return str + "]\n"
}

// NewLayer loads the raster for one of the object's filters.
func (img *Image) NewLayer(filter string, c ecolor.Color) (*Layer, error) {
	o, err := img.catalog.Lookup(img.Object)
	if err != nil {
		return nil, err
	}
	for _, f := range o.Filters {
		if f.Name != filter {
			continue
		}
		filename := img.catalog.Path(f)
		raw, err := LoadRaster(filename, img.log)
		if err != nil {
			return nil, err
		}
		if raw.Empty() {
			return nil, fmt.Errorf("%s/%s: empty image in %s", img.Object, filter, filename)
		}
		l := newLayer(img.Object, filter, filename, raw, c)
		if img.Config.Verbosity > 1 {
			l.Raw.ToImg(l.String(), fmt.Sprintf("layer-%s-%s.png", img.Object, filter))
		}
		return l, nil
	}
	return nil, fmt.Errorf("%s has no filter %q: %w", img.Object, filter, sky.ErrUnknownObject)
}

func (img *Image) AddLayer(l *Layer) {
	img.Layers = append(img.Layers, l)
}

// Composite adds up every layer's stretched values, weighted by its
// color and opacity, in linear RGB. All layers are sampled on the grid
// of the first one.
func (img *Image) Composite(fullres bool) (*Composite, error) {
	if len(img.Layers) == 0 {
		return nil, fmt.Errorf("%s: no layers to composite", img.Object)
	}

	grids := make([]emath.FloatGrid, len(img.Layers))
	params := make([]sky.LayerParams, len(img.Layers))
	for i, l := range img.Layers {
		grids[i] = l.Stretched(img.Config, fullres)
		params[i] = l.Params()
	}

	w, h := grids[0].Dx(), grids[0].Dy()
	c := NewComposite(w, h)

	for i := range grids {
		if params[i].Opacity == 0 {
			continue
		}
		g := &grids[i]
		tint := params[i].Color.Linear().Scale(params[i].Opacity)
		for y := 0; y < h; y++ {
			gy := y * g.Dy() / h
			for x := 0; x < w; x++ {
				gx := x * g.Dx() / w
				c.Add(x, y, tint.Scale(g.Get(gx, gy)))
			}
		}
	}

	img.mu.Lock()
	img.last = c
	img.mu.Unlock()

	return c, nil
}

// Render draws the composite as a figure `req.Width` cm wide.
func (img *Image) Render(req sky.RenderRequest) (image.Image, error) {
	if req.Width <= 0 {
		return nil, fmt.Errorf("width %v: %w", req.Width, sky.ErrInvalidLayerParameter)
	}
	tStart := time.Now()

	c, err := img.Composite(req.FullResolution)
	if err != nil {
		return nil, err
	}
	ldr, err := Tonemap(img.Config.Tonemapper, c)
	if err != nil {
		return nil, err
	}

	widthPix := int(req.Width / 2.54 * img.Config.DPI)
	if widthPix < 1 {
		widthPix = 1
	}
	scaled := ScaleToWidth(ldr, widthPix)

	out := img.Plot(scaled, req.Layers)

	img.log.Debug("rendered",
		zap.Bool("fullres", req.FullResolution),
		zap.Float64("widthCm", req.Width),
		zap.Int("layers", len(req.Layers)),
		zap.Stringer("size", out.Bounds().Size()),
		zap.Duration("took", time.Since(tStart)))

	return out, nil
}

// WriteHDR outputs the last composite as a Radiance HDR image, before any
// tonemapping. You can load this into photoshop or other HDR tools.
func (img *Image) WriteHDR(filename string) error {
	img.mu.Lock()
	c := img.last
	img.mu.Unlock()
	if c == nil {
		return fmt.Errorf("Image.WriteHDR %s: nothing rendered yet", img.Object)
	}

	writer, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("Image.WriteHDR: %w", err)
	}
	defer writer.Close()
	if err := rgbe.Encode(writer, c); err != nil {
		return fmt.Errorf("Image.WriteHDR, encoding RGBE file %s: %w", filename, err)
	}
	return nil
}

// Composite is the HDR sum of the layers. Implements image.Image and
// hdr.Image.
type Composite struct {
	Width, Height int
	Pixels        []emath.Vec3 // Linear RGB, row major
}

func NewComposite(w, h int) *Composite {
	return &Composite{Width: w, Height: h, Pixels: make([]emath.Vec3, w*h)}
}

func (c *Composite) Add(x, y int, v emath.Vec3) {
	i := y*c.Width + x
	c.Pixels[i] = c.Pixels[i].Add(v)
}

func (c *Composite) Pix(x, y int) emath.Vec3 { return c.Pixels[y*c.Width+x] }

// Implement image.Image
func (c *Composite) ColorModel() color.Model { return hdrcolor.RGBModel }
func (c *Composite) Bounds() image.Rectangle { return image.Rect(0, 0, c.Width, c.Height) }
func (c *Composite) At(x, y int) color.Color { return c.HDRAt(x, y) }

// Implement hdr.Image
func (c *Composite) HDRAt(x, y int) hdrcolor.Color {
	v := c.Pix(x, y)
	return hdrcolor.RGB{R: v[0], G: v[1], B: v[2]}
}
func (c *Composite) Size() int { return c.Width * c.Height }
