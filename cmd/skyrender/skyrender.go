package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/abworrall/skylayers/pkg/catalog"
	"github.com/abworrall/skylayers/pkg/control"
	"github.com/abworrall/skylayers/pkg/ecolor"
	"github.com/abworrall/skylayers/pkg/headless"
	"github.com/abworrall/skylayers/pkg/sky"
	"github.com/abworrall/skylayers/pkg/skyimage"
)

// filterValues collects repeated -flag filter=value args
type filterValues map[string]string

func (fv filterValues) String() string { return fmt.Sprintf("%v", map[string]string(fv)) }

func (fv filterValues) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	if !ok || k == "" {
		return fmt.Errorf("want filter=value, not %q", s)
	}
	fv[k] = v
	return nil
}

// filterList collects repeated -flag filter args
type filterList []string

func (fl *filterList) String() string     { return strings.Join(*fl, ",") }
func (fl *filterList) Set(s string) error { *fl = append(*fl, s); return nil }

var (
	fCatalog  string
	fConfig   string
	fObject   string
	fOutput   string
	fHDR      string
	fFullRes  bool
	fWidth    float64
	fVerbose  bool
	fLogScale filterList

	fOpacity = filterValues{}
	fColor   = filterValues{}
)

func init() {
	flag.StringVar(&fCatalog, "catalog", "data/catalog.yml", "catalog of objects and their filter files")
	flag.StringVar(&fConfig, "config", "", "render config yaml (default: built in)")
	flag.StringVar(&fObject, "object", "", "object to render; prefix with "+sky.RemoteMarker+" to fetch it first")
	flag.StringVar(&fOutput, "o", "out.png", "name of output image file")
	flag.StringVar(&fHDR, "hdr", "", "also write the HDR composite to this Radiance .hdr file")
	flag.BoolVar(&fFullRes, "fullres", false, "render from the full resolution rasters")
	flag.Float64Var(&fWidth, "width", 10, "width of output figure, in cm")
	flag.BoolVar(&fVerbose, "v", false, "verbose logging")
	flag.Var(fOpacity, "opacity", "filter=opacity (0.0->1.0), repeatable")
	flag.Var(fColor, "color", "filter=color (name or #rrggbb), repeatable")
	flag.Var(&fLogScale, "log", "filter to log stretch, repeatable")
}

func main() {
	flag.Parse()
	log.Printf("skyrender starting\n")

	var l *zap.Logger
	var err error
	if fVerbose {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer l.Sync() //nolint:errcheck

	if fObject == "" {
		log.Fatal("need an -object")
	}

	cat, err := catalog.Load(fCatalog)
	if err != nil {
		l.Fatal("load catalog", zap.String("path", fCatalog), zap.Error(err))
	}
	cat.Log = l

	cfg := skyimage.NewConfig()
	if fConfig != "" {
		if cfg, err = skyimage.LoadConfig(fConfig); err != nil {
			l.Fatal("load config", zap.String("path", fConfig), zap.Error(err))
		}
	}
	if fVerbose {
		cfg.Verbosity = 1
		log.Printf("Final configuration:-\n\n%s\n", cfg.AsYaml())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts, err := renderOptions(l, fWidth, fFullRes)
	if err != nil {
		l.Fatal("options", zap.Error(err))
	}

	lib := skyimage.NewLibrary(cat, cfg, l)
	src := &keepImages{Library: lib}
	display := &headless.Display{}

	panel := control.NewImageControlPanel(src, headless.Toolkit{}, &headless.LayerList{}, display, opts)
	if err := panel.SelectObject(ctx, fObject); err != nil {
		l.Fatal("select", zap.String("object", fObject), zap.Error(err))
	}

	// Apply overrides as if a user had made them, one render each
	if err := applyOverrides(panel); err != nil {
		l.Fatal("overrides", zap.Error(err))
	}

	if err := skyimage.WritePNG(display.Frame(), fOutput); err != nil {
		l.Fatal("write png", zap.Error(err))
	}
	log.Printf("LDR output file written '%s'\n", fOutput)

	if fHDR != "" {
		if err := src.last.Img.WriteHDR(fHDR); err != nil {
			l.Fatal("write hdr", zap.Error(err))
		}
		log.Printf("HDR output file written '%s'\n", fHDR)
	}
}

// renderOptions refuses a width the panel would otherwise quietly replace
// with its default or clamp.
func renderOptions(l *zap.Logger, widthCm float64, fullres bool) (control.Options, error) {
	if !(widthCm > 0) {
		return control.Options{}, fmt.Errorf("-width %v: must be positive: %w", widthCm, sky.ErrInvalidLayerParameter)
	}
	opts := control.Options{Log: l, FullResolution: fullres, Width: widthCm}
	if err := opts.Validate(); err != nil {
		return control.Options{}, fmt.Errorf("-width: %w", err)
	}
	return opts, nil
}

func applyOverrides(panel *control.ImageControlPanel) error {
	group := func(filter string) (*control.LayerControlGroup, error) {
		if g := panel.Group(filter); g != nil {
			return g, nil
		}
		return nil, fmt.Errorf("%s has no filter %q", panel.Selected(), filter)
	}

	for filter, s := range fColor {
		g, err := group(filter)
		if err != nil {
			return err
		}
		c, err := ecolor.Parse(s)
		if err != nil {
			return err
		}
		if err := g.SetColor(c); err != nil {
			return err
		}
	}
	for filter, s := range fOpacity {
		g, err := group(filter)
		if err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("opacity for %s: %v", filter, err)
		}
		if err := g.SetOpacity(v); err != nil {
			return err
		}
	}
	for _, filter := range fLogScale {
		g, err := group(filter)
		if err != nil {
			return err
		}
		if err := g.SetLogScale(true); err != nil {
			return err
		}
	}
	return nil
}

// keepImages remembers the last image opened, so its HDR composite can be
// written out after the panel has rendered it.
type keepImages struct {
	*skyimage.Library
	last *skyimage.Handle
}

func (k *keepImages) OpenImage(object string) (control.Image, error) {
	img, err := k.Library.OpenImage(object)
	if err != nil {
		return nil, err
	}
	k.last = img.(*skyimage.Handle)
	return img, nil
}
