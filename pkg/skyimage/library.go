package skyimage

import (
	"context"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/abworrall/skylayers/pkg/catalog"
	"github.com/abworrall/skylayers/pkg/control"
	"github.com/abworrall/skylayers/pkg/ecolor"
	"github.com/abworrall/skylayers/pkg/sky"
)

// A Library serves the objects of a catalog as images, for the control
// panel.
type Library struct {
	Catalog *catalog.Catalog
	Config
	Log *zap.Logger
}

func NewLibrary(cat *catalog.Catalog, cfg Config, log *zap.Logger) *Library {
	if log == nil {
		log = zap.NewNop()
	}
	return &Library{Catalog: cat, Config: cfg, Log: log}
}

func (lib *Library) LocalObjects() []string  { return lib.Catalog.LocalObjects() }
func (lib *Library) RemoteObjects() []string { return lib.Catalog.RemoteObjects() }

func (lib *Library) Fetch(ctx context.Context, object string) error {
	return lib.Catalog.Fetch(ctx, object)
}

func (lib *Library) OpenImage(object string) (control.Image, error) {
	img, err := lib.Open(object)
	if err != nil {
		return nil, err
	}
	return &Handle{img}, nil
}

// Open is OpenImage without the wrapping, for callers that want the
// Image itself (e.g. to write out the HDR composite).
func (lib *Library) Open(object string) (*Image, error) {
	if _, err := lib.Catalog.Lookup(object); err != nil {
		return nil, err
	}
	if !lib.Catalog.IsLocal(object) {
		return nil, fmt.Errorf("%s: files not downloaded yet", object)
	}
	return Open(object, lib.Catalog, lib.Config, lib.Log)
}

// Handle adapts an *Image to control.Image.
type Handle struct {
	Img *Image
}

func (h *Handle) Object() string          { return h.Img.Object }
func (h *Handle) Filters() []string       { return append([]string{}, h.Img.Filters...) }
func (h *Handle) DefaultColors() []string { return append([]string{}, h.Img.DefaultColors...) }

func (h *Handle) AppendLayer(filter string, c ecolor.Color) (control.Layer, error) {
	l, err := h.Img.NewLayer(filter, c)
	if err != nil {
		return nil, err
	}
	h.Img.AddLayer(l)
	return l, nil
}

func (h *Handle) Render(req sky.RenderRequest) (image.Image, error) {
	return h.Img.Render(req)
}
