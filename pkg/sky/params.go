package sky

import (
	"fmt"
	"math"
	"strings"

	"github.com/abworrall/skylayers/pkg/ecolor"
)

// RemoteMarker prefixes object identifiers whose files must be fetched
// before they can be shown.
const RemoteMarker = "*"

func IsRemote(id string) bool { return strings.HasPrefix(id, RemoteMarker) }

// StripRemote removes any leading remote markers.
func StripRemote(id string) string { return strings.TrimLeft(id, RemoteMarker) }

// LayerParams are the display parameters of one filter layer.
type LayerParams struct {
	Color    ecolor.Color
	Opacity  float64 // [0, 1]
	LogScale bool
}

func DefaultLayerParams(c ecolor.Color) LayerParams {
	return LayerParams{Color: c, Opacity: 1.0}
}

func (p LayerParams) String() string {
	return fmt.Sprintf("{color:%s opacity:%.2f log:%v}", p.Color, p.Opacity, p.LogScale)
}

// Validate checks the named fields before they are handed to a layer.
func (p LayerParams) Validate() error {
	if p.Color.IsZero() {
		return fmt.Errorf("color unset: %w", ErrInvalidLayerParameter)
	}
	if math.IsNaN(p.Opacity) || p.Opacity < 0 || p.Opacity > 1 {
		return fmt.Errorf("opacity %v outside [0,1]: %w", p.Opacity, ErrInvalidLayerParameter)
	}
	return nil
}

// LayerState is one layer's parameters as seen by a render.
type LayerState struct {
	Filter string
	LayerParams
}

// RenderRequest asks for the composite to be drawn. Width is the display
// width in centimetres.
type RenderRequest struct {
	FullResolution bool
	Width          float64
	Layers         []LayerState
}
