package control

import (
	"context"
	"image"

	"github.com/abworrall/skylayers/pkg/ecolor"
	"github.com/abworrall/skylayers/pkg/sky"
)

// Source knows which objects exist and resolves them into images.
type Source interface {
	LocalObjects() []string
	RemoteObjects() []string

	// Fetch makes a remote object local. May be slow.
	Fetch(ctx context.Context, object string) error

	// OpenImage fails with sky.ErrUnknownObject for objects it can't resolve.
	OpenImage(object string) (Image, error)
}

// Image is the composite for one object.
type Image interface {
	Object() string
	Filters() []string
	DefaultColors() []string

	// AppendLayer creates the layer for filter, with the given initial
	// color, and adds it to the composite.
	AppendLayer(filter string, c ecolor.Color) (Layer, error)

	// Render draws the composite of every appended layer. The returned
	// frame replaces whatever was displayed before.
	Render(req sky.RenderRequest) (image.Image, error)
}

// Layer is one filter of an Image.
type Layer interface {
	Filter() string

	// Update replaces all of the layer's display parameters; it must
	// accept being sent values it already has. Out of range values fail
	// with sky.ErrInvalidLayerParameter and are not adopted.
	Update(p sky.LayerParams) error
}

// The widget contracts. SetValue never fires the OnCommit callback;
// OnCommit fires once per committed user change (for sliders, on
// release), even if the value is unchanged.

type ColorPicker interface {
	Value() ecolor.Color
	SetValue(ecolor.Color)
	OnCommit(func(ecolor.Color))
}

type Number interface {
	Value() float64
	SetValue(float64)
	OnCommit(func(float64))
}

type Toggle interface {
	Value() bool
	SetValue(bool)
	OnCommit(func(bool))
}

// Toolkit makes widgets.
type Toolkit interface {
	NewColorPicker(label string, initial ecolor.Color) ColorPicker
	NewSlider(label string, min, max, initial float64) Number
	NewNumberField(label string, min, max, initial float64) Number
	NewToggle(label string, initial bool) Toggle
}

// LayerList is the visible collection of layer control groups.
type LayerList interface {
	Clear()
	Attach(title string, g *LayerControlGroup)
}

// Display shows rendered frames; each one replaces the last.
type Display interface {
	Show(frame image.Image)
}
