package control

import (
	"fmt"
	"sync"

	"github.com/abworrall/skylayers/pkg/ecolor"
	"github.com/abworrall/skylayers/pkg/sky"
)

// A LayerControlGroup is the color, opacity and log-scale controls for
// one layer. Each committed change pushes all three values to the layer,
// then asks for a render.
type LayerControlGroup struct {
	Filter string

	Color    ColorPicker
	Opacity  Number // [0,1], commits on release
	LogScale Toggle

	layer         Layer
	requestRender func() error
	report        func(error)

	mu       sync.Mutex
	accepted sky.LayerParams // What the layer last adopted
	detached bool
}

// NewLayerControlGroup builds the controls for layer, which must already
// have been created with color c and default opacity and scaling.
// requestRender is called after every accepted change; report (which may
// be nil) is told about every failure.
func NewLayerControlGroup(tk Toolkit, layer Layer, c ecolor.Color, requestRender func() error, report func(error)) *LayerControlGroup {
	p := sky.DefaultLayerParams(c)
	g := &LayerControlGroup{
		Filter:        layer.Filter(),
		Color:         tk.NewColorPicker("Layer color", p.Color),
		Opacity:       tk.NewSlider("Opacity", 0, 1, p.Opacity),
		LogScale:      tk.NewToggle("Logarithmic scaling", p.LogScale),
		layer:         layer,
		requestRender: requestRender,
		report:        report,
		accepted:      p,
	}

	g.Color.OnCommit(func(c ecolor.Color) { g.SetColor(c) })
	g.Opacity.OnCommit(func(v float64) { g.SetOpacity(v) })
	g.LogScale.OnCommit(func(b bool) { g.SetLogScale(b) })

	return g
}

func (g *LayerControlGroup) Params() sky.LayerParams {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.accepted
}

func (g *LayerControlGroup) SetColor(c ecolor.Color) error {
	p := g.current()
	p.Color = c
	return g.commit(p)
}

func (g *LayerControlGroup) SetOpacity(v float64) error {
	p := g.current()
	p.Opacity = v
	return g.commit(p)
}

func (g *LayerControlGroup) SetLogScale(b bool) error {
	p := g.current()
	p.LogScale = b
	return g.commit(p)
}

// Detach is called when the group is torn down; later commits from its
// widgets are ignored.
func (g *LayerControlGroup) Detach() {
	g.mu.Lock()
	g.detached = true
	g.mu.Unlock()
}

func (g *LayerControlGroup) current() sky.LayerParams {
	return sky.LayerParams{
		Color:    g.Color.Value(),
		Opacity:  g.Opacity.Value(),
		LogScale: g.LogScale.Value(),
	}
}

func (g *LayerControlGroup) commit(p sky.LayerParams) error {
	g.mu.Lock()
	if g.detached {
		g.mu.Unlock()
		return nil
	}
	if err := g.layer.Update(p); err != nil {
		prev := g.accepted
		g.mu.Unlock()
		g.show(prev)
		return g.fail(fmt.Errorf("layer %s: %w", g.Filter, err))
	}
	g.accepted = p
	g.mu.Unlock()

	g.show(p)
	if err := g.requestRender(); err != nil {
		return g.fail(fmt.Errorf("layer %s: %w", g.Filter, err))
	}
	return nil
}

// show puts the widgets in step with p, without firing any commits.
func (g *LayerControlGroup) show(p sky.LayerParams) {
	g.Color.SetValue(p.Color)
	g.Opacity.SetValue(p.Opacity)
	g.LogScale.SetValue(p.LogScale)
}

func (g *LayerControlGroup) fail(err error) error {
	if g.report != nil {
		g.report(err)
	}
	return err
}
