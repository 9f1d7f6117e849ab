package control

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abworrall/skylayers/pkg/sky"
)

type Phase int

const (
	PhaseDownloading Phase = iota // Fetching a remote object's files
	PhaseFetchFailed
	PhaseBuilding // Layer groups being rebuilt
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseDownloading:
		return "downloading"
	case PhaseFetchFailed:
		return "fetch failed"
	case PhaseBuilding:
		return "building"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

type Options struct {
	Log     *zap.Logger
	OnPhase func(phase Phase, object string)
	OnError func(error)

	FullResolution bool
	Width          float64 // cm
	MinWidth       float64
	MaxWidth       float64
}

// Validate rejects an initial width outside the width bounds. A zero
// width means the default; callers that take a width from the user
// should refuse zero themselves.
func (o Options) Validate() error {
	d := o
	d.Width = 0
	d.setDefaults()
	if d.MinWidth >= d.MaxWidth {
		return fmt.Errorf("width bounds [%v,%v]: %w", d.MinWidth, d.MaxWidth, sky.ErrInvalidLayerParameter)
	}
	if o.Width == 0 {
		return nil
	}
	if math.IsNaN(o.Width) || o.Width < d.MinWidth || o.Width > d.MaxWidth {
		return fmt.Errorf("width %v outside [%v,%v]: %w", o.Width, d.MinWidth, d.MaxWidth, sky.ErrInvalidLayerParameter)
	}
	return nil
}

func (o *Options) setDefaults() {
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	if o.MinWidth <= 0 {
		o.MinWidth = 1
	}
	if o.MaxWidth <= 0 {
		o.MaxWidth = 1000
	}
	if o.Width == 0 {
		o.Width = 10
	}
	o.Width = math.Max(o.MinWidth, math.Min(o.MaxWidth, o.Width))
}

// ImageControlPanel owns the object selection, the global display
// controls, and the layer control groups for the selected object.
type ImageControlPanel struct {
	FullResolution Toggle
	Width          Number

	source  Source
	toolkit Toolkit
	list    LayerList
	display Display
	opts    Options
	log     *zap.Logger
	gate    *RenderGate

	selectMu sync.Mutex // One selection at a time

	mu        sync.Mutex
	selected  string
	image     Image
	groups    []*LayerControlGroup
	lastWidth float64
}

func NewImageControlPanel(src Source, tk Toolkit, list LayerList, display Display, opts Options) *ImageControlPanel {
	opts.setDefaults()

	p := &ImageControlPanel{
		FullResolution: tk.NewToggle("Display full resolution (slow)", opts.FullResolution),
		Width:          tk.NewNumberField("Width (cm)", opts.MinWidth, opts.MaxWidth, opts.Width),
		source:         src,
		toolkit:        tk,
		list:           list,
		display:        display,
		opts:           opts,
		log:            opts.Log,
		lastWidth:      opts.Width,
	}
	p.gate = NewRenderGate(p.render)

	p.FullResolution.OnCommit(func(bool) { p.requestRender() })
	p.Width.OnCommit(p.commitWidth)

	return p
}

// Objects lists what can be selected: local objects, then the remote ones
// marked with sky.RemoteMarker.
func (p *ImageControlPanel) Objects() []string {
	objs := append([]string{}, p.source.LocalObjects()...)
	for _, o := range p.source.RemoteObjects() {
		objs = append(objs, sky.RemoteMarker+o)
	}
	return objs
}

func (p *ImageControlPanel) Selected() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selected
}

func (p *ImageControlPanel) Groups() []*LayerControlGroup {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*LayerControlGroup{}, p.groups...)
}

// Group returns the control group for the named filter, or nil.
func (p *ImageControlPanel) Group(filter string) *LayerControlGroup {
	for _, g := range p.Groups() {
		if g.Filter == filter {
			return g
		}
	}
	return nil
}

func (p *ImageControlPanel) State() GateState { return p.gate.State() }

// SelectObject switches the panel to a new object, fetching it first if
// the identifier carries the remote marker. It either fully succeeds, or
// leaves the previous object's layers and frame as they were.
func (p *ImageControlPanel) SelectObject(ctx context.Context, id string) error {
	p.selectMu.Lock()
	defer p.selectMu.Unlock()

	tStart := time.Now()
	name := id

	if sky.IsRemote(id) {
		name = sky.StripRemote(id)
		p.phase(PhaseDownloading, name)
		if err := p.source.Fetch(ctx, name); err != nil {
			p.phase(PhaseFetchFailed, name)
			if !errors.Is(err, sky.ErrFetchFailed) {
				err = fmt.Errorf("%v: %w", err, sky.ErrFetchFailed)
			}
			return p.fail(fmt.Errorf("select %s: %w", id, err))
		}
	}

	if err := ctx.Err(); err != nil {
		return p.fail(fmt.Errorf("select %s: %w", id, err))
	}

	img, err := p.source.OpenImage(name)
	if err != nil {
		return p.fail(fmt.Errorf("select %s: %w", id, err))
	}

	assignments, err := AssignColors(img.Filters(), img.DefaultColors())
	if err != nil {
		return p.fail(fmt.Errorf("select %s: %w", id, err))
	}

	prev := p.gate.Suspend()
	p.phase(PhaseBuilding, name)

	groups := make([]*LayerControlGroup, 0, len(assignments))
	for _, a := range assignments {
		layer, err := img.AppendLayer(a.Filter, a.Color)
		if err != nil {
			if rerr := p.gate.Reinstate(prev); rerr != nil {
				p.report(fmt.Errorf("select %s: %w", id, rerr))
			}
			return p.fail(fmt.Errorf("select %s: layer %s: %w", id, a.Filter, err))
		}
		groups = append(groups, NewLayerControlGroup(p.toolkit, layer, a.Color, p.gate.RequestRender, p.report))
	}

	p.mu.Lock()
	for _, g := range p.groups {
		g.Detach()
	}
	p.list.Clear()
	for _, g := range groups {
		p.list.Attach(g.Filter, g)
	}
	p.selected, p.image, p.groups = name, img, groups
	p.mu.Unlock()

	p.phase(PhaseReady, name)
	if err := p.gate.Resume(); err != nil {
		return p.fail(fmt.Errorf("select %s: %w", id, err))
	}

	p.log.Info("object selected",
		zap.String("object", name),
		zap.Int("layers", len(groups)),
		zap.Duration("took", time.Since(tStart)))

	return nil
}

func (p *ImageControlPanel) requestRender() error {
	if err := p.gate.RequestRender(); err != nil {
		return p.fail(err)
	}
	return nil
}

// commitWidth keeps the width inside its bounds; anything else is put
// back to the last good width.
func (p *ImageControlPanel) commitWidth(w float64) {
	p.mu.Lock()
	if math.IsNaN(w) || w < p.opts.MinWidth || w > p.opts.MaxWidth {
		last := p.lastWidth
		p.mu.Unlock()
		p.Width.SetValue(last)
		p.fail(fmt.Errorf("width %v outside [%v,%v]: %w", w, p.opts.MinWidth, p.opts.MaxWidth, sky.ErrInvalidLayerParameter))
		return
	}
	p.lastWidth = w
	p.mu.Unlock()

	p.requestRender()
}

// render is only ever called by the gate.
func (p *ImageControlPanel) render() error {
	p.mu.Lock()
	img, groups := p.image, p.groups
	p.mu.Unlock()

	if img == nil {
		return nil
	}

	req := sky.RenderRequest{
		FullResolution: p.FullResolution.Value(),
		Width:          p.Width.Value(),
		Layers:         make([]sky.LayerState, 0, len(groups)),
	}
	for _, g := range groups {
		req.Layers = append(req.Layers, sky.LayerState{Filter: g.Filter, LayerParams: g.Params()})
	}

	frame, err := img.Render(req)
	if err != nil {
		return fmt.Errorf("render %s: %w", img.Object(), err)
	}
	p.display.Show(frame)
	return nil
}

func (p *ImageControlPanel) phase(ph Phase, object string) {
	p.log.Debug("phase", zap.Stringer("phase", ph), zap.String("object", object))
	if p.opts.OnPhase != nil {
		p.opts.OnPhase(ph, object)
	}
}

func (p *ImageControlPanel) report(err error) {
	p.log.Warn("panel error", zap.Error(err))
	if p.opts.OnError != nil {
		p.opts.OnError(err)
	}
}

func (p *ImageControlPanel) fail(err error) error {
	p.report(err)
	return err
}
