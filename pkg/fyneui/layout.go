package fyneui

import (
	"context"
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/abworrall/skylayers/pkg/control"
)

// LayerList shows each layer control group as an accordion item, titled
// by its filter.
type LayerList struct {
	accordion *widget.Accordion
}

func NewLayerList() *LayerList {
	return &LayerList{accordion: widget.NewAccordion()}
}

func (l *LayerList) Clear() {
	l.accordion.Items = nil
	l.accordion.Refresh()
}

func (l *LayerList) Attach(title string, g *control.LayerControlGroup) {
	item := widget.NewAccordionItem(title, container.NewVBox(
		canvasObject(g.Color),
		canvasObject(g.Opacity),
		canvasObject(g.LogScale),
	))
	l.accordion.Append(item)
	if len(l.accordion.Items) == 1 {
		l.accordion.Open(0)
	}
}

func (l *LayerList) CanvasObject() fyne.CanvasObject { return l.accordion }

// Display shows the latest rendered frame, scaled to fit.
type Display struct {
	img    *canvas.Image
	scroll *container.Scroll
}

func NewDisplay() *Display {
	img := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	img.FillMode = canvas.ImageFillOriginal
	img.ScaleMode = canvas.ImageScaleSmooth
	return &Display{img: img, scroll: container.NewScroll(img)}
}

func (d *Display) Show(frame image.Image) {
	d.img.Image = frame
	d.img.Refresh()
	d.scroll.Refresh()
}

func (d *Display) CanvasObject() fyne.CanvasObject { return d.scroll }

// PanelView lays out an ImageControlPanel: the object selector and global
// controls at the top, then the layer groups.
type PanelView struct {
	panel  *control.ImageControlPanel
	window fyne.Window
	list   *LayerList
	status *widget.Label
	picker *widget.Select

	mu     sync.Mutex
	cancel context.CancelFunc

	box fyne.CanvasObject
}

func NewPanelView(p *control.ImageControlPanel, w fyne.Window, list *LayerList) *PanelView {
	v := &PanelView{
		panel:  p,
		window: w,
		list:   list,
		status: widget.NewLabel("Pick an object"),
	}
	v.picker = widget.NewSelect(p.Objects(), v.selectObject)
	v.picker.PlaceHolder = "(object)"

	v.box = container.NewBorder(
		container.NewVBox(
			widget.NewCard("Object", "", container.NewVBox(v.picker, v.status)),
			widget.NewCard("Display", "", container.NewVBox(
				canvasObject(p.FullResolution),
				canvasObject(p.Width),
			)),
		),
		nil, nil, nil,
		container.NewVScroll(list.CanvasObject()),
	)
	return v
}

// Select picks id as if from the dropdown. Identifiers the dropdown
// doesn't offer still go through selection, so their error is shown.
func (v *PanelView) Select(id string) {
	for _, o := range v.picker.Options {
		if o == id {
			v.picker.SetSelected(id) // Fires selectObject
			return
		}
	}
	v.selectObject(id)
}

// selectObject runs in the background; picking another object while one
// is still downloading abandons the first.
func (v *PanelView) selectObject(id string) {
	ctx, cancel := context.WithCancel(context.Background())
	v.mu.Lock()
	if v.cancel != nil {
		v.cancel()
	}
	v.cancel = cancel
	v.mu.Unlock()

	go func() {
		defer cancel()
		if err := v.panel.SelectObject(ctx, id); err != nil {
			if ctx.Err() == nil {
				v.status.SetText("Failed to load " + id)
			}
			return
		}
		if sel := v.panel.Selected(); sel != "" {
			v.status.SetText(sel)
		}
	}()
}

// SetPhase is for control.Options.OnPhase.
func (v *PanelView) SetPhase(ph control.Phase, object string) {
	v.status.SetText(object + ": " + ph.String())
}

// ShowError is for control.Options.OnError.
func (v *PanelView) ShowError(err error) {
	dialog.ShowError(err, v.window)
}

func (v *PanelView) CanvasObject() fyne.CanvasObject { return v.box }

func canvasObject(w interface{}) fyne.CanvasObject {
	if cw, ok := w.(Widget); ok {
		return cw.CanvasObject()
	}
	return widget.NewLabel("?")
}
