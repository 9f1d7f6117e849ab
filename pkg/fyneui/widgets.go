// Package fyneui puts the control panel on screen, implementing its
// widget contracts with fyne widgets.
package fyneui

import (
	"fmt"
	"image/color"
	"strconv"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/abworrall/skylayers/pkg/control"
	"github.com/abworrall/skylayers/pkg/ecolor"
)

// Widget is anything this package can lay out.
type Widget interface {
	CanvasObject() fyne.CanvasObject
}

// Toolkit makes the fyne widgets; the color picker dialogs open over
// Window.
type Toolkit struct {
	Window fyne.Window
}

func (tk Toolkit) NewColorPicker(label string, initial ecolor.Color) control.ColorPicker {
	return newColorPicker(tk.Window, label, initial)
}

func (tk Toolkit) NewSlider(label string, min, max, initial float64) control.Number {
	return newSlider(label, min, max, initial)
}

func (tk Toolkit) NewNumberField(label string, min, max, initial float64) control.Number {
	return newNumberField(label, min, max, initial)
}

func (tk Toolkit) NewToggle(label string, initial bool) control.Toggle {
	return newToggle(label, initial)
}

// ColorPicker is a swatch with a button that opens fyne's color dialog.
type ColorPicker struct {
	label  string
	window fyne.Window

	mu       sync.Mutex
	value    ecolor.Color
	onCommit func(ecolor.Color)

	swatch *canvas.Rectangle
	name   *widget.Label
	box    fyne.CanvasObject
}

func newColorPicker(w fyne.Window, label string, initial ecolor.Color) *ColorPicker {
	cp := &ColorPicker{label: label, window: w, value: initial}

	cp.swatch = canvas.NewRectangle(initial)
	cp.swatch.SetMinSize(fyne.NewSize(24, 24))
	cp.name = widget.NewLabel(initial.String())
	button := widget.NewButton("Pick...", cp.open)

	cp.box = container.NewHBox(widget.NewLabel(label+":"), cp.swatch, cp.name, button)
	return cp
}

func (cp *ColorPicker) open() {
	d := dialog.NewColorPicker(cp.label, "", func(c color.Color) {
		cp.commit(ecolor.FromColor(c))
	}, cp.window)
	d.Advanced = true
	d.SetColor(cp.Value())
	d.Show()
}

func (cp *ColorPicker) commit(c ecolor.Color) {
	cp.SetValue(c)
	cp.mu.Lock()
	f := cp.onCommit
	cp.mu.Unlock()
	if f != nil {
		f(c)
	}
}

func (cp *ColorPicker) Value() ecolor.Color {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	return cp.value
}

func (cp *ColorPicker) SetValue(c ecolor.Color) {
	cp.mu.Lock()
	cp.value = c
	cp.mu.Unlock()

	cp.swatch.FillColor = c
	cp.swatch.Refresh()
	cp.name.SetText(c.String())
}

func (cp *ColorPicker) OnCommit(f func(ecolor.Color)) {
	cp.mu.Lock()
	cp.onCommit = f
	cp.mu.Unlock()
}

func (cp *ColorPicker) CanvasObject() fyne.CanvasObject { return cp.box }

// Slider commits when the user lets go of it.
type Slider struct {
	mu       sync.Mutex
	onCommit func(float64)
	quiet    bool // Set while SetValue runs, so it doesn't fire callbacks

	slider  *widget.Slider
	readout *widget.Label
	box     fyne.CanvasObject
}

func newSlider(label string, min, max, initial float64) *Slider {
	s := &Slider{}
	s.slider = widget.NewSlider(min, max)
	s.slider.Step = (max - min) / 100
	s.slider.Value = initial
	s.readout = widget.NewLabel(formatNumber(initial))

	s.slider.OnChanged = func(v float64) { s.readout.SetText(formatNumber(v)) }
	s.slider.OnChangeEnded = func(v float64) {
		s.mu.Lock()
		f, quiet := s.onCommit, s.quiet
		s.mu.Unlock()
		if f != nil && !quiet {
			f(v)
		}
	}

	s.box = container.NewBorder(nil, nil, widget.NewLabel(label+":"), s.readout, s.slider)
	return s
}

func (s *Slider) Value() float64 { return s.slider.Value }

func (s *Slider) SetValue(v float64) {
	s.mu.Lock()
	s.quiet = true
	s.mu.Unlock()

	s.slider.SetValue(v)
	s.readout.SetText(formatNumber(v))

	s.mu.Lock()
	s.quiet = false
	s.mu.Unlock()
}

func (s *Slider) OnCommit(f func(float64)) {
	s.mu.Lock()
	s.onCommit = f
	s.mu.Unlock()
}

func (s *Slider) CanvasObject() fyne.CanvasObject { return s.box }

// NumberField commits when return is pressed. It doesn't range check:
// the bounds are shown in the placeholder, and the controller rejects
// anything outside them.
type NumberField struct {
	mu       sync.Mutex
	value    float64
	onCommit func(float64)

	entry *widget.Entry
	box   fyne.CanvasObject
}

func newNumberField(label string, min, max, initial float64) *NumberField {
	n := &NumberField{value: initial}
	n.entry = widget.NewEntry()
	n.entry.SetPlaceHolder(fmt.Sprintf("%s - %s", formatNumber(min), formatNumber(max)))
	n.entry.SetText(formatNumber(initial))
	n.entry.Validator = func(s string) error {
		_, err := strconv.ParseFloat(s, 64)
		return err
	}
	n.entry.OnSubmitted = func(s string) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			n.entry.SetText(formatNumber(n.Value()))
			return
		}
		n.mu.Lock()
		n.value = v
		f := n.onCommit
		n.mu.Unlock()
		if f != nil {
			f(v)
		}
	}

	n.box = container.NewBorder(nil, nil, widget.NewLabel(label+":"), nil, n.entry)
	return n
}

func (n *NumberField) Value() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.value
}

func (n *NumberField) SetValue(v float64) {
	n.mu.Lock()
	n.value = v
	n.mu.Unlock()
	n.entry.SetText(formatNumber(v))
}

func (n *NumberField) OnCommit(f func(float64)) {
	n.mu.Lock()
	n.onCommit = f
	n.mu.Unlock()
}

func (n *NumberField) CanvasObject() fyne.CanvasObject { return n.box }

// Toggle is a checkbox. widget.Check fires OnChanged from SetChecked, so
// SetValue has to hush it.
type Toggle struct {
	mu       sync.Mutex
	onCommit func(bool)
	quiet    bool

	check *widget.Check
}

func newToggle(label string, initial bool) *Toggle {
	t := &Toggle{}
	t.check = widget.NewCheck(label, func(b bool) {
		t.mu.Lock()
		f, quiet := t.onCommit, t.quiet
		t.mu.Unlock()
		if f != nil && !quiet {
			f(b)
		}
	})
	t.check.Checked = initial
	return t
}

func (t *Toggle) Value() bool { return t.check.Checked }

func (t *Toggle) SetValue(b bool) {
	t.mu.Lock()
	t.quiet = true
	t.mu.Unlock()

	t.check.SetChecked(b)

	t.mu.Lock()
	t.quiet = false
	t.mu.Unlock()
}

func (t *Toggle) OnCommit(f func(bool)) {
	t.mu.Lock()
	t.onCommit = f
	t.mu.Unlock()
}

func (t *Toggle) CanvasObject() fyne.CanvasObject { return t.check }

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
