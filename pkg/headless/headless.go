// Package headless implements the control package's widget contracts in
// memory. The batch renderer drives a panel with these, and tests use
// Commit to stand in for a user.
package headless

import (
	"image"
	"sync"

	"github.com/abworrall/skylayers/pkg/control"
	"github.com/abworrall/skylayers/pkg/ecolor"
)

// Widget holds a T. Commit sets the value and fires the
// commit callback; SetValue just sets it.
type Widget[T any] struct {
	Label string

	mu       sync.Mutex
	value    T
	onCommit func(T)
	commits  int
}

func (v *Widget[T]) Value() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value
}

func (v *Widget[T]) SetValue(x T) {
	v.mu.Lock()
	v.value = x
	v.mu.Unlock()
}

func (v *Widget[T]) OnCommit(f func(T)) {
	v.mu.Lock()
	v.onCommit = f
	v.mu.Unlock()
}

func (v *Widget[T]) Commit(x T) {
	v.mu.Lock()
	v.value = x
	v.commits++
	f := v.onCommit
	v.mu.Unlock()

	if f != nil {
		f(x)
	}
}

// Commits counts calls to Commit.
func (v *Widget[T]) Commits() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.commits
}

type ColorPicker = Widget[ecolor.Color]
type Toggle = Widget[bool]

// Number does not clamp; out of range commits reach the controller,
// which has to reject them.
type Number struct {
	Widget[float64]
	Min, Max float64
}

type Toolkit struct{}

func (Toolkit) NewColorPicker(label string, initial ecolor.Color) control.ColorPicker {
	return &ColorPicker{Label: label, value: initial}
}

func (Toolkit) NewSlider(label string, min, max, initial float64) control.Number {
	return &Number{Widget: Widget[float64]{Label: label, value: initial}, Min: min, Max: max}
}

func (Toolkit) NewNumberField(label string, min, max, initial float64) control.Number {
	return &Number{Widget: Widget[float64]{Label: label, value: initial}, Min: min, Max: max}
}

func (Toolkit) NewToggle(label string, initial bool) control.Toggle {
	return &Toggle{Label: label, value: initial}
}

// LayerList records what is attached, and how often it changed.
type LayerList struct {
	mu      sync.Mutex
	titles  []string
	groups  []*control.LayerControlGroup
	attachs int
	clears  int
}

func (l *LayerList) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.titles, l.groups = nil, nil
	l.clears++
}

func (l *LayerList) Attach(title string, g *control.LayerControlGroup) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.titles = append(l.titles, title)
	l.groups = append(l.groups, g)
	l.attachs++
}

func (l *LayerList) Titles() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string{}, l.titles...)
}

func (l *LayerList) Groups() []*control.LayerControlGroup {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*control.LayerControlGroup{}, l.groups...)
}

// Attaches is the total number of Attach calls; Clears likewise.
func (l *LayerList) Attaches() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.attachs
}

func (l *LayerList) Clears() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.clears
}

// Display keeps the latest frame.
type Display struct {
	mu    sync.Mutex
	frame image.Image
	shows int
}

func (d *Display) Show(frame image.Image) {
	d.mu.Lock()
	d.frame = frame
	d.shows++
	d.mu.Unlock()
}

func (d *Display) Frame() image.Image {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frame
}

func (d *Display) Shows() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shows
}
