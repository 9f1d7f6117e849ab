package fyneui

import (
	"context"
	"fmt"
	"image"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"github.com/abworrall/skylayers/pkg/control"
	"github.com/abworrall/skylayers/pkg/ecolor"
	"github.com/abworrall/skylayers/pkg/sky"
)

type stubSource map[string][]string // object -> filters

func (s stubSource) LocalObjects() []string {
	var out []string
	for o := range s {
		out = append(out, o)
	}
	return out
}
func (s stubSource) RemoteObjects() []string                  { return nil }
func (s stubSource) Fetch(ctx context.Context, _ string) error { return ctx.Err() }

func (s stubSource) OpenImage(object string) (control.Image, error) {
	filters, exists := s[object]
	if !exists {
		return nil, fmt.Errorf("%q: %w", object, sky.ErrUnknownObject)
	}
	return stubImage{name: object, filters: filters}, nil
}

type stubImage struct {
	name    string
	filters []string
}

func (i stubImage) Object() string          { return i.name }
func (i stubImage) Filters() []string       { return i.filters }
func (i stubImage) DefaultColors() []string { return nil }

func (i stubImage) AppendLayer(filter string, _ ecolor.Color) (control.Layer, error) {
	return stubLayer(filter), nil
}

func (i stubImage) Render(sky.RenderRequest) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

type stubLayer string

func (l stubLayer) Filter() string                { return string(l) }
func (l stubLayer) Update(p sky.LayerParams) error { return p.Validate() }

func TestPanelViewSelect(t *testing.T) {
	test.NewApp()
	w := test.NewWindow(nil)
	defer w.Close()

	list, display := NewLayerList(), NewDisplay()
	panel := control.NewImageControlPanel(stubSource{"kepler": {"optical_red", "infrared"}},
		Toolkit{Window: w}, list, display, control.Options{})
	view := NewPanelView(panel, w, list)

	view.Select("kepler")
	assert.Equal(t, "kepler", view.picker.Selected, "the dropdown shows the selection")
	assert.Eventually(t, func() bool { return panel.Selected() == "kepler" }, 5*time.Second, 10*time.Millisecond)
	assert.Len(t, list.accordion.Items, 2)

	// Not offered by the dropdown: still attempted, and the failure shown
	view.Select("vega")
	assert.Eventually(t, func() bool { return view.status.Text == "Failed to load vega" }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, "kepler", panel.Selected())
	assert.Equal(t, "kepler", view.picker.Selected)
}
