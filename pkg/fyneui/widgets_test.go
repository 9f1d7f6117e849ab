package fyneui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"github.com/abworrall/skylayers/pkg/ecolor"
)

func TestToggleSetValueIsQuiet(t *testing.T) {
	test.NewApp()

	tg := newToggle("Logarithmic scaling", false)
	var got []bool
	tg.OnCommit(func(b bool) { got = append(got, b) })

	tg.SetValue(true)
	assert.True(t, tg.Value())
	assert.Empty(t, got)

	test.Tap(tg.check)
	assert.False(t, tg.Value())
	assert.Equal(t, []bool{false}, got)
}

func TestSliderCommitsOnRelease(t *testing.T) {
	test.NewApp()

	s := newSlider("Opacity", 0, 1, 1)
	var got []float64
	s.OnCommit(func(v float64) { got = append(got, v) })

	s.SetValue(0.5)
	assert.Equal(t, 0.5, s.Value())
	assert.Empty(t, got)

	s.slider.OnChangeEnded(0.5)
	s.slider.OnChangeEnded(0.5)
	assert.Equal(t, []float64{0.5, 0.5}, got)
}

func TestNumberField(t *testing.T) {
	test.NewApp()

	n := newNumberField("Width (cm)", 1, 1000, 10)
	var got []float64
	n.OnCommit(func(v float64) { got = append(got, v) })

	n.SetValue(20)
	assert.Equal(t, "20", n.entry.Text)
	assert.Empty(t, got)

	n.entry.OnSubmitted("12.5")
	assert.Equal(t, []float64{12.5}, got)
	assert.Equal(t, 12.5, n.Value())

	n.entry.OnSubmitted("wide")
	assert.Len(t, got, 1)
	assert.Equal(t, "12.5", n.entry.Text)
}

func TestColorPicker(t *testing.T) {
	test.NewApp()
	w := test.NewWindow(nil)
	defer w.Close()

	cp := newColorPicker(w, "Layer color", ecolor.MustParse("red"))
	var got []ecolor.Color
	cp.OnCommit(func(c ecolor.Color) { got = append(got, c) })

	cp.SetValue(ecolor.MustParse("cyan"))
	assert.Equal(t, "cyan", cp.name.Text)
	assert.Empty(t, got)

	cp.commit(ecolor.MustParse("#ff8800"))
	cp.commit(ecolor.MustParse("#ff8800"))
	assert.Len(t, got, 2)
	assert.Equal(t, "#ff8800", cp.Value().String())
}
