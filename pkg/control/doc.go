// Package control is the interactive layer-composition controller: given
// an object, it gives each of its filters a color, builds one control
// group per filter layer, and keeps the composite image in step with the
// controls.
//
// The controller only talks to collaborators through the interfaces in
// this package. Source and Image are implemented by skyimage.Library;
// the widget contracts by the headless and fyneui packages.
//
// Typical usage:
//
//	p := control.NewImageControlPanel(src, toolkit, list, display, control.Options{})
//	if err := p.SelectObject(ctx, "kepler"); err != nil { ... }
//
// after which every committed control change re-renders once.
package control
