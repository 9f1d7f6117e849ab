package control

import "sync"

type GateState int

const (
	Building GateState = iota // Layer groups are being (re)built; renders are dropped
	Ready                     // Every layer group is attached; renders go through
)

func (s GateState) String() string {
	switch s {
	case Building:
		return "building"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// A RenderGate stops the composite being rendered while the layers for
// an object are still being set up, so that setting up N layers renders
// once rather than N times.
//
// The state and the render share one lock: renders never overlap, and
// Suspend waits for an in-flight render to finish.
type RenderGate struct {
	mu      sync.Mutex
	state   GateState
	pending bool // A request was dropped while Building
	render  func() error
}

// NewRenderGate starts out Building; nothing renders until the first Resume.
func NewRenderGate(render func() error) *RenderGate {
	return &RenderGate{state: Building, render: render}
}

func (g *RenderGate) State() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Suspend enters Building, returning the state it was in.
func (g *RenderGate) Suspend() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	prev := g.state
	g.state = Building
	g.pending = false
	return prev
}

// Reinstate puts back a state returned by Suspend, for when a rebuild is
// abandoned and the old layers stand. If that makes the gate Ready and a
// render was asked for in the meantime, it renders once.
func (g *RenderGate) Reinstate(s GateState) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = s
	if s != Ready || !g.pending {
		return nil
	}
	g.pending = false
	return g.render()
}

// Resume enters Ready and renders exactly once.
func (g *RenderGate) Resume() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = Ready
	g.pending = false
	return g.render()
}

// RequestRender renders if Ready. While Building it only notes that a
// render is owed.
func (g *RenderGate) RequestRender() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != Ready {
		g.pending = true
		return nil
	}
	return g.render()
}
