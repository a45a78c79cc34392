package viewmodel

import "math"

// Viewport pan/zoom limits.
const (
	MinScale = 0.5
	MaxScale = 3.0
)

// ViewportState is the pan state of the controller.
type ViewportState int

const (
	ViewportIdle ViewportState = iota
	ViewportPanning
)

// GestureKind classifies a normalized gesture event. Pointer and touch
// input map onto the same three kinds: mouse-down and touch-start become
// GestureDown, mouse-move and touch-move become GestureMove, and
// mouse-up, mouse-leave and touch-end all become GestureUp.
type GestureKind int

const (
	GestureDown GestureKind = iota
	GestureMove
	GestureUp
)

// GesturePoint is one contact point in viewport coordinates.
type GesturePoint struct {
	X float64
	Y float64
}

// GestureEvent is a normalized input event. Points holds one entry for
// pointer or single-touch input and two for a pinch; Interactive marks
// events whose target is an interactive task element, which must not
// start a pan.
type GestureEvent struct {
	Kind        GestureKind
	Points      []GesturePoint
	Interactive bool
}

// Viewport translates gesture events into scroll offsets and a zoom scale
// for the timeline. One instance belongs to exactly one rendered view;
// instances never share state. Events carrying no points are no-ops, and
// a pinch that degenerates to fewer than two contacts cancels pinch
// tracking without affecting an ongoing pan.
type Viewport struct {
	state         ViewportState
	start         GesturePoint
	baseScrollX   float64
	baseScrollY   float64
	scrollX       float64
	scrollY       float64
	scale         float64
	prevPinchDist float64
}

// NewViewport returns an idle viewport at scale 1.
func NewViewport() *Viewport {
	return &Viewport{scale: 1}
}

// Handle feeds one gesture event through the state machine.
func (v *Viewport) Handle(ev GestureEvent) {
	switch ev.Kind {
	case GestureDown:
		v.handleDown(ev)
	case GestureMove:
		v.handleMove(ev)
	case GestureUp:
		v.state = ViewportIdle
		v.prevPinchDist = 0
	}
}

func (v *Viewport) handleDown(ev GestureEvent) {
	switch len(ev.Points) {
	case 1:
		if ev.Interactive {
			return
		}
		v.state = ViewportPanning
		v.start = ev.Points[0]
		v.baseScrollX = v.scrollX
		v.baseScrollY = v.scrollY
	case 2:
		v.prevPinchDist = pinchDistance(ev.Points[0], ev.Points[1])
	}
}

func (v *Viewport) handleMove(ev GestureEvent) {
	if len(ev.Points) == 2 && v.prevPinchDist > 0 {
		dist := pinchDistance(ev.Points[0], ev.Points[1])
		if dist <= 0 {
			return
		}
		v.scale = clampScale(v.scale * (dist / v.prevPinchDist))
		// Rebaseline every move so the next ratio is relative to the
		// current spread, not the gesture start.
		v.prevPinchDist = dist
		return
	}

	if len(ev.Points) != 1 {
		return
	}
	v.prevPinchDist = 0
	if v.state != ViewportPanning {
		return
	}
	v.scrollX = v.baseScrollX - (ev.Points[0].X - v.start.X)
	v.scrollY = v.baseScrollY - (ev.Points[0].Y - v.start.Y)
}

// State returns the current pan state.
func (v *Viewport) State() ViewportState { return v.state }

// Scroll returns the current scroll offset per axis.
func (v *Viewport) Scroll() (x, y float64) { return v.scrollX, v.scrollY }

// Scale returns the current zoom scale, always within [MinScale, MaxScale].
func (v *Viewport) Scale() float64 { return v.scale }

// ContentWidth is the rendered timeline width at the current scale.
func (v *Viewport) ContentWidth(labelCount int) float64 {
	return ContentWidth(labelCount, v.scale)
}

func pinchDistance(a, b GesturePoint) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func clampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}
