// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"time"

	"gioui.org/gesturekit/f32"
	"gioui.org/gesturekit/internal/fling"
)

// PanGesture is a one or more finger drag.
type PanGesture struct {
	Base
	// Offset is the total displacement since the gesture began.
	Offset     f32.Point
	LastOffset f32.Point
	// StartPosition is where the gesture began, in window coordinates.
	StartPosition f32.Point
	// Velocity is in pixels per second.
	Velocity f32.Point
	// Acceleration is in pixels per second squared.
	Acceleration f32.Point

	pressed bool
	tracker tracker
}

// PinchGesture is a two finger scale and rotation.
type PinchGesture struct {
	Base
	ScaleFactor      float32
	LastScaleFactor  float32
	TotalScaleFactor float32
	// Angles are in degrees, counter-clockwise.
	RotationAngle      float32
	LastRotationAngle  float32
	TotalRotationAngle float32
	CenterPoint        f32.Point
	LastCenterPoint    f32.Point
	StartCenterPoint   f32.Point
	// ChangeFlags are the properties changed by the latest event,
	// TotalChangeFlags the ones changed since the gesture began.
	ChangeFlags      ChangeFlags
	TotalChangeFlags ChangeFlags

	newSequence bool
	startAngle  float32
}

// ChangeFlags is a set of Pinch properties.
type ChangeFlags uint8

const (
	ScaleFactorChanged ChangeFlags = 1 << iota
	RotationAngleChanged
	CenterPointChanged
)

// SwipeGesture is a three finger stroke.
type SwipeGesture struct {
	Base
	HorizontalDirection Direction
	VerticalDirection   Direction
	// SwipeAngle is the direction of the stroke in degrees,
	// counter-clockwise from the positive X axis.
	SwipeAngle float32
	// Velocity is a smoothed speed in pixels per second.
	Velocity float32

	phase        swipePhase
	lastTime     time.Duration
	lastPosition [3]f32.Point
}

// Direction of a Swipe.
type Direction uint8

const (
	NoDirection Direction = iota
	Left
	Right
	Up
	Down
)

type swipePhase uint8

const (
	swipeIdle swipePhase = iota
	swipeStarted
	swipeThreePoints
)

// TapGesture is a short press without movement.
type TapGesture struct {
	Base
	Position f32.Point
}

// TapAndHoldGesture is a press held in place.
type TapAndHoldGesture struct {
	Base
	Position f32.Point

	armed bool
}

// tracker estimates 2D velocities.
type tracker struct {
	x, y  fling.Extrapolation
	last  f32.Point
	lastT time.Duration
}

func (t *tracker) sample(at time.Duration, p f32.Point) {
	t.x.Sample(at, p.X)
	t.y.Sample(at, p.Y)
}

// velocity returns the estimated velocity and the acceleration since
// the previous call.
func (t *tracker) velocity(at time.Duration) (v, a f32.Point) {
	v = f32.Pt(t.x.Estimate().Velocity, t.y.Estimate().Velocity)
	if dt := float32((at - t.lastT).Seconds()); t.lastT != 0 && dt > 0 {
		a = v.Sub(t.last).Div(dt)
	}
	t.last, t.lastT = v, at
	return v, a
}

func (p *PanGesture) Clone() Gesture {
	c := *p
	c.tracker = tracker{}
	return &c
}

func (p *PinchGesture) Clone() Gesture {
	c := *p
	return &c
}

func (s *SwipeGesture) Clone() Gesture {
	c := *s
	return &c
}

func (t *TapGesture) Clone() Gesture {
	c := *t
	return &c
}

func (t *TapAndHoldGesture) Clone() Gesture {
	c := *t
	return &c
}

func (p *PanGesture) reset() {
	*p = PanGesture{Base: p.Base}
	p.Base.Reset()
}

func (p *PinchGesture) reset() {
	*p = PinchGesture{
		Base:             p.Base,
		ScaleFactor:      1,
		LastScaleFactor:  1,
		TotalScaleFactor: 1,
		newSequence:      true,
	}
	p.Base.Reset()
}

// restart clears the payload but keeps the delivery state.
func (p *PanGesture) restart() {
	b := p.Base
	p.reset()
	p.Base = b
}

func (p *PinchGesture) restart() {
	b := p.Base
	p.reset()
	p.Base = b
}

func (s *SwipeGesture) reset() {
	*s = SwipeGesture{Base: s.Base}
	s.Base.Reset()
}

func (t *TapGesture) reset() {
	*t = TapGesture{Base: t.Base}
	t.Base.Reset()
}

func (t *TapAndHoldGesture) reset() {
	*t = TapAndHoldGesture{Base: t.Base}
	t.Base.Reset()
}

func (d Direction) String() string {
	switch d {
	case NoDirection:
		return "NoDirection"
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Up:
		return "Up"
	case Down:
		return "Down"
	default:
		panic("invalid Direction")
	}
}
