// SPDX-License-Identifier: Unlicense OR MIT

package flick

import (
	"time"

	"gioui.org/gesturekit/f32"
)

// Scroller is a kinetic scroller driven by a flick recognizer. The
// recognizer only reads its state and feeds it input; it does not own
// it.
type Scroller interface {
	State() ScrollerState
	// HandleInput feeds one input to the scroller and reports
	// whether it was accepted. Positions are in window coordinates.
	HandleInput(in Input, pos f32.Point, t time.Duration) bool
	// Stop ends any drag or scroll immediately.
	Stop()
	// ScrollMetric returns the value of a scroller property.
	ScrollMetric(m Metric) float32
}

// ScrollerState is the state of a Scroller.
type ScrollerState uint8

// Input is the kind of input fed to a Scroller.
type Input uint8

// Metric names a Scroller property.
type Metric uint8

const (
	Inactive ScrollerState = iota
	Pressed
	Dragging
	Scrolling
)

const (
	InputPress Input = iota + 1
	InputMove
	InputRelease
)

const (
	// MousePressEventDelay is how long, in seconds, a press is
	// withheld from its target while the scroller decides whether
	// it starts a drag. Zero disables the delay.
	MousePressEventDelay Metric = iota
	// DragStartDistance is the distance in pixels a press must
	// move to start a drag.
	DragStartDistance
	// DecelerationFactor scales the fling deceleration.
	DecelerationFactor
	// MinimumVelocity is the smallest fling velocity, in pixels per
	// second, that starts kinetic scrolling.
	MinimumVelocity
	// MaximumVelocity caps the fling velocity.
	MaximumVelocity
)

// Active reports whether s is Dragging or Scrolling.
func (s ScrollerState) Active() bool {
	return s == Dragging || s == Scrolling
}

func (s ScrollerState) String() string {
	switch s {
	case Inactive:
		return "Inactive"
	case Pressed:
		return "Pressed"
	case Dragging:
		return "Dragging"
	case Scrolling:
		return "Scrolling"
	default:
		panic("invalid ScrollerState")
	}
}

func (i Input) String() string {
	switch i {
	case InputPress:
		return "InputPress"
	case InputMove:
		return "InputMove"
	case InputRelease:
		return "InputRelease"
	default:
		panic("invalid Input")
	}
}
