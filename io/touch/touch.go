// SPDX-License-Identifier: Unlicense OR MIT

// Package touch describes multi-finger touch input events.
//
// Positions are in window coordinates. Each Point remembers where its
// finger went down and where it was reported by the previous event, so
// recognizers can compute displacements without keeping their own
// history.
package touch

import (
	"time"

	"gioui.org/gesturekit/f32"
	"gioui.org/gesturekit/io/key"
)

// Event is a touch event carrying every finger currently on the
// surface.
type Event struct {
	Kind      Kind
	Time      time.Duration
	Points    []Point
	Modifiers key.Modifiers
}

// Point is the state of one finger.
type Point struct {
	ID            int
	State         PointState
	Position      f32.Point
	StartPosition f32.Point
	LastPosition  f32.Point
}

// Kind of an Event.
type Kind uint8

// PointState is the state of one finger within an Event.
type PointState uint8

const (
	// Begin is reported when the first finger touches the surface.
	Begin Kind = iota
	// Update is reported when fingers move, are added or lifted
	// while at least one remains.
	Update
	// End is reported when the last finger is lifted.
	End
	// Cancel is reported when the system takes the touch sequence away.
	Cancel
)

const (
	Pressed PointState = iota
	Moved
	Stationary
	Released
)

// Timestamp implements event.Timed.
func (e Event) Timestamp() time.Duration { return e.Time }

// Down returns the number of fingers that have not been released.
func (e Event) Down() int {
	n := 0
	for _, p := range e.Points {
		if p.State != Released {
			n++
		}
	}
	return n
}

// Offset returns the displacement of p since it went down.
func (p Point) Offset() f32.Point {
	return p.Position.Sub(p.StartPosition)
}

// Delta returns the displacement of p since the previous event.
func (p Point) Delta() f32.Point {
	return p.Position.Sub(p.LastPosition)
}

func (k Kind) String() string {
	switch k {
	case Begin:
		return "Begin"
	case Update:
		return "Update"
	case End:
		return "End"
	case Cancel:
		return "Cancel"
	default:
		panic("invalid Kind")
	}
}

func (s PointState) String() string {
	switch s {
	case Pressed:
		return "Pressed"
	case Moved:
		return "Moved"
	case Stationary:
		return "Stationary"
	case Released:
		return "Released"
	default:
		panic("invalid PointState")
	}
}

func (Event) ImplementsEvent() {}
