// SPDX-License-Identifier: Unlicense OR MIT

// Package native describes composite gesture events reported directly
// by the platform, such as trackpad pinches, instead of raw touch
// streams.
package native

import (
	"time"

	"gioui.org/gesturekit/f32"
)

// Event is a platform gesture event.
type Event struct {
	Kind Kind
	Time time.Duration
	// Position is the focal point in window coordinates.
	Position f32.Point
	// Value is the payload of Zoom (scale delta, 0 means unchanged),
	// Rotate (degrees) and Swipe (angle in degrees) events.
	Value float32
	// Delta is the payload of Pan events.
	Delta f32.Point
}

// Kind of an Event.
type Kind uint8

const (
	// Begin starts a platform gesture sequence.
	Begin Kind = iota
	// End finishes the current sequence.
	End
	Pan
	Zoom
	Rotate
	Swipe
	// SmartZoom is a two-finger double tap.
	SmartZoom
)

// Timestamp implements event.Timed.
func (e Event) Timestamp() time.Duration { return e.Time }

func (k Kind) String() string {
	switch k {
	case Begin:
		return "Begin"
	case End:
		return "End"
	case Pan:
		return "Pan"
	case Zoom:
		return "Zoom"
	case Rotate:
		return "Rotate"
	case Swipe:
		return "Swipe"
	case SmartZoom:
		return "SmartZoom"
	default:
		panic("invalid Kind")
	}
}

func (Event) ImplementsEvent() {}
