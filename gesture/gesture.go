// SPDX-License-Identifier: Unlicense OR MIT

/*
Package gesture implements gesture state objects and the recognizers
that update them.

A Recognizer consumes low level input events (pointer, touch or
native platform gestures) for one target and reports a Result: whether
the events are unrelated, a possible gesture, an ongoing gesture, or
the end of one. The router package owns the state objects, feeds them
to recognizers and delivers the outcome to targets as Events.
*/
package gesture

import (
	"strconv"
	"time"

	"gioui.org/gesturekit/f32"
	"gioui.org/gesturekit/io/event"
)

// Type identifies a kind of gesture.
type Type uint32

// State is the delivery state of a gesture.
type State uint8

// CancelPolicy controls what a gesture does to other gestures when it
// is accepted.
type CancelPolicy uint8

// Gesture is the mutable state of one gesture on one target. Every
// implementation embeds Base.
type Gesture interface {
	// Common returns the state shared by all gesture kinds.
	Common() *Base
	// Clone returns a snapshot of the gesture.
	Clone() Gesture
}

// Base holds the state common to all gestures.
type Base struct {
	Type   Type
	State  State
	Target event.Tag
	// HotSpot is the focal point of the gesture in window
	// coordinates. Only valid when HasHotSpot is set.
	HotSpot    f32.Point
	HasHotSpot bool
	// CancelPolicy is applied by the router when the gesture starts.
	CancelPolicy CancelPolicy
}

// Event delivers gestures to their target. All gestures of one
// target that changed state in response to the same input event are
// delivered together; the target decides which ones it handles.
type Event struct {
	Gestures []Gesture
}

// TimerEvent is delivered to a recognizer when a timer started with
// Context.StartTimer expires.
type TimerEvent struct {
	Time time.Duration
}

const (
	Tap Type = iota + 1
	TapAndHold
	Pan
	Pinch
	Swipe
	Flick
	// CustomType is the first type assigned to recognizers that
	// do not report a built-in type.
	CustomType Type = 0x100
)

const (
	// NoGesture is the state of gestures that are not in progress,
	// including possible gestures that have not been confirmed.
	NoGesture State = iota
	// Started is the state of a gesture in its first delivery.
	Started
	// Updated is the state of a gesture in subsequent deliveries.
	Updated
	// Finished is the state of a gesture in its final delivery.
	Finished
	// Canceled is the state of an aborted gesture.
	Canceled
)

const (
	// CancelNone leaves other gestures alone.
	CancelNone CancelPolicy = iota
	// CancelAllInContext cancels all other active gestures on the
	// same target and its children.
	CancelAllInContext
)

// Common implements Gesture.
func (b *Base) Common() *Base { return b }

// SetHotSpot sets the focal point of the gesture.
func (b *Base) SetHotSpot(p f32.Point) {
	b.HotSpot = p
	b.HasHotSpot = true
}

// Reset restores the shared state to its idle defaults. Type and
// Target are kept.
func (b *Base) Reset() {
	b.State = NoGesture
	b.HotSpot = f32.Point{}
	b.HasHotSpot = false
}

// Active reports whether the gesture was delivered and has not ended.
func (b *Base) Active() bool {
	return b.State == Started || b.State == Updated
}

// Gesture returns the gesture of type t in e, or nil.
func (e Event) Gesture(t Type) Gesture {
	for _, g := range e.Gestures {
		if g.Common().Type == t {
			return g
		}
	}
	return nil
}

// Canceled returns the canceled gestures in e.
func (e Event) Canceled() []Gesture {
	var gs []Gesture
	for _, g := range e.Gestures {
		if g.Common().State == Canceled {
			gs = append(gs, g)
		}
	}
	return gs
}

// Timestamp implements event.Timed.
func (e TimerEvent) Timestamp() time.Duration { return e.Time }

func (Event) ImplementsEvent()      {}
func (TimerEvent) ImplementsEvent() {}

func (t Type) String() string {
	switch t {
	case Tap:
		return "Tap"
	case TapAndHold:
		return "TapAndHold"
	case Pan:
		return "Pan"
	case Pinch:
		return "Pinch"
	case Swipe:
		return "Swipe"
	case Flick:
		return "Flick"
	}
	if t >= CustomType {
		return "Custom" + strconv.Itoa(int(t-CustomType))
	}
	panic("invalid Type")
}

func (s State) String() string {
	switch s {
	case NoGesture:
		return "NoGesture"
	case Started:
		return "Started"
	case Updated:
		return "Updated"
	case Finished:
		return "Finished"
	case Canceled:
		return "Canceled"
	default:
		panic("invalid State")
	}
}
