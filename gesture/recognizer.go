// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"strings"
	"time"

	"gioui.org/gesturekit/io/event"
)

// Recognizer is a state machine for one gesture type.
//
// Recognizers never keep per-target state of their own; everything
// needed across events lives in the Gesture returned by Create.
type Recognizer interface {
	// Create returns a fresh gesture for target, or nil if the
	// recognizer declines the target.
	Create(target event.Tag) Gesture
	// Recognize updates g from e and reports the outcome. watched
	// is the object that received e, which may be a child of the
	// gesture's target. Recognize must not retain e.
	Recognize(ctx Context, g Gesture, watched event.Tag, e event.Event) Result
	// Reset restores g to its idle state. Resetting twice is the
	// same as resetting once.
	Reset(g Gesture)
}

// Typed is implemented by recognizers of built-in gesture types.
type Typed interface {
	GestureType() Type
}

// Context is the environment of a Recognize call.
type Context interface {
	// Now returns the timestamp of the event being recognized.
	Now() time.Duration
	// StartTimer arms the single timer of g. When it expires, the
	// recognizer receives a TimerEvent for g. Starting an armed
	// timer restarts it.
	StartTimer(g Gesture, d time.Duration)
	// StopTimer disarms the timer of g, if any.
	StopTimer(g Gesture)
	// Settings returns the active thresholds.
	Settings() *Settings
}

// TouchAcceptor is implemented by targets that receive touch events
// only after opting in. Touch recognizers opt their targets in from
// Create.
type TouchAcceptor interface {
	SetAcceptTouch(accept bool)
}

// Result is the outcome of a Recognize call: exactly one verdict,
// optionally combined with hints.
type Result uint32

const (
	// Ignore reports that the event is unrelated to the gesture.
	Ignore Result = 1 << iota
	// MayBeGesture reports a possible gesture that is not yet
	// confirmed.
	MayBeGesture
	// TriggerGesture reports that the gesture started or updated.
	TriggerGesture
	// FinishGesture reports that the gesture completed.
	FinishGesture
	// CancelGesture reports that the gesture was aborted.
	CancelGesture

	verdictMask Result = 0xff
)

const (
	// ConsumeEventHint asks that the input event is not delivered
	// to its receiver.
	ConsumeEventHint Result = 0x100
)

// Verdict returns the verdict part of r.
func (r Result) Verdict() Result {
	return r & verdictMask
}

// Consume reports whether r carries ConsumeEventHint.
func (r Result) Consume() bool {
	return r&ConsumeEventHint != 0
}

// Valid reports whether r has exactly one verdict and only known
// hints.
func (r Result) Valid() bool {
	v := r.Verdict()
	if v == 0 || v&(v-1) != 0 || v > CancelGesture {
		return false
	}
	return r&^(verdictMask|ConsumeEventHint) == 0
}

func (r Result) String() string {
	var parts []string
	switch r.Verdict() {
	case Ignore:
		parts = append(parts, "Ignore")
	case MayBeGesture:
		parts = append(parts, "MayBeGesture")
	case TriggerGesture:
		parts = append(parts, "TriggerGesture")
	case FinishGesture:
		parts = append(parts, "FinishGesture")
	case CancelGesture:
		parts = append(parts, "CancelGesture")
	default:
		parts = append(parts, "Invalid")
	}
	if r.Consume() {
		parts = append(parts, "ConsumeEventHint")
	}
	return strings.Join(parts, "|")
}
