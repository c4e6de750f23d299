// SPDX-License-Identifier: Unlicense OR MIT

/*
Package flick implements the flick gesture: a drag or kinetic scroll
driven by an external Scroller.

A Scroller has to see presses to decide whether they start a drag,
but a press claimed by a drag must never reach the widget below as a
click. The PressDelayHandler bridges the two by withholding presses
until the Scroller decides, or a timeout expires.
*/
package flick

import (
	"math"
	"time"

	"gioui.org/gesturekit/f32"
	"gioui.org/gesturekit/gesture"
	"gioui.org/gesturekit/io/event"
	"gioui.org/gesturekit/io/pointer"
	"gioui.org/gesturekit/io/touch"
)

// Gesture is the state of a flick.
type Gesture struct {
	gesture.Base
	// Scroller is the scroller attached to Receiver.
	Scroller Scroller
	Receiver event.Tag
}

// Recognizer recognizes flicks for targets with an attached Scroller.
type Recognizer struct {
	// Button is the mouse button that drags. A zero Button makes
	// the recognizer follow touch input instead.
	Button pointer.Buttons

	handler   *PressDelayHandler
	scrollers map[event.Tag]Scroller
}

// NewRecognizer returns a recognizer for button. A nil handler
// disables press delays.
func NewRecognizer(button pointer.Buttons, h *PressDelayHandler) *Recognizer {
	return &Recognizer{
		Button:    button,
		handler:   h,
		scrollers: make(map[event.Tag]Scroller),
	}
}

func (g *Gesture) Clone() gesture.Gesture {
	c := *g
	return &c
}

// Attach makes s the scroller of target.
func (r *Recognizer) Attach(target event.Tag, s Scroller) {
	r.scrollers[target] = s
}

// Detach removes the scroller of target. Gestures already created for
// target keep their scroller until they are discarded.
func (r *Recognizer) Detach(target event.Tag) {
	delete(r.scrollers, target)
}

// Scroller returns the scroller attached to target, or nil.
func (r *Recognizer) Scroller(target event.Tag) Scroller {
	return r.scrollers[target]
}

func (r *Recognizer) GestureType() gesture.Type { return gesture.Flick }

func (r *Recognizer) Create(target event.Tag) gesture.Gesture {
	s := r.scrollers[target]
	if s == nil {
		return nil
	}
	if r.Button == 0 {
		if t, ok := target.(gesture.TouchAcceptor); ok {
			t.SetAcceptTouch(true)
		}
	}
	return &Gesture{
		Base:     gesture.Base{Type: gesture.Flick, Target: target},
		Scroller: s,
		Receiver: target,
	}
}

func (r *Recognizer) Reset(g gesture.Gesture) {
	if r.handler != nil {
		r.handler.reset(g)
	}
	g.Common().Reset()
}

func (r *Recognizer) Recognize(ctx gesture.Context, gs gesture.Gesture, watched event.Tag, e event.Event) gesture.Result {
	g := gs.(*Gesture)
	s := g.Scroller
	if s == nil {
		return gesture.Ignore
	}
	if r.handler != nil && r.handler.ShouldIgnore() {
		return gesture.Ignore
	}
	var (
		in      Input
		pos     f32.Point
		isMouse bool
	)
	switch e := e.(type) {
	case gesture.TimerEvent:
		if r.handler != nil {
			r.handler.timeout(g)
		}
		return gesture.Ignore
	case pointer.Event:
		switch e.Kind {
		case pointer.Scroll, pointer.DoubleClick:
			// Wheel and double clicks are swallowed while the
			// scroller is busy.
			if s.State() != Inactive {
				return gesture.Ignore | gesture.ConsumeEventHint
			}
			return gesture.Ignore
		}
		if r.Button == 0 || e.Source != pointer.Mouse {
			return gesture.Ignore
		}
		isMouse = true
		pos = e.GlobalPosition
		switch e.Kind {
		case pointer.Press:
			if e.Button != r.Button || e.Buttons != r.Button {
				return r.cancel(ctx, g)
			}
			in = InputPress
		case pointer.Release:
			if e.Button == r.Button {
				in = InputRelease
			}
		case pointer.Move:
			if e.Buttons == r.Button {
				in = InputMove
			}
		case pointer.Cancel:
			return r.cancel(ctx, g)
		}
	case touch.Event:
		if r.Button != 0 || len(e.Points) == 0 {
			return gesture.Ignore
		}
		pos = e.Points[0].Position
		switch e.Kind {
		case touch.Begin:
			in = InputPress
		case touch.Update:
			in = InputMove
		case touch.End:
			in = InputRelease
		case touch.Cancel:
			return r.cancel(ctx, g)
		}
	default:
		return gesture.Ignore
	}
	if in == 0 {
		return gesture.Ignore
	}

	wasActive := s.State().Active()
	s.HandleInput(in, pos, ctx.Now())
	isActive := s.State().Active()

	var result gesture.Result
	// Mouse events belong to the scroller while it is busy.
	if isMouse && (wasActive || isActive) {
		result |= gesture.ConsumeEventHint
	}
	if !wasActive && isActive && r.handler != nil {
		r.handler.scrollerBecameActive(ctx)
	}

	switch in {
	case InputPress:
		if isMouse && r.handler != nil && s.State() == Pressed {
			if delay := s.ScrollMetric(MousePressEventDelay); delay > 0 {
				target := watched
				if target == nil {
					target = g.Receiver
				}
				result |= r.handler.pressed(ctx, g, target, e, r.Button, seconds(delay))
			}
		}
		g.SetHotSpot(pos)
		if isActive {
			return result | gesture.TriggerGesture
		}
		return result | gesture.MayBeGesture
	case InputMove:
		if isMouse && r.handler != nil && r.handler.Delaying() {
			result |= gesture.ConsumeEventHint
		}
		if isActive {
			return result | gesture.TriggerGesture
		}
		return result | gesture.Ignore
	default:
		if isMouse && r.handler != nil {
			result |= r.handler.released(ctx, e, isActive)
		}
		if isActive || g.Active() {
			return result | gesture.FinishGesture
		}
		return result | gesture.CancelGesture
	}
}

func (r *Recognizer) cancel(ctx gesture.Context, g *Gesture) gesture.Result {
	g.Scroller.Stop()
	if r.handler != nil {
		r.handler.canceled(ctx, g)
	}
	return gesture.CancelGesture
}

// seconds converts v to a duration rounded to the microsecond, hiding
// the float32 representation error.
func seconds(v float32) time.Duration {
	return time.Duration(math.Round(float64(v)*1e6)) * time.Microsecond
}
