// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"gioui.org/gesturekit/f32"
	"gioui.org/gesturekit/io/event"
	"gioui.org/gesturekit/io/pointer"
	"gioui.org/gesturekit/io/touch"
)

// PanRecognizer recognizes multi-finger touch pans.
type PanRecognizer struct {
	// PointCount overrides Settings.PanPointCount when positive.
	PointCount int
}

// PressPanRecognizer recognizes pans that begin by holding a press
// still for Settings.PanBeginDelay. It accepts mouse presses of the
// primary button and touch-sourced pointer events.
type PressPanRecognizer struct{}

func (r *PanRecognizer) GestureType() Type { return Pan }

func (r *PanRecognizer) Create(target event.Tag) Gesture {
	acceptTouch(target)
	return &PanGesture{Base: Base{Type: Pan, Target: target}}
}

func (r *PanRecognizer) Reset(g Gesture) {
	g.(*PanGesture).reset()
}

func (r *PanRecognizer) Recognize(ctx Context, g Gesture, watched event.Tag, e event.Event) Result {
	p := g.(*PanGesture)
	te, ok := e.(touch.Event)
	if !ok {
		return Ignore
	}
	n := r.PointCount
	if n <= 0 {
		n = ctx.Settings().PanPointCount
	}
	switch te.Kind {
	case touch.Begin:
		p.Offset, p.LastOffset = f32.Point{}, f32.Point{}
		p.tracker = tracker{}
		if len(te.Points) > 0 {
			p.StartPosition = te.Points[0].StartPosition
		}
		return MayBeGesture
	case touch.Cancel:
		return CancelGesture
	case touch.End:
		if p.State == NoGesture {
			return CancelGesture
		}
		if len(te.Points) >= n {
			p.update(ctx, te.Points[:n])
		}
		return FinishGesture
	case touch.Update:
		if len(te.Points) < n {
			if p.State == NoGesture {
				return MayBeGesture
			}
			return Ignore
		}
		p.update(ctx, te.Points[:n])
		trigger := ctx.Settings().px(ctx.Settings().PanTriggerDistance)
		if p.State != NoGesture || abs(p.Offset.X) > trigger || abs(p.Offset.Y) > trigger {
			p.SetHotSpot(te.Points[0].StartPosition)
			return TriggerGesture
		}
		return MayBeGesture
	}
	return Ignore
}

// update sets the offset to the mean finger displacement.
func (p *PanGesture) update(ctx Context, points []touch.Point) {
	var sum f32.Point
	for _, pt := range points {
		sum = sum.Add(pt.Offset())
	}
	p.LastOffset = p.Offset
	p.Offset = sum.Div(float32(len(points)))
	p.tracker.sample(ctx.Now(), p.Offset)
	p.Velocity, p.Acceleration = p.tracker.velocity(ctx.Now())
}

func (r *PressPanRecognizer) GestureType() Type { return Pan }

func (r *PressPanRecognizer) Create(target event.Tag) Gesture {
	return &PanGesture{Base: Base{Type: Pan, Target: target}}
}

func (r *PressPanRecognizer) Reset(g Gesture) {
	g.(*PanGesture).reset()
}

func (r *PressPanRecognizer) Recognize(ctx Context, g Gesture, watched event.Tag, e event.Event) Result {
	p := g.(*PanGesture)
	switch e := e.(type) {
	case TimerEvent:
		if !p.pressed || p.State != NoGesture {
			return Ignore
		}
		p.SetHotSpot(p.StartPosition)
		return TriggerGesture
	case pointer.Event:
		switch e.Kind {
		case pointer.Press:
			if e.Source == pointer.Mouse && e.Button != pointer.ButtonPrimary {
				return Ignore
			}
			p.Offset, p.LastOffset = f32.Point{}, f32.Point{}
			p.tracker = tracker{}
			p.StartPosition = e.GlobalPosition
			p.pressed = true
			p.tracker.sample(e.Time, f32.Point{})
			ctx.StartTimer(p, ctx.Settings().PanBeginDelay.std())
			return MayBeGesture
		case pointer.Move:
			if !p.pressed {
				return Ignore
			}
			offset := e.GlobalPosition.Sub(p.StartPosition)
			if p.State == NoGesture {
				if offset.Len() > ctx.Settings().px(ctx.Settings().PanBeginRadius) {
					ctx.StopTimer(p)
					p.pressed = false
					return CancelGesture
				}
				return MayBeGesture
			}
			p.LastOffset = p.Offset
			p.Offset = offset
			p.tracker.sample(e.Time, offset)
			p.Velocity, p.Acceleration = p.tracker.velocity(e.Time)
			return TriggerGesture
		case pointer.Release:
			if !p.pressed {
				return Ignore
			}
			p.pressed = false
			ctx.StopTimer(p)
			if p.State == NoGesture {
				return CancelGesture
			}
			return FinishGesture
		case pointer.Cancel:
			if !p.pressed {
				return Ignore
			}
			p.pressed = false
			ctx.StopTimer(p)
			return CancelGesture
		}
	}
	return Ignore
}

func acceptTouch(target event.Tag) {
	if t, ok := target.(TouchAcceptor); ok {
		t.SetAcceptTouch(true)
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
