// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"gioui.org/gesturekit/f32"
	"gioui.org/gesturekit/io/event"
	"gioui.org/gesturekit/io/pointer"
	"gioui.org/gesturekit/io/touch"
)

// TapRecognizer recognizes single finger taps.
type TapRecognizer struct{}

// TapAndHoldRecognizer recognizes presses held for
// Settings.TapAndHoldTimeout, from touch or mouse input.
type TapAndHoldRecognizer struct{}

func (r *TapRecognizer) GestureType() Type { return Tap }

func (r *TapRecognizer) Create(target event.Tag) Gesture {
	acceptTouch(target)
	return &TapGesture{Base: Base{Type: Tap, Target: target}}
}

func (r *TapRecognizer) Reset(g Gesture) {
	g.(*TapGesture).reset()
}

func (r *TapRecognizer) Recognize(ctx Context, g Gesture, watched event.Tag, e event.Event) Result {
	t := g.(*TapGesture)
	te, ok := e.(touch.Event)
	if !ok {
		return Ignore
	}
	switch te.Kind {
	case touch.Begin:
		if len(te.Points) == 0 {
			return Ignore
		}
		t.Position = te.Points[0].Position
		t.SetHotSpot(t.Position)
		return TriggerGesture
	case touch.Update, touch.End:
		if t.State == NoGesture || len(te.Points) != 1 {
			return CancelGesture
		}
		p := te.Points[0]
		if p.Offset().ManhattanLength() > ctx.Settings().px(ctx.Settings().TapRadius) {
			return CancelGesture
		}
		if te.Kind == touch.End {
			return FinishGesture
		}
		return TriggerGesture
	}
	return CancelGesture
}

func (r *TapAndHoldRecognizer) GestureType() Type { return TapAndHold }

func (r *TapAndHoldRecognizer) Create(target event.Tag) Gesture {
	acceptTouch(target)
	return &TapAndHoldGesture{Base: Base{Type: TapAndHold, Target: target}}
}

func (r *TapAndHoldRecognizer) Reset(g Gesture) {
	g.(*TapAndHoldGesture).reset()
}

func (r *TapAndHoldRecognizer) Recognize(ctx Context, g Gesture, watched event.Tag, e event.Event) Result {
	t := g.(*TapAndHoldGesture)
	switch e := e.(type) {
	case TimerEvent:
		if !t.armed {
			return Ignore
		}
		t.armed = false
		return FinishGesture | ConsumeEventHint
	case pointer.Event:
		switch e.Kind {
		case pointer.Press:
			return t.press(ctx, e.GlobalPosition)
		case pointer.Move:
			return t.move(ctx, e.GlobalPosition)
		case pointer.Release, pointer.Cancel:
			return t.release(ctx)
		}
	case touch.Event:
		switch e.Kind {
		case touch.Begin:
			if len(e.Points) == 0 {
				return Ignore
			}
			return t.press(ctx, e.Points[0].Position)
		case touch.Update:
			if len(e.Points) != 1 {
				return t.release(ctx)
			}
			return t.move(ctx, e.Points[0].Position)
		case touch.End, touch.Cancel:
			return t.release(ctx)
		}
	}
	return Ignore
}

func (t *TapAndHoldGesture) press(ctx Context, pos f32.Point) Result {
	t.Position = pos
	t.SetHotSpot(pos)
	t.armed = true
	ctx.StartTimer(t, ctx.Settings().TapAndHoldTimeout.std())
	return MayBeGesture
}

func (t *TapAndHoldGesture) move(ctx Context, pos f32.Point) Result {
	if !t.armed {
		return Ignore
	}
	if pos.Sub(t.Position).ManhattanLength() <= ctx.Settings().px(ctx.Settings().TapRadius) {
		return MayBeGesture
	}
	return t.release(ctx)
}

func (t *TapAndHoldGesture) release(ctx Context) Result {
	if !t.armed {
		return Ignore
	}
	t.armed = false
	ctx.StopTimer(t)
	return CancelGesture
}
