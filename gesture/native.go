// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"gioui.org/gesturekit/io/event"
	"gioui.org/gesturekit/io/native"
)

// NativePanRecognizer recognizes pans reported by the platform.
type NativePanRecognizer struct{}

// NativePinchRecognizer recognizes pinches reported by the platform.
type NativePinchRecognizer struct{}

// NativeSwipeRecognizer recognizes swipes reported by the platform.
// Platform swipes are complete on arrival and finish immediately.
type NativeSwipeRecognizer struct{}

func (r *NativePanRecognizer) GestureType() Type { return Pan }

func (r *NativePanRecognizer) Create(target event.Tag) Gesture {
	return &PanGesture{Base: Base{Type: Pan, Target: target}}
}

func (r *NativePanRecognizer) Reset(g Gesture) {
	g.(*PanGesture).reset()
}

func (r *NativePanRecognizer) Recognize(ctx Context, g Gesture, watched event.Tag, e event.Event) Result {
	p := g.(*PanGesture)
	ne, ok := e.(native.Event)
	if !ok {
		return Ignore
	}
	switch ne.Kind {
	case native.Begin:
		p.restart()
		p.StartPosition = ne.Position
		p.pressed = true
		return MayBeGesture
	case native.Pan:
		if !p.pressed {
			return Ignore
		}
		p.LastOffset = p.Offset
		p.Offset = p.Offset.Add(ne.Delta)
		p.tracker.sample(ne.Time, p.Offset)
		p.Velocity, p.Acceleration = p.tracker.velocity(ne.Time)
		p.SetHotSpot(ne.Position)
		return TriggerGesture | ConsumeEventHint
	case native.End:
		if !p.pressed {
			return Ignore
		}
		p.pressed = false
		if p.State == NoGesture {
			return CancelGesture
		}
		return FinishGesture | ConsumeEventHint
	}
	return Ignore
}

func (r *NativePinchRecognizer) GestureType() Type { return Pinch }

func (r *NativePinchRecognizer) Create(target event.Tag) Gesture {
	p := &PinchGesture{Base: Base{Type: Pinch, Target: target}}
	p.reset()
	return p
}

func (r *NativePinchRecognizer) Reset(g Gesture) {
	g.(*PinchGesture).reset()
}

func (r *NativePinchRecognizer) Recognize(ctx Context, g Gesture, watched event.Tag, e event.Event) Result {
	p := g.(*PinchGesture)
	ne, ok := e.(native.Event)
	if !ok {
		return Ignore
	}
	switch ne.Kind {
	case native.Begin:
		p.restart()
		p.StartCenterPoint = ne.Position
		p.CenterPoint = ne.Position
		p.LastCenterPoint = ne.Position
		return MayBeGesture
	case native.Zoom:
		p.ChangeFlags = ScaleFactorChanged
		p.LastScaleFactor = p.ScaleFactor
		p.ScaleFactor = 1 + ne.Value
		p.TotalScaleFactor *= p.ScaleFactor
	case native.SmartZoom:
		p.ChangeFlags = ScaleFactorChanged
		p.LastScaleFactor = p.ScaleFactor
		if p.TotalScaleFactor > 1 {
			p.ScaleFactor = 1 / p.TotalScaleFactor
		} else {
			p.ScaleFactor = 2
		}
		p.TotalScaleFactor *= p.ScaleFactor
	case native.Rotate:
		p.ChangeFlags = RotationAngleChanged
		p.LastRotationAngle = p.RotationAngle
		p.RotationAngle = normalizeAngle(p.RotationAngle + ne.Value)
		p.TotalRotationAngle += ne.Value
	case native.End:
		if p.State == NoGesture {
			return CancelGesture
		}
		return FinishGesture | ConsumeEventHint
	default:
		return Ignore
	}
	p.LastCenterPoint = p.CenterPoint
	p.CenterPoint = ne.Position
	if p.CenterPoint != p.LastCenterPoint {
		p.ChangeFlags |= CenterPointChanged
	}
	p.TotalChangeFlags |= p.ChangeFlags
	p.SetHotSpot(ne.Position)
	return TriggerGesture | ConsumeEventHint
}

func (r *NativeSwipeRecognizer) GestureType() Type { return Swipe }

func (r *NativeSwipeRecognizer) Create(target event.Tag) Gesture {
	return &SwipeGesture{Base: Base{Type: Swipe, Target: target}}
}

func (r *NativeSwipeRecognizer) Reset(g Gesture) {
	g.(*SwipeGesture).reset()
}

func (r *NativeSwipeRecognizer) Recognize(ctx Context, g Gesture, watched event.Tag, e event.Event) Result {
	s := g.(*SwipeGesture)
	ne, ok := e.(native.Event)
	if !ok || ne.Kind != native.Swipe {
		return Ignore
	}
	s.SwipeAngle = ne.Value
	s.HorizontalDirection, s.VerticalDirection = NoDirection, NoDirection
	switch ne.Value {
	case 0:
		s.HorizontalDirection = Right
	case 90:
		s.VerticalDirection = Up
	case 180:
		s.HorizontalDirection = Left
	case 270:
		s.VerticalDirection = Down
	}
	s.SetHotSpot(ne.Position)
	return FinishGesture | ConsumeEventHint
}
