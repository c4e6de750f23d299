// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"gioui.org/gesturekit/f32"
	"gioui.org/gesturekit/io/event"
	"gioui.org/gesturekit/io/touch"
)

// PinchRecognizer recognizes two finger pinches and rotations.
type PinchRecognizer struct{}

func (r *PinchRecognizer) GestureType() Type { return Pinch }

func (r *PinchRecognizer) Create(target event.Tag) Gesture {
	acceptTouch(target)
	p := &PinchGesture{Base: Base{Type: Pinch, Target: target}}
	p.reset()
	return p
}

func (r *PinchRecognizer) Reset(g Gesture) {
	g.(*PinchGesture).reset()
}

func (r *PinchRecognizer) Recognize(ctx Context, g Gesture, watched event.Tag, e event.Event) Result {
	p := g.(*PinchGesture)
	te, ok := e.(touch.Event)
	if !ok {
		return Ignore
	}
	switch te.Kind {
	case touch.Begin:
		return MayBeGesture
	case touch.Cancel:
		return CancelGesture
	case touch.End:
		if p.State == NoGesture {
			return CancelGesture
		}
		return FinishGesture
	case touch.Update:
		if len(te.Points) != 2 {
			p.newSequence = true
			if p.State == NoGesture {
				return Ignore
			}
			return FinishGesture
		}
		p.update(te.Points[0], te.Points[1])
		return TriggerGesture
	}
	return Ignore
}

func (p *PinchGesture) update(p1, p2 touch.Point) {
	p.ChangeFlags = 0
	p.SetHotSpot(p1.Position)

	center := f32.Centroid(p1.Position, p2.Position)
	if p.newSequence {
		p.StartCenterPoint = center
		p.LastCenterPoint = center
	} else {
		p.LastCenterPoint = p.CenterPoint
	}
	if center != p.CenterPoint {
		p.ChangeFlags |= CenterPointChanged
	}
	p.CenterPoint = center

	if p.newSequence {
		p.ScaleFactor, p.LastScaleFactor = 1, 1
	} else {
		p.LastScaleFactor = p.ScaleFactor
		last := p2.LastPosition.Sub(p1.LastPosition).Len()
		if last > 0 {
			p.ScaleFactor = p2.Position.Sub(p1.Position).Len() / last
		}
	}
	p.TotalScaleFactor *= p.ScaleFactor
	if p.ScaleFactor != 1 {
		p.ChangeFlags |= ScaleFactorChanged
	}

	angle := p2.Position.Sub(p1.Position).Angle()
	if p.newSequence {
		p.startAngle = p2.StartPosition.Sub(p1.StartPosition).Angle()
		p.LastRotationAngle = 0
	} else {
		p.LastRotationAngle = p.RotationAngle
	}
	p.RotationAngle = normalizeAngle(p.startAngle - angle)
	if d := normalizeAngle(p.RotationAngle - p.LastRotationAngle); d != 0 {
		p.TotalRotationAngle += d
		p.ChangeFlags |= RotationAngleChanged
	}

	p.TotalChangeFlags |= p.ChangeFlags
	p.newSequence = false
}

// normalizeAngle maps a to (-180, 180].
func normalizeAngle(a float32) float32 {
	for a > 180 {
		a -= 360
	}
	for a <= -180 {
		a += 360
	}
	return a
}
