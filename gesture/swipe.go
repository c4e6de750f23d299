// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"gioui.org/gesturekit/io/event"
	"gioui.org/gesturekit/io/touch"
)

// SwipeRecognizer recognizes three finger swipes.
type SwipeRecognizer struct{}

// Velocity smoothing factor.
const swipeSmoothing = 0.9

func (r *SwipeRecognizer) GestureType() Type { return Swipe }

func (r *SwipeRecognizer) Create(target event.Tag) Gesture {
	acceptTouch(target)
	return &SwipeGesture{Base: Base{Type: Swipe, Target: target}}
}

func (r *SwipeRecognizer) Reset(g Gesture) {
	g.(*SwipeGesture).reset()
}

func (r *SwipeRecognizer) Recognize(ctx Context, g Gesture, watched event.Tag, e event.Event) Result {
	s := g.(*SwipeGesture)
	te, ok := e.(touch.Event)
	if !ok {
		return Ignore
	}
	switch te.Kind {
	case touch.Begin:
		s.Velocity = 1
		s.lastTime = te.Time
		s.phase = swipeStarted
		return MayBeGesture
	case touch.Cancel:
		return CancelGesture
	case touch.End:
		if s.State == NoGesture {
			return CancelGesture
		}
		return FinishGesture
	}
	if te.Kind != touch.Update {
		return Ignore
	}
	switch n := len(te.Points); {
	case s.phase == swipeIdle:
		return CancelGesture
	case n > 3:
		return CancelGesture
	case n < 3:
		if s.phase == swipeThreePoints {
			for _, p := range te.Points {
				if p.State == touch.Pressed {
					return CancelGesture
				}
			}
		}
		return Ignore
	}

	pts := te.Points[:3]
	if s.phase != swipeThreePoints {
		s.phase = swipeThreePoints
		for i, p := range pts {
			s.lastPosition[i] = p.StartPosition
		}
	}
	s.SetHotSpot(pts[0].Position)

	var dx, dy float32
	for i, p := range pts {
		d := p.Position.Sub(s.lastPosition[i])
		dx += d.X
		dy += d.Y
	}
	dx, dy = dx/3, dy/3
	dist := abs(dx)
	if abs(dy) > dist {
		dist = abs(dy)
	}
	elapsed := (te.Time - s.lastTime).Seconds()
	if elapsed <= 0 {
		elapsed = 0.001
	}
	s.lastTime = te.Time
	s.Velocity = swipeSmoothing*s.Velocity + dist/float32(elapsed)
	s.SwipeAngle = pts[0].Offset().Angle()
	if s.SwipeAngle < 0 {
		s.SwipeAngle += 360
	}

	threshold := ctx.Settings().px(ctx.Settings().SwipeThreshold)
	if abs(dx) <= threshold && abs(dy) <= threshold {
		if s.State != NoGesture {
			return TriggerGesture
		}
		return MayBeGesture
	}
	for i, p := range pts {
		s.lastPosition[i] = p.Position
	}
	result := TriggerGesture
	// Small wobbles in the other axis are not a change of direction.
	changeThreshold := threshold / 8
	if abs(dy) > changeThreshold {
		dir := Up
		if dy > 0 {
			dir = Down
		}
		if s.VerticalDirection != NoDirection && s.VerticalDirection != dir {
			result = CancelGesture
		}
		s.VerticalDirection = dir
	}
	if abs(dx) > changeThreshold {
		dir := Left
		if dx > 0 {
			dir = Right
		}
		if s.HorizontalDirection != NoDirection && s.HorizontalDirection != dir {
			result = CancelGesture
		}
		s.HorizontalDirection = dir
	}
	return result
}
