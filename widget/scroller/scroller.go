// SPDX-License-Identifier: Unlicense OR MIT

// Package scroller implements a kinetic scroller for the flick gesture.
// Dragging moves the content; releasing a fast drag continues the
// movement with an exponentially decaying velocity.
package scroller

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"gioui.org/gesturekit/f32"
	"gioui.org/gesturekit/gesture/flick"
	"gioui.org/gesturekit/internal/fling"
	"gioui.org/gesturekit/unit"
)

// Scroller implements flick.Scroller.
type Scroller struct {
	Props  Properties
	Metric unit.Metric
	// Offset is the scroll position. It grows when content moves
	// up or left.
	Offset f32.Point

	state     flick.ScrollerState
	press     f32.Point
	last      f32.Point
	estimator [2]fling.Extrapolation
	flinger   [2]fling.Animation
}

// Properties configure a Scroller.
type Properties struct {
	// MousePressEventDelay is how long presses are withheld from
	// their target, in seconds.
	MousePressEventDelay float32 `yaml:"mouse_press_event_delay"`
	// DragStartDistance is how far a press moves before dragging.
	DragStartDistance unit.Dp `yaml:"drag_start_distance"`
	// DecelerationFactor scales the deceleration of flings.
	DecelerationFactor float32 `yaml:"deceleration_factor"`
	// MinimumVelocity is the slowest release, per second, that
	// flings.
	MinimumVelocity unit.Dp `yaml:"minimum_velocity"`
	// MaximumVelocity caps fling velocities, per second.
	MaximumVelocity unit.Dp `yaml:"maximum_velocity"`
}

var _ flick.Scroller = (*Scroller)(nil)

// DefaultProperties returns the standard scroller properties.
func DefaultProperties() Properties {
	return Properties{
		MousePressEventDelay: 0.25,
		DragStartDistance:    10,
		DecelerationFactor:   1,
		MinimumVelocity:      50,
		MaximumVelocity:      8000,
	}
}

// ParseProperties reads YAML properties. Keys not present keep their
// default values.
func ParseProperties(data []byte) (Properties, error) {
	p := DefaultProperties()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Properties{}, fmt.Errorf("scroller: parse properties: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Properties{}, err
	}
	return p, nil
}

// Validate reports the first out of range property.
func (p *Properties) Validate() error {
	switch {
	case p.MousePressEventDelay < 0:
		return fmt.Errorf("scroller: negative mouse_press_event_delay %v", p.MousePressEventDelay)
	case p.DragStartDistance < 0:
		return fmt.Errorf("scroller: negative drag_start_distance %v", p.DragStartDistance)
	case p.DecelerationFactor <= 0:
		return fmt.Errorf("scroller: deceleration_factor %v must be positive", p.DecelerationFactor)
	case p.MinimumVelocity < 0 || p.MaximumVelocity < p.MinimumVelocity:
		return fmt.Errorf("scroller: invalid velocity range [%v, %v]", p.MinimumVelocity, p.MaximumVelocity)
	}
	return nil
}

// New returns a scroller with the default properties.
func New(m unit.Metric) *Scroller {
	return &Scroller{Props: DefaultProperties(), Metric: m}
}

func (s *Scroller) State() flick.ScrollerState {
	return s.state
}

// HandleInput implements flick.Scroller. A press stops any fling in
// progress.
func (s *Scroller) HandleInput(in flick.Input, pos f32.Point, t time.Duration) bool {
	switch in {
	case flick.InputPress:
		if s.state == flick.Pressed || s.state == flick.Dragging {
			return false
		}
		s.Stop()
		s.state = flick.Pressed
		s.press, s.last = pos, pos
		s.estimator = [2]fling.Extrapolation{}
		s.sample(t, pos)
		return true
	case flick.InputMove:
		switch s.state {
		case flick.Pressed:
			s.sample(t, pos)
			if pos.Sub(s.press).Len() <= s.px(s.Props.DragStartDistance) {
				return true
			}
			s.state = flick.Dragging
			s.drag(pos)
			return true
		case flick.Dragging:
			s.sample(t, pos)
			s.drag(pos)
			return true
		}
	case flick.InputRelease:
		switch s.state {
		case flick.Pressed:
			s.state = flick.Inactive
			return true
		case flick.Dragging:
			s.sample(t, pos)
			s.drag(pos)
			s.state = flick.Inactive
			if s.fling(t) {
				s.state = flick.Scrolling
			}
			return true
		}
	}
	return false
}

// Tick advances a fling to now and reports whether it is still in
// progress.
func (s *Scroller) Tick(now time.Duration) bool {
	if s.state != flick.Scrolling {
		return false
	}
	s.Offset.X += float32(s.flinger[0].Tick(now))
	s.Offset.Y += float32(s.flinger[1].Tick(now))
	if !s.flinger[0].Active() && !s.flinger[1].Active() {
		s.state = flick.Inactive
		return false
	}
	return true
}

// Stop any drag or fling.
func (s *Scroller) Stop() {
	s.flinger = [2]fling.Animation{}
	s.state = flick.Inactive
}

func (s *Scroller) ScrollMetric(m flick.Metric) float32 {
	switch m {
	case flick.MousePressEventDelay:
		return s.Props.MousePressEventDelay
	case flick.DragStartDistance:
		return s.px(s.Props.DragStartDistance)
	case flick.DecelerationFactor:
		return s.Props.DecelerationFactor
	case flick.MinimumVelocity:
		return s.px(s.Props.MinimumVelocity)
	case flick.MaximumVelocity:
		return s.px(s.Props.MaximumVelocity)
	}
	return 0
}

func (s *Scroller) sample(t time.Duration, p f32.Point) {
	s.estimator[0].Sample(t, p.X)
	s.estimator[1].Sample(t, p.Y)
}

func (s *Scroller) drag(pos f32.Point) {
	s.Offset = s.Offset.Add(s.last.Sub(pos))
	s.last = pos
}

// fling starts the animations from the release velocity and reports
// whether any of them started.
func (s *Scroller) fling(t time.Duration) bool {
	minV := s.px(s.Props.MinimumVelocity)
	maxV := s.px(s.Props.MaximumVelocity)
	decay := fling.DefaultDecay / s.Props.DecelerationFactor
	started := false
	for i := range s.flinger {
		// Content moves against the pointer.
		v := -s.estimator[i].Estimate().Velocity
		if s.flinger[i].StartDecay(t, v, minV, maxV, decay) {
			started = true
		}
	}
	return started
}

func (s *Scroller) px(v unit.Dp) float32 {
	return s.Metric.DpF(v)
}
