// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"gioui.org/gesturekit/unit"
)

// Settings are the thresholds used by the built-in recognizers.
// Distances are in dp and converted with Metric.
type Settings struct {
	Metric unit.Metric `yaml:"-"`

	// PanPointCount is the number of fingers a touch pan needs.
	PanPointCount int `yaml:"pan_point_count"`
	// PanTriggerDistance is how far fingers move before a touch pan
	// starts.
	PanTriggerDistance unit.Dp `yaml:"pan_trigger_distance"`
	// PanBeginDelay is how long a press must be held before a
	// press pan starts.
	PanBeginDelay Duration `yaml:"pan_begin_delay"`
	// PanBeginRadius is how far a press pan candidate may move
	// before it is canceled.
	PanBeginRadius unit.Dp `yaml:"pan_begin_radius"`
	// TapRadius bounds the movement of taps and tap-and-holds.
	TapRadius unit.Dp `yaml:"tap_radius"`
	// TapAndHoldTimeout is how long a tap must be held.
	TapAndHoldTimeout Duration `yaml:"tap_and_hold_timeout"`
	// SwipeThreshold is the mean distance three fingers travel
	// before a swipe starts.
	SwipeThreshold unit.Dp `yaml:"swipe_threshold"`
}

// Duration is a time.Duration read from Go duration strings such as
// "300ms".
type Duration time.Duration

// DefaultSettings returns the standard thresholds.
func DefaultSettings() Settings {
	return Settings{
		PanPointCount:      2,
		PanTriggerDistance: 10,
		PanBeginDelay:      Duration(300 * time.Millisecond),
		PanBeginRadius:     3,
		TapRadius:          40,
		TapAndHoldTimeout:  Duration(700 * time.Millisecond),
		SwipeThreshold:     50,
	}
}

// ParseSettings reads YAML settings. Keys not present keep their
// default values.
func ParseSettings(data []byte) (Settings, error) {
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("gesture: parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate reports the first out of range setting.
func (s *Settings) Validate() error {
	switch {
	case s.PanPointCount < 1:
		return fmt.Errorf("gesture: pan_point_count %d < 1", s.PanPointCount)
	case s.PanBeginDelay < 0:
		return fmt.Errorf("gesture: negative pan_begin_delay %v", s.PanBeginDelay)
	case s.TapAndHoldTimeout <= 0:
		return fmt.Errorf("gesture: tap_and_hold_timeout %v must be positive", s.TapAndHoldTimeout)
	case s.PanBeginRadius < 0, s.PanTriggerDistance < 0, s.TapRadius < 0, s.SwipeThreshold < 0:
		return fmt.Errorf("gesture: negative distance")
	}
	return nil
}

// px converts v with the settings' Metric.
func (s *Settings) px(v unit.Dp) float32 {
	return s.Metric.DpF(v)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var str string
	if err := value.Decode(&str); err != nil {
		return err
	}
	v, err := time.ParseDuration(str)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d Duration) std() time.Duration {
	return time.Duration(d)
}
