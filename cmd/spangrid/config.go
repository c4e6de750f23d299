// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gioui.org/gesturekit/gesture"
	"gioui.org/gesturekit/widget/scroller"
)

// config is the file read with -config. Missing keys keep their
// defaults.
type config struct {
	Gestures gesture.Settings    `yaml:"gestures"`
	Scroller scroller.Properties `yaml:"scroller"`
	Rows     int                 `yaml:"rows"`
	Columns  int                 `yaml:"columns"`
}

func defaultConfig() config {
	return config{
		Gestures: gesture.DefaultSettings(),
		Scroller: scroller.DefaultProperties(),
		Rows:     100,
		Columns:  26,
	}
}

func parseConfig(data []byte) (config, error) {
	c := defaultConfig()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return config{}, fmt.Errorf("spangrid: parse config: %w", err)
	}
	if err := c.Gestures.Validate(); err != nil {
		return config{}, err
	}
	if err := c.Scroller.Validate(); err != nil {
		return config{}, err
	}
	if c.Rows < 1 || c.Columns < 1 {
		return config{}, fmt.Errorf("spangrid: invalid table size %dx%d", c.Rows, c.Columns)
	}
	return c, nil
}

func loadConfig(path string) (config, error) {
	if path == "" {
		return defaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return config{}, err
	}
	return parseConfig(data)
}
