// SPDX-License-Identifier: Unlicense OR MIT

/*
Package unit implements device independent units.

Device independent pixel, or dp, is the unit for distances independent
of the underlying display device. Gesture thresholds such as the tap
radius are expressed in dp and converted to pixels with a Metric.
*/
package unit

import (
	"fmt"
	"math"
)

// Metric converts device independent values to pixels.
type Metric struct {
	// PxPerDp is the device dependent density. Zero means 1.
	PxPerDp float32
}

type (
	// Dp represents device independent pixels. 1 dp will
	// have the same apparent size across platforms and
	// display resolutions.
	Dp float32
)

// Dp converts v to pixels, rounded to the nearest integer value.
func (c Metric) Dp(v Dp) int {
	return int(math.Round(float64(nonZero(c.PxPerDp)) * float64(v)))
}

// DpF converts v to fractional pixels.
func (c Metric) DpF(v Dp) float32 {
	return nonZero(c.PxPerDp) * float32(v)
}

// PxToDp converts v px to dp.
func (c Metric) PxToDp(v float32) Dp {
	return Dp(v / nonZero(c.PxPerDp))
}

func (v Dp) String() string {
	return fmt.Sprintf("%gdp", float32(v))
}

func nonZero(v float32) float32 {
	if v == 0. {
		return 1
	}
	return v
}
