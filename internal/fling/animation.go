// SPDX-License-Identifier: Unlicense OR MIT

package fling

import (
	"math"
	"time"
)

// Animation decelerates a fling exponentially from its
// initial velocity.
type Animation struct {
	// Current offset.
	x float32
	// Initial time.
	t0 time.Duration
	// Initial velocity in units per second.
	v0 float32
	// Time constant of the decay.
	tau float32
}

const (
	// Velocities below this many units per second end
	// the animation.
	thresholdVelocity = 1
	// DefaultDecay is the default time constant of the
	// decay, in seconds.
	DefaultDecay = 0.325
)

// Start a fling given a starting velocity and the velocity range
// in units per second. Returns whether a fling was started.
func (f *Animation) Start(now time.Duration, velocity, minVelocity, maxVelocity float32) bool {
	return f.StartDecay(now, velocity, minVelocity, maxVelocity, DefaultDecay)
}

// StartDecay is like Start with a custom time constant. Larger
// constants decelerate slower.
func (f *Animation) StartDecay(now time.Duration, velocity, minVelocity, maxVelocity, decay float32) bool {
	if decay <= 0 {
		decay = DefaultDecay
	}
	v := velocity
	if -minVelocity <= v && v <= minVelocity {
		*f = Animation{}
		return false
	}
	if maxVelocity > 0 {
		if v > maxVelocity {
			v = maxVelocity
		} else if v < -maxVelocity {
			v = -maxVelocity
		}
	}
	f.t0 = now
	f.v0 = v
	f.x = 0
	f.tau = decay
	return true
}

// Active reports whether the animation is in progress.
func (f *Animation) Active() bool {
	return f.v0 != 0
}

// Velocity returns the current velocity.
func (f *Animation) Velocity(now time.Duration) float32 {
	if !f.Active() {
		return 0
	}
	t := float32((now - f.t0).Seconds())
	return f.v0 * float32(math.Exp(float64(-t/f.tau)))
}

// Tick computes and returns the distance travelled since
// the last time Tick was called.
func (f *Animation) Tick(now time.Duration) int {
	if !f.Active() {
		return 0
	}
	t := float32((now - f.t0).Seconds())
	decay := float32(math.Exp(float64(-t / f.tau)))
	x := f.v0 * f.tau * (1 - decay)
	idist := int(x - f.x)
	f.x += float32(idist)
	if v := f.v0 * decay; -thresholdVelocity < v && v < thresholdVelocity {
		*f = Animation{}
	}
	return idist
}
