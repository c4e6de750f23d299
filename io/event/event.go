// SPDX-License-Identifier: Unlicense OR MIT

// Package event contains types for event handling.
package event

import "time"

// Tag is the stable identifier for an event target.
// For a handler h, the tag is typically &h.
type Tag interface{}

// Event is the marker interface for events.
type Event interface {
	ImplementsEvent()
}

// Timed is implemented by input events that carry a timestamp.
// The timestamp is relative to an undefined, monotonic base.
type Timed interface {
	Event
	Timestamp() time.Duration
}
