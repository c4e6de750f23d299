// SPDX-License-Identifier: Unlicense OR MIT

package router

import (
	"gioui.org/gesturekit/io/event"
	"gioui.org/gesturekit/io/pointer"
)

// pointerState tracks the mouse grab. A delivered press grabs the
// mouse for its receiver until the last button is released; grabs
// can also be moved explicitly with GrabMouse.
type pointerState struct {
	grabber event.Tag
}

// route returns the receiver of e: the mouse grabber for mouse
// events other than wheel scrolls, receiver otherwise.
func (p *pointerState) route(receiver event.Tag, e event.Event) event.Tag {
	pe, ok := e.(pointer.Event)
	if !ok || pe.Source != pointer.Mouse || pe.Kind == pointer.Scroll {
		return receiver
	}
	if p.grabber != nil {
		return p.grabber
	}
	return receiver
}

// delivered updates the implicit grab after e reached receiver.
func (p *pointerState) delivered(receiver event.Tag, e event.Event) {
	pe, ok := e.(pointer.Event)
	if !ok || pe.Source != pointer.Mouse {
		return
	}
	switch pe.Kind {
	case pointer.Press:
		if p.grabber == nil {
			p.grabber = receiver
		}
	case pointer.Release:
		if pe.Buttons == 0 {
			p.grabber = nil
		}
	case pointer.Cancel:
		p.grabber = nil
	}
}

// Dispatch queues e for target as if received from the platform,
// bypassing the mouse grab. Recognizers use it to re-send input
// they withheld.
func (m *Manager) Dispatch(target event.Tag, e event.Event) {
	m.queueEvent(target, e, false)
}

// MouseGrabber returns the target holding the mouse grab, or nil.
func (m *Manager) MouseGrabber() event.Tag {
	return m.pointer.grabber
}

// GrabMouse directs mouse events to target until the grab is
// released. A nil target releases the grab.
func (m *Manager) GrabMouse(target event.Tag) {
	m.pointer.grabber = target
}
