// SPDX-License-Identifier: Unlicense OR MIT

package flick

import (
	"time"

	"gioui.org/gesturekit/f32"
	"gioui.org/gesturekit/gesture"
	"gioui.org/gesturekit/internal/logutil"
	"gioui.org/gesturekit/io/event"
	"gioui.org/gesturekit/io/pointer"
)

// Dispatcher delivers events on behalf of a PressDelayHandler.
type Dispatcher interface {
	// Dispatch delivers e to target as if it came from the
	// platform.
	Dispatch(target event.Tag, e event.Event)
	// MouseGrabber returns the target holding the mouse grab,
	// or nil.
	MouseGrabber() event.Tag
	// GrabMouse moves the mouse grab to target. A nil target
	// releases the grab.
	GrabMouse(target event.Tag)
}

// PressDelayHandler withholds a press from its target until it is
// known whether a scroller claims the input. Each press ends up in
// exactly one of three ways: never delivered (the scroller claimed
// it), delivered and followed by the real release, or delivered and
// followed by a synthetic release far outside the target.
//
// At most one press is delayed at a time. All recognizers sharing a
// Dispatcher must share one handler.
type PressDelayHandler struct {
	d Dispatcher

	// pending is the withheld press, nil when idle or forwarded.
	pending event.Event
	// owner is the gesture that withheld the press.
	owner gesture.Gesture
	// timer is the gesture whose timer resumes the pending press.
	timer gesture.Gesture
	// target receives the press. Non-nil with a nil pending
	// means the press was forwarded.
	target event.Tag
	button pointer.Buttons
	// faked is set once a synthetic release ended the forwarded
	// press. The target keeps the grab until the real release.
	faked bool
	// sending is set while the handler dispatches its own events.
	sending bool
}

type sendFlags uint8

const (
	ungrabBefore sendFlags = 1 << iota
	regrabAfter
)

// farAway is outside any reasonable target.
var farAway = f32.Pt(-(1<<24 - 1), -(1<<24 - 1))

var logger = logutil.GetLogger("[flick] ")

// NewPressDelayHandler returns a handler delivering through d.
func NewPressDelayHandler(d Dispatcher) *PressDelayHandler {
	return &PressDelayHandler{d: d}
}

// ShouldIgnore reports whether the event being filtered was sent by
// the handler itself.
func (h *PressDelayHandler) ShouldIgnore() bool {
	return h.sending
}

// Delaying reports whether a press is being withheld.
func (h *PressDelayHandler) Delaying() bool {
	return h.pending != nil
}

// pressed withholds e from target and arms the timer of g.
func (h *PressDelayHandler) pressed(ctx gesture.Context, g gesture.Gesture, target event.Tag, e event.Event, button pointer.Buttons, delay time.Duration) gesture.Result {
	if h.pending != nil {
		return 0
	}
	h.pending = e
	h.target = target
	h.button = button
	h.owner = g
	h.timer = g
	h.faked = false
	ctx.StartTimer(g, delay)
	logger.Printf("delaying press for %v on %v", delay, target)
	return gesture.ConsumeEventHint
}

// timeout resumes a withheld press by delivering it. It reports
// whether g owned the timer.
func (h *PressDelayHandler) timeout(g gesture.Gesture) bool {
	if h.timer != g {
		return false
	}
	h.timer = nil
	if h.pending != nil && h.target != nil {
		logger.Printf("timeout: re-sending press to %v", h.target)
		h.send(h.pending, ungrabBefore)
	}
	h.pending = nil
	return true
}

// released resolves the press on release of the button.
func (h *PressDelayHandler) released(ctx gesture.Context, e event.Event, scrollerIsActive bool) gesture.Result {
	h.stopTimer(ctx)
	var result gesture.Result
	switch {
	case h.pending != nil && h.target != nil && !scrollerIsActive:
		// The press was never sent; deliver the whole click now.
		logger.Printf("release: re-sending press and release to %v", h.target)
		h.send(h.pending, ungrabBefore)
		h.send(e, 0)
		result = gesture.ConsumeEventHint
	case h.target != nil && (scrollerIsActive || h.faked):
		// The grab taken when the scroller became active ends here,
		// even if the scroller has already come to rest.
		h.send(nil, ungrabBefore)
	}
	h.clear()
	return result
}

// canceled resolves the press of g when its input sequence is
// canceled. A withheld press is dropped; a forwarded one loses its
// grab.
func (h *PressDelayHandler) canceled(ctx gesture.Context, g gesture.Gesture) {
	if h.owner != g {
		return
	}
	h.stopTimer(ctx)
	switch {
	case h.pending != nil:
		logger.Printf("cancel: dropping press for %v", h.target)
	case h.target != nil:
		logger.Printf("cancel: releasing grab of %v", h.target)
		h.send(nil, ungrabBefore)
	}
	h.clear()
}

// reset drops the press withheld by g, if any. The caller owns the
// timer of g. A press already forwarded is left to its release.
func (h *PressDelayHandler) reset(g gesture.Gesture) {
	if h.timer != g || h.pending == nil {
		return
	}
	logger.Printf("reset: dropping press for %v", h.target)
	h.timer = nil
	h.clear()
}

func (h *PressDelayHandler) clear() {
	h.pending = nil
	h.target = nil
	h.owner = nil
	h.faked = false
}

// scrollerBecameActive resolves the press when the scroller claims
// the input.
func (h *PressDelayHandler) scrollerBecameActive(ctx gesture.Context) {
	switch {
	case h.pending != nil:
		logger.Printf("scroller active: dropping press for %v", h.target)
		h.stopTimer(ctx)
		h.clear()
	case h.target != nil:
		// The press already reached the target; end it outside
		// the target so it doesn't count as a click. The target is
		// kept so the grab can be released on release.
		logger.Printf("scroller active: faking release for %v", h.target)
		h.send(pointer.Event{
			Kind:           pointer.Release,
			Source:         pointer.Mouse,
			Time:           ctx.Now(),
			Button:         h.button,
			Position:       farAway,
			GlobalPosition: farAway,
		}, regrabAfter)
		h.faked = true
	}
}

func (h *PressDelayHandler) stopTimer(ctx gesture.Context) {
	if h.timer != nil {
		ctx.StopTimer(h.timer)
		h.timer = nil
	}
}

func (h *PressDelayHandler) send(e event.Event, flags sendFlags) {
	if h.target == nil {
		return
	}
	h.sending = true
	defer func() { h.sending = false }()
	grabber := h.d.MouseGrabber()
	if grabber != nil && flags&ungrabBefore != 0 {
		h.d.GrabMouse(nil)
		grabber = nil
	}
	if e != nil {
		h.d.Dispatch(h.target, e)
	}
	if grabber != nil && flags&regrabAfter != 0 {
		h.d.GrabMouse(grabber)
	}
}
