// SPDX-License-Identifier: Unlicense OR MIT

package router

import (
	"reflect"
	"testing"
	"time"

	"gioui.org/gesturekit/f32"
	"gioui.org/gesturekit/gesture"
	"gioui.org/gesturekit/gesture/flick"
	"gioui.org/gesturekit/io/event"
	"gioui.org/gesturekit/io/pointer"
	"gioui.org/gesturekit/unit"
	"gioui.org/gesturekit/widget/scroller"
)

func mouseEvent(kind pointer.Kind, at time.Duration, x, y float32) pointer.Event {
	e := pointer.Event{
		Kind:           kind,
		Source:         pointer.Mouse,
		Time:           at,
		Button:         pointer.ButtonPrimary,
		Position:       f32.Pt(x, y),
		GlobalPosition: f32.Pt(x, y),
	}
	if kind != pointer.Release {
		e.Buttons = pointer.ButtonPrimary
	}
	return e
}

// flickSetup is a scrollable list with a button inside.
type flickSetup struct {
	m       *Manager
	s       *scroller.Scroller
	list    *int
	button  *int
	handler *flick.PressDelayHandler
	delay   time.Duration
}

func newFlickSetup(t *testing.T) *flickSetup {
	f := &flickSetup{
		m:      NewManager(gesture.DefaultSettings()),
		s:      scroller.New(unit.Metric{}),
		list:   new(int),
		button: new(int),
		delay:  250 * time.Millisecond,
	}
	f.handler = flick.NewPressDelayHandler(f.m)
	r := flick.NewRecognizer(pointer.ButtonPrimary, f.handler)
	r.Attach(f.list, f.s)
	if _, err := f.m.Register(r); err != nil {
		t.Fatal(err)
	}
	f.m.SetParent(f.button, f.list)
	f.m.Grab(f.list, gesture.Flick, ScopeChildren)
	return f
}

// drag moves the pointer down from (10, 10), 10px every 10ms.
func (f *flickSetup) drag(start time.Duration, steps int) time.Duration {
	at := start
	for i := 1; i <= steps; i++ {
		at = start + time.Duration(i)*10*time.Millisecond
		f.m.Queue(f.button, mouseEvent(pointer.Move, at, 10, 10+10*float32(i)))
	}
	return at
}

func pointerKinds(evts []event.Event) []pointer.Kind {
	var kinds []pointer.Kind
	for _, e := range evts {
		if e, ok := e.(pointer.Event); ok {
			kinds = append(kinds, e.Kind)
		}
	}
	return kinds
}

func assertEventSequence(t *testing.T, got []event.Event, expected ...event.Event) {
	t.Helper()
	if len(got) == 0 && len(expected) == 0 {
		return
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected events %v, got %v", expected, got)
	}
}

func TestPressDelayRoundTrip(t *testing.T) {
	f := newFlickSetup(t)
	press := mouseEvent(pointer.Press, 0, 10, 10)
	if !f.m.Queue(f.button, press) {
		t.Fatal("press not withheld")
	}
	assertEventSequence(t, f.m.Events(f.button))
	at, ok := f.m.WakeupTime()
	if !ok || at != f.delay {
		t.Fatalf("WakeupTime = %v, %v, want %v", at, ok, f.delay)
	}
	f.m.Advance(at)
	if got := f.m.MouseGrabber(); got != f.button {
		t.Errorf("grabber after forwarded press = %v, want button", got)
	}
	release := mouseEvent(pointer.Release, time.Second, 11, 10)
	if f.m.Queue(f.button, release) {
		t.Error("release after a forwarded press consumed")
	}
	assertEventSequence(t, f.m.Events(f.button), press, release)
	assertStates(t, f.m.Events(f.list))
	if got := f.m.MouseGrabber(); got != nil {
		t.Errorf("grab kept after release: %v", got)
	}
}

func TestPressDelayEarlyRelease(t *testing.T) {
	f := newFlickSetup(t)
	press := mouseEvent(pointer.Press, 0, 10, 10)
	release := mouseEvent(pointer.Release, 50*time.Millisecond, 10, 10)
	f.m.Queue(f.button, press)
	if !f.m.Queue(f.button, release) {
		t.Error("release of a withheld press not consumed")
	}
	assertEventSequence(t, f.m.Events(f.button), press, release)
	if at, ok := f.m.WakeupTime(); ok {
		t.Errorf("pending wakeup at %v after the click", at)
	}
}

func TestPressDelayCanceledByDrag(t *testing.T) {
	f := newFlickSetup(t)
	f.m.Queue(f.button, mouseEvent(pointer.Press, 0, 10, 10))
	end := f.drag(0, 8)
	f.m.Queue(f.button, mouseEvent(pointer.Release, end+10*time.Millisecond, 10, 100))
	// Let any timer left over run.
	f.m.Advance(time.Minute)
	assertEventSequence(t, f.m.Events(f.button))
	got := gestureStates(f.m.Events(f.list))
	if len(got) < 2 || got[0] != "Flick:Started" || got[len(got)-1] != "Flick:Finished" {
		t.Errorf("list gestures = %q, want Started ... Finished", got)
	}
	if st := f.s.State(); st != flick.Scrolling {
		t.Errorf("scroller state = %v, want Scrolling", st)
	}
}

func TestPressForwardedThenDrag(t *testing.T) {
	f := newFlickSetup(t)
	f.m.Queue(f.button, mouseEvent(pointer.Press, 0, 10, 10))
	f.m.Advance(f.delay)
	end := f.drag(f.delay, 8)
	evts := f.m.Events(f.button)
	// The first move is within the drag distance and passes through.
	if got, want := pointerKinds(evts), []pointer.Kind{pointer.Press, pointer.Move, pointer.Release}; !reflect.DeepEqual(got, want) {
		t.Fatalf("button events = %v, want %v", got, want)
	}
	if pos := evts[2].(pointer.Event).Position; pos.X > -1000 || pos.Y > -1000 {
		t.Errorf("synthetic release at %v, want far away", pos)
	}
	if got := f.m.MouseGrabber(); got != f.button {
		t.Errorf("grab not restored after synthetic release: %v", got)
	}
	if !f.m.Queue(f.button, mouseEvent(pointer.Release, end+10*time.Millisecond, 10, 100)) {
		t.Error("release ending a drag not consumed")
	}
	assertEventSequence(t, f.m.Events(f.button))
	if got := f.m.MouseGrabber(); got != nil {
		t.Errorf("grab kept after the drag: %v", got)
	}
}

func TestPressForwardedThenSlowDrag(t *testing.T) {
	f := newFlickSetup(t)
	press := mouseEvent(pointer.Press, 0, 10, 10)
	f.m.Queue(f.button, press)
	f.m.Advance(f.delay)
	end := f.drag(f.delay, 8)
	// Holding still before the release leaves no velocity to fling.
	release := mouseEvent(pointer.Release, end+time.Second, 10, 90)
	if !f.m.Queue(f.button, release) {
		t.Error("release ending a drag not consumed")
	}
	if st := f.s.State(); st != flick.Inactive {
		t.Fatalf("scroller state = %v, want Inactive", st)
	}
	evts := f.m.Events(f.button)
	if got, want := pointerKinds(evts), []pointer.Kind{pointer.Press, pointer.Move, pointer.Release}; !reflect.DeepEqual(got, want) {
		t.Fatalf("button events = %v, want %v", got, want)
	}
	if pos := evts[2].(pointer.Event).Position; pos.X > -1000 || pos.Y > -1000 {
		t.Errorf("release at %v, want far away", pos)
	}
	if got := f.m.MouseGrabber(); got != nil {
		t.Fatalf("grab kept after the drag: %v", got)
	}
	other := new(int)
	next := mouseEvent(pointer.Press, end+2*time.Second, 10, 10)
	f.m.Queue(other, next)
	assertEventSequence(t, f.m.Events(other), next)
	assertEventSequence(t, f.m.Events(f.button))
}

func TestPressDelayCanceled(t *testing.T) {
	f := newFlickSetup(t)
	f.m.Queue(f.button, mouseEvent(pointer.Press, 0, 10, 10))
	cancel := mouseEvent(pointer.Cancel, 50*time.Millisecond, 10, 10)
	f.m.Queue(f.button, cancel)
	f.m.Advance(time.Second)
	assertEventSequence(t, f.m.Events(f.button), cancel)
	if f.handler.Delaying() {
		t.Error("press still withheld after cancel")
	}
	if got := f.m.MouseGrabber(); got != nil {
		t.Errorf("grab kept after cancel: %v", got)
	}
	if at, ok := f.m.WakeupTime(); ok {
		t.Errorf("pending wakeup at %v after cancel", at)
	}
}

func TestPressForwardedThenCanceled(t *testing.T) {
	f := newFlickSetup(t)
	press := mouseEvent(pointer.Press, 0, 10, 10)
	f.m.Queue(f.button, press)
	f.m.Advance(f.delay)
	cancel := mouseEvent(pointer.Cancel, 300*time.Millisecond, 10, 10)
	f.m.Queue(f.button, cancel)
	assertEventSequence(t, f.m.Events(f.button), press, cancel)
	if got := f.m.MouseGrabber(); got != nil {
		t.Errorf("grab kept after cancel: %v", got)
	}
}

func TestPressDelayUngrabbed(t *testing.T) {
	f := newFlickSetup(t)
	f.m.Queue(f.button, mouseEvent(pointer.Press, 0, 10, 10))
	f.m.Ungrab(f.list, gesture.Flick)
	f.m.Advance(time.Second)
	if f.handler.Delaying() {
		t.Fatal("press still withheld after ungrab")
	}
	assertEventSequence(t, f.m.Events(f.button))

	f.m.Grab(f.list, gesture.Flick, ScopeChildren)
	at := 2 * time.Second
	press := mouseEvent(pointer.Press, at, 10, 10)
	f.m.Queue(f.button, press)
	f.m.Advance(at + f.delay)
	move := mouseEvent(pointer.Move, at+f.delay+10*time.Millisecond, 10, 12)
	release := mouseEvent(pointer.Release, at+f.delay+20*time.Millisecond, 10, 12)
	f.m.Queue(f.button, move, release)
	assertEventSequence(t, f.m.Events(f.button), press, move, release)
	if got := f.m.MouseGrabber(); got != nil {
		t.Errorf("grab kept after release: %v", got)
	}
}

func TestMouseGrab(t *testing.T) {
	m := NewManager(gesture.DefaultSettings())
	a, b := new(int), new(int)
	press := mouseEvent(pointer.Press, 0, 0, 0)
	move := mouseEvent(pointer.Move, time.Millisecond, 5, 5)
	release := mouseEvent(pointer.Release, 2*time.Millisecond, 5, 5)
	wheel := pointer.Event{Kind: pointer.Scroll, Source: pointer.Mouse, Scroll: f32.Pt(0, 1)}
	m.Queue(a, press)
	// Moves follow the grab; wheel events do not.
	m.Queue(b, move, wheel, release)
	assertEventSequence(t, m.Events(a), press, move, release)
	assertEventSequence(t, m.Events(b), wheel)
	if m.MouseGrabber() != nil {
		t.Error("grab kept after release")
	}
	m.GrabMouse(b)
	m.Queue(a, move)
	assertEventSequence(t, m.Events(b), move)
	m.Remove(b)
	if m.MouseGrabber() != nil {
		t.Error("grab kept by removed target")
	}
}
