// SPDX-License-Identifier: Unlicense OR MIT

package flick

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"gioui.org/gesturekit/f32"
	"gioui.org/gesturekit/gesture"
	"gioui.org/gesturekit/io/event"
	"gioui.org/gesturekit/io/pointer"
)

type testContext struct {
	now      time.Duration
	settings gesture.Settings
	timers   map[gesture.Gesture]time.Duration
}

func newTestContext() *testContext {
	return &testContext{
		settings: gesture.DefaultSettings(),
		timers:   make(map[gesture.Gesture]time.Duration),
	}
}

func (c *testContext) Now() time.Duration          { return c.now }
func (c *testContext) Settings() *gesture.Settings { return &c.settings }
func (c *testContext) StopTimer(g gesture.Gesture) { delete(c.timers, g) }
func (c *testContext) StartTimer(g gesture.Gesture, d time.Duration) {
	c.timers[g] = c.now + d
}

// testScroller starts dragging after 10px and flings when released
// with fling set.
type testScroller struct {
	state   ScrollerState
	press   f32.Point
	delay   float32
	fling   bool
	stopped int
}

func (s *testScroller) State() ScrollerState { return s.state }

func (s *testScroller) HandleInput(in Input, pos f32.Point, t time.Duration) bool {
	switch in {
	case InputPress:
		s.state = Pressed
		s.press = pos
	case InputMove:
		if s.state == Pressed && pos.Sub(s.press).Len() > 10 {
			s.state = Dragging
		}
	case InputRelease:
		if s.state == Dragging && s.fling {
			s.state = Scrolling
		} else {
			s.state = Inactive
		}
	}
	return true
}

func (s *testScroller) Stop() {
	s.state = Inactive
	s.stopped++
}

func (s *testScroller) ScrollMetric(m Metric) float32 {
	if m == MousePressEventDelay {
		return s.delay
	}
	return 0
}

type delivery struct {
	Target event.Tag
	Event  event.Event
}

// testDispatcher records deliveries. A delivered press grabs the
// mouse for its target, like the router does.
type testDispatcher struct {
	delivered []delivery
	grabber   event.Tag
	onSend    func(e event.Event)
}

func (d *testDispatcher) Dispatch(target event.Tag, e event.Event) {
	d.delivered = append(d.delivered, delivery{target, e})
	if pe, ok := e.(pointer.Event); ok && pe.Kind == pointer.Press {
		d.grabber = target
	}
	if d.onSend != nil {
		d.onSend(e)
	}
}

func (d *testDispatcher) MouseGrabber() event.Tag    { return d.grabber }
func (d *testDispatcher) GrabMouse(target event.Tag) { d.grabber = target }

type fixture struct {
	ctx *testContext
	d   *testDispatcher
	s   *testScroller
	r   *Recognizer
	g   gesture.Gesture
}

func newFixture(t *testing.T, delay float32) *fixture {
	f := &fixture{
		ctx: newTestContext(),
		d:   new(testDispatcher),
		s:   &testScroller{delay: delay},
	}
	f.r = NewRecognizer(pointer.ButtonPrimary, NewPressDelayHandler(f.d))
	f.r.Attach("list", f.s)
	f.g = f.r.Create("list")
	if f.g == nil {
		t.Fatal("Create returned nil for a target with a scroller")
	}
	return f
}

func (f *fixture) step(t *testing.T, e event.Event, want gesture.Result) {
	t.Helper()
	if te, ok := e.(event.Timed); ok {
		f.ctx.now = te.Timestamp()
	}
	got := f.r.Recognize(f.ctx, f.g, "button", e)
	if got != want {
		t.Fatalf("Recognize(%v) = %v, want %v", e, got, want)
	}
	b := f.g.Common()
	switch got.Verdict() {
	case gesture.TriggerGesture:
		if b.State == gesture.NoGesture {
			b.State = gesture.Started
		} else {
			b.State = gesture.Updated
		}
	case gesture.FinishGesture, gesture.CancelGesture:
		f.r.Reset(f.g)
	}
}

func (f *fixture) fire(t *testing.T) {
	t.Helper()
	at, ok := f.ctx.timers[f.g]
	if !ok {
		t.Fatal("no timer armed")
	}
	delete(f.ctx.timers, f.g)
	f.step(t, gesture.TimerEvent{Time: at}, gesture.Ignore)
}

func mouse(kind pointer.Kind, at time.Duration, x, y float32) pointer.Event {
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

const (
	consume = gesture.ConsumeEventHint
)

func TestPressDelayTimeout(t *testing.T) {
	f := newFixture(t, 0.2)
	press := mouse(pointer.Press, 0, 10, 10)
	f.step(t, press, gesture.MayBeGesture|consume)
	if got := f.ctx.timers[f.g]; got != 200*time.Millisecond {
		t.Errorf("timer at %v, want 200ms", got)
	}
	if len(f.d.delivered) != 0 {
		t.Fatalf("press delivered before timeout: %v", f.d.delivered)
	}
	f.fire(t)
	want := []delivery{{"button", press}}
	if diff := cmp.Diff(want, f.d.delivered); diff != "" {
		t.Fatalf("deliveries mismatch (-want +got):\n%s", diff)
	}
	// The real release is not consumed and reaches the target
	// normally.
	f.step(t, mouse(pointer.Release, 300*time.Millisecond, 10, 10), gesture.CancelGesture)
	if diff := cmp.Diff(want, f.d.delivered); diff != "" {
		t.Errorf("deliveries mismatch (-want +got):\n%s", diff)
	}
}

func TestPressDelayEarlyRelease(t *testing.T) {
	f := newFixture(t, 0.2)
	press := mouse(pointer.Press, 0, 10, 10)
	release := mouse(pointer.Release, 50*time.Millisecond, 11, 10)
	f.step(t, press, gesture.MayBeGesture|consume)
	f.step(t, release, gesture.CancelGesture|consume)
	want := []delivery{{"button", press}, {"button", release}}
	if diff := cmp.Diff(want, f.d.delivered); diff != "" {
		t.Errorf("deliveries mismatch (-want +got):\n%s", diff)
	}
	if len(f.ctx.timers) != 0 {
		t.Errorf("timer still armed after release")
	}
}

func TestPressDelayScrollerClaims(t *testing.T) {
	f := newFixture(t, 0.2)
	f.s.fling = true
	f.step(t, mouse(pointer.Press, 0, 10, 10), gesture.MayBeGesture|consume)
	f.step(t, mouse(pointer.Move, 20*time.Millisecond, 12, 10), gesture.Ignore|consume)
	f.step(t, mouse(pointer.Move, 40*time.Millisecond, 40, 10), gesture.TriggerGesture|consume)
	if len(f.ctx.timers) != 0 {
		t.Errorf("timer still armed after the scroller became active")
	}
	f.step(t, mouse(pointer.Move, 60*time.Millisecond, 80, 10), gesture.TriggerGesture|consume)
	f.step(t, mouse(pointer.Release, 80*time.Millisecond, 90, 10), gesture.FinishGesture|consume)
	if len(f.d.delivered) != 0 {
		t.Errorf("target received %v, want nothing", f.d.delivered)
	}
}

func TestPressDelayDragWithoutFling(t *testing.T) {
	f := newFixture(t, 0.2)
	f.step(t, mouse(pointer.Press, 0, 10, 10), gesture.MayBeGesture|consume)
	f.step(t, mouse(pointer.Move, 40*time.Millisecond, 40, 10), gesture.TriggerGesture|consume)
	// The scroller stops on release; the release still belongs to
	// the drag.
	f.step(t, mouse(pointer.Release, 80*time.Millisecond, 40, 10), gesture.FinishGesture|consume)
	if len(f.d.delivered) != 0 {
		t.Errorf("target received %v, want nothing", f.d.delivered)
	}
}

func TestForwardedPressThenDrag(t *testing.T) {
	f := newFixture(t, 0.2)
	f.s.fling = true
	press := mouse(pointer.Press, 0, 10, 10)
	f.step(t, press, gesture.MayBeGesture|consume)
	f.fire(t)
	if f.d.grabber != "button" {
		t.Fatalf("grabber = %v, want button", f.d.grabber)
	}
	f.d.grabber = "list"
	f.step(t, mouse(pointer.Move, 300*time.Millisecond, 60, 10), gesture.TriggerGesture|consume)
	if len(f.d.delivered) != 2 {
		t.Fatalf("got %d deliveries, want press and synthetic release", len(f.d.delivered))
	}
	rel, ok := f.d.delivered[1].Event.(pointer.Event)
	if !ok || rel.Kind != pointer.Release || rel.Position != farAway {
		t.Errorf("second delivery = %v, want a release far away", f.d.delivered[1].Event)
	}
	if f.d.grabber != "list" {
		t.Errorf("grab not restored: grabber = %v", f.d.grabber)
	}
	f.step(t, mouse(pointer.Release, 350*time.Millisecond, 80, 10), gesture.FinishGesture|consume)
	if f.d.grabber != nil {
		t.Errorf("grab kept after release: grabber = %v", f.d.grabber)
	}
	if len(f.d.delivered) != 2 {
		t.Errorf("extra deliveries after release: %v", f.d.delivered[2:])
	}
}

func TestIgnoresOwnEvents(t *testing.T) {
	f := newFixture(t, 0.2)
	var nested []gesture.Result
	f.d.onSend = func(e event.Event) {
		nested = append(nested, f.r.Recognize(f.ctx, f.g, "button", e))
	}
	f.step(t, mouse(pointer.Press, 0, 10, 10), gesture.MayBeGesture|consume)
	f.step(t, mouse(pointer.Release, 10*time.Millisecond, 10, 10), gesture.CancelGesture|consume)
	want := []gesture.Result{gesture.Ignore, gesture.Ignore}
	if diff := cmp.Diff(want, nested); diff != "" {
		t.Errorf("nested results mismatch (-want +got):\n%s", diff)
	}
}

func TestNoDelay(t *testing.T) {
	f := newFixture(t, 0)
	f.step(t, mouse(pointer.Press, 0, 10, 10), gesture.MayBeGesture)
	if len(f.ctx.timers) != 0 {
		t.Error("timer armed without a press delay")
	}
	f.step(t, mouse(pointer.Release, 10*time.Millisecond, 10, 10), gesture.CancelGesture)
	if len(f.d.delivered) != 0 {
		t.Errorf("handler delivered %v without a press delay", f.d.delivered)
	}
}

func TestOtherButtonCancels(t *testing.T) {
	f := newFixture(t, 0)
	f.step(t, mouse(pointer.Press, 0, 10, 10), gesture.MayBeGesture)
	e := mouse(pointer.Press, 10*time.Millisecond, 10, 10)
	e.Button = pointer.ButtonSecondary
	e.Buttons = pointer.ButtonPrimary | pointer.ButtonSecondary
	f.step(t, e, gesture.CancelGesture)
	if f.s.stopped != 1 || f.s.state != Inactive {
		t.Errorf("scroller not stopped: stopped=%d state=%v", f.s.stopped, f.s.state)
	}
}

func TestWheelWhileScrolling(t *testing.T) {
	f := newFixture(t, 0)
	wheel := pointer.Event{Kind: pointer.Scroll, Source: pointer.Mouse, Scroll: f32.Pt(0, 3)}
	f.step(t, wheel, gesture.Ignore)
	f.s.state = Scrolling
	f.step(t, wheel, gesture.Ignore|consume)
}

func TestCreateWithoutScroller(t *testing.T) {
	r := NewRecognizer(pointer.ButtonPrimary, nil)
	if g := r.Create("plain"); g != nil {
		t.Errorf("Create = %v, want nil", g)
	}
	r.Attach("plain", new(testScroller))
	if g := r.Create("plain"); g == nil {
		t.Error("Create = nil after Attach")
	}
	r.Detach("plain")
	if r.Scroller("plain") != nil {
		t.Error("scroller still attached after Detach")
	}
}

func TestPressDelayCanceled(t *testing.T) {
	f := newFixture(t, 0.2)
	f.step(t, mouse(pointer.Press, 0, 10, 10), gesture.MayBeGesture|consume)
	f.step(t, mouse(pointer.Cancel, 50*time.Millisecond, 10, 10), gesture.CancelGesture)
	if len(f.ctx.timers) != 0 {
		t.Error("timer still armed after cancel")
	}
	if f.r.handler.Delaying() {
		t.Error("press still withheld after cancel")
	}
	if len(f.d.delivered) != 0 {
		t.Errorf("target received %v, want nothing", f.d.delivered)
	}
}

func TestOtherButtonDropsWithheldPress(t *testing.T) {
	f := newFixture(t, 0.2)
	f.step(t, mouse(pointer.Press, 0, 10, 10), gesture.MayBeGesture|consume)
	e := mouse(pointer.Press, 10*time.Millisecond, 10, 10)
	e.Button = pointer.ButtonSecondary
	e.Buttons = pointer.ButtonPrimary | pointer.ButtonSecondary
	f.step(t, e, gesture.CancelGesture)
	if len(f.ctx.timers) != 0 || f.r.handler.Delaying() {
		t.Error("press still withheld after a second button")
	}
	if len(f.d.delivered) != 0 {
		t.Errorf("target received %v, want nothing", f.d.delivered)
	}
}

func TestForwardedPressCanceled(t *testing.T) {
	f := newFixture(t, 0.2)
	press := mouse(pointer.Press, 0, 10, 10)
	f.step(t, press, gesture.MayBeGesture|consume)
	f.fire(t)
	f.step(t, mouse(pointer.Cancel, 300*time.Millisecond, 10, 10), gesture.CancelGesture)
	if f.d.grabber != nil {
		t.Errorf("grab kept after cancel: grabber = %v", f.d.grabber)
	}
	want := []delivery{{"button", press}}
	if diff := cmp.Diff(want, f.d.delivered); diff != "" {
		t.Errorf("deliveries mismatch (-want +got):\n%s", diff)
	}
}

func TestResetDropsWithheldPress(t *testing.T) {
	f := newFixture(t, 0.2)
	f.step(t, mouse(pointer.Press, 0, 10, 10), gesture.MayBeGesture|consume)
	// The owner of the gesture drops it along with its timer.
	delete(f.ctx.timers, f.g)
	f.r.Reset(f.g)
	if f.r.handler.Delaying() {
		t.Fatal("press still withheld after reset")
	}
	press := mouse(pointer.Press, time.Second, 10, 10)
	f.step(t, press, gesture.MayBeGesture|consume)
	if got := f.ctx.timers[f.g]; got != time.Second+200*time.Millisecond {
		t.Errorf("timer at %v, want 1.2s", got)
	}
	release := mouse(pointer.Release, time.Second+50*time.Millisecond, 10, 10)
	f.step(t, release, gesture.CancelGesture|consume)
	want := []delivery{{"button", press}, {"button", release}}
	if diff := cmp.Diff(want, f.d.delivered); diff != "" {
		t.Errorf("deliveries mismatch (-want +got):\n%s", diff)
	}
}

func TestForwardedPressThenSlowDrag(t *testing.T) {
	f := newFixture(t, 0.2)
	f.step(t, mouse(pointer.Press, 0, 10, 10), gesture.MayBeGesture|consume)
	f.fire(t)
	f.step(t, mouse(pointer.Move, 300*time.Millisecond, 60, 10), gesture.TriggerGesture|consume)
	if f.d.grabber != "button" {
		t.Fatalf("grabber = %v, want button", f.d.grabber)
	}
	// Without a fling the scroller is at rest once released.
	f.step(t, mouse(pointer.Release, 2*time.Second, 60, 10), gesture.FinishGesture|consume)
	if f.s.state != Inactive {
		t.Fatalf("scroller state = %v, want Inactive", f.s.state)
	}
	if f.d.grabber != nil {
		t.Errorf("grab kept after release: grabber = %v", f.d.grabber)
	}
	if len(f.d.delivered) != 2 {
		t.Errorf("got %d deliveries, want press and synthetic release", len(f.d.delivered))
	}
}

func TestSeconds(t *testing.T) {
	for _, tc := range []struct {
		v    float32
		want time.Duration
	}{
		{0, 0},
		{0.2, 200 * time.Millisecond},
		{0.25, 250 * time.Millisecond},
		{1.1, 1100 * time.Millisecond},
	} {
		if got := seconds(tc.v); got != tc.want {
			t.Errorf("seconds(%v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}
