// SPDX-License-Identifier: Unlicense OR MIT

package router

import (
	"time"

	"golang.org/x/exp/slices"

	"gioui.org/gesturekit/gesture"
	"gioui.org/gesturekit/io/event"
)

// result is the outcome of one Recognize call in a delivery pass.
type result struct {
	k       objectGesture
	g       gesture.Gesture
	verdict gesture.Result
}

// gestureContext implements gesture.Context for a Manager.
type gestureContext struct {
	m *Manager
}

type dueTimer struct {
	g gesture.Gesture
	timer
}

// Queue filters events received by receiver through the gestures of
// the receiver and its ancestors. Gesture events and every input
// event that no recognizer consumed are queued for their targets. Mouse
// events are redirected to the mouse grabber, if any. Queue reports
// whether any of the events was consumed.
func (m *Manager) Queue(receiver event.Tag, events ...event.Event) bool {
	consumed := false
	for _, e := range events {
		if m.queueEvent(receiver, e, true) {
			consumed = true
		}
	}
	return consumed
}

func (m *Manager) queueEvent(receiver event.Tag, e event.Event, route bool) bool {
	if te, ok := e.(event.Timed); ok && te.Timestamp() > m.now {
		m.now = te.Timestamp()
	}
	if route {
		receiver = m.pointer.route(receiver, e)
	}
	if receiver == nil {
		logger.Printf("dropping %T without receiver", e)
		return false
	}
	if m.filter(receiver, m.contexts(receiver), e) {
		return true
	}
	m.queues[receiver] = append(m.queues[receiver], e)
	m.pointer.delivered(receiver, e)
	return false
}

// contexts returns the gestures that see events received by receiver,
// in registration order. A type grabbed by several ancestors belongs
// to the nearest one.
func (m *Manager) contexts(receiver event.Tag) []objectGesture {
	var ctxs []objectGesture
	for t, n := receiver, 0; t != nil && n < maxDepth; t, n = m.parents[t], n+1 {
		for _, g := range m.grabs[t] {
			if t != receiver && g.scope != ScopeChildren {
				continue
			}
			if m.index(g.typ) == -1 {
				continue
			}
			dup := slices.ContainsFunc(ctxs, func(c objectGesture) bool {
				return c.typ == g.typ
			})
			if !dup {
				ctxs = append(ctxs, objectGesture{target: t, typ: g.typ})
			}
		}
	}
	slices.SortStableFunc(ctxs, func(a, b objectGesture) int {
		return m.index(a.typ) - m.index(b.typ)
	})
	return ctxs
}

// filter runs e through the recognizers of contexts, then delivers the
// resulting gesture changes. It reports whether e was consumed.
func (m *Manager) filter(watched event.Tag, contexts []objectGesture, e event.Event) bool {
	ctx := gestureContext{m: m}
	consume := false
	results := make([]result, 0, len(contexts))
	for _, k := range contexts {
		r := m.recognizer(k.typ)
		if r == nil {
			// Unregistered during the pass.
			continue
		}
		g := m.fetch(k, r)
		if g == nil {
			continue
		}
		res := r.Recognize(ctx, g, watched, e)
		if !res.Valid() {
			logger.Printf("%v on %v: invalid result %v for %T", k.typ, k.target, res, e)
			res = gesture.Ignore | gesture.ConsumeEventHint
		}
		if res.Consume() {
			consume = true
		}
		results = append(results, result{k: k, g: g, verdict: res.Verdict()})
	}
	m.apply(results)
	return consume
}

// apply updates gesture states from the results of a pass and delivers
// them. All recognizers have seen the event before anything is
// delivered.
func (m *Manager) apply(results []result) {
	var singleShot, delivered, started, finished, ended []result
	for _, x := range results {
		if k, ok := m.owner[x.g]; !ok || k != x.k {
			// Discarded during the pass.
			continue
		}
		b := x.g.Common()
		active := b.Active()
		switch x.verdict {
		case gesture.MayBeGesture:
			if active {
				// Falling back to a candidate ends the gesture.
				b.State = gesture.Canceled
				delivered = append(delivered, x)
				ended = append(ended, x)
			} else if _, ok := m.maybe[x.g]; !ok {
				m.maybe[x.g] = m.now + maybeTimeout
			}
		case gesture.TriggerGesture:
			delete(m.maybe, x.g)
			if active {
				b.State = gesture.Updated
			} else {
				b.State = gesture.Started
				started = append(started, x)
			}
			delivered = append(delivered, x)
		case gesture.FinishGesture:
			delete(m.maybe, x.g)
			if !active {
				// Gestures finishing without starting are
				// delivered as started first.
				singleShot = append(singleShot, x)
			}
			delivered = append(delivered, x)
			finished = append(finished, x)
			ended = append(ended, x)
		case gesture.CancelGesture:
			delete(m.maybe, x.g)
			if active {
				b.State = gesture.Canceled
				delivered = append(delivered, x)
				ended = append(ended, x)
			} else {
				m.recycle(x.k, x.g)
			}
		}
	}
	if len(singleShot) > 0 {
		for _, x := range singleShot {
			x.g.Common().State = gesture.Started
		}
		m.deliver(singleShot)
	}
	for _, x := range finished {
		x.g.Common().State = gesture.Finished
	}
	m.deliver(delivered)
	for _, x := range started {
		if x.g.Common().CancelPolicy == gesture.CancelAllInContext {
			m.cancelGesturesForChildren(x)
		}
	}
	for _, x := range ended {
		if k, ok := m.owner[x.g]; ok && k == x.k {
			m.recycle(x.k, x.g)
		}
	}
}

// cancelGesturesForChildren cancels every other active gesture on the
// target of orig and its descendants.
func (m *Manager) cancelGesturesForChildren(orig result) {
	var canceled []result
	for k, g := range m.live {
		if g == orig.g || !g.Common().Active() || !m.within(k.target, orig.k.target) {
			continue
		}
		canceled = append(canceled, result{k: k, g: g, verdict: gesture.CancelGesture})
	}
	if len(canceled) == 0 {
		return
	}
	slices.SortStableFunc(canceled, func(a, b result) int {
		return m.index(a.k.typ) - m.index(b.k.typ)
	})
	for _, x := range canceled {
		x.g.Common().State = gesture.Canceled
	}
	m.deliver(canceled)
	for _, x := range canceled {
		m.recycle(x.k, x.g)
	}
}

// deliver queues one composite gesture event per target, holding
// snapshots of the gestures in results.
func (m *Manager) deliver(results []result) {
	if len(results) == 0 {
		return
	}
	var targets []event.Tag
	byTarget := make(map[event.Tag][]gesture.Gesture)
	for _, x := range results {
		t := x.k.target
		if _, ok := byTarget[t]; !ok {
			targets = append(targets, t)
		}
		byTarget[t] = append(byTarget[t], x.g.Clone())
	}
	for _, t := range targets {
		m.queues[t] = append(m.queues[t], gesture.Event{Gestures: byTarget[t]})
	}
}

// within reports whether t is ancestor or one of its descendants.
func (m *Manager) within(t, ancestor event.Tag) bool {
	for n := 0; t != nil && n < maxDepth; t, n = m.parents[t], n+1 {
		if t == ancestor {
			return true
		}
	}
	return false
}

// Advance moves the clock to now, firing due gesture timers in
// deadline order and dropping candidates that timed out.
func (m *Manager) Advance(now time.Duration) {
	var due []dueTimer
	for g, t := range m.timers {
		if t.at <= now {
			due = append(due, dueTimer{g: g, timer: t})
		}
	}
	slices.SortFunc(due, func(a, b dueTimer) int {
		switch {
		case a.at < b.at:
			return -1
		case a.at > b.at:
			return 1
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		}
		return 0
	})
	for _, d := range due {
		if t, ok := m.timers[d.g]; !ok || t != d.timer {
			// Stopped or restarted by an earlier timer.
			continue
		}
		delete(m.timers, d.g)
		if d.at > m.now {
			m.now = d.at
		}
		k, ok := m.owner[d.g]
		if !ok {
			logger.Printf("timer for unknown gesture %v", d.g.Common().Type)
			continue
		}
		m.filter(k.target, []objectGesture{k}, gesture.TimerEvent{Time: d.at})
	}
	if now > m.now {
		m.now = now
	}
	for g, at := range m.maybe {
		if at > now {
			continue
		}
		if k, ok := m.owner[g]; ok && !g.Common().Active() {
			logger.Printf("%v on %v: candidate timed out", k.typ, k.target)
			m.recycle(k, g)
		} else {
			delete(m.maybe, g)
		}
	}
}

// WakeupTime returns the time of the next pending timer, if any.
func (m *Manager) WakeupTime() (time.Duration, bool) {
	var next time.Duration
	found := false
	for _, t := range m.timers {
		if !found || t.at < next {
			next, found = t.at, true
		}
	}
	for _, at := range m.maybe {
		if !found || at < next {
			next, found = at, true
		}
	}
	return next, found
}

func (c gestureContext) Now() time.Duration {
	return c.m.now
}

func (c gestureContext) Settings() *gesture.Settings {
	return &c.m.settings
}

func (c gestureContext) StartTimer(g gesture.Gesture, d time.Duration) {
	c.m.seq++
	c.m.timers[g] = timer{at: c.m.now + d, seq: c.m.seq}
}

func (c gestureContext) StopTimer(g gesture.Gesture) {
	delete(c.m.timers, g)
}
