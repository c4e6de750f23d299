// SPDX-License-Identifier: Unlicense OR MIT

/*
Package router implements the gesture Manager: it feeds input events
to gesture recognizers, arbitrates their results and queues the
resulting gesture events, along with unconsumed input, for their
targets.

Targets are event.Tags, typically pointers to widget state. Gestures
are enabled per target with Grab; SetParent declares the delivery
context chain used to find gestures grabbed by ancestors of the
receiver of an event.

A Manager is not safe for concurrent use. Recognizers may re-enter it
through Queue while it is delivering an event.
*/
package router

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slices"

	"gioui.org/gesturekit/gesture"
	"gioui.org/gesturekit/internal/logutil"
	"gioui.org/gesturekit/io/event"
)

// Manager routes events to gesture recognizers and targets.
type Manager struct {
	settings gesture.Settings

	recognizers []registration
	nextCustom  gesture.Type

	grabs    map[event.Tag][]grab
	parents  map[event.Tag]event.Tag
	policies map[objectGesture]gesture.CancelPolicy

	// live holds the state in use for each (target, type).
	live map[objectGesture]gesture.Gesture
	// pool holds recycled states, reused before calling Create.
	pool  map[objectGesture]gesture.Gesture
	owner map[gesture.Gesture]objectGesture

	// maybe maps candidate gestures to the time they are dropped
	// unless confirmed.
	maybe  map[gesture.Gesture]time.Duration
	timers map[gesture.Gesture]timer
	seq    uint64
	now    time.Duration

	queues  map[event.Tag][]event.Event
	pointer pointerState
}

// Scope determines which events a grabbed gesture sees.
type Scope uint8

const (
	// ScopeTarget handles events received by the target itself.
	ScopeTarget Scope = iota
	// ScopeChildren also handles events received by descendants
	// of the target.
	ScopeChildren
)

// ErrDuplicateType is returned when registering a second recognizer
// for a built-in gesture type.
var ErrDuplicateType = errors.New("gesture type already registered")

type registration struct {
	typ gesture.Type
	r   gesture.Recognizer
}

type grab struct {
	typ   gesture.Type
	scope Scope
}

// objectGesture identifies the gesture of one type on one target.
type objectGesture struct {
	target event.Tag
	typ    gesture.Type
}

type timer struct {
	at  time.Duration
	seq uint64
}

// maybeTimeout is how long a candidate gesture may stay unconfirmed.
const maybeTimeout = 3 * time.Second

// maxDepth bounds the delivery context chain.
const maxDepth = 1 << 10

var logger = logutil.GetLogger("[router] ")

// NewManager returns a manager using settings for its recognizers.
func NewManager(settings gesture.Settings) *Manager {
	return &Manager{
		settings:   settings,
		nextCustom: gesture.CustomType,
		grabs:      make(map[event.Tag][]grab),
		parents:    make(map[event.Tag]event.Tag),
		policies:   make(map[objectGesture]gesture.CancelPolicy),
		live:       make(map[objectGesture]gesture.Gesture),
		pool:       make(map[objectGesture]gesture.Gesture),
		owner:      make(map[gesture.Gesture]objectGesture),
		maybe:      make(map[gesture.Gesture]time.Duration),
		timers:     make(map[gesture.Gesture]timer),
		queues:     make(map[event.Tag][]event.Event),
	}
}

// Settings returns the thresholds passed to recognizers. Changes take
// effect from the next event.
func (m *Manager) Settings() *gesture.Settings {
	return &m.settings
}

// Register adds r and returns its gesture type. Recognizers
// implementing gesture.Typed get their built-in type; others are
// assigned a fresh custom type.
func (m *Manager) Register(r gesture.Recognizer) (gesture.Type, error) {
	var t gesture.Type
	if tr, ok := r.(gesture.Typed); ok {
		t = tr.GestureType()
		if m.recognizer(t) != nil {
			return 0, fmt.Errorf("router: register %v: %w", t, ErrDuplicateType)
		}
	} else {
		t = m.nextCustom
		m.nextCustom++
	}
	m.recognizers = append(m.recognizers, registration{typ: t, r: r})
	return t, nil
}

// Unregister removes the recognizer for t. Its gestures are reset and
// discarded immediately; grabs of t stay and become effective again if
// a recognizer for t is registered later.
func (m *Manager) Unregister(t gesture.Type) {
	idx := m.index(t)
	if idx == -1 {
		logger.Printf("unregister: no recognizer for %v", t)
		return
	}
	for k, g := range m.live {
		if k.typ == t {
			m.discard(k, g)
		}
	}
	for k, g := range m.pool {
		if k.typ == t {
			m.discard(k, g)
		}
	}
	m.recognizers = append(m.recognizers[:idx], m.recognizers[idx+1:]...)
}

// Grab enables gestures of type t for target.
func (m *Manager) Grab(target event.Tag, t gesture.Type, scope Scope) {
	if target == nil {
		logger.Printf("grab: nil target for %v", t)
		return
	}
	grabs := m.grabs[target]
	for i, g := range grabs {
		if g.typ == t {
			grabs[i].scope = scope
			return
		}
	}
	m.grabs[target] = append(grabs, grab{typ: t, scope: scope})
}

// Ungrab disables gestures of type t for target. A gesture in
// progress is discarded without notice.
func (m *Manager) Ungrab(target event.Tag, t gesture.Type) {
	grabs := m.grabs[target]
	for i, g := range grabs {
		if g.typ == t {
			grabs = append(grabs[:i], grabs[i+1:]...)
			break
		}
	}
	if len(grabs) == 0 {
		delete(m.grabs, target)
	} else {
		m.grabs[target] = grabs
	}
	k := objectGesture{target: target, typ: t}
	if g, ok := m.live[k]; ok {
		m.discard(k, g)
	}
	if g, ok := m.pool[k]; ok {
		m.discard(k, g)
	}
	delete(m.policies, k)
}

// SetParent makes parent the delivery context of child. A nil parent
// makes child a root. Links that would form a cycle are refused.
func (m *Manager) SetParent(child, parent event.Tag) {
	if parent == nil {
		delete(m.parents, child)
		return
	}
	for p, n := parent, 0; p != nil && n < maxDepth; p, n = m.parents[p], n+1 {
		if p == child {
			logger.Printf("set parent: %v is a descendant of %v", parent, child)
			return
		}
	}
	m.parents[child] = parent
}

// SetCancelPolicy sets the policy applied to gestures of type t on
// target, overriding the policy chosen by the recognizer.
func (m *Manager) SetCancelPolicy(target event.Tag, t gesture.Type, p gesture.CancelPolicy) {
	k := objectGesture{target: target, typ: t}
	m.policies[k] = p
	if g, ok := m.live[k]; ok {
		g.Common().CancelPolicy = p
	}
}

// Remove forgets everything about target: its gestures, grabs, queued
// events and place in the context chain. Its children become roots.
func (m *Manager) Remove(target event.Tag) {
	for k, g := range m.live {
		if k.target == target {
			m.discard(k, g)
		}
	}
	for k, g := range m.pool {
		if k.target == target {
			m.discard(k, g)
		}
	}
	for k := range m.policies {
		if k.target == target {
			delete(m.policies, k)
		}
	}
	for c, p := range m.parents {
		if p == target {
			delete(m.parents, c)
		}
	}
	delete(m.parents, target)
	delete(m.grabs, target)
	delete(m.queues, target)
	if m.pointer.grabber == target {
		m.pointer.grabber = nil
	}
}

// Events returns and clears the events queued for tag.
func (m *Manager) Events(tag event.Tag) []event.Event {
	evts := m.queues[tag]
	delete(m.queues, tag)
	return evts
}

// Recycle resets an inactive gesture and parks it for reuse by the
// next event on its target. Active gestures are left alone.
func (m *Manager) Recycle(g gesture.Gesture) {
	k, ok := m.owner[g]
	if !ok {
		logger.Printf("recycle: unknown gesture %v", g.Common().Type)
		return
	}
	if g.Common().Active() {
		logger.Printf("recycle: %v on %v is active", k.typ, k.target)
		return
	}
	m.recycle(k, g)
}

func (m *Manager) recycle(k objectGesture, g gesture.Gesture) {
	delete(m.maybe, g)
	if r := m.recognizer(k.typ); r != nil {
		r.Reset(g)
	}
	b := g.Common()
	b.State = gesture.NoGesture
	b.CancelPolicy = gesture.CancelNone
	if m.live[k] == g {
		delete(m.live, k)
	}
	m.pool[k] = g
}

// fetch returns the state for k, reusing a recycled one or creating it
// as needed. It returns nil if the recognizer declines the target.
func (m *Manager) fetch(k objectGesture, r gesture.Recognizer) gesture.Gesture {
	g, ok := m.live[k]
	if !ok {
		if g, ok = m.pool[k]; ok {
			delete(m.pool, k)
		} else {
			g = r.Create(k.target)
			if g == nil {
				return nil
			}
			b := g.Common()
			b.Type = k.typ
			b.Target = k.target
			m.owner[g] = k
		}
		m.live[k] = g
	}
	if p, ok := m.policies[k]; ok {
		g.Common().CancelPolicy = p
	}
	return g
}

// discard resets g and drops every reference to it held by the
// manager, including its timer.
func (m *Manager) discard(k objectGesture, g gesture.Gesture) {
	if r := m.recognizer(k.typ); r != nil {
		r.Reset(g)
	}
	if m.live[k] == g {
		delete(m.live, k)
	}
	if m.pool[k] == g {
		delete(m.pool, k)
	}
	delete(m.owner, g)
	delete(m.maybe, g)
	delete(m.timers, g)
}

func (m *Manager) index(t gesture.Type) int {
	return slices.IndexFunc(m.recognizers, func(r registration) bool {
		return r.typ == t
	})
}

func (m *Manager) recognizer(t gesture.Type) gesture.Recognizer {
	if i := m.index(t); i != -1 {
		return m.recognizers[i].r
	}
	return nil
}
