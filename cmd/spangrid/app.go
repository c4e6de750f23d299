// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"image"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"gioui.org/gesturekit/f32"
	"gioui.org/gesturekit/gesture"
	"gioui.org/gesturekit/gesture/flick"
	"gioui.org/gesturekit/internal/logutil"
	"gioui.org/gesturekit/io/event"
	"gioui.org/gesturekit/io/key"
	"gioui.org/gesturekit/io/pointer"
	"gioui.org/gesturekit/io/router"
	"gioui.org/gesturekit/unit"
	"gioui.org/gesturekit/widget/scroller"
	"gioui.org/gesturekit/widget/table"
)

// Terminal cells are mapped to pixels of this size so that the
// gesture thresholds keep their meaning.
const (
	cellW = 8
	cellH = 16
)

const (
	// rowHeaderW is the width of the row number column, in cells.
	rowHeaderW = 5
	// columnW is the width of table columns, in cells.
	columnW = 10
	// frameInterval paces fling animations.
	frameInterval = 16 * time.Millisecond
)

var logger = logutil.GetLogger("[spangrid] ")

// target is an event target.
type target struct {
	name string
}

// canvas is the part of tcell.Screen used for drawing.
type canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

// app is a scrollable table with merged cells. The primary button
// flicks the table, clicks select cells and long presses merge or
// split them. The secondary button drags a selection.
type app struct {
	m      *router.Manager
	grid   *table.Grid
	view   *table.View
	scroll *scroller.Scroller

	// table receives input outside the cells, body input on
	// them.
	table, body *target

	buttons        pointer.Buttons
	anchor, cursor table.Cell
	// held is set when a long press used up the current press.
	held   bool
	status string

	width, height int
}

var (
	spanStyle     = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	headerStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	selectedStyle = tcell.StyleDefault.Reverse(true)
)

func newApp(c config) (*app, error) {
	a := &app{
		m:      router.NewManager(c.Gestures),
		grid:   table.NewGrid(c.Rows, c.Columns),
		scroll: scroller.New(unit.Metric{}),
		table:  &target{name: "table"},
		body:   &target{name: "body"},
		status: "q quits, m merges, s splits, r/R c/C insert or remove, h/H hide",
	}
	a.scroll.Props = c.Scroller
	a.view = table.NewView(a.grid, cellH, columnW*cellW)
	fr := flick.NewRecognizer(pointer.ButtonPrimary, flick.NewPressDelayHandler(a.m))
	fr.Attach(a.table, a.scroll)
	for _, r := range []gesture.Recognizer{fr, new(gesture.TapAndHoldRecognizer)} {
		if _, err := a.m.Register(r); err != nil {
			return nil, err
		}
	}
	a.m.SetParent(a.body, a.table)
	a.m.Grab(a.table, gesture.Flick, router.ScopeChildren)
	a.m.Grab(a.body, gesture.TapAndHold, router.ScopeTarget)
	return a, nil
}

// viewport returns the pixel area showing cells.
func (a *app) viewport() image.Rectangle {
	return image.Rect(rowHeaderW*cellW, cellH, a.width*cellW, max(a.height-1, 1)*cellH)
}

// offset clamps the scroll offset to the table and returns it rounded
// to whole terminal cells.
func (a *app) offset() image.Point {
	vp, size := a.viewport(), a.view.Size()
	off := &a.scroll.Offset
	off.X = min(max(off.X, 0), float32(max(size.X-vp.Dx(), 0)))
	off.Y = min(max(off.Y, 0), float32(max(size.Y-vp.Dy(), 0)))
	x, y := int(off.X+cellW/2), int(off.Y+cellH/2)
	return image.Pt(x/cellW*cellW, y/cellH*cellH)
}

// cellAt returns the cell at pixel position p.
func (a *app) cellAt(p f32.Point) (table.Cell, bool) {
	vp := a.viewport()
	pt := image.Pt(int(p.X), int(p.Y))
	if !pt.In(vp) {
		return table.Cell{}, false
	}
	return a.view.CellAt(pt.Sub(vp.Min).Add(a.offset()))
}

func (a *app) selection() table.Span {
	return a.view.SelectionRect(a.anchor, a.cursor)
}

// mouse translates a terminal mouse report into pointer events.
func (a *app) mouse(ev *tcell.EventMouse, now time.Duration) {
	x, y := ev.Position()
	pos := f32.Pt(float32(x*cellW+cellW/2), float32(y*cellH+cellH/2))
	base := pointer.Event{
		Source:         pointer.Mouse,
		Time:           now,
		Position:       pos,
		GlobalPosition: pos,
		Modifiers:      modifiers(ev.Modifiers()),
	}
	var recv event.Tag = a.table
	if image.Pt(int(pos.X), int(pos.Y)).In(a.viewport()) {
		recv = a.body
	}
	var evts []event.Event
	mask := ev.Buttons()
	if mask&(tcell.WheelUp|tcell.WheelDown) != 0 {
		e := base
		e.Kind = pointer.Scroll
		e.Buttons = a.buttons
		e.Scroll.Y = 3 * cellH
		if mask&tcell.WheelUp != 0 {
			e.Scroll.Y = -e.Scroll.Y
		}
		evts = append(evts, e)
	}
	pressed := buttons(mask)
	for _, b := range []pointer.Buttons{pointer.ButtonPrimary, pointer.ButtonSecondary, pointer.ButtonTertiary} {
		if a.buttons.Contain(b) == pressed.Contain(b) {
			continue
		}
		e := base
		e.Button = b
		if pressed.Contain(b) {
			e.Kind = pointer.Press
			a.buttons |= b
		} else {
			e.Kind = pointer.Release
			a.buttons &^= b
		}
		e.Buttons = a.buttons
		evts = append(evts, e)
	}
	if len(evts) == 0 {
		e := base
		e.Kind = pointer.Move
		e.Buttons = a.buttons
		evts = append(evts, e)
	}
	a.m.Queue(recv, evts...)
	a.process()
}

// key handles a key press and reports whether the app should quit.
func (a *app) key(ev *tcell.EventKey) bool {
	extend := ev.Modifiers()&tcell.ModShift != 0
	var err error
	switch ev.Key() {
	case tcell.KeyEsc, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		a.moveCursor(-1, 0, extend)
	case tcell.KeyDown:
		a.moveCursor(1, 0, extend)
	case tcell.KeyLeft:
		a.moveCursor(0, -1, extend)
	case tcell.KeyRight:
		a.moveCursor(0, 1, extend)
	case tcell.KeyRune:
		c := a.cursor
		switch ev.Rune() {
		case 'q':
			return true
		case 'm':
			a.merge()
		case 's':
			a.split(c)
		case 'r':
			err = a.grid.InsertRows(c.Row, 1)
		case 'R':
			if a.grid.RowCount() == 1 {
				err = fmt.Errorf("cannot remove the last row")
				break
			}
			err = a.grid.RemoveRows(c.Row, 1)
		case 'c':
			err = a.grid.InsertColumns(c.Column, 1)
		case 'C':
			if a.grid.ColumnCount() == 1 {
				err = fmt.Errorf("cannot remove the last column")
				break
			}
			err = a.grid.RemoveColumns(c.Column, 1)
		case 'h':
			a.view.Rows.SetHidden(c.Row, !a.view.Rows.Hidden(c.Row))
		case 'H':
			a.view.Columns.SetHidden(c.Column, !a.view.Columns.Hidden(c.Column))
		}
	}
	if err != nil {
		a.status = err.Error()
	}
	a.anchor, a.cursor = a.clampCell(a.anchor), a.clampCell(a.cursor)
	return false
}

func (a *app) moveCursor(dr, dc int, extend bool) {
	a.cursor = a.clampCell(table.Cell{Row: a.cursor.Row + dr, Column: a.cursor.Column + dc})
	if !extend {
		a.anchor = a.cursor
	}
}

func (a *app) clampCell(c table.Cell) table.Cell {
	c.Row = min(max(c.Row, 0), a.grid.RowCount()-1)
	c.Column = min(max(c.Column, 0), a.grid.ColumnCount()-1)
	return c
}

// merge turns the selection into a span.
func (a *app) merge() {
	sel := a.selection()
	if sel.RowSpan*sel.ColumnSpan == 1 {
		a.status = "select more than one cell to merge"
		return
	}
	a.view.SetSpan(sel.Row, sel.Column, sel.RowSpan, sel.ColumnSpan)
	a.anchor, a.cursor = sel.Anchor(), sel.Anchor()
	a.status = "merged " + spanName(sel)
	logger.Printf("merge %v", sel)
}

// split removes the span covering c.
func (a *app) split(c table.Cell) {
	sp, ok := a.view.Spans.SpanAt(c.Row, c.Column)
	if !ok {
		a.status = cellName(c) + " is not merged"
		return
	}
	a.view.SetSpan(sp.Row, sp.Column, 1, 1)
	a.status = "split " + spanName(sp)
	logger.Printf("split %v", sp)
}

// process handles the events queued by the router.
func (a *app) process() {
	for _, e := range a.m.Events(a.table) {
		if e, ok := e.(gesture.Event); ok {
			if g := e.Gesture(gesture.Flick); g != nil {
				logger.Printf("flick %v", g.Common().State)
			}
		}
	}
	for _, e := range a.m.Events(a.body) {
		switch e := e.(type) {
		case pointer.Event:
			a.handlePointer(e)
		case gesture.Event:
			g := e.Gesture(gesture.TapAndHold)
			if g != nil && g.Common().State == gesture.Finished {
				a.longPress(g.Common().HotSpot)
			}
		}
	}
}

func (a *app) handlePointer(e pointer.Event) {
	switch e.Kind {
	case pointer.Scroll:
		a.scroll.Offset = a.scroll.Offset.Add(e.Scroll)
	case pointer.Press:
		switch e.Button {
		case pointer.ButtonPrimary:
			a.held = false
		case pointer.ButtonSecondary:
			if c, ok := a.cellAt(e.Position); ok {
				a.anchor, a.cursor = c, c
			}
		}
	case pointer.Move:
		if e.Buttons.Contain(pointer.ButtonSecondary) {
			if c, ok := a.cellAt(e.Position); ok {
				a.cursor = c
			}
		}
	case pointer.Release:
		if e.Button != pointer.ButtonPrimary || a.held {
			return
		}
		// Releases canceled by a flick land outside the table.
		c, ok := a.cellAt(e.Position)
		if !ok {
			return
		}
		if !e.Modifiers.Contain(key.ModShift) {
			a.anchor = c
		}
		a.cursor = c
	}
}

// longPress splits the span at p, or merges the selection around p.
func (a *app) longPress(p f32.Point) {
	c, ok := a.cellAt(p)
	if !ok {
		return
	}
	a.held = true
	if _, ok := a.view.Spans.SpanAt(c.Row, c.Column); ok {
		a.split(c)
		return
	}
	if !a.selection().Contains(c.Row, c.Column) {
		a.anchor, a.cursor = c, c
	}
	a.merge()
}

// advance runs timers and animations up to now.
func (a *app) advance(now time.Duration) {
	a.m.Advance(now)
	a.scroll.Tick(now)
	a.process()
}

// wakeup returns when advance should run next.
func (a *app) wakeup(now time.Duration) (time.Duration, bool) {
	at, ok := a.m.WakeupTime()
	if a.scroll.State() == flick.Scrolling {
		if frame := now + frameInterval; !ok || frame < at {
			at, ok = frame, true
		}
	}
	return at, ok
}

func (a *app) draw(c canvas) {
	a.width, a.height = c.Size()
	screen := image.Rect(0, 0, a.width, a.height)
	fill(c, screen, tcell.StyleDefault, screen)
	vp := a.viewport()
	cells := image.Rect(vp.Min.X/cellW, vp.Min.Y/cellH, vp.Max.X/cellW, vp.Max.Y/cellH)
	off := a.offset()
	origin := vp.Min.Sub(off)

	cols, rows := a.view.Columns, a.view.Rows
	first, last := visible(cols, off.X, vp.Dx())
	for col := first; col <= last; col++ {
		if cols.Hidden(col) {
			continue
		}
		x := (origin.X + cols.SectionPosition(col)) / cellW
		text(c, x, 0, fit(colName(col), cols.SectionSize(col)/cellW-1), headerStyle, image.Rect(cells.Min.X, 0, cells.Max.X, 1))
	}
	top, bottom := visible(rows, off.Y, vp.Dy())
	for row := top; row <= bottom; row++ {
		if rows.Hidden(row) {
			continue
		}
		y := (origin.Y + rows.SectionPosition(row)) / cellH
		text(c, 0, y, fit(strconv.Itoa(row+1), rowHeaderW-1), headerStyle, image.Rect(0, cells.Min.Y, rowHeaderW, cells.Max.Y))
	}

	sel := a.selection()
	drawn := make(map[table.Cell]bool)
	for row := top; row <= bottom; row++ {
		for col := first; col <= last; col++ {
			if rows.Hidden(row) || cols.Hidden(col) {
				continue
			}
			sp, merged := a.view.Spans.SpanAt(row, col)
			if !merged {
				sp = table.Span{Row: row, Column: col, RowSpan: 1, ColumnSpan: 1}
			}
			if drawn[sp.Anchor()] {
				continue
			}
			drawn[sp.Anchor()] = true
			r := a.view.VisualRect(row, col).Add(origin)
			r = image.Rect(r.Min.X/cellW, r.Min.Y/cellH, r.Max.X/cellW, r.Max.Y/cellH)
			style, label := tcell.StyleDefault, cellName(sp.Anchor())
			if merged {
				style, label = spanStyle, spanName(sp)
			}
			if sel.Contains(sp.Row, sp.Column) {
				style = selectedStyle
			}
			fill(c, r, style, cells)
			for y := r.Min.Y; y < r.Max.Y; y++ {
				set(c, r.Max.X-1, y, '│', style, cells)
			}
			text(c, r.Min.X, r.Min.Y, fit(label, r.Dx()-1), style, cells)
		}
	}
	text(c, 0, a.height-1, fit(a.status, a.width), tcell.StyleDefault, screen)
}

// visible returns the range of sections of h shown in a viewport of
// length n at offset off.
func visible(h *table.Header, off, n int) (first, last int) {
	if h.Count() == 0 {
		return 0, -1
	}
	first = max(h.SectionAt(off), 0)
	last = h.SectionAt(off + n - 1)
	if last < 0 {
		last = h.Count() - 1
	}
	return first, last
}

func fill(c canvas, r image.Rectangle, style tcell.Style, clip image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			set(c, x, y, ' ', style, clip)
		}
	}
}

func text(c canvas, x, y int, s string, style tcell.Style, clip image.Rectangle) {
	for _, r := range s {
		set(c, x, y, r, style, clip)
		x += runewidth.RuneWidth(r)
	}
}

func set(c canvas, x, y int, r rune, style tcell.Style, clip image.Rectangle) {
	if image.Pt(x, y).In(clip) {
		c.SetContent(x, y, r, nil, style)
	}
}

// fit truncates s to width terminal columns.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// colName returns the spreadsheet name of column c: A to Z, then AA.
func colName(c int) string {
	name := ""
	for c++; c > 0; c = (c - 1) / 26 {
		name = string(rune('A'+(c-1)%26)) + name
	}
	return name
}

func cellName(c table.Cell) string {
	return colName(c.Column) + strconv.Itoa(c.Row+1)
}

func spanName(sp table.Span) string {
	return cellName(sp.Anchor()) + ":" + cellName(table.Cell{Row: sp.Bottom(), Column: sp.Right()})
}

func buttons(mask tcell.ButtonMask) pointer.Buttons {
	var b pointer.Buttons
	if mask&tcell.Button1 != 0 {
		b |= pointer.ButtonPrimary
	}
	if mask&tcell.Button2 != 0 {
		b |= pointer.ButtonSecondary
	}
	if mask&tcell.Button3 != 0 {
		b |= pointer.ButtonTertiary
	}
	return b
}

func modifiers(m tcell.ModMask) key.Modifiers {
	var mods key.Modifiers
	if m&tcell.ModShift != 0 {
		mods |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= key.ModSuper
	}
	return mods
}
