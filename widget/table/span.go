// SPDX-License-Identifier: Unlicense OR MIT

package table

import (
	"fmt"

	"golang.org/x/exp/slices"

	"gioui.org/gesturekit/internal/logutil"
)

// Span is a rectangle of cells merged into the anchor cell at Row,
// Column.
type Span struct {
	Row, Column         int
	RowSpan, ColumnSpan int
}

// Cell is a logical cell position.
type Cell struct {
	Row, Column int
}

// Spans is a set of non-overlapping spans over a grid. The zero value
// is an empty set over an unbounded grid.
type Spans struct {
	rows, cols int
	anchors    map[Cell]Span
	// index lists the spans covering each row, sorted by column.
	// It is rebuilt on demand after changes.
	index map[int][]Span
}

var logger = logutil.GetLogger("[table] ")

// Bottom returns the last row of s.
func (s Span) Bottom() int { return s.Row + s.RowSpan - 1 }

// Right returns the last column of s.
func (s Span) Right() int { return s.Column + s.ColumnSpan - 1 }

// Anchor returns the top-left cell of s.
func (s Span) Anchor() Cell { return Cell{Row: s.Row, Column: s.Column} }

// Contains reports whether the cell at row, col is inside s.
func (s Span) Contains(row, col int) bool {
	return s.Row <= row && row <= s.Bottom() && s.Column <= col && col <= s.Right()
}

// Overlaps reports whether s and o share a cell.
func (s Span) Overlaps(o Span) bool {
	return s.Row <= o.Bottom() && o.Row <= s.Bottom() &&
		s.Column <= o.Right() && o.Column <= s.Right()
}

// Union returns the smallest span containing s and o.
func (s Span) Union(o Span) Span {
	top, left := min(s.Row, o.Row), min(s.Column, o.Column)
	bottom, right := max(s.Bottom(), o.Bottom()), max(s.Right(), o.Right())
	return Span{Row: top, Column: left, RowSpan: bottom - top + 1, ColumnSpan: right - left + 1}
}

func (s Span) String() string {
	return fmt.Sprintf("(%d,%d)+(%d,%d)", s.Row, s.Column, s.RowSpan, s.ColumnSpan)
}

// SetBounds sets the grid size that spans are clipped to. Zero means
// unbounded. Spans outside the new bounds are clipped or removed.
func (s *Spans) SetBounds(rows, cols int) {
	s.rows, s.cols = rows, cols
	for a, sp := range s.anchors {
		c, ok := s.clip(sp)
		switch {
		case !ok || c.RowSpan*c.ColumnSpan == 1:
			delete(s.anchors, a)
		case c != sp:
			s.anchors[a] = c
		}
	}
	s.index = nil
}

// Bounds returns the grid size set by SetBounds and adjusted by row
// and column insertions and removals.
func (s *Spans) Bounds() (rows, cols int) {
	return s.rows, s.cols
}

// SetSpan merges the rowSpan by colSpan block anchored at row, col.
// A 1x1 block removes the span anchored at the cell. The new span is
// clipped to the grid and replaces every span it overlaps; the cells
// of those spans become ordinary cells.
func (s *Spans) SetSpan(row, col, rowSpan, colSpan int) {
	if row < 0 || col < 0 || rowSpan < 1 || colSpan < 1 {
		logger.Printf("SetSpan(%d, %d, %d, %d): invalid span", row, col, rowSpan, colSpan)
		return
	}
	sp, ok := s.clip(Span{Row: row, Column: col, RowSpan: rowSpan, ColumnSpan: colSpan})
	if !ok {
		logger.Printf("SetSpan(%d, %d, %d, %d): anchor outside %dx%d grid", row, col, rowSpan, colSpan, s.rows, s.cols)
		return
	}
	if s.anchors == nil {
		s.anchors = make(map[Cell]Span)
	}
	delete(s.anchors, sp.Anchor())
	s.index = nil
	if sp.RowSpan*sp.ColumnSpan == 1 {
		return
	}
	for a, o := range s.anchors {
		if o.Overlaps(sp) {
			logger.Printf("SetSpan: %v replaces overlapping span %v", sp, o)
			delete(s.anchors, a)
		}
	}
	s.anchors[sp.Anchor()] = sp
}

// RowSpan returns the row span of the span anchored at row, col, or 1
// for any other cell.
func (s *Spans) RowSpan(row, col int) int {
	if sp, ok := s.anchors[Cell{row, col}]; ok {
		return sp.RowSpan
	}
	return 1
}

// ColumnSpan returns the column span of the span anchored at row,
// col, or 1 for any other cell.
func (s *Spans) ColumnSpan(row, col int) int {
	if sp, ok := s.anchors[Cell{row, col}]; ok {
		return sp.ColumnSpan
	}
	return 1
}

// SpanAt returns the span covering the cell at row, col.
func (s *Spans) SpanAt(row, col int) (Span, bool) {
	if len(s.anchors) == 0 {
		return Span{}, false
	}
	if s.index == nil {
		s.reindex()
	}
	spans := s.index[row]
	// The last span starting at or before col is the only candidate.
	i, found := slices.BinarySearchFunc(spans, col, func(sp Span, col int) int {
		return sp.Column - col
	})
	if !found {
		i--
	}
	if i < 0 || !spans[i].Contains(row, col) {
		return Span{}, false
	}
	return spans[i], true
}

// Len returns the number of spans.
func (s *Spans) Len() int {
	return len(s.anchors)
}

// All returns the spans sorted by anchor row, then column.
func (s *Spans) All() []Span {
	all := make([]Span, 0, len(s.anchors))
	for _, sp := range s.anchors {
		all = append(all, sp)
	}
	slices.SortFunc(all, compareSpans)
	return all
}

// Clear removes all spans.
func (s *Spans) Clear() {
	s.anchors = nil
	s.index = nil
}

// InsertRows adjusts spans for n rows inserted before row at. Spans
// starting at or after at move down; spans extending past at grow.
func (s *Spans) InsertRows(at, n int) {
	if s.rows > 0 {
		s.rows += n
	}
	s.update(func(sp Span) (Span, bool) {
		sp.Row, sp.RowSpan = insertInto(sp.Row, sp.RowSpan, at, n)
		return sp, true
	})
}

// InsertColumns is like InsertRows for columns.
func (s *Spans) InsertColumns(at, n int) {
	if s.cols > 0 {
		s.cols += n
	}
	s.update(func(sp Span) (Span, bool) {
		sp.Column, sp.ColumnSpan = insertInto(sp.Column, sp.ColumnSpan, at, n)
		return sp, true
	})
}

// RemoveRows adjusts spans for the removal of n rows starting at
// row at. Spans after the removed rows move up, spans crossing them
// shrink. Spans that lose all their rows or shrink to a single cell
// are removed.
func (s *Spans) RemoveRows(at, n int) {
	if s.rows > 0 {
		s.rows = max(s.rows-n, 0)
	}
	s.update(func(sp Span) (Span, bool) {
		sp.Row, sp.RowSpan = removeFrom(sp.Row, sp.RowSpan, at, n)
		return sp, sp.RowSpan > 0
	})
}

// RemoveColumns is like RemoveRows for columns.
func (s *Spans) RemoveColumns(at, n int) {
	if s.cols > 0 {
		s.cols = max(s.cols-n, 0)
	}
	s.update(func(sp Span) (Span, bool) {
		sp.Column, sp.ColumnSpan = removeFrom(sp.Column, sp.ColumnSpan, at, n)
		return sp, sp.ColumnSpan > 0
	})
}

// CheckConsistency reports the first broken invariant: spans are at
// least two cells, inside the grid, keyed by their anchor, and do not
// overlap.
func (s *Spans) CheckConsistency() error {
	all := s.All()
	for _, sp := range all {
		if sp.Row < 0 || sp.Column < 0 || sp.RowSpan < 1 || sp.ColumnSpan < 1 || sp.RowSpan*sp.ColumnSpan == 1 {
			return fmt.Errorf("table: invalid span %v", sp)
		}
		if (s.rows > 0 && sp.Bottom() >= s.rows) || (s.cols > 0 && sp.Right() >= s.cols) {
			return fmt.Errorf("table: span %v outside %dx%d grid", sp, s.rows, s.cols)
		}
	}
	for a, sp := range s.anchors {
		if a != sp.Anchor() {
			return fmt.Errorf("table: span %v stored at %v", sp, a)
		}
	}
	// All is sorted by row, so only spans starting above the bottom of
	// a span can overlap it.
	for i, sp := range all {
		for _, o := range all[i+1:] {
			if o.Row > sp.Bottom() {
				break
			}
			if sp.Overlaps(o) {
				return fmt.Errorf("table: spans %v and %v overlap", sp, o)
			}
		}
	}
	return nil
}

// update replaces every span by f(span), dropping spans for which f
// returns false and spans reduced to a single cell.
func (s *Spans) update(f func(sp Span) (Span, bool)) {
	moved := make(map[Cell]Span, len(s.anchors))
	for _, sp := range s.anchors {
		if nsp, ok := f(sp); ok && nsp.RowSpan*nsp.ColumnSpan > 1 {
			moved[nsp.Anchor()] = nsp
		}
	}
	s.anchors = moved
	s.index = nil
}

// clip clips sp to the grid bounds. It reports false if the anchor is
// outside the grid.
func (s *Spans) clip(sp Span) (Span, bool) {
	if s.rows > 0 {
		if sp.Row >= s.rows {
			return Span{}, false
		}
		sp.RowSpan = min(sp.RowSpan, s.rows-sp.Row)
	}
	if s.cols > 0 {
		if sp.Column >= s.cols {
			return Span{}, false
		}
		sp.ColumnSpan = min(sp.ColumnSpan, s.cols-sp.Column)
	}
	return sp, true
}

func (s *Spans) reindex() {
	s.index = make(map[int][]Span)
	for _, sp := range s.All() {
		for r := sp.Row; r <= sp.Bottom(); r++ {
			s.index[r] = append(s.index[r], sp)
		}
	}
	for _, spans := range s.index {
		slices.SortFunc(spans, func(a, b Span) int { return a.Column - b.Column })
	}
}

func compareSpans(a, b Span) int {
	if a.Row != b.Row {
		return a.Row - b.Row
	}
	return a.Column - b.Column
}

// insertInto moves the interval of size indices at start to make room
// for n indices inserted before at.
func insertInto(start, size, at, n int) (int, int) {
	switch {
	case start >= at:
		return start + n, size
	case at < start+size:
		return start, size + n
	}
	return start, size
}

// removeFrom shrinks and moves the interval of size indices at start
// for the removal of the n indices starting at at. The returned size
// is zero if every index was removed.
func removeFrom(start, size, at, n int) (int, int) {
	end, removed := start+size, at+n
	before := max(min(end, at)-start, 0)
	after := max(end-max(start, removed), 0)
	switch {
	case start >= removed:
		start -= n
	case start >= at:
		start = at
	}
	return start, before + after
}
