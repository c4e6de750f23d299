// SPDX-License-Identifier: Unlicense OR MIT

package table

import (
	"image"
)

// View maps the cells of a model to pixel rectangles, merging the
// cells of spans.
type View struct {
	Rows    *Header
	Columns *Header
	Spans   Spans

	model Model
}

// NewView returns a view of m with sections of the given sizes. If m
// is a Grid, the view follows its changes until Close.
func NewView(m Model, rowSize, colSize int) *View {
	v := &View{
		Rows:    NewHeader(m.RowCount(), rowSize),
		Columns: NewHeader(m.ColumnCount(), colSize),
		model:   m,
	}
	v.Spans.SetBounds(m.RowCount(), m.ColumnCount())
	if g, ok := m.(*Grid); ok {
		g.Observe(v)
	}
	return v
}

// Close stops following the model.
func (v *View) Close() {
	if g, ok := v.model.(*Grid); ok {
		g.Unobserve(v)
	}
}

// Model returns the model of v.
func (v *View) Model() Model {
	return v.model
}

// SetSpan merges cells; see Spans.SetSpan.
func (v *View) SetSpan(row, col, rowSpan, colSpan int) {
	v.Spans.SetSpan(row, col, rowSpan, colSpan)
}

// Size returns the size of the visible table.
func (v *View) Size() image.Point {
	return image.Pt(v.Columns.Length(), v.Rows.Length())
}

// VisualRect returns the rectangle of the cell at row, col. For a
// cell inside a span it is the rectangle of the whole span. Hidden
// sections take no space, so the rectangle of a cell outside spans in
// a hidden row or column is empty.
func (v *View) VisualRect(row, col int) image.Rectangle {
	if row < 0 || row >= v.Rows.Count() || col < 0 || col >= v.Columns.Count() {
		return image.Rectangle{}
	}
	sp, ok := v.Spans.SpanAt(row, col)
	if !ok {
		sp = Span{Row: row, Column: col, RowSpan: 1, ColumnSpan: 1}
	}
	x := v.Columns.SectionPosition(sp.Column)
	y := v.Rows.SectionPosition(sp.Row)
	w := v.Columns.SpanSize(sp.Column, sp.ColumnSpan)
	h := v.Rows.SpanSize(sp.Row, sp.RowSpan)
	return image.Rect(x, y, x+w, y+h)
}

// CellAt returns the cell at p. A position inside a span resolves to
// the span anchor.
func (v *View) CellAt(p image.Point) (Cell, bool) {
	row, col := v.Rows.SectionAt(p.Y), v.Columns.SectionAt(p.X)
	if row < 0 || col < 0 {
		return Cell{}, false
	}
	if sp, ok := v.Spans.SpanAt(row, col); ok {
		return sp.Anchor(), true
	}
	return Cell{Row: row, Column: col}, true
}

// SelectionRect returns the smallest block of cells containing from
// and to that no span crosses.
func (v *View) SelectionRect(from, to Cell) Span {
	sel := Span{Row: from.Row, Column: from.Column, RowSpan: 1, ColumnSpan: 1}
	sel = sel.Union(Span{Row: to.Row, Column: to.Column, RowSpan: 1, ColumnSpan: 1})
	for {
		grown := sel
		for _, sp := range v.Spans.All() {
			if sp.Overlaps(grown) {
				grown = grown.Union(sp)
			}
		}
		if grown == sel {
			return sel
		}
		sel = grown
	}
}

func (v *View) RowsInserted(at, n int) {
	v.Rows.InsertSections(at, n)
	v.Spans.InsertRows(at, n)
}

func (v *View) RowsRemoved(at, n int) {
	v.Rows.RemoveSections(at, n)
	v.Spans.RemoveRows(at, n)
}

func (v *View) ColumnsInserted(at, n int) {
	v.Columns.InsertSections(at, n)
	v.Spans.InsertColumns(at, n)
}

func (v *View) ColumnsRemoved(at, n int) {
	v.Columns.RemoveSections(at, n)
	v.Spans.RemoveColumns(at, n)
}
