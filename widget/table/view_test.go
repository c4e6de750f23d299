// SPDX-License-Identifier: Unlicense OR MIT

package table

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHeader(t *testing.T) {
	h := NewHeader(4, 10)
	h.SetSectionSize(2, 30)
	h.SetHidden(1, true)
	if got := h.Length(); got != 50 {
		t.Errorf("Length() = %d, want 50", got)
	}
	var pos []int
	for i := 0; i < h.Count(); i++ {
		pos = append(pos, h.SectionPosition(i))
	}
	if diff := cmp.Diff([]int{0, 10, 10, 40}, pos); diff != "" {
		t.Errorf("positions (-want +got):\n%s", diff)
	}
	tests := []struct {
		pos, section int
	}{
		{-1, -1}, {0, 0}, {9, 0}, {10, 2}, {39, 2}, {40, 3}, {49, 3}, {50, -1},
	}
	for _, test := range tests {
		if got := h.SectionAt(test.pos); got != test.section {
			t.Errorf("SectionAt(%d) = %d, want %d", test.pos, got, test.section)
		}
	}
	if got := h.SpanSize(0, 3); got != 40 {
		t.Errorf("SpanSize(0, 3) = %d, want 40", got)
	}
	h.InsertSections(1, 2)
	h.RemoveSections(0, 1)
	// Sections: 10, 10, hidden 10, 30, 10.
	if got, want := h.Count(), 5; got != want {
		t.Errorf("Count() = %d, want %d", got, want)
	}
	if got := h.Length(); got != 60 {
		t.Errorf("Length() = %d, want 60", got)
	}
	if !h.Hidden(2) || h.SectionSize(3) != 30 {
		t.Error("sections did not move")
	}
}

func TestGridErrors(t *testing.T) {
	g := NewGrid(3, 3)
	for _, err := range []error{
		g.InsertRows(4, 1),
		g.InsertColumns(0, 0),
		g.RemoveRows(2, 2),
		g.RemoveColumns(-1, 1),
	} {
		if err == nil {
			t.Error("bad range accepted")
		}
	}
	if g.RowCount() != 3 || g.ColumnCount() != 3 {
		t.Errorf("grid changed to %dx%d", g.RowCount(), g.ColumnCount())
	}
}

func TestViewScenario(t *testing.T) {
	v := NewView(NewGrid(4, 4), 10, 20)
	v.SetSpan(1, 1, 2, 1)
	if got := v.Spans.RowSpan(1, 1); got != 2 {
		t.Errorf("RowSpan(1, 1) = %d, want 2", got)
	}
	if got := v.Spans.ColumnSpan(1, 1); got != 1 {
		t.Errorf("ColumnSpan(1, 1) = %d, want 1", got)
	}
	if got := v.Spans.RowSpan(2, 1); got != 1 {
		t.Errorf("RowSpan(2, 1) = %d, want 1", got)
	}
	if got, want := v.VisualRect(2, 1), image.Rect(20, 10, 40, 30); got != want {
		t.Errorf("VisualRect(2, 1) = %v, want %v", got, want)
	}
	v.Rows.SetHidden(1, true)
	for c := 0; c < 4; c++ {
		r1, r3 := v.VisualRect(1, c), v.VisualRect(3, c)
		if r1.Overlaps(r3) {
			t.Errorf("column %d: row 1 %v overlaps row 3 %v", c, r1, r3)
		}
	}
	if got, want := v.VisualRect(1, 1), image.Rect(20, 10, 40, 20); got != want {
		t.Errorf("VisualRect(1, 1) = %v, want %v", got, want)
	}
	if got := v.VisualRect(1, 0); !got.Empty() {
		t.Errorf("VisualRect(1, 0) = %v, want empty", got)
	}
}

func TestCellAt(t *testing.T) {
	v := NewView(NewGrid(4, 4), 10, 20)
	v.SetSpan(1, 1, 2, 2)
	tests := []struct {
		p    image.Point
		cell Cell
		ok   bool
	}{
		{image.Pt(5, 5), Cell{0, 0}, true},
		{image.Pt(45, 25), Cell{1, 1}, true},
		{image.Pt(65, 25), Cell{2, 3}, true},
		{image.Pt(80, 5), Cell{}, false},
		{image.Pt(5, -1), Cell{}, false},
	}
	for _, test := range tests {
		cell, ok := v.CellAt(test.p)
		if cell != test.cell || ok != test.ok {
			t.Errorf("CellAt(%v) = %v, %v; want %v, %v", test.p, cell, ok, test.cell, test.ok)
		}
	}
}

func TestSelectionRect(t *testing.T) {
	v := NewView(NewGrid(8, 8), 10, 10)
	v.SetSpan(1, 2, 2, 2)
	v.SetSpan(2, 4, 3, 1)
	v.SetSpan(6, 6, 2, 2)
	tests := []struct {
		from, to Cell
		want     Span
	}{
		{Cell{0, 0}, Cell{0, 1}, Span{0, 0, 1, 2}},
		{Cell{1, 1}, Cell{2, 2}, Span{1, 1, 2, 3}},
		// Growing over one span reaches the other.
		{Cell{3, 3}, Cell{3, 4}, Span{1, 2, 4, 3}},
		{Cell{4, 4}, Cell{3, 5}, Span{2, 4, 3, 2}},
		{Cell{7, 7}, Cell{5, 5}, Span{5, 5, 3, 3}},
	}
	for _, test := range tests {
		if got := v.SelectionRect(test.from, test.to); got != test.want {
			t.Errorf("SelectionRect(%v, %v) = %v, want %v", test.from, test.to, got, test.want)
		}
	}
}

func TestViewFollowsGrid(t *testing.T) {
	g := NewGrid(5, 5)
	v := NewView(g, 10, 10)
	v.SetSpan(1, 1, 2, 2)
	if err := g.InsertRows(0, 1); err != nil {
		t.Fatal(err)
	}
	if err := g.InsertColumns(2, 2); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]Span{{2, 1, 2, 4}}, v.Spans.All()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if v.Rows.Count() != 6 || v.Columns.Count() != 7 {
		t.Errorf("headers have %d rows and %d columns", v.Rows.Count(), v.Columns.Count())
	}
	if err := g.RemoveRows(2, 1); err != nil {
		t.Fatal(err)
	}
	if err := g.RemoveColumns(0, 7); err != nil {
		t.Fatal(err)
	}
	if v.Spans.Len() != 0 {
		t.Errorf("spans left: %v", v.Spans.All())
	}
	v.Close()
	if err := g.InsertRows(0, 1); err != nil {
		t.Fatal(err)
	}
	if v.Rows.Count() != 5 {
		t.Errorf("closed view followed the grid: %d rows", v.Rows.Count())
	}
}
