// SPDX-License-Identifier: Unlicense OR MIT

package table

import (
	"golang.org/x/exp/slices"
)

// Header lays out the sections, rows or columns, of one table axis.
// Hidden sections keep their size but take no space.
type Header struct {
	// DefaultSize is the size of inserted sections.
	DefaultSize int

	sizes  []int
	hidden []bool
	// offsets[i] is the position of section i; offsets[len(sizes)]
	// is the total length. Nil when stale.
	offsets []int
}

// NewHeader returns a header of count sections of size.
func NewHeader(count, size int) *Header {
	h := &Header{DefaultSize: size}
	h.InsertSections(0, count)
	return h
}

// Count returns the number of sections.
func (h *Header) Count() int {
	return len(h.sizes)
}

// SectionSize returns the size of section i, hidden or not.
func (h *Header) SectionSize(i int) int {
	return h.sizes[i]
}

// SetSectionSize resizes section i.
func (h *Header) SetSectionSize(i, size int) {
	h.sizes[i] = max(size, 0)
	h.offsets = nil
}

// Hidden reports whether section i is hidden.
func (h *Header) Hidden(i int) bool {
	return h.hidden[i]
}

// SetHidden hides or shows section i.
func (h *Header) SetHidden(i int, hidden bool) {
	h.hidden[i] = hidden
	h.offsets = nil
}

// SectionPosition returns the position of section i: the total size
// of the visible sections before it.
func (h *Header) SectionPosition(i int) int {
	return h.layout()[i]
}

// SpanSize returns the total size of the visible sections among the n
// sections starting at first.
func (h *Header) SpanSize(first, n int) int {
	offs := h.layout()
	last := min(first+n, len(h.sizes))
	return offs[last] - offs[first]
}

// Length returns the total size of the visible sections.
func (h *Header) Length() int {
	offs := h.layout()
	return offs[len(offs)-1]
}

// SectionAt returns the visible section at pos, or -1.
func (h *Header) SectionAt(pos int) int {
	offs := h.layout()
	if pos < 0 || pos >= offs[len(offs)-1] {
		return -1
	}
	// The first position past pos ends the section containing it.
	i, _ := slices.BinarySearch(offs, pos+1)
	return i - 1
}

// InsertSections inserts n sections of DefaultSize before section at.
func (h *Header) InsertSections(at, n int) {
	h.sizes = slices.Insert(h.sizes, at, make([]int, n)...)
	h.hidden = slices.Insert(h.hidden, at, make([]bool, n)...)
	for i := at; i < at+n; i++ {
		h.sizes[i] = h.DefaultSize
	}
	h.offsets = nil
}

// RemoveSections removes the n sections starting at at.
func (h *Header) RemoveSections(at, n int) {
	h.sizes = slices.Delete(h.sizes, at, at+n)
	h.hidden = slices.Delete(h.hidden, at, at+n)
	h.offsets = nil
}

func (h *Header) layout() []int {
	if h.offsets != nil {
		return h.offsets
	}
	h.offsets = make([]int, len(h.sizes)+1)
	pos := 0
	for i, sz := range h.sizes {
		h.offsets[i] = pos
		if !h.hidden[i] {
			pos += sz
		}
	}
	h.offsets[len(h.sizes)] = pos
	return h.offsets
}
