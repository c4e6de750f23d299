// SPDX-License-Identifier: Unlicense OR MIT

package table

import (
	"fmt"
)

// Model is the shape of a table.
type Model interface {
	RowCount() int
	ColumnCount() int
}

// Observer is notified of changes to the shape of a Grid, after they
// happen.
type Observer interface {
	RowsInserted(at, n int)
	RowsRemoved(at, n int)
	ColumnsInserted(at, n int)
	ColumnsRemoved(at, n int)
}

// Grid is a Model whose shape can change.
type Grid struct {
	rows, cols int
	observers  []Observer
}

// NewGrid returns a grid of rows by cols cells.
func NewGrid(rows, cols int) *Grid {
	return &Grid{rows: rows, cols: cols}
}

func (g *Grid) RowCount() int    { return g.rows }
func (g *Grid) ColumnCount() int { return g.cols }

// Observe adds o to the observers of g.
func (g *Grid) Observe(o Observer) {
	g.observers = append(g.observers, o)
}

// Unobserve removes o from the observers of g.
func (g *Grid) Unobserve(o Observer) {
	for i, obs := range g.observers {
		if obs == o {
			g.observers = append(g.observers[:i], g.observers[i+1:]...)
			return
		}
	}
}

// InsertRows inserts n rows before row at.
func (g *Grid) InsertRows(at, n int) error {
	if err := checkInsert("rows", at, n, g.rows); err != nil {
		return err
	}
	g.rows += n
	for _, o := range g.observers {
		o.RowsInserted(at, n)
	}
	return nil
}

// RemoveRows removes the n rows starting at at.
func (g *Grid) RemoveRows(at, n int) error {
	if err := checkRemove("rows", at, n, g.rows); err != nil {
		return err
	}
	g.rows -= n
	for _, o := range g.observers {
		o.RowsRemoved(at, n)
	}
	return nil
}

// InsertColumns inserts n columns before column at.
func (g *Grid) InsertColumns(at, n int) error {
	if err := checkInsert("columns", at, n, g.cols); err != nil {
		return err
	}
	g.cols += n
	for _, o := range g.observers {
		o.ColumnsInserted(at, n)
	}
	return nil
}

// RemoveColumns removes the n columns starting at at.
func (g *Grid) RemoveColumns(at, n int) error {
	if err := checkRemove("columns", at, n, g.cols); err != nil {
		return err
	}
	g.cols -= n
	for _, o := range g.observers {
		o.ColumnsRemoved(at, n)
	}
	return nil
}

func checkInsert(what string, at, n, count int) error {
	if n < 1 || at < 0 || at > count {
		return fmt.Errorf("table: cannot insert %d %s at %d of %d", n, what, at, count)
	}
	return nil
}

func checkRemove(what string, at, n, count int) error {
	if n < 1 || at < 0 || at+n > count {
		return fmt.Errorf("table: cannot remove %d %s at %d of %d", n, what, at, count)
	}
	return nil
}
