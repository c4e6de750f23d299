// SPDX-License-Identifier: Unlicense OR MIT

/*
Package table implements the geometry of table views with merged
cells.

A Spans value records rectangular blocks of cells merged into their
top-left anchor cell. It stays consistent when rows and columns are
inserted or removed: spans never overlap.

A View combines Spans with a row and a column Header to map between
cells and pixel positions. Views observe a Grid model and update
their headers and spans when the grid changes shape.
*/
package table
