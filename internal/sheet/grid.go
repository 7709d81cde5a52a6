// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sheet loads spreadsheet exports as headerless grids of cells and
// slices the price table out of them.
package sheet

import (
	"math"
	"strconv"
)

// Kind identifies the variant held by a Cell.
type Kind int

const (
	KindEmpty Kind = iota
	KindText
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	default:
		return "empty"
	}
}

// Cell is one spreadsheet value: empty, text, or a number. Integral numbers
// keep their integer form so they round-trip without a trailing ".0".
type Cell struct {
	kind  Kind
	text  string
	num   float64
	isInt bool
	i     int64
}

// Text returns a text cell.
func Text(s string) Cell {
	return Cell{kind: KindText, text: s}
}

// Number returns a numeric cell.
func Number(f float64) Cell {
	return Cell{kind: KindNumber, num: f}
}

// Int returns an integral numeric cell.
func Int(i int64) Cell {
	return Cell{kind: KindNumber, num: float64(i), isInt: true, i: i}
}

// ParseCell converts a raw cell string into a Cell. It returns an empty cell
// for "", an integer or float cell for numeric strings, and a text cell
// otherwise. NaN and infinities stay text.
func ParseCell(raw string) Cell {
	if raw == "" {
		return Cell{}
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return Int(i)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return Number(f)
	}
	return Text(raw)
}

// Kind reports which variant the cell holds.
func (c Cell) Kind() Kind { return c.kind }

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool { return c.kind == KindEmpty }

// AsText returns the cell's string when it is a text cell.
func (c Cell) AsText() (string, bool) {
	if c.kind != KindText {
		return "", false
	}
	return c.text, true
}

// AsNumber returns the cell's numeric value when it is a number cell.
func (c Cell) AsNumber() (float64, bool) {
	if c.kind != KindNumber {
		return 0, false
	}
	return c.num, true
}

// String renders the cell as text: numbers in their shortest decimal form,
// empty cells as "".
func (c Cell) String() string {
	switch c.kind {
	case KindText:
		return c.text
	case KindNumber:
		if c.isInt {
			return strconv.FormatInt(c.i, 10)
		}
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Value returns the cell as a plain Go value: string, int64, float64, or nil.
func (c Cell) Value() any {
	switch c.kind {
	case KindText:
		return c.text
	case KindNumber:
		if c.isInt {
			return c.i
		}
		return c.num
	default:
		return nil
	}
}

// Column positions of the price table.
const (
	// LabelColumn holds the row label, e.g. the form ("Fresh", "Frozen").
	LabelColumn = 0
	// ValueColumn holds the price.
	ValueColumn = 1
)

// Row is an ordered sequence of cells. Rows may be ragged.
type Row []Cell

// Cell returns the cell at column i, or an empty cell past the end of the row.
func (r Row) Cell(i int) Cell {
	if i < 0 || i >= len(r) {
		return Cell{}
	}
	return r[i]
}

// Label returns the label column cell.
func (r Row) Label() Cell { return r.Cell(LabelColumn) }

// Value returns the value column cell.
func (r Row) Value() Cell { return r.Cell(ValueColumn) }

// Grid is a headerless table of rows, top to bottom.
type Grid []Row

// Head returns at most the first n rows.
func (g Grid) Head(n int) Grid {
	if n < 0 {
		n = 0
	}
	if n > len(g) {
		n = len(g)
	}
	return g[:n]
}

// FromStrings builds a Grid from raw string rows, parsing each cell with
// ParseCell.
func FromStrings(rows [][]string) Grid {
	g := make(Grid, len(rows))
	for i, raw := range rows {
		row := make(Row, len(raw))
		for j, s := range raw {
			row[j] = ParseCell(s)
		}
		g[i] = row
	}
	return g
}
