package table

import (
	"climatelab/domain/core"
)

// Frame is an ordered, schema-carrying table of string cells. It is the unit
// of tabular data everywhere in this codebase: ingestion produces a Frame,
// the merger combines Frames, and every derivation consumes one.
//
// Cells are kept as the raw text read from the export; typed access (floats,
// dates) parses on demand so that a blank cell stays a missing value instead
// of becoming a zero.
type Frame struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// New creates an empty frame with the given header.
func New(columns []string) *Frame {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Frame{Columns: cols}
}

// Append adds one row. The row must have exactly one cell per column.
func (f *Frame) Append(row []string) error {
	if len(f.Columns) == 0 {
		return core.ErrEmptyFrame
	}
	if len(row) != len(f.Columns) {
		return core.NewRaggedRowError(len(f.Rows), len(f.Columns), len(row))
	}
	f.Rows = append(f.Rows, row)
	return nil
}

// Len returns the number of data rows.
func (f *Frame) Len() int {
	return len(f.Rows)
}

// ColumnIndex returns the position of a named column.
func (f *Frame) ColumnIndex(name string) (int, error) {
	for i, col := range f.Columns {
		if col == name {
			return i, nil
		}
	}
	return -1, core.NewMissingColumnError(name)
}

// HasColumn reports whether the header contains the named column.
func (f *Frame) HasColumn(name string) bool {
	_, err := f.ColumnIndex(name)
	return err == nil
}

// SameSchema reports whether two frames expose identical headers, in order.
// Column order is part of the schema: merged rows are positional.
func (f *Frame) SameSchema(other *Frame) bool {
	if other == nil || len(f.Columns) != len(other.Columns) {
		return false
	}
	for i, col := range f.Columns {
		if other.Columns[i] != col {
			return false
		}
	}
	return true
}

// Clone returns a deep copy. Callers that reshape data work on the copy so
// the input frame is never mutated.
func (f *Frame) Clone() *Frame {
	out := New(f.Columns)
	out.Rows = make([][]string, len(f.Rows))
	for i, row := range f.Rows {
		out.Rows[i] = make([]string, len(row))
		copy(out.Rows[i], row)
	}
	return out
}

// Cell returns the value at (row, col) without bounds checking beyond the
// slice's own; derivations resolve column indexes once up front.
func (f *Frame) Cell(row, col int) string {
	return f.Rows[row][col]
}
