// Package source abstracts the raw tabular inputs of a PMF run: a sheet of
// an xlsx workbook, or a site-filtered relational table. Both deliver an
// untyped cell matrix with no header handling; interpreting the cells is the
// parsers' job.
package source

import "strings"

// Document is one raw tabular source. Rows holds the cell matrix as text;
// empty (or whitespace-only) cells stand for missing values. Columns is only
// set for relational sources, where the query result carries column names;
// sheet sources deliver their header rows inside Rows untouched.
type Document struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Cell returns the trimmed cell at (row, col), or "" when the position is
// outside the (possibly ragged) matrix.
func (d *Document) Cell(row, col int) string {
	if row < 0 || row >= len(d.Rows) {
		return ""
	}
	r := d.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// Column returns the index of the named column for relational sources,
// or -1 when absent.
func (d *Document) Column(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}
