package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"pmfkit/internal/source"
)

// LocateMarker returns the indices of every row whose cell in column col
// contains marker as a substring, in row order. Comparison is
// case-sensitive; empty and out-of-range cells never match.
func LocateMarker(doc *source.Document, col int, marker string) []int {
	var idx []int
	for i := range doc.Rows {
		if cell := doc.Cell(i, col); cell != "" && strings.Contains(cell, marker) {
			idx = append(idx, i)
		}
	}
	return idx
}

// isBlank reports whether a cell holds no value.
func isBlank(cell string) bool {
	return strings.TrimSpace(cell) == ""
}

func trimmed(cell string) string {
	return strings.TrimSpace(cell)
}

// rowBlank reports whether every cell of row from column offset onward is
// empty.
func rowBlank(row []string, offset int) bool {
	for i := offset; i < len(row); i++ {
		if !isBlank(row[i]) {
			return false
		}
	}
	return true
}

// dropBlankRows removes rows that are entirely empty from column offset
// onward.
func dropBlankRows(rows [][]string, offset int) [][]string {
	out := rows[:0:0]
	for _, row := range rows {
		if !rowBlank(row, offset) {
			out = append(out, row)
		}
	}
	return out
}

// raggedWidth implements the ragged-edge trim for columns: scanning from
// column offset, it returns the index of the first column that is empty in
// every row, or the matrix width when no such column exists. Everything from
// that column onward is trailing noise and must be ignored.
func raggedWidth(rows [][]string, offset int) int {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	for col := offset; col < width; col++ {
		empty := true
		for _, row := range rows {
			if col < len(row) && !isBlank(row[col]) {
				empty = false
				break
			}
		}
		if empty {
			return col
		}
	}
	return width
}

// parseCell coerces a cell to a float. Empty or non-numeric cells become
// NaN, the in-memory missing marker.
func parseCell(cell string) float64 {
	s := strings.TrimSpace(cell)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// parseIntCell coerces a cell to an integer count, tolerating a float
// rendering ("3.0"). Returns 0 for empty or non-numeric cells.
func parseIntCell(cell string) int {
	v := parseCell(cell)
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Round(v))
}

// dateLayouts are tried in order after the Excel serial-number form.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
	"01-02-06",
}

// parseDate interprets a cell as a date: first as an Excel serial number
// (the raw form excelize returns for date cells), then through the known
// textual layouts. ok is false for cells no layout accepts; such rows must
// be dropped, never replaced by a fabricated date.
func parseDate(cell string) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return time.Time{}, false
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial <= 0 {
			return time.Time{}, false
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
