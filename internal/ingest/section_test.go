package ingest

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmfkit/internal/source"
)

func testDoc(rows ...[]string) *source.Document {
	return &source.Document{Name: "test", Rows: rows}
}

func TestLocateMarker(t *testing.T) {
	doc := testDoc(
		[]string{"Factor Profiles (conc. of species)"},
		[]string{"", "PM10", "1.0"},
		[]string{"Factor Profiles (% of total)"},
		[]string{"factor profiles"},
	)

	assert.Equal(t, []int{0, 2}, LocateMarker(doc, 0, "Factor Profiles"))
	assert.Empty(t, LocateMarker(doc, 0, "Factor Contributions"))
	// Column 1 of row 1 holds "PM10"; the marker search is per-column.
	assert.Equal(t, []int{1}, LocateMarker(doc, 1, "PM10"))
}

func TestRaggedWidth(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want int
	}{
		{
			name: "trailing empty columns trimmed",
			rows: [][]string{
				{"label", "a", "b", "", "noise"},
				{"label", "c", "d", "", ""},
			},
			want: 3,
		},
		{
			name: "no empty column keeps full width",
			rows: [][]string{
				{"label", "a", "b"},
				{"label", "c", "d"},
			},
			want: 3,
		},
		{
			name: "column empty in one row only is kept",
			rows: [][]string{
				{"label", "a", ""},
				{"label", "c", "d"},
			},
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, raggedWidth(tt.rows, 1))
		})
	}
}

func TestParseCell(t *testing.T) {
	assert.Equal(t, 1.25, parseCell(" 1.25 "))
	assert.Equal(t, -999.0, parseCell("-999"))
	assert.True(t, math.IsNaN(parseCell("")))
	assert.True(t, math.IsNaN(parseCell("n/a")))
}

func TestParseDate(t *testing.T) {
	// 40179 is the Excel serial for 2010-01-01.
	got, ok := parseDate("40179")
	require.True(t, ok)
	assert.Equal(t, time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC), got)

	got, ok = parseDate("2015-06-30")
	require.True(t, ok)
	assert.Equal(t, time.Date(2015, 6, 30, 0, 0, 0, 0, time.UTC), got)

	got, ok = parseDate("03/15/2012 00:00")
	require.True(t, ok)
	assert.Equal(t, 2012, got.Year())
	assert.Equal(t, time.March, got.Month())

	for _, cell := range []string{"", "not a date", "-12"} {
		_, ok := parseDate(cell)
		assert.False(t, ok, "cell %q should not parse", cell)
	}
}
