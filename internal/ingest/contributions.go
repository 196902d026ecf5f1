package ingest

import (
	"math"

	pmferrors "pmfkit/internal/errors"
	"pmfkit/internal/source"
	"pmfkit/pkg/contracts/domain"
)

// contributionMarker bounds the factor-contribution section. Some report
// layouts carry it twice (data between the occurrences), some once (data
// from just after it to the end of the sheet).
const contributionMarker = "Factor Contributions"

// MissingSentinel is the integer code the upstream tool writes for missing
// contribution values. It is translated to NaN and must never be consumed
// as a literal value.
const MissingSentinel = -999

// ParseContributions extracts the date-indexed contribution matrix. The
// factor order comes from the base-profile parse; the sheet carries no
// factor-name header of its own. Rows whose date cell cannot be parsed are
// dropped; their source row indices are returned so the caller can report
// the drop.
func ParseContributions(doc *source.Document, factors []string) (*domain.ContributionTable, []int, error) {
	if len(factors) == 0 {
		return nil, nil, pmferrors.Structural(doc.Name, "factor list is empty; parse base profiles first")
	}

	idx := LocateMarker(doc, 0, contributionMarker)
	var section [][]string
	var base int
	switch {
	case len(idx) >= 2:
		section = doc.Rows[idx[0]+1 : idx[1]]
		base = idx[0] + 1
	case len(idx) == 1:
		section = doc.Rows[idx[0]+1:]
		base = idx[0] + 1
	default:
		return nil, nil, pmferrors.Structural(doc.Name, "no %q marker found", contributionMarker)
	}

	// Column 0 holds row labels, column 1 the date, then one column per
	// factor. Trailing fully-empty columns are ragged noise.
	width := raggedWidth(section, 1)
	if width < 2+len(factors) {
		return nil, nil, pmferrors.Structural(doc.Name,
			"contribution section has %d data columns, need %d factors", width-2, len(factors))
	}

	table := &domain.ContributionTable{Factors: factors}
	var dropped []int
	for i, row := range section {
		if rowBlank(row, 1) {
			continue
		}
		date, ok := parseDate(cellAt(row, 1))
		if !ok {
			dropped = append(dropped, base+i)
			continue
		}
		values := make([]float64, len(factors))
		for j := range factors {
			v := parseCell(cellAt(row, 2+j))
			if v == MissingSentinel {
				v = math.NaN()
			}
			values[j] = v
		}
		table.Dates = append(table.Dates, date)
		table.Values = append(table.Values, values)
	}

	if len(table.Dates) == 0 {
		return nil, dropped, pmferrors.Structural(doc.Name, "contribution section has no dated rows")
	}
	return table, dropped, nil
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
