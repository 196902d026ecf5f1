package ingest

import (
	"math"

	pmferrors "pmfkit/internal/errors"
	"pmfkit/internal/source"
	"pmfkit/pkg/contracts/domain"
)

// profileMarker bounds the factor-profile section: the data lives between
// its first and second occurrence in column 0.
const profileMarker = "Factor Profiles"

// ClampEpsilon is the magnitude below which a profile concentration is
// treated as export noise and clamped to exactly zero. The upstream tool
// leaks spurious 1e-12-scale values through rounding.
const ClampEpsilon = 1e-5

// ProfileOptions parameterizes ParseProfiles for the two report variants.
type ProfileOptions struct {
	// Factors imposes a known factor order instead of reading a header row.
	// The constrained sheet carries no reliable header, so the order
	// established by the base parse is imposed on it. Nil means base
	// variant: the first non-empty row of the section is the header.
	Factors []string
}

// ParseProfiles extracts the species-by-factor concentration matrix from a
// profile sheet.
func ParseProfiles(doc *source.Document, opts ProfileOptions) (*domain.ProfileTable, error) {
	idx := LocateMarker(doc, 0, profileMarker)
	if len(idx) < 2 {
		return nil, pmferrors.Structural(doc.Name, "found %d %q markers, need 2", len(idx), profileMarker)
	}

	// Work on the rows between the markers, columns from the second one
	// onward (column 0 holds section labels).
	section := dropBlankRows(doc.Rows[idx[0]:idx[1]], 1)

	factors := opts.Factors
	if factors == nil {
		// Base variant: the first remaining row is the factor-name header;
		// its first cell is the species-column label.
		if len(section) == 0 {
			return nil, pmferrors.Structural(doc.Name, "profile section is empty")
		}
		header := section[0]
		for col := 2; col < len(header); col++ {
			if isBlank(header[col]) {
				break
			}
			factors = append(factors, trimmed(header[col]))
		}
		section = section[1:]
		if len(factors) == 0 {
			return nil, pmferrors.Structural(doc.Name, "no factor names in profile header")
		}
	} else {
		// Constrained variant: truncate at the first fully-empty column so
		// ragged trailing columns cannot shift the imposed factor order.
		width := raggedWidth(section, 1)
		if width < 2+len(factors) {
			return nil, pmferrors.Structural(doc.Name,
				"profile section has %d data columns, need %d factors", width-2, len(factors))
		}
	}

	table := &domain.ProfileTable{Factors: factors}
	for _, row := range section {
		specie := ""
		if len(row) > 1 {
			specie = trimmed(row[1])
		}
		if specie == "" {
			continue
		}
		values := make([]float64, len(factors))
		for j := range factors {
			v := math.NaN()
			if c := 2 + j; c < len(row) {
				v = parseCell(row[c])
			}
			if !math.IsNaN(v) && math.Abs(v) < ClampEpsilon {
				v = 0
			}
			values[j] = v
		}
		table.Species = append(table.Species, specie)
		table.Values = append(table.Values, values)
	}

	if len(table.Species) == 0 {
		return nil, pmferrors.Structural(doc.Name, "profile section has no species rows")
	}
	return table, nil
}
