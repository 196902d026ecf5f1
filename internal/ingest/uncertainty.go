package ingest

import (
	"strings"

	pmferrors "pmfkit/internal/errors"
	"pmfkit/internal/source"
	"pmfkit/pkg/contracts/domain"
)

const (
	// swapMarker flags the DISP swap-count row (in the second column).
	swapMarker = "Swaps"
	// concentrationMarker precedes each factor's uncertainty block.
	concentrationMarker = "Concentrations for"
)

// Residual header and label rows inside the uncertainty block carry one of
// these in their first cell.
var uncertaintyLabels = []string{"Specie", "Concentration"}

// baseValueColumns and constrainedValueColumns map the named uncertainty
// columns to their cell positions, skipping the two always-empty spacer
// columns the export carries between the BS, BS-DISP and DISP groups.
var (
	baseValueColumns        = []int{1, 2, 3, 4, 5, 6, 8, 9, 10, 12, 13, 14}
	constrainedValueColumns = []int{1, 2, 3, 4, 6, 7, 8, 10, 11, 12}
)

// ParseUncertaintySummary extracts the per-(factor, species) BS / BS-DISP /
// DISP uncertainty ranges and, when present, the DISP swap-count row. The
// base and constrained exports carry different bootstrap percentile sets,
// selected by solution. The swap table is nil when the sheet has no swap
// row.
func ParseUncertaintySummary(doc *source.Document, factors, species []string, solution domain.Solution) (*domain.UncertaintySummaryTable, *domain.SwapCountTable, error) {
	if len(factors) == 0 || len(species) == 0 {
		return nil, nil, pmferrors.Structural(doc.Name, "factor/species lists are empty; parse base profiles first")
	}

	var columns []string
	var positions []int
	switch solution {
	case domain.SolutionBase:
		columns, positions = domain.BaseUncertaintyColumns, baseValueColumns
	case domain.SolutionConstrained:
		columns, positions = domain.ConstrainedUncertaintyColumns, constrainedValueColumns
	default:
		return nil, nil, pmferrors.Structural(doc.Name, "unknown solution kind %q", solution)
	}

	rows := dropBlankRows(doc.Rows, 0)
	compact := &source.Document{Name: doc.Name, Rows: rows}

	swap, err := parseSwapRow(compact, factors)
	if err != nil {
		return nil, nil, err
	}

	markers := LocateMarker(compact, 0, concentrationMarker)
	if len(markers) == 0 {
		return nil, nil, pmferrors.Structural(doc.Name, "no %q marker found", concentrationMarker)
	}

	// The data block runs from just after the first marker through
	// len(species) rows past the last one.
	start := markers[0] + 1
	end := markers[len(markers)-1] + 1 + len(species)
	if end >= len(rows) {
		end = len(rows) - 1
	}

	table := &domain.UncertaintySummaryTable{Columns: columns}
	var data [][]string
	for i := start; i <= end; i++ {
		row := rows[i]
		if rowBlank(row, 0) || isLabelRow(row) {
			continue
		}
		data = append(data, row)
	}

	need := len(factors) * len(species)
	if len(data) != need {
		return nil, nil, pmferrors.Structural(doc.Name,
			"uncertainty block has %d data rows, need %d (%d factors x %d species)",
			len(data), need, len(factors), len(species))
	}

	// Factor and species labels are imposed from the reference lists: each
	// factor block carries the full species list in order.
	for i, row := range data {
		values := make([]float64, len(positions))
		for j, pos := range positions {
			values[j] = parseCell(cellAt(row, pos))
		}
		table.Rows = append(table.Rows, domain.UncertaintyRow{
			Factor: factors[i/len(species)],
			Specie: species[i%len(species)],
			Values: values,
		})
	}
	return table, swap, nil
}

// parseSwapRow extracts the DISP swap counts when the sheet carries a swap
// row: the non-empty cells after the "Swaps" label, one count per factor.
func parseSwapRow(doc *source.Document, factors []string) (*domain.SwapCountTable, error) {
	idx := LocateMarker(doc, 1, swapMarker)
	if len(idx) == 0 {
		return nil, nil
	}

	row := doc.Rows[idx[0]]
	var cells []string
	for _, cell := range row {
		if !isBlank(cell) {
			cells = append(cells, cell)
		}
	}
	// First non-empty cell is the label itself.
	if len(cells) < 1+len(factors) {
		return nil, pmferrors.Structural(doc.Name,
			"swap row has %d counts, need %d", len(cells)-1, len(factors))
	}
	counts := make([]int, len(factors))
	for i := range factors {
		counts[i] = parseIntCell(cells[1+i])
	}
	return &domain.SwapCountTable{
		Factors: append([]string{}, factors...),
		Counts:  counts,
	}, nil
}

func isLabelRow(row []string) bool {
	first := trimmed(cellAt(row, 0))
	for _, label := range uncertaintyLabels {
		if strings.Contains(first, label) {
			return true
		}
	}
	return false
}
