package ingest

import (
	"math"

	pmferrors "pmfkit/internal/errors"
	"pmfkit/internal/source"
	"pmfkit/pkg/contracts/domain"
)

const (
	// bootstrapMarker precedes the replicate data block.
	bootstrapMarker = "Columns are:"
	// mappingRowOffset is the fixed row where the factor-mapping block
	// starts in the bootstrap sheet.
	mappingRowOffset = 2
	// diagnosticColumns is the number of leading columns of the replicate
	// block holding diagnostic text rather than replicate values.
	diagnosticColumns = 13
	// unmappedLabel is the trailing column of the mapping block counting
	// bootstrap runs that mapped to no base factor.
	unmappedLabel = "unmapped"
	// baseFactorPrefix labels the mapping block rows.
	baseFactorPrefix = "BF-"
	// DefaultDivergenceThreshold is the total-variable concentration above
	// which a replicate is treated as diverged. Inherited verbatim from the
	// upstream tooling; it is a coarse heuristic, not a principled
	// statistical bound.
	DefaultDivergenceThreshold = 100.0
)

// BootstrapOptions carries the prerequisites of the bootstrap parse. All of
// them come from the base-profile parse.
type BootstrapOptions struct {
	Factors       []string
	Species       []string
	TotalVariable string
	// DivergenceThreshold defaults to DefaultDivergenceThreshold when zero.
	DivergenceThreshold float64
}

// ParseBootstrap extracts the factor-mapping block and the replicate block
// from a bootstrap sheet, then removes replicates flagged non-convergent.
// The returned slice names the replicate columns that were dropped; the
// retained columns are renumbered Boot0..Boot(k-1) with no gaps.
func ParseBootstrap(doc *source.Document, opts BootstrapOptions) (*domain.BootstrapReplicateTable, *domain.BootstrapMappingTable, []string, error) {
	if len(opts.Factors) == 0 || len(opts.Species) == 0 {
		return nil, nil, nil, pmferrors.Structural(doc.Name, "factor/species lists are empty; parse base profiles first")
	}

	mapping, err := parseMappingBlock(doc, opts.Factors)
	if err != nil {
		return nil, nil, nil, err
	}

	replicates, err := parseReplicateBlock(doc, opts.Factors, opts.Species)
	if err != nil {
		return nil, nil, nil, err
	}

	dropped := FilterDivergedReplicates(replicates, mapping, opts)
	return replicates, mapping, dropped, nil
}

// parseMappingBlock reads the fixed-shape square block recording how many
// bootstrap runs mapped each base factor to each candidate factor: one row
// per base factor starting at mappingRowOffset, the factor count plus two
// columns wide (row label, factors, unmapped).
func parseMappingBlock(doc *source.Document, factors []string) (*domain.BootstrapMappingTable, error) {
	n := len(factors)
	if len(doc.Rows) < mappingRowOffset+n {
		return nil, pmferrors.Structural(doc.Name,
			"sheet has %d rows, mapping block needs %d", len(doc.Rows), mappingRowOffset+n)
	}

	table := &domain.BootstrapMappingTable{
		Columns: append(append([]string{}, factors...), unmappedLabel),
	}
	for i, f := range factors {
		row := doc.Rows[mappingRowOffset+i]
		counts := make([]int, n+1)
		for j := 0; j <= n; j++ {
			counts[j] = parseIntCell(cellAt(row, 1+j))
		}
		table.BaseFactors = append(table.BaseFactors, baseFactorPrefix+f)
		table.Counts = append(table.Counts, counts)
	}
	return table, nil
}

// parseReplicateBlock reads everything after the bootstrapMarker row: one
// block of len(factors) rows per species, blocks separated by blank or
// partial rows, replicate values from column diagnosticColumns onward. Only
// rows carrying a full set of replicate values are data rows; everything
// else (separators, residual labels) is skipped.
func parseReplicateBlock(doc *source.Document, factors, species []string) (*domain.BootstrapReplicateTable, error) {
	idx := LocateMarker(doc, 0, bootstrapMarker)
	if len(idx) == 0 {
		return nil, pmferrors.Structural(doc.Name, "no %q marker found", bootstrapMarker)
	}

	section := doc.Rows[idx[0]+1:]
	width := 0
	for _, row := range section {
		if len(row) > width {
			width = len(row)
		}
	}
	replicates := width - diagnosticColumns
	if replicates <= 0 {
		return nil, pmferrors.Structural(doc.Name, "replicate block has no replicate columns")
	}

	var kept [][]float64
	for _, row := range section {
		values := make([]float64, replicates)
		full := true
		for j := 0; j < replicates; j++ {
			v := parseCell(cellAt(row, diagnosticColumns+j))
			if math.IsNaN(v) {
				full = false
				break
			}
			values[j] = v
		}
		if full {
			kept = append(kept, values)
		}
	}

	need := len(species) * len(factors)
	if len(kept) < need {
		return nil, pmferrors.Structural(doc.Name,
			"replicate block has %d complete rows, need %d (%d species x %d factors)",
			len(kept), need, len(species), len(factors))
	}

	return &domain.BootstrapReplicateTable{
		Species:    append([]string{}, species...),
		Factors:    append([]string{}, factors...),
		Replicates: replicates,
		Values:     kept[:need],
	}, nil
}

// FilterDivergedReplicates applies the non-convergence heuristic: when the
// mapping block accounts for fewer runs than the replicate columns suggest,
// any column whose total-variable row exceeds the threshold is treated as a
// diverged run and removed entirely. Returns the dropped column names.
// It is shared by the sheet and relational variants.
func FilterDivergedReplicates(t *domain.BootstrapReplicateTable, mapping *domain.BootstrapMappingTable, opts BootstrapOptions) []string {
	threshold := opts.DivergenceThreshold
	if threshold == 0 {
		threshold = DefaultDivergenceThreshold
	}

	converged := mapping.ConvergedRuns()
	if t.Replicates-1-converged <= 0 {
		return nil
	}

	// Columns where any total-variable row exceeds the threshold.
	diverged := make(map[int]bool)
	for i, sp := range t.Species {
		if sp != opts.TotalVariable {
			continue
		}
		for f := range t.Factors {
			row := t.Values[i*len(t.Factors)+f]
			for col, v := range row {
				if !math.IsNaN(v) && v > threshold {
					diverged[col] = true
				}
			}
		}
	}
	if len(diverged) == 0 {
		return nil
	}

	var droppedNames []string
	keep := make([]int, 0, t.Replicates)
	names := t.ReplicateNames()
	for col := 0; col < t.Replicates; col++ {
		if diverged[col] {
			droppedNames = append(droppedNames, names[col])
		} else {
			keep = append(keep, col)
		}
	}

	for r, row := range t.Values {
		filtered := make([]float64, len(keep))
		for i, col := range keep {
			filtered[i] = row[col]
		}
		t.Values[r] = filtered
	}
	t.Replicates = len(keep)
	return droppedNames
}
