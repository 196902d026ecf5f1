package ingest

import (
	"math"
	"strconv"

	pmferrors "pmfkit/internal/errors"
	"pmfkit/internal/source"
	"pmfkit/pkg/contracts/domain"
)

// The relational export stores tables already normalized, with real column
// names. These functions turn a site-filtered query result back into the
// domain tables. The bookkeeping columns of the export (site and program
// filters, leftover frame index) are dropped everywhere.

var bookkeepingColumns = map[string]bool{
	"Station": true,
	"Program": true,
	"index":   true,
}

// ProfilesFromTable normalizes a profile query result: a Specie column plus
// one column per factor. Values are stored post-clamp, so no epsilon
// handling happens here.
func ProfilesFromTable(doc *source.Document) (*domain.ProfileTable, error) {
	specieCol := doc.Column("Specie")
	if specieCol < 0 {
		return nil, pmferrors.Structural(doc.Name, "no Specie column")
	}
	if len(doc.Rows) == 0 {
		return nil, pmferrors.NotFound(doc.Name, "no rows for requested site")
	}

	factorCols := valueColumns(doc, specieCol)
	if len(factorCols) == 0 {
		return nil, pmferrors.Structural(doc.Name, "no factor columns")
	}

	table := &domain.ProfileTable{Factors: columnNames(doc, factorCols)}
	for _, row := range doc.Rows {
		specie := trimmed(cellAt(row, specieCol))
		if specie == "" {
			continue
		}
		values := make([]float64, len(factorCols))
		for j, c := range factorCols {
			values[j] = parseCell(cellAt(row, c))
		}
		table.Species = append(table.Species, specie)
		table.Values = append(table.Values, values)
	}
	return table, nil
}

// ContributionsFromTable normalizes a contribution query result: a Date
// column plus one column per factor. Rows with unparseable dates are
// dropped and their positions returned, as in the sheet variant.
func ContributionsFromTable(doc *source.Document) (*domain.ContributionTable, []int, error) {
	dateCol := doc.Column("Date")
	if dateCol < 0 {
		return nil, nil, pmferrors.Structural(doc.Name, "no Date column")
	}
	if len(doc.Rows) == 0 {
		return nil, nil, pmferrors.NotFound(doc.Name, "no rows for requested site")
	}

	factorCols := valueColumns(doc, dateCol)
	if len(factorCols) == 0 {
		return nil, nil, pmferrors.Structural(doc.Name, "no factor columns")
	}

	table := &domain.ContributionTable{Factors: columnNames(doc, factorCols)}
	var dropped []int
	for i, row := range doc.Rows {
		date, ok := parseDate(cellAt(row, dateCol))
		if !ok {
			dropped = append(dropped, i)
			continue
		}
		values := make([]float64, len(factorCols))
		for j, c := range factorCols {
			v := parseCell(cellAt(row, c))
			if v == MissingSentinel {
				v = math.NaN()
			}
			values[j] = v
		}
		table.Dates = append(table.Dates, date)
		table.Values = append(table.Values, values)
	}
	return table, dropped, nil
}

// BootstrapReplicatesFromTable normalizes a replicate query result: Specie
// and Profile label columns plus Boot0..BootR-1 value columns. Replicate
// columns are reindexed into a contiguous 0-based sequence regardless of
// their order in the schema.
func BootstrapReplicatesFromTable(doc *source.Document) (*domain.BootstrapReplicateTable, error) {
	specieCol := doc.Column("Specie")
	profileCol := doc.Column("Profile")
	if specieCol < 0 || profileCol < 0 {
		return nil, pmferrors.Structural(doc.Name, "missing Specie/Profile columns")
	}
	if len(doc.Rows) == 0 {
		return nil, pmferrors.NotFound(doc.Name, "no rows for requested site")
	}

	bootCols := bootColumns(doc)
	if len(bootCols) == 0 {
		return nil, pmferrors.Structural(doc.Name, "no replicate columns")
	}

	type key struct{ specie, factor string }
	values := make(map[key][]float64, len(doc.Rows))
	var species, factors []string
	for _, row := range doc.Rows {
		k := key{trimmed(cellAt(row, specieCol)), trimmed(cellAt(row, profileCol))}
		if k.specie == "" || k.factor == "" {
			continue
		}
		if !contains(species, k.specie) {
			species = append(species, k.specie)
		}
		if !contains(factors, k.factor) {
			factors = append(factors, k.factor)
		}
		row2 := make([]float64, len(bootCols))
		for j, c := range bootCols {
			row2[j] = parseCell(cellAt(row, c))
		}
		values[k] = row2
	}

	table := &domain.BootstrapReplicateTable{
		Species:    species,
		Factors:    factors,
		Replicates: len(bootCols),
	}
	for _, sp := range species {
		for _, f := range factors {
			row, ok := values[key{sp, f}]
			if !ok {
				return nil, pmferrors.Structural(doc.Name,
					"no replicate row for specie %q factor %q", sp, f)
			}
			table.Values = append(table.Values, row)
		}
	}
	return table, nil
}

// BootstrapMappingFromTable normalizes a mapping query result: a BS-mapping
// label column plus one count column per candidate factor and "unmapped".
func BootstrapMappingFromTable(doc *source.Document) (*domain.BootstrapMappingTable, error) {
	labelCol := doc.Column("BS-mapping")
	if labelCol < 0 {
		return nil, pmferrors.Structural(doc.Name, "no BS-mapping column")
	}
	if len(doc.Rows) == 0 {
		return nil, pmferrors.NotFound(doc.Name, "no rows for requested site")
	}

	countCols := valueColumns(doc, labelCol)
	table := &domain.BootstrapMappingTable{Columns: columnNames(doc, countCols)}
	for _, row := range doc.Rows {
		label := trimmed(cellAt(row, labelCol))
		if label == "" {
			continue
		}
		counts := make([]int, len(countCols))
		for j, c := range countCols {
			counts[j] = parseIntCell(cellAt(row, c))
		}
		table.BaseFactors = append(table.BaseFactors, label)
		table.Counts = append(table.Counts, counts)
	}
	return table, nil
}

// SwapCountFromTable normalizes a swap-count query result. An empty result
// is not an error: DISP diagnostics are optional.
func SwapCountFromTable(doc *source.Document) (*domain.SwapCountTable, error) {
	if len(doc.Rows) == 0 {
		return nil, nil
	}
	labelCol := doc.Column("Count")
	factorCols := valueColumns(doc, labelCol)
	if len(factorCols) == 0 {
		return nil, pmferrors.Structural(doc.Name, "no factor columns")
	}
	table := &domain.SwapCountTable{Factors: columnNames(doc, factorCols)}
	table.Counts = make([]int, len(factorCols))
	for j, c := range factorCols {
		table.Counts[j] = parseIntCell(cellAt(doc.Rows[0], c))
	}
	return table, nil
}

// UncertaintyFromTable normalizes an uncertainty summary query result:
// Profile and Specie label columns plus the named value columns.
func UncertaintyFromTable(doc *source.Document) (*domain.UncertaintySummaryTable, error) {
	profileCol := doc.Column("Profile")
	specieCol := doc.Column("Specie")
	if profileCol < 0 || specieCol < 0 {
		return nil, pmferrors.Structural(doc.Name, "missing Profile/Specie columns")
	}
	if len(doc.Rows) == 0 {
		return nil, pmferrors.NotFound(doc.Name, "no rows for requested site")
	}

	valueCols := valueColumns(doc, profileCol, specieCol)
	table := &domain.UncertaintySummaryTable{Columns: columnNames(doc, valueCols)}
	for _, row := range doc.Rows {
		values := make([]float64, len(valueCols))
		for j, c := range valueCols {
			values[j] = parseCell(cellAt(row, c))
		}
		table.Rows = append(table.Rows, domain.UncertaintyRow{
			Factor: trimmed(cellAt(row, profileCol)),
			Specie: trimmed(cellAt(row, specieCol)),
			Values: values,
		})
	}
	return table, nil
}

// valueColumns returns the indices of every column that is neither a
// bookkeeping column nor one of the given label columns, skipping columns
// that are empty in every row.
func valueColumns(doc *source.Document, labelCols ...int) []int {
	var cols []int
	for i, name := range doc.Columns {
		if bookkeepingColumns[name] {
			continue
		}
		if containsInt(labelCols, i) {
			continue
		}
		if columnEmpty(doc, i) {
			continue
		}
		cols = append(cols, i)
	}
	return cols
}

// bootColumns returns the replicate columns sorted by their Boot index.
func bootColumns(doc *source.Document) []int {
	var cols []int
	for i := 0; ; i++ {
		c := doc.Column("Boot" + strconv.Itoa(i))
		if c < 0 {
			break
		}
		cols = append(cols, c)
	}
	return cols
}

func columnEmpty(doc *source.Document, col int) bool {
	for i := range doc.Rows {
		if doc.Cell(i, col) != "" {
			return false
		}
	}
	return true
}

func columnNames(doc *source.Document, cols []int) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = doc.Columns[c]
	}
	return names
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsInt(list []int, n int) bool {
	for _, v := range list {
		if v == n {
			return true
		}
	}
	return false
}
