package exporter

import (
	"math"
	"strconv"

	"pmfkit/pkg/contracts/domain"
)

// Table-to-CSV conversion. Missing values (NaN) render as empty cells,
// matching the workbook convention.

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatRow(label string, values []float64) []string {
	record := make([]string, 0, 1+len(values))
	record = append(record, label)
	for _, v := range values {
		record = append(record, formatValue(v))
	}
	return record
}

// ProfileRecords lays a profile table out with one row per species.
func ProfileRecords(t *domain.ProfileTable) (headers []string, records [][]string) {
	headers = append([]string{"Specie"}, t.Factors...)
	for i, specie := range t.Species {
		records = append(records, formatRow(specie, t.Values[i]))
	}
	return headers, records
}

// ContributionRecords lays a contribution table out with one row per date.
func ContributionRecords(t *domain.ContributionTable) (headers []string, records [][]string) {
	headers = append([]string{"Date"}, t.Factors...)
	for i, date := range t.Dates {
		records = append(records, formatRow(date.Format("2006-01-02"), t.Values[i]))
	}
	return headers, records
}

// BootstrapRecords lays a replicate table out with one row per
// (specie, factor) pair and one column per replicate.
func BootstrapRecords(t *domain.BootstrapReplicateTable) (headers []string, records [][]string) {
	headers = append([]string{"Specie", "Profile"}, t.ReplicateNames()...)
	for i, specie := range t.Species {
		for j, factor := range t.Factors {
			record := append([]string{specie}, formatRow(factor, t.Values[i*len(t.Factors)+j])...)
			records = append(records, record)
		}
	}
	return headers, records
}

// MappingRecords lays a factor-mapping table out with one row per base
// factor.
func MappingRecords(t *domain.BootstrapMappingTable) (headers []string, records [][]string) {
	headers = append([]string{"BS-mapping"}, t.Columns...)
	for i, label := range t.BaseFactors {
		record := make([]string, 0, 1+len(t.Counts[i]))
		record = append(record, label)
		for _, c := range t.Counts[i] {
			record = append(record, strconv.Itoa(c))
		}
		records = append(records, record)
	}
	return headers, records
}

// UncertaintyRecords lays an uncertainty summary out with one row per
// (factor, specie) pair.
func UncertaintyRecords(t *domain.UncertaintySummaryTable) (headers []string, records [][]string) {
	headers = append([]string{"Profile", "Specie"}, t.Columns...)
	for _, row := range t.Rows {
		record := append([]string{row.Factor}, formatRow(row.Specie, row.Values)...)
		records = append(records, record)
	}
	return headers, records
}

// SwapRecords lays the single-row swap-count table out.
func SwapRecords(t *domain.SwapCountTable) (headers []string, records [][]string) {
	headers = append([]string{"Count"}, t.Factors...)
	record := []string{"Swaps"}
	for _, c := range t.Counts {
		record = append(record, strconv.Itoa(c))
	}
	return headers, [][]string{record}
}

// SeasonalRecords lays a seasonal aggregation out with one row per season.
func SeasonalRecords(t *domain.SeasonalTable) (headers []string, records [][]string) {
	headers = append([]string{"Season"}, t.Factors...)
	for i, season := range t.Seasons {
		records = append(records, formatRow(season, t.Values[i]))
	}
	return headers, records
}
