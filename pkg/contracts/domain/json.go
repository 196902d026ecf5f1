package domain

import (
	"encoding/json"
	"math"
	"time"
)

// encoding/json rejects NaN, so every float-carrying table marshals through
// a nullable representation where missing values become JSON null.

func nullable(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func nullableRow(row []float64) []*float64 {
	out := make([]*float64, len(row))
	for i, v := range row {
		out[i] = nullable(v)
	}
	return out
}

func nullableMatrix(m [][]float64) [][]*float64 {
	out := make([][]*float64, len(m))
	for i, row := range m {
		out[i] = nullableRow(row)
	}
	return out
}

// MarshalJSON renders missing values as null.
func (t ProfileTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Species []string     `json:"species"`
		Factors []string     `json:"factors"`
		Values  [][]*float64 `json:"values"`
	}{t.Species, t.Factors, nullableMatrix(t.Values)})
}

// MarshalJSON renders missing values as null.
func (t ContributionTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Dates   []string     `json:"dates"`
		Factors []string     `json:"factors"`
		Values  [][]*float64 `json:"values"`
	}{formatDates(t.Dates), t.Factors, nullableMatrix(t.Values)})
}

// MarshalJSON renders missing values as null.
func (t BootstrapReplicateTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Species    []string     `json:"species"`
		Factors    []string     `json:"factors"`
		Replicates int          `json:"replicates"`
		Values     [][]*float64 `json:"values"`
	}{t.Species, t.Factors, t.Replicates, nullableMatrix(t.Values)})
}

// MarshalJSON renders missing values as null.
func (t UncertaintySummaryTable) MarshalJSON() ([]byte, error) {
	type row struct {
		Factor string     `json:"factor"`
		Specie string     `json:"specie"`
		Values []*float64 `json:"values"`
	}
	rows := make([]row, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = row{r.Factor, r.Specie, nullableRow(r.Values)}
	}
	return json.Marshal(struct {
		Columns []string `json:"columns"`
		Rows    []row    `json:"rows"`
	}{t.Columns, rows})
}

func formatDates(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format("2006-01-02")
	}
	return out
}
