package domain

import (
	"math"
	"strconv"
	"time"
)

// Solution identifies which PMF solution a table belongs to.
type Solution string

const (
	SolutionBase        Solution = "base"
	SolutionConstrained Solution = "constrained"
)

// Valid reports whether s is a known solution kind.
func (s Solution) Valid() bool {
	return s == SolutionBase || s == SolutionConstrained
}

// Metadata holds the reference factor/species lists established by the
// base-profile parse. All other parses of the same run reuse these lists.
type Metadata struct {
	Site          string   `json:"site"`
	Factors       []string `json:"factors"`
	Species       []string `json:"species"`
	TotalVariable string   `json:"total_variable"`
	// TotalVariableGuessed is set when no canonical total-mass alias was
	// found and the selection fell back to a "PM" substring match.
	TotalVariableGuessed bool `json:"total_variable_guessed"`
}

// ProfileTable is a species-by-factor concentration matrix. Values carries
// one row per species, one column per factor, in the order of the Species
// and Factors slices. Concentrations below the export noise floor are
// clamped to exactly zero at parse time.
type ProfileTable struct {
	Species []string    `json:"species"`
	Factors []string    `json:"factors"`
	Values  [][]float64 `json:"values"`
}

// Value returns the concentration for (specie, factor) and whether both
// labels exist in the table.
func (t *ProfileTable) Value(specie, factor string) (float64, bool) {
	i := indexOf(t.Species, specie)
	j := indexOf(t.Factors, factor)
	if i < 0 || j < 0 {
		return 0, false
	}
	return t.Values[i][j], true
}

// Row returns the per-factor concentrations for one species.
func (t *ProfileTable) Row(specie string) ([]float64, bool) {
	i := indexOf(t.Species, specie)
	if i < 0 {
		return nil, false
	}
	return t.Values[i], true
}

// ContributionTable is a date-indexed factor contribution matrix. Dates are
// in source order (typically chronological, never re-sorted) and need not be
// unique. Missing contributions are NaN; the source sentinel -999 is
// translated at parse time and never survives into Values.
type ContributionTable struct {
	Dates   []time.Time `json:"dates"`
	Factors []string    `json:"factors"`
	Values  [][]float64 `json:"values"`
}

// Column returns the contribution series for one factor.
func (t *ContributionTable) Column(factor string) ([]float64, bool) {
	j := indexOf(t.Factors, factor)
	if j < 0 {
		return nil, false
	}
	col := make([]float64, len(t.Values))
	for i, row := range t.Values {
		col[i] = row[j]
	}
	return col, true
}

// BootstrapReplicateTable holds one bootstrap profile value per
// (species, factor, replicate). Rows are laid out species-major: the block
// for species i occupies rows [i*len(Factors), (i+1)*len(Factors)).
// Replicate columns are a contiguous 0-based sequence named Boot0..BootR-1,
// renumbered after any non-convergence filtering.
type BootstrapReplicateTable struct {
	Species    []string    `json:"species"`
	Factors    []string    `json:"factors"`
	Replicates int         `json:"replicates"`
	Values     [][]float64 `json:"values"`
}

// Row returns the replicate values for one (specie, factor) pair.
func (t *BootstrapReplicateTable) Row(specie, factor string) ([]float64, bool) {
	i := indexOf(t.Species, specie)
	j := indexOf(t.Factors, factor)
	if i < 0 || j < 0 {
		return nil, false
	}
	return t.Values[i*len(t.Factors)+j], true
}

// ReplicateNames returns the replicate column labels, Boot0..BootR-1.
func (t *BootstrapReplicateTable) ReplicateNames() []string {
	names := make([]string, t.Replicates)
	for i := range names {
		names[i] = bootName(i)
	}
	return names
}

// BootstrapMappingTable counts how many bootstrap runs mapped each base
// factor to each candidate factor. Row labels are "BF-"+factor; columns are
// the factor list plus a trailing "unmapped" column.
type BootstrapMappingTable struct {
	BaseFactors []string `json:"base_factors"`
	Columns     []string `json:"columns"`
	Counts      [][]int  `json:"counts"`
}

// ConvergedRuns returns the number of bootstrap runs accounted for by the
// mapping table, taken as the row total of the first base factor (every
// converged run maps it somewhere, or lands in "unmapped").
func (t *BootstrapMappingTable) ConvergedRuns() int {
	if len(t.Counts) == 0 {
		return 0
	}
	n := 0
	for _, c := range t.Counts[0] {
		n += c
	}
	return n
}

// UncertaintySummaryTable holds the combined BS / BS-DISP / DISP uncertainty
// ranges, indexed by (factor, specie). Columns names the value columns; the
// base and constrained exports carry different bootstrap percentile sets.
type UncertaintySummaryTable struct {
	Columns []string         `json:"columns"`
	Rows    []UncertaintyRow `json:"rows"`
}

// UncertaintyRow is one (factor, specie) entry of an uncertainty summary.
type UncertaintyRow struct {
	Factor string    `json:"factor"`
	Specie string    `json:"specie"`
	Values []float64 `json:"values"`
}

// Uncertainty summary column sets, in export order.
var (
	BaseUncertaintyColumns = []string{
		"Base run",
		"BS 5th", "BS 25th", "BS median", "BS 75th", "BS 95th",
		"BS-DISP 5th", "BS-DISP average", "BS-DISP 95th",
		"DISP Min", "DISP average", "DISP Max",
	}
	ConstrainedUncertaintyColumns = []string{
		"Constrained base run",
		"BS 5th", "BS median", "BS 95th",
		"BS-DISP 5th", "BS-DISP average", "BS-DISP 95th",
		"DISP Min", "DISP average", "DISP Max",
	}
)

// Value returns the named column for (factor, specie).
func (t *UncertaintySummaryTable) Value(factor, specie, column string) (float64, bool) {
	j := indexOf(t.Columns, column)
	if j < 0 {
		return 0, false
	}
	for _, row := range t.Rows {
		if row.Factor == factor && row.Specie == specie {
			return row.Values[j], true
		}
	}
	return 0, false
}

// SeasonalTable is a derived view: contribution of each factor aggregated
// by season, one row per season in display order.
type SeasonalTable struct {
	Seasons []string    `json:"seasons"`
	Factors []string    `json:"factors"`
	Values  [][]float64 `json:"values"`
}

// SwapCountTable is the single "swap count" row of the DISP diagnostics:
// the number of factor swaps DISP encountered, per factor.
type SwapCountTable struct {
	Factors []string `json:"factors"`
	Counts  []int    `json:"counts"`
}

// IsMissing reports whether v is the in-memory missing-value marker.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

func bootName(i int) string {
	return "Boot" + strconv.Itoa(i)
}
