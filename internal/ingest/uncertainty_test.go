package ingest

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pmferrors "pmfkit/internal/errors"
	"pmfkit/internal/source"
	"pmfkit/pkg/contracts/domain"
)

// uncertaintySheet builds an error-estimation summary: an optional swap
// row, then one "Concentrations for" block per factor, each with a label
// row and one data row per species. Values fill columns 1..width with the
// (factor, species, column) position encoded so tests can check the spacer
// columns are skipped.
func uncertaintySheet(factors, species []string, width int, swaps []int) *source.Document {
	rows := [][]string{
		{"Error Estimation Summary"},
	}
	if swaps != nil {
		swapRow := []string{"", "Swaps"}
		for _, s := range swaps {
			swapRow = append(swapRow, strconv.Itoa(s))
		}
		rows = append(rows, swapRow, []string{""})
	}
	for fi, factor := range factors {
		rows = append(rows,
			[]string{"Concentrations for " + factor},
			[]string{"Specie"},
		)
		for si, specie := range species {
			row := []string{specie}
			for c := 1; c <= width; c++ {
				row = append(row, strconv.Itoa(fi*10000+si*100+c))
			}
			rows = append(rows, row)
		}
		rows = append(rows, []string{""})
	}
	return &source.Document{Name: "test", Rows: rows}
}

func TestParseUncertaintySummaryBase(t *testing.T) {
	factors := []string{"Factor 1", "Factor 2"}
	species := []string{"PM10", "OC"}
	doc := uncertaintySheet(factors, species, 14, []int{3, 0})

	table, swap, err := ParseUncertaintySummary(doc, factors, species, domain.SolutionBase)
	require.NoError(t, err)
	require.NotNil(t, swap)

	assert.Equal(t, domain.BaseUncertaintyColumns, table.Columns)
	require.Len(t, table.Rows, 4)
	assert.Equal(t, "Factor 1", table.Rows[0].Factor)
	assert.Equal(t, "PM10", table.Rows[0].Specie)
	assert.Equal(t, "Factor 2", table.Rows[3].Factor)
	assert.Equal(t, "OC", table.Rows[3].Specie)

	// Column positions skip the spacer columns 7 and 11.
	v, ok := table.Value("Factor 1", "PM10", "Base run")
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
	v, ok = table.Value("Factor 1", "PM10", "BS-DISP 5th")
	require.True(t, ok)
	assert.Equal(t, 8.0, v)
	v, ok = table.Value("Factor 2", "OC", "DISP Max")
	require.True(t, ok)
	assert.Equal(t, 10114.0, v)

	assert.Equal(t, factors, swap.Factors)
	assert.Equal(t, []int{3, 0}, swap.Counts)
}

func TestParseUncertaintySummaryConstrained(t *testing.T) {
	factors := []string{"Factor 1", "Factor 2"}
	species := []string{"PM10", "OC"}
	doc := uncertaintySheet(factors, species, 12, nil)

	table, swap, err := ParseUncertaintySummary(doc, factors, species, domain.SolutionConstrained)
	require.NoError(t, err)
	// No swap row: DISP diagnostics are optional.
	assert.Nil(t, swap)

	assert.Equal(t, domain.ConstrainedUncertaintyColumns, table.Columns)
	require.Len(t, table.Rows, 4)

	// Constrained positions skip the spacer columns 5 and 9.
	v, ok := table.Value("Factor 1", "PM10", "BS 5th")
	require.True(t, ok)
	assert.Equal(t, 2.0, v)
	v, ok = table.Value("Factor 1", "PM10", "BS-DISP 5th")
	require.True(t, ok)
	assert.Equal(t, 6.0, v)
	v, ok = table.Value("Factor 2", "OC", "DISP Max")
	require.True(t, ok)
	assert.Equal(t, 10112.0, v)
}

func TestParseUncertaintySummaryErrors(t *testing.T) {
	factors := []string{"Factor 1", "Factor 2"}
	species := []string{"PM10", "OC"}

	t.Run("no concentration marker", func(t *testing.T) {
		_, _, err := ParseUncertaintySummary(testDoc([]string{"nothing here"}), factors, species, domain.SolutionBase)
		require.Error(t, err)
		assert.True(t, pmferrors.IsStructural(err))
	})

	t.Run("row count mismatch", func(t *testing.T) {
		doc := uncertaintySheet(factors, []string{"PM10", "OC", "EC"}, 14, nil)
		_, _, err := ParseUncertaintySummary(doc, factors, species, domain.SolutionBase)
		require.Error(t, err)
		assert.True(t, pmferrors.IsStructural(err))
	})

	t.Run("short swap row", func(t *testing.T) {
		doc := uncertaintySheet(factors, species, 14, []int{3})
		_, _, err := ParseUncertaintySummary(doc, factors, species, domain.SolutionBase)
		require.Error(t, err)
		assert.True(t, pmferrors.IsStructural(err))
	})

	t.Run("unknown solution", func(t *testing.T) {
		doc := uncertaintySheet(factors, species, 14, nil)
		_, _, err := ParseUncertaintySummary(doc, factors, species, domain.Solution("x"))
		require.Error(t, err)
		assert.True(t, pmferrors.IsStructural(err))
	})
}
