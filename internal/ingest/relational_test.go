package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pmferrors "pmfkit/internal/errors"
	"pmfkit/internal/source"
	"pmfkit/pkg/contracts/domain"
)

func relDoc(columns []string, rows ...[]string) *source.Document {
	return &source.Document{Name: "test", Columns: columns, Rows: rows}
}

func TestProfilesFromTable(t *testing.T) {
	doc := relDoc(
		[]string{"index", "Specie", "Factor 1", "Factor 2", "Station"},
		[]string{"0", "PM10", "12.5", "8.75", "SiteA"},
		[]string{"1", "OC", "2.0", "", "SiteA"},
	)

	table, err := ProfilesFromTable(doc)
	require.NoError(t, err)

	// Bookkeeping columns never surface as factors.
	assert.Equal(t, []string{"Factor 1", "Factor 2"}, table.Factors)
	assert.Equal(t, []string{"PM10", "OC"}, table.Species)

	v, ok := table.Value("OC", "Factor 2")
	require.True(t, ok)
	assert.True(t, domain.IsMissing(v))
}

func TestProfilesFromTableEmpty(t *testing.T) {
	_, err := ProfilesFromTable(relDoc([]string{"Specie", "Factor 1"}))
	require.Error(t, err)
	assert.True(t, pmferrors.IsNotFound(err))
}

func TestContributionsFromTable(t *testing.T) {
	doc := relDoc(
		[]string{"Date", "Factor 1", "Factor 2", "Station", "Program"},
		[]string{"2015-06-30", "1.5", "-999", "SiteA", "P1"},
		[]string{"garbage", "9.9", "9.9", "SiteA", "P1"},
		[]string{"2015-07-03", "2.5", "3.5", "SiteA", "P1"},
	)

	table, dropped, err := ContributionsFromTable(doc)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, dropped)
	require.Len(t, table.Dates, 2)
	assert.True(t, domain.IsMissing(table.Values[0][1]))
	assert.Equal(t, 2.5, table.Values[1][0])
}

func TestBootstrapReplicatesFromTable(t *testing.T) {
	doc := relDoc(
		[]string{"Specie", "Profile", "Boot0", "Boot1", "Station"},
		[]string{"PM10", "Factor 1", "12.0", "13.0", "SiteA"},
		[]string{"PM10", "Factor 2", "8.0", "9.0", "SiteA"},
		[]string{"OC", "Factor 1", "2.0", "2.1", "SiteA"},
		[]string{"OC", "Factor 2", "1.0", "1.1", "SiteA"},
	)

	table, err := BootstrapReplicatesFromTable(doc)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Replicates)
	assert.Equal(t, []string{"PM10", "OC"}, table.Species)
	assert.Equal(t, []string{"Factor 1", "Factor 2"}, table.Factors)

	row, ok := table.Row("OC", "Factor 1")
	require.True(t, ok)
	assert.Equal(t, []float64{2.0, 2.1}, row)
}

func TestBootstrapReplicatesFromTableMissingPair(t *testing.T) {
	doc := relDoc(
		[]string{"Specie", "Profile", "Boot0"},
		[]string{"PM10", "Factor 1", "12.0"},
		[]string{"OC", "Factor 2", "1.0"},
	)
	_, err := BootstrapReplicatesFromTable(doc)
	require.Error(t, err)
	assert.True(t, pmferrors.IsStructural(err))
}

func TestBootstrapMappingFromTable(t *testing.T) {
	doc := relDoc(
		[]string{"BS-mapping", "Factor 1", "Factor 2", "unmapped", "Station"},
		[]string{"BF-Factor 1", "48", "1", "1", "SiteA"},
		[]string{"BF-Factor 2", "0", "50", "0", "SiteA"},
	)

	table, err := BootstrapMappingFromTable(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"BF-Factor 1", "BF-Factor 2"}, table.BaseFactors)
	assert.Equal(t, []string{"Factor 1", "Factor 2", "unmapped"}, table.Columns)
	assert.Equal(t, 50, table.ConvergedRuns())
}

func TestSwapCountFromTable(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		doc := relDoc(
			[]string{"Count", "Factor 1", "Factor 2", "Station"},
			[]string{"Swaps", "3", "0", "SiteA"},
		)
		table, err := SwapCountFromTable(doc)
		require.NoError(t, err)
		require.NotNil(t, table)
		assert.Equal(t, []string{"Factor 1", "Factor 2"}, table.Factors)
		assert.Equal(t, []int{3, 0}, table.Counts)
	})

	t.Run("absent is not an error", func(t *testing.T) {
		table, err := SwapCountFromTable(relDoc([]string{"Count", "Factor 1"}))
		require.NoError(t, err)
		assert.Nil(t, table)
	})
}

func TestUncertaintyFromTable(t *testing.T) {
	doc := relDoc(
		[]string{"Profile", "Specie", "Base run", "BS 5th", "Station"},
		[]string{"Factor 1", "PM10", "12.5", "10.1", "SiteA"},
		[]string{"Factor 1", "OC", "2.0", "1.8", "SiteA"},
	)

	table, err := UncertaintyFromTable(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Base run", "BS 5th"}, table.Columns)
	require.Len(t, table.Rows, 2)

	v, ok := table.Value("Factor 1", "OC", "BS 5th")
	require.True(t, ok)
	assert.Equal(t, 1.8, v)
}
