package pmf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmfkit/pkg/contracts/domain"
)

func TestToCubicMeter(t *testing.T) {
	run := newTestRun(&fakeReader{})

	// Defaults: total variable, all factors.
	table, err := run.ToCubicMeter(domain.SolutionBase, "", nil)
	require.NoError(t, err)
	require.Len(t, table.Values, 4)
	// contribution x PM10 profile value: 1*10 and 2*5.
	assert.Equal(t, []float64{10.0, 10.0}, table.Values[0])

	// Explicit specie and factor subset.
	table, err = run.ToCubicMeter(domain.SolutionBase, "OC*", []string{"Factor 2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Factor 2"}, table.Factors)
	assert.Equal(t, []float64{2.0}, table.Values[0])
}

func TestToCubicMeterUnknownLabels(t *testing.T) {
	run := newTestRun(&fakeReader{})

	_, err := run.ToCubicMeter(domain.SolutionBase, "nope", nil)
	require.Error(t, err)

	_, err = run.ToCubicMeter(domain.SolutionBase, "", []string{"Factor 9"})
	require.Error(t, err)
}

func TestToRelativeMass(t *testing.T) {
	run := newTestRun(&fakeReader{})

	table, err := run.ToRelativeMass(domain.SolutionBase, nil, nil)
	require.NoError(t, err)

	// Every column of the total variable row is exactly 1.
	row, ok := table.Row("PM10")
	require.True(t, ok)
	assert.Equal(t, []float64{1.0, 1.0}, row)

	row, ok = table.Row("OC*")
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{0.2, 0.2}, row, 1e-12)
}

func TestTotalSpecieSum(t *testing.T) {
	run := newTestRun(&fakeReader{})

	table, err := run.TotalSpecieSum(domain.SolutionBase)
	require.NoError(t, err)

	row, ok := table.Row("PM10")
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{100.0 * 10 / 15, 100.0 * 5 / 15}, row, 1e-12)
}

func TestSeasonalContribution(t *testing.T) {
	run := newTestRun(&fakeReader{})

	// One sample per season, so seasonal means equal the converted values.
	table, err := run.SeasonalContribution(domain.SolutionBase, "", false, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Winter", "Spring", "Summer", "Fall"}, table.Seasons)
	for _, row := range table.Values {
		assert.InDeltaSlice(t, []float64{10.0, 10.0}, row, 1e-12)
	}
}

func TestSeasonalContributionNormalizedAnnual(t *testing.T) {
	run := newTestRun(&fakeReader{})

	table, err := run.SeasonalContribution(domain.SolutionBase, "", true, true)
	require.NoError(t, err)
	require.Equal(t, []string{"Winter", "Spring", "Summer", "Fall", "Annual"}, table.Seasons)
	for _, row := range table.Values {
		assert.InDeltaSlice(t, []float64{0.5, 0.5}, row, 1e-12)
	}
}

func TestSeasonOf(t *testing.T) {
	tests := []struct {
		month time.Month
		want  string
	}{
		{time.December, "Winter"},
		{time.January, "Winter"},
		{time.February, "Winter"},
		{time.March, "Spring"},
		{time.May, "Spring"},
		{time.June, "Summer"},
		{time.August, "Summer"},
		{time.September, "Fall"},
		{time.November, "Fall"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, seasonOf(tt.month), "month %s", tt.month)
	}
}
