package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pmferrors "pmfkit/internal/errors"
	"pmfkit/pkg/contracts/domain"
)

func profileSheet() [][]string {
	return [][]string{
		{"Factor Profiles (conc. of species)"},
		{"", ""},
		{"", "Species", "Factor 1", "Factor 2"},
		{"", "PM10", "12.5", "8.75"},
		{"", "OC", "2.0", "0.0000042"},
		{"", ""},
		{"", "EC", "1.5", ""},
		{"Factor Profiles (% of species sum)"},
		{"", "Species", "Factor 1", "Factor 2"},
		{"", "PM10", "58.8", "41.2"},
	}
}

func TestParseProfilesBase(t *testing.T) {
	table, err := ParseProfiles(testDoc(profileSheet()...), ProfileOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Factor 1", "Factor 2"}, table.Factors)
	assert.Equal(t, []string{"PM10", "OC", "EC"}, table.Species)

	v, ok := table.Value("PM10", "Factor 2")
	require.True(t, ok)
	assert.Equal(t, 8.75, v)

	// Values below the noise floor are clamped to exactly zero.
	v, ok = table.Value("OC", "Factor 2")
	require.True(t, ok)
	assert.Zero(t, v)

	// An empty cell is missing, not zero.
	v, ok = table.Value("EC", "Factor 2")
	require.True(t, ok)
	assert.True(t, domain.IsMissing(v))
}

func TestParseProfilesConstrained(t *testing.T) {
	rows := [][]string{
		{"Factor Profiles (conc. of species)"},
		{"", "PM10", "11.0", "9.0", "", "trailing noise"},
		{"", "OC", "1.8", "2.2", "", ""},
		{"Factor Profiles (% of species sum)"},
	}
	table, err := ParseProfiles(testDoc(rows...), ProfileOptions{Factors: []string{"Factor 1", "Factor 2"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"Factor 1", "Factor 2"}, table.Factors)
	assert.Equal(t, []string{"PM10", "OC"}, table.Species)

	v, ok := table.Value("OC", "Factor 2")
	require.True(t, ok)
	assert.Equal(t, 2.2, v)
}

func TestParseProfilesConstrainedTooNarrow(t *testing.T) {
	rows := [][]string{
		{"Factor Profiles (conc. of species)"},
		{"", "PM10", "11.0"},
		{"Factor Profiles (% of species sum)"},
	}
	_, err := ParseProfiles(testDoc(rows...), ProfileOptions{Factors: []string{"Factor 1", "Factor 2"}})
	require.Error(t, err)
	assert.True(t, pmferrors.IsStructural(err))
}

func TestParseProfilesErrors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
	}{
		{
			name: "single marker",
			rows: [][]string{
				{"Factor Profiles (conc. of species)"},
				{"", "PM10", "1.0"},
			},
		},
		{
			name: "empty section",
			rows: [][]string{
				{"Factor Profiles (conc. of species)"},
				{"", ""},
				{"Factor Profiles (% of species sum)"},
			},
		},
		{
			name: "header without factors",
			rows: [][]string{
				{"Factor Profiles (conc. of species)"},
				{"", "Species"},
				{"Factor Profiles (% of species sum)"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProfiles(testDoc(tt.rows...), ProfileOptions{})
			require.Error(t, err)
			assert.True(t, pmferrors.IsStructural(err))
		})
	}
}
