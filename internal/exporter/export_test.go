package exporter

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pmferrors "pmfkit/internal/errors"
	"pmfkit/internal/ingest"
	"pmfkit/internal/pmf"
	"pmfkit/pkg/contracts/domain"
)

// stubReader backs a run with fixed base tables; everything constrained or
// bootstrap-related is reported absent.
type stubReader struct{}

func (stubReader) BaseProfiles() (*domain.ProfileTable, error) {
	return &domain.ProfileTable{
		Species: []string{"PM10", "OC"},
		Factors: []string{"Factor 1", "Factor 2"},
		Values: [][]float64{
			{10.0, 5.0},
			{2.0, math.NaN()},
		},
	}, nil
}

func (stubReader) ConstrainedProfiles([]string) (*domain.ProfileTable, error) {
	return nil, pmferrors.NotFound("SiteA_Constrained.xlsx", "no such file")
}

func (stubReader) Contributions(solution domain.Solution, factors []string) (*domain.ContributionTable, []int, error) {
	if solution == domain.SolutionConstrained {
		return nil, nil, pmferrors.NotFound("SiteA_Constrained.xlsx", "no such file")
	}
	return &domain.ContributionTable{
		Dates:   []time.Time{time.Date(2015, 6, 30, 0, 0, 0, 0, time.UTC)},
		Factors: factors,
		Values:  [][]float64{{1.5, math.NaN()}},
	}, nil, nil
}

func (stubReader) Bootstrap(domain.Solution, ingest.BootstrapOptions) (*domain.BootstrapReplicateTable, *domain.BootstrapMappingTable, []string, error) {
	return nil, nil, nil, pmferrors.NotFound("SiteA_boot.xlsx", "no such file")
}

func (stubReader) UncertaintySummary(domain.Solution, []string, []string) (*domain.UncertaintySummaryTable, *domain.SwapCountTable, error) {
	return nil, nil, pmferrors.NotFound("summary", "no such table")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := strings.TrimPrefix(string(data), "\xef\xbb\xbf")
	records, err := csv.NewReader(strings.NewReader(text)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExportAll(t *testing.T) {
	dir := t.TempDir()
	run := pmf.NewRun("SiteA", stubReader{}, testLogger())
	exp := New(run, NewCSVWriter(dir), testLogger())

	require.NoError(t, exp.ExportAll(context.Background()))

	profiles := readCSV(t, filepath.Join(dir, "SiteA_profiles_base.csv"))
	require.Len(t, profiles, 3)
	assert.Equal(t, []string{"Specie", "Factor 1", "Factor 2"}, profiles[0])
	assert.Equal(t, []string{"PM10", "10", "5"}, profiles[1])
	// Missing values render as empty cells.
	assert.Equal(t, []string{"OC", "2", ""}, profiles[2])

	contrib := readCSV(t, filepath.Join(dir, "SiteA_contributions_base.csv"))
	require.Len(t, contrib, 2)
	assert.Equal(t, []string{"2015-06-30", "1.5", ""}, contrib[1])

	// Absent sources produce no files rather than failing the export.
	_, err := os.Stat(filepath.Join(dir, "SiteA_profiles_constrained.csv"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "SiteA_bootstrap_base.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestExportAllWithJSON(t *testing.T) {
	dir := t.TempDir()
	run := pmf.NewRun("SiteA", stubReader{}, testLogger())
	exp := New(run, NewCSVWriter(dir), testLogger())
	exp.IncludeJSON = true

	require.NoError(t, exp.ExportAll(context.Background()))

	data, err := os.ReadFile(filepath.Join(dir, "SiteA_profiles_base.json"))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"species": ["PM10", "OC"],
		"factors": ["Factor 1", "Factor 2"],
		"values": [[10, 5], [2, null]]
	}`, string(data))
}

func TestExportSeasonal(t *testing.T) {
	dir := t.TempDir()
	run := pmf.NewRun("SiteA", stubReader{}, testLogger())
	exp := New(run, NewCSVWriter(dir), testLogger())

	require.NoError(t, exp.ExportSeasonal(domain.SolutionBase, false))

	records := readCSV(t, filepath.Join(dir, "SiteA_seasonal_base.csv"))
	require.Len(t, records, 6) // header + 4 seasons + annual
	assert.Equal(t, []string{"Season", "Factor 1", "Factor 2"}, records[0])
	assert.Equal(t, "Summer", records[3][0])
	assert.Equal(t, "Annual", records[5][0])
}

func TestBootstrapRecordsLayout(t *testing.T) {
	table := &domain.BootstrapReplicateTable{
		Species:    []string{"PM10", "OC"},
		Factors:    []string{"Factor 1", "Factor 2"},
		Replicates: 2,
		Values: [][]float64{
			{1.0, 2.0},
			{3.0, 4.0},
			{5.0, 6.0},
			{7.0, 8.0},
		},
	}

	headers, records := BootstrapRecords(table)
	assert.Equal(t, []string{"Specie", "Profile", "Boot0", "Boot1"}, headers)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"OC", "Factor 1", "5", "6"}, records[2])
}
