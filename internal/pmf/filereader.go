package pmf

import (
	"path/filepath"

	"pmfkit/internal/ingest"
	"pmfkit/internal/source"
	"pmfkit/pkg/contracts/domain"
)

// Workbook suffixes and sheet names of the upstream xlsx export. These must
// match the export convention byte for byte.
const (
	suffixBase            = "_base.xlsx"
	suffixConstrained     = "_Constrained.xlsx"
	suffixBoot            = "_boot.xlsx"
	suffixConstrainedBoot = "_Gcon_profile_boot.xlsx"
	suffixBaseError       = "_BaseErrorEstimationSummary.xlsx"
	suffixConstrError     = "_ConstrainedErrorEstimationSummary.xlsx"

	sheetProfiles      = "Profiles"
	sheetContributions = "Contributions"
	sheetBaseError     = "Error Estimation Summary"
	sheetConstrError   = "Constrained Error Est. Summary"
)

// FileReader reads the per-site workbooks of an xlsx export:
// <dir>/<site><suffix>.
type FileReader struct {
	dir  string
	site string
}

// NewFileReader builds a reader over the workbook directory for one site.
func NewFileReader(dir, site string) *FileReader {
	return &FileReader{dir: dir, site: site}
}

func (r *FileReader) sheet(suffix, sheet string) (*source.Document, error) {
	return source.ReadSheet(filepath.Join(r.dir, r.site+suffix), sheet)
}

// BaseProfiles reads the profile section of <site>_base.xlsx.
func (r *FileReader) BaseProfiles() (*domain.ProfileTable, error) {
	doc, err := r.sheet(suffixBase, sheetProfiles)
	if err != nil {
		return nil, err
	}
	return ingest.ParseProfiles(doc, ingest.ProfileOptions{})
}

// ConstrainedProfiles reads the profile section of <site>_Constrained.xlsx,
// imposing the base factor order.
func (r *FileReader) ConstrainedProfiles(factors []string) (*domain.ProfileTable, error) {
	doc, err := r.sheet(suffixConstrained, sheetProfiles)
	if err != nil {
		return nil, err
	}
	return ingest.ParseProfiles(doc, ingest.ProfileOptions{Factors: factors})
}

// Contributions reads the contribution section of the solution's workbook.
func (r *FileReader) Contributions(solution domain.Solution, factors []string) (*domain.ContributionTable, []int, error) {
	suffix := suffixBase
	if solution == domain.SolutionConstrained {
		suffix = suffixConstrained
	}
	doc, err := r.sheet(suffix, sheetContributions)
	if err != nil {
		return nil, nil, err
	}
	return ingest.ParseContributions(doc, factors)
}

// Bootstrap reads the solution's bootstrap workbook.
func (r *FileReader) Bootstrap(solution domain.Solution, opts ingest.BootstrapOptions) (*domain.BootstrapReplicateTable, *domain.BootstrapMappingTable, []string, error) {
	suffix := suffixBoot
	if solution == domain.SolutionConstrained {
		suffix = suffixConstrainedBoot
	}
	doc, err := r.sheet(suffix, sheetProfiles)
	if err != nil {
		return nil, nil, nil, err
	}
	return ingest.ParseBootstrap(doc, opts)
}

// UncertaintySummary reads the solution's error estimation workbook.
func (r *FileReader) UncertaintySummary(solution domain.Solution, factors, species []string) (*domain.UncertaintySummaryTable, *domain.SwapCountTable, error) {
	suffix, sheet := suffixBaseError, sheetBaseError
	if solution == domain.SolutionConstrained {
		suffix, sheet = suffixConstrError, sheetConstrError
	}
	doc, err := r.sheet(suffix, sheet)
	if err != nil {
		return nil, nil, err
	}
	return ingest.ParseUncertaintySummary(doc, factors, species, solution)
}
