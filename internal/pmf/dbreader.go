package pmf

import (
	pmferrors "pmfkit/internal/errors"
	"pmfkit/internal/ingest"
	"pmfkit/internal/source"
	"pmfkit/pkg/contracts/domain"
)

// DBReader reads the normalized tables of a relational export. The tables
// are self-describing (real column names), so most of the positional work
// of the sheet variant does not apply; the non-convergence filter does.
type DBReader struct {
	db *source.Database
}

// NewDBReader builds a reader over a site-filtered database source.
func NewDBReader(db *source.Database) *DBReader {
	return &DBReader{db: db}
}

// BaseProfiles reads the base profile table.
func (r *DBReader) BaseProfiles() (*domain.ProfileTable, error) {
	doc, err := r.db.Table(source.TableProfilesBase)
	if err != nil {
		return nil, err
	}
	return ingest.ProfilesFromTable(doc)
}

// ConstrainedProfiles reads the constrained profile table. The stored table
// carries its own factor columns; the imposed order is not needed here.
func (r *DBReader) ConstrainedProfiles(_ []string) (*domain.ProfileTable, error) {
	doc, err := r.db.Table(source.TableProfilesConstrained)
	if err != nil {
		return nil, err
	}
	return ingest.ProfilesFromTable(doc)
}

// Contributions reads the solution's contribution table.
func (r *DBReader) Contributions(solution domain.Solution, _ []string) (*domain.ContributionTable, []int, error) {
	logical := source.TableContribBase
	if solution == domain.SolutionConstrained {
		logical = source.TableContribConstrained
	}
	doc, err := r.db.Table(logical)
	if err != nil {
		return nil, nil, err
	}
	return ingest.ContributionsFromTable(doc)
}

// Bootstrap reads the solution's replicate and mapping tables and applies
// the non-convergence filter.
func (r *DBReader) Bootstrap(solution domain.Solution, opts ingest.BootstrapOptions) (*domain.BootstrapReplicateTable, *domain.BootstrapMappingTable, []string, error) {
	replicateTable, mappingTable := source.TableBootProfilesBase, source.TableBootMappingBase
	if solution == domain.SolutionConstrained {
		replicateTable, mappingTable = source.TableBootProfilesConstr, source.TableBootMappingConstrained
	}

	docBS, err := r.db.Table(replicateTable)
	if err != nil {
		return nil, nil, nil, err
	}
	replicates, err := ingest.BootstrapReplicatesFromTable(docBS)
	if err != nil {
		return nil, nil, nil, err
	}

	docMap, err := r.db.Table(mappingTable)
	if err != nil {
		return nil, nil, nil, err
	}
	mapping, err := ingest.BootstrapMappingFromTable(docMap)
	if err != nil {
		return nil, nil, nil, err
	}

	dropped := ingest.FilterDivergedReplicates(replicates, mapping, opts)
	return replicates, mapping, dropped, nil
}

// UncertaintySummary reads the solution's swap-count and summary tables.
func (r *DBReader) UncertaintySummary(solution domain.Solution, _, _ []string) (*domain.UncertaintySummaryTable, *domain.SwapCountTable, error) {
	swapTable, summaryTable := source.TableDispSwapBase, source.TableUncertaintyBase
	if solution == domain.SolutionConstrained {
		swapTable, summaryTable = source.TableDispSwapConstrained, source.TableUncertaintyConstrained
	}

	var swap *domain.SwapCountTable
	docSwap, err := r.db.Table(swapTable)
	if err == nil {
		swap, err = ingest.SwapCountFromTable(docSwap)
		if err != nil {
			return nil, nil, err
		}
	} else if !pmferrors.IsNotFound(err) {
		return nil, nil, err
	}

	docSum, err := r.db.Table(summaryTable)
	if err != nil {
		return nil, nil, err
	}
	summary, err := ingest.UncertaintyFromTable(docSum)
	if err != nil {
		return nil, nil, err
	}
	return summary, swap, nil
}
