// Package pmf holds the run object: the in-memory representation of one
// PMF run for one monitoring site, its cached tables, and the derived
// analytical views over them.
package pmf

import (
	"pmfkit/internal/ingest"
	"pmfkit/pkg/contracts/domain"
)

// Reader produces normalized tables from one backing source (workbooks or a
// database). Implementations are stateless with respect to the run: every
// prerequisite (factor order, species list, total variable) is passed in
// explicitly by the caller.
type Reader interface {
	// BaseProfiles also establishes the authoritative factor and species
	// lists for the run.
	BaseProfiles() (*domain.ProfileTable, error)
	// ConstrainedProfiles imposes the base factor order; the constrained
	// export carries no reliable header of its own.
	ConstrainedProfiles(factors []string) (*domain.ProfileTable, error)
	// Contributions returns the dated factor contributions plus the source
	// row positions dropped for unparseable dates.
	Contributions(solution domain.Solution, factors []string) (*domain.ContributionTable, []int, error)
	// Bootstrap returns the replicate and mapping tables plus the names of
	// replicate columns removed by the non-convergence filter.
	Bootstrap(solution domain.Solution, opts ingest.BootstrapOptions) (*domain.BootstrapReplicateTable, *domain.BootstrapMappingTable, []string, error)
	// UncertaintySummary returns the BS/DISP/BS-DISP summary and, when the
	// export carries DISP diagnostics, the swap-count table (else nil).
	UncertaintySummary(solution domain.Solution, factors, species []string) (*domain.UncertaintySummaryTable, *domain.SwapCountTable, error)
}
