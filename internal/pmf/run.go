package pmf

import (
	"database/sql"
	"fmt"
	"log/slog"

	pmferrors "pmfkit/internal/errors"
	"pmfkit/internal/ingest"
	"pmfkit/internal/source"
	"pmfkit/pkg/contracts/domain"
)

// Run is the in-memory representation of one PMF run for one site. Tables
// are filled lazily on first access and cached; they are never invalidated
// unless an explicit rename/replace operation rewrites labels in place.
// Run is not safe for concurrent use; callers serialize access.
type Run struct {
	Site   string
	reader Reader
	logger *slog.Logger

	// DivergenceThreshold overrides the bootstrap divergence heuristic
	// bound when non-zero.
	DivergenceThreshold float64

	meta *domain.Metadata

	profilesB *domain.ProfileTable
	profilesC *domain.ProfileTable
	contribB  *domain.ContributionTable
	contribC  *domain.ContributionTable
	bootB     *domain.BootstrapReplicateTable
	bootC     *domain.BootstrapReplicateTable
	bootMapB  *domain.BootstrapMappingTable
	bootMapC  *domain.BootstrapMappingTable
	swapB     *domain.SwapCountTable
	swapC     *domain.SwapCountTable
	uncB      *domain.UncertaintySummaryTable
	uncC      *domain.UncertaintySummaryTable
}

// NewRun wires a run object to a reader. A nil logger falls back to
// slog.Default.
func NewRun(site string, reader Reader, logger *slog.Logger) *Run {
	if logger == nil {
		logger = slog.Default()
	}
	return &Run{Site: site, reader: reader, logger: logger.With("site", site)}
}

// NewFileRun builds a run over the xlsx export in dir.
func NewFileRun(dir, site string, logger *slog.Logger) *Run {
	return NewRun(site, NewFileReader(dir, site), logger)
}

// NewDBRun builds a run over a relational export. overrides replaces
// individual default table names.
func NewDBRun(db *sql.DB, site, program string, overrides map[string]string, logger *slog.Logger) *Run {
	return NewRun(site, NewDBReader(source.NewDatabase(db, site, program, overrides)), logger)
}

// Metadata returns the factor/species lists and the total-variable choice,
// reading the base profiles first if needed. An ambiguous total-variable
// guess is logged as a warning, not returned as an error.
func (r *Run) Metadata() (*domain.Metadata, error) {
	if r.meta != nil {
		return r.meta, nil
	}
	if _, err := r.Profiles(domain.SolutionBase); err != nil {
		return nil, err
	}
	return r.meta, nil
}

// Profiles returns the solution's factor profile table.
func (r *Run) Profiles(solution domain.Solution) (*domain.ProfileTable, error) {
	switch solution {
	case domain.SolutionBase:
		if r.profilesB == nil {
			table, err := r.reader.BaseProfiles()
			if err != nil {
				return nil, fmt.Errorf("read base profiles: %w", err)
			}
			r.profilesB = table
			r.establishMetadata(table)
		}
		return r.profilesB, nil
	case domain.SolutionConstrained:
		if r.profilesC == nil {
			meta, err := r.Metadata()
			if err != nil {
				return nil, err
			}
			table, err := r.reader.ConstrainedProfiles(meta.Factors)
			if err != nil {
				return nil, fmt.Errorf("read constrained profiles: %w", err)
			}
			r.profilesC = table
		}
		return r.profilesC, nil
	default:
		return nil, pmferrors.Structural(r.Site, "unknown solution kind %q", solution)
	}
}

// Contributions returns the solution's contribution table.
func (r *Run) Contributions(solution domain.Solution) (*domain.ContributionTable, error) {
	cached := &r.contribB
	if solution == domain.SolutionConstrained {
		cached = &r.contribC
	} else if solution != domain.SolutionBase {
		return nil, pmferrors.Structural(r.Site, "unknown solution kind %q", solution)
	}
	if *cached == nil {
		meta, err := r.Metadata()
		if err != nil {
			return nil, err
		}
		table, dropped, err := r.reader.Contributions(solution, meta.Factors)
		if err != nil {
			return nil, fmt.Errorf("read %s contributions: %w", solution, err)
		}
		if len(dropped) > 0 {
			r.logger.Warn("dropped contribution rows with unparseable dates",
				slog.String("solution", string(solution)),
				slog.Int("count", len(dropped)),
				slog.Any("rows", dropped))
		}
		*cached = table
	}
	return *cached, nil
}

// BootstrapProfiles returns the solution's filtered replicate table.
func (r *Run) BootstrapProfiles(solution domain.Solution) (*domain.BootstrapReplicateTable, error) {
	if err := r.readBootstrap(solution); err != nil {
		return nil, err
	}
	if solution == domain.SolutionConstrained {
		return r.bootC, nil
	}
	return r.bootB, nil
}

// BootstrapMapping returns the solution's factor-mapping table.
func (r *Run) BootstrapMapping(solution domain.Solution) (*domain.BootstrapMappingTable, error) {
	if err := r.readBootstrap(solution); err != nil {
		return nil, err
	}
	if solution == domain.SolutionConstrained {
		return r.bootMapC, nil
	}
	return r.bootMapB, nil
}

// UncertaintySummary returns the solution's BS/DISP/BS-DISP summary.
func (r *Run) UncertaintySummary(solution domain.Solution) (*domain.UncertaintySummaryTable, error) {
	if err := r.readUncertainty(solution); err != nil {
		return nil, err
	}
	if solution == domain.SolutionConstrained {
		return r.uncC, nil
	}
	return r.uncB, nil
}

// SwapCounts returns the solution's DISP swap-count table, or nil when the
// export carries no DISP diagnostics.
func (r *Run) SwapCounts(solution domain.Solution) (*domain.SwapCountTable, error) {
	if err := r.readUncertainty(solution); err != nil {
		return nil, err
	}
	if solution == domain.SolutionConstrained {
		return r.swapC, nil
	}
	return r.swapB, nil
}

// ReadAll reads every table the source provides. Missing backing files or
// tables are skipped and logged per sub-read; a structural failure aborts,
// since an unexpected export format is a defect rather than optional data.
func (r *Run) ReadAll() error {
	reads := []struct {
		name string
		fn   func() error
	}{
		{"base profiles", func() error { _, err := r.Profiles(domain.SolutionBase); return err }},
		{"base contributions", func() error { _, err := r.Contributions(domain.SolutionBase); return err }},
		{"base bootstrap", func() error { _, err := r.BootstrapProfiles(domain.SolutionBase); return err }},
		{"base uncertainties", func() error { _, err := r.UncertaintySummary(domain.SolutionBase); return err }},
		{"constrained profiles", func() error { _, err := r.Profiles(domain.SolutionConstrained); return err }},
		{"constrained contributions", func() error { _, err := r.Contributions(domain.SolutionConstrained); return err }},
		{"constrained bootstrap", func() error { _, err := r.BootstrapProfiles(domain.SolutionConstrained); return err }},
		{"constrained uncertainties", func() error { _, err := r.UncertaintySummary(domain.SolutionConstrained); return err }},
	}

	for _, read := range reads {
		if err := read.fn(); err != nil {
			if pmferrors.IsNotFound(err) {
				r.logger.Info("source not found, skipping", slog.String("table", read.name))
				continue
			}
			return fmt.Errorf("read all: %s: %w", read.name, err)
		}
	}
	return nil
}

func (r *Run) readBootstrap(solution domain.Solution) error {
	cached := &r.bootB
	cachedMap := &r.bootMapB
	if solution == domain.SolutionConstrained {
		cached, cachedMap = &r.bootC, &r.bootMapC
	} else if solution != domain.SolutionBase {
		return pmferrors.Structural(r.Site, "unknown solution kind %q", solution)
	}
	if *cached != nil {
		return nil
	}

	meta, err := r.Metadata()
	if err != nil {
		return err
	}
	replicates, mapping, dropped, err := r.reader.Bootstrap(solution, ingest.BootstrapOptions{
		Factors:             meta.Factors,
		Species:             meta.Species,
		TotalVariable:       meta.TotalVariable,
		DivergenceThreshold: r.DivergenceThreshold,
	})
	if err != nil {
		return fmt.Errorf("read %s bootstrap: %w", solution, err)
	}
	if len(dropped) > 0 {
		r.logger.Warn("dropped non-convergent bootstrap replicates",
			slog.String("solution", string(solution)),
			slog.Int("count", len(dropped)),
			slog.Any("columns", dropped))
	}
	*cached, *cachedMap = replicates, mapping
	return nil
}

func (r *Run) readUncertainty(solution domain.Solution) error {
	cached := &r.uncB
	cachedSwap := &r.swapB
	if solution == domain.SolutionConstrained {
		cached, cachedSwap = &r.uncC, &r.swapC
	} else if solution != domain.SolutionBase {
		return pmferrors.Structural(r.Site, "unknown solution kind %q", solution)
	}
	if *cached != nil {
		return nil
	}

	meta, err := r.Metadata()
	if err != nil {
		return err
	}
	summary, swap, err := r.reader.UncertaintySummary(solution, meta.Factors, meta.Species)
	if err != nil {
		return fmt.Errorf("read %s uncertainties: %w", solution, err)
	}
	*cached, *cachedSwap = summary, swap
	return nil
}

// establishMetadata derives the reference lists from the base profile
// table. The AmbiguousMetadata condition from the total-variable guess is
// logged, not propagated.
func (r *Run) establishMetadata(profiles *domain.ProfileTable) {
	meta := &domain.Metadata{
		Site:    r.Site,
		Factors: append([]string{}, profiles.Factors...),
		Species: append([]string{}, profiles.Species...),
	}
	name, guessed, err := ingest.GuessTotalVariable(profiles.Species)
	if err != nil {
		r.logger.Warn("total variable selection ambiguous", slog.String("reason", err.Error()))
	}
	meta.TotalVariable = name
	meta.TotalVariableGuessed = guessed
	if name != "" {
		r.logger.Info("total variable set", slog.String("total_variable", name), slog.Bool("guessed", guessed))
	}
	r.meta = meta
}
