// Package services holds the application services between the transport
// layer and the run objects.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	_ "modernc.org/sqlite"

	"pmfkit/internal/config"
	pmferrors "pmfkit/internal/errors"
	"pmfkit/internal/pmf"
	"pmfkit/internal/source"
	"pmfkit/pkg/contracts/domain"
)

// RunService owns the run objects, one per site. Run objects are not safe
// for concurrent use, so every access goes through the service mutex.
type RunService struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *sql.DB

	mu   sync.Mutex
	runs map[string]*pmf.Run
}

// BootstrapResult bundles the two tables a bootstrap read produces.
type BootstrapResult struct {
	Replicates *domain.BootstrapReplicateTable `json:"replicates"`
	Mapping    *domain.BootstrapMappingTable   `json:"mapping"`
}

// UncertaintyResult bundles the uncertainty summary with the optional DISP
// swap counts.
type UncertaintyResult struct {
	Summary *domain.UncertaintySummaryTable `json:"summary"`
	Swaps   *domain.SwapCountTable          `json:"swaps,omitempty"`
}

// NewRunService creates the service. With a database DSN configured, runs
// read from the relational export; otherwise from the workbook directory.
func NewRunService(cfg *config.Config, logger *slog.Logger) (*RunService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &RunService{
		cfg:    cfg,
		logger: logger.With(slog.String("service", "run")),
		runs:   make(map[string]*pmf.Run),
	}
	if cfg.Database.DSN != "" {
		db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		s.db = db
	}
	return s, nil
}

// Close releases the database connection, if any.
func (s *RunService) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// run returns the cached run for a site, building it on first use. The
// caller must hold the mutex.
func (s *RunService) run(site string) (*pmf.Run, error) {
	if site == "" {
		return nil, pmferrors.NotFound("run", "empty site name")
	}
	if run, ok := s.runs[site]; ok {
		return run, nil
	}

	var run *pmf.Run
	if s.db != nil {
		run = pmf.NewDBRun(s.db, site, s.cfg.Database.Program, s.cfg.Database.Tables, s.logger)
	} else {
		run = pmf.NewFileRun(s.cfg.Data.Dir, site, s.logger)
	}
	run.DivergenceThreshold = s.cfg.Bootstrap.DivergenceThreshold
	s.runs[site] = run
	return run, nil
}

// Sites lists the sites the configured source can serve. The file source
// scans the workbook directory; the relational source queries the distinct
// stations of the base profile table.
func (s *RunService) Sites(ctx context.Context) ([]pmf.SiteInfo, error) {
	if s.db != nil {
		names, err := source.ListSites(s.db, s.cfg.Database.Tables)
		if err != nil {
			return nil, err
		}
		sites := make([]pmf.SiteInfo, len(names))
		for i, name := range names {
			sites[i] = pmf.SiteInfo{Site: name}
		}
		return sites, nil
	}
	s.logger.InfoContext(ctx, "scanning workbook directory", slog.String("dir", s.cfg.Data.Dir))
	return pmf.DiscoverSites(s.cfg.Data.Dir)
}

// Metadata returns the factor/species lists and total-variable choice.
func (s *RunService) Metadata(ctx context.Context, site string) (*domain.Metadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, err := s.run(site)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "reading metadata", slog.String("site", site))
	return run.Metadata()
}

// Profiles returns one solution's factor profiles.
func (s *RunService) Profiles(ctx context.Context, site string, solution domain.Solution) (*domain.ProfileTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, err := s.run(site)
	if err != nil {
		return nil, err
	}
	return run.Profiles(solution)
}

// Contributions returns one solution's dated factor contributions.
func (s *RunService) Contributions(ctx context.Context, site string, solution domain.Solution) (*domain.ContributionTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, err := s.run(site)
	if err != nil {
		return nil, err
	}
	return run.Contributions(solution)
}

// Bootstrap returns one solution's replicate and mapping tables.
func (s *RunService) Bootstrap(ctx context.Context, site string, solution domain.Solution) (*BootstrapResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, err := s.run(site)
	if err != nil {
		return nil, err
	}
	replicates, err := run.BootstrapProfiles(solution)
	if err != nil {
		return nil, err
	}
	mapping, err := run.BootstrapMapping(solution)
	if err != nil {
		return nil, err
	}
	return &BootstrapResult{Replicates: replicates, Mapping: mapping}, nil
}

// Uncertainty returns one solution's uncertainty summary and swap counts.
func (s *RunService) Uncertainty(ctx context.Context, site string, solution domain.Solution) (*UncertaintyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, err := s.run(site)
	if err != nil {
		return nil, err
	}
	summary, err := run.UncertaintySummary(solution)
	if err != nil {
		return nil, err
	}
	swaps, err := run.SwapCounts(solution)
	if err != nil {
		return nil, err
	}
	return &UncertaintyResult{Summary: summary, Swaps: swaps}, nil
}

// Seasonal returns the seasonal aggregation of one species' contributions.
// An empty specie aggregates the total variable.
func (s *RunService) Seasonal(ctx context.Context, site string, solution domain.Solution, specie string, normalize bool) (*domain.SeasonalTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, err := s.run(site)
	if err != nil {
		return nil, err
	}
	return run.SeasonalContribution(solution, specie, true, normalize)
}
