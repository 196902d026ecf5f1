package exporter

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	pmferrors "pmfkit/internal/errors"
	"pmfkit/internal/pmf"
	"pmfkit/pkg/contracts/domain"
)

// Exporter dumps every table of a run as CSV. Tables are collected
// sequentially (the run object is single-threaded), then written
// concurrently.
type Exporter struct {
	run    *pmf.Run
	writer *CSVWriter
	logger *slog.Logger

	// IncludeJSON additionally writes each table as a JSON file.
	IncludeJSON bool
}

// New wires an exporter to a run and an output writer.
func New(run *pmf.Run, writer *CSVWriter, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{run: run, writer: writer, logger: logger}
}

type csvJob struct {
	name    string
	headers []string
	records [][]string
	table   any
}

// ExportAll writes one CSV per available table for both solutions. Tables
// whose backing source is absent are skipped; structural failures abort.
func (e *Exporter) ExportAll(ctx context.Context) error {
	if err := e.run.ReadAll(); err != nil {
		return fmt.Errorf("load run: %w", err)
	}

	var jobs []csvJob
	for _, solution := range []domain.Solution{domain.SolutionBase, domain.SolutionConstrained} {
		collected, err := e.collect(solution)
		if err != nil {
			return err
		}
		jobs = append(jobs, collected...)
	}
	if len(jobs) == 0 {
		return pmferrors.NotFound(e.run.Site, "no tables available to export")
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := e.writer.WriteSimpleCSV(job.name+".csv", job.headers, job.records); err != nil {
				return fmt.Errorf("export %s: %w", job.name, err)
			}
			if e.IncludeJSON {
				if err := e.writer.WriteJSON(job.name+".json", job.table); err != nil {
					return fmt.Errorf("export %s: %w", job.name, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	e.logger.Info("export complete",
		slog.String("site", e.run.Site),
		slog.Int("files", len(jobs)))
	return nil
}

// collect gathers the CSV jobs for one solution, skipping tables whose
// source is absent.
func (e *Exporter) collect(solution domain.Solution) ([]csvJob, error) {
	var jobs []csvJob

	add := func(kind string, table any, headers []string, records [][]string) {
		jobs = append(jobs, csvJob{
			name:    fmt.Sprintf("%s_%s_%s", e.run.Site, kind, solution),
			headers: headers,
			records: records,
			table:   table,
		})
	}
	skippable := func(err error) error {
		if err == nil || pmferrors.IsNotFound(err) {
			return nil
		}
		return err
	}

	profiles, err := e.run.Profiles(solution)
	if err := skippable(err); err != nil {
		return nil, err
	}
	if profiles != nil {
		headers, records := ProfileRecords(profiles)
		add("profiles", profiles, headers, records)
	}

	contrib, err := e.run.Contributions(solution)
	if err := skippable(err); err != nil {
		return nil, err
	}
	if contrib != nil {
		headers, records := ContributionRecords(contrib)
		add("contributions", contrib, headers, records)
	}

	replicates, err := e.run.BootstrapProfiles(solution)
	if err := skippable(err); err != nil {
		return nil, err
	}
	if replicates != nil {
		headers, records := BootstrapRecords(replicates)
		add("bootstrap", replicates, headers, records)

		mapping, err := e.run.BootstrapMapping(solution)
		if err != nil {
			return nil, err
		}
		headers, records = MappingRecords(mapping)
		add("bootstrap_mapping", mapping, headers, records)
	}

	summary, err := e.run.UncertaintySummary(solution)
	if err := skippable(err); err != nil {
		return nil, err
	}
	if summary != nil {
		headers, records := UncertaintyRecords(summary)
		add("uncertainties", summary, headers, records)

		swap, err := e.run.SwapCounts(solution)
		if err != nil {
			return nil, err
		}
		if swap != nil {
			headers, records = SwapRecords(swap)
			add("disp_swaps", swap, headers, records)
		}
	}

	return jobs, nil
}

// ExportSeasonal writes the seasonal aggregation of the total variable's
// contributions for one solution.
func (e *Exporter) ExportSeasonal(solution domain.Solution, normalize bool) error {
	table, err := e.run.SeasonalContribution(solution, "", true, normalize)
	if err != nil {
		return err
	}
	headers, records := SeasonalRecords(table)
	name := fmt.Sprintf("%s_seasonal_%s.csv", e.run.Site, solution)
	return e.writer.WriteSimpleCSV(name, headers, records)
}
