// Command pmfexport reads one site's PMF run and dumps every available
// table as CSV.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"

	_ "modernc.org/sqlite"

	"pmfkit/internal/config"
	"pmfkit/internal/exporter"
	"pmfkit/internal/infrastructure"
	"pmfkit/internal/pmf"
	"pmfkit/pkg/contracts/domain"
)

func main() {
	site := flag.String("site", "", "site (station) name of the run to export")
	dir := flag.String("dir", "", "directory containing the xlsx exports (defaults to the configured data dir)")
	dsn := flag.String("dsn", "", "read from this SQLite database instead of xlsx workbooks")
	out := flag.String("out", ".", "output directory for the CSV files")
	seasonal := flag.Bool("seasonal", false, "also export the seasonal contribution aggregation")
	asJSON := flag.Bool("json", false, "also write each table as JSON")
	flag.Parse()

	if *site == "" {
		slog.Error("missing required -site flag")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if *dir == "" {
		*dir = cfg.Data.Dir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	logger.Info("Starting run export",
		slog.String("site", *site),
		slog.String("input_dir", *dir),
		slog.String("output_dir", *out))

	var run *pmf.Run
	if *dsn != "" {
		db, err := sql.Open(cfg.Database.Driver, *dsn)
		if err != nil {
			logger.Error("Failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		run = pmf.NewDBRun(db, *site, cfg.Database.Program, cfg.Database.Tables, logger)
	} else {
		run = pmf.NewFileRun(*dir, *site, logger)
	}
	run.DivergenceThreshold = cfg.Bootstrap.DivergenceThreshold

	exp := exporter.New(run, exporter.NewCSVWriter(*out), logger)
	exp.IncludeJSON = *asJSON
	if err := exp.ExportAll(context.Background()); err != nil {
		logger.Error("Export failed", "error", err)
		os.Exit(1)
	}

	if *seasonal {
		for _, solution := range []domain.Solution{domain.SolutionBase, domain.SolutionConstrained} {
			if err := exp.ExportSeasonal(solution, false); err != nil {
				logger.Warn("Seasonal export skipped",
					slog.String("solution", string(solution)),
					slog.String("error", err.Error()))
			}
		}
	}

	logger.Info("Export finished", slog.String("site", *site))
}
