// fluxreport - Harvard Forest CO2 flux analysis
//
// Loads the daily flux table, then runs the summary statistics, coverage
// audit, seasonal cycle and covariate regression. Figures are rendered into
// one HTML page; the numbers can also be exported as an Excel workbook, CSV
// tables and a Parquet copy of the input.
//
// Settings come from defaults, an optional YAML file (-config or
// GOFLUX_CONFIG), GOFLUX_* environment variables and finally flags.
//
// Exit status is 1 when the input cannot be loaded or the regression cannot
// be fitted. Every analysis that succeeded is still exported.
//
// Build: CGO_ENABLED=0 go build -ldflags="-s -w" -o build/fluxreport ./cmd/fluxreport

package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sartorproj/goflux/analysis"
	"github.com/sartorproj/goflux/config"
	"github.com/sartorproj/goflux/dataset"
	"github.com/sartorproj/goflux/logging"
	"github.com/sartorproj/goflux/regression"
	"github.com/sartorproj/goflux/report"
)

var Version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("fluxreport", flag.ContinueOnError)
	var (
		configPath = fs.String("config", os.Getenv("GOFLUX_CONFIG"), "YAML configuration file")
		input      = fs.String("input", "", "Input table (.csv, .csv.gz, .csv.zst or .parquet)")
		html       = fs.String("html", "", "HTML chart page output")
		workbook   = fs.String("workbook", "", "Excel workbook output")
		tablesDir  = fs.String("tables", "", "Directory for CSV result tables")
		parquetOut = fs.String("parquet-out", "", "Write the loaded table as Parquet")
		logLevel   = fs.String("log-level", "", "Log level: debug, info, warn, error")
		logFile    = fs.String("log-file", "", "Append logs to this file")
		bins       = fs.Int("bins", 0, "Flux histogram bins")
		noPlot     = fs.Bool("no-plot", false, "Skip the HTML chart page")
		version    = fs.Bool("version", false, "Print version and exit")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *version {
		fmt.Printf("fluxreport %s\n", Version)
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fluxreport: %v\n", err)
		return 2
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = *input
		case "html":
			cfg.HTML = *html
		case "workbook":
			cfg.Workbook = *workbook
		case "tables":
			cfg.TablesDir = *tablesDir
		case "parquet-out":
			cfg.ParquetOut = *parquetOut
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-file":
			cfg.LogFile = *logFile
		case "bins":
			cfg.HistogramBins = *bins
		}
	})
	if *noPlot {
		cfg.HTML = ""
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "fluxreport: %v\n", err)
		return 2
	}

	logger, closeLog, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fluxreport: %v\n", err)
		return 2
	}
	defer closeLog()

	logger.Info("fluxreport starting", "version", Version, "input", cfg.Input)

	tbl, err := dataset.Load(cfg.Input, nil)
	if err != nil {
		logger.Error("failed to load input", "error", err)
		return 1
	}
	logger.Info("input loaded", "rows", tbl.Len())

	if cfg.ParquetOut != "" {
		if err := dataset.WriteParquet(cfg.ParquetOut, tbl); err != nil {
			logger.Error("failed to write parquet copy", "error", err)
		} else {
			logger.Info("parquet copy written", "path", cfg.ParquetOut)
		}
	}

	var plotter analysis.Plotter = analysis.NopPlotter{}
	var page *report.Charts
	if cfg.HTML != "" {
		page = report.NewCharts("Harvard Forest CO2 flux")
		page.StartYear, page.EndYear = cfg.PlotStartYear, cfg.PlotEndYear
		plotter = page
	}

	runner := analysis.NewRunner(plotter, logger)
	runner.HistogramBins = cfg.HistogramBins
	res, runErr := runner.Run(tbl)

	export(logger, cfg, page, res)

	var fe *regression.FitError
	if errors.As(runErr, &fe) {
		logger.Error("regression could not be fitted", "error", fe)
		return 1
	}
	return 0
}

// export writes every configured output. Failures are logged and do not
// stop the remaining exports.
func export(logger *slog.Logger, cfg *config.Config, page *report.Charts, res *analysis.Results) {
	if page != nil {
		if err := page.Save(cfg.HTML); err != nil {
			logger.Error("failed to write chart page", "error", err)
		} else {
			logger.Info("chart page written", "path", cfg.HTML, "charts", page.Len())
		}
	}

	if cfg.Workbook != "" {
		if err := report.WriteWorkbook(cfg.Workbook, res); err != nil {
			logger.Error("failed to write workbook", "error", err)
		} else {
			logger.Info("workbook written", "path", cfg.Workbook)
		}
	}

	if cfg.TablesDir != "" {
		paths, err := report.WriteTables(cfg.TablesDir, res)
		if err != nil {
			logger.Error("failed to write tables", "error", err)
		}
		logger.Info("tables written", "dir", cfg.TablesDir, "files", len(paths))
	}
}
