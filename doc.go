// Package goflux analyses daily CO2 flux measurements from an eddy-covariance
// tower.
//
// GoFlux loads a table of daily net ecosystem exchange with four
// meteorological covariates and runs four independent analyses over it:
// descriptive statistics, a per-year coverage audit, the seasonal cycle and
// an ordinary least squares regression of the flux on its covariates.
//
// # Features
//
//   - Delimited text, gzip, zstd and Parquet input
//   - Mean, median, population standard deviation and density histogram
//   - Missing-day counts per year under a divisible-by-four leap rule
//   - Monthly climatology and classical decomposition of the monthly series
//   - OLS with collinearity detection, residual diagnostics and per-column
//     contributions
//   - Interactive HTML charts, Excel workbook and CSV table exports
//
// # Quick Start
//
//	tbl, err := dataset.Load("harvard_forest.csv", nil)
//	mean, median, std := analysis.Summarize(tbl)
//	missing := analysis.MissingData(tbl)
//	cycle := analysis.SeasonalCycle(tbl)
//	model, err := analysis.Regress(tbl)
//
// Or run everything with figures:
//
//	page := report.NewCharts("Harvard Forest")
//	res, err := analysis.NewRunner(page, logger).Run(tbl)
//	page.Save("flux.html")
//
// # Packages
//
// The library is organized into the following packages:
//
//   - dataset: Observation table and loaders
//   - timeseries: Time series data structures and utilities
//   - stats: Descriptive statistics, coverage, seasonal cycle and diagnostics
//   - regression: Ordinary least squares
//   - analysis: Table-level analyses and the run sequencer
//   - report: Charts and exports
//   - config, logging: Command settings and structured logs
//
// The fluxreport command in cmd/fluxreport ties these together.
package goflux
