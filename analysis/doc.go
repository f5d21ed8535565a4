// Package analysis runs the flux analyses over a loaded table.
//
// Four analyses read the same immutable dataset.Table and never depend on
// each other's output:
//
//   - Summary: mean, median and population standard deviation of the flux,
//     with a density histogram.
//   - Coverage: missing daily observations per year, from the first to the
//     last year present. A year is expected to have 366 days when it is
//     divisible by four and 365 otherwise.
//   - Seasonal: mean flux of each calendar month across all years, plus a
//     classical decomposition of the monthly series when two full years are
//     spanned.
//   - Regression: ordinary least squares of flux on net radiation, air
//     temperature, water vapour and wind speed, with an intercept.
//
// # Direct Use
//
//	mean, median, std := analysis.Summarize(tbl)
//	missing := analysis.MissingData(tbl)
//	cycle := analysis.SeasonalCycle(tbl)
//	model, err := analysis.Regress(tbl)
//
// # Runner
//
// A Runner executes all four in order, hands figures to a Plotter and logs
// one line per component. A failed fit does not stop the other analyses:
//
//	runner := analysis.NewRunner(report.NewCharts("Harvard Forest"), logger)
//	res, err := runner.Run(tbl)
//	// res.Summary, res.Coverage and res.Seasonal are set even when
//	// errors.Is(err, regression.ErrSingular).
package analysis
