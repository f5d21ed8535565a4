// Package stats provides descriptive statistics and diagnostics for flux series.
//
// # Summary Statistics
//
//	summary := stats.Describe(series)
//	// summary.Mean, summary.Median, summary.Std (population, divides by N)
//
//	hist := stats.NewHistogram(series.Values, 20)
//	// hist.Edges, hist.Counts, hist.Density
//
// # Coverage
//
// Count missing daily observations per calendar year. Years divisible by 4
// expect 366 days, all others 365:
//
//	for _, yc := range stats.AuditCoverage(years) {
//	    fmt.Printf("%d missing %d\n", yc.Year, yc.Missing)
//	}
//
// # Seasonal Cycle
//
//	cycle := stats.MonthlyMeans(months, flux)
//	// cycle.Means[0] is January; NaN for months without data
//
//	decomp := stats.Decompose(monthlySeries, 12)
//	// decomp.Trend, decomp.Seasonal, decomp.Residual
//
// # Correlation and Residual Diagnostics
//
//	r := stats.Correlation(observed, fitted)
//	dw := stats.DurbinWatson(residuals)
//	lb := stats.LjungBox(residuals, 10, nParams)
//	ic := stats.CalculateIC(stats.GaussianLogLik(sse, n), n, nParams)
package stats
