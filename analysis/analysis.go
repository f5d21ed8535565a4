// Package analysis runs the flux analyses over a loaded table.
package analysis

import (
	"math"

	"github.com/sartorproj/goflux/dataset"
	"github.com/sartorproj/goflux/regression"
	"github.com/sartorproj/goflux/stats"
	"github.com/sartorproj/goflux/timeseries"
)

// Summarize returns the mean, median and population standard deviation of
// the flux column. All three are NaN for an empty table.
func Summarize(tbl *dataset.Table) (mean, median, std float64) {
	s := stats.Describe(tbl.Series(dataset.ColFlux))
	return s.Mean, s.Median, s.Std
}

// MissingData returns the number of missing daily observations for every
// year from the first to the last year in the table.
func MissingData(tbl *dataset.Table) []int {
	coverage := stats.AuditCoverage(tbl.Years())
	missing := make([]int, len(coverage))
	for i, yc := range coverage {
		missing[i] = yc.Missing
	}
	return missing
}

// SeasonalCycle returns the mean flux of each calendar month, January first.
func SeasonalCycle(tbl *dataset.Table) [12]float64 {
	return stats.MonthlyMeans(tbl.Months(), tbl.Column(dataset.ColFlux)).Means
}

// DesignColumns names the regression design matrix columns.
func DesignColumns() []string {
	names := []string{"intercept"}
	for _, c := range dataset.Covariates {
		names = append(names, c.String())
	}
	return names
}

// DesignMatrix builds the regression inputs: one row per observation with
// an intercept followed by the covariates.
func DesignMatrix(tbl *dataset.Table) [][]float64 {
	x := make([][]float64, tbl.Len())
	for i := range x {
		o := tbl.Row(i)
		row := make([]float64, 1, 1+len(dataset.Covariates))
		row[0] = 1
		for _, c := range dataset.Covariates {
			row = append(row, o.Value(c))
		}
		x[i] = row
	}
	return x
}

// Regress fits flux against the covariates plus an intercept. A
// *regression.FitError is returned when the normal equations are singular.
func Regress(tbl *dataset.Table) (*regression.Model, error) {
	return regression.Fit(DesignMatrix(tbl), tbl.Column(dataset.ColFlux), DesignColumns())
}

// MonthlySeries averages flux per calendar month of every year, from
// January of the first year to December of the last. Months without data
// are NaN. Times are month centres on the decimal-year axis. Rows whose
// month lies outside 1-12 are skipped.
func MonthlySeries(tbl *dataset.Table) *timeseries.Series {
	first, last, ok := tbl.YearRange()
	if !ok {
		return &timeseries.Series{Name: "monthly_flux"}
	}

	n := (last - first + 1) * 12
	sums := make([]float64, n)
	counts := make([]int, n)
	for _, o := range tbl.Rows() {
		if o.Month < 1 || o.Month > 12 {
			continue
		}
		idx := (o.Year-first)*12 + o.Month - 1
		sums[idx] += o.Flux
		counts[idx]++
	}

	times := make([]float64, n)
	values := make([]float64, n)
	for i := range values {
		times[i] = float64(first) + (float64(i)+0.5)/12
		if counts[i] == 0 {
			values[i] = math.NaN()
			continue
		}
		values[i] = sums[i] / float64(counts[i])
	}

	return &timeseries.Series{Times: times, Values: values, Name: "monthly_flux"}
}
