// Package timeseries provides time series data structures and utilities.
//
// A Series pairs values with a decimal-year time axis, where an observation
// taken on day d of year y sits at y + d/365. Series are produced by the
// dataset package from a loaded table and consumed by the stats, regression
// and report packages.
//
// # Creating a Series
//
//	series := tbl.Series(dataset.ColFlux)
//
//	series := &timeseries.Series{
//	    Times:  []float64{1992.003, 1992.005, 1992.008},
//	    Values: []float64{-1.2, 0.4, 2.1},
//	    Name:   "flux",
//	}
//
//	snapshot := series.Copy() // independent of later edits to series
//
// # Basic Statistics
//
//	mean := series.Mean()
//	median := series.Median()
//	std := series.PopulationStd() // divides by N
//	min, max := series.Min(), series.Max()
//
// Every statistic of an empty series is NaN. Median, Min and Max are also
// NaN when any value is NaN.
package timeseries
