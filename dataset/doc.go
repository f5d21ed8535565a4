// Package dataset loads and holds the daily flux observation table.
//
// Source files carry one header line and one row per day, with the columns
// fixed by position:
//
//	0 year  1 month  2 day-of-year  3 flux  4 net radiation
//	5 air temperature  6 water vapour  7 wind speed
//
// Trailing columns are ignored. Any field that does not parse as a number
// fails the load with a *LoadError naming the line and column.
//
// # Loading
//
//	tbl, err := dataset.Load("harvard_forest.csv", nil)
//	tbl, err := dataset.Load("harvard_forest.csv.gz", nil)  // pgzip
//	tbl, err := dataset.Load("harvard_forest.csv.zst", nil) // zstd
//	tbl, err := dataset.Load("harvard_forest.parquet", nil)
//
// # Reading Columns
//
//	flux := tbl.Column(dataset.ColFlux)
//	series := tbl.Series(dataset.ColFlux) // decimal-year time axis
//	first, last, ok := tbl.YearRange()
//
// A Table is never modified after it is built; every accessor returns a
// fresh slice.
package dataset
