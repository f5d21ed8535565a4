// Package report renders and exports analysis results.
//
// Charts implements analysis.Plotter on go-echarts and renders every figure
// into one HTML page. Missing values (NaN) become gaps in the plotted lines.
//
//	page := report.NewCharts("Harvard Forest")
//	page.StartYear, page.EndYear = 1992, 2009
//	res, err := analysis.NewRunner(page, logger).Run(tbl)
//	err = page.Save("flux.html")
//
// The exporters write the numbers behind the figures:
//
//	err = report.WriteWorkbook("flux.xlsx", res)   // one sheet per analysis
//	paths, err := report.WriteTables("out", res)   // coverage.csv, seasonal.csv, ...
package report
