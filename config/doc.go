// Package config resolves the settings of a flux report run.
//
// Settings are layered: Default, then an optional YAML file, then GOFLUX_*
// environment variables. The command applies its flags last.
//
//	input: harvard_forest.csv
//	html: flux_report.html
//	workbook: flux_report.xlsx
//	tables_dir: tables
//	parquet_out: harvard_forest.parquet
//	log_level: info
//	log_file: fluxreport.log
//	histogram_bins: 20
//	plot_start_year: 1992
//	plot_end_year: 2009
package config
