package report

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sartorproj/goflux/analysis"
)

// Workbook sheet names, in order.
const (
	SheetSummary    = "Summary"
	SheetCoverage   = "Coverage"
	SheetSeasonal   = "Seasonal"
	SheetRegression = "Regression"
	SheetRun        = "Run"
)

// Workbook builds an Excel workbook with one sheet per analysis and a Run
// sheet describing the run. Components that produced nothing leave their
// sheet with headers only.
func Workbook(res *analysis.Results) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, err
	}
	for _, name := range []string{SheetCoverage, SheetSeasonal, SheetRegression, SheetRun} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	w := &sheetWriter{f: f, header: headerStyle}
	w.summary(res)
	w.coverage(res)
	w.seasonal(res)
	w.regression(res)
	w.run(res)
	if w.err != nil {
		f.Close()
		return nil, w.err
	}

	f.SetActiveSheet(0)
	return f, nil
}

// WriteWorkbook builds the workbook and saves it to path.
func WriteWorkbook(path string, res *analysis.Results) error {
	f, err := Workbook(res)
	if err != nil {
		return fmt.Errorf("report: build workbook: %w", err)
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report: save workbook %s: %w", path, err)
	}
	return nil
}

// sheetWriter keeps the first error so each sheet can be written without
// checking every cell.
type sheetWriter struct {
	f      *excelize.File
	header int
	err    error
}

func (w *sheetWriter) row(sheet string, row int, values ...interface{}) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		w.err = err
		return
	}
	for i, v := range values {
		if f, ok := v.(float64); ok {
			values[i] = cellValue(f)
		}
	}
	if err := w.f.SetSheetRow(sheet, cell, &values); err != nil {
		w.err = fmt.Errorf("sheet %s row %d: %w", sheet, row, err)
	}
}

func (w *sheetWriter) headers(sheet string, names ...string) {
	values := make([]interface{}, len(names))
	for i, n := range names {
		values[i] = n
	}
	w.row(sheet, 1, values...)
	if w.err != nil {
		return
	}

	last, err := excelize.CoordinatesToCellName(len(names), 1)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetCellStyle(sheet, "A1", last, w.header); err != nil {
		w.err = err
		return
	}

	lastCol, _ := excelize.ColumnNumberToName(len(names))
	if err := w.f.SetColWidth(sheet, "A", lastCol, 16); err != nil {
		w.err = err
	}
}

func (w *sheetWriter) summary(res *analysis.Results) {
	w.headers(SheetSummary, "Statistic", "Value")
	s := res.Summary
	if s == nil {
		return
	}
	w.row(SheetSummary, 2, "n", s.N)
	w.row(SheetSummary, 3, "mean", s.Mean)
	w.row(SheetSummary, 4, "median", s.Median)
	w.row(SheetSummary, 5, "std", s.Std)
	w.row(SheetSummary, 6, "min", s.Min)
	w.row(SheetSummary, 7, "max", s.Max)

	if h := res.Histogram; h != nil {
		w.row(SheetSummary, 9, "Bin start", "Bin end", "Count", "Density")
		for i := range h.Counts {
			w.row(SheetSummary, 10+i, h.Edges[i], h.Edges[i+1], h.Counts[i], h.Density[i])
		}
	}
}

func (w *sheetWriter) coverage(res *analysis.Results) {
	w.headers(SheetCoverage, "Year", "Expected", "Observed", "Missing")
	for i, yc := range res.Coverage {
		w.row(SheetCoverage, i+2, yc.Year, yc.Expected, yc.Observed, yc.Missing)
	}
}

func (w *sheetWriter) seasonal(res *analysis.Results) {
	w.headers(SheetSeasonal, "Month", "Mean", "Count")
	if res.Seasonal == nil {
		return
	}
	for i, m := range res.Seasonal.Means {
		w.row(SheetSeasonal, i+2, monthLabels[i], m, res.Seasonal.Counts[i])
	}
}

func (w *sheetWriter) regression(res *analysis.Results) {
	w.headers(SheetRegression, "Column", "Coefficient", "Std. error")
	m := res.Model
	if m == nil {
		return
	}

	row := 2
	for j, name := range m.Names {
		se := math.NaN()
		if m.StdErrors != nil {
			se = m.StdErrors[j]
		}
		w.row(SheetRegression, row, name, m.Coefficients[j], se)
		row++
	}

	row++
	w.row(SheetRegression, row, "correlation", m.Correlation)
	w.row(SheetRegression, row+1, "r_squared", m.RSquared)
	w.row(SheetRegression, row+2, "residual_variance", m.Variance)
	w.row(SheetRegression, row+3, "observations", m.N)

	d := res.Diagnostics
	if d == nil {
		return
	}
	row += 4
	w.row(SheetRegression, row, "durbin_watson", d.DurbinWatson)
	if d.LjungBox != nil {
		w.row(SheetRegression, row+1, "ljung_box_q", d.LjungBox.Statistic)
		w.row(SheetRegression, row+2, "ljung_box_p", d.LjungBox.PValue)
	}
	if d.IC != nil {
		w.row(SheetRegression, row+3, "aic", d.IC.AIC)
		w.row(SheetRegression, row+4, "bic", d.IC.BIC)
	}
}

func (w *sheetWriter) run(res *analysis.Results) {
	w.headers(SheetRun, "Field", "Value")
	w.row(SheetRun, 2, "run_id", res.RunID)
	w.row(SheetRun, 3, "source", res.Source)
	w.row(SheetRun, 4, "rows", res.Rows)
	w.row(SheetRun, 5, "generated_at", res.GeneratedAt.Format(time.RFC3339))
	for i, err := range res.Errors {
		w.row(SheetRun, 6+i, "error", err.Error())
	}
}

// cellValue writes non-finite numbers as text, which Excel cannot store as
// a number.
func cellValue(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return v
}
