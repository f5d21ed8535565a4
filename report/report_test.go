package report

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"

	"github.com/sartorproj/goflux/analysis"
	"github.com/sartorproj/goflux/dataset"
	"github.com/sartorproj/goflux/stats"
)

// dailyTable builds n days of synthetic observations starting in 1992.
func dailyTable(n int) *dataset.Table {
	rows := make([]dataset.Observation, n)
	for i := range rows {
		t := float64(i)
		doy := i%365 + 1
		o := dataset.Observation{
			Year:           1992 + i/365,
			Month:          min(doy/31+1, 12),
			DayOfYear:      float64(doy),
			NetRadiation:   300 * math.Sin(t/9),
			AirTemperature: 15 + 10*math.Cos(t/23),
			WaterVapor:     float64(i%7) * 0.4,
			WindSpeed:      2 + math.Sqrt(t)*0.1,
		}
		o.Flux = 1 - 0.01*o.NetRadiation + 0.2*o.AirTemperature + 0.3*math.Sin(t*12.9898)
		rows[i] = o
	}
	return dataset.NewTable("daily", rows)
}

func runResults(t *testing.T, tbl *dataset.Table, p analysis.Plotter) *analysis.Results {
	t.Helper()
	res, _ := analysis.NewRunner(p, nil).Run(tbl)
	if res == nil {
		t.Fatal("Run returned no results")
	}
	return res
}

func TestChartsCollectsEveryFigure(t *testing.T) {
	page := NewCharts("Harvard Forest")
	page.StartYear, page.EndYear = 1992, 1994

	res := runResults(t, dailyTable(730), page)
	if len(res.Errors) != 0 {
		t.Fatalf("Unexpected run errors: %v", res.Errors)
	}

	// scatter, histogram, seasonal, decomposition, observed vs fitted, contributions
	if page.Len() != 6 {
		t.Fatalf("Expected 6 charts, got %d", page.Len())
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	html := buf.String()
	for _, want := range []string{"Harvard Forest", "Seasonal cycle", "Observed vs fitted flux", "net_radiation"} {
		if !strings.Contains(html, want) {
			t.Errorf("Rendered page is missing %q", want)
		}
	}
	if strings.Contains(html, "NaN") {
		t.Error("Rendered page should not contain NaN")
	}
}

func TestChartsMissingMonths(t *testing.T) {
	cycle := stats.MonthlyMeans([]int{1, 2}, []float64{-3, 4})

	page := NewCharts("gaps")
	if err := page.PlotSeasonal(cycle); err != nil {
		t.Fatalf("PlotSeasonal failed: %v", err)
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.Contains(buf.String(), "NaN") {
		t.Error("Missing months should be rendered as gaps, not NaN")
	}
}

func TestChartsSave(t *testing.T) {
	page := NewCharts("save")
	res := runResults(t, dailyTable(50), page)
	if res.Decomposition != nil {
		t.Error("Expected no decomposition for under two years of data")
	}

	path := filepath.Join(t.TempDir(), "flux.html")
	if err := page.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Errorf("Expected a non-empty page, got %v", err)
	}

	if err := page.Save(filepath.Join(t.TempDir(), "missing", "flux.html")); err == nil {
		t.Error("Expected error saving into a missing directory")
	}
}

func TestWorkbook(t *testing.T) {
	rows := dailyTable(400).Rows()
	res := runResults(t, dataset.NewTable("daily", rows[:380]), analysis.NopPlotter{})

	path := filepath.Join(t.TempDir(), "flux.xlsx")
	if err := WriteWorkbook(path, res); err != nil {
		t.Fatalf("WriteWorkbook failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := []string{SheetSummary, SheetCoverage, SheetSeasonal, SheetRegression, SheetRun}
	if len(sheets) != len(want) {
		t.Fatalf("Expected sheets %v, got %v", want, sheets)
	}
	for i := range want {
		if sheets[i] != want[i] {
			t.Errorf("Sheet %d: expected %s, got %s", i, want[i], sheets[i])
		}
	}

	tests := []struct {
		sheet, cell, want string
	}{
		{SheetSummary, "A2", "n"},
		{SheetSummary, "B2", "380"},
		{SheetCoverage, "A2", "1992"},
		{SheetCoverage, "D2", "1"}, // 1992 is a leap year with 365 rows
		{SheetCoverage, "D3", "350"},
		{SheetSeasonal, "A2", "Jan"},
		{SheetRegression, "A2", "intercept"},
		{SheetRegression, "A6", "wind_speed"},
		{SheetRun, "B2", res.RunID},
		{SheetRun, "B3", "daily"},
	}
	for _, tt := range tests {
		got, err := f.GetCellValue(tt.sheet, tt.cell)
		if err != nil {
			t.Errorf("%s!%s: %v", tt.sheet, tt.cell, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s!%s: expected %q, got %q", tt.sheet, tt.cell, tt.want, got)
		}
	}
}

func TestWorkbookFailedFit(t *testing.T) {
	rows := dailyTable(40).Rows()
	for i := range rows {
		rows[i].WaterVapor = 0
	}
	res := runResults(t, dataset.NewTable("dry", rows), analysis.NopPlotter{})

	f, err := Workbook(res)
	if err != nil {
		t.Fatalf("Workbook failed: %v", err)
	}
	defer f.Close()

	if v, _ := f.GetCellValue(SheetRegression, "A2"); v != "" {
		t.Errorf("Expected an empty regression sheet, got %q", v)
	}
	if v, _ := f.GetCellValue(SheetRun, "A6"); v != "error" {
		t.Errorf("Expected the fit error on the run sheet, got %q", v)
	}
	// Only January and February have data.
	if v, _ := f.GetCellValue(SheetSeasonal, "B4"); v != "NaN" {
		t.Errorf("Expected NaN text for March, got %q", v)
	}
}

func TestWriteTables(t *testing.T) {
	res := runResults(t, dailyTable(500), analysis.NopPlotter{})
	dir := filepath.Join(t.TempDir(), "tables")

	paths, err := WriteTables(dir, res)
	if err != nil {
		t.Fatalf("WriteTables failed: %v", err)
	}
	if len(paths) != 4 {
		t.Fatalf("Expected 4 tables, got %v", paths)
	}

	tests := []struct {
		file  string
		rows  int
		names []string
	}{
		{CoverageFile, 2, []string{"year", "expected", "observed", "missing"}},
		{SeasonalFile, 12, []string{"month", "mean_flux", "count"}},
		{CoefficientsFile, 5, []string{"column", "coefficient", "std_error"}},
		{FittedFile, 500, []string{"decimal_year", "observed", "fitted", "residual"}},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			f, err := os.Open(filepath.Join(dir, tt.file))
			if err != nil {
				t.Fatalf("Failed to open: %v", err)
			}
			defer f.Close()

			df := dataframe.ReadCSV(f)
			if df.Err != nil {
				t.Fatalf("Failed to parse: %v", df.Err)
			}
			if df.Nrow() != tt.rows {
				t.Errorf("Expected %d rows, got %d", tt.rows, df.Nrow())
			}
			names := df.Names()
			if len(names) != len(tt.names) {
				t.Fatalf("Expected columns %v, got %v", tt.names, names)
			}
			for i := range names {
				if names[i] != tt.names[i] {
					t.Errorf("Column %d: expected %s, got %s", i, tt.names[i], names[i])
				}
			}
		})
	}
}

func TestWriteTablesWithoutModel(t *testing.T) {
	res := runResults(t, dataset.NewTable("empty", nil), analysis.NopPlotter{})

	paths, err := WriteTables(t.TempDir(), res)
	if err != nil {
		t.Fatalf("WriteTables failed: %v", err)
	}
	if len(paths) != 2 {
		t.Errorf("Expected coverage and seasonal tables only, got %v", paths)
	}
}
