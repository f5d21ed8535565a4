// Package main demonstrates the flux analyses on one or more daily tables.
// Each table is summarised, audited for gaps, reduced to its seasonal cycle
// and regressed on its covariates, with the final year held out to check the
// regression out of sample.
package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sartorproj/goflux/analysis"
	"github.com/sartorproj/goflux/dataset"
	"github.com/sartorproj/goflux/regression"
)

// Dataset defines a flux table to analyze
type Dataset struct {
	Name        string // Display name
	Description string // Brief description
	File        string // Table filename; empty generates synthetic data
	Years       int    // Synthetic years when File is empty
}

// jsonFloat encodes NaN and infinities, which JSON has no literal for, as
// null.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

func jsonFloats(xs []float64) []jsonFloat {
	out := make([]jsonFloat, len(xs))
	for i, x := range xs {
		out[i] = jsonFloat(x)
	}
	return out
}

// HoldoutResult holds out-of-sample accuracy of the regression
type HoldoutResult struct {
	TrainYears []int       `json:"train_years"`
	TestYear   int         `json:"test_year"`
	RMSE       jsonFloat   `json:"rmse"`
	MAE        jsonFloat   `json:"mae"`
	MAPE       jsonFloat   `json:"mape"`
	Predicted  []jsonFloat `json:"predicted"`
}

// DatasetResult holds analysis results for a dataset
type DatasetResult struct {
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	NObs         int                  `json:"n_obs"`
	Mean         jsonFloat            `json:"mean"`
	Median       jsonFloat            `json:"median"`
	Std          jsonFloat            `json:"std"`
	Missing      map[int]int          `json:"missing"`
	Seasonal     []jsonFloat          `json:"seasonal"`
	Coefficients map[string]jsonFloat `json:"coefficients,omitempty"`
	Correlation  *jsonFloat           `json:"correlation,omitempty"`
	Holdout      *HoldoutResult       `json:"holdout,omitempty"`
	FitError     string               `json:"fit_error,omitempty"`
}

// OutputData holds all results for export
type OutputData struct {
	Datasets []DatasetResult `json:"datasets"`
}

func main() {
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("GoFlux Demonstration - Summary, Coverage, Seasonal Cycle, Regression")
	fmt.Println(strings.Repeat("=", 80))

	dataDir := findDataDir()
	fmt.Printf("\nData directory: %s\n", dataDir)

	datasets := []Dataset{
		{Name: "Harvard Forest", File: "harvard_forest.csv", Description: "Daily NEE and meteorology, EMS tower"},
		{Name: "Harvard Forest (gzip)", File: "harvard_forest.csv.gz", Description: "Same table, gzip compressed"},
		{Name: "Harvard Forest (Parquet)", File: "harvard_forest.parquet", Description: "Same table, columnar"},
		{Name: "Synthetic", Years: 4, Description: "Generated seasonal flux with gaps"},
	}

	output := OutputData{Datasets: []DatasetResult{}}

	for i, ds := range datasets {
		fmt.Printf("\n%s\n[%d/%d] %s\n%s\n", strings.Repeat("=", 80), i+1, len(datasets), ds.Name, strings.Repeat("=", 80))

		result := analyze(dataDir, ds)
		if result != nil {
			output.Datasets = append(output.Datasets, *result)
		}
	}

	fmt.Printf("\n%s\nEXPORTING RESULTS\n%s\n", strings.Repeat("=", 80), strings.Repeat("=", 80))

	if err := export("flux_results.json", output); err != nil {
		fmt.Printf("Export failed: %v\n", err)
	} else {
		fmt.Printf("Exported %d datasets to flux_results.json\n", len(output.Datasets))
	}
	fmt.Println(strings.Repeat("=", 80))
}

// findDataDir locates the data directory
func findDataDir() string {
	for _, p := range []string{"data", "./data", "../data"} {
		if _, err := os.Stat(filepath.Join(p, "harvard_forest.csv")); err == nil {
			return p
		}
	}
	return "data"
}

// export writes the results as indented JSON.
func export(path string, output OutputData) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// analyze performs the complete analysis on a dataset
func analyze(dataDir string, ds Dataset) *DatasetResult {
	tbl, err := loadData(dataDir, ds)
	if err != nil {
		fmt.Printf("   Error loading: %v\n", err)
		return nil
	}
	return analyzeTable(tbl, ds)
}

// analyzeTable runs every analysis on a loaded table. A table without rows
// yields a result holding only its undefined statistics.
func analyzeTable(tbl *dataset.Table, ds Dataset) *DatasetResult {
	n := tbl.Len()
	result := &DatasetResult{
		Name:        ds.Name,
		Description: ds.Description,
		NObs:        n,
		Missing:     make(map[int]int),
	}

	mean, median, std := analysis.Summarize(tbl)
	result.Mean, result.Median, result.Std = jsonFloat(mean), jsonFloat(median), jsonFloat(std)
	cycle := analysis.SeasonalCycle(tbl)
	result.Seasonal = jsonFloats(cycle[:])

	first, last, ok := tbl.YearRange()
	if !ok {
		fmt.Println("   No observations")
		result.FitError = "no observations"
		return result
	}
	fmt.Printf("   Loaded %d observations (%d to %d)\n", n, first, last)
	fmt.Printf("   Flux: mean=%.4f median=%.4f std=%.4f\n", mean, median, std)

	for i, m := range analysis.MissingData(tbl) {
		result.Missing[first+i] = m
		if m > 0 {
			fmt.Printf("   %d: %d days missing\n", first+i, m)
		}
	}

	fmt.Printf("   Seasonal minimum %.3f, maximum %.3f\n", minFinite(cycle[:]), maxFinite(cycle[:]))

	model, err := analysis.Regress(tbl)
	if err != nil {
		fmt.Printf("   Regression failed: %v\n", err)
		result.FitError = err.Error()
		return result
	}
	r := jsonFloat(model.Correlation)
	result.Correlation = &r
	result.Coefficients = make(map[string]jsonFloat, model.K)
	for j, name := range model.Names {
		result.Coefficients[name] = jsonFloat(model.Coefficients[j])
		fmt.Printf("   %-16s %10.5f\n", name, model.Coefficients[j])
	}
	fmt.Printf("   Correlation observed/fitted: %.4f\n", model.Correlation)

	if first < last {
		result.Holdout = holdout(tbl, last)
	}

	return result
}

// loadData loads a dataset based on configuration
func loadData(dataDir string, ds Dataset) (*dataset.Table, error) {
	if ds.File == "" {
		return synthetic(ds.Years), nil
	}
	return dataset.Load(filepath.Join(dataDir, ds.File), nil)
}

// synthetic generates daily flux driven by its covariates, with a gap of
// three weeks each summer.
func synthetic(years int) *dataset.Table {
	var rows []dataset.Observation
	for y := 0; y < years; y++ {
		year := 1992 + y
		days := 365
		if year%4 == 0 {
			days = 366
		}
		for d := 1; d <= days; d++ {
			if d >= 200 && d < 221 {
				continue
			}
			phase := 2 * math.Pi * float64(d) / float64(days)
			o := dataset.Observation{
				Year:           year,
				Month:          min((d-1)*12/days+1, 12),
				DayOfYear:      float64(d),
				NetRadiation:   120 - 100*math.Cos(phase) + 20*math.Sin(float64(d)*1.7),
				AirTemperature: 8 - 12*math.Cos(phase-0.3) + 2*math.Sin(float64(d)*0.9),
				WaterVapor:     0.6 - 0.5*math.Cos(phase-0.2) + 0.1*math.Sin(float64(d)*2.3),
				WindSpeed:      3 + math.Sin(float64(d)*0.37),
			}
			o.Flux = 1.5 - 0.02*o.NetRadiation - 0.15*o.AirTemperature + 1.2*o.WaterVapor +
				0.05*o.WindSpeed + 0.4*math.Sin(float64(d)*12.9898)
			rows = append(rows, o)
		}
	}
	return dataset.NewTable("synthetic", rows)
}

// holdout fits the regression on every year before testYear and scores the
// predictions for testYear.
func holdout(tbl *dataset.Table, testYear int) *HoldoutResult {
	var train, test []dataset.Observation
	for _, o := range tbl.Rows() {
		if o.Year == testYear {
			test = append(test, o)
		} else {
			train = append(train, o)
		}
	}

	trainTbl := dataset.NewTable("train", train)
	model, err := regression.Fit(analysis.DesignMatrix(trainTbl), trainTbl.Column(dataset.ColFlux), analysis.DesignColumns())
	if err != nil {
		fmt.Printf("   Holdout fit failed: %v\n", err)
		return nil
	}

	testTbl := dataset.NewTable("test", test)
	predicted := make([]float64, testTbl.Len())
	for i, row := range analysis.DesignMatrix(testTbl) {
		predicted[i] = model.Predict(row)
	}

	first, last, _ := trainTbl.YearRange()
	rmse, mae, mape := metrics(testTbl.Column(dataset.ColFlux), predicted)
	result := &HoldoutResult{
		TrainYears: makeRange(first, last),
		TestYear:   testYear,
		RMSE:       jsonFloat(rmse),
		MAE:        jsonFloat(mae),
		MAPE:       jsonFloat(mape),
		Predicted:  jsonFloats(predicted),
	}
	fmt.Printf("   Holdout %d: RMSE=%.4f MAE=%.4f\n", testYear, rmse, mae)

	return result
}

// metrics calculates prediction accuracy metrics
func metrics(actual, predicted []float64) (rmse, mae, mape float64) {
	n := min(len(actual), len(predicted))
	if n == 0 {
		return
	}
	for i := 0; i < n; i++ {
		d := actual[i] - predicted[i]
		rmse += d * d
		mae += math.Abs(d)
		if actual[i] != 0 {
			mape += math.Abs(d) / math.Abs(actual[i]) * 100
		}
	}
	return math.Sqrt(rmse / float64(n)), mae / float64(n), mape / float64(n)
}

func minFinite(xs []float64) float64 {
	m := math.Inf(1)
	for _, x := range xs {
		if !math.IsNaN(x) {
			m = math.Min(m, x)
		}
	}
	return m
}

func maxFinite(xs []float64) float64 {
	m := math.Inf(-1)
	for _, x := range xs {
		if !math.IsNaN(x) {
			m = math.Max(m, x)
		}
	}
	return m
}

func makeRange(start, end int) []int {
	r := make([]int, end-start+1)
	for i := range r {
		r[i] = start + i
	}
	return r
}
