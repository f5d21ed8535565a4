package report

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/sartorproj/goflux/analysis"
)

// Table file names written by WriteTables.
const (
	CoverageFile     = "coverage.csv"
	SeasonalFile     = "seasonal.csv"
	CoefficientsFile = "coefficients.csv"
	FittedFile       = "fitted.csv"
)

// Frames converts the results into one dataframe per table file. The
// regression frames are absent when no model was fitted.
func Frames(res *analysis.Results) map[string]dataframe.DataFrame {
	frames := map[string]dataframe.DataFrame{
		CoverageFile: coverageFrame(res),
	}
	if res.Seasonal != nil {
		frames[SeasonalFile] = seasonalFrame(res)
	}
	if res.Model != nil {
		frames[CoefficientsFile] = coefficientsFrame(res)
		if res.Flux != nil {
			frames[FittedFile] = fittedFrame(res)
		}
	}
	return frames
}

// WriteTables writes each frame as a CSV file in dir, creating it if needed.
// Returns the paths written.
func WriteTables(dir string, res *analysis.Results) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("report: create %s: %w", dir, err)
	}

	frames := Frames(res)
	var written []string
	for _, name := range []string{CoverageFile, SeasonalFile, CoefficientsFile, FittedFile} {
		df, ok := frames[name]
		if !ok {
			continue
		}
		if df.Err != nil {
			return written, fmt.Errorf("report: build %s: %w", name, df.Err)
		}

		path := filepath.Join(dir, name)
		if err := writeFrame(path, df); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func writeFrame(path string, df dataframe.DataFrame) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	if err := df.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return f.Close()
}

func coverageFrame(res *analysis.Results) dataframe.DataFrame {
	n := len(res.Coverage)
	years := make([]int, n)
	expected := make([]int, n)
	observed := make([]int, n)
	missing := make([]int, n)
	for i, yc := range res.Coverage {
		years[i] = yc.Year
		expected[i] = yc.Expected
		observed[i] = yc.Observed
		missing[i] = yc.Missing
	}

	return dataframe.New(
		series.New(years, series.Int, "year"),
		series.New(expected, series.Int, "expected"),
		series.New(observed, series.Int, "observed"),
		series.New(missing, series.Int, "missing"),
	)
}

func seasonalFrame(res *analysis.Results) dataframe.DataFrame {
	months := make([]int, 12)
	counts := make([]int, 12)
	for i := range months {
		months[i] = i + 1
		counts[i] = res.Seasonal.Counts[i]
	}

	return dataframe.New(
		series.New(months, series.Int, "month"),
		series.New(res.Seasonal.Means[:], series.Float, "mean_flux"),
		series.New(counts, series.Int, "count"),
	)
}

func coefficientsFrame(res *analysis.Results) dataframe.DataFrame {
	m := res.Model
	stdErrors := m.StdErrors
	if stdErrors == nil {
		stdErrors = make([]float64, m.K)
		for i := range stdErrors {
			stdErrors[i] = math.NaN()
		}
	}

	return dataframe.New(
		series.New(m.Names, series.String, "column"),
		series.New(m.Coefficients, series.Float, "coefficient"),
		series.New(stdErrors, series.Float, "std_error"),
	)
}

func fittedFrame(res *analysis.Results) dataframe.DataFrame {
	m := res.Model
	return dataframe.New(
		series.New(res.Flux.Times, series.Float, "decimal_year"),
		series.New(res.Flux.Values, series.Float, "observed"),
		series.New(m.Fitted, series.Float, "fitted"),
		series.New(m.Residuals, series.Float, "residual"),
	)
}
