// Package regression fits ordinary least squares linear models.
package regression

import (
	"errors"
	"fmt"
	"math"

	"github.com/sartorproj/goflux/stats"
)

var (
	// ErrSingular means X'X could not be inverted: the design matrix columns
	// are collinear, or a column is constant zero.
	ErrSingular = errors.New("normal equations matrix is singular")

	// ErrInsufficientData means there are fewer observations than columns.
	ErrInsufficientData = errors.New("fewer observations than coefficients")

	// ErrNonFinite means the design matrix or response holds NaN or Inf.
	ErrNonFinite = errors.New("non-finite value in regression input")
)

// FitError reports why a model could not be fitted. No coefficients are
// available when a FitError is returned.
type FitError struct {
	N   int // Observations
	K   int // Design matrix columns
	Row int // Offending row for ErrNonFinite, otherwise -1
	Err error
}

func (e *FitError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("regression: %d observations x %d columns: row %d: %v", e.N, e.K, e.Row, e.Err)
	}
	return fmt.Sprintf("regression: %d observations x %d columns: %v", e.N, e.K, e.Err)
}

func (e *FitError) Unwrap() error {
	return e.Err
}

// Model is a fitted linear model y = X·β + ε.
type Model struct {
	Names        []string  // One name per design matrix column
	Coefficients []float64 // β, one per column
	StdErrors    []float64 // nil when N == K
	Fitted       []float64 // X·β
	Residuals    []float64 // y - X·β
	Correlation  float64   // Pearson r between y and fitted values
	RSquared     float64
	Variance     float64 // Residual variance SSE/(N-K); NaN when N == K
	SSE          float64
	N            int
	K            int

	x [][]float64
	y []float64
}

// Fit estimates β = (X'X)⁻¹X'y. x holds one row per observation; names
// labels the columns and may be nil.
func Fit(x [][]float64, y []float64, names []string) (*Model, error) {
	n := len(y)
	if len(x) != n {
		return nil, fmt.Errorf("regression: %d design rows for %d responses", len(x), n)
	}

	k := 0
	if n > 0 {
		k = len(x[0])
	}
	for i, row := range x {
		if len(row) != k {
			return nil, fmt.Errorf("regression: row %d has %d columns, want %d", i, len(row), k)
		}
	}
	if n == 0 || k == 0 || n < k {
		return nil, &FitError{N: n, K: k, Row: -1, Err: ErrInsufficientData}
	}
	for i := 0; i < n; i++ {
		if !finite(y[i]) {
			return nil, &FitError{N: n, K: k, Row: i, Err: ErrNonFinite}
		}
		for _, v := range x[i] {
			if !finite(v) {
				return nil, &FitError{N: n, K: k, Row: i, Err: ErrNonFinite}
			}
		}
	}

	// Build X'X and X'y
	xtx := make([][]float64, k)
	for i := range xtx {
		xtx[i] = make([]float64, k)
	}
	xty := make([]float64, k)

	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			xty[j] += x[i][j] * y[i]
			for l := j; l < k; l++ {
				xtx[j][l] += x[i][j] * x[i][l]
			}
		}
	}
	for j := 0; j < k; j++ {
		for l := 0; l < j; l++ {
			xtx[j][l] = xtx[l][j]
		}
	}

	xtxInv := invertNormal(xtx)
	if xtxInv == nil {
		return nil, &FitError{N: n, K: k, Row: -1, Err: ErrSingular}
	}

	coeffs := make([]float64, k)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			coeffs[i] += xtxInv[i][j] * xty[j]
		}
	}

	m := &Model{
		Names:        columnNames(names, k),
		Coefficients: coeffs,
		Fitted:       make([]float64, n),
		Residuals:    make([]float64, n),
		N:            n,
		K:            k,
		x:            x,
		y:            y,
	}

	meanY := 0.0
	for _, v := range y {
		meanY += v
	}
	meanY /= float64(n)

	sst := 0.0
	for i := 0; i < n; i++ {
		m.Fitted[i] = m.Predict(x[i])
		m.Residuals[i] = y[i] - m.Fitted[i]
		m.SSE += m.Residuals[i] * m.Residuals[i]
		sst += (y[i] - meanY) * (y[i] - meanY)
	}

	m.Correlation = stats.Correlation(y, m.Fitted)
	m.RSquared = math.NaN()
	if sst > 0 {
		m.RSquared = 1 - m.SSE/sst
	}

	m.Variance = math.NaN()
	if n > k {
		m.Variance = m.SSE / float64(n-k)
		m.StdErrors = make([]float64, k)
		for i := 0; i < k; i++ {
			m.StdErrors[i] = math.Sqrt(m.Variance * xtxInv[i][i])
		}
	}

	return m, nil
}

// Predict evaluates the model for one design matrix row.
// Returns NaN if the row length does not match the model.
func (m *Model) Predict(row []float64) float64 {
	if len(row) != m.K {
		return math.NaN()
	}
	pred := 0.0
	for j, c := range m.Coefficients {
		pred += c * row[j]
	}
	return pred
}

// Contributions returns, per design matrix column j, the series
// x[i][j]·β[j] over all observations. The columns sum to the fitted values.
func (m *Model) Contributions() [][]float64 {
	contrib := make([][]float64, m.K)
	for j := range contrib {
		contrib[j] = make([]float64, m.N)
		for i := 0; i < m.N; i++ {
			contrib[j][i] = m.x[i][j] * m.Coefficients[j]
		}
	}
	return contrib
}

// Summary reports the fitted coefficients with residual diagnostics.
type Summary struct {
	Names        []string
	Coefficients []float64
	StdErrors    []float64
	Correlation  float64
	RSquared     float64
	Variance     float64
	DurbinWatson float64
	LjungBox     *stats.LjungBoxResult // nil for fewer than 10 observations
	IC           *stats.InformationCriteria
	NObs         int
}

// Summary returns a summary of the fitted model.
func (m *Model) Summary() *Summary {
	return &Summary{
		Names:        m.Names,
		Coefficients: m.Coefficients,
		StdErrors:    m.StdErrors,
		Correlation:  m.Correlation,
		RSquared:     m.RSquared,
		Variance:     m.Variance,
		DurbinWatson: stats.DurbinWatson(m.Residuals),
		LjungBox:     stats.LjungBox(m.Residuals, 10, 0),
		// The residual variance counts as an estimated parameter.
		IC:   stats.CalculateIC(stats.GaussianLogLik(m.SSE, m.N), m.N, m.K+1),
		NObs: m.N,
	}
}

func columnNames(names []string, k int) []string {
	if len(names) == k {
		out := make([]string, k)
		copy(out, names)
		return out
	}
	out := make([]string, k)
	for i := range out {
		out[i] = fmt.Sprintf("x%d", i)
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
