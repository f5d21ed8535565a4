package regression

import (
	"errors"
	"math"
	"testing"
)

// syntheticDesign builds an intercept column plus four non-collinear covariates.
func syntheticDesign(n int) [][]float64 {
	x := make([][]float64, n)
	for i := 0; i < n; i++ {
		t := float64(i)
		x[i] = []float64{
			1,
			300 * math.Sin(t/9),
			15 + 10*math.Cos(t/23),
			float64(i%7) * 0.4,
			2 + math.Sqrt(t)*0.1 + 0.3*math.Sin(t/2),
		}
	}
	return x
}

func TestFitRecoversCoefficients(t *testing.T) {
	x := syntheticDesign(400)
	want := []float64{2, 3, -1, 0, 0.5}

	y := make([]float64, len(x))
	for i, row := range x {
		for j, b := range want {
			y[i] += b * row[j]
		}
	}

	m, err := Fit(x, y, []string{"intercept", "c1", "c2", "c3", "c4"})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	for j, b := range want {
		if math.Abs(m.Coefficients[j]-b) > 1e-3 {
			t.Errorf("Coefficient %s: expected %f, got %f", m.Names[j], b, m.Coefficients[j])
		}
	}
	if math.Abs(m.Correlation-1) > 1e-9 {
		t.Errorf("Expected correlation 1 on noiseless data, got %f", m.Correlation)
	}
	if math.Abs(m.RSquared-1) > 1e-9 {
		t.Errorf("Expected R² 1 on noiseless data, got %f", m.RSquared)
	}
}

func TestFitWithNoise(t *testing.T) {
	x := syntheticDesign(500)
	y := make([]float64, len(x))
	for i, row := range x {
		noise := 0.5 * math.Sin(float64(i)*12.9898)
		y[i] = 1 + 0.01*row[1] + 0.2*row[2] - 0.3*row[3] + row[4] + noise
	}

	m, err := Fit(x, y, nil)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if m.Names[0] != "x0" || m.Names[4] != "x4" {
		t.Errorf("Expected default column names, got %v", m.Names)
	}
	if m.Correlation <= 0.5 || m.Correlation >= 1 {
		t.Errorf("Expected correlation in (0.5, 1), got %f", m.Correlation)
	}
	// For OLS with an intercept, R² equals r².
	if math.Abs(m.RSquared-m.Correlation*m.Correlation) > 1e-9 {
		t.Errorf("R² %f does not match r² %f", m.RSquared, m.Correlation*m.Correlation)
	}
	if len(m.StdErrors) != 5 {
		t.Fatalf("Expected 5 standard errors, got %d", len(m.StdErrors))
	}
	for j, se := range m.StdErrors {
		if !(se > 0) {
			t.Errorf("Standard error %d should be positive, got %f", j, se)
		}
	}

	// Residuals of an OLS fit with intercept sum to zero.
	sum := 0.0
	for _, r := range m.Residuals {
		sum += r
	}
	if math.Abs(sum) > 1e-8 {
		t.Errorf("Residuals should sum to zero, got %g", sum)
	}
}

func TestFitCollinear(t *testing.T) {
	x := syntheticDesign(50)
	for _, row := range x {
		row[2] = 2 * row[1]
	}
	y := make([]float64, len(x))
	for i := range y {
		y[i] = float64(i)
	}

	m, err := Fit(x, y, nil)
	if m != nil {
		t.Errorf("Expected no model on collinear input, got %+v", m.Coefficients)
	}

	var fe *FitError
	if !errors.As(err, &fe) {
		t.Fatalf("Expected *FitError, got %v", err)
	}
	if !errors.Is(err, ErrSingular) {
		t.Errorf("Expected ErrSingular, got %v", err)
	}
	if fe.N != 50 || fe.K != 5 {
		t.Errorf("Unexpected error dimensions %d x %d", fe.N, fe.K)
	}
}

func TestFitSingularCases(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(x [][]float64) [][]float64
		want   error
	}{
		{
			name: "constant covariate",
			mutate: func(x [][]float64) [][]float64 {
				for _, row := range x {
					row[3] = 4.2
				}
				return x
			},
			want: ErrSingular,
		},
		{
			name: "zero covariate",
			mutate: func(x [][]float64) [][]float64 {
				for _, row := range x {
					row[4] = 0
				}
				return x
			},
			want: ErrSingular,
		},
		{
			name: "too few rows",
			mutate: func(x [][]float64) [][]float64 {
				return x[:4]
			},
			want: ErrInsufficientData,
		},
		{
			name: "NaN covariate",
			mutate: func(x [][]float64) [][]float64 {
				x[7][2] = math.NaN()
				return x
			},
			want: ErrNonFinite,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := tt.mutate(syntheticDesign(30))
			y := make([]float64, len(x))
			for i := range y {
				y[i] = math.Cos(float64(i))
			}

			_, err := Fit(x, y, nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestFitScaleInvariantSingularity(t *testing.T) {
	// Large-magnitude but independent columns must still fit.
	x := syntheticDesign(60)
	for _, row := range x {
		row[1] *= 1e6
		row[3] *= 1e-4
	}
	y := make([]float64, len(x))
	for i, row := range x {
		y[i] = 1 + 2e-6*row[1] + row[2] + 5e3*row[3] + row[4]
	}

	m, err := Fit(x, y, nil)
	if err != nil {
		t.Fatalf("Fit failed on well-conditioned scaled data: %v", err)
	}
	if math.Abs(m.Coefficients[3]-5e3) > 1e-3 {
		t.Errorf("Expected coefficient 5e3, got %f", m.Coefficients[3])
	}
}

func TestFitMismatchedInput(t *testing.T) {
	if _, err := Fit([][]float64{{1, 2}}, []float64{1, 2}, nil); err == nil {
		t.Error("Expected error for mismatched rows")
	}
	if _, err := Fit([][]float64{{1, 2}, {1}}, []float64{1, 2}, nil); err == nil {
		t.Error("Expected error for ragged rows")
	}
	_, err := Fit(nil, nil, nil)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData for empty input, got %v", err)
	}
}

func TestContributionsSumToFitted(t *testing.T) {
	x := syntheticDesign(80)
	y := make([]float64, len(x))
	for i := range y {
		y[i] = math.Sin(float64(i) / 5)
	}

	m, err := Fit(x, y, nil)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	contrib := m.Contributions()
	if len(contrib) != m.K {
		t.Fatalf("Expected %d contribution series, got %d", m.K, len(contrib))
	}
	for i := 0; i < m.N; i++ {
		sum := 0.0
		for j := range contrib {
			sum += contrib[j][i]
		}
		if math.Abs(sum-m.Fitted[i]) > 1e-9 {
			t.Errorf("Row %d: contributions sum to %f, fitted %f", i, sum, m.Fitted[i])
		}
	}
	// Intercept contribution is constant.
	if contrib[0][0] != m.Coefficients[0] {
		t.Errorf("Expected intercept contribution %f, got %f", m.Coefficients[0], contrib[0][0])
	}
}

func TestSummary(t *testing.T) {
	x := syntheticDesign(120)
	y := make([]float64, len(x))
	for i, row := range x {
		y[i] = row[1]*0.01 + math.Sin(float64(i)*7.1)
	}

	m, err := Fit(x, y, nil)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	s := m.Summary()
	if s.NObs != 120 {
		t.Errorf("Expected 120 observations, got %d", s.NObs)
	}
	if s.DurbinWatson <= 0 || s.DurbinWatson >= 4 {
		t.Errorf("Durbin-Watson out of range: %f", s.DurbinWatson)
	}
	if s.LjungBox == nil {
		t.Error("Expected Ljung-Box result")
	}
	if s.IC == nil || math.IsNaN(s.IC.AIC) {
		t.Errorf("Expected finite information criteria, got %+v", s.IC)
	}
	if !math.IsNaN(m.Predict([]float64{1, 2})) {
		t.Error("Predict should return NaN for a short row")
	}
}

func TestInvertMatrix(t *testing.T) {
	m := [][]float64{{4, 7}, {2, 6}}
	inv := invertMatrix(m)
	if inv == nil {
		t.Fatal("invertMatrix returned nil")
	}

	expected := [][]float64{{0.6, -0.7}, {-0.2, 0.4}}
	for i := range expected {
		for j := range expected[i] {
			if math.Abs(inv[i][j]-expected[i][j]) > 1e-12 {
				t.Errorf("inv[%d][%d]: expected %f, got %f", i, j, expected[i][j], inv[i][j])
			}
		}
	}

	if invertMatrix([][]float64{{1, 2}, {2, 4}}) != nil {
		t.Error("Expected nil for a singular matrix")
	}
	if invertNormal([][]float64{{0, 0}, {0, 1}}) != nil {
		t.Error("Expected nil for a zero diagonal")
	}
}
