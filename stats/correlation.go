package stats

import "math"

// CorrelationMatrix returns the 2x2 Pearson correlation matrix of x and y.
// Entries involving a constant or empty input are NaN. The off-diagonal is
// clipped to [-1, 1] to absorb rounding.
func CorrelationMatrix(x, y []float64) [2][2]float64 {
	nan := math.NaN()
	undefined := [2][2]float64{{nan, nan}, {nan, nan}}

	n := len(x)
	if n == 0 || len(y) != n {
		return undefined
	}

	meanX, meanY := 0.0, 0.0
	for i := 0; i < n; i++ {
		meanX += x[i]
		meanY += y[i]
	}
	meanX /= float64(n)
	meanY /= float64(n)

	sxx, syy, sxy := 0.0, 0.0, 0.0
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}

	result := undefined
	if sxx > 0 {
		result[0][0] = 1
	}
	if syy > 0 {
		result[1][1] = 1
	}

	r := sxy / math.Sqrt(sxx*syy)
	if !math.IsNaN(r) && !math.IsInf(r, 0) {
		r = math.Max(-1, math.Min(1, r))
		result[0][1] = r
		result[1][0] = r
	}

	return result
}

// Correlation returns the Pearson correlation coefficient of x and y:
// cov(x, y) / (std(x) * std(y)).
func Correlation(x, y []float64) float64 {
	return CorrelationMatrix(x, y)[0][1]
}
