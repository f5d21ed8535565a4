package regression

import "math"

// pivotTolerance is the smallest pivot accepted on the unit-diagonal scaled
// matrix. Below it the matrix is treated as singular.
const pivotTolerance = 1e-10

// invertNormal inverts a symmetric positive semi-definite matrix such as
// X'X. The matrix is first scaled to unit diagonal (D^-1/2 A D^-1/2) so the
// singularity test does not depend on the units of the columns. Returns nil
// if the matrix is singular or contains non-finite entries.
func invertNormal(a [][]float64) [][]float64 {
	n := len(a)
	if n == 0 {
		return nil
	}

	d := make([]float64, n)
	for i := 0; i < n; i++ {
		if !(a[i][i] > 0) || math.IsInf(a[i][i], 0) {
			return nil // all-zero or non-finite column
		}
		d[i] = 1 / math.Sqrt(a[i][i])
	}

	scaled := make([][]float64, n)
	for i := 0; i < n; i++ {
		scaled[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			scaled[i][j] = a[i][j] * d[i] * d[j]
		}
	}

	inv := invertMatrix(scaled)
	if inv == nil {
		return nil
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			inv[i][j] *= d[i] * d[j]
		}
	}
	return inv
}

// invertMatrix inverts a square matrix using Gauss-Jordan elimination with
// partial pivoting.
func invertMatrix(m [][]float64) [][]float64 {
	n := len(m)
	if n == 0 {
		return nil
	}

	// Augmented matrix [A|I]
	aug := make([][]float64, n)
	for i := 0; i < n; i++ {
		aug[i] = make([]float64, 2*n)
		copy(aug[i][:n], m[i])
		aug[i][n+i] = 1
	}

	for i := 0; i < n; i++ {
		maxRow := i
		for k := i + 1; k < n; k++ {
			if math.Abs(aug[k][i]) > math.Abs(aug[maxRow][i]) {
				maxRow = k
			}
		}
		aug[i], aug[maxRow] = aug[maxRow], aug[i]

		// Negated test also rejects NaN pivots.
		if !(math.Abs(aug[i][i]) >= pivotTolerance) {
			return nil
		}

		pivot := aug[i][i]
		for j := 0; j < 2*n; j++ {
			aug[i][j] /= pivot
		}

		for k := 0; k < n; k++ {
			if k == i {
				continue
			}
			factor := aug[k][i]
			for j := 0; j < 2*n; j++ {
				aug[k][j] -= factor * aug[i][j]
			}
		}
	}

	result := make([][]float64, n)
	for i := 0; i < n; i++ {
		result[i] = make([]float64, n)
		copy(result[i], aug[i][n:])
	}
	return result
}
