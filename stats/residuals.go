package stats

import (
	"math"

	"github.com/aclements/go-moremath/mathx"
)

// Autocorrelation returns the sample autocorrelation of xs for lags
// 0 to maxLag. Returns nil for a constant or empty input.
func Autocorrelation(xs []float64, maxLag int) []float64 {
	n := len(xs)
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	mean := 0.0
	for _, v := range xs {
		mean += v
	}
	mean /= float64(n)

	variance := 0.0
	for _, v := range xs {
		diff := v - mean
		variance += diff * diff
	}
	if variance == 0 || math.IsNaN(variance) {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += (xs[i] - mean) * (xs[i-k] - mean)
		}
		acf[k] = sum / variance
	}

	return acf
}

// LjungBoxResult represents the result of a Ljung-Box test.
type LjungBoxResult struct {
	Statistic float64
	PValue    float64
	Lags      int
	DOF       int // Degrees of freedom
}

// LjungBox tests residuals for autocorrelation up to the given lag.
// H0: no autocorrelation. fitdf is the number of parameters estimated by
// the model that produced the residuals. Returns nil for fewer than 10
// residuals.
func LjungBox(residuals []float64, lags, fitdf int) *LjungBoxResult {
	n := len(residuals)
	if n < 10 || lags < 1 {
		return nil
	}
	if lags >= n {
		lags = n - 1
	}

	acf := Autocorrelation(residuals, lags)
	if acf == nil {
		return nil
	}

	q := 0.0
	for k := 1; k <= lags; k++ {
		q += (acf[k] * acf[k]) / float64(n-k)
	}
	q *= float64(n) * float64(n+2)

	dof := max(lags-fitdf, 1)

	return &LjungBoxResult{
		Statistic: q,
		PValue:    1 - chiSquaredCDF(q, dof),
		Lags:      lags,
		DOF:       dof,
	}
}

// chiSquaredCDF is P(k/2, x/2), the regularized lower incomplete gamma.
func chiSquaredCDF(x float64, k int) float64 {
	if x <= 0 {
		return 0
	}
	return mathx.GammaInc(float64(k)/2, x/2)
}

// DurbinWatson returns the Durbin-Watson statistic of the residuals:
// about 2 without first-order autocorrelation, towards 0 for positive and
// towards 4 for negative autocorrelation. NaN for fewer than two residuals
// or all-zero residuals.
func DurbinWatson(residuals []float64) float64 {
	n := len(residuals)
	if n < 2 {
		return math.NaN()
	}

	numerator := 0.0
	for i := 1; i < n; i++ {
		diff := residuals[i] - residuals[i-1]
		numerator += diff * diff
	}

	denominator := 0.0
	for _, r := range residuals {
		denominator += r * r
	}
	if denominator == 0 {
		return math.NaN()
	}

	return numerator / denominator
}

// InformationCriteria holds likelihood-based model selection scores.
type InformationCriteria struct {
	AIC    float64
	AICc   float64 // +Inf when nObs <= nParams+1
	BIC    float64
	LogLik float64
}

// CalculateIC derives AIC, AICc and BIC from a log-likelihood.
func CalculateIC(logLik float64, nObs, nParams int) *InformationCriteria {
	k := float64(nParams)
	n := float64(nObs)

	aic := -2*logLik + 2*k
	aicc := math.Inf(1)
	if n-k-1 > 0 {
		aicc = aic + 2*k*(k+1)/(n-k-1)
	}

	return &InformationCriteria{
		AIC:    aic,
		AICc:   aicc,
		BIC:    -2*logLik + k*math.Log(n),
		LogLik: logLik,
	}
}

// GaussianLogLik is the maximised log-likelihood of a linear model with
// normal errors given its residual sum of squares.
func GaussianLogLik(sse float64, nObs int) float64 {
	n := float64(nObs)
	return -n / 2 * (math.Log(2*math.Pi) + math.Log(sse/n) + 1)
}
