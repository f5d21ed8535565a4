package stats

import (
	"math"

	"github.com/sartorproj/goflux/timeseries"
)

// Decomposition splits a series into trend, seasonal and residual parts so
// that Original = Trend + Seasonal + Residual wherever the trend is defined.
type Decomposition struct {
	Original *timeseries.Series
	Trend    *timeseries.Series
	Seasonal *timeseries.Series
	Residual *timeseries.Series
	Period   int
}

// Decompose performs classical additive decomposition with a centred moving
// average trend. Missing values (NaN) leave the trend undefined over every
// window that touches them and are skipped when averaging the seasonal
// pattern. Returns nil when the series spans fewer than two periods.
func Decompose(series *timeseries.Series, period int) *Decomposition {
	n := series.Len()
	if period < 2 || n < 2*period {
		return nil
	}

	trend := centredMovingAverage(series.Values, period)

	pattern := make([]float64, period)
	counts := make([]int, period)
	for i := 0; i < n; i++ {
		d := series.Values[i] - trend[i]
		if math.IsNaN(d) {
			continue
		}
		pattern[i%period] += d
		counts[i%period]++
	}

	// Centre the pattern on the positions that have an estimate.
	sum, filled := 0.0, 0
	for i := range pattern {
		if counts[i] > 0 {
			pattern[i] /= float64(counts[i])
			sum += pattern[i]
			filled++
		}
	}
	if filled > 0 {
		offset := sum / float64(filled)
		for i := range pattern {
			if counts[i] > 0 {
				pattern[i] -= offset
			}
		}
	}

	seasonal := make([]float64, n)
	residual := make([]float64, n)
	for i := 0; i < n; i++ {
		seasonal[i] = pattern[i%period]
		residual[i] = series.Values[i] - trend[i] - seasonal[i]
	}

	component := func(values []float64, name string) *timeseries.Series {
		times := make([]float64, len(series.Times))
		copy(times, series.Times)
		return &timeseries.Series{Times: times, Values: values, Name: name}
	}

	return &Decomposition{
		Original: series,
		Trend:    component(trend, "trend"),
		Seasonal: component(seasonal, "seasonal"),
		Residual: component(residual, "residual"),
		Period:   period,
	}
}

// centredMovingAverage returns the centred moving average of values, using a
// 2xperiod average for even periods. The ends are NaN.
func centredMovingAverage(values []float64, period int) []float64 {
	n := len(values)
	trend := make([]float64, n)
	for i := range trend {
		trend[i] = math.NaN()
	}

	half := period / 2
	for i := half; i < n-half; i++ {
		sum := 0.0
		if period%2 == 0 {
			sum += 0.5 * (values[i-half] + values[i+half])
			for j := i - half + 1; j < i+half; j++ {
				sum += values[j]
			}
		} else {
			for j := i - half; j <= i+half; j++ {
				sum += values[j]
			}
		}
		trend[i] = sum / float64(period)
	}

	return trend
}
