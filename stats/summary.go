// Package stats provides descriptive statistics and diagnostics for flux series.
package stats

import (
	"math"

	mstats "github.com/aclements/go-moremath/stats"

	"github.com/sartorproj/goflux/timeseries"
)

// Summary holds descriptive statistics of a series.
type Summary struct {
	N      int
	Mean   float64
	Median float64
	Std    float64 // Population standard deviation (divides by N)
	Min    float64
	Max    float64
}

// Describe computes the summary statistics of a series.
// Every statistic of an empty series is NaN.
func Describe(series *timeseries.Series) *Summary {
	n := series.Len()
	if n == 0 {
		nan := math.NaN()
		return &Summary{Mean: nan, Median: nan, Std: nan, Min: nan, Max: nan}
	}

	sample := mstats.Sample{Xs: series.Values}

	return &Summary{
		N:      n,
		Mean:   sample.Mean(),
		Median: series.Median(),
		Std:    series.PopulationStd(),
		Min:    series.Min(),
		Max:    series.Max(),
	}
}

// Histogram is a density-normalised histogram with uniform bins.
type Histogram struct {
	Edges   []float64 // len(Counts)+1 bin boundaries
	Counts  []int
	Density []float64 // Counts / (N * Width); integrates to 1
	Width   float64
	N       int // Values binned (NaN values are skipped)
}

// NewHistogram bins the finite values into the given number of uniform bins
// spanning [min, max]. The last bin is closed so that the maximum is counted.
// Returns nil if there are no finite values or bins < 1.
func NewHistogram(values []float64, bins int) *Histogram {
	if bins < 1 {
		return nil
	}

	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return nil
	}

	lo, hi := mstats.Bounds(finite)
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	hist := mstats.NewLinearHist(lo, hi, bins)
	for _, v := range finite {
		hist.Add(v)
	}
	_, binCounts, high := hist.Counts()

	width := (hi - lo) / float64(bins)
	result := &Histogram{
		Edges:   make([]float64, bins+1),
		Counts:  make([]int, bins),
		Density: make([]float64, bins),
		Width:   width,
		N:       len(finite),
	}
	for i := range result.Edges {
		result.Edges[i] = lo + float64(i)*width
	}
	result.Edges[bins] = hi

	for i, c := range binCounts {
		result.Counts[i] = int(c)
	}
	// Values at the upper bound land past the last bin.
	result.Counts[bins-1] += int(high)

	norm := float64(result.N) * width
	for i, c := range result.Counts {
		result.Density[i] = float64(c) / norm
	}

	return result
}
