// Package timeseries provides core time series data structures and operations.
package timeseries

import (
	"math"
	"sort"
)

// Series represents a time series on a decimal-year time axis.
type Series struct {
	Times  []float64 // Decimal years (year + dayOfYear/365)
	Values []float64
	Name   string
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// Mean calculates the arithmetic mean of the series.
// An empty series has an undefined mean and yields NaN.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range s.Values {
		sum += v
	}
	return sum / float64(len(s.Values))
}

// PopulationVariance calculates the variance normalised by N.
func (s *Series) PopulationVariance() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	mean := s.Mean()
	sumSq := 0.0
	for _, v := range s.Values {
		diff := v - mean
		sumSq += diff * diff
	}
	return sumSq / float64(len(s.Values))
}

// PopulationStd calculates the standard deviation normalised by N.
func (s *Series) PopulationStd() float64 {
	return math.Sqrt(s.PopulationVariance())
}

// Min returns the minimum value in the series.
// NaN if the series is empty or holds a NaN.
func (s *Series) Min() float64 {
	if len(s.Values) == 0 || s.hasNaN() {
		return math.NaN()
	}
	min := s.Values[0]
	for _, v := range s.Values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the maximum value in the series.
// NaN if the series is empty or holds a NaN.
func (s *Series) Max() float64 {
	if len(s.Values) == 0 || s.hasNaN() {
		return math.NaN()
	}
	max := s.Values[0]
	for _, v := range s.Values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Median returns the median value of the series.
// NaN if the series is empty or holds a NaN, which has no place in the order.
func (s *Series) Median() float64 {
	if len(s.Values) == 0 || s.hasNaN() {
		return math.NaN()
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	times := make([]float64, len(s.Times))
	copy(times, s.Times)

	return &Series{
		Times:  times,
		Values: values,
		Name:   s.Name,
	}
}

func (s *Series) hasNaN() bool {
	for _, v := range s.Values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
