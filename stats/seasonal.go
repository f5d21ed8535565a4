package stats

import "math"

// SeasonalCycle holds the mean value of each calendar month across all years.
type SeasonalCycle struct {
	Means  [12]float64 // Means[i] is month i+1; NaN when the month has no data
	Counts [12]int
}

// MonthlyMeans averages values by calendar month (1-12), regardless of year.
// months and values are paired by index; entries past the shorter slice and
// months outside 1-12 are ignored.
func MonthlyMeans(months []int, values []float64) *SeasonalCycle {
	var sums [12]float64
	cycle := &SeasonalCycle{}

	n := min(len(months), len(values))
	for i := 0; i < n; i++ {
		m := months[i]
		if m < 1 || m > 12 {
			continue
		}
		sums[m-1] += values[i]
		cycle.Counts[m-1]++
	}

	for i := range cycle.Means {
		if cycle.Counts[i] == 0 {
			cycle.Means[i] = math.NaN()
			continue
		}
		cycle.Means[i] = sums[i] / float64(cycle.Counts[i])
	}

	return cycle
}
