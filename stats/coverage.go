package stats

// DaysInYear returns the number of daily observations expected in a year.
// Every year divisible by 4 counts as a leap year; the century exception is
// not applied.
func DaysInYear(year int) int {
	if year%4 == 0 {
		return 366
	}
	return 365
}

// YearCoverage describes how complete one calendar year of daily data is.
type YearCoverage struct {
	Year     int
	Expected int
	Observed int
	Missing  int // Expected - Observed; negative when a year has surplus rows
}

// AuditCoverage counts missing observations for every year between the
// smallest and largest year present, inclusive. Years without any
// observation are reported as fully missing. An empty input yields an
// empty result.
func AuditCoverage(years []int) []YearCoverage {
	if len(years) == 0 {
		return []YearCoverage{}
	}

	first, last := years[0], years[0]
	for _, y := range years[1:] {
		if y < first {
			first = y
		}
		if y > last {
			last = y
		}
	}

	observed := make([]int, last-first+1)
	for _, y := range years {
		observed[y-first]++
	}

	result := make([]YearCoverage, len(observed))
	for i, count := range observed {
		year := first + i
		expected := DaysInYear(year)
		result[i] = YearCoverage{
			Year:     year,
			Expected: expected,
			Observed: count,
			Missing:  expected - count,
		}
	}

	return result
}
