// Package dataset loads and holds the daily flux observation table.
package dataset

import (
	"errors"
	"fmt"

	"github.com/sartorproj/goflux/timeseries"
)

// ErrEmpty is returned by Table.Validate when the table holds no rows.
var ErrEmpty = errors.New("dataset: table has no observations")

// Column identifies one of the fixed source columns.
type Column int

// Source columns, in file order.
const (
	ColYear Column = iota
	ColMonth
	ColDayOfYear
	ColFlux
	ColNetRadiation
	ColAirTemperature
	ColWaterVapor
	ColWindSpeed
)

// NumColumns is the number of columns a source row must provide.
const NumColumns = 8

var columnNames = [NumColumns]string{
	"year",
	"month",
	"day_of_year",
	"flux",
	"net_radiation",
	"air_temperature",
	"water_vapor",
	"wind_speed",
}

// String returns the column name used in headers and exports.
func (c Column) String() string {
	if c < 0 || int(c) >= NumColumns {
		return fmt.Sprintf("column(%d)", int(c))
	}
	return columnNames[c]
}

// Covariates lists the regression covariates in design-matrix order.
var Covariates = []Column{ColNetRadiation, ColAirTemperature, ColWaterVapor, ColWindSpeed}

// Observation is one day of flux and meteorological measurements.
type Observation struct {
	Year           int     `parquet:"year"`
	Month          int     `parquet:"month"`
	DayOfYear      float64 `parquet:"day_of_year"`
	Flux           float64 `parquet:"flux"`
	NetRadiation   float64 `parquet:"net_radiation"`
	AirTemperature float64 `parquet:"air_temperature"`
	WaterVapor     float64 `parquet:"water_vapor"`
	WindSpeed      float64 `parquet:"wind_speed"`
}

// DecimalYear places the observation on a continuous time axis.
func (o Observation) DecimalYear() float64 {
	return float64(o.Year) + o.DayOfYear/365
}

// Value returns the observation's value for column c.
func (o Observation) Value(c Column) float64 {
	switch c {
	case ColYear:
		return float64(o.Year)
	case ColMonth:
		return float64(o.Month)
	case ColDayOfYear:
		return o.DayOfYear
	case ColFlux:
		return o.Flux
	case ColNetRadiation:
		return o.NetRadiation
	case ColAirTemperature:
		return o.AirTemperature
	case ColWaterVapor:
		return o.WaterVapor
	case ColWindSpeed:
		return o.WindSpeed
	}
	panic(fmt.Sprintf("dataset: unknown column %d", int(c)))
}

// Table is an ordered, read-only sequence of observations.
// Accessors return copies; a Table never changes after construction.
type Table struct {
	source string
	rows   []Observation
}

// NewTable builds a table from rows. The rows are copied.
func NewTable(source string, rows []Observation) *Table {
	owned := make([]Observation, len(rows))
	copy(owned, rows)
	return &Table{source: source, rows: owned}
}

// Source returns the name the table was loaded from.
func (t *Table) Source() string {
	return t.source
}

// Len returns the number of observations.
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns observation i.
func (t *Table) Row(i int) Observation {
	return t.rows[i]
}

// Rows returns a copy of every observation.
func (t *Table) Rows() []Observation {
	rows := make([]Observation, len(t.rows))
	copy(rows, t.rows)
	return rows
}

// Validate reports ErrEmpty for a table without rows.
func (t *Table) Validate() error {
	if len(t.rows) == 0 {
		return ErrEmpty
	}
	return nil
}

// Column extracts column c as a fresh slice.
func (t *Table) Column(c Column) []float64 {
	values := make([]float64, len(t.rows))
	for i, o := range t.rows {
		values[i] = o.Value(c)
	}
	return values
}

// Years returns the year of every row.
func (t *Table) Years() []int {
	years := make([]int, len(t.rows))
	for i, o := range t.rows {
		years[i] = o.Year
	}
	return years
}

// Months returns the month of every row.
func (t *Table) Months() []int {
	months := make([]int, len(t.rows))
	for i, o := range t.rows {
		months[i] = o.Month
	}
	return months
}

// DecimalYears returns the time coordinate of every row.
func (t *Table) DecimalYears() []float64 {
	times := make([]float64, len(t.rows))
	for i, o := range t.rows {
		times[i] = o.DecimalYear()
	}
	return times
}

// Series returns column c as a time series on the decimal-year axis.
func (t *Table) Series(c Column) *timeseries.Series {
	return &timeseries.Series{
		Times:  t.DecimalYears(),
		Values: t.Column(c),
		Name:   c.String(),
	}
}

// YearRange returns the smallest and largest year present.
// ok is false for an empty table.
func (t *Table) YearRange() (first, last int, ok bool) {
	if len(t.rows) == 0 {
		return 0, 0, false
	}
	first, last = t.rows[0].Year, t.rows[0].Year
	for _, o := range t.rows[1:] {
		if o.Year < first {
			first = o.Year
		}
		if o.Year > last {
			last = o.Year
		}
	}
	return first, last, true
}
