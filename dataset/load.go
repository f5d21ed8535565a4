package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
	"github.com/spf13/cast"
)

// LoadError reports a missing or malformed input file.
type LoadError struct {
	Path   string
	Line   int    // 1-based line in the source, 0 when not line-specific
	Column string // Column name, empty when not column-specific
	Err    error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	b.WriteString("load ")
	b.WriteString(e.Path)
	if e.Line > 0 {
		fmt.Fprintf(&b, ": line %d", e.Line)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, ": column %s", e.Column)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadOptions holds options for delimited text loading.
type LoadOptions struct {
	HasHeader bool // Whether the first row is a header (default: true)
	Delimiter rune // Field delimiter (default: ',')
	SkipRows  int  // Number of rows to skip before the header
}

// DefaultLoadOptions returns default options for flux files.
func DefaultLoadOptions() *LoadOptions {
	return &LoadOptions{
		HasHeader: true,
		Delimiter: ',',
	}
}

// Load reads a table from path. The format follows the file extension:
// ".parquet" is read as Parquet, ".gz" and ".zst" are decompressed and
// parsed as delimited text, anything else is parsed as delimited text.
func Load(path string, opts *LoadOptions) (*Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return ReadParquet(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer file.Close()

	var r io.Reader = file
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		gz, err := pgzip.NewReader(file)
		if err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
		defer gz.Close()
		r = gz
	case ".zst":
		dec, err := zstd.NewReader(file)
		if err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
		defer dec.Close()
		r = dec
	}

	return LoadFromReader(r, path, opts)
}

// LoadFromReader parses delimited text from r. source names the input in
// errors and in the returned table.
func LoadFromReader(r io.Reader, source string, opts *LoadOptions) (*Table, error) {
	if opts == nil {
		opts = DefaultLoadOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, &LoadError{Path: source, Err: fmt.Errorf("skipping row %d: %w", i+1, err)}
		}
	}

	if opts.HasHeader {
		if _, err := reader.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				err = errors.New("missing header row")
			}
			return nil, &LoadError{Path: source, Err: err}
		}
	}

	var rows []Observation
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Path: source, Err: err}
		}
		line, _ := reader.FieldPos(0)

		obs, err := parseRecord(record)
		if err != nil {
			var fe *fieldError
			if errors.As(err, &fe) {
				return nil, &LoadError{Path: source, Line: line, Column: fe.column.String(), Err: fe.err}
			}
			return nil, &LoadError{Path: source, Line: line, Err: err}
		}
		rows = append(rows, obs)
	}

	return &Table{source: source, rows: rows}, nil
}

type fieldError struct {
	column Column
	err    error
}

func (e *fieldError) Error() string {
	return e.column.String() + ": " + e.err.Error()
}

// parseRecord converts the fixed leading columns of a record.
// Trailing columns beyond NumColumns are ignored.
func parseRecord(record []string) (Observation, error) {
	if len(record) < NumColumns {
		return Observation{}, fmt.Errorf("expected at least %d fields, got %d", NumColumns, len(record))
	}

	var values [NumColumns]float64
	for i := 0; i < NumColumns; i++ {
		v, err := cast.ToFloat64E(strings.TrimSpace(strings.Trim(record[i], "\"")))
		if err != nil {
			return Observation{}, &fieldError{column: Column(i), err: err}
		}
		values[i] = v
	}

	year, err := wholeNumber(values[ColYear])
	if err != nil {
		return Observation{}, &fieldError{column: ColYear, err: err}
	}
	month, err := wholeNumber(values[ColMonth])
	if err != nil {
		return Observation{}, &fieldError{column: ColMonth, err: err}
	}

	obs := Observation{
		Year:           year,
		Month:          month,
		DayOfYear:      values[ColDayOfYear],
		Flux:           values[ColFlux],
		NetRadiation:   values[ColNetRadiation],
		AirTemperature: values[ColAirTemperature],
		WaterVapor:     values[ColWaterVapor],
		WindSpeed:      values[ColWindSpeed],
	}
	if err := checkObservation(obs); err != nil {
		return Observation{}, err
	}
	return obs, nil
}

// checkObservation rejects rows no analysis can use: a month outside 1-12
// or a measurement that is NaN or infinite.
func checkObservation(o Observation) error {
	if o.Month < 1 || o.Month > 12 {
		return &fieldError{column: ColMonth, err: fmt.Errorf("month %d out of range 1-12", o.Month)}
	}
	for c := ColDayOfYear; c < NumColumns; c++ {
		if v := o.Value(c); math.IsNaN(v) || math.IsInf(v, 0) {
			return &fieldError{column: c, err: fmt.Errorf("%v is not a finite number", v)}
		}
	}
	return nil
}

// wholeNumber accepts integral values written either as "1992" or "1992.0".
func wholeNumber(v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, fmt.Errorf("%v is not a whole number", v)
	}
	return int(v), nil
}
