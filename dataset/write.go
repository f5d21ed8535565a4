package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
	"github.com/parquet-go/parquet-go"
)

// ReadParquet loads a table from a Parquet file whose columns carry the
// names listed by Column.String.
func ReadParquet(path string) (*Table, error) {
	rows, err := parquet.ReadFile[Observation](path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	for i, o := range rows {
		if err := checkObservation(o); err != nil {
			fe := err.(*fieldError)
			return nil, &LoadError{Path: path, Line: i + 1, Column: fe.column.String(), Err: fe.err}
		}
	}
	return &Table{source: path, rows: rows}, nil
}

// WriteParquet writes the table to a Parquet file.
func WriteParquet(path string, t *Table) error {
	if err := parquet.WriteFile(path, t.rows); err != nil {
		return fmt.Errorf("write parquet %s: %w", path, err)
	}
	return nil
}

// Save writes the table to path. ".parquet" produces Parquet; ".gz" and
// ".zst" produce compressed delimited text; anything else plain text.
func Save(path string, t *Table) error {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return WriteParquet(path, t)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var w io.WriteCloser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		w = pgzip.NewWriter(file)
	case ".zst":
		enc, err := zstd.NewWriter(file)
		if err != nil {
			return err
		}
		w = enc
	}

	if w == nil {
		if err := WriteCSV(file, t); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
		return file.Close()
	}

	if err := WriteCSV(w, t); err != nil {
		w.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return file.Close()
}

// WriteCSV writes the table as comma-delimited text with a header row.
func WriteCSV(w io.Writer, t *Table) error {
	writer := bufio.NewWriter(w)

	writer.WriteString(strings.Join(columnNames[:], ","))
	writer.WriteString("\n")

	for _, o := range t.rows {
		writer.WriteString(strconv.Itoa(o.Year))
		writer.WriteString(",")
		writer.WriteString(strconv.Itoa(o.Month))
		for _, c := range []Column{ColDayOfYear, ColFlux, ColNetRadiation, ColAirTemperature, ColWaterVapor, ColWindSpeed} {
			writer.WriteString(",")
			writer.WriteString(strconv.FormatFloat(o.Value(c), 'f', -1, 64))
		}
		writer.WriteString("\n")
	}

	return writer.Flush()
}
