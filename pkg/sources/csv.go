package sources

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/agentstation/rectify/pkg/errors"
	"github.com/agentstation/rectify/pkg/table"
)

// CSVSource loads a table from a CSV file. The first record is the header.
// Empty cells become missing values; cells parsing as integers become
// integer values; everything else stays a string.
type CSVSource struct {
	path string
}

// NewCSV creates a CSV source for the given file path.
func NewCSV(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Type returns the source format.
func (s *CSVSource) Type() Type {
	return TypeCSV
}

// Load reads the CSV file into a table.
func (s *CSVSource) Load(_ context.Context) (*table.Table, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, errors.WrapIO("open", s.path, err)
	}
	defer func() { _ = file.Close() }()

	t, err := ReadCSV(file)
	if err != nil {
		return nil, errors.WrapParse("csv", s.path, err)
	}
	return t, nil
}

// ReadCSV parses CSV data from r into a table.
func ReadCSV(r io.Reader) (*table.Table, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.ErrEmptyTable
	}
	if err != nil {
		return nil, err
	}

	t := table.New(header...)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		values := make([]table.Value, len(record))
		for i, cell := range record {
			values[i] = parseCell(cell)
		}
		if err := t.Append(values...); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// parseCell converts a raw CSV cell to a typed value.
func parseCell(cell string) table.Value {
	if cell == "" {
		return table.Missing
	}
	if n, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return table.NewInt(n)
	}
	return table.NewString(cell)
}

// CSVWriter saves a table to a CSV file.
type CSVWriter struct {
	path string
}

// NewCSVWriter creates a CSV writer for the given file path.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Type returns the output format.
func (w *CSVWriter) Type() Type {
	return TypeCSV
}

// Save writes the table to the configured path. Missing values are
// written as empty cells.
func (w *CSVWriter) Save(t *table.Table) error {
	file, err := os.Create(w.path)
	if err != nil {
		return errors.WrapIO("create", w.path, err)
	}
	defer func() { _ = file.Close() }()

	if err := WriteCSV(file, t); err != nil {
		return errors.WrapIO("write", w.path, err)
	}
	return nil
}

// WriteCSV writes a table as CSV to w.
func WriteCSV(w io.Writer, t *table.Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Columns()); err != nil {
		return err
	}
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		record := make([]string, len(row))
		for j, v := range row {
			record[j] = v.String()
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
