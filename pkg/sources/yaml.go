package sources

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/rectify/pkg/errors"
	"github.com/agentstation/rectify/pkg/table"
)

// document is the YAML dataset layout: an explicit column list keeps the
// column order deterministic, which YAML mappings would not.
type document struct {
	Columns []string `yaml:"columns"`
	Rows    [][]any  `yaml:"rows"`
}

// YAMLSource loads a table from a columns/rows YAML document.
type YAMLSource struct {
	path string
}

// NewYAML creates a YAML source for the given file path.
func NewYAML(path string) *YAMLSource {
	return &YAMLSource{path: path}
}

// Type returns the source format.
func (s *YAMLSource) Type() Type {
	return TypeYAML
}

// Load reads the YAML document into a table.
func (s *YAMLSource) Load(_ context.Context) (*table.Table, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.WrapIO("read", s.path, err)
	}
	t, err := UnmarshalYAML(data)
	if err != nil {
		return nil, errors.WrapParse("yaml", s.path, err)
	}
	return t, nil
}

// UnmarshalYAML parses a columns/rows YAML document into a table.
func UnmarshalYAML(data []byte) (*table.Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Columns) == 0 {
		return nil, errors.ErrEmptyTable
	}

	t := table.New(doc.Columns...)
	for i, row := range doc.Rows {
		values := make([]table.Value, len(row))
		for j, cell := range row {
			v, err := decodeCell(cell)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", i, j, err)
			}
			values[j] = v
		}
		if err := t.Append(values...); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// decodeCell converts a decoded YAML scalar to a typed value.
func decodeCell(cell any) (table.Value, error) {
	switch v := cell.(type) {
	case nil:
		return table.Missing, nil
	case string:
		if v == "" {
			return table.Missing, nil
		}
		return table.NewString(v), nil
	case int:
		return table.NewInt(int64(v)), nil
	case int64:
		return table.NewInt(v), nil
	case uint64:
		return table.NewInt(int64(v)), nil
	case float64:
		if v == float64(int64(v)) {
			return table.NewInt(int64(v)), nil
		}
		return table.Missing, fmt.Errorf("unsupported fractional value %v", v)
	default:
		return table.Missing, fmt.Errorf("unsupported cell type %T", cell)
	}
}

// YAMLWriter saves a table as a columns/rows YAML document.
type YAMLWriter struct {
	path string
}

// NewYAMLWriter creates a YAML writer for the given file path.
func NewYAMLWriter(path string) *YAMLWriter {
	return &YAMLWriter{path: path}
}

// Type returns the output format.
func (w *YAMLWriter) Type() Type {
	return TypeYAML
}

// Save writes the table to the configured path.
func (w *YAMLWriter) Save(t *table.Table) error {
	data, err := MarshalYAML(t)
	if err != nil {
		return errors.WrapParse("yaml", w.path, err)
	}
	if err := os.WriteFile(w.path, data, 0o644); err != nil {
		return errors.WrapIO("write", w.path, err)
	}
	return nil
}

// MarshalYAML encodes a table as a columns/rows YAML document. Missing
// values are encoded as nulls.
func MarshalYAML(t *table.Table) ([]byte, error) {
	doc := document{
		Columns: t.Columns(),
		Rows:    make([][]any, t.Len()),
	}
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		cells := make([]any, len(row))
		for j, v := range row {
			switch {
			case v.IsMissing():
				cells[j] = nil
			default:
				if n, ok := v.AsInt(); ok {
					cells[j] = n
				} else {
					cells[j] = v.String()
				}
			}
		}
		doc.Rows[i] = cells
	}
	return yaml.Marshal(doc)
}
