// Package sources provides dataset sources and writers for rectify.
// The reconciliation core is format-agnostic; serialized formats are the
// concern of these collaborators. CSV, YAML, and SQLite are supported.
package sources

import (
	"context"

	"github.com/agentstation/rectify/pkg/errors"
	"github.com/agentstation/rectify/pkg/table"
)

// Type identifies a dataset source or writer format.
type Type string

const (
	// TypeCSV is a comma-separated values file.
	TypeCSV Type = "csv"
	// TypeYAML is a columns/rows YAML document.
	TypeYAML Type = "yaml"
	// TypeSQLite is a SQLite database queried into a table.
	TypeSQLite Type = "sqlite"
)

// String returns the string representation of a source type.
func (t Type) String() string {
	return string(t)
}

// Source loads an in-memory table from an external dataset.
type Source interface {
	// Type returns the source format
	Type() Type

	// Load reads the dataset into a table
	Load(ctx context.Context) (*table.Table, error)
}

// Writer persists a table to an external dataset.
type Writer interface {
	// Type returns the output format
	Type() Type

	// Save writes the table
	Save(t *table.Table) error
}

// New creates a source of the given type for a path. The query is used by
// the SQLite source and ignored otherwise.
func New(typ Type, path, query string) (Source, error) {
	switch typ {
	case TypeCSV:
		return NewCSV(path), nil
	case TypeYAML:
		return NewYAML(path), nil
	case TypeSQLite:
		return NewSQLite(path, query), nil
	default:
		return nil, &errors.ValidationError{
			Field:   "type",
			Value:   string(typ),
			Message: "unknown source type",
		}
	}
}

// NewWriter creates a writer of the given type for a path.
func NewWriter(typ Type, path string) (Writer, error) {
	switch typ {
	case TypeCSV:
		return NewCSVWriter(path), nil
	case TypeYAML:
		return NewYAMLWriter(path), nil
	default:
		return nil, &errors.ValidationError{
			Field:   "type",
			Value:   string(typ),
			Message: "unknown writer type",
		}
	}
}
