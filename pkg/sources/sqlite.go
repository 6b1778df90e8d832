package sources

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/agentstation/rectify/pkg/errors"
	"github.com/agentstation/rectify/pkg/table"
)

// sqliteDriver is the database/sql driver name registered by
// modernc.org/sqlite.
const sqliteDriver = "sqlite"

// SQLiteSource loads a table from a SQLite database via an arbitrary
// query. Column names and order follow the result set.
type SQLiteSource struct {
	path  string
	query string
}

// NewSQLite creates a SQLite source for the given database path and query.
func NewSQLite(path, query string) *SQLiteSource {
	return &SQLiteSource{path: path, query: query}
}

// Type returns the source format.
func (s *SQLiteSource) Type() Type {
	return TypeSQLite
}

// Load runs the query and reads the result set into a table.
func (s *SQLiteSource) Load(ctx context.Context) (*table.Table, error) {
	if s.query == "" {
		return nil, &errors.ConfigError{
			Component: "sqlite source",
			Message:   "query is required",
		}
	}

	db, err := sql.Open(sqliteDriver, s.path)
	if err != nil {
		return nil, errors.WrapIO("open", s.path, err)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, s.query)
	if err != nil {
		return nil, errors.WrapQuery(sqliteDriver, s.query, err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.WrapQuery(sqliteDriver, s.query, err)
	}

	t := table.New(columns...)
	scan := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range scan {
		ptrs[i] = &scan[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.WrapQuery(sqliteDriver, s.query, err)
		}
		values := make([]table.Value, len(scan))
		for i, cell := range scan {
			values[i] = scanValue(cell)
		}
		if err := t.Append(values...); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapQuery(sqliteDriver, s.query, err)
	}
	return t, nil
}

// scanValue converts a database/sql scan result to a typed value.
func scanValue(cell any) table.Value {
	switch v := cell.(type) {
	case nil:
		return table.Missing
	case int64:
		return table.NewInt(v)
	case string:
		if v == "" {
			return table.Missing
		}
		return table.NewString(v)
	case []byte:
		if len(v) == 0 {
			return table.Missing
		}
		return table.NewString(string(v))
	default:
		return table.NewString(fmt.Sprint(v))
	}
}
