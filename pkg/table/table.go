// Package table provides the in-memory tabular data model for rectify.
// A Table is an ordered set of named columns over ordered rows of typed
// values, with the grouping and sorting primitives the reconciliation
// pass is built on. All transforming operations return new tables; rows
// of the receiver are never mutated.
package table

import (
	"sort"
	"strings"

	"github.com/agentstation/rectify/pkg/errors"
)

// keySeparator joins key parts. Unit separator avoids collisions with
// values containing commas or dashes.
const keySeparator = "\x1f"

// Key identifies a key group: the joined values of the key columns.
type Key string

// NewKey builds a Key from its parts.
func NewKey(parts ...string) Key {
	return Key(strings.Join(parts, keySeparator))
}

// Parts splits a key back into its column values.
func (k Key) Parts() []string {
	return strings.Split(string(k), keySeparator)
}

// String implements fmt.Stringer with a readable separator.
func (k Key) String() string {
	return strings.Join(k.Parts(), "/")
}

// Table is an ordered, column-named collection of rows.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Value
}

// New creates an empty table with the given column names.
func New(columns ...string) *Table {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}
	return &Table{
		columns: append([]string(nil), columns...),
		index:   index,
	}
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Column returns the index of a named column.
func (t *Table) Column(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// ColumnIndexes resolves several column names at once, failing on the
// first name that is absent.
func (t *Table) ColumnIndexes(names ...string) ([]int, error) {
	indexes := make([]int, len(names))
	for i, name := range names {
		idx, ok := t.index[name]
		if !ok {
			return nil, errors.NewColumnNotFoundError(name, t.columns)
		}
		indexes[i] = idx
	}
	return indexes, nil
}

// Append adds a row. The number of values must match the column count.
func (t *Table) Append(values ...Value) error {
	if len(values) != len(t.columns) {
		return &errors.ValidationError{
			Field:   "row",
			Value:   len(values),
			Message: "value count does not match column count",
		}
	}
	t.rows = append(t.rows, append([]Value(nil), values...))
	return nil
}

// Row returns the values of row i. The returned slice is shared; callers
// must not modify it.
func (t *Table) Row(i int) []Value {
	return t.rows[i]
}

// At returns the value at row i, column col.
func (t *Table) At(i, col int) Value {
	return t.rows[i][col]
}

// Set overwrites the value at row i, column col.
func (t *Table) Set(i, col int, v Value) {
	t.rows[i][col] = v
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	clone := New(t.columns...)
	clone.rows = make([][]Value, len(t.rows))
	for i, row := range t.rows {
		clone.rows[i] = append([]Value(nil), row...)
	}
	return clone
}

// Key builds the group key of row i over the given column indexes.
func (t *Table) Key(i int, cols []int) Key {
	parts := make([]string, len(cols))
	for j, c := range cols {
		parts[j] = t.rows[i][c].String()
	}
	return NewKey(parts...)
}

// SortedIndexes returns row indexes ordered by the given columns,
// comparing column by column. The sort is stable: ties keep original
// record order.
func (t *Table) SortedIndexes(cols []int) []int {
	indexes := make([]int, len(t.rows))
	for i := range indexes {
		indexes[i] = i
	}
	sort.SliceStable(indexes, func(a, b int) bool {
		ra, rb := t.rows[indexes[a]], t.rows[indexes[b]]
		for _, c := range cols {
			if cmp := ra[c].Compare(rb[c]); cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})
	return indexes
}

// Group is a set of rows sharing a key, in the order given at grouping
// time.
type Group struct {
	Key  Key
	Rows []int
}

// GroupBy partitions row indexes by their key over the given columns.
// Groups appear in order of first appearance; rows within a group keep
// the order of the input indexes. When indexes is nil, original row
// order is used.
func (t *Table) GroupBy(cols []int, indexes []int) []Group {
	if indexes == nil {
		indexes = make([]int, len(t.rows))
		for i := range indexes {
			indexes[i] = i
		}
	}
	var groups []Group
	position := make(map[Key]int)
	for _, i := range indexes {
		key := t.Key(i, cols)
		p, seen := position[key]
		if !seen {
			p = len(groups)
			position[key] = p
			groups = append(groups, Group{Key: key})
		}
		groups[p].Rows = append(groups[p].Rows, i)
	}
	return groups
}
