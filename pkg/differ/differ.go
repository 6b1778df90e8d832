// Package differ computes cell-level changesets between row-aligned
// tables, auditing exactly what a reconciliation pass rewrote.
package differ

import (
	"fmt"

	"github.com/agentstation/rectify/pkg/errors"
	"github.com/agentstation/rectify/pkg/table"
)

// CellChange records one rewritten cell.
type CellChange struct {
	Row    int
	Column string
	Before table.Value
	After  table.Value
}

// Changeset summarizes the differences between two row-aligned tables.
type Changeset struct {
	Cells []CellChange

	Summary Summary
}

// Summary holds changeset counts.
type Summary struct {
	RowsCompared int
	CellsChanged int
	RowsChanged  int
}

// HasChanges returns true if any cell differs.
func (c *Changeset) HasChanges() bool {
	return len(c.Cells) > 0
}

// String returns a human-readable summary.
func (c *Changeset) String() string {
	return fmt.Sprintf("%d cells changed across %d of %d rows",
		c.Summary.CellsChanged, c.Summary.RowsChanged, c.Summary.RowsCompared)
}

// Tables diffs two tables with identical schema and row order, as produced
// by a reconciliation pass before deduplication.
func Tables(before, after *table.Table) (*Changeset, error) {
	if before.Len() != after.Len() {
		return nil, &errors.ValidationError{
			Field:   "after",
			Message: "tables are not row-aligned",
		}
	}
	columns := before.Columns()
	if len(columns) != len(after.Columns()) {
		return nil, &errors.ValidationError{
			Field:   "after",
			Message: "tables have different schemas",
		}
	}

	changeset := &Changeset{Summary: Summary{RowsCompared: before.Len()}}
	for i := 0; i < before.Len(); i++ {
		rowChanged := false
		for j, column := range columns {
			b, a := before.At(i, j), after.At(i, j)
			if b.Equal(a) {
				continue
			}
			changeset.Cells = append(changeset.Cells, CellChange{
				Row:    i,
				Column: column,
				Before: b,
				After:  a,
			})
			rowChanged = true
		}
		if rowChanged {
			changeset.Summary.RowsChanged++
		}
	}
	changeset.Summary.CellsChanged = len(changeset.Cells)
	return changeset, nil
}
