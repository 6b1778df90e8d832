package reconcile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentstation/rectify/pkg/table"
)

// newTable builds a test table. Cells may be int, string, or nil for
// missing.
func newTable(t *testing.T, columns []string, rows ...[]any) *table.Table {
	t.Helper()
	tab := table.New(columns...)
	for _, row := range rows {
		values := make([]table.Value, len(row))
		for i, cell := range row {
			switch v := cell.(type) {
			case nil:
				values[i] = table.Missing
			case int:
				values[i] = table.NewInt(int64(v))
			case string:
				values[i] = table.NewString(v)
			default:
				t.Fatalf("unsupported cell type %T", cell)
			}
		}
		require.NoError(t, tab.Append(values...))
	}
	return tab
}

// cells renders a table as strings for comparison; missing renders empty.
func cells(tab *table.Table) [][]string {
	out := make([][]string, tab.Len())
	for i := 0; i < tab.Len(); i++ {
		row := tab.Row(i)
		rendered := make([]string, len(row))
		for j, v := range row {
			rendered[j] = v.String()
		}
		out[i] = rendered
	}
	return out
}

// column extracts one rendered column.
func column(t *testing.T, tab *table.Table, name string) []string {
	t.Helper()
	idx, ok := tab.Column(name)
	require.True(t, ok, "column %s", name)
	out := make([]string, tab.Len())
	for i := 0; i < tab.Len(); i++ {
		out[i] = tab.At(i, idx).String()
	}
	return out
}
