package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/rectify/pkg/errors"
)

func TestDedupeKeepsFirstRow(t *testing.T) {
	tab := newTable(t, []string{"sid", "year", "tag"},
		[]any{1, 2015, "first"},
		[]any{2, 2015, "other"},
		[]any{1, 2015, "second"},
	)

	out, err := Dedupe(tab, "sid", "year")
	require.NoError(t, err)

	assert.Equal(t, 2, out.Len())
	assert.Equal(t, []string{"first", "other"}, column(t, out, "tag"))
}

func TestDedupeIsDeterministic(t *testing.T) {
	tab := newTable(t, []string{"sid", "tag"},
		[]any{1, "a"},
		[]any{1, "b"},
		[]any{2, "c"},
	)

	first, err := Dedupe(tab, "sid")
	require.NoError(t, err)
	second, err := Dedupe(tab, "sid")
	require.NoError(t, err)
	assert.Equal(t, cells(first), cells(second))
}

func TestDedupeMissingColumn(t *testing.T) {
	tab := newTable(t, []string{"sid"}, []any{1})

	_, err := Dedupe(tab, "year")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}
