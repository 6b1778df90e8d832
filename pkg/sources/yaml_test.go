package sources

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/rectify/pkg/errors"
	"github.com/agentstation/rectify/pkg/table"
)

const yamlFixture = `columns: [sid, year, frpl]
rows:
  - [2, 2014, R]
  - [2, 2015, F]
  - [2, 2015, null]
`

func TestUnmarshalYAML(t *testing.T) {
	tab, err := UnmarshalYAML([]byte(yamlFixture))
	require.NoError(t, err)

	assert.Equal(t, []string{"sid", "year", "frpl"}, tab.Columns())
	require.Equal(t, 3, tab.Len())
	assert.Equal(t, table.NewInt(2014), tab.At(0, 1))
	assert.Equal(t, table.NewString("R"), tab.At(0, 2))
	assert.True(t, tab.At(2, 2).IsMissing())
}

func TestUnmarshalYAMLNoColumns(t *testing.T) {
	_, err := UnmarshalYAML([]byte("rows: []\n"))
	assert.ErrorIs(t, err, errors.ErrEmptyTable)
}

func TestYAMLRoundTrip(t *testing.T) {
	tab, err := UnmarshalYAML([]byte(yamlFixture))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.yaml")
	writer := NewYAMLWriter(path)
	assert.Equal(t, TypeYAML, writer.Type())
	require.NoError(t, writer.Save(tab))

	source := NewYAML(path)
	assert.Equal(t, TypeYAML, source.Type())
	reloaded, err := source.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, tab.Columns(), reloaded.Columns())
	require.Equal(t, tab.Len(), reloaded.Len())
	assert.Equal(t, table.NewString("R"), reloaded.At(0, 2))
	assert.True(t, reloaded.At(2, 2).IsMissing())
}
