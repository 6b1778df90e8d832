package sources

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/rectify/pkg/errors"
	"github.com/agentstation/rectify/pkg/table"
)

func newTestDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "students.db")

	db, err := sql.Open(sqliteDriver, path)
	require.NoError(t, err)
	defer func() { require.NoError(t, db.Close()) }()

	_, err = db.Exec(`
		CREATE TABLE enrollment (
			sid INTEGER NOT NULL,
			year INTEGER NOT NULL,
			ell TEXT
		);
		INSERT INTO enrollment (sid, year, ell) VALUES
			(1, 2015, 'N'),
			(1, 2015, 'Y'),
			(2, 2014, NULL);
	`)
	require.NoError(t, err)
	return path
}

func TestSQLiteSourceLoad(t *testing.T) {
	path := newTestDB(t)

	source := NewSQLite(path, "SELECT sid, year, ell FROM enrollment ORDER BY sid, year")
	assert.Equal(t, TypeSQLite, source.Type())

	tab, err := source.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"sid", "year", "ell"}, tab.Columns())
	require.Equal(t, 3, tab.Len())
	assert.Equal(t, table.NewInt(1), tab.At(0, 0))
	assert.Equal(t, table.NewString("N"), tab.At(0, 2))
	assert.True(t, tab.At(2, 2).IsMissing())
}

func TestSQLiteSourceRequiresQuery(t *testing.T) {
	source := NewSQLite(newTestDB(t), "")
	_, err := source.Load(context.Background())
	require.Error(t, err)
	var cfgErr *errors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestSQLiteSourceBadQuery(t *testing.T) {
	source := NewSQLite(newTestDB(t), "SELECT nope FROM missing")
	_, err := source.Load(context.Background())
	require.Error(t, err)
	var queryErr *errors.QueryError
	assert.ErrorAs(t, err, &queryErr)
}
