package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnNotFoundError(t *testing.T) {
	err := NewColumnNotFoundError("grade", []string{"sid", "year"})
	assert.Equal(t, "column grade not found (available: sid, year)", err.Error())
	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidationError(err))
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("rules", nil, "cannot be empty")
	assert.Contains(t, err.Error(), "rules")
	assert.True(t, IsValidationError(err))
}

func TestConfigErrorUnwrap(t *testing.T) {
	inner := New("boom")
	err := NewConfigError("encoding", "bad mapping", inner)
	assert.Contains(t, err.Error(), "encoding")
	assert.ErrorIs(t, err, inner)
}

func TestReconcileErrorUnwrap(t *testing.T) {
	cfg := NewConfigError("encoding", "value Q not present", nil)
	err := NewReconcileError("frpl", "2/2015", cfg)
	assert.Contains(t, err.Error(), "frpl")
	assert.Contains(t, err.Error(), "2/2015")

	var target *ConfigError
	require.True(t, errors.As(err, &target))
}

func TestWrapHelpersNilPassthrough(t *testing.T) {
	assert.NoError(t, WrapIO("read", "file.csv", nil))
	assert.NoError(t, WrapParse("csv", "file.csv", nil))
	assert.NoError(t, WrapQuery("sqlite", "SELECT 1", nil))
	assert.NoError(t, WrapValidation("field", nil))
}

func TestWrapQuery(t *testing.T) {
	inner := New("no such table")
	err := WrapQuery("sqlite", "SELECT * FROM missing", inner)

	var queryErr *QueryError
	require.True(t, errors.As(err, &queryErr))
	assert.Equal(t, "sqlite", queryErr.Driver)
	assert.ErrorIs(t, err, inner)
}

func TestSentinelChecks(t *testing.T) {
	assert.True(t, IsNotOrderable(ErrNotOrderable))
	assert.True(t, IsCanceled(ErrCanceled))
	assert.False(t, IsNotFound(ErrInvalidInput))
}
