package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf).Level(zerolog.InfoLevel)

	logger.Info().Str("attribute", "frpl").Msg("reconciling")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "reconciling", entry["message"])
	assert.Equal(t, "frpl", entry["attribute"])
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)

	ctx := WithLogger(context.Background(), &logger)
	assert.Equal(t, &logger, FromContext(ctx))
	assert.Equal(t, &logger, Ctx(ctx))
}

func TestFromContextFallsBack(t *testing.T) {
	assert.Equal(t, Default(), FromContext(context.Background()))
	assert.Equal(t, Default(), FromContext(nil)) //nolint:staticcheck // nil context fallback is the point
}

func TestWithAttribute(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf).Level(zerolog.InfoLevel)

	ctx := WithLogger(context.Background(), &logger)
	ctx = WithAttribute(ctx, "ell")
	Ctx(ctx).Info().Msg("resolved")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ell", entry["attribute"])
}

func TestConfigLevels(t *testing.T) {
	logger := NewLoggerFromConfig(&Config{Level: "warn", Format: "json", Output: "discard"})
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())

	// Unknown levels fall back to info.
	logger = NewLoggerFromConfig(&Config{Level: "chatty", Format: "json", Output: "discard"})
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}
