package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/rectify/pkg/errors"
	"github.com/agentstation/rectify/pkg/reconcile"
	"github.com/agentstation/rectify/pkg/sources"
)

const jobFixture = `source:
  type: csv
  path: data/students.csv
output:
  type: yaml
  path: out/students.yaml
dedupe: [sid, year]
rules:
  - attribute: race
    identity: [sid]
    order: year
    strategy: mode-last
  - attribute: frpl
    identity: [sid]
    period: year
    strategy: mode-lag-lead-max
    encoding: [N, R, F]
`

func writeJob(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeJob(t, jobFixture))
	require.NoError(t, err)

	assert.Equal(t, "csv", cfg.Source.Type)
	assert.Equal(t, "data/students.csv", cfg.Source.Path)
	assert.Equal(t, []string{"sid", "year"}, cfg.Dedupe)
	require.Len(t, cfg.Rules, 2)
}

func TestLoadDefaultsSourceType(t *testing.T) {
	cfg, err := Load(writeJob(t, `source:
  path: data/students.csv
rules:
  - attribute: ell
    identity: [sid]
`))
	require.NoError(t, err)
	assert.Equal(t, "csv", cfg.Source.Type)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		job  string
	}{
		{
			name: "missing source path",
			job:  "rules:\n  - attribute: ell\n    identity: [sid]\n",
		},
		{
			name: "no rules",
			job:  "source:\n  path: data.csv\n",
		},
		{
			name: "rule without attribute",
			job:  "source:\n  path: data.csv\nrules:\n  - identity: [sid]\n",
		},
		{
			name: "rule without identity",
			job:  "source:\n  path: data.csv\nrules:\n  - attribute: ell\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeJob(t, tt.job))
			require.Error(t, err)
			var cfgErr *errors.ConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestReconcileRules(t *testing.T) {
	cfg, err := Load(writeJob(t, jobFixture))
	require.NoError(t, err)

	rules, err := cfg.ReconcileRules()
	require.NoError(t, err)
	require.Len(t, rules, 2)

	race := rules[0]
	assert.Equal(t, "race", race.Attribute)
	assert.Equal(t, "year", race.Order)
	assert.Equal(t, reconcile.StrategyTypeRecord, race.Strategy.Type())
	assert.Nil(t, race.Encoding)

	frpl := rules[1]
	assert.Equal(t, "year", frpl.Period)
	assert.Equal(t, reconcile.StrategyTypeKeyGroup, frpl.Strategy.Type())
	require.NotNil(t, frpl.Encoding)
	assert.Equal(t, []string{"N", "R", "F"}, frpl.Encoding.Values())
}

func TestReconcileRulesUnknownStrategy(t *testing.T) {
	cfg, err := Load(writeJob(t, `source:
  path: data.csv
rules:
  - attribute: ell
    identity: [sid]
    strategy: mode-median
`))
	require.NoError(t, err)

	_, err = cfg.ReconcileRules()
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestNewSourceAndWriter(t *testing.T) {
	cfg, err := Load(writeJob(t, jobFixture))
	require.NoError(t, err)

	source, err := cfg.NewSource()
	require.NoError(t, err)
	assert.Equal(t, sources.TypeCSV, source.Type())

	writer, err := cfg.NewWriter()
	require.NoError(t, err)
	require.NotNil(t, writer)
	assert.Equal(t, sources.TypeYAML, writer.Type())
}

func TestNewWriterOptional(t *testing.T) {
	cfg, err := Load(writeJob(t, `source:
  path: data.csv
rules:
  - attribute: ell
    identity: [sid]
`))
	require.NoError(t, err)

	writer, err := cfg.NewWriter()
	require.NoError(t, err)
	assert.Nil(t, writer)
}
