package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/rectify/pkg/errors"
)

func TestBuiltinStrategies(t *testing.T) {
	keyGroup := KeyGroupStrategy()
	assert.Equal(t, StrategyTypeKeyGroup, keyGroup.Type())
	assert.Equal(t, []Step{StepLag, StepLead, StepMax}, keyGroup.Steps())

	record := RecordStrategy()
	assert.Equal(t, StrategyTypeRecord, record.Type())
	assert.Equal(t, []Step{StepLast}, record.Steps())
}

func TestNewStrategyRejectsUnknownSteps(t *testing.T) {
	_, err := NewStrategy("custom", "test", StepLag, Step("median"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestNewStrategyCustomChain(t *testing.T) {
	// The fallback order is a business rule, so callers may reorder it.
	s, err := NewStrategy("lead-first", "lead before lag", StepLead, StepLag, StepMax)
	require.NoError(t, err)
	assert.Equal(t, []Step{StepLead, StepLag, StepMax}, s.Steps())
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		name    string
		want    StrategyType
		wantErr bool
	}{
		{name: "mode-lag-lead-max", want: StrategyTypeKeyGroup},
		{name: "mode-last", want: StrategyTypeRecord},
		{name: "mode-median", wantErr: true},
		{name: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseStrategy(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, errors.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Type())
		})
	}
}

func TestStrategyStepsCopy(t *testing.T) {
	s := KeyGroupStrategy()
	steps := s.Steps()
	steps[0] = StepMax
	assert.Equal(t, []Step{StepLag, StepLead, StepMax}, s.Steps())
}
