package reconcile

import (
	"github.com/agentstation/rectify/pkg/errors"
)

// StrategyType represents the type of reconciliation strategy.
type StrategyType string

// String returns the string representation of a strategy type.
func (s StrategyType) String() string {
	return string(s)
}

const (
	// StrategyTypeKeyGroup reconciles attributes constant within one period
	// of an identity but free to change across periods.
	StrategyTypeKeyGroup StrategyType = "mode-lag-lead-max"
	// StrategyTypeRecord reconciles attributes constant for an identity's
	// entire lifetime.
	StrategyTypeRecord StrategyType = "mode-last"
)

// Step is one fallback applied when the mode is ambiguous. The mode itself
// always runs first and is not part of the chain.
type Step string

const (
	// StepMode marks a group resolved by a unique mode.
	StepMode Step = "mode"
	// StepLag takes the value adjacent before the group in the identity's
	// period ordering.
	StepLag Step = "lag"
	// StepLead takes the value adjacent after the group.
	StepLead Step = "lead"
	// StepMax takes the in-group maximum under the attribute's encoding.
	StepMax Step = "max"
	// StepLast takes the chronologically last observed value in the group.
	StepLast Step = "last"
	// StepExhausted marks a group for which every fallback came up empty;
	// the result is the missing sentinel.
	StepExhausted Step = "exhausted"
)

// Strategy defines the fallback chain applied when a group has no unique
// mode. The chain order is explicit data, a stated business rule rather
// than a logical necessity.
type Strategy interface {
	// Type returns the strategy type
	Type() StrategyType

	// Description returns a human-readable description
	Description() string

	// Steps returns the fallback chain in application order
	Steps() []Step
}

// chainStrategy is the default Strategy implementation.
type chainStrategy struct {
	typ         StrategyType
	description string
	steps       []Step
}

func (s *chainStrategy) Type() StrategyType  { return s.typ }
func (s *chainStrategy) Description() string { return s.description }
func (s *chainStrategy) Steps() []Step {
	return append([]Step(nil), s.steps...)
}

// NewStrategy creates a strategy from an explicit fallback chain.
func NewStrategy(typ StrategyType, description string, steps ...Step) (Strategy, error) {
	for _, step := range steps {
		switch step {
		case StepLag, StepLead, StepMax, StepLast:
		default:
			return nil, &errors.ValidationError{
				Field:   "steps",
				Value:   string(step),
				Message: "unknown fallback step",
			}
		}
	}
	return &chainStrategy{typ: typ, description: description, steps: steps}, nil
}

// KeyGroupStrategy returns the full mode, lag, lead, max chain for
// identity+period key groups.
func KeyGroupStrategy() Strategy {
	return &chainStrategy{
		typ:         StrategyTypeKeyGroup,
		description: "Resolves ambiguous modes via adjacent preceding value, then adjacent following value, then in-group maximum",
		steps:       []Step{StepLag, StepLead, StepMax},
	}
}

// RecordStrategy returns the simplified chain for identity-level
// attributes: an ambiguous mode takes the last observed value.
func RecordStrategy() Strategy {
	return &chainStrategy{
		typ:         StrategyTypeRecord,
		description: "Resolves ambiguous modes via the chronologically last observed value",
		steps:       []Step{StepLast},
	}
}

// ParseStrategy resolves a strategy name from configuration.
func ParseStrategy(name string) (Strategy, error) {
	switch StrategyType(name) {
	case StrategyTypeKeyGroup:
		return KeyGroupStrategy(), nil
	case StrategyTypeRecord:
		return RecordStrategy(), nil
	default:
		return nil, &errors.ValidationError{
			Field:   "strategy",
			Value:   name,
			Message: "unknown strategy",
		}
	}
}
