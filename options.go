package rectify

import (
	"github.com/agentstation/rectify/pkg/errors"
	"github.com/agentstation/rectify/pkg/reconcile"
	"github.com/agentstation/rectify/pkg/sources"
)

// Option is a function that configures a Pipeline.
type Option func(*pipeline) error

// WithSource sets the dataset source the pipeline loads from.
func WithSource(source sources.Source) Option {
	return func(p *pipeline) error {
		if source == nil {
			return &errors.ValidationError{Field: "source", Message: "cannot be nil"}
		}
		p.source = source
		return nil
	}
}

// WithWriter sets the writer the cleaned table is saved to. Without one,
// the result is returned in memory only.
func WithWriter(writer sources.Writer) Option {
	return func(p *pipeline) error {
		p.writer = writer
		return nil
	}
}

// WithRules sets the reconciliation rules, applied in order.
func WithRules(rules ...reconcile.Rule) Option {
	return func(p *pipeline) error {
		if len(rules) == 0 {
			return &errors.ValidationError{Field: "rules", Message: "cannot be empty"}
		}
		p.rules = rules
		return nil
	}
}

// WithDedupeKeys sets the key columns the output is collapsed on.
func WithDedupeKeys(columns ...string) Option {
	return func(p *pipeline) error {
		p.dedupeKeys = columns
		return nil
	}
}

// WithTracking enables or disables the resolution trail and changeset.
func WithTracking(enabled bool) Option {
	return func(p *pipeline) error {
		p.tracking = enabled
		return nil
	}
}
