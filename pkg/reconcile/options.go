package reconcile

import (
	"github.com/agentstation/rectify/pkg/errors"
)

// Options configures a reconciler.
type options struct {
	tracking   bool
	dedupeKeys []string
}

func defaultOptions() *options {
	return &options{
		tracking: true,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithTracking enables or disables the per-group resolution trail.
func WithTracking(enabled bool) Option {
	return func(o *options) error {
		o.tracking = enabled
		return nil
	}
}

// WithDedupeKeys sets the key columns Table collapses the output on.
// Without it, Table leaves duplicate-key rows in place.
func WithDedupeKeys(columns ...string) Option {
	return func(o *options) error {
		if len(columns) == 0 {
			return &errors.ValidationError{
				Field:   "dedupeKeys",
				Message: "at least one key column is required",
			}
		}
		o.dedupeKeys = columns
		return nil
	}
}
