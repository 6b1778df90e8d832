// Package rectify reconciles duplicate-key records in longitudinal
// tabular datasets. It loads a table from a configured source, resolves
// inconsistent attribute values per key group through deterministic
// fallback policies, deduplicates to one row per key, and optionally
// writes the cleaned table back out.
package rectify

import (
	"context"

	"github.com/agentstation/rectify/pkg/errors"
	"github.com/agentstation/rectify/pkg/logging"
	"github.com/agentstation/rectify/pkg/reconcile"
	"github.com/agentstation/rectify/pkg/sources"
)

// Pipeline runs a complete reconciliation job: load, reconcile, dedupe,
// save.
type Pipeline interface {
	// Run executes the job and returns the reconciliation result
	Run(ctx context.Context) (*reconcile.Result, error)
}

// pipeline is the internal implementation of the Pipeline interface.
type pipeline struct {
	source     sources.Source
	writer     sources.Writer
	rules      []reconcile.Rule
	dedupeKeys []string
	tracking   bool
}

// New creates a new Pipeline with the given options. A source and at
// least one rule are required.
func New(opts ...Option) (Pipeline, error) {
	p := &pipeline{tracking: true}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	if p.source == nil {
		return nil, &errors.ValidationError{Field: "source", Message: "a dataset source is required"}
	}
	if len(p.rules) == 0 {
		return nil, &errors.ValidationError{Field: "rules", Message: "at least one rule is required"}
	}
	return p, nil
}

// Run executes load, reconcile, dedupe, and save in sequence.
func (p *pipeline) Run(ctx context.Context) (*reconcile.Result, error) {
	logger := logging.FromContext(ctx)

	t, err := p.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("source", p.source.Type().String()).
		Int("rows", t.Len()).
		Msg("Loaded dataset")

	reconcilerOpts := []reconcile.Option{reconcile.WithTracking(p.tracking)}
	if len(p.dedupeKeys) > 0 {
		reconcilerOpts = append(reconcilerOpts, reconcile.WithDedupeKeys(p.dedupeKeys...))
	}
	reconciler, err := reconcile.New(reconcilerOpts...)
	if err != nil {
		return nil, err
	}

	result, err := reconciler.Table(ctx, t, p.rules...)
	if err != nil {
		return nil, err
	}

	if p.writer != nil {
		if err := p.writer.Save(result.Table); err != nil {
			return nil, err
		}
		logger.Info().
			Str("output", p.writer.Type().String()).
			Int("rows", result.Table.Len()).
			Msg("Saved cleaned dataset")
	}

	return result, nil
}
