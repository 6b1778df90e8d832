// Package reconcile collapses inconsistent duplicate-key attribute values
// in longitudinal tables. Each key group resolves to a single value per
// attribute through a deterministic policy: the unique mode when one
// exists, otherwise an explicit fallback chain (adjacent preceding value,
// adjacent following value, in-group maximum, or last observed value).
// The whole pass is a pure transformation: input tables are never mutated.
package reconcile

import (
	"context"

	"github.com/agentstation/rectify/pkg/differ"
	"github.com/agentstation/rectify/pkg/errors"
	"github.com/agentstation/rectify/pkg/logging"
	"github.com/agentstation/rectify/pkg/table"
)

// Reconciler resolves duplicate-key attribute values in a table.
type Reconciler interface {
	// Attribute reconciles a single attribute, returning a new table in
	// which the attribute is constant within every key group.
	Attribute(ctx context.Context, t *table.Table, rule Rule) (*table.Table, error)

	// Table applies several rules in order, then collapses the output to
	// one row per key when dedupe keys are configured.
	Table(ctx context.Context, t *table.Table, rules ...Rule) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	tracking   bool
	dedupeKeys []string
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{
		tracking:   options.tracking,
		dedupeKeys: options.dedupeKeys,
	}, nil
}

// Attribute reconciles one attribute and discards run metadata.
func (r *reconciler) Attribute(ctx context.Context, t *table.Table, rule Rule) (*table.Table, error) {
	result := NewResult()
	out, err := r.attribute(ctx, t, rule, result)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Table applies all rules in order, collecting the trail, statistics, and
// warnings into a single Result.
func (r *reconciler) Table(ctx context.Context, t *table.Table, rules ...Rule) (*Result, error) {
	logger := logging.FromContext(ctx)

	if t == nil || t.Len() == 0 {
		return nil, errors.ErrEmptyTable
	}
	if len(rules) == 0 {
		return nil, &errors.ValidationError{
			Field:   "rules",
			Message: "at least one rule is required",
		}
	}

	result := NewResult()
	result.Metadata.Stats.RowsIn = t.Len()

	out := t
	for _, rule := range rules {
		reconciled, err := r.attribute(ctx, out, rule, result)
		if err != nil {
			return nil, err
		}
		out = reconciled
		result.Metadata.Attributes = append(result.Metadata.Attributes, rule.Attribute)
	}

	if r.tracking {
		changeset, err := differ.Tables(t, out)
		if err != nil {
			return nil, err
		}
		result.Changeset = changeset
	}

	if len(r.dedupeKeys) > 0 {
		deduped, err := Dedupe(out, r.dedupeKeys...)
		if err != nil {
			return nil, err
		}
		logger.Debug().
			Int("rows_before", out.Len()).
			Int("rows_after", deduped.Len()).
			Msg("Deduplicated key groups")
		out = deduped
	}

	result.Table = out
	result.Finalize()

	logger.Info().
		Int("rows_in", result.Metadata.Stats.RowsIn).
		Int("rows_out", result.Metadata.Stats.RowsOut).
		Int("conflicts", result.Metadata.Stats.ConflictsResolved).
		Int("warnings", len(result.Warnings)).
		Msg("Reconciliation complete")

	return result, nil
}

// attribute runs one rule against t and returns the reconciled copy.
func (r *reconciler) attribute(ctx context.Context, t *table.Table, rule Rule, result *Result) (*table.Table, error) {
	logger := logging.FromContext(ctx)

	if t == nil || t.Len() == 0 {
		return nil, errors.ErrEmptyTable
	}

	rule = rule.withDefaults()
	if err := rule.Validate(t); err != nil {
		return nil, err
	}

	out := t.Clone()

	attrCols, err := out.ColumnIndexes(rule.Attribute)
	if err != nil {
		return nil, err
	}
	attrCol := attrCols[0]

	identityCols, err := out.ColumnIndexes(rule.Identity...)
	if err != nil {
		return nil, err
	}

	keyCols, err := out.ColumnIndexes(rule.KeyColumns()...)
	if err != nil {
		return nil, err
	}

	sortCols := identityCols
	if order := rule.OrderColumn(); order != "" {
		orderCols, err := out.ColumnIndexes(order)
		if err != nil {
			return nil, err
		}
		sortCols = append(append([]int(nil), identityCols...), orderCols[0])
	}

	// Chronological sequence per identity; stable, so ties keep original
	// record order.
	seq := out.SortedIndexes(sortCols)

	for _, identity := range out.GroupBy(identityCols, seq) {
		if err := ctx.Err(); err != nil {
			return nil, errors.ErrCanceled
		}
		if err := r.resolveIdentity(out, rule, identity.Rows, attrCol, keyCols, result); err != nil {
			return nil, err
		}
	}

	logger.Debug().
		Str("attribute", rule.Attribute).
		Str("strategy", rule.Strategy.Type().String()).
		Msg("Reconciled attribute")

	return out, nil
}

// resolveIdentity reconciles every key group within one identity's
// chronological row sequence.
func (r *reconciler) resolveIdentity(out *table.Table, rule Rule, identityRows []int, attrCol int, keyCols []int, result *Result) error {
	groups := []table.Group{{Key: out.Key(identityRows[0], keyCols), Rows: identityRows}}
	if rule.Period != "" {
		groups = out.GroupBy(keyCols, identityRows)
	}

	// Positions of rows inside the identity sequence, for lag and lead.
	position := make(map[int]int, len(identityRows))
	for p, row := range identityRows {
		position[row] = p
	}

	for _, group := range groups {
		resolution, err := r.resolveGroup(out, rule, identityRows, position, group, attrCol)
		if err != nil {
			return errors.NewReconcileError(rule.Attribute, group.Key.String(), err)
		}

		result.Metadata.Stats.GroupsProcessed++
		result.Metadata.Stats.StepCounts[resolution.Step]++
		if conflicted(out, group.Rows, attrCol) {
			result.Metadata.Stats.ConflictsResolved++
		}
		if resolution.Step == StepExhausted {
			result.Warnings = append(result.Warnings, Warning{
				Attribute: rule.Attribute,
				Key:       group.Key,
				Message:   "no valid value after all fallbacks; missing sentinel kept",
			})
		}
		if r.tracking {
			result.Trail.set(rule.Attribute, group.Key, resolution)
		}

		for _, row := range group.Rows {
			out.Set(row, attrCol, resolution.Value)
		}
	}
	return nil
}

// resolveGroup applies the mode step and then the rule's fallback chain.
func (r *reconciler) resolveGroup(out *table.Table, rule Rule, identityRows []int, position map[int]int, group table.Group, attrCol int) (Resolution, error) {
	values := make([]table.Value, len(group.Rows))
	for i, row := range group.Rows {
		values[i] = out.At(row, attrCol)
	}

	if mode, ok := Mode(values); ok {
		return Resolution{Value: mode, Step: StepMode}, nil
	}

	for _, step := range rule.Strategy.Steps() {
		switch step {
		case StepLag:
			// Adjacent value before the group's first row in the
			// identity's chronological sequence.
			if p := position[group.Rows[0]]; p > 0 {
				if v := out.At(identityRows[p-1], attrCol); !v.IsMissing() {
					return Resolution{Value: v, Step: StepLag}, nil
				}
			}
		case StepLead:
			if p := position[group.Rows[len(group.Rows)-1]]; p+1 < len(identityRows) {
				if v := out.At(identityRows[p+1], attrCol); !v.IsMissing() {
					return Resolution{Value: v, Step: StepLead}, nil
				}
			}
		case StepMax:
			v, ok, err := maxValue(values, rule.Encoding)
			if err != nil {
				return Resolution{}, err
			}
			if ok {
				return Resolution{Value: v, Step: StepMax}, nil
			}
		case StepLast:
			// values are already in chronological order; take the last
			// non-missing one.
			for i := len(values) - 1; i >= 0; i-- {
				if !values[i].IsMissing() {
					return Resolution{Value: values[i], Step: StepLast}, nil
				}
			}
		}
	}

	return Resolution{Value: table.Missing, Step: StepExhausted}, nil
}

// maxValue returns the group value with the highest rank under the
// encoding. ok is false when every value is missing. A non-orderable value
// is a configuration error and fails the run.
func maxValue(values []table.Value, encoding *table.Encoding) (table.Value, bool, error) {
	found := false
	var best table.Value
	var bestRank int64
	for _, v := range values {
		if v.IsMissing() {
			continue
		}
		rank, err := encoding.Rank(v)
		if err != nil {
			return table.Missing, false, err
		}
		if !found || rank > bestRank {
			found = true
			best = v
			bestRank = rank
		}
	}
	return best, found, nil
}

// conflicted reports whether a group held more than one distinct value
// before resolution.
func conflicted(out *table.Table, rows []int, attrCol int) bool {
	first := out.At(rows[0], attrCol)
	for _, row := range rows[1:] {
		if !out.At(row, attrCol).Equal(first) {
			return true
		}
	}
	return false
}
