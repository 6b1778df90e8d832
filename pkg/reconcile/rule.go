package reconcile

import (
	"github.com/agentstation/rectify/pkg/errors"
	"github.com/agentstation/rectify/pkg/table"
)

// Rule configures one reconciliation pass over a single attribute.
type Rule struct {
	// Attribute is the column to reconcile.
	Attribute string

	// Identity columns define the record's owner (e.g. student id). Rows
	// sharing identity values form the partition lag and lead look within.
	Identity []string

	// Period is the optional secondary key column (e.g. year). When set,
	// the key group is identity+period; when empty, identity alone.
	Period string

	// Order is the column establishing chronological order within an
	// identity. Defaults to Period when empty.
	Order string

	// Strategy is the fallback chain for ambiguous modes. Defaults to
	// KeyGroupStrategy when Period is set, RecordStrategy otherwise.
	Strategy Strategy

	// Encoding maps categorical values to ordered codes for the extremum
	// fallback. Integer attributes need none.
	Encoding *table.Encoding
}

// KeyColumns returns the columns whose combined value defines a key group.
func (r Rule) KeyColumns() []string {
	cols := append([]string(nil), r.Identity...)
	if r.Period != "" {
		cols = append(cols, r.Period)
	}
	return cols
}

// OrderColumn returns the effective ordering column.
func (r Rule) OrderColumn() string {
	if r.Order != "" {
		return r.Order
	}
	return r.Period
}

// withDefaults fills in the default strategy.
func (r Rule) withDefaults() Rule {
	if r.Strategy == nil {
		if r.Period != "" {
			r.Strategy = KeyGroupStrategy()
		} else {
			r.Strategy = RecordStrategy()
		}
	}
	return r
}

// Validate fails fast on misconfiguration against a concrete table.
func (r Rule) Validate(t *table.Table) error {
	if r.Attribute == "" {
		return &errors.ValidationError{Field: "attribute", Message: "cannot be empty"}
	}
	if len(r.Identity) == 0 {
		return &errors.ValidationError{Field: "identity", Message: "at least one identity column is required"}
	}

	cols := append([]string{r.Attribute}, r.Identity...)
	if r.Period != "" {
		cols = append(cols, r.Period)
	}
	if r.Order != "" {
		cols = append(cols, r.Order)
	}
	if _, err := t.ColumnIndexes(cols...); err != nil {
		return err
	}

	for _, step := range r.Strategy.Steps() {
		switch step {
		case StepLag, StepLead:
			if r.Period == "" {
				return &errors.ConfigError{
					Component: "rule",
					Message:   string(step) + " fallback requires a period column",
				}
			}
		case StepLast:
			if r.OrderColumn() == "" {
				return &errors.ConfigError{
					Component: "rule",
					Message:   "last fallback requires an ordering column",
				}
			}
		}
	}
	return nil
}
