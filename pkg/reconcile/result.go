package reconcile

import (
	"fmt"
	"time"

	"github.com/agentstation/rectify/pkg/differ"
	"github.com/agentstation/rectify/pkg/table"
)

// Resolution records how one key group's attribute was resolved.
type Resolution struct {
	Value table.Value
	Step  Step
}

// Trail maps attribute name to per-group resolutions. Populated only when
// tracking is enabled.
type Trail map[string]map[table.Key]Resolution

// set records a resolution for an attribute's key group.
func (tr Trail) set(attribute string, key table.Key, res Resolution) {
	groups, ok := tr[attribute]
	if !ok {
		groups = make(map[table.Key]Resolution)
		tr[attribute] = groups
	}
	groups[key] = res
}

// Warning flags a data-quality condition that did not stop the batch:
// a group whose fallback chain was exhausted, leaving the missing sentinel.
type Warning struct {
	Attribute string
	Key       table.Key
	Message   string
}

// Statistics summarizes a reconciliation run.
type Statistics struct {
	RowsIn            int
	RowsOut           int
	GroupsProcessed   int
	ConflictsResolved int
	StepCounts        map[Step]int
}

// Metadata contains metadata about the reconciliation process.
type Metadata struct {
	// StartTime when reconciliation started
	StartTime time.Time

	// EndTime when reconciliation completed
	EndTime time.Time

	// Duration of the reconciliation
	Duration time.Duration

	// Attributes reconciled, in rule order
	Attributes []string

	// Stats about the reconciliation
	Stats Statistics
}

// Result represents the outcome of a reconciliation operation.
type Result struct {
	// Table is the reconciled (and, when configured, deduplicated) output.
	Table *table.Table

	// Trail is the per-group resolution audit.
	Trail Trail

	// Changeset lists the cells rewritten by reconciliation, computed
	// before deduplication. Populated only when tracking is enabled.
	Changeset *differ.Changeset

	// Warnings for groups that exhausted every fallback.
	Warnings []Warning

	// Metadata about the run.
	Metadata Metadata
}

// NewResult creates a new result with defaults.
func NewResult() *Result {
	return &Result{
		Trail: make(Trail),
		Metadata: Metadata{
			StartTime: time.Now(),
			Stats:     Statistics{StepCounts: make(map[Step]int)},
		},
	}
}

// HasWarnings reports whether any group produced a missing-sentinel outcome.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	stats := r.Metadata.Stats
	if r.HasWarnings() {
		return fmt.Sprintf("Reconciled %d attributes over %d groups (%d conflicts resolved, %d warnings)",
			len(r.Metadata.Attributes), stats.GroupsProcessed, stats.ConflictsResolved, len(r.Warnings))
	}
	return fmt.Sprintf("Reconciled %d attributes over %d groups (%d conflicts resolved)",
		len(r.Metadata.Attributes), stats.GroupsProcessed, stats.ConflictsResolved)
}

// Finalize calculates duration and marks completion.
func (r *Result) Finalize() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
	if r.Table != nil {
		r.Metadata.Stats.RowsOut = r.Table.Len()
	}
}
