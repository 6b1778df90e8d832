package reconcile

import (
	"github.com/agentstation/rectify/pkg/table"
)

// Dedupe collapses each key group to its first row in original order,
// producing the one-row-per-key output table. Meant to run after
// reconciliation, when any representative row is equivalent; the first is
// chosen so the pick is deterministic.
func Dedupe(t *table.Table, keyColumns ...string) (*table.Table, error) {
	keyCols, err := t.ColumnIndexes(keyColumns...)
	if err != nil {
		return nil, err
	}

	out := table.New(t.Columns()...)
	seen := make(map[table.Key]struct{}, t.Len())
	for i := 0; i < t.Len(); i++ {
		key := t.Key(i, keyCols)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		if err := out.Append(t.Row(i)...); err != nil {
			return nil, err
		}
	}
	return out, nil
}
