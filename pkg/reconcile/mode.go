package reconcile

import (
	"github.com/agentstation/rectify/pkg/table"
)

// Mode returns the most frequent non-missing value among values.
// ok is false when no value qualifies (empty input or all missing) or when
// more than one value ties for the maximum frequency. A tie is reported as
// "no mode" rather than broken arbitrarily; the ambiguity signal is the
// second return, never an in-band data value.
func Mode(values []table.Value) (table.Value, bool) {
	counts := make(map[table.Value]int, len(values))
	var order []table.Value
	for _, v := range values {
		if v.IsMissing() {
			continue
		}
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	best := 0
	tied := false
	var mode table.Value
	for _, v := range order {
		switch c := counts[v]; {
		case c > best:
			best = c
			mode = v
			tied = false
		case c == best:
			tied = true
		}
	}
	if best == 0 || tied {
		return table.Missing, false
	}
	return mode, true
}
