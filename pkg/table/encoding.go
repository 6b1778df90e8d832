package table

import (
	"github.com/agentstation/rectify/pkg/errors"
)

// Encoding maps categorical string values to ordered integer codes so the
// extremum fallback can compare them. Order of declaration is rank order:
// later values rank higher. Building the encoding is the caller's job,
// done before reconciliation.
type Encoding struct {
	codes  map[string]int64
	values []string
}

// NewEncoding creates an encoding from values in ascending rank order.
func NewEncoding(ordered ...string) *Encoding {
	codes := make(map[string]int64, len(ordered))
	for i, v := range ordered {
		codes[v] = int64(i)
	}
	return &Encoding{codes: codes, values: append([]string(nil), ordered...)}
}

// Len returns the number of encoded values.
func (e *Encoding) Len() int {
	return len(e.values)
}

// Values returns the encoded values in rank order.
func (e *Encoding) Values() []string {
	return append([]string(nil), e.values...)
}

// Rank returns an orderable code for v. Integer values pass through as
// their own rank. String values require a mapping; an unmapped string is
// a configuration error, as is a missing value. Safe on a nil encoding,
// where only integer values are orderable.
func (e *Encoding) Rank(v Value) (int64, error) {
	if n, ok := v.AsInt(); ok {
		return n, nil
	}
	s, ok := v.AsString()
	if !ok {
		return 0, errors.ErrNotOrderable
	}
	if e == nil {
		return 0, &errors.ConfigError{
			Component: "encoding",
			Message:   "string attribute has no encoding; extremum fallback needs ordered codes",
		}
	}
	code, ok := e.codes[s]
	if !ok {
		return 0, &errors.ConfigError{
			Component: "encoding",
			Message:   "value " + s + " not present in encoding",
		}
	}
	return code, nil
}
