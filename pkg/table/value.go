package table

import (
	"fmt"
	"strings"
)

// Kind identifies the type of a cell value.
type Kind int

const (
	// KindMissing marks an absent value. Distinct from a domain "unknown"
	// code, which is an ordinary string or integer value.
	KindMissing Kind = iota
	// KindInt is an integer value or ordered categorical code.
	KindInt
	// KindString is a categorical or free-form string value.
	KindString
)

// Value is a single table cell. The zero value is missing.
type Value struct {
	kind Kind
	str  string
	num  int64
}

// Missing is the absent-value sentinel.
var Missing = Value{}

// NewString returns a string value.
func NewString(s string) Value {
	return Value{kind: KindString, str: s}
}

// NewInt returns an integer value.
func NewInt(n int64) Value {
	return Value{kind: KindInt, num: n}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind {
	return v.kind
}

// IsMissing reports whether the value is absent.
func (v Value) IsMissing() bool {
	return v.kind == KindMissing
}

// AsString returns the string content and whether the value is a string.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsInt returns the integer content and whether the value is an integer.
func (v Value) AsInt() (int64, bool) {
	return v.num, v.kind == KindInt
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	return v == o
}

// Compare orders values: missing first, then integers by magnitude, then
// strings lexicographically. Used for stable sorts on ordering columns.
func (v Value) Compare(o Value) int {
	if v.kind != o.kind {
		return int(v.kind) - int(o.kind)
	}
	switch v.kind {
	case KindInt:
		switch {
		case v.num < o.num:
			return -1
		case v.num > o.num:
			return 1
		}
		return 0
	case KindString:
		return strings.Compare(v.str, o.str)
	default:
		return 0
	}
}

// String implements fmt.Stringer for display and key building.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return fmt.Sprintf("%d", v.num)
	case KindString:
		return v.str
	default:
		return ""
	}
}
