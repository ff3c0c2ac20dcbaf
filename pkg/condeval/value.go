package condeval

import "strconv"

// Kind identifies which of the two runtime value kinds a Value holds.
type Kind int

const (
	// KindNumber is an IEEE-754 double.
	KindNumber Kind = iota
	// KindBoolean is a boolean.
	KindBoolean
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	if k == KindBoolean {
		return "boolean"
	}
	return "number"
}

// Value is a runtime value: a number or a boolean. These are the only two
// kinds the language has; there are no strings, no null, no objects.
// Construct values with Number or Boolean.
type Value struct {
	kind Kind
	num  float64
	b    bool
}

// Number returns a numeric Value.
func Number(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

// Boolean returns a boolean Value.
func Boolean(b bool) Value {
	return Value{kind: KindBoolean, b: b}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind {
	return v.kind
}

// Float returns the numeric value. It is only meaningful for KindNumber;
// use AsNumber to coerce.
func (v Value) Float() float64 {
	return v.num
}

// Bool returns the boolean value. It is only meaningful for KindBoolean;
// use Truthy to coerce.
func (v Value) Bool() bool {
	return v.b
}

// AsNumber coerces the value to a number: booleans become 1 or 0.
func (v Value) AsNumber() float64 {
	if v.kind == KindBoolean {
		if v.b {
			return 1
		}
		return 0
	}
	return v.num
}

// Truthy coerces the value to a boolean: numbers are true when non-zero.
// NaN compares unequal to zero and is therefore truthy, matching IEEE
// comparison semantics.
func (v Value) Truthy() bool {
	if v.kind == KindBoolean {
		return v.b
	}
	return v.num != 0
}

// StrictEquals compares two values without coercion. Values of different
// kinds are never strictly equal.
func (v Value) StrictEquals(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	if v.kind == KindBoolean {
		return v.b == o.b
	}
	return v.num == o.num
}

// String formats the value for logs and diagnostics.
func (v Value) String() string {
	if v.kind == KindBoolean {
		return strconv.FormatBool(v.b)
	}
	return strconv.FormatFloat(v.num, 'g', -1, 64)
}
