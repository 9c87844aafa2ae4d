// Package yay provides the value model and parser entry point for YAY
// ("Yet Another YAML"), an indentation-sensitive, strictly-validated data
// serialization format.
//
// The package exposes a closed type system — null, boolean, arbitrary
// precision integer, IEEE-754 binary64, UTF-8 string, byte sequence, ordered
// array, and keyed map — as the single exported Value type, and a single
// parsing entry point, Parse, that turns a UTF-8 source document into either
// a Value tree or an *Error naming a line, column, and cause.
package yay

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant of the closed YAY type system a Value holds.
type Kind int

// The eight variants of the YAY value model (spec §3).
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindArray
	KindMap
)

// String returns the variant's name, used in diagnostics and tests.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Pair is one (key, Value) entry of a Map. Map preserves the insertion order
// of pairs for display purposes only — equality and the contract are defined
// over the set of pairs, not their order (spec §3, §4.3.10).
type Pair struct {
	Key   string
	Value Value
}

// Value is the tagged sum at the root of every YAY document. The zero Value
// is KindNull.
//
// A Value owns its children exclusively: Array and Map payloads are not
// shared with any other tree. There is no manual release step in Go — the
// garbage collector reclaims a tree once its last reference drops — but
// Release is provided for parity with the spec's two-surface contract (§6)
// and with non-Go bindings of the same core.
type Value struct {
	kind Kind

	b bool

	intNeg    bool
	intDigits string

	f float64

	s string

	bytesVal []byte

	arr []Value

	mapPairs []Pair
}

// Null returns the singleton null value.
func Null() Value { return Value{kind: KindNull} }

// NewBool constructs a Bool value.
func NewBool(b bool) Value { return Value{kind: KindBool, b: b} }

// NewInt constructs an Integer value from a sign flag and a decimal digit
// string. The caller must supply a non-empty string of ASCII digits '0'-'9';
// NewInt does not canonicalize negative zero, per spec §3's invariant.
func NewInt(negative bool, digits string) Value {
	return Value{kind: KindInt, intNeg: negative, intDigits: digits}
}

// NewFloat constructs a Float value. NaN, +Inf, -Inf, +0.0 and -0.0 are all
// representable and distinguishable (spec §3, §9).
func NewFloat(f float64) Value { return Value{kind: KindFloat, f: f} }

// NewString constructs a String value from well-formed UTF-8 text.
func NewString(s string) Value { return Value{kind: KindString, s: s} }

// NewBytes constructs a Bytes value. The slice is not copied; callers must
// not mutate it after handing it to NewBytes.
func NewBytes(b []byte) Value { return Value{kind: KindBytes, bytesVal: b} }

// NewArray constructs an Array value from an ordered slice of elements. The
// slice is not copied; callers must not mutate it afterward.
func NewArray(items []Value) Value { return Value{kind: KindArray, arr: items} }

// NewMap constructs a Map value from an ordered slice of pairs. Duplicate
// keys collapse to the last occurrence's value, silently, per spec §9 — the
// earlier pair's position in iteration order is kept, but its value is
// replaced.
func NewMap(pairs []Pair) Value {
	index := make(map[string]int, len(pairs))
	out := make([]Pair, 0, len(pairs))
	for _, p := range pairs {
		if i, ok := index[p.Key]; ok {
			out[i] = p
			continue
		}
		index[p.Key] = len(out)
		out = append(out, p)
	}
	return Value{kind: KindMap, mapPairs: out}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the payload of a Bool value. The result is unspecified for
// any other Kind.
func (v Value) Bool() bool { return v.b }

// IntParts returns the sign and decimal digit string of an Integer value.
// negative is the sign flag as constructed; it can be true for a zero digit
// string, since negative zero is not canonicalized.
func (v Value) IntParts() (negative bool, digits string) { return v.intNeg, v.intDigits }

// Float returns the payload of a Float value.
func (v Value) Float() float64 { return v.f }

// Str returns the payload of a String value.
func (v Value) Str() string { return v.s }

// BytesVal returns the payload of a Bytes value. The caller must not mutate
// the returned slice.
func (v Value) BytesVal() []byte { return v.bytesVal }

// Elements returns the ordered elements of an Array value. The caller must
// not mutate the returned slice.
func (v Value) Elements() []Value { return v.arr }

// Pairs returns the (key, value) pairs of a Map value in storage order. The
// caller must not mutate the returned slice. Storage order is display-only:
// it is not part of the equality contract (spec §3).
func (v Value) Pairs() []Pair { return v.mapPairs }

// Get looks up key in a Map value, returning its value and true if present.
func (v Value) Get(key string) (Value, bool) {
	for _, p := range v.mapPairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return Value{}, false
}

// Len returns the number of elements of an Array, or the number of pairs of
// a Map. It is 0 for every other Kind.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindMap:
		return len(v.mapPairs)
	default:
		return 0
	}
}

// Release exists for API parity with non-Go bindings of the same parsing
// core (spec §6: "a second surface frees any produced values and errors").
// Go's garbage collector already reclaims a Value tree once it is
// unreferenced, so Release is a no-op.
func (v Value) Release() {}

// Equal reports whether a and b represent the same YAY value, per spec
// §4.3.10: Float uses NaN-equal-NaN semantics (for test determinism) while
// still distinguishing +0.0 from -0.0; Map equality ignores pair order and
// compares the set of (key, value) pairs.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindInt:
		return a.intNeg == b.intNeg && a.intDigits == b.intDigits
	case KindFloat:
		return floatEqual(a.f, b.f)
	case KindString:
		return a.s == b.s
	case KindBytes:
		return string(a.bytesVal) == string(b.bytesVal)
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(a.mapPairs) != len(b.mapPairs) {
			return false
		}
		for _, pa := range a.mapPairs {
			bv, ok := b.Get(pa.Key)
			if !ok || !Equal(pa.Value, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func floatEqual(x, y float64) bool {
	if math.IsNaN(x) && math.IsNaN(y) {
		return true
	}
	return x == y && math.Signbit(x) == math.Signbit(y)
}

// String renders v as a compact, non-round-tripping debug representation
// for diagnostics. It is not YAY syntax and is not a serializer (spec §1
// excludes serialization from scope); use Dump for a slightly more verbose
// variant intended for human inspection.
func (v Value) String() string {
	var sb strings.Builder
	writeValue(&sb, v)
	return sb.String()
}

func writeValue(sb *strings.Builder, v Value) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		if v.b {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case KindInt:
		if v.intNeg && v.intDigits != "0" {
			sb.WriteByte('-')
		}
		sb.WriteString(v.intDigits)
	case KindFloat:
		sb.WriteString(formatFloat(v.f))
	case KindString:
		sb.WriteByte('"')
		sb.WriteString(v.s)
		sb.WriteByte('"')
	case KindBytes:
		sb.WriteByte('<')
		const hexDigits = "0123456789abcdef"
		for _, bb := range v.bytesVal {
			sb.WriteByte(hexDigits[bb>>4])
			sb.WriteByte(hexDigits[bb&0x0f])
		}
		sb.WriteByte('>')
	case KindArray:
		sb.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeValue(sb, e)
		}
		sb.WriteByte(']')
	case KindMap:
		sb.WriteByte('{')
		for i, p := range v.mapPairs {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.Key)
			sb.WriteString(": ")
			writeValue(sb, p.Value)
		}
		sb.WriteByte('}')
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "infinity"
	case math.IsInf(f, -1):
		return "-infinity"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}
