// Package jsonvalue defines the tagged-union value model produced by the
// repair parser: objects, arrays, strings, integers, floats, booleans and
// null, with objects preserving insertion order.
package jsonvalue

import "fmt"

// Kind discriminates the variant held by a Value.
type Kind int8

const (
	KindNull Kind = iota
	KindBool
	KindInteger
	KindFloat
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a sum over the seven JSON-repair variants. Exactly one of the
// typed accessors is meaningful for a given Kind; the zero Value is the
// null value.
type Value struct {
	kind    Kind
	boolean bool
	integer int64
	float   float64
	str     string
	array   []Value
	object  *Object
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// Integer wraps a signed 64-bit integer value.
func Integer(i int64) Value { return Value{kind: KindInteger, integer: i} }

// Float wraps an IEEE-754 double value.
func Float(f float64) Value { return Value{kind: KindFloat, float: f} }

// String wraps a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Array wraps a sequence of values. The slice is held by reference.
func Array(items []Value) Value { return Value{kind: KindArray, array: items} }

// ObjectValue wraps an ordered object.
func ObjectValue(o *Object) Value { return Value{kind: KindObject, object: o} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload; only meaningful when Kind() == KindBool.
func (v Value) Bool() bool { return v.boolean }

// Integer returns the integer payload; only meaningful when Kind() == KindInteger.
func (v Value) Integer() int64 { return v.integer }

// Float returns the float payload; only meaningful when Kind() == KindFloat.
func (v Value) Float() float64 { return v.float }

// Str returns the string payload; only meaningful when Kind() == KindString.
func (v Value) Str() string { return v.str }

// Items returns the array payload; only meaningful when Kind() == KindArray.
func (v Value) Items() []Value { return v.array }

// AsObject returns the object payload; only meaningful when Kind() == KindObject.
func (v Value) AsObject() *Object { return v.object }

// Equal reports structural equality between v and other.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolean == other.boolean
	case KindInteger:
		return v.integer == other.integer
	case KindFloat:
		return v.float == other.float
	case KindString:
		return v.str == other.str
	case KindArray:
		if len(v.array) != len(other.array) {
			return false
		}
		for i := range v.array {
			if !v.array[i].Equal(other.array[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.object.Equal(other.object)
	default:
		return false
	}
}

// pair is one entry of an ordered Object.
type pair struct {
	key   string
	value Value
}

// Object is an insertion-order-preserving string-keyed map with O(1)
// duplicate-key detection, used as the payload of KindObject values.
// A naive unordered map would lose the ordering the top-level
// sibling-object merge (repair.Parser.parseObject) depends on.
type Object struct {
	pairs []pair
	index map[string]int
}

// NewObject returns an empty ordered object.
func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

// Has reports whether key is already present.
func (o *Object) Has(key string) bool {
	_, ok := o.index[key]
	return ok
}

// Set assigns value to key. If key already exists, its value is replaced
// in place (last write wins) without disturbing insertion order.
func (o *Object) Set(key string, value Value) {
	if i, ok := o.index[key]; ok {
		o.pairs[i].value = value
		return
	}
	o.index[key] = len(o.pairs)
	o.pairs = append(o.pairs, pair{key: key, value: value})
}

// Get returns the value for key and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	i, ok := o.index[key]
	if !ok {
		return Value{}, false
	}
	return o.pairs[i].value, true
}

// Len returns the number of entries.
func (o *Object) Len() int { return len(o.pairs) }

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.pairs))
	for i, p := range o.pairs {
		keys[i] = p.key
	}
	return keys
}

// Range calls fn for each entry in insertion order, stopping early if fn
// returns false.
func (o *Object) Range(fn func(key string, value Value) bool) {
	for _, p := range o.pairs {
		if !fn(p.key, p.value) {
			return
		}
	}
}

// Merge appends or overwrites every entry of other into o, in other's
// insertion order, used by the top-level sibling-object continuation
// (spec §4.4 "Post-close continuation").
func (o *Object) Merge(other *Object) {
	other.Range(func(key string, value Value) bool {
		o.Set(key, value)
		return true
	})
}

// Equal reports structural equality, insensitive to insertion order: two
// objects are equal when they hold the same keys with equal values,
// matching the std::map-based equality of the reference implementation
// (whose keys are lexicographically ordered).
func (o *Object) Equal(other *Object) bool {
	if o == nil || other == nil {
		return o == other
	}
	if len(o.pairs) != len(other.pairs) {
		return false
	}
	for _, p := range o.pairs {
		ov, ok := other.Get(p.key)
		if !ok || !p.value.Equal(ov) {
			return false
		}
	}
	return true
}
