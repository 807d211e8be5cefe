// Package runtime defines the values Axiom rules compute over. Values are
// immutable: every operation constructs new values, and assignment in a
// rule replaces the binding rather than mutating the value.
package runtime

import (
	"strconv"
	"strings"
	"time"

	"github.com/cognisivelabs/go-axiom/internal/types"
)

// Value is the interface implemented by all runtime values.
type Value interface {
	// Type returns the static type of the value. For lists the element
	// type is derived from the first element, Unknown when empty.
	Type() types.Type

	// String returns a human-readable rendering for debugging and the CLI.
	String() string

	valueNode()
}

// IntValue is a 64-bit signed integer. Arithmetic wraps on overflow.
type IntValue struct {
	Value int64
}

func (v *IntValue) valueNode()       {}
func (v *IntValue) Type() types.Type { return types.Int }
func (v *IntValue) String() string   { return strconv.FormatInt(v.Value, 10) }

// StringValue is an immutable string.
type StringValue struct {
	Value string
}

func (v *StringValue) valueNode()       {}
func (v *StringValue) Type() types.Type { return types.String }
func (v *StringValue) String() string   { return v.Value }

// BoolValue is a boolean.
type BoolValue struct {
	Value bool
}

func (v *BoolValue) valueNode()       {}
func (v *BoolValue) Type() types.Type { return types.Bool }
func (v *BoolValue) String() string   { return strconv.FormatBool(v.Value) }

// DateValue is an instant in time. Comparisons order instants absolutely.
type DateValue struct {
	Value time.Time
}

func (v *DateValue) valueNode()       {}
func (v *DateValue) Type() types.Type { return types.Date }
func (v *DateValue) String() string   { return v.Value.UTC().Format(time.RFC3339) }

// ListValue is an ordered sequence of values.
type ListValue struct {
	Elements []Value
}

func (v *ListValue) valueNode() {}

func (v *ListValue) Type() types.Type {
	if len(v.Elements) == 0 {
		return types.NewList(types.Unknown)
	}
	return types.NewList(v.Elements[0].Type())
}

func (v *ListValue) String() string {
	elems := make([]string, len(v.Elements))
	for i, e := range v.Elements {
		elems[i] = e.String()
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

// ObjectValue is a mapping from property names to values, preserving
// insertion order for iteration and serialization.
type ObjectValue struct {
	entries map[string]Value
	keys    []string
}

// NewObjectValue returns an empty object value.
func NewObjectValue() *ObjectValue {
	return &ObjectValue{entries: make(map[string]Value)}
}

func (v *ObjectValue) valueNode() {}

func (v *ObjectValue) Type() types.Type {
	props := make([]types.Property, 0, len(v.keys))
	for _, k := range v.keys {
		props = append(props, types.Property{Name: k, Type: v.entries[k].Type()})
	}
	return types.NewObject(props...)
}

func (v *ObjectValue) String() string {
	parts := make([]string, 0, len(v.keys))
	for _, k := range v.keys {
		parts = append(parts, k+": "+v.entries[k].String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Set associates key with value, appending new keys in insertion order.
// An existing key is replaced in place without disturbing the order.
func (v *ObjectValue) Set(key string, value Value) {
	if _, exists := v.entries[key]; !exists {
		v.keys = append(v.keys, key)
	}
	v.entries[key] = value
}

// Get returns the value for key and whether it is present.
func (v *ObjectValue) Get(key string) (Value, bool) {
	value, ok := v.entries[key]
	return value, ok
}

// Keys returns the property names in insertion order.
func (v *ObjectValue) Keys() []string {
	return v.keys
}

// NullValue is the result of a rule whose last statement is not an
// expression. It never appears inside data.
type NullValue struct{}

func (v *NullValue) valueNode()       {}
func (v *NullValue) Type() types.Type { return types.Unknown }
func (v *NullValue) String() string   { return "null" }

// Null is the shared NullValue instance.
var Null = &NullValue{}

// True and False are the shared boolean instances.
var (
	True  = &BoolValue{Value: true}
	False = &BoolValue{Value: false}
)

// BoolOf returns the shared boolean instance for b.
func BoolOf(b bool) *BoolValue {
	if b {
		return True
	}
	return False
}

// Equals reports deep structural equality of two values. Values of
// different kinds are never equal.
func Equals(a, b Value) bool {
	switch av := a.(type) {
	case *IntValue:
		bv, ok := b.(*IntValue)
		return ok && av.Value == bv.Value
	case *StringValue:
		bv, ok := b.(*StringValue)
		return ok && av.Value == bv.Value
	case *BoolValue:
		bv, ok := b.(*BoolValue)
		return ok && av.Value == bv.Value
	case *DateValue:
		bv, ok := b.(*DateValue)
		return ok && av.Value.Equal(bv.Value)
	case *ListValue:
		bv, ok := b.(*ListValue)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equals(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *ObjectValue:
		bv, ok := b.(*ObjectValue)
		if !ok || len(av.keys) != len(bv.keys) {
			return false
		}
		for _, k := range av.keys {
			other, found := bv.Get(k)
			if !found || !Equals(av.entries[k], other) {
				return false
			}
		}
		return true
	case *NullValue:
		_, ok := b.(*NullValue)
		return ok
	default:
		return false
	}
}
