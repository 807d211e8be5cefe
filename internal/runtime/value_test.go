package runtime

import (
	"testing"
	"time"

	"github.com/cognisivelabs/go-axiom/internal/types"
)

func TestEquals(t *testing.T) {
	instant := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	listA := &ListValue{Elements: []Value{&IntValue{Value: 1}, &IntValue{Value: 2}}}
	listB := &ListValue{Elements: []Value{&IntValue{Value: 1}, &IntValue{Value: 2}}}
	listShort := &ListValue{Elements: []Value{&IntValue{Value: 1}}}

	objA := NewObjectValue()
	objA.Set("name", &StringValue{Value: "Alice"})
	objB := NewObjectValue()
	objB.Set("name", &StringValue{Value: "Alice"})
	objC := NewObjectValue()
	objC.Set("name", &StringValue{Value: "Bob"})

	tests := []struct {
		name     string
		a, b     Value
		expected bool
	}{
		{"equal ints", &IntValue{Value: 7}, &IntValue{Value: 7}, true},
		{"different ints", &IntValue{Value: 7}, &IntValue{Value: 8}, false},
		{"equal strings", &StringValue{Value: "x"}, &StringValue{Value: "x"}, true},
		{"different kinds", &IntValue{Value: 1}, &StringValue{Value: "1"}, false},
		{"equal bools", True, &BoolValue{Value: true}, true},
		{"equal dates", &DateValue{Value: instant}, &DateValue{Value: instant}, true},
		{"different dates", &DateValue{Value: instant}, &DateValue{Value: instant.Add(time.Second)}, false},
		{"equal lists", listA, listB, true},
		{"different length lists", listA, listShort, false},
		{"equal objects", objA, objB, true},
		{"different objects", objA, objC, false},
		{"null equals null", Null, &NullValue{}, true},
		{"null not equal int", Null, &IntValue{Value: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equals(tt.a, tt.b); got != tt.expected {
				t.Errorf("Equals(%s, %s) = %v, expected %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestObjectEqualityIsOrderInsensitive(t *testing.T) {
	a := NewObjectValue()
	a.Set("x", &IntValue{Value: 1})
	a.Set("y", &IntValue{Value: 2})

	b := NewObjectValue()
	b.Set("y", &IntValue{Value: 2})
	b.Set("x", &IntValue{Value: 1})

	if !Equals(a, b) {
		t.Error("structural equality must not depend on property order")
	}
}

func TestObjectInsertionOrder(t *testing.T) {
	obj := NewObjectValue()
	obj.Set("c", &IntValue{Value: 3})
	obj.Set("a", &IntValue{Value: 1})
	obj.Set("b", &IntValue{Value: 2})
	obj.Set("a", &IntValue{Value: 9}) // overwrite keeps position

	keys := obj.Keys()
	expected := []string{"c", "a", "b"}
	for i, k := range expected {
		if keys[i] != k {
			t.Fatalf("keys[%d] = %q, expected %q", i, keys[i], k)
		}
	}
	if v, _ := obj.Get("a"); v.(*IntValue).Value != 9 {
		t.Error("overwrite must replace the value")
	}
}

func TestListType(t *testing.T) {
	empty := &ListValue{}
	if empty.Type().String() != "unknown[]" {
		t.Errorf("empty list type = %s", empty.Type())
	}

	ints := &ListValue{Elements: []Value{&IntValue{Value: 1}}}
	if !types.Equal(ints.Type(), types.NewList(types.Int)) {
		t.Errorf("int list type = %s", ints.Type())
	}
}

func TestEncodeJSON(t *testing.T) {
	instant := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	address := NewObjectValue()
	address.Set("city", &StringValue{Value: "Wonderland"})
	address.Set("zip", &StringValue{Value: "88081"})

	obj := NewObjectValue()
	obj.Set("name", &StringValue{Value: "Alice"})
	obj.Set("vip", True)
	obj.Set("score", &IntValue{Value: 42})
	obj.Set("since", &DateValue{Value: instant})
	obj.Set("tags", &ListValue{Elements: []Value{&StringValue{Value: "a"}, &StringValue{Value: "b"}}})
	obj.Set("address", address)

	data, err := EncodeJSON(obj)
	if err != nil {
		t.Fatalf("EncodeJSON failed: %v", err)
	}

	expected := `{"name":"Alice","vip":true,"score":42,"since":"2025-06-01T12:00:00Z","tags":["a","b"],"address":{"city":"Wonderland","zip":"88081"}}`
	if string(data) != expected {
		t.Errorf("EncodeJSON =\n%s\nexpected\n%s", data, expected)
	}
}

func TestEncodeJSONEscapes(t *testing.T) {
	data, err := EncodeJSON(&StringValue{Value: "a\"b"})
	if err != nil {
		t.Fatalf("EncodeJSON failed: %v", err)
	}
	if string(data) != `"a\"b"` {
		t.Errorf("EncodeJSON = %s", data)
	}
}
