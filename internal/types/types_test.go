package types

import "testing"

func TestPrimitiveEquality(t *testing.T) {
	tests := []struct {
		a, b     Type
		expected bool
	}{
		{Int, Int, true},
		{String, String, true},
		{Int, String, false},
		{Bool, Date, false},
		{Unknown, Int, true},
		{String, Unknown, true},
		{Unknown, Unknown, true},
	}

	for _, tt := range tests {
		if got := Equal(tt.a, tt.b); got != tt.expected {
			t.Errorf("Equal(%s, %s) = %v, expected %v", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestListEquality(t *testing.T) {
	tests := []struct {
		a, b     Type
		expected bool
	}{
		{NewList(Int), NewList(Int), true},
		{NewList(Int), NewList(String), false},
		{NewList(Unknown), NewList(Int), true},
		{NewList(Int), Int, false},
		{NewList(NewList(Int)), NewList(NewList(Int)), true},
	}

	for _, tt := range tests {
		if got := Equal(tt.a, tt.b); got != tt.expected {
			t.Errorf("Equal(%s, %s) = %v, expected %v", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestObjectEquality(t *testing.T) {
	user := NewObject(Property{Name: "name", Type: String}, Property{Name: "age", Type: Int})
	sameDifferentOrder := NewObject(Property{Name: "age", Type: Int}, Property{Name: "name", Type: String})
	missingAge := NewObject(Property{Name: "name", Type: String})
	wrongType := NewObject(Property{Name: "name", Type: String}, Property{Name: "age", Type: String})

	if !Equal(user, sameDifferentOrder) {
		t.Error("object equality should be order-insensitive")
	}
	if Equal(user, missingAge) {
		t.Error("objects with different property sets must not be equal")
	}
	if Equal(user, wrongType) {
		t.Error("objects with mismatched property types must not be equal")
	}
}

func TestUnknownInsideObject(t *testing.T) {
	a := NewObject(Property{Name: "tags", Type: NewList(Unknown)})
	b := NewObject(Property{Name: "tags", Type: NewList(String)})

	if !Equal(a, b) {
		t.Error("Unknown must unify structurally inside objects")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		typ      Type
		expected string
	}{
		{Int, "int"},
		{Date, "date"},
		{NewList(String), "string[]"},
		{NewList(NewList(Int)), "int[][]"},
		{NewObject(), "{}"},
		{
			NewObject(Property{Name: "city", Type: String}, Property{Name: "zip", Type: String}),
			"{city: string, zip: string}",
		},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.expected {
			t.Errorf("String() = %q, expected %q", got, tt.expected)
		}
	}
}

func TestLookup(t *testing.T) {
	obj := NewObject(Property{Name: "name", Type: String})

	if typ, ok := obj.Lookup("name"); !ok || typ != String {
		t.Error("Lookup should find declared property")
	}
	if _, ok := obj.Lookup("missing"); ok {
		t.Error("Lookup should not find undeclared property")
	}
}
