// Package contract models the typed interface a rule is checked against:
// named, typed inputs and an optional output type, plus the JSON decoding
// of both the contract itself and the execution context.
//
// JSON is walked with tidwall/gjson because ForEach visits object members
// in document order, which the ordered inputs mapping and ordered object
// types require.
package contract

import (
	"strings"

	"github.com/tidwall/gjson"

	axerrors "github.com/cognisivelabs/go-axiom/internal/errors"
	"github.com/cognisivelabs/go-axiom/internal/types"
)

// Input is a single named, typed rule input.
type Input struct {
	Name string
	Type types.Type
}

// Contract is the resolved, in-memory contract a rule is checked and
// executed against. It is immutable and may be shared across executions.
type Contract struct {
	Name    string
	Inputs  []Input
	Outputs types.Type // nil when the contract declares no output type
}

// Input returns the declared type of the named input.
func (c *Contract) Input(name string) (types.Type, bool) {
	for _, in := range c.Inputs {
		if in.Name == name {
			return in.Type, true
		}
	}
	return nil, false
}

// Empty is the contract with no inputs and no output constraint.
var Empty = &Contract{Name: "empty"}

// RefResolver resolves a file-reference TypeSpec string ("./address.json")
// to a type. Parse rejects references when no resolver is supplied; the
// loader installs one that reads from disk.
type RefResolver func(ref string) (types.Type, error)

// Parse decodes a contract JSON document:
//
//	{ "name": ..., "inputs": {ident: TypeSpec, ...}, "outputs": TypeSpec|null }
//
// A document with neither "inputs" nor "outputs" key is accepted as the
// legacy flat form: the whole object is the inputs mapping.
func Parse(data []byte) (*Contract, error) {
	return ParseResolved(data, nil)
}

// ParseResolved decodes a contract with an optional resolver for file
// references in TypeSpec position.
func ParseResolved(data []byte, resolve RefResolver) (*Contract, error) {
	if !gjson.ValidBytes(data) {
		return nil, axerrors.NewType("contract is not valid JSON")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, axerrors.NewType("contract must be a JSON object")
	}

	c := &Contract{Name: doc.Get("name").String()}

	inputs := doc.Get("inputs")
	if !inputs.Exists() && !doc.Get("outputs").Exists() {
		// Legacy flat form: the document itself is the inputs mapping.
		inputs = doc
		c.Name = ""
	}

	if inputs.Exists() {
		if !inputs.IsObject() {
			return nil, axerrors.NewType("contract inputs must be a JSON object")
		}
		var walkErr error
		inputs.ForEach(func(key, value gjson.Result) bool {
			t, err := parseTypeSpec(value, resolve)
			if err != nil {
				walkErr = axerrors.NewType("input '%s': %s", key.String(), errMessage(err))
				return false
			}
			c.Inputs = append(c.Inputs, Input{Name: key.String(), Type: t})
			return true
		})
		if walkErr != nil {
			return nil, walkErr
		}
	}

	outputs := doc.Get("outputs")
	if outputs.Exists() && outputs.Type != gjson.Null {
		t, err := parseTypeSpec(outputs, resolve)
		if err != nil {
			return nil, axerrors.NewType("outputs: %s", errMessage(err))
		}
		c.Outputs = t
	}

	return c, nil
}

// parseTypeSpec decodes one TypeSpec: a primitive name, "<primitive>[]",
// a single-element array (list shape), an inline object shape, or a file
// reference when a resolver is available.
func parseTypeSpec(r gjson.Result, resolve RefResolver) (types.Type, error) {
	switch {
	case r.Type == gjson.String:
		return parseTypeName(r.String(), resolve)
	case r.IsArray():
		elems := r.Array()
		if len(elems) != 1 {
			return nil, axerrors.NewType("list shape must contain exactly one element type")
		}
		elem, err := parseTypeSpec(elems[0], resolve)
		if err != nil {
			return nil, err
		}
		return types.NewList(elem), nil
	case r.IsObject():
		var props []types.Property
		var walkErr error
		r.ForEach(func(key, value gjson.Result) bool {
			t, err := parseTypeSpec(value, resolve)
			if err != nil {
				walkErr = err
				return false
			}
			props = append(props, types.Property{Name: key.String(), Type: t})
			return true
		})
		if walkErr != nil {
			return nil, walkErr
		}
		return types.NewObject(props...), nil
	default:
		return nil, axerrors.NewType("invalid type spec %s", r.Raw)
	}
}

// parseTypeName decodes a string TypeSpec: primitive, "<primitive>[]", or
// a file reference.
func parseTypeName(name string, resolve RefResolver) (types.Type, error) {
	if isFileRef(name) {
		if resolve == nil {
			return nil, axerrors.NewType("unresolved file reference %q", name)
		}
		return resolve(name)
	}

	if elem, ok := strings.CutSuffix(name, "[]"); ok {
		t, err := parseTypeName(elem, resolve)
		if err != nil {
			return nil, err
		}
		return types.NewList(t), nil
	}

	switch name {
	case "int":
		return types.Int, nil
	case "string":
		return types.String, nil
	case "bool":
		return types.Bool, nil
	case "date":
		return types.Date, nil
	default:
		return nil, axerrors.NewType("unknown type name %q", name)
	}
}

// isFileRef reports whether a string TypeSpec refers to an external shape
// file rather than a type name.
func isFileRef(name string) bool {
	return strings.HasSuffix(name, ".json") ||
		strings.HasPrefix(name, "./") ||
		strings.HasPrefix(name, "/")
}

func errMessage(err error) string {
	if ax, ok := err.(*axerrors.Error); ok {
		return ax.Message
	}
	return err.Error()
}
