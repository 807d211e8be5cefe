package contract

import (
	"math"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	axerrors "github.com/cognisivelabs/go-axiom/internal/errors"
	"github.com/cognisivelabs/go-axiom/internal/runtime"
	"github.com/cognisivelabs/go-axiom/internal/types"
)

// DecodeContext converts a context JSON document into runtime values,
// guided by the contract's input types. Strings in date-typed positions
// become Date values; everything else follows the natural JSON mapping.
//
// Properties the contract declares but the data omits are simply absent
// from the resulting objects — accessing them is a runtime error, which is
// what has(...) observes. Extra properties in the data are carried along
// untyped. JSON null is rejected: null is not a value in the type system.
func DecodeContext(data []byte, c *Contract) (map[string]runtime.Value, error) {
	if len(data) == 0 {
		data = []byte("{}")
	}
	if !gjson.ValidBytes(data) {
		return nil, axerrors.NewRuntime(axerrors.CodeBadContext, "context is not valid JSON")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, axerrors.NewRuntime(axerrors.CodeBadContext, "context must be a JSON object")
	}

	env := make(map[string]runtime.Value, len(c.Inputs))
	for _, in := range c.Inputs {
		r := doc.Get(in.Name)
		if !r.Exists() {
			return nil, axerrors.NewRuntime(axerrors.CodeBadContext,
				"context is missing input '%s'", in.Name)
		}
		v, err := convert(r, in.Type, in.Name)
		if err != nil {
			return nil, err
		}
		env[in.Name] = v
	}
	return env, nil
}

// convert maps one JSON value to a runtime value under the declared type.
// path is the dotted location used in error messages.
func convert(r gjson.Result, declared types.Type, path string) (runtime.Value, error) {
	if r.Type == gjson.Null {
		return nil, badContext(path, "null is not a value")
	}

	switch t := declared.(type) {
	case *types.PrimitiveType:
		return convertPrimitive(r, t, path)
	case *types.ListType:
		if !r.IsArray() {
			return nil, badContext(path, "expected a JSON array for type %s", declared)
		}
		list := &runtime.ListValue{}
		for i, elem := range r.Array() {
			v, err := convert(elem, t.Element, indexPath(path, i))
			if err != nil {
				return nil, err
			}
			list.Elements = append(list.Elements, v)
		}
		return list, nil
	case *types.ObjectType:
		if !r.IsObject() {
			return nil, badContext(path, "expected a JSON object for type %s", declared)
		}
		obj := runtime.NewObjectValue()
		var walkErr error
		r.ForEach(func(key, value gjson.Result) bool {
			childType, found := t.Lookup(key.String())
			var v runtime.Value
			var err error
			if found {
				v, err = convert(value, childType, path+"."+key.String())
			} else {
				v, err = convert(value, types.Unknown, path+"."+key.String())
			}
			if err != nil {
				walkErr = err
				return false
			}
			obj.Set(key.String(), v)
			return true
		})
		if walkErr != nil {
			return nil, walkErr
		}
		return obj, nil
	default:
		return nil, badContext(path, "unsupported declared type %s", declared)
	}
}

// convertPrimitive maps a JSON scalar to the declared primitive, or
// converts untyped data by its JSON shape when the declared type is
// Unknown.
func convertPrimitive(r gjson.Result, declared *types.PrimitiveType, path string) (runtime.Value, error) {
	switch declared {
	case types.Int:
		return convertInt(r, path)
	case types.String:
		if r.Type != gjson.String {
			return nil, badContext(path, "expected a string, got %s", r.Raw)
		}
		return &runtime.StringValue{Value: r.String()}, nil
	case types.Bool:
		if !r.IsBool() {
			return nil, badContext(path, "expected a boolean, got %s", r.Raw)
		}
		return runtime.BoolOf(r.Bool()), nil
	case types.Date:
		if r.Type != gjson.String {
			return nil, badContext(path, "expected an ISO-8601 string, got %s", r.Raw)
		}
		instant, err := time.Parse(time.RFC3339, r.String())
		if err != nil {
			return nil, badContext(path, "invalid ISO-8601 instant %q", r.String())
		}
		return &runtime.DateValue{Value: instant}, nil
	case types.Unknown:
		return convertUntyped(r, path)
	default:
		return nil, badContext(path, "unsupported declared type %s", declared)
	}
}

// convertUntyped maps JSON to values by shape alone. Lists must stay
// homogeneous; mixed-kind arrays in the data are rejected.
func convertUntyped(r gjson.Result, path string) (runtime.Value, error) {
	switch {
	case r.Type == gjson.String:
		return &runtime.StringValue{Value: r.String()}, nil
	case r.IsBool():
		return runtime.BoolOf(r.Bool()), nil
	case r.Type == gjson.Number:
		return convertInt(r, path)
	case r.IsArray():
		list := &runtime.ListValue{}
		for i, elem := range r.Array() {
			v, err := convertUntyped(elem, indexPath(path, i))
			if err != nil {
				return nil, err
			}
			if len(list.Elements) > 0 && !types.Equal(list.Elements[0].Type(), v.Type()) {
				return nil, badContext(indexPath(path, i), "list elements must be homogeneous")
			}
			list.Elements = append(list.Elements, v)
		}
		return list, nil
	case r.IsObject():
		obj := runtime.NewObjectValue()
		var walkErr error
		r.ForEach(func(key, value gjson.Result) bool {
			v, err := convertUntyped(value, path+"."+key.String())
			if err != nil {
				walkErr = err
				return false
			}
			obj.Set(key.String(), v)
			return true
		})
		if walkErr != nil {
			return nil, walkErr
		}
		return obj, nil
	default:
		return nil, badContext(path, "unsupported JSON value %s", r.Raw)
	}
}

// convertInt maps a JSON number to an Int, rejecting fractional values.
func convertInt(r gjson.Result, path string) (runtime.Value, error) {
	if r.Type != gjson.Number {
		return nil, badContext(path, "expected a number, got %s", r.Raw)
	}
	f := r.Float()
	if f != math.Trunc(f) {
		return nil, badContext(path, "number %v is not an integer", f)
	}
	return &runtime.IntValue{Value: r.Int()}, nil
}

func indexPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

func badContext(path, format string, args ...any) *axerrors.Error {
	err := axerrors.NewRuntime(axerrors.CodeBadContext, format, args...)
	err.Message = "context value '" + path + "': " + err.Message
	return err
}
