package runtime

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	axerrors "github.com/cognisivelabs/go-axiom/internal/errors"
)

// EncodeJSON serializes a value back to JSON using the reverse of the
// context mapping: Int to number, Date to an RFC 3339 string, objects with
// their property order preserved. encoding/json cannot keep object key
// order, so objects and lists are written by hand.
func EncodeJSON(v Value) ([]byte, error) {
	var sb strings.Builder
	if err := encodeJSON(&sb, v); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

func encodeJSON(sb *strings.Builder, v Value) error {
	switch val := v.(type) {
	case *IntValue:
		sb.WriteString(strconv.FormatInt(val.Value, 10))
	case *StringValue:
		return writeJSONString(sb, val.Value)
	case *BoolValue:
		sb.WriteString(strconv.FormatBool(val.Value))
	case *DateValue:
		return writeJSONString(sb, val.Value.UTC().Format(time.RFC3339))
	case *ListValue:
		sb.WriteString("[")
		for i, e := range val.Elements {
			if i > 0 {
				sb.WriteString(",")
			}
			if err := encodeJSON(sb, e); err != nil {
				return err
			}
		}
		sb.WriteString("]")
	case *ObjectValue:
		sb.WriteString("{")
		for i, k := range val.Keys() {
			if i > 0 {
				sb.WriteString(",")
			}
			if err := writeJSONString(sb, k); err != nil {
				return err
			}
			sb.WriteString(":")
			child, _ := val.Get(k)
			if err := encodeJSON(sb, child); err != nil {
				return err
			}
		}
		sb.WriteString("}")
	case *NullValue:
		sb.WriteString("null")
	default:
		return axerrors.NewRuntime(axerrors.CodeNone, "cannot serialize value of type %s", v.Type())
	}
	return nil
}

// writeJSONString quotes a string with standard JSON escaping.
func writeJSONString(sb *strings.Builder, s string) error {
	quoted, err := json.Marshal(s)
	if err != nil {
		return err
	}
	sb.Write(quoted)
	return nil
}
