// Package jsonvalue bridges encoding/json's decoded shapes (nil, bool,
// float64, string, []interface{}, map[string]interface{}) to bel.Value,
// shared by cmd/bel's --var flag and evalsvc's wire format so both pick
// the same JSON-number-to-int-or-float rule instead of drifting apart.
package jsonvalue

import (
	"encoding/json"
	"fmt"

	"github.com/funvibe/bel/pkg/bel"
)

// Decode parses raw as JSON and converts the result to a bel.Value.
func Decode(raw []byte) (bel.Value, error) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return bel.Value{}, err
	}
	return FromGo(v)
}

// FromGo converts a value produced by encoding/json.Unmarshal into a
// bel.Value. A JSON number decodes to Int when it has no fractional part,
// Float otherwise; there is no separate JSON syntax for bel's Uint, so
// --var and the gRPC wire format can only ever produce Int or Float.
func FromGo(v interface{}) (bel.Value, error) {
	switch t := v.(type) {
	case nil:
		return bel.NullValue, nil
	case bool:
		return bel.BoolValue(t), nil
	case float64:
		if t == float64(int64(t)) {
			return bel.IntValue(int64(t)), nil
		}
		return bel.FloatValue(t), nil
	case string:
		return bel.StringValue(t), nil
	case []interface{}:
		elems := make([]bel.Value, len(t))
		for i, e := range t {
			ev, err := FromGo(e)
			if err != nil {
				return bel.Value{}, err
			}
			elems[i] = ev
		}
		return bel.ListValueOf(elems...), nil
	case map[string]interface{}:
		fields := make(map[string]bel.Value, len(t))
		for k, e := range t {
			ev, err := FromGo(e)
			if err != nil {
				return bel.Value{}, err
			}
			fields[k] = ev
		}
		return bel.MapValueOf(fields), nil
	default:
		return bel.Value{}, fmt.Errorf("unsupported JSON value %T", v)
	}
}

// Encode converts v to plain Go data via bel.ToGoValue and marshals it.
func Encode(v bel.Value) (json.RawMessage, error) {
	goVal, err := bel.ToGoValue(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(goVal)
}
