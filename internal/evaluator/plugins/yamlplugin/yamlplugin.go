// Package yamlplugin registers yaml_encode()/yaml_decode() functions,
// bridging values.Value to YAML text. Grounded on the teacher's own
// internal/evaluator/builtins_yaml.go (its "lib/yaml" virtual package for
// the general-purpose language's Result-returning yamlDecode/yamlEncode
// builtins) rewritten around this engine's direct error-return
// convention rather than a Result-kind wrapper value, and around
// values.Value/values.Map rather than Object/Record.
package yamlplugin

import (
	"fmt"
	"sort"

	"github.com/funvibe/bel/internal/evaluator"
	"github.com/funvibe/bel/internal/values"
	"gopkg.in/yaml.v3"
)

// Register adds yaml_encode() and yaml_decode() to ctx.
func Register(ctx *evaluator.Context) {
	ctx.RegisterFunction(&evaluator.Function{Name: "yaml_decode", Impl: builtinYAMLDecode})
	ctx.RegisterFunction(&evaluator.Function{Name: "yaml_encode", Impl: builtinYAMLEncode})
}

func builtinYAMLDecode(fc *evaluator.FunctionContext) (values.Value, error) {
	content, err := fc.StringArg(0)
	if err != nil {
		return values.Value{}, err
	}
	var data interface{}
	if err := yaml.Unmarshal([]byte(content), &data); err != nil {
		return values.Value{}, fmt.Errorf("yaml_decode: %w", err)
	}
	return fromYAML(data)
}

// fromYAML converts a Go value produced by yaml.Unmarshal into a
// values.Value. Unlike a JSON decoder, yaml.v3 already returns int for
// integral scalars (not float64), and map keys as interface{} (usually
// string), matching inferFromYaml's int/map[interface{}]interface{} cases
// in the teacher's source.
func fromYAML(data interface{}) (values.Value, error) {
	switch v := data.(type) {
	case nil:
		return values.Null, nil
	case bool:
		return values.Bool(v), nil
	case int:
		return values.Int(int64(v)), nil
	case int64:
		return values.Int(v), nil
	case float64:
		return values.Float(v), nil
	case string:
		return values.Str(v), nil
	case []interface{}:
		elems := make([]values.Value, len(v))
		for i, item := range v {
			e, err := fromYAML(item)
			if err != nil {
				return values.Value{}, err
			}
			elems[i] = e
		}
		return values.NewList(elems...), nil
	case map[string]interface{}:
		m := values.EmptyMap()
		for k, val := range v {
			e, err := fromYAML(val)
			if err != nil {
				return values.Value{}, err
			}
			m = m.Put(values.StringKey(k), e)
		}
		return values.NewMap(m), nil
	case map[interface{}]interface{}:
		m := values.EmptyMap()
		for k, val := range v {
			e, err := fromYAML(val)
			if err != nil {
				return values.Value{}, err
			}
			m = m.Put(values.StringKey(fmt.Sprintf("%v", k)), e)
		}
		return values.NewMap(m), nil
	default:
		return values.Value{}, fmt.Errorf("yaml_decode: unsupported YAML value type %T", data)
	}
}

func builtinYAMLEncode(fc *evaluator.FunctionContext) (values.Value, error) {
	v, err := fc.Arg(0)
	if err != nil {
		return values.Value{}, err
	}
	goVal, err := toGo(v)
	if err != nil {
		return values.Value{}, err
	}
	out, err := yaml.Marshal(goVal)
	if err != nil {
		return values.Value{}, fmt.Errorf("yaml_encode: %w", err)
	}
	return values.Str(string(out)), nil
}

func toGo(v values.Value) (interface{}, error) {
	switch v.Kind {
	case values.KindNull:
		return nil, nil
	case values.KindBool:
		return v.B, nil
	case values.KindInt:
		return v.I, nil
	case values.KindUint:
		return v.U, nil
	case values.KindFloat:
		return v.F, nil
	case values.KindString:
		return v.S, nil
	case values.KindBytes:
		return v.Bs, nil
	case values.KindList:
		out := make([]interface{}, len(v.List))
		for i, e := range v.List {
			g, err := toGo(e)
			if err != nil {
				return nil, err
			}
			out[i] = g
		}
		return out, nil
	case values.KindMap:
		items := v.Map.Items()
		sort.Slice(items, func(i, j int) bool { return items[i].Key.String() < items[j].Key.String() })
		out := make(map[string]interface{}, len(items))
		for _, it := range items {
			g, err := toGo(it.Value)
			if err != nil {
				return nil, err
			}
			out[it.Key.String()] = g
		}
		return out, nil
	default:
		return nil, fmt.Errorf("yaml_encode: unsupported value kind %s", v.Kind)
	}
}
