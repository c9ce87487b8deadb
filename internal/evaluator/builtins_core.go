package evaluator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/bel/internal/values"
)

// NewDefaultContext returns a root Context with the core standard library
// registered: length, contains/starts_with/ends_with, max/min, and the
// String/Bytes/Int/Float conversion functions from bel/src/functions.rs's
// non-feature-gated module (uint is carried as an additional, ungated
// conversion alongside them). Regex, time, and IP functions are opt-in via
// internal/evaluator/plugins, not part of this core set, matching
// bel/src/context.rs's Context::default() versus the crate's optional
// feature modules.
func NewDefaultContext() *Context {
	ctx := NewEmptyContext()
	RegisterCoreBuiltins(ctx)
	return ctx
}

// RegisterCoreBuiltins adds the core standard library functions to ctx.
// Method-style names (length, contains, starts_with, ...) stay lowercase;
// type-conversion constructors are capitalized, matching functions.rs's
// String/Bytes/Int/Float.
func RegisterCoreBuiltins(ctx *Context) {
	ctx.RegisterFunction(&Function{Name: "length", Impl: builtinLength})
	ctx.RegisterFunction(&Function{Name: "contains", Impl: builtinContains})
	ctx.RegisterFunction(&Function{Name: "starts_with", Impl: builtinStartsWith})
	ctx.RegisterFunction(&Function{Name: "ends_with", Impl: builtinEndsWith})
	ctx.RegisterFunction(&Function{Name: "max", Impl: builtinMax})
	ctx.RegisterFunction(&Function{Name: "min", Impl: builtinMin})
	ctx.RegisterFunction(&Function{Name: "String", Impl: builtinString})
	ctx.RegisterFunction(&Function{Name: "Bytes", Impl: builtinBytes})
	ctx.RegisterFunction(&Function{Name: "Int", Impl: builtinInt})
	ctx.RegisterFunction(&Function{Name: "uint", Impl: builtinUint})
	ctx.RegisterFunction(&Function{Name: "Float", Impl: builtinFloat})
}

// builtinLength accepts either a receiver (x.length()) or a positional
// argument (length(x)) over string, bytes, list, and map.
func builtinLength(fc *FunctionContext) (values.Value, error) {
	v, err := receiverOrFirstArg(fc)
	if err != nil {
		return values.Value{}, err
	}
	switch v.Kind {
	case values.KindString:
		return values.Int(int64(len([]rune(v.S)))), nil
	case values.KindBytes:
		return values.Int(int64(len(v.Bs))), nil
	case values.KindList:
		return values.Int(int64(len(v.List))), nil
	case values.KindMap:
		return values.Int(int64(v.Map.Len())), nil
	default:
		return values.Value{}, fmt.Errorf("length() is not defined for kind %s", v.Kind)
	}
}

func receiverOrFirstArg(fc *FunctionContext) (values.Value, error) {
	if fc.Call.Target != nil {
		return fc.This()
	}
	if fc.ArgCount() != 1 {
		return values.Value{}, fc.arityError()
	}
	return fc.Arg(0)
}

func builtinContains(fc *FunctionContext) (values.Value, error) {
	this, err := fc.This()
	if err != nil {
		return values.Value{}, err
	}
	switch this.Kind {
	case values.KindString:
		needle, err := fc.StringArg(0)
		if err != nil {
			return values.Value{}, err
		}
		return values.Bool(strings.Contains(this.S, needle)), nil
	case values.KindList:
		needle, err := fc.Arg(0)
		if err != nil {
			return values.Value{}, err
		}
		for _, e := range this.List {
			if values.Equal(e, needle) {
				return values.Bool(true), nil
			}
		}
		return values.Bool(false), nil
	default:
		return values.Value{}, fmt.Errorf("contains() is not defined for kind %s", this.Kind)
	}
}

func builtinStartsWith(fc *FunctionContext) (values.Value, error) {
	this, err := fc.This()
	if err != nil {
		return values.Value{}, err
	}
	if this.Kind != values.KindString {
		return values.Value{}, fmt.Errorf("starts_with() is not defined for kind %s", this.Kind)
	}
	prefix, err := fc.StringArg(0)
	if err != nil {
		return values.Value{}, err
	}
	return values.Bool(strings.HasPrefix(this.S, prefix)), nil
}

func builtinEndsWith(fc *FunctionContext) (values.Value, error) {
	this, err := fc.This()
	if err != nil {
		return values.Value{}, err
	}
	if this.Kind != values.KindString {
		return values.Value{}, fmt.Errorf("ends_with() is not defined for kind %s", this.Kind)
	}
	suffix, err := fc.StringArg(0)
	if err != nil {
		return values.Value{}, err
	}
	return values.Bool(strings.HasSuffix(this.S, suffix)), nil
}

// builtinMax accepts either a single list argument or two-or-more
// variadic scalar arguments, matching functions.rs; an empty list yields
// Null rather than an error.
func builtinMax(fc *FunctionContext) (values.Value, error) {
	return extremum(fc, 1)
}

func builtinMin(fc *FunctionContext) (values.Value, error) {
	return extremum(fc, -1)
}

func extremum(fc *FunctionContext, sign int) (values.Value, error) {
	elems, err := maxMinOperands(fc)
	if err != nil {
		return values.Value{}, err
	}
	if len(elems) == 0 {
		return values.Null, nil
	}
	best := elems[0]
	for _, e := range elems[1:] {
		cmp, err := values.Compare("max/min", e, best)
		if err != nil {
			return values.Value{}, err
		}
		if cmp*sign > 0 {
			best = e
		}
	}
	return best, nil
}

func maxMinOperands(fc *FunctionContext) ([]values.Value, error) {
	if fc.ArgCount() == 1 {
		v, err := fc.Arg(0)
		if err != nil {
			return nil, err
		}
		if v.Kind == values.KindList {
			return v.List, nil
		}
		return []values.Value{v}, nil
	}
	return fc.Args()
}

func builtinString(fc *FunctionContext) (values.Value, error) {
	v, err := receiverOrFirstArg(fc)
	if err != nil {
		return values.Value{}, err
	}
	switch v.Kind {
	case values.KindString:
		return v, nil
	case values.KindBytes:
		return values.Str(string(v.Bs)), nil
	case values.KindInt:
		return values.Str(strconv.FormatInt(v.I, 10)), nil
	case values.KindUint:
		return values.Str(strconv.FormatUint(v.U, 10)), nil
	case values.KindFloat:
		return values.Str(v.String()), nil
	case values.KindBool:
		return values.Str(strconv.FormatBool(v.B)), nil
	case values.KindIP, values.KindDuration, values.KindTimestamp:
		return values.Str(v.String()), nil
	default:
		return values.Value{}, fmt.Errorf("string() is not defined for kind %s", v.Kind)
	}
}

func builtinBytes(fc *FunctionContext) (values.Value, error) {
	v, err := receiverOrFirstArg(fc)
	if err != nil {
		return values.Value{}, err
	}
	switch v.Kind {
	case values.KindBytes:
		return v, nil
	case values.KindString:
		return values.Bytes([]byte(v.S)), nil
	default:
		return values.Value{}, fmt.Errorf("bytes() is not defined for kind %s", v.Kind)
	}
}

func builtinInt(fc *FunctionContext) (values.Value, error) {
	v, err := receiverOrFirstArg(fc)
	if err != nil {
		return values.Value{}, err
	}
	switch v.Kind {
	case values.KindInt:
		return v, nil
	case values.KindUint:
		return values.Int(int64(v.U)), nil
	case values.KindFloat:
		return values.Int(int64(v.F)), nil
	case values.KindString:
		n, err := strconv.ParseInt(v.S, 10, 64)
		if err != nil {
			return values.Value{}, fmt.Errorf("int(): invalid string %q", v.S)
		}
		return values.Int(n), nil
	default:
		return values.Value{}, fmt.Errorf("int() is not defined for kind %s", v.Kind)
	}
}

func builtinUint(fc *FunctionContext) (values.Value, error) {
	v, err := receiverOrFirstArg(fc)
	if err != nil {
		return values.Value{}, err
	}
	switch v.Kind {
	case values.KindUint:
		return v, nil
	case values.KindInt:
		if v.I < 0 {
			return values.Value{}, fmt.Errorf("uint(): negative value %d", v.I)
		}
		return values.Uint(uint64(v.I)), nil
	case values.KindFloat:
		if v.F < 0 {
			return values.Value{}, fmt.Errorf("uint(): negative value %v", v.F)
		}
		return values.Uint(uint64(v.F)), nil
	case values.KindString:
		n, err := strconv.ParseUint(v.S, 10, 64)
		if err != nil {
			return values.Value{}, fmt.Errorf("uint(): invalid string %q", v.S)
		}
		return values.Uint(n), nil
	default:
		return values.Value{}, fmt.Errorf("uint() is not defined for kind %s", v.Kind)
	}
}

func builtinFloat(fc *FunctionContext) (values.Value, error) {
	v, err := receiverOrFirstArg(fc)
	if err != nil {
		return values.Value{}, err
	}
	switch v.Kind {
	case values.KindFloat:
		return v, nil
	case values.KindInt:
		return values.Float(float64(v.I)), nil
	case values.KindUint:
		return values.Float(float64(v.U)), nil
	case values.KindString:
		f, err := strconv.ParseFloat(v.S, 64)
		if err != nil {
			return values.Value{}, fmt.Errorf("Float(): invalid string %q", v.S)
		}
		return values.Float(f), nil
	default:
		return values.Value{}, fmt.Errorf("Float() is not defined for kind %s", v.Kind)
	}
}
