package values

import (
	"math"

	"github.com/funvibe/bel/internal/ast"
)

const (
	OpAdd = ast.OpAdd
	OpSub = ast.OpSub
	OpMul = ast.OpMul
	OpDiv = ast.OpDiv
	OpMod = ast.OpMod
	OpNeg = ast.OpNeg
)

// Add implements `_+_` over int/uint/float, string/string concatenation,
// bytes/bytes concatenation, list/list concatenation, and the
// timestamp+duration / duration+duration combinations objects.rs defines.
// Integer addition is checked: overflow returns an OverflowError rather
// than wrapping, matching the original's use of Rust's checked_add.
func Add(a, b Value) (Value, error) {
	switch {
	case a.Kind == KindInt && b.Kind == KindInt:
		sum := a.I + b.I
		if (b.I > 0 && sum < a.I) || (b.I < 0 && sum > a.I) {
			return Value{}, &OverflowError{Op: OpAdd, Lhs: a, Rhs: b}
		}
		return Int(sum), nil
	case a.Kind == KindUint && b.Kind == KindUint:
		sum := a.U + b.U
		if sum < a.U {
			return Value{}, &OverflowError{Op: OpAdd, Lhs: a, Rhs: b}
		}
		return Uint(sum), nil
	case isNumeric(a) && isNumeric(b):
		af, _ := asFloat(a)
		bf, _ := asFloat(b)
		return Float(af + bf), nil
	case a.Kind == KindString && b.Kind == KindString:
		return Str(a.S + b.S), nil
	case a.Kind == KindBytes && b.Kind == KindBytes:
		out := make([]byte, 0, len(a.Bs)+len(b.Bs))
		out = append(out, a.Bs...)
		out = append(out, b.Bs...)
		return Bytes(out), nil
	case a.Kind == KindList && b.Kind == KindList:
		out := make([]Value, 0, len(a.List)+len(b.List))
		out = append(out, a.List...)
		out = append(out, b.List...)
		return NewList(out...), nil
	case a.Kind == KindTimestamp && b.Kind == KindDuration:
		return addTimestampDuration(a, b)
	case a.Kind == KindDuration && b.Kind == KindTimestamp:
		return addTimestampDuration(b, a)
	case a.Kind == KindDuration && b.Kind == KindDuration:
		return Duration(a.Dur + b.Dur), nil
	default:
		return Value{}, &TypeMismatchError{Op: OpAdd, Lhs: a, Rhs: b}
	}
}

func addTimestampDuration(ts, dur Value) (Value, error) {
	result := ts.Ts.Add(dur.Dur)
	if result.Year() < 1 || result.Year() > 9999 {
		return Value{}, &OverflowError{Op: OpAdd, Lhs: ts, Rhs: dur}
	}
	return Timestamp(result), nil
}

// Sub implements `_-_`: checked int/uint subtraction, float subtraction,
// and timestamp-timestamp/timestamp-duration/duration-duration per
// objects.rs.
func Sub(a, b Value) (Value, error) {
	switch {
	case a.Kind == KindInt && b.Kind == KindInt:
		diff := a.I - b.I
		if (b.I < 0 && diff < a.I) || (b.I > 0 && diff > a.I) {
			return Value{}, &OverflowError{Op: OpSub, Lhs: a, Rhs: b}
		}
		return Int(diff), nil
	case a.Kind == KindUint && b.Kind == KindUint:
		if b.U > a.U {
			return Value{}, &OverflowError{Op: OpSub, Lhs: a, Rhs: b}
		}
		return Uint(a.U - b.U), nil
	case isNumeric(a) && isNumeric(b):
		af, _ := asFloat(a)
		bf, _ := asFloat(b)
		return Float(af - bf), nil
	case a.Kind == KindTimestamp && b.Kind == KindTimestamp:
		return Duration(a.Ts.Sub(b.Ts)), nil
	case a.Kind == KindTimestamp && b.Kind == KindDuration:
		result := a.Ts.Add(-b.Dur)
		if result.Year() < 1 || result.Year() > 9999 {
			return Value{}, &OverflowError{Op: OpSub, Lhs: a, Rhs: b}
		}
		return Timestamp(result), nil
	case a.Kind == KindDuration && b.Kind == KindDuration:
		return Duration(a.Dur - b.Dur), nil
	default:
		return Value{}, &TypeMismatchError{Op: OpSub, Lhs: a, Rhs: b}
	}
}

// Mul implements `_*_` over int/uint (checked) and float.
func Mul(a, b Value) (Value, error) {
	switch {
	case a.Kind == KindInt && b.Kind == KindInt:
		if a.I == 0 || b.I == 0 {
			return Int(0), nil
		}
		prod := a.I * b.I
		if prod/b.I != a.I {
			return Value{}, &OverflowError{Op: OpMul, Lhs: a, Rhs: b}
		}
		return Int(prod), nil
	case a.Kind == KindUint && b.Kind == KindUint:
		if a.U == 0 || b.U == 0 {
			return Uint(0), nil
		}
		prod := a.U * b.U
		if prod/b.U != a.U {
			return Value{}, &OverflowError{Op: OpMul, Lhs: a, Rhs: b}
		}
		return Uint(prod), nil
	case isNumeric(a) && isNumeric(b):
		af, _ := asFloat(a)
		bf, _ := asFloat(b)
		return Float(af * bf), nil
	default:
		return Value{}, &TypeMismatchError{Op: OpMul, Lhs: a, Rhs: b}
	}
}

// Div implements `_/_`. Integer division by zero is an error (not Inf);
// float division by zero follows IEEE 754 (±Inf/NaN), matching
// objects.rs's distinction between checked integer division and plain
// float division.
func Div(a, b Value) (Value, error) {
	switch {
	case a.Kind == KindInt && b.Kind == KindInt:
		if b.I == 0 {
			return Value{}, &DivideByZeroError{Op: OpDiv}
		}
		if a.I == math.MinInt64 && b.I == -1 {
			return Value{}, &OverflowError{Op: OpDiv, Lhs: a, Rhs: b}
		}
		return Int(a.I / b.I), nil
	case a.Kind == KindUint && b.Kind == KindUint:
		if b.U == 0 {
			return Value{}, &DivideByZeroError{Op: OpDiv}
		}
		return Uint(a.U / b.U), nil
	case isNumeric(a) && isNumeric(b):
		af, _ := asFloat(a)
		bf, _ := asFloat(b)
		return Float(af / bf), nil
	default:
		return Value{}, &TypeMismatchError{Op: OpDiv, Lhs: a, Rhs: b}
	}
}

// Rem implements `_%_`, defined only over int/uint per objects.rs (there
// is no float remainder operator in the grammar).
func Rem(a, b Value) (Value, error) {
	switch {
	case a.Kind == KindInt && b.Kind == KindInt:
		if b.I == 0 {
			return Value{}, &DivideByZeroError{Op: OpMod}
		}
		if a.I == math.MinInt64 && b.I == -1 {
			return Int(0), nil
		}
		return Int(a.I % b.I), nil
	case a.Kind == KindUint && b.Kind == KindUint:
		if b.U == 0 {
			return Value{}, &DivideByZeroError{Op: OpMod}
		}
		return Uint(a.U % b.U), nil
	default:
		return Value{}, &TypeMismatchError{Op: OpMod, Lhs: a, Rhs: b}
	}
}

// Neg implements unary `-_`.
func Neg(a Value) (Value, error) {
	switch a.Kind {
	case KindInt:
		if a.I == math.MinInt64 {
			return Value{}, &OverflowError{Op: OpNeg, Lhs: a, Rhs: Int(0)}
		}
		return Int(-a.I), nil
	case KindFloat:
		return Float(-a.F), nil
	default:
		return Value{}, &TypeMismatchError{Op: OpNeg, Lhs: a, Rhs: a}
	}
}

func isNumeric(v Value) bool {
	return v.Kind == KindInt || v.Kind == KindUint || v.Kind == KindFloat
}
