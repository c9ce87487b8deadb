package values

import (
	"bytes"
	"math"
)

// Compare implements the ordering operators (<, <=, >, >=). Unlike Equal,
// ordering is partial: comparing across incompatible kinds (or a kind with
// no ordering at all, such as map) is a TypeMismatchError, matching
// objects.rs's resolve() which only defines Lt/Le/Gt/Ge for numeric,
// string, bytes, bool, and timestamp/duration pairs.
//
// Compare returns -1, 0, or 1 the way bytes.Compare/strings.Compare do.
func Compare(op string, a, b Value) (int, error) {
	switch a.Kind {
	case KindInt, KindUint, KindFloat:
		if b.Kind != KindInt && b.Kind != KindUint && b.Kind != KindFloat {
			return 0, &TypeMismatchError{Op: op, Lhs: a, Rhs: b}
		}
		if isNaN(a) || isNaN(b) {
			return 0, &ValuesNotComparableError{Op: op, Lhs: a, Rhs: b}
		}
		return compareNumeric(a, b), nil
	case KindString:
		if b.Kind != KindString {
			return 0, &TypeMismatchError{Op: op, Lhs: a, Rhs: b}
		}
		switch {
		case a.S < b.S:
			return -1, nil
		case a.S > b.S:
			return 1, nil
		default:
			return 0, nil
		}
	case KindBytes:
		if b.Kind != KindBytes {
			return 0, &TypeMismatchError{Op: op, Lhs: a, Rhs: b}
		}
		return bytes.Compare(a.Bs, b.Bs), nil
	case KindBool:
		if b.Kind != KindBool {
			return 0, &TypeMismatchError{Op: op, Lhs: a, Rhs: b}
		}
		return boolCompare(a.B, b.B), nil
	case KindDuration:
		if b.Kind != KindDuration {
			return 0, &TypeMismatchError{Op: op, Lhs: a, Rhs: b}
		}
		switch {
		case a.Dur < b.Dur:
			return -1, nil
		case a.Dur > b.Dur:
			return 1, nil
		default:
			return 0, nil
		}
	case KindTimestamp:
		if b.Kind != KindTimestamp {
			return 0, &TypeMismatchError{Op: op, Lhs: a, Rhs: b}
		}
		switch {
		case a.Ts.Before(b.Ts):
			return -1, nil
		case a.Ts.After(b.Ts):
			return 1, nil
		default:
			return 0, nil
		}
	default:
		return 0, &TypeMismatchError{Op: op, Lhs: a, Rhs: b}
	}
}

func isNaN(v Value) bool {
	return v.Kind == KindFloat && math.IsNaN(v.F)
}

func compareNumeric(a, b Value) int {
	if a.Kind == KindFloat || b.Kind == KindFloat {
		af, _ := asFloat(a)
		bf, _ := asFloat(b)
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	if a.Kind == KindInt && b.Kind == KindInt {
		switch {
		case a.I < b.I:
			return -1
		case a.I > b.I:
			return 1
		default:
			return 0
		}
	}
	if a.Kind == KindUint && b.Kind == KindUint {
		switch {
		case a.U < b.U:
			return -1
		case a.U > b.U:
			return 1
		default:
			return 0
		}
	}
	var i int64
	var u uint64
	flip := false
	if a.Kind == KindInt {
		i, u = a.I, b.U
	} else {
		i, u, flip = b.I, a.U, true
	}
	var cmp int
	switch {
	case i < 0:
		cmp = -1
	case uint64(i) < u:
		cmp = -1
	case uint64(i) > u:
		cmp = 1
	default:
		cmp = 0
	}
	if flip {
		cmp = -cmp
	}
	return cmp
}

func boolCompare(a, b bool) int {
	if a == b {
		return 0
	}
	if !a && b {
		return -1
	}
	return 1
}
