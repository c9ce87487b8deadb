package values

// Equal implements the `_==_` operator, matching objects.rs's
// heterogeneous-compare rules: numeric kinds compare across Int/Uint/Float
// by value, NaN is never equal to anything (including itself), and a
// comparison between otherwise-incompatible kinds (e.g. {} == []) yields
// false rather than an error — equality is total, unlike ordering.
func Equal(a, b Value) bool {
	switch a.Kind {
	case KindNull:
		return b.Kind == KindNull
	case KindBool:
		return b.Kind == KindBool && a.B == b.B
	case KindInt, KindUint, KindFloat:
		return numericEqual(a, b)
	case KindString:
		return b.Kind == KindString && a.S == b.S
	case KindBytes:
		return b.Kind == KindBytes && bytesEqual(a.Bs, b.Bs)
	case KindList:
		return listEqual(a, b)
	case KindMap:
		return mapEqual(a, b)
	case KindDuration:
		return b.Kind == KindDuration && a.Dur == b.Dur
	case KindTimestamp:
		return b.Kind == KindTimestamp && a.Ts.Equal(b.Ts)
	case KindFunction:
		return b.Kind == KindFunction && a.Fn.Name == b.Fn.Name
	case KindIP:
		return b.Kind == KindIP && a.IP == b.IP
	default:
		return false
	}
}

func numericEqual(a, b Value) bool {
	if b.Kind != KindInt && b.Kind != KindUint && b.Kind != KindFloat {
		return false
	}
	if a.Kind == KindFloat || b.Kind == KindFloat {
		af, aok := asFloat(a)
		bf, bok := asFloat(b)
		if !aok || !bok {
			return false
		}
		// NaN is never equal to anything, per IEEE 754 and the original
		// implementation's explicit float-compare test.
		return af == bf
	}
	if a.Kind == KindInt && b.Kind == KindInt {
		return a.I == b.I
	}
	if a.Kind == KindUint && b.Kind == KindUint {
		return a.U == b.U
	}
	// mixed Int/Uint: equal iff the int side is non-negative and matches.
	var i int64
	var u uint64
	if a.Kind == KindInt {
		i, u = a.I, b.U
	} else {
		i, u = b.I, a.U
	}
	return i >= 0 && uint64(i) == u
}

func asFloat(v Value) (float64, bool) {
	switch v.Kind {
	case KindFloat:
		return v.F, true
	case KindInt:
		return float64(v.I), true
	case KindUint:
		return float64(v.U), true
	default:
		return 0, false
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func listEqual(a, b Value) bool {
	if b.Kind != KindList || len(a.List) != len(b.List) {
		return false
	}
	for i := range a.List {
		if !Equal(a.List[i], b.List[i]) {
			return false
		}
	}
	return true
}

func mapEqual(a, b Value) bool {
	if b.Kind != KindMap || a.Map.Len() != b.Map.Len() {
		return false
	}
	for _, item := range a.Map.Items() {
		bv, ok := b.Map.Get(item.Key)
		if !ok || !Equal(item.Value, bv) {
			return false
		}
	}
	return true
}
