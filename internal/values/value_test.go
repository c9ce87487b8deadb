package values

import (
	"math"
	"testing"
)

func TestEqualHeterogeneous(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"int_uint_equal", Int(5), Uint(5), true},
		{"int_float_equal", Int(5), Float(5.0), true},
		{"map_vs_list_false", NewMap(EmptyMap()), NewList(), false},
		{"null_vs_int_false", Null, Int(0), false},
		{"string_neq", Str("a"), Str("b"), false},
		{"bytes_eq", Bytes([]byte("ab")), Bytes([]byte("ab")), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestFloatCompareNaN(t *testing.T) {
	nan := Float(math.NaN())
	if Equal(nan, nan) {
		t.Error("NaN should not equal itself")
	}
	// NaN has no ordering relation to anything, including itself: this
	// must raise, not silently answer false, matching objects.rs's
	// test_float_compare ("1.0 > Float(NaN)" is an error).
	_, err := Compare("_<_", nan, Int(1))
	if err == nil {
		t.Fatal("expected ValuesNotComparableError comparing NaN against int")
	}
	if _, ok := err.(*ValuesNotComparableError); !ok {
		t.Errorf("expected *ValuesNotComparableError, got %T", err)
	}
}

func TestCompareIncompatibleKinds(t *testing.T) {
	_, err := Compare("_<_", NewMap(EmptyMap()), NewList())
	if err == nil {
		t.Fatal("expected TypeMismatchError comparing map to list")
	}
	if _, ok := err.(*TypeMismatchError); !ok {
		t.Errorf("expected *TypeMismatchError, got %T", err)
	}
}

func TestAddOverflow(t *testing.T) {
	_, err := Add(Int(math.MaxInt64), Int(1))
	if err == nil {
		t.Fatal("expected overflow error")
	}
	if _, ok := err.(*OverflowError); !ok {
		t.Errorf("expected *OverflowError, got %T", err)
	}
}

func TestDivByZero(t *testing.T) {
	_, err := Div(Int(1), Int(0))
	if err == nil {
		t.Fatal("expected divide-by-zero error")
	}
	if _, ok := err.(*DivideByZeroError); !ok {
		t.Errorf("expected *DivideByZeroError, got %T", err)
	}

	// Float division by zero follows IEEE 754, not an error.
	f, err := Div(Float(1), Float(0))
	if err != nil {
		t.Fatalf("unexpected error dividing floats by zero: %v", err)
	}
	if !math.IsInf(f.F, 1) {
		t.Errorf("expected +Inf, got %v", f.F)
	}
}

func TestRemMinIntByMinusOne(t *testing.T) {
	v, err := Rem(Int(math.MinInt64), Int(-1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.I != 0 {
		t.Errorf("expected 0, got %d", v.I)
	}
}

func TestMapPutGetPersistence(t *testing.T) {
	m1 := EmptyMap()
	m2 := m1.Put(StringKey("a"), Int(1))
	m3 := m2.Put(StringKey("b"), Int(2))

	if m1.Len() != 0 {
		t.Errorf("m1 should remain empty, got len %d", m1.Len())
	}
	if m2.Len() != 1 {
		t.Errorf("m2 should have 1 entry, got %d", m2.Len())
	}
	if m3.Len() != 2 {
		t.Errorf("m3 should have 2 entries, got %d", m3.Len())
	}
	if v, ok := m2.Get(StringKey("b")); ok {
		t.Errorf("m2 should not see key added only in m3, got %v", v)
	}
	v, ok := m3.Get(StringKey("a"))
	if !ok || v.I != 1 {
		t.Errorf("expected a=1 in m3, got %v, %v", v, ok)
	}
}

func TestMapLastWriteWins(t *testing.T) {
	m := EmptyMap().Put(StringKey("k"), Int(1)).Put(StringKey("k"), Int(2))
	if m.Len() != 1 {
		t.Errorf("expected 1 entry after overwrite, got %d", m.Len())
	}
	v, _ := m.Get(StringKey("k"))
	if v.I != 2 {
		t.Errorf("expected last write to win, got %v", v)
	}
}

func TestMapManyKeysSurviveHashCollisionPath(t *testing.T) {
	m := EmptyMap()
	for i := 0; i < 2000; i++ {
		m = m.Put(IntKey(int64(i)), Int(int64(i*2)))
	}
	for i := 0; i < 2000; i++ {
		v, ok := m.Get(IntKey(int64(i)))
		if !ok || v.I != int64(i*2) {
			t.Fatalf("key %d: got %v, %v", i, v, ok)
		}
	}
	if m.Len() != 2000 {
		t.Errorf("expected 2000 entries, got %d", m.Len())
	}
}
