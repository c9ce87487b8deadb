package values

import "fmt"

// KeyKind is the subset of Kind that map keys may carry: int, uint, bool,
// and string, matching the original implementation's key restriction.
type KeyKind int

const (
	KeyInt KeyKind = iota
	KeyUint
	KeyBool
	KeyString
)

// Key is a map key value. It is a small, comparable-by-value struct (not
// Value itself) so it can key the persistent trie without boxing and so
// that ill-typed keys are caught at the boundary (AsKey) rather than
// silently accepted.
type Key struct {
	Kind KeyKind
	I    int64
	U    uint64
	B    bool
	S    string
}

func IntKey(i int64) Key    { return Key{Kind: KeyInt, I: i} }
func UintKey(u uint64) Key  { return Key{Kind: KeyUint, U: u} }
func BoolKey(b bool) Key    { return Key{Kind: KeyBool, B: b} }
func StringKey(s string) Key { return Key{Kind: KeyString, S: s} }

// AsKey converts v to a Key, reporting false if v's kind cannot be a map
// key.
func AsKey(v Value) (Key, bool) {
	switch v.Kind {
	case KindInt:
		return IntKey(v.I), true
	case KindUint:
		return UintKey(v.U), true
	case KindBool:
		return BoolKey(v.B), true
	case KindString:
		return StringKey(v.S), true
	default:
		return Key{}, false
	}
}

// Value converts the key back to a Value.
func (k Key) Value() Value {
	switch k.Kind {
	case KeyInt:
		return Int(k.I)
	case KeyUint:
		return Uint(k.U)
	case KeyBool:
		return Bool(k.B)
	case KeyString:
		return Str(k.S)
	default:
		return Null
	}
}

func (k Key) String() string {
	switch k.Kind {
	case KeyInt:
		return fmt.Sprintf("%d", k.I)
	case KeyUint:
		return fmt.Sprintf("%du", k.U)
	case KeyBool:
		return fmt.Sprintf("%t", k.B)
	case KeyString:
		return k.S
	default:
		return ""
	}
}

// equal reports whether two keys denote the same map entry. Integer-family
// keys compare across Int/Uint the way equality.go compares Int/Uint
// values, so map[1] and map[1u] address the same entry.
func (k Key) equal(other Key) bool {
	switch k.Kind {
	case KeyInt:
		switch other.Kind {
		case KeyInt:
			return k.I == other.I
		case KeyUint:
			return other.U <= uint64(1<<63-1) && k.I >= 0 && uint64(k.I) == other.U
		}
		return false
	case KeyUint:
		switch other.Kind {
		case KeyUint:
			return k.U == other.U
		case KeyInt:
			return other.equal(k)
		}
		return false
	case KeyBool:
		return other.Kind == KeyBool && k.B == other.B
	case KeyString:
		return other.Kind == KeyString && k.S == other.S
	default:
		return false
	}
}

// hash computes an FNV-1a hash over the key's own bytes, with no kind tag, so
// that equal keys of different KeyKind (e.g. IntKey(1) and UintKey(1))
// still collide into the same HAMT bucket and get resolved by equal during
// the bucket scan.
func (k Key) hash() uint32 {
	h := uint32(2166136261)
	write := func(b byte) {
		h ^= uint32(b)
		h *= 16777619
	}
	switch k.Kind {
	case KeyInt:
		u := uint64(k.I)
		for i := 0; i < 8; i++ {
			write(byte(u >> (8 * i)))
		}
	case KeyUint:
		for i := 0; i < 8; i++ {
			write(byte(k.U >> (8 * i)))
		}
	case KeyBool:
		if k.B {
			write(1)
		} else {
			write(0)
		}
	case KeyString:
		for i := 0; i < len(k.S); i++ {
			write(k.S[i])
		}
	}
	return h
}
