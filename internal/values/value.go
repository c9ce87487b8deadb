// Package values implements the runtime value algebra evaluated expressions
// produce: a small, closed set of kinds (Int, Uint, Float, Bool, String,
// Bytes, List, Map, Null, Function, plus the optional Duration/Timestamp/
// IP/Regex feature types) represented as a single tagged-union struct.
//
// funxy's own internal/evaluator models runtime values as an Object
// interface with one implementing type per kind (Integer, Float, Boolean,
// ...) and per-type methods (Type/Inspect/RuntimeType/Hash). That shape
// fits a general-purpose language where new object kinds (dictionaries,
// type class instances, host objects) are added over time. This engine's
// value set is closed and small, so a tagged struct dispatched on Kind in
// package-level switch functions (see equality.go, order.go, arithmetic.go)
// is the better fit: one fewer allocation per value, and adding a
// method-set to Value would just reintroduce the same switch inside each
// method body.
package values

import (
	"fmt"
	"net/netip"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Kind discriminates the variant of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindBytes
	KindList
	KindMap
	KindFunction
	KindDuration
	KindTimestamp
	KindIP
	KindRegex
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null_type"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "double"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindFunction:
		return "function"
	case KindDuration:
		return "google.protobuf.Duration"
	case KindTimestamp:
		return "google.protobuf.Timestamp"
	case KindIP:
		return "Ip"
	case KindRegex:
		return "Regex"
	default:
		return "unknown"
	}
}

// Func is a value of function kind: a function's name and arity, built by
// FunctionRef. The evaluator never produces one; an identifier that names
// a function without calling it is an undeclared reference.
type Func struct {
	Name  string
	Arity int
}

// Value is the closed set of runtime values the evaluator produces and
// consumes. Exactly one group of fields is meaningful, selected by Kind.
type Value struct {
	Kind Kind

	B  bool
	I  int64
	U  uint64
	F  float64
	S  string
	Bs []byte

	List []Value
	Map  *Map

	Fn *Func

	Dur time.Duration
	Ts  time.Time
	IP  netip.Prefix
	Re  *regexp.Regexp
}

// Null is the single null value.
var Null = Value{Kind: KindNull}

func Bool(b bool) Value    { return Value{Kind: KindBool, B: b} }
func Int(i int64) Value    { return Value{Kind: KindInt, I: i} }
func Uint(u uint64) Value  { return Value{Kind: KindUint, U: u} }
func Float(f float64) Value { return Value{Kind: KindFloat, F: f} }
func Str(s string) Value   { return Value{Kind: KindString, S: s} }
func Bytes(b []byte) Value { return Value{Kind: KindBytes, Bs: b} }
func Duration(d time.Duration) Value { return Value{Kind: KindDuration, Dur: d} }
func Timestamp(t time.Time) Value    { return Value{Kind: KindTimestamp, Ts: t} }
func IP(p netip.Prefix) Value        { return Value{Kind: KindIP, IP: p} }
func Regex(re *regexp.Regexp) Value  { return Value{Kind: KindRegex, Re: re} }

// List copies elements into a fresh slice so the caller's backing array
// can't be mutated out from under the returned Value.
func NewList(elements ...Value) Value {
	cp := make([]Value, len(elements))
	copy(cp, elements)
	return Value{Kind: KindList, List: cp}
}

func NewMap(m *Map) Value {
	return Value{Kind: KindMap, Map: m}
}

func FunctionRef(name string, arity int) Value {
	return Value{Kind: KindFunction, Fn: &Func{Name: name, Arity: arity}}
}

// IsTruthy reports the boolean value of a Bool Value. Callers are
// responsible for checking Kind first; non-bool callers are a bug in the
// evaluator, not a user error, so this panics rather than returning a
// zero value that would silently mask the mistake.
func (v Value) IsTruthy() bool {
	if v.Kind != KindBool {
		panic(fmt.Sprintf("IsTruthy called on non-bool value of kind %s", v.Kind))
	}
	return v.B
}

// String renders v for display (error messages, REPL output, logs). It is
// not the format used for any wire encoding.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprintf("%t", v.B)
	case KindInt:
		return fmt.Sprintf("%d", v.I)
	case KindUint:
		return fmt.Sprintf("%du", v.U)
	case KindFloat:
		return formatFloat(v.F)
	case KindString:
		return fmt.Sprintf("%q", v.S)
	case KindBytes:
		return fmt.Sprintf("b%q", string(v.Bs))
	case KindList:
		parts := make([]string, len(v.List))
		for i, e := range v.List {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		return v.Map.String()
	case KindFunction:
		return fmt.Sprintf("<function %s>", v.Fn.Name)
	case KindDuration:
		return v.Dur.String()
	case KindTimestamp:
		return v.Ts.Format(time.RFC3339Nano)
	case KindIP:
		return v.IP.String()
	case KindRegex:
		return fmt.Sprintf("/%s/", v.Re.String())
	default:
		return "<invalid>"
	}
}

func formatFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	if !strings.ContainsAny(s, ".eE") && !strings.Contains(s, "Inf") && !strings.Contains(s, "NaN") {
		s += ".0"
	}
	return s
}

// Map is an immutable key/value map backed by a persistent hash array
// mapped trie (see pmap.go), so List-of-Values and Map values produced
// from one evaluation can be safely shared with another without copying.
type Map struct {
	root *hamtNode
	size int
}

// EmptyMap returns the zero-entry map.
func EmptyMap() *Map {
	return &Map{}
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return m.size
}

// Put returns a new map with key bound to val; an existing binding for key
// is overwritten ("last write wins"), matching map-literal construction
// order.
func (m *Map) Put(key Key, val Value) *Map {
	var root *hamtNode
	if m != nil {
		root = m.root
	}
	newRoot, added := hamtPut(root, key.hash(), key, val, 0)
	size := 0
	if m != nil {
		size = m.size
	}
	if added {
		size++
	}
	return &Map{root: newRoot, size: size}
}

// Get looks up key, returning (value, true) if bound.
func (m *Map) Get(key Key) (Value, bool) {
	if m == nil || m.root == nil {
		return Value{}, false
	}
	return hamtGet(m.root, key.hash(), key, 0)
}

// Has reports whether key is bound.
func (m *Map) Has(key Key) bool {
	_, ok := m.Get(key)
	return ok
}

// Keys returns the map's keys in an unspecified but stable-per-map order.
func (m *Map) Keys() []Key {
	var keys []Key
	if m != nil && m.root != nil {
		hamtCollect(m.root, func(k Key, _ Value) {
			keys = append(keys, k)
		})
	}
	return keys
}

// Items returns the map's entries in an unspecified but stable-per-map
// order.
func (m *Map) Items() []MapEntry {
	var items []MapEntry
	if m != nil && m.root != nil {
		hamtCollect(m.root, func(k Key, v Value) {
			items = append(items, MapEntry{Key: k, Value: v})
		})
	}
	return items
}

// MapEntry is one key/value pair of a Map.
type MapEntry struct {
	Key   Key
	Value Value
}

func (m *Map) String() string {
	items := m.Items()
	sort.Slice(items, func(i, j int) bool { return items[i].Key.String() < items[j].Key.String() })
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.Key.String() + ": " + it.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
