package jsonvalue

import (
	"encoding/json"
	"testing"

	"github.com/funvibe/bel/pkg/bel"
)

func TestDecodeScalars(t *testing.T) {
	cases := []struct {
		raw      string
		wantKind string
	}{
		{"null", "null_type"},
		{"true", "bool"},
		{"1", "int"},
		{"1.5", "double"},
		{`"hi"`, "string"},
	}
	for _, c := range cases {
		t.Run(c.raw, func(t *testing.T) {
			v, err := Decode([]byte(c.raw))
			if err != nil {
				t.Fatalf("Decode(%q): %v", c.raw, err)
			}
			if v.Kind.String() != c.wantKind {
				t.Fatalf("got kind %s, want %s", v.Kind, c.wantKind)
			}
		})
	}
}

func TestDecodeIntegralFloatBecomesInt(t *testing.T) {
	v, err := Decode([]byte("42"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v.Kind.String() != "int" || v.I != 42 {
		t.Fatalf("got %s/%d, want int/42", v.Kind, v.I)
	}
}

func TestDecodeListAndMap(t *testing.T) {
	v, err := Decode([]byte(`{"a": [1, 2, 3]}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v.Kind.String() != "map" {
		t.Fatalf("got kind %s, want map", v.Kind)
	}
	goVal, err := bel.ToGoValue(v)
	if err != nil {
		t.Fatalf("ToGoValue: %v", err)
	}
	asMap, ok := goVal.(map[string]interface{})
	if !ok {
		t.Fatalf("got %#v, want a map[string]interface{}", goVal)
	}
	list, ok := asMap["a"].([]interface{})
	if !ok || len(list) != 3 {
		t.Fatalf("got %#v, want a 3-element list under key \"a\"", asMap["a"])
	}
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	if _, err := Decode([]byte("{not json")); err == nil {
		t.Fatalf("expected an error for malformed JSON")
	}
}

func TestEncodeRoundTrips(t *testing.T) {
	raw, err := Encode(bel.ListValueOf(bel.IntValue(1), bel.IntValue(2)))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var got []int64
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("got %v, want [1 2]", got)
	}
}
