package bel

import (
	"testing"
)

func TestCompileAndExecute(t *testing.T) {
	program, errs := Compile("1 + 2")
	if errs != nil {
		t.Fatalf("Compile: %v", errs)
	}
	got, err := program.Execute(NewDefaultContext())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.I != 3 {
		t.Fatalf("got %v, want 3", got)
	}
}

func TestCompileReturnsParseErrors(t *testing.T) {
	program, errs := Compile("1 +")
	if errs == nil {
		t.Fatalf("expected parse errors for incomplete input")
	}
	if program != nil {
		t.Fatalf("expected a nil Program when Compile fails")
	}
	if errs.Error() == "" {
		t.Fatalf("expected a non-empty error message")
	}
}

func TestReferences(t *testing.T) {
	program, errs := Compile("x + y.length()")
	if errs != nil {
		t.Fatalf("Compile: %v", errs)
	}
	refs := program.References()
	if !refs.HasVariable("x") || !refs.HasVariable("y") {
		t.Fatalf("got variables %v, want x and y", refs.Variables)
	}
	if refs.HasVariable("z") {
		t.Fatalf("did not expect z among references")
	}
}

func TestExecuteWithVariables(t *testing.T) {
	program, errs := Compile("x + y")
	if errs != nil {
		t.Fatalf("Compile: %v", errs)
	}
	ctx := NewDefaultContext().WithVariables(map[string]Value{
		"x": IntValue(1),
		"y": IntValue(2),
	})
	got, err := program.Execute(ctx)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.I != 3 {
		t.Fatalf("got %v, want 3", got)
	}
}

func TestWithVariableChaining(t *testing.T) {
	program, errs := Compile("x + y")
	if errs != nil {
		t.Fatalf("Compile: %v", errs)
	}
	ctx := NewDefaultContext().WithVariable("x", IntValue(10)).WithVariable("y", IntValue(5))
	got, err := program.Execute(ctx)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.I != 15 {
		t.Fatalf("got %v, want 15", got)
	}
}

func TestEmptyContextHasNoStandardLibrary(t *testing.T) {
	program, errs := Compile(`"x".length()`)
	if errs != nil {
		t.Fatalf("Compile: %v", errs)
	}
	if _, err := program.Execute(NewEmptyContext()); err == nil {
		t.Fatalf("expected an error: length() is not registered on an empty Context")
	}
}

func TestPluginOptionsAreOptIn(t *testing.T) {
	program, errs := Compile(`"hello".matches(Regex("^h"))`)
	if errs != nil {
		t.Fatalf("Compile: %v", errs)
	}
	if _, err := program.Execute(NewDefaultContext()); err == nil {
		t.Fatalf("expected an error: matches() should not be registered without WithRegex()")
	}
	got, err := program.Execute(NewDefaultContext(WithRegex()))
	if err != nil {
		t.Fatalf("Execute with WithRegex(): %v", err)
	}
	if !got.B {
		t.Fatalf("got %v, want true", got)
	}
}

func TestRegisterFunction(t *testing.T) {
	ctx := NewDefaultContext()
	ctx.RegisterFunction("double", func(fc *FunctionContext) (Value, error) {
		v, err := fc.Arg(0)
		if err != nil {
			return Value{}, err
		}
		return IntValue(v.I * 2), nil
	})
	program, errs := Compile("double(21)")
	if errs != nil {
		t.Fatalf("Compile: %v", errs)
	}
	got, err := program.Execute(ctx)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.I != 42 {
		t.Fatalf("got %v, want 42", got)
	}
}

func TestToGoValueScalars(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want interface{}
	}{
		{"null", NullValue, nil},
		{"bool", BoolValue(true), true},
		{"int", IntValue(-7), int64(-7)},
		{"uint", UintValue(7), uint64(7)},
		{"float", FloatValue(1.5), float64(1.5)},
		{"string", StringValue("hi"), "hi"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ToGoValue(c.v)
			if err != nil {
				t.Fatalf("ToGoValue: %v", err)
			}
			if got != c.want {
				t.Fatalf("got %#v, want %#v", got, c.want)
			}
		})
	}
}

func TestToGoValueListAndMap(t *testing.T) {
	list := ListValueOf(IntValue(1), IntValue(2))
	got, err := ToGoValue(list)
	if err != nil {
		t.Fatalf("ToGoValue: %v", err)
	}
	slice, ok := got.([]interface{})
	if !ok || len(slice) != 2 {
		t.Fatalf("got %#v, want a 2-element []interface{}", got)
	}

	m := MapValueOf(map[string]Value{"a": IntValue(1)})
	got, err = ToGoValue(m)
	if err != nil {
		t.Fatalf("ToGoValue: %v", err)
	}
	asMap, ok := got.(map[string]interface{})
	if !ok || asMap["a"] != int64(1) {
		t.Fatalf("got %#v, want map[a:1]", got)
	}
}

func TestToGoValueBytes(t *testing.T) {
	got, err := ToGoValue(BytesValue([]byte{1, 2, 3}))
	if err != nil {
		t.Fatalf("ToGoValue: %v", err)
	}
	bs, ok := got.([]byte)
	if !ok || len(bs) != 3 {
		t.Fatalf("got %#v, want a 3-byte slice", got)
	}
}
