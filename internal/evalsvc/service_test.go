package evalsvc

import (
	"context"
	"encoding/json"
	"testing"
)

func TestEvaluateArithmetic(t *testing.T) {
	svc := &Service{}
	resp, err := svc.Evaluate(context.Background(), &EvaluateRequest{Source: "1 + 2"})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if resp.Error != "" {
		t.Fatalf("got response error %q, want none", resp.Error)
	}
	var got int64
	if err := json.Unmarshal(resp.Result, &got); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if got != 3 {
		t.Fatalf("got %d, want 3", got)
	}
}

func TestEvaluateBindsVariables(t *testing.T) {
	svc := &Service{}
	req := &EvaluateRequest{
		Source: "x + y",
		Variables: map[string]json.RawMessage{
			"x": json.RawMessage("10"),
			"y": json.RawMessage("5"),
		},
	}
	resp, err := svc.Evaluate(context.Background(), req)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	var got int64
	if err := json.Unmarshal(resp.Result, &got); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if got != 15 {
		t.Fatalf("got %d, want 15", got)
	}
}

func TestEvaluateRejectsBadSource(t *testing.T) {
	svc := &Service{}
	if _, err := svc.Evaluate(context.Background(), &EvaluateRequest{Source: "1 +"}); err == nil {
		t.Fatalf("expected an error for malformed source")
	}
}

func TestEvaluateRejectsUnknownPlugin(t *testing.T) {
	svc := &Service{}
	req := &EvaluateRequest{Source: "1", Plugins: []string{"not-a-real-plugin"}}
	if _, err := svc.Evaluate(context.Background(), req); err == nil {
		t.Fatalf("expected an error for an unknown plug-in name")
	}
}

func TestEvaluateEnablesRequestedPlugin(t *testing.T) {
	svc := &Service{}
	req := &EvaluateRequest{Source: `"hello".matches(Regex("^h"))`, Plugins: []string{"regex"}}
	resp, err := svc.Evaluate(context.Background(), req)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	var got bool
	if err := json.Unmarshal(resp.Result, &got); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if !got {
		t.Fatalf("got false, want true")
	}
}

func TestEvaluateReportsRuntimeErrorInResponse(t *testing.T) {
	svc := &Service{}
	resp, err := svc.Evaluate(context.Background(), &EvaluateRequest{Source: "undeclared_var"})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if resp.Error == "" {
		t.Fatalf("expected a runtime error in the response for an undeclared variable")
	}
}
