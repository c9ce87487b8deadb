package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/funvibe/bel/internal/jsonvalue"
)

func TestRunEvaluatesArgument(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"1 + 2"}, strings.NewReader(""), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("got exit code %d, stderr %q", code, stderr.String())
	}
	if strings.TrimSpace(stdout.String()) != "3" {
		t.Fatalf("got stdout %q, want \"3\"", stdout.String())
	}
}

func TestRunReadsStdinWhenNoArgs(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(nil, strings.NewReader(`"a" + "b"`), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("got exit code %d, stderr %q", code, stderr.String())
	}
	if strings.TrimSpace(stdout.String()) != `"ab"` {
		t.Fatalf("got stdout %q, want \"ab\"", stdout.String())
	}
}

func TestRunReportsParseErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"1 +"}, strings.NewReader(""), &stdout, &stderr)
	if code != 1 {
		t.Fatalf("got exit code %d, want 1", code)
	}
	if stderr.Len() == 0 {
		t.Fatalf("expected a diagnostic on stderr")
	}
}

func TestRunReportsEvalErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"missing_variable"}, strings.NewReader(""), &stdout, &stderr)
	if code != 1 {
		t.Fatalf("got exit code %d, want 1", code)
	}
	if stderr.Len() == 0 {
		t.Fatalf("expected a diagnostic on stderr")
	}
}

func TestRunBindsVarFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--var", "x=5", "--var", "y=7", "x + y"}, strings.NewReader(""), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("got exit code %d, stderr %q", code, stderr.String())
	}
	if strings.TrimSpace(stdout.String()) != "12" {
		t.Fatalf("got stdout %q, want \"12\"", stdout.String())
	}
}

func TestRunVarFlagRejectsMalformedInput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--var", "noequals"}, strings.NewReader(""), &stdout, &stderr)
	if code != 2 {
		t.Fatalf("got exit code %d, want 2", code)
	}
}

func TestRunEnablesRegexPluginOnlyWhenFlagged(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{`"hello".matches(Regex("^h"))`}, strings.NewReader(""), &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected matches() to fail without --regex, got exit code %d", code)
	}

	stdout.Reset()
	stderr.Reset()
	code = run([]string{"--regex", `"hello".matches(Regex("^h"))`}, strings.NewReader(""), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("got exit code %d, stderr %q", code, stderr.String())
	}
	if strings.TrimSpace(stdout.String()) != "true" {
		t.Fatalf("got stdout %q, want \"true\"", stdout.String())
	}
}

func TestVarJSONDecodesNestedShapes(t *testing.T) {
	v, err := jsonvalue.Decode([]byte(`{"a": [1, 2.5, "x", null, true]}`))
	if err != nil {
		t.Fatalf("jsonvalue.Decode: %v", err)
	}
	if v.Kind.String() != "map" {
		t.Fatalf("got kind %s, want map", v.Kind)
	}
}

func TestColorizeLeavesPlainWriterUnchanged(t *testing.T) {
	var buf bytes.Buffer
	got := colorize(&buf, "hello", 32)
	if got != "hello" {
		t.Fatalf("got %q, want unchanged \"hello\" for a non-terminal writer", got)
	}
}
