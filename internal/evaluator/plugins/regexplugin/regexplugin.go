// Package regexplugin registers the regex feature functions: the Regex(...)
// constructor and string.matches(Regex(...)), grounded on
// bel/src/functions.rs's #[cfg(feature = "regex")] module and its
// commented-out Value::Regex constructor. The crate builds this on the
// regex crate; the standard library's regexp package (RE2 syntax) is the
// closest idiomatic Go equivalent and none of the example repos import a
// third-party regex engine, so this is one of the few builtins implemented
// directly on the standard library.
package regexplugin

import (
	"fmt"
	"regexp"

	"github.com/funvibe/bel/internal/evaluator"
	"github.com/funvibe/bel/internal/values"
)

// Register adds Regex() and matches() to ctx. Like every feature plug-in,
// it is opt-in: callers that don't want regex support (and its
// compilation cost) simply don't call Register.
func Register(ctx *evaluator.Context) {
	ctx.RegisterFunction(&evaluator.Function{Name: "Regex", Impl: builtinRegex})
	ctx.RegisterFunction(&evaluator.Function{Name: "matches", Impl: builtinMatches})
}

// builtinRegex compiles its string argument into a Regex-kind Value,
// matching functions.rs's Value::Regex(regex::Regex) variant.
func builtinRegex(fc *evaluator.FunctionContext) (values.Value, error) {
	pattern, err := fc.StringArg(0)
	if err != nil {
		return values.Value{}, err
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return values.Value{}, fmt.Errorf("Regex(): '%s' not a valid regex: %w", pattern, err)
	}
	return values.Regex(re), nil
}

// builtinMatches requires a pre-compiled Regex argument (built via
// Regex(...)), not a raw string pattern, matching the spec scenario
// `"abc".matches(Regex("^[a-z]+$"))`.
func builtinMatches(fc *evaluator.FunctionContext) (values.Value, error) {
	this, err := fc.This()
	if err != nil {
		return values.Value{}, err
	}
	if this.Kind != values.KindString {
		return values.Value{}, fmt.Errorf("matches() is not defined for kind %s", this.Kind)
	}
	arg, err := fc.Arg(0)
	if err != nil {
		return values.Value{}, err
	}
	if arg.Kind != values.KindRegex {
		return values.Value{}, fmt.Errorf("matches(): argument must be Regex, got %s", arg.Kind)
	}
	return values.Bool(arg.Re.MatchString(this.S)), nil
}
