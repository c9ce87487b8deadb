// Package timeplugin registers the time feature functions: the Duration()/
// Timestamp() constructors and the year/month/get*/unix/now accessors,
// grounded on bel/src/functions.rs's #[cfg(feature = "time")] time module
// and its test_timestamp assertions. The crate builds this on chrono;
// Go's time package covers the same ground (RFC3339 parsing, calendar
// accessors) without needing a third-party dependency, so — like
// regexplugin — this is implemented on the standard library with that gap
// noted rather than papered over.
package timeplugin

import (
	"fmt"
	"time"

	"github.com/funvibe/bel/internal/evaluator"
	"github.com/funvibe/bel/internal/values"
)

// Register adds Duration(), Timestamp(), now(), and the year/month/get*/
// unix accessors to ctx, under the exact names functions.rs's
// test_timestamp asserts (the crate's own timestamp_year/timestamp_month/
// ... internal names are not the registered wire names).
func Register(ctx *evaluator.Context) {
	ctx.RegisterFunction(&evaluator.Function{Name: "Duration", Impl: builtinDuration})
	ctx.RegisterFunction(&evaluator.Function{Name: "Timestamp", Impl: builtinTimestamp})
	ctx.RegisterFunction(&evaluator.Function{Name: "now", Impl: builtinNow})
	ctx.RegisterFunction(&evaluator.Function{Name: "year", Impl: accessor(func(t time.Time) values.Value {
		return values.Int(int64(t.Year()))
	})})
	ctx.RegisterFunction(&evaluator.Function{Name: "month", Impl: accessor(func(t time.Time) values.Value {
		return values.Int(int64(t.Month()) - 1)
	})})
	ctx.RegisterFunction(&evaluator.Function{Name: "getDayOfYear", Impl: accessor(func(t time.Time) values.Value {
		return values.Int(int64(t.YearDay()) - 1)
	})})
	ctx.RegisterFunction(&evaluator.Function{Name: "getDayOfMonth", Impl: accessor(func(t time.Time) values.Value {
		return values.Int(int64(t.Day()) - 1)
	})})
	ctx.RegisterFunction(&evaluator.Function{Name: "getDate", Impl: accessor(func(t time.Time) values.Value {
		return values.Int(int64(t.Day()))
	})})
	ctx.RegisterFunction(&evaluator.Function{Name: "getDayOfWeek", Impl: accessor(func(t time.Time) values.Value {
		return values.Int(int64(t.Weekday()))
	})})
	ctx.RegisterFunction(&evaluator.Function{Name: "getHours", Impl: accessor(func(t time.Time) values.Value {
		return values.Int(int64(t.Hour()))
	})})
	ctx.RegisterFunction(&evaluator.Function{Name: "getMinutes", Impl: accessor(func(t time.Time) values.Value {
		return values.Int(int64(t.Minute()))
	})})
	ctx.RegisterFunction(&evaluator.Function{Name: "seconds", Impl: accessor(func(t time.Time) values.Value {
		return values.Int(int64(t.Second()))
	})})
	ctx.RegisterFunction(&evaluator.Function{Name: "milliseconds", Impl: accessor(func(t time.Time) values.Value {
		return values.Int(int64(t.Nanosecond() / int(time.Millisecond)))
	})})
	ctx.RegisterFunction(&evaluator.Function{Name: "unix", Impl: accessor(func(t time.Time) values.Value {
		return values.Int(t.Unix())
	})})
}

func builtinDuration(fc *evaluator.FunctionContext) (values.Value, error) {
	s, err := fc.StringArg(0)
	if err != nil {
		return values.Value{}, err
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return values.Value{}, fmt.Errorf("Duration: %w", err)
	}
	return values.Duration(d), nil
}

func builtinTimestamp(fc *evaluator.FunctionContext) (values.Value, error) {
	s, err := fc.StringArg(0)
	if err != nil {
		return values.Value{}, err
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return values.Value{}, fmt.Errorf("Timestamp: %w", err)
	}
	return values.Timestamp(t), nil
}

func builtinNow(fc *evaluator.FunctionContext) (values.Value, error) {
	return values.Timestamp(time.Now()), nil
}

// accessor builds a receiver-style builtin over a Timestamp value,
// factoring out the repeated This()/Kind-check shared by every
// timestamp accessor.
func accessor(field func(time.Time) values.Value) evaluator.BuiltinFunc {
	return func(fc *evaluator.FunctionContext) (values.Value, error) {
		this, err := fc.This()
		if err != nil {
			return values.Value{}, err
		}
		if this.Kind != values.KindTimestamp {
			return values.Value{}, fmt.Errorf("this accessor requires a timestamp receiver, got %s", this.Kind)
		}
		return field(this.Ts), nil
	}
}
