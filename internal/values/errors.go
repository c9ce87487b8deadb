package values

import "fmt"

// OverflowError is returned by the arithmetic operators when a checked
// operation would wrap, matching objects.rs's overflow variant: the
// message names the operator and both operands.
type OverflowError struct {
	Op       string
	Lhs, Rhs Value
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("Overflow from binary operator '%s': %s, %s", e.Op, e.Lhs, e.Rhs)
}

// DivideByZeroError is returned by `/` and `%` when the divisor is zero.
type DivideByZeroError struct {
	Op string
}

func (e *DivideByZeroError) Error() string {
	return fmt.Sprintf("Division by zero in operator '%s'", e.Op)
}

// TypeMismatchError is returned when an operator is applied to operand
// kinds it has no defined behavior for (e.g. ordering a list against a
// map).
type TypeMismatchError struct {
	Op       string
	Lhs, Rhs Value
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("No matching overload for '%s' applied to '%s' and '%s'", e.Op, e.Lhs.Kind, e.Rhs.Kind)
}

// ValuesNotComparableError is returned by Compare when an operand is a
// NaN float: NaN has no ordering relation to anything, including itself,
// so `<`/`<=`/`>`/`>=` must raise rather than silently answer false.
type ValuesNotComparableError struct {
	Op       string
	Lhs, Rhs Value
}

func (e *ValuesNotComparableError) Error() string {
	return fmt.Sprintf("'%s' not supported on NaN operand: %s, %s", e.Op, e.Lhs, e.Rhs)
}
