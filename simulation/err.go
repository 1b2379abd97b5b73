package simulation

import "github.com/vbutenko/csa-toolchain/translate"

var f = translate.From

// BudgetError reports that the tick budget was exhausted before the
// program reached halt. The simulator stops and the harness reports this
// as a fatal error, same as any other runtime fault.
type BudgetError struct {
	Budget int
}

func (e *BudgetError) Error() string {
	return f("tick budget of %v exceeded before halt", e.Budget)
}

// ScheduleError reports a malformed input-schedule entry: bad JSON shape,
// a tick that isn't an integer, or a char that isn't exactly one codepoint.
// Index is -1 when the fault is in the schedule's outer array shape, not a
// single entry.
type ScheduleError struct {
	Index int
	Err   error
}

func (e *ScheduleError) Error() string {
	if e.Index < 0 {
		return f("input schedule: %v", e.Err)
	}
	return f("input schedule entry %d: %v", e.Index, e.Err)
}

func (e *ScheduleError) Unwrap() error {
	return e.Err
}

// CodepointError reports an input-schedule char field that isn't exactly
// one Unicode codepoint.
type CodepointError struct {
	Value string
}

func (e *CodepointError) Error() string {
	return f("%q is not a single codepoint", e.Value)
}
