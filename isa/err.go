package isa

import (
	"errors"

	"github.com/vbutenko/csa-toolchain/translate"
)

var f = translate.From

var (
	errNotCodeSection  = errors.New(f("not a code-section opcode"))
	errOutSlotMismatch = errors.New(f("out slot presence mismatch"))
	errArg1Mismatch    = errors.New(f("arg1 slot presence mismatch"))
	errArg2Mismatch    = errors.New(f("arg2 slot presence mismatch"))
	errOutNotWritable  = errors.New(f("out register is not writable"))
)

// ValidateError reports an Instruction whose populated operand slots, or
// whose out register, don't match its opcode's fixed Shape.
type ValidateError struct {
	Opcode Opcode
	Err    error
}

func (e *ValidateError) Error() string {
	return f("%v: %v", e.Opcode, e.Err)
}

func (e *ValidateError) Unwrap() error {
	return e.Err
}

// UnmarshalError reports a JSON artifact field that does not name a known
// opcode, register, or arg2_type.
type UnmarshalError struct {
	Field string
	Value string
}

func (e *UnmarshalError) Error() string {
	return f("isa: unknown %v %q", e.Field, e.Value)
}
