package datapath

import "github.com/vbutenko/csa-toolchain/translate"

var f = translate.From

// ArithError reports a fatal arithmetic fault: division or modulo by zero.
type ArithError struct {
	Op string
}

func (e *ArithError) Error() string {
	return f("arithmetic fault: %v by zero", e.Op)
}

// MemoryError reports an access outside the bounds of data memory.
type MemoryError struct {
	Address int32
}

func (e *MemoryError) Error() string {
	return f("memory address %v out of range", e.Address)
}
