package controlunit

import "github.com/vbutenko/csa-toolchain/translate"

var f = translate.From

// IOError reports that `in` executed with no latched interrupt character
// pending. Per the concurrency model this is fatal, not a wait.
type IOError struct{}

func (e *IOError) Error() string {
	return f("in: no latched interrupt character pending")
}

// FetchError reports a program counter outside instruction memory's bounds,
// reached via a jmp/je/jne/iret target that the translator could not have
// validated statically.
type FetchError struct {
	PC int32
}

func (e *FetchError) Error() string {
	return f("fetch: pc %v is outside instruction memory", e.PC)
}
