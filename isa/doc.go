// Package isa defines the closed enumerations and instruction shapes shared
// by the translator and the simulator: opcodes, registers, operand types,
// and the operand-arity table that both consult.
package isa
