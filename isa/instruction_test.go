package isa

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstructionRoundTripArity(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name string
		ins  Instruction
	}{
		{"add", Instruction{Opcode: Add, Out: R1, HasOut: true, Arg1: R2, HasArg1: true, Arg2: RegOperand(R3), HasArg2: true}},
		{"je_const", Instruction{Opcode: Je, Arg1: R1, HasArg1: true, Arg2: ConstOperand(42), HasArg2: true}},
		{"jmp", Instruction{Opcode: Jmp, Arg2: ConstOperand(7), HasArg2: true}},
		{"ld", Instruction{Opcode: Ld, Out: SP, HasOut: true, Arg2: ConstOperand(3), HasArg2: true}},
		{"sv_reg", Instruction{Opcode: Sv, Arg1: R1, HasArg1: true, Arg2: RegOperand(R2), HasArg2: true}},
		{"in", Instruction{Opcode: In, Out: R4, HasOut: true}},
		{"out", Instruction{Opcode: Out, Arg2: RegOperand(R1), HasArg2: true}},
		{"halt", Instruction{Opcode: Halt}},
		{"iret", Instruction{Opcode: Iret}},
	}

	for _, entry := range table {
		assert.NoError(entry.ins.Validate(), entry.name)

		raw, err := json.Marshal(entry.ins)
		assert.NoError(err, entry.name)

		var decoded Instruction
		assert.NoError(json.Unmarshal(raw, &decoded), entry.name)
		assert.Equal(entry.ins, decoded, entry.name)

		shape, ok := ShapeOf(entry.ins.Opcode)
		assert.True(ok, entry.name)
		assert.Equal(shape.Out, decoded.HasOut, entry.name)
		assert.Equal(shape.Arg1, decoded.HasArg1, entry.name)
		assert.Equal(shape.Arg2, decoded.HasArg2, entry.name)
	}
}

func TestInstructionValidateRejectsR0Out(t *testing.T) {
	assert := assert.New(t)

	ins := Instruction{Opcode: Add, Out: R0, HasOut: true, Arg1: R1, HasArg1: true, Arg2: RegOperand(R2), HasArg2: true}
	assert.Error(ins.Validate())
}

func TestInstructionValidateRejectsShapeMismatch(t *testing.T) {
	assert := assert.New(t)

	ins := Instruction{Opcode: Halt, HasArg2: true, Arg2: ConstOperand(1)}
	assert.Error(ins.Validate())
}

func TestParseOpcodeAndRegister(t *testing.T) {
	assert := assert.New(t)

	op, ok := ParseOpcode("mul")
	assert.True(ok)
	assert.Equal(Mul, op)

	_, ok = ParseOpcode("nope")
	assert.False(ok)

	reg, ok := ParseRegister("sp")
	assert.True(ok)
	assert.Equal(SP, reg)
	assert.True(reg.Writable())

	assert.False(R0.Writable())
	assert.False(PC.Writable())
}
