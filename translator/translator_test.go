package translator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbutenko/csa-toolchain/isa"
)

func TestTranslateVarStyleProgram(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	source := "section data\n" +
		"  a:\n" +
		"  word 65\n" +
		"  b:\n" +
		"  word 66\n" +
		"  c:\n" +
		"  word 67\n" +
		"section text\n" +
		"  ld r1 a\n" +
		"  out r1\n" +
		"  ld r1 b\n" +
		"  out r1\n" +
		"  ld r1 c\n" +
		"  out r1\n" +
		"  halt\n"

	prog, err := Translate(source)
	require.NoError(err)

	require.Len(prog.Code, 8)
	require.Equal([]int32{0, 65, 66, 67}, prog.Data)

	for _, ins := range prog.Code {
		assert.NoError(ins.Validate())
	}

	assert.Equal(isa.Ld, prog.Code[0].Opcode)
	assert.Equal(isa.R1, prog.Code[0].Out)
	assert.Equal(isa.ConstOperand(1), prog.Code[0].Arg2)

	assert.Equal(isa.Halt, prog.Code[6].Opcode)
	assert.Equal(isa.Halt, prog.Code[7].Opcode)
}

func TestTranslateResolvesForwardJump(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	source := "section text\n" +
		"  jmp skip\n" +
		"  halt\n" +
		"  skip:\n" +
		"  halt\n"

	prog, err := Translate(source)
	require.NoError(err)
	require.Len(prog.Code, 4)

	assert.Equal(isa.Jmp, prog.Code[0].Opcode)
	assert.Equal(isa.ConstOperand(2), prog.Code[0].Arg2)
	assert.Equal(isa.Halt, prog.Code[3].Opcode)
}

func TestTranslateDuplicateLabelIsLinkError(t *testing.T) {
	require := require.New(t)

	source := "section text\n" +
		"  dup:\n" +
		"  halt\n" +
		"  dup:\n" +
		"  halt\n"

	_, err := Translate(source)
	require.Error(err)

	var linkErr *LinkError
	require.ErrorAs(err, &linkErr)
}

func TestTranslateUndefinedLabelIsLinkError(t *testing.T) {
	require := require.New(t)

	_, err := Translate("section text\n  jmp foo\n")
	require.Error(err)

	var linkErr *LinkError
	require.ErrorAs(err, &linkErr)
	require.Equal("foo", linkErr.Label)
}

func TestTranslateConstAsWriteTargetIsShapeError(t *testing.T) {
	require := require.New(t)

	_, err := Translate("section text\n  add 5 r1 r2\n")
	require.Error(err)

	var shapeErr *ShapeError
	require.ErrorAs(err, &shapeErr)
}

func TestTranslateRejectsR0AsOut(t *testing.T) {
	require := require.New(t)

	_, err := Translate("section text\n  add r0 r1 r2\n")
	require.Error(err)

	var shapeErr *ShapeError
	require.ErrorAs(err, &shapeErr)
}

func TestTranslateExpression(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	source := "section data\n" +
		"  len:\n" +
		"  word 5\n" +
		"section text\n" +
		"  ld r1 $(len - 1)\n" +
		"  halt\n"

	prog, err := Translate(source)
	require.NoError(err)
	require.Len(prog.Code, 3)
	assert.Equal(isa.ConstOperand(0), prog.Code[0].Arg2)
}

func TestTranslateInterruptVector(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	source := "section data\n" +
		"  int 0 handler\n" +
		"section text\n" +
		"  halt\n" +
		"  handler:\n" +
		"  iret\n"

	prog, err := Translate(source)
	require.NoError(err)
	assert.Equal(int32(1), prog.Data[0])
}
