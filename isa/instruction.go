package isa

// Instruction is a record shaped by its Opcode: the operand slots a given
// opcode actually populates are fixed by Shape, not by which fields happen
// to be non-zero. HasOut/HasArg1/HasArg2 record which slots are present so
// a zero Register or zero Operand is never confused with an absent slot.
type Instruction struct {
	Opcode Opcode

	Out    Register
	HasOut bool

	Arg1    Register
	HasArg1 bool

	Arg2    Operand
	HasArg2 bool
}

// Shape is the fixed operand arity and base tick cost for one opcode, per
// the mnemonic table.
type Shape struct {
	Out   bool
	Arg1  bool
	Arg2  bool
	Ticks int // base cost; Je/Jne vary between 1 and 2 at execution time
}

var shapes = map[Opcode]Shape{
	Add:  {Out: true, Arg1: true, Arg2: true, Ticks: 1},
	Sub:  {Out: true, Arg1: true, Arg2: true, Ticks: 1},
	Div:  {Out: true, Arg1: true, Arg2: true, Ticks: 1},
	Mod:  {Out: true, Arg1: true, Arg2: true, Ticks: 1},
	Mul:  {Out: true, Arg1: true, Arg2: true, Ticks: 1},
	Cmp:  {Out: true, Arg1: true, Arg2: true, Ticks: 1},
	Je:   {Arg1: true, Arg2: true, Ticks: 1},
	Jne:  {Arg1: true, Arg2: true, Ticks: 1},
	Jmp:  {Arg2: true, Ticks: 1},
	Ld:   {Out: true, Arg2: true, Ticks: 1},
	Sv:   {Arg1: true, Arg2: true, Ticks: 1},
	In:   {Out: true, Ticks: 1},
	Out:  {Arg2: true, Ticks: 1},
	Sti:  {Ticks: 1},
	Cli:  {Ticks: 1},
	Halt: {Ticks: 1},
	Iret: {Ticks: 2},
}

// ShapeOf returns the fixed operand arity for op, reporting whether op is
// a known code-section opcode (Int is data-section only and has no Shape).
func ShapeOf(op Opcode) (Shape, bool) {
	s, ok := shapes[op]
	return s, ok
}

// Validate reports whether ins's populated slots exactly match op's Shape
// and every slot obeys the register-class rules from the data model:
// Out/Arg1 are never const, and a write target must be a wreg.
func (ins Instruction) Validate() error {
	shape, ok := ShapeOf(ins.Opcode)
	if !ok {
		return &ValidateError{Opcode: ins.Opcode, Err: errNotCodeSection}
	}

	if ins.HasOut != shape.Out {
		return &ValidateError{Opcode: ins.Opcode, Err: errOutSlotMismatch}
	}
	if ins.HasArg1 != shape.Arg1 {
		return &ValidateError{Opcode: ins.Opcode, Err: errArg1Mismatch}
	}
	if ins.HasArg2 != shape.Arg2 {
		return &ValidateError{Opcode: ins.Opcode, Err: errArg2Mismatch}
	}
	if ins.HasOut && !ins.Out.Writable() {
		return &ValidateError{Opcode: ins.Opcode, Err: errOutNotWritable}
	}
	return nil
}
