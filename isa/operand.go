package isa

// OperandType tags an Operand as carrying either a register reference or
// an immediate value.
type OperandType int

const (
	OperandRegister OperandType = iota
	OperandConst
)

func (t OperandType) String() string {
	if t == OperandConst {
		return "const"
	}
	return "register"
}

// Operand is a tagged variant over "register" or "const" — the two shapes
// the arg2/val slot may take. Exactly one of Reg/Const is meaningful,
// selected by Type.
type Operand struct {
	Type  OperandType
	Reg   Register
	Const int32
}

// RegOperand builds a register-typed operand.
func RegOperand(r Register) Operand {
	return Operand{Type: OperandRegister, Reg: r}
}

// ConstOperand builds an immediate-typed operand.
func ConstOperand(v int32) Operand {
	return Operand{Type: OperandConst, Const: v}
}

// Resolve returns the operand's value: the immediate if Type is
// OperandConst, or the current value of Reg read through regOf otherwise.
func (o Operand) Resolve(regOf func(Register) int32) int32 {
	if o.Type == OperandConst {
		return o.Const
	}
	return regOf(o.Reg)
}
