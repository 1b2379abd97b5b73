// Package datapath implements the register file, ALU, data memory and
// single external device, exposed as synchronous signal-level operations
// that the control unit drives.
package datapath

import "github.com/vbutenko/csa-toolchain/isa"

// ScheduleEntry is one (tick, char) pair from the input schedule. Entries
// are consumed in ascending tick order; ties are broken by their position
// in this slice, which preserves parse order.
type ScheduleEntry struct {
	Tick int
	Char int32
}

// DataPath holds the register file, data memory, the single external
// Device, and the internal ALU/latch state the signal operations below
// mutate. pc is stored alongside the other registers here (see
// DESIGN.md) even though the control unit is its logical owner.
type DataPath struct {
	regs [7]int32

	Memory []int32
	Device

	op1, op2, out isa.Register

	left, right, dataBus, aluBus, outputBus int32
	zeroFlag                                bool
}

// New builds a DataPath over memory (already sized and populated by the
// loader) and an ascending input schedule. sp is initialised to the last
// valid memory address, per the data model.
func New(memory []int32, schedule []ScheduleEntry) *DataPath {
	dp := &DataPath{Memory: memory, Device: Device{Schedule: schedule}}
	if len(memory) > 0 {
		dp.regs[isa.SP] = int32(len(memory) - 1)
	}
	return dp
}

// RegRead returns a register's current value; r0 always reads as zero.
func (dp *DataPath) RegRead(r isa.Register) int32 {
	if r == isa.R0 {
		return 0
	}
	return dp.regs[r]
}

func (dp *DataPath) regWrite(r isa.Register, v int32) {
	if r == isa.R0 {
		return
	}
	dp.regs[r] = v
}

// PC returns the program counter's current value.
func (dp *DataPath) PC() int32 { return dp.regs[isa.PC] }

// SetPC overwrites the program counter directly, for the control unit's
// plain fetch-increment bookkeeping between instructions.
func (dp *DataPath) SetPC(v int32) { dp.regs[isa.PC] = v }

// ZeroFlag reports whether the most recent ExecuteALU result was zero.
func (dp *DataPath) ZeroFlag() bool { return dp.zeroFlag }

// OutputBus returns the current value on the output bus.
func (dp *DataPath) OutputBus() int32 { return dp.outputBus }

// AluBus returns the current value on the ALU bus.
func (dp *DataPath) AluBus() int32 { return dp.aluBus }

// SelectOperands selects which registers drive the ALU's left input (op1),
// right input (op2), and which register LatchOutput writes to.
func (dp *DataPath) SelectOperands(op1, op2, out isa.Register) {
	dp.op1, dp.op2, dp.out = op1, op2, out
}

// LatchALU drives the ALU's inputs from the selected registers. If
// constOperand is non-nil, the right input is driven by the immediate
// instead of the op2 register.
func (dp *DataPath) LatchALU(constOperand *int32) {
	dp.left = dp.RegRead(dp.op1)
	dp.dataBus = dp.RegRead(dp.op2)
	if constOperand != nil {
		dp.right = *constOperand
	} else {
		dp.right = dp.dataBus
	}
}

// ExecuteALU computes the selected operation onto the ALU bus and sets the
// zero flag. Division and modulo by zero are fatal.
func (dp *DataPath) ExecuteALU(op AluOp) error {
	var res int64
	switch op {
	case Inc:
		res = int64(dp.left) + 1
	case Dec:
		res = int64(dp.left) - 1
	case Add:
		res = int64(dp.left) + int64(dp.right)
	case Sub:
		res = int64(dp.left) - int64(dp.right)
	case Mul:
		res = int64(dp.left) * int64(dp.right)
	case Div:
		if dp.right == 0 {
			return &ArithError{Op: "div"}
		}
		res = int64(dp.left) / int64(dp.right)
	case Mod:
		if dp.right == 0 {
			return &ArithError{Op: "mod"}
		}
		res = int64(dp.left) % int64(dp.right)
	case Cmp:
		res = int64(dp.left) - int64(dp.right)
	case Left:
		res = int64(dp.left)
	case Right:
		res = int64(dp.right)
	case Nop:
		res = 0
	}

	wrapped := int32(uint32(res))
	dp.aluBus = wrapped
	dp.outputBus = wrapped
	dp.zeroFlag = wrapped == 0
	return nil
}

// LatchOutput routes the output bus into the register selected by
// SelectOperands. Writes to r0 are silently discarded.
func (dp *DataPath) LatchOutput() {
	dp.regWrite(dp.out, dp.outputBus)
}

// ReadMemory reads data_memory[alu_bus] onto the output bus.
func (dp *DataPath) ReadMemory() error {
	idx := dp.aluBus
	if idx < 0 || int(idx) >= len(dp.Memory) {
		return &MemoryError{Address: idx}
	}
	dp.outputBus = dp.Memory[idx]
	return nil
}

// WriteMemory writes the currently selected op2 register's value into
// data_memory[alu_bus].
func (dp *DataPath) WriteMemory() error {
	idx := dp.aluBus
	if idx < 0 || int(idx) >= len(dp.Memory) {
		return &MemoryError{Address: idx}
	}
	dp.Memory[idx] = dp.dataBus
	return nil
}

// InputFromDevice places a codepoint onto the output bus path, as if read
// from the latched interrupt character.
func (dp *DataPath) InputFromDevice(ch int32) {
	dp.outputBus = ch
}

// PrintToDevice appends the low 21 bits of the ALU bus, interpreted as a
// Unicode codepoint, to the output buffer.
func (dp *DataPath) PrintToDevice() {
	dp.Send(dp.aluBus & 0x1FFFFF)
}
