// Package controlunit implements the fetch/decode/execute loop: interrupt
// polling, program counter management and tick accounting, driving a
// DataPath by its signal-level operations rather than touching registers
// or memory directly.
package controlunit

import (
	"fmt"

	"github.com/vbutenko/csa-toolchain/datapath"
	"github.com/vbutenko/csa-toolchain/isa"
)

// StopReason is the outcome of a Step call: Running means the loop should
// continue, Halted and Errored both mean it must not call Step again.
type StopReason int

const (
	Running StopReason = iota
	Halted
	Errored
)

func (r StopReason) String() string {
	switch r {
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Errored:
		return "errored"
	}
	return "stopreason(?)"
}

// Record is one journal entry: a snapshot of CU-visible state taken after
// an instruction has fully executed and the program counter has advanced.
type Record struct {
	InstrCount  int
	Tick        int
	PC          int32
	Opcode      isa.Opcode
	R1, R2, R3, R4, SP int32
	InInterrupt bool
}

// ControlUnit owns instruction memory and a DataPath, and exposes Step as
// the unit of execution: at most one interrupt entry followed by exactly
// one user instruction.
type ControlUnit struct {
	instrMem []isa.Instruction
	dp       *datapath.DataPath

	tick       int
	instrCount int

	interruptsEnabled bool
	inInterrupt       bool

	Journal []Record
}

// New builds a ControlUnit over a resolved instruction stream and an
// already-constructed DataPath. pc, tick and instr_counter all start at
// zero; interrupts start disabled, per the data model.
func New(code []isa.Instruction, dp *datapath.DataPath) *ControlUnit {
	return &ControlUnit{instrMem: code, dp: dp}
}

func (cu *ControlUnit) Tick() int       { return cu.tick }
func (cu *ControlUnit) InstrCount() int { return cu.instrCount }

// Step runs one instruction cycle: an interrupt check, fetch, decode and
// execute, program counter update, and journal append. It returns Running
// until halt or a fatal error, never calling execute more than once.
func (cu *ControlUnit) Step() (StopReason, error) {
	if cu.interruptsEnabled && !cu.inInterrupt {
		if ch, ok := cu.dp.Receive(cu.tick); ok {
			if err := cu.enterInterrupt(ch); err != nil {
				return Errored, err
			}
		}
	}

	pc := cu.dp.PC()
	if pc < 0 || int(pc) >= len(cu.instrMem) {
		return Errored, &FetchError{PC: pc}
	}
	ins := cu.instrMem[pc]

	// halt stops the loop without advancing tick/instr_counter or journaling
	// a record, mirroring the reference driver's own counter, which is
	// incremented only after decode_and_execute_instruction returns —
	// halt raises before that point.
	if ins.Opcode == isa.Halt {
		return Halted, nil
	}

	ticks, jumped, err := cu.execute(ins)
	if err != nil {
		return Errored, err
	}
	if !jumped {
		cu.dp.SetPC(pc + 1)
	}

	cu.tick += ticks
	cu.instrCount++
	cu.appendJournal(ins)

	return Running, nil
}

// execute dispatches ins by opcode family, returning its base tick cost
// (je/jne report 1 or 2 depending on whether the branch is taken) and
// whether it already set pc itself, so Step must not add the plain +1.
func (cu *ControlUnit) execute(ins isa.Instruction) (ticks int, jumped bool, err error) {
	switch ins.Opcode {
	case isa.Add, isa.Sub, isa.Mul, isa.Div, isa.Mod, isa.Cmp:
		err = cu.execArithmetic(ins)
		return 1, false, err
	case isa.Je, isa.Jne:
		t, j, branchErr := cu.execBranch(ins)
		return t, j, branchErr
	case isa.Jmp:
		err = cu.execJump(ins)
		return 1, true, err
	case isa.Ld:
		err = cu.execLd(ins)
		return 1, false, err
	case isa.Sv:
		err = cu.execSv(ins)
		return 1, false, err
	case isa.In:
		err = cu.execIn(ins)
		return 1, false, err
	case isa.Out:
		err = cu.execOut(ins)
		return 1, false, err
	case isa.Sti:
		cu.interruptsEnabled = true
		return 1, false, nil
	case isa.Cli:
		cu.interruptsEnabled = false
		return 1, false, nil
	case isa.Iret:
		err = cu.execIret()
		return 2, true, err
	default:
		return 0, false, fmt.Errorf("controlunit: unhandled opcode %v", ins.Opcode)
	}
}

// resolveToALU drives dp so the ALU bus carries resolve(val): val's
// register value (via the LEFT path) or its immediate (via RIGHT). out is
// latched into SelectOperands so a later LatchOutput call lands there.
func resolveToALU(dp *datapath.DataPath, out isa.Register, val isa.Operand) error {
	if val.Type == isa.OperandRegister {
		dp.SelectOperands(val.Reg, isa.R0, out)
		dp.LatchALU(nil)
		return dp.ExecuteALU(datapath.Left)
	}
	dp.SelectOperands(isa.R0, isa.R0, out)
	v := val.Const
	dp.LatchALU(&v)
	return dp.ExecuteALU(datapath.Right)
}

var aluOpFor = map[isa.Opcode]datapath.AluOp{
	isa.Add: datapath.Add,
	isa.Sub: datapath.Sub,
	isa.Mul: datapath.Mul,
	isa.Div: datapath.Div,
	isa.Mod: datapath.Mod,
	isa.Cmp: datapath.Cmp,
}

// execArithmetic implements add/sub/mul/div/mod/cmp: out <- alu(arg1, arg2).
// cmp writes the signed difference like every other arithmetic op; nothing
// downstream consults the zero flag cmp also sets.
func (cu *ControlUnit) execArithmetic(ins isa.Instruction) error {
	dp := cu.dp
	if ins.Arg2.Type == isa.OperandRegister {
		dp.SelectOperands(ins.Arg1, ins.Arg2.Reg, ins.Out)
		dp.LatchALU(nil)
	} else {
		dp.SelectOperands(ins.Arg1, isa.R0, ins.Out)
		v := ins.Arg2.Const
		dp.LatchALU(&v)
	}
	if err := dp.ExecuteALU(aluOpFor[ins.Opcode]); err != nil {
		return err
	}
	dp.LatchOutput()
	return nil
}

// execBranch implements je/jne: the branch register is compared to zero
// directly, not via the ALU's zero flag, per the mnemonic table's semantics.
func (cu *ControlUnit) execBranch(ins isa.Instruction) (ticks int, jumped bool, err error) {
	isZero := cu.dp.RegRead(ins.Arg1) == 0
	taken := isZero
	if ins.Opcode == isa.Jne {
		taken = !isZero
	}
	if !taken {
		return 1, false, nil
	}
	if err := resolveToALU(cu.dp, isa.PC, ins.Arg2); err != nil {
		return 0, false, err
	}
	cu.dp.LatchOutput()
	return 2, true, nil
}

func (cu *ControlUnit) execJump(ins isa.Instruction) error {
	if err := resolveToALU(cu.dp, isa.PC, ins.Arg2); err != nil {
		return err
	}
	cu.dp.LatchOutput()
	return nil
}

// execLd implements `ld wreg val`: wreg <- data_memory[resolve(val)].
func (cu *ControlUnit) execLd(ins isa.Instruction) error {
	dp := cu.dp
	if err := resolveToALU(dp, ins.Out, ins.Arg2); err != nil {
		return err
	}
	if err := dp.ReadMemory(); err != nil {
		return err
	}
	dp.LatchOutput()
	return nil
}

// execSv implements `sv reg val`: data_memory[resolve(val)] <- reg. Unlike
// resolveToALU's callers, sv needs op2 to carry arg1's value (the word
// being stored) rather than r0, so it drives the signals directly instead
// of sharing that helper.
func (cu *ControlUnit) execSv(ins isa.Instruction) error {
	dp := cu.dp
	if ins.Arg2.Type == isa.OperandRegister {
		dp.SelectOperands(ins.Arg2.Reg, ins.Arg1, isa.R0)
		dp.LatchALU(nil)
		if err := dp.ExecuteALU(datapath.Left); err != nil {
			return err
		}
	} else {
		dp.SelectOperands(isa.R0, ins.Arg1, isa.R0)
		v := ins.Arg2.Const
		dp.LatchALU(&v)
		if err := dp.ExecuteALU(datapath.Right); err != nil {
			return err
		}
	}
	return dp.WriteMemory()
}

// execIn implements `in wreg`: wreg <- the latched interrupt character,
// emptying the latch. An empty latch is fatal, not a wait.
func (cu *ControlUnit) execIn(ins isa.Instruction) error {
	ch, ok := cu.dp.ConsumeLatch()
	if !ok {
		return &IOError{}
	}
	cu.dp.SelectOperands(isa.R0, isa.R0, ins.Out)
	cu.dp.InputFromDevice(ch)
	cu.dp.LatchOutput()
	return nil
}

// execOut implements `out val`: appends resolve(val)'s low 21 bits to the
// output buffer.
func (cu *ControlUnit) execOut(ins isa.Instruction) error {
	if err := resolveToALU(cu.dp, isa.R0, ins.Arg2); err != nil {
		return err
	}
	cu.dp.PrintToDevice()
	return nil
}

// execIret implements the 2-tick return sequence: sp++, pc <- data_memory[sp].
func (cu *ControlUnit) execIret() error {
	dp := cu.dp

	dp.SelectOperands(isa.SP, isa.SP, isa.SP)
	dp.LatchALU(nil)
	if err := dp.ExecuteALU(datapath.Inc); err != nil {
		return err
	}
	dp.LatchOutput()

	dp.SelectOperands(isa.SP, isa.R0, isa.PC)
	dp.LatchALU(nil)
	if err := dp.ExecuteALU(datapath.Left); err != nil {
		return err
	}
	if err := dp.ReadMemory(); err != nil {
		return err
	}
	dp.LatchOutput()

	cu.inInterrupt = false
	cu.interruptsEnabled = true
	return nil
}

// enterInterrupt is the 4-tick entry sequence from §4.4, explicitly called
// out in §9 as load-bearing for the test scenarios' tick totals: write pc
// to data_memory[sp] at the current top of stack, decrement sp, load pc
// from the single device's vector cell, then deliver the pending
// character to the in-latch and flip the interrupt flags. pc is saved
// before sp moves (and iret reads back after incrementing sp) so push and
// pop address the same cell.
func (cu *ControlUnit) enterInterrupt(ch int32) error {
	dp := cu.dp

	dp.SelectOperands(isa.SP, isa.PC, isa.R0)
	dp.LatchALU(nil)
	if err := dp.ExecuteALU(datapath.Left); err != nil {
		return err
	}
	if err := dp.WriteMemory(); err != nil {
		return err
	}
	cu.tick++

	dp.SelectOperands(isa.SP, isa.SP, isa.SP)
	dp.LatchALU(nil)
	if err := dp.ExecuteALU(datapath.Dec); err != nil {
		return err
	}
	dp.LatchOutput()
	cu.tick++

	zero := int32(0)
	dp.SelectOperands(isa.R0, isa.R0, isa.PC)
	dp.LatchALU(&zero)
	if err := dp.ExecuteALU(datapath.Right); err != nil {
		return err
	}
	if err := dp.ReadMemory(); err != nil {
		return err
	}
	dp.LatchOutput()
	cu.tick++

	dp.SetLatch(ch)
	cu.inInterrupt = true
	cu.interruptsEnabled = false
	cu.tick++

	return nil
}

func (cu *ControlUnit) appendJournal(ins isa.Instruction) {
	dp := cu.dp
	cu.Journal = append(cu.Journal, Record{
		InstrCount:  cu.instrCount,
		Tick:        cu.tick,
		PC:          dp.PC(),
		Opcode:      ins.Opcode,
		R1:          dp.RegRead(isa.R1),
		R2:          dp.RegRead(isa.R2),
		R3:          dp.RegRead(isa.R3),
		R4:          dp.RegRead(isa.R4),
		SP:          dp.RegRead(isa.SP),
		InInterrupt: cu.inInterrupt,
	})
}
