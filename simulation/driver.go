// Package simulation wires a translated program and an input schedule to
// the control unit and data path, bounding the run by a tick budget and
// collecting the output buffer and execution journal.
package simulation

import (
	"log"

	"github.com/vbutenko/csa-toolchain/controlunit"
	"github.com/vbutenko/csa-toolchain/datapath"
	"github.com/vbutenko/csa-toolchain/isa"
)

// DefaultTickBudget is the fixed upper bound guarding against
// nontermination, per the concurrency model's "implementation-defined,
// e.g. 10^6 ticks" guidance.
const DefaultTickBudget = 1_000_000

// Result is the outcome of a completed run: the device output buffer, the
// final tick/instruction counts, and the full execution journal.
type Result struct {
	Output     []int32
	InstrCount int
	Tick       int
	Journal    []controlunit.Record
}

// Run loads prog into a freshly built DataPath, drives it to completion
// with ControlUnit.Step, and returns the result. verbose logs each
// journal record to the standard logger, matching the teacher's
// Cpu.Verbose idiom. A non-nil error means the run stopped on a fatal
// fault (ArithError, MemoryError, IOError, a bad fetch) or the tick
// budget was exceeded; normal termination is halt, which is not an error.
func Run(prog *isa.Program, schedule []datapath.ScheduleEntry, budget int, verbose bool) (*Result, error) {
	dp := Load(prog, schedule, DefaultDataMemorySize)
	cu := controlunit.New(prog.Code, dp)

	for {
		if cu.Tick() > budget {
			return nil, &BudgetError{Budget: budget}
		}

		reason, err := cu.Step()
		if err != nil {
			return nil, err
		}

		if verbose && len(cu.Journal) > 0 {
			rec := cu.Journal[len(cu.Journal)-1]
			log.Printf("simulation: instr=%d tick=%d pc=%d op=%v sp=%d r1=%d r2=%d r3=%d r4=%d int=%v",
				rec.InstrCount, rec.Tick, rec.PC, rec.Opcode, rec.SP, rec.R1, rec.R2, rec.R3, rec.R4, rec.InInterrupt)
		}

		if reason == controlunit.Halted {
			return &Result{
				Output:     dp.Output,
				InstrCount: cu.InstrCount(),
				Tick:       cu.Tick(),
				Journal:    cu.Journal,
			}, nil
		}
	}
}
