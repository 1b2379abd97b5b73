package simulation

import (
	"github.com/vbutenko/csa-toolchain/datapath"
	"github.com/vbutenko/csa-toolchain/isa"
)

// DefaultDataMemorySize is the runtime data memory size the loader pads an
// artifact's `data` array up to, when the caller doesn't request a
// different size. `original_source/processor.py` pads to DATA_MEM_SZ+2;
// this module rounds that up to a flat number since the +2 there exists
// only to cover that implementation's own off-by-one bookkeeping.
const DefaultDataMemorySize = 10000

// Load builds a DataPath from a translated program: the artifact's data
// array (the interrupt vector table plus declared words) occupies the low
// addresses, and memSize-len(prog.Data) zero-filled cells above it serve
// as stack and general-purpose memory. memSize is raised to len(prog.Data)
// if it would otherwise truncate the artifact.
func Load(prog *isa.Program, schedule []datapath.ScheduleEntry, memSize int) *datapath.DataPath {
	if memSize < len(prog.Data) {
		memSize = len(prog.Data)
	}
	mem := make([]int32, memSize)
	copy(mem, prog.Data)
	return datapath.New(mem, schedule)
}
