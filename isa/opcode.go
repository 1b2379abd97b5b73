package isa

// Opcode is the closed enumeration of mnemonics recognized by the
// translator and simulator, plus the data-section-only pseudo-op Int.
type Opcode int

const (
	Add Opcode = iota
	Sub
	Div
	Mod
	Mul
	Cmp
	Je
	Jne
	Jmp
	Out
	In
	Ld
	Sv
	Iret
	Sti
	Cli
	Halt
	Int
)

var opcodeNames = map[Opcode]string{
	Add:  "add",
	Sub:  "sub",
	Div:  "div",
	Mod:  "mod",
	Mul:  "mul",
	Cmp:  "cmp",
	Je:   "je",
	Jne:  "jne",
	Jmp:  "jmp",
	Out:  "out",
	In:   "in",
	Ld:   "ld",
	Sv:   "sv",
	Iret: "iret",
	Sti:  "sti",
	Cli:  "cli",
	Halt: "halt",
	Int:  "int",
}

var opcodeByName map[string]Opcode

func init() {
	opcodeByName = make(map[string]Opcode, len(opcodeNames))
	for op, name := range opcodeNames {
		opcodeByName[name] = op
	}
}

func (o Opcode) String() string {
	name, ok := opcodeNames[o]
	if !ok {
		return "opcode(?)"
	}
	return name
}

// ParseOpcode resolves a mnemonic to its Opcode, reporting whether it was
// recognized.
func ParseOpcode(name string) (Opcode, bool) {
	op, ok := opcodeByName[name]
	return op, ok
}

// Arithmetic opcodes all share the out/arg1/arg2 shape and dispatch through
// the same opcode-to-ALU-operation table in controlunit.
func (o Opcode) Arithmetic() bool {
	switch o {
	case Add, Sub, Div, Mod, Mul, Cmp:
		return true
	}
	return false
}
