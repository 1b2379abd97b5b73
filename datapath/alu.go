package datapath

// AluOp is the closed enumeration of operations the ALU can perform on its
// two latched input buses.
type AluOp int

const (
	Inc AluOp = iota
	Dec
	Add
	Sub
	Mul
	Div
	Mod
	Cmp
	Left
	Right
	Nop
)

var aluOpNames = map[AluOp]string{
	Inc: "inc", Dec: "dec", Add: "add", Sub: "sub", Mul: "mul",
	Div: "div", Mod: "mod", Cmp: "cmp", Left: "left", Right: "right", Nop: "nop",
}

func (op AluOp) String() string {
	if name, ok := aluOpNames[op]; ok {
		return name
	}
	return "aluop(?)"
}
