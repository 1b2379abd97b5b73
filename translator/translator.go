// Package translator implements the multi-pass resolver that turns a flat
// term stream from lexer into a machine-code artifact: resolved code plus
// a populated data vector, including the interrupt vector table.
package translator

import (
	"strconv"
	"strings"

	"github.com/vbutenko/csa-toolchain/isa"
	"github.com/vbutenko/csa-toolchain/lexer"
)

// VectorCount is V, the device count. This spec covers exactly one device,
// so the interrupt vector table is always a single cell.
const VectorCount = 1

// Translate compiles source into a Program artifact. Translate is a pure,
// total function of source: the same text always yields the same artifact
// or the same error.
func Translate(source string) (*isa.Program, error) {
	terms, err := lexer.Lex(source)
	if err != nil {
		return nil, err
	}

	labels, instrTerms, wordTerms, vectorTerms, err := allocate(terms)
	if err != nil {
		return nil, err
	}

	code := make([]isa.Instruction, len(instrTerms), len(instrTerms)+1)
	for i, term := range instrTerms {
		ins, err := resolveInstr(term, labels)
		if err != nil {
			return nil, err
		}
		code[i] = ins
	}
	// Every program gets an implicit trailing halt, so a simulator never
	// runs off the end of instruction memory even if the source forgot one.
	code = append(code, isa.Instruction{Opcode: isa.Halt})

	data := make([]int32, VectorCount+len(wordTerms))
	for i, term := range wordTerms {
		v, err := resolveConst(term.Line, term.Value, labels)
		if err != nil {
			return nil, err
		}
		data[VectorCount+i] = v
	}

	for _, term := range vectorTerms {
		idx, err := resolveConst(term.Line, term.VectorIndex, labels)
		if err != nil {
			return nil, err
		}
		if idx < 0 || int(idx) >= VectorCount {
			return nil, &LinkError{Line: term.Line, Label: term.VectorIndex, Err: errVectorIndexRange}
		}
		target, err := resolveConst(term.Line, term.TargetAddr, labels)
		if err != nil {
			return nil, err
		}
		data[idx] = target
	}

	return &isa.Program{Code: code, Data: data}, nil
}

// allocate is §4.2 step 2: a single forward walk binding every label to
// the address it names and collecting, in source order, the declaration
// and instruction terms that still need operand resolution.
func allocate(terms []lexer.Term) (labels map[string]int, instrTerms, wordTerms, vectorTerms []lexer.Term, err error) {
	labels = make(map[string]int)
	section := ""
	textAddr, dataAddr := 0, VectorCount

	for _, term := range terms {
		switch term.Kind {
		case lexer.SectionText:
			section = "text"
		case lexer.SectionData:
			section = "data"
		case lexer.Label:
			if _, dup := labels[term.Name]; dup {
				return nil, nil, nil, nil, &LinkError{Line: term.Line, Label: term.Name, Err: errLabelDuplicate}
			}
			if section == "text" {
				labels[term.Name] = textAddr
			} else {
				labels[term.Name] = dataAddr
			}
		case lexer.WordDecl:
			wordTerms = append(wordTerms, term)
			dataAddr++
		case lexer.IntDecl:
			vectorTerms = append(vectorTerms, term)
		case lexer.Instr:
			instrTerms = append(instrTerms, term)
			textAddr++
		}
	}

	return labels, instrTerms, wordTerms, vectorTerms, nil
}

// resolveInstr is §4.2 steps 3-5 for a single instruction term: validate
// its operand count against the opcode's Shape, then resolve each token in
// out/arg1/arg2 positional order.
func resolveInstr(term lexer.Term, labels map[string]int) (isa.Instruction, error) {
	op, _ := isa.ParseOpcode(term.Mnemonic) // lexer already validated the mnemonic

	shape, ok := isa.ShapeOf(op)
	if !ok {
		return isa.Instruction{}, &ShapeError{Line: term.Line, Mnemonic: term.Mnemonic, Err: errNoCodeShape}
	}

	want := 0
	for _, present := range [...]bool{shape.Out, shape.Arg1, shape.Arg2} {
		if present {
			want++
		}
	}
	if len(term.Operands) != want {
		return isa.Instruction{}, &ShapeError{Line: term.Line, Mnemonic: term.Mnemonic, Err: errWrongArity}
	}

	ins := isa.Instruction{Opcode: op}
	idx := 0

	if shape.Out {
		reg, err := resolveRegisterToken(term.Operands[idx])
		if err != nil {
			return isa.Instruction{}, &ShapeError{Line: term.Line, Mnemonic: term.Mnemonic, Err: err}
		}
		if !reg.Writable() {
			return isa.Instruction{}, &ShapeError{Line: term.Line, Mnemonic: term.Mnemonic, Err: errWriteTargetNotWreg}
		}
		ins.Out, ins.HasOut = reg, true
		idx++
	}

	if shape.Arg1 {
		reg, err := resolveRegisterToken(term.Operands[idx])
		if err != nil {
			return isa.Instruction{}, &ShapeError{Line: term.Line, Mnemonic: term.Mnemonic, Err: err}
		}
		ins.Arg1, ins.HasArg1 = reg, true
		idx++
	}

	if shape.Arg2 {
		operand, err := resolveOperandToken(term.Line, term.Operands[idx], labels)
		if err != nil {
			return isa.Instruction{}, err
		}
		ins.Arg2, ins.HasArg2 = operand, true
		idx++
	}

	return ins, nil
}

func resolveRegisterToken(tok string) (isa.Register, error) {
	reg, ok := isa.ParseRegister(tok)
	if !ok {
		return 0, errNotARegister
	}
	return reg, nil
}

// resolveOperandToken resolves an arg2/val slot, which may be either a
// register or a const (label, numeric literal, character literal, or
// $(...) expression).
func resolveOperandToken(line int, tok string, labels map[string]int) (isa.Operand, error) {
	if reg, ok := isa.ParseRegister(tok); ok {
		return isa.RegOperand(reg), nil
	}
	v, err := resolveConst(line, tok, labels)
	if err != nil {
		return isa.Operand{}, err
	}
	return isa.ConstOperand(v), nil
}

// resolveConst resolves a token that must yield a definite int32: a
// character literal, a $(...) expression, a bare numeric literal, or a
// label reference.
func resolveConst(line int, tok string, labels map[string]int) (int32, error) {
	switch {
	case strings.HasPrefix(tok, "'") && strings.HasSuffix(tok, "'") && len(tok) >= 3:
		r := []rune(tok[1 : len(tok)-1])
		return int32(r[0]), nil

	case strings.HasPrefix(tok, "$(") && strings.HasSuffix(tok, ")"):
		v, err := evalExpr(tok[2:len(tok)-1], labels)
		if err != nil {
			return 0, err
		}
		return v, nil

	case isDecimalLiteral(tok):
		v, err := strconv.ParseInt(tok, 10, 32)
		if err != nil {
			return 0, &LinkError{Line: line, Label: tok, Err: err}
		}
		return int32(v), nil

	default:
		addr, ok := labels[tok]
		if !ok {
			return 0, &LinkError{Line: line, Label: tok, Err: errLabelUndefined}
		}
		return int32(addr), nil
	}
}

func isDecimalLiteral(tok string) bool {
	if tok == "" {
		return false
	}
	digits := tok
	if digits[0] == '-' {
		digits = digits[1:]
	}
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
