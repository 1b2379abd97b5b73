package isa

import (
	"encoding/json"
)

// jsonInstruction is the wire shape of Instruction: fields are present only
// when the opcode's Shape says the slot exists, matching §6's artifact
// format field-omission rule.
type jsonInstruction struct {
	Opcode   string          `json:"opcode"`
	Out      *string         `json:"out,omitempty"`
	Arg1     *string         `json:"arg1,omitempty"`
	Arg2     json.RawMessage `json:"arg2,omitempty"`
	Arg2Type *string         `json:"arg2_type,omitempty"`
}

func (ins Instruction) MarshalJSON() ([]byte, error) {
	j := jsonInstruction{Opcode: ins.Opcode.String()}

	if ins.HasOut {
		s := ins.Out.String()
		j.Out = &s
	}
	if ins.HasArg1 {
		s := ins.Arg1.String()
		j.Arg1 = &s
	}
	if ins.HasArg2 {
		switch ins.Arg2.Type {
		case OperandRegister:
			raw, err := json.Marshal(ins.Arg2.Reg.String())
			if err != nil {
				return nil, err
			}
			j.Arg2 = raw
			t := "register"
			j.Arg2Type = &t
		case OperandConst:
			raw, err := json.Marshal(ins.Arg2.Const)
			if err != nil {
				return nil, err
			}
			j.Arg2 = raw
			t := "const"
			j.Arg2Type = &t
		}
	}

	return json.Marshal(j)
}

func (ins *Instruction) UnmarshalJSON(data []byte) error {
	var j jsonInstruction
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}

	op, ok := ParseOpcode(j.Opcode)
	if !ok {
		return &UnmarshalError{Field: "opcode", Value: j.Opcode}
	}
	*ins = Instruction{Opcode: op}

	if j.Out != nil {
		reg, ok := ParseRegister(*j.Out)
		if !ok {
			return &UnmarshalError{Field: "out", Value: *j.Out}
		}
		ins.Out, ins.HasOut = reg, true
	}
	if j.Arg1 != nil {
		reg, ok := ParseRegister(*j.Arg1)
		if !ok {
			return &UnmarshalError{Field: "arg1", Value: *j.Arg1}
		}
		ins.Arg1, ins.HasArg1 = reg, true
	}
	if j.Arg2Type != nil {
		ins.HasArg2 = true
		switch *j.Arg2Type {
		case "register":
			var name string
			if err := json.Unmarshal(j.Arg2, &name); err != nil {
				return err
			}
			reg, ok := ParseRegister(name)
			if !ok {
				return &UnmarshalError{Field: "arg2", Value: name}
			}
			ins.Arg2 = RegOperand(reg)
		case "const":
			var v int32
			if err := json.Unmarshal(j.Arg2, &v); err != nil {
				return err
			}
			ins.Arg2 = ConstOperand(v)
		default:
			return &UnmarshalError{Field: "arg2_type", Value: *j.Arg2Type}
		}
	}

	return nil
}

// Program is the machine-code artifact produced by the translator and
// consumed by the simulator: resolved code and the populated data vector
// (interrupt table, word declarations, then zero-filled general memory).
type Program struct {
	Code []Instruction `json:"code"`
	Data []int32       `json:"data"`
}
