package chip8

import "github.com/retroenv/retrogolib/arch/cpu/chip8"

// Op identifies a decoded instruction.
type Op uint8

// Instruction opcodes, named after their assembly mnemonic and operands.
const (
	OpUnknown Op = iota
	OpCls        // 00E0
	OpRet        // 00EE
	OpJp         // 1NNN
	OpCall       // 2NNN
	OpSeImm      // 3XNN
	OpSneImm     // 4XNN
	OpSeReg      // 5XY0
	OpLdImm      // 6XNN
	OpAddImm     // 7XNN
	OpLdReg      // 8XY0
	OpOr         // 8XY1
	OpAnd        // 8XY2
	OpXor        // 8XY3
	OpAddReg     // 8XY4
	OpSub        // 8XY5
	OpShr        // 8XY6
	OpSubn       // 8XY7
	OpShl        // 8XYE
	OpSneReg     // 9XY0
	OpLdI        // ANNN
	OpJpV0       // BNNN
	OpRnd        // CXNN
	OpDrw        // DXYN
	OpSkp        // EX9E
	OpSknp       // EXA1
	OpLdVxDT     // FX07
	OpLdVxK      // FX0A
	OpLdDTVx     // FX15
	OpLdSTVx     // FX18
	OpAddI       // FX1E
	OpLdF        // FX29
	OpLdB        // FX33
	OpLdIVx      // FX55
	OpLdVxI      // FX65

	opCount
)

// opcodeOps maps the opcode patterns of the instruction set to their Op.
var opcodeOps = map[chip8.OpcodeInfo]Op{
	chip8.Opcode00E0: OpCls,
	chip8.Opcode00EE: OpRet,
	chip8.Opcode1000: OpJp,
	chip8.Opcode2000: OpCall,
	chip8.Opcode3000: OpSeImm,
	chip8.Opcode4000: OpSneImm,
	chip8.Opcode5000: OpSeReg,
	chip8.Opcode6000: OpLdImm,
	chip8.Opcode7000: OpAddImm,
	chip8.Opcode8000: OpLdReg,
	chip8.Opcode8001: OpOr,
	chip8.Opcode8002: OpAnd,
	chip8.Opcode8003: OpXor,
	chip8.Opcode8004: OpAddReg,
	chip8.Opcode8005: OpSub,
	chip8.Opcode8006: OpShr,
	chip8.Opcode8007: OpSubn,
	chip8.Opcode800E: OpShl,
	chip8.Opcode9000: OpSneReg,
	chip8.OpcodeA000: OpLdI,
	chip8.OpcodeB000: OpJpV0,
	chip8.OpcodeC000: OpRnd,
	chip8.OpcodeD000: OpDrw,
	chip8.OpcodeE09E: OpSkp,
	chip8.OpcodeE0A1: OpSknp,
	chip8.OpcodeF007: OpLdVxDT,
	chip8.OpcodeF00A: OpLdVxK,
	chip8.OpcodeF015: OpLdDTVx,
	chip8.OpcodeF018: OpLdSTVx,
	chip8.OpcodeF01E: OpAddI,
	chip8.OpcodeF029: OpLdF,
	chip8.OpcodeF033: OpLdB,
	chip8.OpcodeF055: OpLdIVx,
	chip8.OpcodeF065: OpLdVxI,
}

// opInstructions links every Op to its instruction set definition.
var opInstructions = func() [opCount]*chip8.Instruction {
	var table [opCount]*chip8.Instruction
	for _, opcodes := range chip8.Opcodes {
		for _, opcode := range opcodes {
			if op, ok := opcodeOps[opcode.Info]; ok {
				table[op] = opcode.Instruction
			}
		}
	}
	return table
}()

// instruction returns the instruction set definition of the opcode, nil for
// OpUnknown.
func (o Op) instruction() *chip8.Instruction {
	if o >= opCount {
		return nil
	}
	return opInstructions[o]
}

// String returns the assembly mnemonic of the opcode.
func (o Op) String() string {
	ins := o.instruction()
	if ins == nil {
		return "unknown"
	}
	return ins.Name
}

// Instruction is a decoded 16 bit instruction word.
type Instruction struct {
	Op   Op
	Word uint16

	NNN uint16 // low 12 bits, address or constant
	NN  byte   // low 8 bits
	N   byte   // low 4 bits
	X   byte   // bits 8-11, register index
	Y   byte   // bits 4-7, register index
}

// Decode decodes a 16 bit instruction word. Words that have no defined
// meaning decode to an Instruction with Op set to OpUnknown.
func Decode(word uint16) Instruction {
	ins := Instruction{
		Word: word,
		NNN:  word & 0x0FFF,
		NN:   byte(word & 0x00FF),
		N:    byte(word & 0x000F),
		X:    byte((word & 0x0F00) >> 8),
		Y:    byte((word & 0x00F0) >> 4),
	}
	ins.Op = decodeOp(word)
	return ins
}

// decodeOp matches the word against the opcode table of its first nibble.
func decodeOp(word uint16) Op {
	pattern := dispatchPattern(word)
	for _, opcode := range chip8.Opcodes[word>>12] {
		if opcode.Info.Mask&pattern == opcode.Info.Value {
			return opcodeOps[opcode.Info]
		}
	}
	return OpUnknown
}

// dispatchPattern clears the operand bits that do not take part in selecting
// an instruction: group 0 is selected by the low byte only and the register
// compares of groups 5 and 9 accept any low nibble.
func dispatchPattern(word uint16) uint16 {
	switch word >> 12 {
	case 0x0:
		return word & 0xF0FF
	case 0x5, 0x9:
		return word & 0xFFF0
	default:
		return word
	}
}

// IsJump returns true if the instruction unconditionally transfers control.
func (i Instruction) IsJump() bool {
	return i.Op.instruction() == chip8.JpInst
}

// IsCall returns true if the instruction calls a subroutine.
func (i Instruction) IsCall() bool {
	return i.Op.instruction() == chip8.CallInst
}

// IsReturn returns true if the instruction returns from a subroutine.
func (i Instruction) IsReturn() bool {
	return i.Op.instruction() == chip8.RetInst
}

// IsSkip returns true if the instruction conditionally skips the next instruction.
func (i Instruction) IsSkip() bool {
	ins := i.Op.instruction()
	if ins == nil {
		return false
	}
	return chip8.SkipInstructions.Contains(ins.Name)
}

// IsDataReference returns true if the instruction loads an address into I.
func (i Instruction) IsDataReference() bool {
	return i.Op == OpLdI
}
