package chip8

import "fmt"

// Disassemble returns the assembly representation of an instruction word,
// for example "jp $234" or "ld V1, $0A". Unknown words are returned as a
// .word directive.
//
//nolint:cyclop,funlen // one case per opcode
func Disassemble(word uint16) string {
	ins := Decode(word)
	name := ins.Op.String()

	switch ins.Op {
	case OpCls, OpRet:
		return name
	case OpJp, OpCall:
		return fmt.Sprintf("%s $%03X", name, ins.NNN)
	case OpJpV0:
		return fmt.Sprintf("%s V0, $%03X", name, ins.NNN)
	case OpSeImm, OpSneImm, OpLdImm, OpAddImm, OpRnd:
		return fmt.Sprintf("%s V%X, $%02X", name, ins.X, ins.NN)
	case OpSeReg, OpSneReg, OpLdReg, OpOr, OpAnd, OpXor, OpAddReg, OpSub, OpShr, OpSubn, OpShl:
		return fmt.Sprintf("%s V%X, V%X", name, ins.X, ins.Y)
	case OpLdI:
		return fmt.Sprintf("%s I, $%03X", name, ins.NNN)
	case OpDrw:
		return fmt.Sprintf("%s V%X, V%X, $%X", name, ins.X, ins.Y, ins.N)
	case OpSkp, OpSknp:
		return fmt.Sprintf("%s V%X", name, ins.X)
	case OpLdVxDT:
		return fmt.Sprintf("%s V%X, DT", name, ins.X)
	case OpLdVxK:
		return fmt.Sprintf("%s V%X, K", name, ins.X)
	case OpLdDTVx:
		return fmt.Sprintf("%s DT, V%X", name, ins.X)
	case OpLdSTVx:
		return fmt.Sprintf("%s ST, V%X", name, ins.X)
	case OpAddI:
		return fmt.Sprintf("%s I, V%X", name, ins.X)
	case OpLdF:
		return fmt.Sprintf("%s F, V%X", name, ins.X)
	case OpLdB:
		return fmt.Sprintf("%s B, V%X", name, ins.X)
	case OpLdIVx:
		return fmt.Sprintf("%s [I], V%X", name, ins.X)
	case OpLdVxI:
		return fmt.Sprintf("%s V%X, [I]", name, ins.X)
	default:
		return fmt.Sprintf(".word $%04X", word)
	}
}

// Describe returns a human readable description of the effect of an
// instruction word, for debug displays.
//
//nolint:cyclop,funlen // one case per opcode
func Describe(word uint16) string {
	ins := Decode(word)
	x, y := ins.X, ins.Y

	switch ins.Op {
	case OpCls:
		return "clear screen"
	case OpRet:
		return "PC = stack top"
	case OpJp:
		return fmt.Sprintf("PC = $%03X", ins.NNN)
	case OpCall:
		return fmt.Sprintf("call subroutine, PC = $%03X", ins.NNN)
	case OpSeImm:
		return fmt.Sprintf("skip if V%X == $%02X", x, ins.NN)
	case OpSneImm:
		return fmt.Sprintf("skip if V%X != $%02X", x, ins.NN)
	case OpSeReg:
		return fmt.Sprintf("skip if V%X == V%X", x, y)
	case OpSneReg:
		return fmt.Sprintf("skip if V%X != V%X", x, y)
	case OpLdImm:
		return fmt.Sprintf("V%X = $%02X", x, ins.NN)
	case OpAddImm:
		return fmt.Sprintf("V%X += $%02X", x, ins.NN)
	case OpLdReg:
		return fmt.Sprintf("V%X = V%X", x, y)
	case OpOr:
		return fmt.Sprintf("V%X |= V%X", x, y)
	case OpAnd:
		return fmt.Sprintf("V%X &= V%X", x, y)
	case OpXor:
		return fmt.Sprintf("V%X ^= V%X", x, y)
	case OpAddReg:
		return fmt.Sprintf("V%X += V%X, VF = carry", x, y)
	case OpSub:
		return fmt.Sprintf("V%X -= V%X, VF = V%X > V%X", x, y, x, y)
	case OpShr:
		return fmt.Sprintf("VF = V%X & 1, V%X >>= 1", x, y)
	case OpSubn:
		return fmt.Sprintf("V%X = V%X - V%X, VF = V%X > V%X", y, y, x, y, x)
	case OpShl:
		return fmt.Sprintf("VF = V%X & $0F != 0, V%X <<= 1", x, x)
	case OpLdI:
		return fmt.Sprintf("I = $%03X", ins.NNN)
	case OpJpV0:
		return fmt.Sprintf("PC = $%03X + V0", ins.NNN)
	case OpRnd:
		return fmt.Sprintf("V%X = rand() & $%02X", x, ins.NN)
	case OpDrw:
		return fmt.Sprintf("draw %d byte sprite at V%X, V%X", ins.N, x, y)
	case OpSkp:
		return fmt.Sprintf("skip if key V%X pressed", x)
	case OpSknp:
		return fmt.Sprintf("skip if key V%X not pressed", x)
	case OpLdVxDT:
		return fmt.Sprintf("V%X = delay timer", x)
	case OpLdVxK:
		return fmt.Sprintf("V%X = wait for key", x)
	case OpLdDTVx:
		return fmt.Sprintf("delay timer = V%X", x)
	case OpLdSTVx:
		return fmt.Sprintf("sound timer = V%X", x)
	case OpAddI:
		return fmt.Sprintf("I += V%X", x)
	case OpLdF:
		return fmt.Sprintf("I = V%X * 5, font glyph", x)
	case OpLdB:
		return fmt.Sprintf("store BCD of V%X at I", x)
	case OpLdIVx:
		return fmt.Sprintf("store V0-V%X at I", x)
	case OpLdVxI:
		return fmt.Sprintf("load V0-V%X from I", x)
	default:
		return fmt.Sprintf("unknown instruction $%04X", word)
	}
}
