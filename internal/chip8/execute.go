package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

const flagRegister = 0xF

// Step fetches, decodes and executes a single instruction. The program
// counter is advanced past the fetched word before the instruction executes.
// On error the state is left unchanged apart from the advanced program counter.
func (c *Chip8) Step() error {
	address := c.pc
	word, err := c.readWord(address)
	if err != nil {
		return fmt.Errorf("fetching instruction at $%04X: %w", address, err)
	}
	c.pc += 2

	ins := Decode(word)
	if err := c.execute(ins); err != nil {
		if c.logger != nil {
			c.logger.Debug("Instruction failed",
				log.Hex("address", address),
				log.Hex("opcode", word),
				log.Err(err))
		}
		if ins.Op == OpUnknown {
			return &UnknownInstructionError{Address: address, Opcode: word}
		}
		return fmt.Errorf("executing instruction $%04X at $%04X: %w", word, address, err)
	}
	return nil
}

//nolint:cyclop,funlen // one case per opcode
func (c *Chip8) execute(ins Instruction) error {
	x, y := ins.X, ins.Y

	switch ins.Op {
	case OpCls:
		return c.clearScreen()

	case OpRet:
		address, err := c.pop()
		if err != nil {
			return err
		}
		c.pc = address

	case OpJp:
		c.pc = ins.NNN

	case OpCall:
		if err := c.push(c.pc); err != nil {
			return err
		}
		c.pc = ins.NNN

	case OpSeImm:
		c.skipIf(c.v[x] == ins.NN)

	case OpSneImm:
		c.skipIf(c.v[x] != ins.NN)

	case OpSeReg:
		c.skipIf(c.v[x] == c.v[y])

	case OpSneReg:
		c.skipIf(c.v[x] != c.v[y])

	case OpLdImm:
		c.v[x] = ins.NN

	case OpAddImm:
		c.v[x] += ins.NN

	case OpLdReg:
		c.v[x] = c.v[y]

	case OpOr:
		c.v[x] |= c.v[y]

	case OpAnd:
		c.v[x] &= c.v[y]

	case OpXor:
		c.v[x] ^= c.v[y]

	// The flag is written before the result, operations on VF see the new flag.
	case OpAddReg:
		c.v[flagRegister] = boolToByte(uint16(c.v[x])+uint16(c.v[y]) > 0xFF)
		c.v[x] += c.v[y]

	case OpSub:
		c.v[flagRegister] = boolToByte(c.v[x] > c.v[y])
		c.v[x] -= c.v[y]

	case OpShr:
		c.v[flagRegister] = c.v[x] & 0x01
		c.v[y] >>= 1

	case OpSubn:
		c.v[flagRegister] = boolToByte(c.v[y] > c.v[x])
		c.v[y] -= c.v[x]

	case OpShl:
		c.v[flagRegister] = boolToByte(c.v[x]&0x0F != 0)
		c.v[x] <<= 1

	case OpLdI:
		c.i = ins.NNN

	case OpJpV0:
		c.pc = ins.NNN + uint16(c.v[0])

	case OpRnd:
		c.v[x] = byte(c.rng.Uint32N(256)) & ins.NN

	case OpDrw:
		return c.drawSprite(c.v[x], c.v[y], ins.N)

	case OpSkp:
		c.skipIf(c.KeyPressed(c.v[x]))

	case OpSknp:
		c.skipIf(!c.KeyPressed(c.v[x]))

	default:
		return c.executeMisc(ins)
	}
	return nil
}

func (c *Chip8) executeMisc(ins Instruction) error {
	x := ins.X

	switch ins.Op {
	case OpLdVxDT:
		c.v[x] = c.delayTimer

	case OpLdVxK:
		c.waitForKey(x)

	case OpLdDTVx:
		c.delayTimer = c.v[x]

	case OpLdSTVx:
		c.soundTimer = c.v[x]

	case OpAddI:
		c.i += uint16(c.v[x])

	case OpLdF:
		c.i = uint16(c.v[x]) * FontGlyphSize

	case OpLdB:
		if err := checkRange(c.i, 3); err != nil {
			return err
		}
		value := c.v[x]
		c.memory[c.i] = value / 100
		c.memory[c.i+1] = (value / 10) % 10
		c.memory[c.i+2] = value % 10

	case OpLdIVx:
		if err := checkRange(c.i, int(x)+1); err != nil {
			return err
		}
		copy(c.memory[c.i:], c.v[:x+1])

	case OpLdVxI:
		if err := checkRange(c.i, int(x)+1); err != nil {
			return err
		}
		copy(c.v[:x+1], c.memory[c.i:])

	default:
		return ErrUnknownInstruction
	}
	return nil
}

func (c *Chip8) skipIf(condition bool) {
	if condition {
		c.pc += 2
	}
}

// waitForKey stores the lowest pressed key in register x. If no key is
// pressed the program counter is rewound so the instruction executes again.
func (c *Chip8) waitForKey(x byte) {
	for key := range byte(KeyCount) {
		if c.KeyPressed(key) {
			c.v[x] = key
			return
		}
	}
	c.pc -= 2
}

func (c *Chip8) clearScreen() error {
	for index := range ScreenWidth * ScreenHeight {
		if err := c.screen.Write(index, 0); err != nil {
			return fmt.Errorf("clearing framebuffer: %w", err)
		}
	}
	c.redraw = true
	return nil
}

// drawSprite XORs a sprite of the given number of rows from memory at I onto
// the framebuffer. Pixels wrap around the screen edges. VF is set to 1 if a
// set pixel got cleared.
func (c *Chip8) drawSprite(startX, startY, rows byte) error {
	if err := checkRange(c.i, int(rows)); err != nil {
		return err
	}

	c.v[flagRegister] = 0
	for row := range int(rows) {
		line := c.memory[int(c.i)+row]
		y := (int(startY) + row) % ScreenHeight

		for col := range 8 {
			x := (int(startX) + col) % ScreenWidth
			index := y*ScreenWidth + x
			if (line>>(7-col))&1 == 0 {
				continue
			}

			old, err := c.screen.Read(index)
			if err != nil {
				return fmt.Errorf("reading framebuffer: %w", err)
			}

			c.redraw = true
			if old == 1 {
				c.v[flagRegister] = 1
			}
			if err := c.screen.Write(index, old^1); err != nil {
				return fmt.Errorf("writing framebuffer: %w", err)
			}
		}
	}
	return nil
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
