package chip8

import (
	"encoding/binary"
	"fmt"
)

// Memory layout constants.
const (
	// MemorySize is the size of the memory image in bytes.
	MemorySize = 0x1000
	// MaxAddress is the highest valid memory address.
	MaxAddress = MemorySize - 1

	// FontStart is the address of the first font glyph.
	FontStart = 0x000
	// FontGlyphSize is the size of a single font glyph in bytes.
	FontGlyphSize = 5
	// KeyStateStart is the address of the key state bits.
	KeyStateStart = 0x050
	// ProgramStart is the address where programs are loaded and execution begins.
	ProgramStart = 0x200
	// StackStart is the address of the first stack entry.
	StackStart = 0xEA0
	// StackEnd is the first address after the stack region.
	StackEnd = 0xF00
	// FramebufferStart is the address of the framebuffer bits.
	FramebufferStart = 0xF00

	// MaxProgramSize is the size of the program code region.
	MaxProgramSize = StackStart - ProgramStart
)

// Display constants.
const (
	ScreenWidth  = 64
	ScreenHeight = 32

	// KeyCount is the number of keys of the hex key pad.
	KeyCount = 16
	// RegisterCount is the number of general purpose registers.
	RegisterCount = 16
)

// font contains the glyphs of the hex digits 0-F.
var font = [KeyCount * FontGlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// checkRange verifies that size bytes starting at address are inside the memory image.
func checkRange(address uint16, size int) error {
	if int(address)+size > MemorySize {
		return fmt.Errorf("%w: $%04X+%d", ErrAddressOutOfRange, address, size)
	}
	return nil
}

// readWord reads a big-endian 16 bit word from memory.
func (c *Chip8) readWord(address uint16) (uint16, error) {
	if err := checkRange(address, 2); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(c.memory[address:]), nil
}

// writeWord writes a big-endian 16 bit word to memory.
func (c *Chip8) writeWord(address, value uint16) error {
	if err := checkRange(address, 2); err != nil {
		return err
	}
	binary.BigEndian.PutUint16(c.memory[address:], value)
	return nil
}

// push writes a return address to the stack.
func (c *Chip8) push(value uint16) error {
	if c.sp < StackStart || c.sp+2 > StackEnd {
		return fmt.Errorf("%w: sp $%04X", ErrStackOverflow, c.sp)
	}
	if err := c.writeWord(c.sp, value); err != nil {
		return err
	}
	c.sp += 2
	return nil
}

// pop reads the last return address from the stack.
func (c *Chip8) pop() (uint16, error) {
	if c.sp < StackStart+2 || c.sp > StackEnd {
		return 0, fmt.Errorf("%w: sp $%04X", ErrStackUnderflow, c.sp)
	}
	value, err := c.readWord(c.sp - 2)
	if err != nil {
		return 0, err
	}
	c.sp -= 2
	return value, nil
}

// ReadMemory returns a copy of size bytes of memory starting at address.
func (c *Chip8) ReadMemory(address uint16, size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrAddressOutOfRange, size)
	}
	if err := checkRange(address, size); err != nil {
		return nil, err
	}
	data := make([]byte, size)
	copy(data, c.memory[address:])
	return data, nil
}
