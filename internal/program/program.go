// Package program represents a disassembled CHIP-8 program.
package program

import (
	"fmt"
	"hash/crc32"
	"strings"
)

// Offset defines the content of an offset in a program that can represent data or code.
type Offset struct {
	Address uint16
	Data    []byte // data bytes or the opcode bytes of the instruction

	Type OffsetType

	Label   string // name of label, subroutine or data block if referenced
	Code    string // asm output of this instruction
	Comment string
}

// HexCodeComment returns the data bytes as hex string.
func (o *Offset) HexCodeComment() (string, error) {
	buf := &strings.Builder{}
	for i, b := range o.Data {
		if i > 0 {
			buf.WriteByte(' ')
		}
		if _, err := fmt.Fprintf(buf, "%02X", b); err != nil {
			return "", fmt.Errorf("writing hex comment: %w", err)
		}
	}
	return buf.String(), nil
}

// Program defines a CHIP-8 program that contains code or data.
type Program struct {
	Offsets []Offset

	CodeBaseAddress uint16
	Size            int
	Checksum        uint32 // CRC32 checksum of the program image
}

// New creates a new program for the given program image.
func New(data []byte, codeBaseAddress uint16) *Program {
	return &Program{
		CodeBaseAddress: codeBaseAddress,
		Size:            len(data),
		Checksum:        crc32.ChecksumIEEE(data),
	}
}

// LastNonZeroOffset returns the index after the last offset that contains
// a non zero byte, is labeled or is code.
func (p *Program) LastNonZeroOffset() int {
	for i := len(p.Offsets) - 1; i >= 0; i-- {
		offset := p.Offsets[i]
		if offset.Label != "" || offset.IsType(CodeOffset) {
			return i + 1
		}
		for _, b := range offset.Data {
			if b != 0 {
				return i + 1
			}
		}
	}
	return 0
}
