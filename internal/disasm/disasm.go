// Package disasm implements a CHIP-8 program disassembler that outputs an
// assembly listing.
package disasm

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/program"
	"github.com/retroenv/retrochip8/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// Disasm implements a disassembler.
type Disasm struct {
	logger  *log.Logger
	options options.Disassembler

	data []byte
	app  *program.Program

	// index of the offset for every program address that starts an offset
	offsetIndex map[uint16]int
}

// New creates a new disassembler for the program image.
func New(logger *log.Logger, data []byte, options options.Disassembler) (*Disasm, error) {
	if len(data) > chip8.MaxProgramSize {
		return nil, fmt.Errorf("%w: %d bytes", chip8.ErrProgramTooLarge, len(data))
	}

	return &Disasm{
		logger:      logger,
		options:     options,
		data:        data,
		app:         program.New(data, chip8.ProgramStart),
		offsetIndex: map[uint16]int{},
	}, nil
}

// Process disassembles the program and writes the listing to the writer.
func (dis *Disasm) Process(ctx context.Context, w io.Writer) (*program.Program, error) {
	if err := dis.parse(ctx); err != nil {
		return nil, err
	}
	dis.processDestinations()
	if err := dis.processComments(); err != nil {
		return nil, err
	}

	opts := writer.Options{
		OffsetComments: dis.options.OffsetComments,
		ZeroBytes:      dis.options.ZeroBytes,
	}
	if err := writer.New(dis.app, w, opts).Write(); err != nil {
		return nil, fmt.Errorf("writing listing: %w", err)
	}
	return dis.app, nil
}

// parse decodes the program image in a linear sweep two bytes at a time.
func (dis *Disasm) parse(ctx context.Context) error {
	for index := 0; index < len(dis.data); index += 2 {
		if index%0x100 == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("parsing program: %w", err)
			}
		}

		address := uint16(chip8.ProgramStart + index)
		offset := program.Offset{Address: address}

		if index+1 >= len(dis.data) {
			offset.Data = dis.data[index : index+1]
			offset.SetType(program.DataOffset)
			dis.addOffset(offset)
			continue
		}

		word := uint16(dis.data[index])<<8 | uint16(dis.data[index+1])
		offset.Data = dis.data[index : index+2]

		ins := chip8.Decode(word)
		if ins.Op == chip8.OpUnknown {
			dis.logger.Debug("Unknown instruction",
				log.Hex("address", address),
				log.Hex("opcode", word))
			offset.SetType(program.DataOffset)
		} else {
			offset.SetType(program.CodeOffset)
			offset.Code = chip8.Disassemble(word)
		}
		dis.addOffset(offset)
	}
	return nil
}

func (dis *Disasm) addOffset(offset program.Offset) {
	dis.offsetIndex[offset.Address] = len(dis.app.Offsets)
	dis.app.Offsets = append(dis.app.Offsets, offset)
}

// processComments builds the comments of all code offsets.
func (dis *Disasm) processComments() error {
	for i := range dis.app.Offsets {
		offset := &dis.app.Offsets[i]
		if !offset.IsType(program.CodeOffset) {
			continue
		}

		var parts []string
		if dis.options.OffsetComments {
			parts = append(parts, fmt.Sprintf("$%04X", offset.Address))
		}
		if dis.options.HexComments {
			hexCodeComment, err := offset.HexCodeComment()
			if err != nil {
				return err
			}
			parts = append(parts, hexCodeComment)
		}

		word := uint16(offset.Data[0])<<8 | uint16(offset.Data[1])
		parts = append(parts, chip8.Describe(word))
		offset.Comment = strings.Join(parts, "  ")
	}
	return nil
}
