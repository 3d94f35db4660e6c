package disasm

import (
	"fmt"
	"slices"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/program"
	"github.com/retroenv/retrogolib/log"
)

const (
	dataNaming  = "_data_%04x"
	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"
)

// processDestinations marks the targets of jumps, calls and I loads, names
// them and updates the referencing instructions with the generated name.
func (dis *Disasm) processDestinations() {
	references := map[uint16][]int{} // destination to referencing offset indexes

	for i := range dis.app.Offsets {
		offset := &dis.app.Offsets[i]
		if !offset.IsType(program.CodeOffset) {
			continue
		}

		ins := chip8.Decode(uint16(offset.Data[0])<<8 | uint16(offset.Data[1]))
		var typ program.OffsetType
		switch {
		case ins.Op == chip8.OpJpV0:
			continue // target depends on V0 at runtime
		case ins.IsCall():
			typ = program.CallDestination
		case ins.IsJump():
			typ = program.JumpDestination
		case ins.IsDataReference():
			typ = program.DataReference
		default:
			continue
		}

		index, ok := dis.offsetIndex[ins.NNN]
		if !ok {
			dis.logger.Debug("Destination outside of program",
				log.Hex("address", offset.Address),
				log.Hex("destination", ins.NNN))
			continue
		}

		dis.app.Offsets[index].SetType(typ)
		references[ins.NNN] = append(references[ins.NNN], i)
	}

	destinations := make([]uint16, 0, len(references))
	for address := range references {
		destinations = append(destinations, address)
	}
	slices.Sort(destinations)

	for _, address := range destinations {
		destination := &dis.app.Offsets[dis.offsetIndex[address]]

		var name string
		switch {
		case destination.IsType(program.CallDestination):
			name = fmt.Sprintf(funcNaming, address)
		case destination.IsType(program.JumpDestination):
			name = fmt.Sprintf(labelNaming, address)
		default:
			name = fmt.Sprintf(dataNaming, address)
		}
		destination.Label = name

		for _, index := range references[address] {
			offset := &dis.app.Offsets[index]
			offset.Code = referenceCode(offset, name)
		}
	}
}

// referenceCode returns the instruction code with the address operand
// replaced by the destination name.
func referenceCode(offset *program.Offset, name string) string {
	ins := chip8.Decode(uint16(offset.Data[0])<<8 | uint16(offset.Data[1]))

	switch ins.Op {
	case chip8.OpLdI:
		return fmt.Sprintf("%s I, %s", ins.Op, name)
	default:
		return fmt.Sprintf("%s %s", ins.Op, name)
	}
}
