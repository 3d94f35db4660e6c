package chip8

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownInstruction is matched by errors returned for words that have no handler.
	ErrUnknownInstruction = errors.New("unknown instruction")
	// ErrAddressOutOfRange is returned for memory accesses outside of the 4KB image.
	ErrAddressOutOfRange = errors.New("address out of range")
	// ErrStackOverflow is returned when a call would write past the stack region.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when a return is executed on an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrInvalidKey is returned for key indexes outside of 0x0-0xF.
	ErrInvalidKey = errors.New("invalid key")
	// ErrProgramTooLarge is returned when a program does not fit into the program code region.
	ErrProgramTooLarge = errors.New("program too large")
)

// UnknownInstructionError reports a word that has no handler in its opcode group.
type UnknownInstructionError struct {
	Address uint16 // address the word was fetched from
	Opcode  uint16
}

func (e *UnknownInstructionError) Error() string {
	return fmt.Sprintf("unknown instruction $%04X at address $%04X", e.Opcode, e.Address)
}

// Is makes the error match ErrUnknownInstruction.
func (e *UnknownInstructionError) Is(target error) bool {
	return target == ErrUnknownInstruction
}
