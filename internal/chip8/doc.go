// Package chip8 implements a CHIP-8 instruction interpreter.
//
// # Memory Layout
//
// The interpreter owns a single 4KB memory image (0x000-MaxAddress). The
// framebuffer and the key state are bit addressed regions inside the same
// image:
//   - 0x000-0x04F: font glyphs for the hex digits 0-F, 5 bytes each
//   - 0x050-0x051: key state, one bit per key
//   - 0x052-0x1FF: reserved
//   - ProgramStart-0xE9F: program code, execution starts at ProgramStart
//   - StackStart-0xEFF: call stack, 2 byte big-endian return addresses
//   - FramebufferStart-MaxAddress: 64x32 pixels, one bit per pixel
//
// # Execution
//
// Step executes exactly one instruction. The host controls pacing by calling
// Step repeatedly and calls Tick at 60 Hz to count down the delay and sound
// timers. The key wait instruction (FX0A) does not block, it rewinds the
// program counter so that the next Step executes it again.
//
// # Decoding
//
// Decode maps every 16 bit word to an Instruction. Words without a defined
// meaning decode to OpUnknown, executing them returns an error that matches
// ErrUnknownInstruction.
//
// # Concurrency
//
// A Chip8 instance is not safe for concurrent use. Hosts embedding it in a
// multi goroutine program have to serialize all calls.
//
// # Limitations
//
// Behaviors inherited from the original design:
//   - FX1E adds to I without masking; an access through I past MaxAddress fails
//   - the shift right instruction 8XY6 stores the shifted value of VY in VY
//   - the shift left instruction 8XYE sets VF from the low nibble of VX
package chip8
