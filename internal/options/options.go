// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input  string // input program file
	Output string // output .asm file, stdout if empty
	Batch  string // file mask for batch processing, for example *.ch8
}

// Flags contains behavior options.
type Flags struct {
	Debug bool
	Quiet bool
}

// Program options of the disassembler.
type Program struct {
	Parameters
	Flags
}

// Disassembler defines options to control the disassembler.
type Disassembler struct {
	HexComments    bool // output the instruction bytes as hex values in comments
	OffsetComments bool // output the address of each line in comments
	ZeroBytes      bool // output the trailing zero bytes of the program
}

// NewDisassembler returns a new options instance with default options.
func NewDisassembler() Disassembler {
	return Disassembler{
		HexComments:    true,
		OffsetComments: true,
	}
}

// Frontend modes of the interpreter.
const (
	ModeWindow   = "window"
	ModeTerminal = "terminal"
	ModeHeadless = "headless"
)

// Error policies of the interpreter.
const (
	OnErrorHalt = "halt"
	OnErrorSkip = "skip"
)

// Interpreter defines the options of the interpreter.
type Interpreter struct {
	Flags

	Input string // program file

	Mode                  string  // frontend, one of the Mode constants
	InstructionsPerSecond int     // execution speed
	Frames                int     // number of frames to run, 0 runs until quit
	OnError               string  // one of the OnError constants
	Seed                  *uint64 // random seed, nil uses a time based seed
	Scale                 int     // window pixel scale
	Panel                 bool    // show the debug panel on start
	Frequency             int     // tone frequency in Hz
	Mute                  bool    // disable the tone output
	KeyHoldMS             int     // terminal key hold time in milliseconds
}
