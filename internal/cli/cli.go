// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
)

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	usage string
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage line and the flag defaults.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: %s\n\n", e.usage)
	if e.flags != nil {
		e.flags.SetOutput(os.Stdout)
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

const (
	disasmUsage      = "chip8disasm [options] <file to disassemble>"
	interpreterUsage = "retrochip8 [options] <program file>"
)

// ParseFlags parses the disassembler command line flags and returns program and disassembler options
func ParseFlags() (options.Program, options.Disassembler, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts options.Program
	readOptionFlags(flags, &opts)
	disasmOptions := options.NewDisassembler()
	noHexComments, noOffsets := readDisasmOptionFlags(flags, &disasmOptions)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Batch == "") {
		return opts, options.Disassembler{}, newUsageError(flags, disasmUsage, err)
	}

	if err := validateArgs(flags, disasmUsage, args, "file to disassemble"); err != nil {
		return opts, options.Disassembler{}, err
	}

	if opts.Batch == "" {
		opts.Input = args[0]
	}

	// apply inverse logic for hex comments and offsets
	disasmOptions.HexComments = !*noHexComments
	disasmOptions.OffsetComments = !*noOffsets

	return opts, disasmOptions, nil
}

// ParseInterpreterFlags parses the interpreter command line flags.
func ParseInterpreterFlags() (options.Interpreter, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts options.Interpreter
	seed := readInterpreterFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, newUsageError(flags, interpreterUsage, err)
	}

	if err := validateArgs(flags, interpreterUsage, args, "program file"); err != nil {
		return opts, err
	}
	opts.Input = args[0]

	// 0 is a valid seed, only a given seed replaces the time based one
	flags.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.Seed = seed
		}
	})

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

func newUsageError(flags *flag.FlagSet, usage string, err error) *UsageError {
	usageErr := &UsageError{flags: flags, usage: usage, msg: "missing input file"}
	if err != nil {
		usageErr.msg = err.Error()
	}
	return usageErr
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, usage string, args []string, name string) error {
	for i, arg := range args {
		if i > 0 && strings.HasPrefix(arg, "-") {
			return &UsageError{
				flags: flags,
				usage: usage,
				msg:   fmt.Sprintf("Potential argument %s found after %s, please pass the %s as last argument", arg, name, name),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Interpreter) error {
	opts.Mode = strings.ToLower(opts.Mode)
	validModes := []string{options.ModeWindow, options.ModeTerminal, options.ModeHeadless}
	if !slices.Contains(validModes, opts.Mode) {
		return fmt.Errorf("unsupported mode: %s. Valid options: %s",
			opts.Mode, strings.Join(validModes, ", "))
	}

	opts.OnError = strings.ToLower(opts.OnError)
	validPolicies := []string{options.OnErrorHalt, options.OnErrorSkip}
	if !slices.Contains(validPolicies, opts.OnError) {
		return fmt.Errorf("unsupported error policy: %s. Valid options: %s",
			opts.OnError, strings.Join(validPolicies, ", "))
	}

	switch {
	case opts.InstructionsPerSecond <= 0:
		return fmt.Errorf("invalid instructions per second: %d", opts.InstructionsPerSecond)
	case opts.Frames < 0:
		return fmt.Errorf("invalid frame count: %d", opts.Frames)
	case opts.Scale <= 0:
		return fmt.Errorf("invalid scale: %d", opts.Scale)
	case opts.Frequency <= 0:
		return fmt.Errorf("invalid tone frequency: %d", opts.Frequency)
	case opts.KeyHoldMS <= 0:
		return fmt.Errorf("invalid key hold time: %d", opts.KeyHoldMS)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Output, "o", "", "name of the output .asm file, printed on console if no name given")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically .asm file naming, for example *.ch8")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

func readDisasmOptionFlags(flags *flag.FlagSet, opts *options.Disassembler) (*bool, *bool) {
	noHexComments := flags.Bool("nohexcomments", false, "do not output opcode bytes as hex values in comments")
	noOffsets := flags.Bool("nooffsets", false, "do not output offsets in comments")
	flags.BoolVar(&opts.ZeroBytes, "z", false, "output the trailing zero bytes of the program")
	return noHexComments, noOffsets
}

func readInterpreterFlags(flags *flag.FlagSet, opts *options.Interpreter) *uint64 {
	flags.StringVar(&opts.Mode, "mode", options.ModeWindow, "frontend to use (window/terminal/headless)")
	flags.IntVar(&opts.InstructionsPerSecond, "ips", 700, "instructions executed per second")
	flags.IntVar(&opts.Frames, "frames", 0, "number of frames to run, 0 runs until quit (headless mode defaults to 600)")
	flags.StringVar(&opts.OnError, "onerror", options.OnErrorHalt, "handling of unknown instructions (halt/skip)")
	seed := flags.Uint64("seed", 0, "random number generator seed, a time based seed is used if not given")
	flags.IntVar(&opts.Scale, "scale", 10, "window pixel scale")
	flags.BoolVar(&opts.Panel, "panel", false, "show the debug panel on start, toggled with F1")
	flags.IntVar(&opts.Frequency, "freq", 440, "tone frequency in Hz")
	flags.BoolVar(&opts.Mute, "mute", false, "disable the tone output")
	flags.IntVar(&opts.KeyHoldMS, "keyhold", 150, "time in milliseconds that a key stays pressed in terminal mode")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	return seed
}
