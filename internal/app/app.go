// Package app provides the main application helpers of the interpreter and
// the disassembler.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/terminal"
	"github.com/retroenv/retrochip8/internal/window"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner prints application version information.
func PrintBanner(logger *log.Logger, name string, quiet bool, version, commit, date string) {
	if quiet {
		return
	}
	logger.Info(name, log.String("version", buildinfo.Version(version, commit, date)))
}

// PrintInfo prints the information about the program and the interpreter settings.
func PrintInfo(logger *log.Logger, opts options.Interpreter, size int) {
	if opts.Quiet {
		return
	}

	logger.Info("Running CHIP-8 program",
		log.String("file", opts.Input),
		log.Int("size", size),
		log.String("mode", opts.Mode),
		log.Int("ips", opts.InstructionsPerSecond),
	)
}

// Run loads the program and runs it with the frontend selected by the options.
// The final interpreter state is written to out in headless mode.
func Run(ctx context.Context, logger *log.Logger, opts options.Interpreter, out io.Writer) error {
	data, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	PrintInfo(logger, opts, len(data))

	var beeper chip8.Beeper
	if !opts.Mute && opts.Mode != options.ModeHeadless {
		player, err := audio.New(opts.Frequency)
		if err != nil {
			logger.Warn("Audio output not available", log.Err(err))
		} else {
			defer func() { _ = player.Close() }()
			beeper = player
		}
	}

	machine, err := chip8.New(data, config.CreateChip8Options(opts, logger, beeper)...)
	if err != nil {
		return fmt.Errorf("creating interpreter: %w", err)
	}
	cfg := config.CreateRunnerConfig(opts)

	switch opts.Mode {
	case options.ModeWindow:
		return window.Run(ctx, logger, machine, cfg, opts.Scale, opts.Panel)

	case options.ModeTerminal:
		return runTerminal(ctx, logger, machine, cfg, config.KeyHold(opts), out)

	case options.ModeHeadless:
		r, err := runner.New(cfg, logger, machine, nil, nil)
		if err != nil {
			return fmt.Errorf("creating runner: %w", err)
		}
		runErr := r.Run(ctx)
		if err := WriteState(out, machine); err != nil {
			return errors.Join(runErr, err)
		}
		return runErr

	default:
		return fmt.Errorf("unsupported mode '%s'", opts.Mode)
	}
}

func runTerminal(ctx context.Context, logger *log.Logger, machine *chip8.Chip8, cfg runner.Config,
	keyHold time.Duration, out io.Writer) error {

	term := terminal.New(os.Stdin, out, keyHold)
	if err := term.Start(); err != nil {
		return fmt.Errorf("starting terminal: %w", err)
	}
	defer func() { _ = term.Close() }()

	r, err := runner.New(cfg, logger, machine, term, term)
	if err != nil {
		return fmt.Errorf("creating runner: %w", err)
	}
	return r.Run(ctx)
}

// WriteState writes the registers and the framebuffer as text.
func WriteState(w io.Writer, machine *chip8.Chip8) error {
	state := machine.Snapshot()

	buf := &strings.Builder{}
	fmt.Fprintf(buf, "PC $%04X  I $%04X  SP $%04X  DT $%02X  ST $%02X\n",
		state.PC, state.I, state.SP, state.DelayTimer, state.SoundTimer)
	for reg, value := range state.V {
		if reg > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(buf, "V%X $%02X", reg, value)
	}
	buf.WriteString("\n\n")

	frame := machine.Framebuffer()
	for y := range chip8.ScreenHeight {
		for x := range chip8.ScreenWidth {
			if frame.Pixel(x, y) {
				buf.WriteByte('#')
			} else {
				buf.WriteByte('.')
			}
		}
		buf.WriteByte('\n')
	}

	if _, err := io.WriteString(w, buf.String()); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	return nil
}
