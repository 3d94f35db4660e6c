// Package config handles application configuration and setup
package config

import (
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/log"
)

// DefaultHeadlessFrames is the number of frames run in headless mode if no
// frame count is given.
const DefaultHeadlessFrames = 600

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateRunnerConfig returns the runner configuration for the interpreter options.
func CreateRunnerConfig(opts options.Interpreter) runner.Config {
	cfg := runner.DefaultConfig()
	cfg.InstructionsPerSecond = opts.InstructionsPerSecond
	cfg.MaxFrames = opts.Frames

	if opts.OnError == options.OnErrorSkip {
		cfg.OnError = runner.Skip
	}

	if opts.Mode == options.ModeHeadless {
		cfg.Unthrottled = true
		if cfg.MaxFrames == 0 {
			cfg.MaxFrames = DefaultHeadlessFrames
		}
	}
	return cfg
}

// CreateChip8Options returns the interpreter options. A nil beeper disables
// the tone output.
func CreateChip8Options(opts options.Interpreter, logger *log.Logger, beeper chip8.Beeper) []chip8.Option {
	chipOpts := []chip8.Option{chip8.WithLogger(logger)}
	if opts.Seed != nil {
		chipOpts = append(chipOpts, chip8.WithRandomSeed(*opts.Seed))
	}
	if beeper != nil {
		chipOpts = append(chipOpts, chip8.WithBeeper(beeper))
	}
	return chipOpts
}

// KeyHold returns the terminal key hold duration.
func KeyHold(opts options.Interpreter) time.Duration {
	return time.Duration(opts.KeyHoldMS) * time.Millisecond
}
