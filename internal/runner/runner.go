// Package runner drives an interpreter at a fixed instruction rate and
// connects it to a display and an input source.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrogolib/log"
)

// ErrQuit is returned by Frame when the input source requested to quit.
var ErrQuit = errors.New("quit requested")

// Policy defines how instruction errors are handled.
type Policy int

const (
	// Halt stops execution on the first error.
	Halt Policy = iota
	// Skip logs unknown instructions and continues with the next instruction.
	// All other errors halt.
	Skip
)

// Config of the runner.
type Config struct {
	InstructionsPerSecond int
	TimerHz               int    // timer tick and frame rate
	MaxFrames             int    // 0 runs until cancelled
	OnError               Policy // handling of instruction errors
	Unthrottled           bool   // run frames back to back without waiting for the ticker
}

// DefaultConfig returns the default runner configuration.
func DefaultConfig() Config {
	return Config{
		InstructionsPerSecond: 700,
		TimerHz:               60,
	}
}

// Machine is the interpreter interface that the runner drives.
type Machine interface {
	Step() error
	Tick()
	KeyDown(key byte) error
	KeyUp(key byte) error
	Redraw() bool
	Framebuffer() chip8.Frame
}

// Display receives the framebuffer whenever it changed.
type Display interface {
	Present(frame chip8.Frame) error
}

// Input returns the key events since the last poll and whether to quit.
type Input interface {
	Poll() ([]keypad.Event, bool)
}

// Runner executes a machine frame by frame.
type Runner struct {
	cfg     Config
	logger  *log.Logger
	machine Machine
	display Display
	input   Input

	frames int
	steps  uint64 // executed instructions
}

// New returns a new runner. Display and input are optional.
func New(cfg Config, logger *log.Logger, machine Machine, display Display, input Input) (*Runner, error) {
	if cfg.InstructionsPerSecond <= 0 {
		return nil, fmt.Errorf("invalid instructions per second %d", cfg.InstructionsPerSecond)
	}
	if cfg.TimerHz <= 0 {
		return nil, fmt.Errorf("invalid timer frequency %d", cfg.TimerHz)
	}
	if cfg.MaxFrames < 0 {
		return nil, fmt.Errorf("invalid frame limit %d", cfg.MaxFrames)
	}

	return &Runner{
		cfg:     cfg,
		logger:  logger,
		machine: machine,
		display: display,
		input:   input,
	}, nil
}

// StepsPerFrame returns the number of instructions executed per frame.
func (r *Runner) StepsPerFrame() int {
	return max(1, r.cfg.InstructionsPerSecond/r.cfg.TimerHz)
}

// Frames returns the number of executed frames.
func (r *Runner) Frames() int {
	return r.frames
}

// Steps returns the number of executed instructions, including skipped ones.
func (r *Runner) Steps() uint64 {
	return r.steps
}

// InstructionsPerSecond returns the target instruction rate.
func (r *Runner) InstructionsPerSecond() int {
	return r.cfg.InstructionsPerSecond
}

// SetInstructionsPerSecond changes the target instruction rate, it takes
// effect with the next frame.
func (r *Runner) SetInstructionsPerSecond(ips int) error {
	if ips <= 0 {
		return fmt.Errorf("invalid instructions per second %d", ips)
	}
	r.cfg.InstructionsPerSecond = ips
	return nil
}

// Frame processes pending input, executes one frame worth of instructions,
// ticks the timers once and presents the framebuffer if it changed.
func (r *Runner) Frame() error {
	if r.input != nil {
		events, quit := r.input.Poll()
		if quit {
			return ErrQuit
		}
		if err := r.applyEvents(events); err != nil {
			return err
		}
	}

	for range r.StepsPerFrame() {
		if err := r.step(); err != nil {
			return err
		}
	}
	r.machine.Tick()
	r.frames++
	return r.present()
}

func (r *Runner) present() error {
	if r.display == nil || !r.machine.Redraw() {
		return nil
	}
	if err := r.display.Present(r.machine.Framebuffer()); err != nil {
		return fmt.Errorf("presenting frame: %w", err)
	}
	return nil
}

// Step executes a single instruction without ticking the timers and presents
// the framebuffer if it changed. It is used for single stepping a paused
// program.
func (r *Runner) Step() error {
	if err := r.step(); err != nil {
		return err
	}
	return r.present()
}

// Run executes frames at the timer frequency until the context is cancelled,
// the input requests to quit or the frame limit is reached. Quitting is not
// treated as an error.
func (r *Runner) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if !r.cfg.Unthrottled {
		ticker := time.NewTicker(time.Second / time.Duration(r.cfg.TimerHz))
		defer ticker.Stop()
		tick = ticker.C
	}

	for r.cfg.MaxFrames == 0 || r.frames < r.cfg.MaxFrames {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		if err := r.Frame(); err != nil {
			if errors.Is(err, ErrQuit) {
				r.logger.Debug("Quit requested", log.Int("frames", r.frames))
				return nil
			}
			return err
		}
	}
	return nil
}

func (r *Runner) step() error {
	err := r.machine.Step()
	if err == nil {
		r.steps++
		return nil
	}

	if r.cfg.OnError == Skip && errors.Is(err, chip8.ErrUnknownInstruction) {
		r.logger.Warn("Skipping instruction", log.Err(err))
		r.steps++
		return nil
	}
	return fmt.Errorf("executing program: %w", err)
}

func (r *Runner) applyEvents(events []keypad.Event) error {
	for _, event := range events {
		var err error
		if event.Down {
			err = r.machine.KeyDown(event.Key)
		} else {
			err = r.machine.KeyUp(event.Key)
		}
		if err != nil {
			return fmt.Errorf("applying key event: %w", err)
		}
	}
	return nil
}
