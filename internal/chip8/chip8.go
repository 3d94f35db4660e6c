package chip8

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/retroenv/retrochip8/internal/bitbuffer"
	"github.com/retroenv/retrogolib/log"
)

const (
	initialPC = ProgramStart
	initialSP = StackStart
)

// Beeper receives the tone event that is emitted when the sound timer expires.
type Beeper interface {
	Beep()
}

// Option configures a Chip8 instance.
type Option func(*Chip8)

// WithRandomSeed sets the seed of the generator used by the random instruction.
// Two instances with the same seed and program produce the same execution.
func WithRandomSeed(seed uint64) Option {
	return func(c *Chip8) {
		c.seed = seed
	}
}

// WithBeeper sets the receiver of tone events.
func WithBeeper(beeper Beeper) Option {
	return func(c *Chip8) {
		c.beeper = beeper
	}
}

// WithLogger sets the logger used for diagnostic events.
func WithLogger(logger *log.Logger) Option {
	return func(c *Chip8) {
		c.logger = logger
	}
}

// Chip8 is a CHIP-8 interpreter instance.
type Chip8 struct {
	memory [MemorySize]byte
	v      [RegisterCount]byte
	i      uint16
	pc     uint16
	sp     uint16

	delayTimer byte
	soundTimer byte

	screen *bitbuffer.BitBuffer
	keys   *bitbuffer.BitBuffer
	redraw bool

	program []byte
	seed    uint64
	rng     *rand.Rand
	beeper  Beeper
	logger  *log.Logger
}

// New returns a new interpreter with the font and the given program loaded.
// The program is copied verbatim to ProgramStart.
func New(program []byte, opts ...Option) (*Chip8, error) {
	if len(program) > MaxProgramSize {
		return nil, fmt.Errorf("%w: %d bytes, maximum is %d", ErrProgramTooLarge, len(program), MaxProgramSize)
	}

	c := &Chip8{
		program: append([]byte(nil), program...),
		seed:    uint64(time.Now().UnixNano()),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.screen = bitbuffer.New(c.memory[:], FramebufferStart)
	c.keys = bitbuffer.New(c.memory[:], KeyStateStart)
	c.Reset()
	return c, nil
}

// Reset restores the initial state with the loaded program. The random
// generator is reseeded so that a reset replays the same execution.
func (c *Chip8) Reset() {
	c.memory = [MemorySize]byte{}
	copy(c.memory[FontStart:], font[:])
	copy(c.memory[ProgramStart:], c.program)

	c.v = [RegisterCount]byte{}
	c.i = 0
	c.pc = initialPC
	c.sp = initialSP
	c.delayTimer = 0
	c.soundTimer = 0
	c.redraw = true
	c.rng = rand.New(rand.NewPCG(c.seed, c.seed^0x9e3779b97f4a7c15))
}

// Tick counts down the delay and sound timers, it has to be called at 60 Hz.
// The beeper is notified when the sound timer reaches zero.
func (c *Chip8) Tick() {
	if c.delayTimer > 0 {
		c.delayTimer--
	}
	if c.soundTimer > 0 {
		c.soundTimer--
		if c.soundTimer == 0 && c.beeper != nil {
			c.beeper.Beep()
		}
	}
}

// KeyDown marks the key as pressed.
func (c *Chip8) KeyDown(key byte) error {
	return c.setKey(key, 1)
}

// KeyUp marks the key as released.
func (c *Chip8) KeyUp(key byte) error {
	return c.setKey(key, 0)
}

func (c *Chip8) setKey(key, value byte) error {
	if key >= KeyCount {
		return fmt.Errorf("%w: %d", ErrInvalidKey, key)
	}
	if err := c.keys.Write(int(key), value); err != nil {
		return fmt.Errorf("writing key state: %w", err)
	}
	return nil
}

// KeyPressed returns whether the key is currently pressed.
// Keys outside of 0x0-0xF are never pressed.
func (c *Chip8) KeyPressed(key byte) bool {
	if key >= KeyCount {
		return false
	}
	value, err := c.keys.Read(int(key))
	return err == nil && value == 1
}

// Keys returns the pressed state of all keys.
func (c *Chip8) Keys() [KeyCount]bool {
	var keys [KeyCount]bool
	for key := range keys {
		keys[key] = c.KeyPressed(byte(key))
	}
	return keys
}

// Redraw reports whether the framebuffer changed since the last call.
func (c *Chip8) Redraw() bool {
	redraw := c.redraw
	c.redraw = false
	return redraw
}

// Framebuffer returns a copy of the framebuffer.
func (c *Chip8) Framebuffer() Frame {
	var frame Frame
	for index := range frame {
		value, _ := c.screen.Read(index)
		frame[index] = value == 1
	}
	return frame
}

// PC returns the program counter.
func (c *Chip8) PC() uint16 { return c.pc }

// SP returns the stack pointer.
func (c *Chip8) SP() uint16 { return c.sp }

// I returns the address register.
func (c *Chip8) I() uint16 { return c.i }

// Registers returns a copy of the general purpose registers.
func (c *Chip8) Registers() [RegisterCount]byte { return c.v }

// DelayTimer returns the delay timer value.
func (c *Chip8) DelayTimer() byte { return c.delayTimer }

// SoundTimer returns the sound timer value.
func (c *Chip8) SoundTimer() byte { return c.soundTimer }

// State is a copy of the interpreter registers, used for debug displays.
type State struct {
	V          [RegisterCount]byte
	I          uint16
	PC         uint16
	SP         uint16
	DelayTimer byte
	SoundTimer byte
	Keys       [KeyCount]bool
}

// Snapshot returns a copy of all registers and the key state.
func (c *Chip8) Snapshot() State {
	return State{
		V:          c.v,
		I:          c.i,
		PC:         c.pc,
		SP:         c.sp,
		DelayTimer: c.delayTimer,
		SoundTimer: c.soundTimer,
		Keys:       c.Keys(),
	}
}

// Frame is a copy of the framebuffer, row-major with index y*ScreenWidth+x.
type Frame [ScreenWidth * ScreenHeight]bool

// Pixel returns whether the pixel at x, y is set. Coordinates wrap around.
func (f *Frame) Pixel(x, y int) bool {
	x = ((x % ScreenWidth) + ScreenWidth) % ScreenWidth
	y = ((y % ScreenHeight) + ScreenHeight) % ScreenHeight
	return f[y*ScreenWidth+x]
}
