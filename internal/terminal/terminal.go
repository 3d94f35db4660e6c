// Package terminal implements a text mode frontend that renders the
// framebuffer with block characters and reads keys from a raw mode terminal.
package terminal

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/keypad"
	"golang.org/x/term"
)

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b

	cursorHome = "\x1b[H"
	clearAll   = "\x1b[2J"
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
)

// DefaultKeyHold is the time a key stays pressed after its last key press
// was read. Terminals do not report key releases, auto repeat keeps a held
// key pressed.
const DefaultKeyHold = 150 * time.Millisecond

// Terminal is a display and input source using a text terminal.
type Terminal struct {
	in   io.Reader
	out  io.Writer
	hold time.Duration

	state     *term.State
	input     chan []byte
	done      chan struct{} // closed by Close to stop the reader
	stopped   chan struct{} // closed when the reader returned
	startOnce sync.Once
	closeOnce sync.Once

	pressed map[byte]time.Time // key to release deadline
	quit    bool
}

// New returns a new terminal frontend. If in is a terminal it is switched
// to raw mode by Start.
func New(in io.Reader, out io.Writer, hold time.Duration) *Terminal {
	if hold <= 0 {
		hold = DefaultKeyHold
	}
	return &Terminal{
		in:      in,
		out:     out,
		hold:    hold,
		input:   make(chan []byte, 64),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		pressed: map[byte]time.Time{},
	}
}

// Start switches the input to raw mode, clears the screen and starts
// reading keys in the background.
func (t *Terminal) Start() error {
	if file, ok := t.in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		state, err := term.MakeRaw(int(file.Fd()))
		if err != nil {
			return fmt.Errorf("enabling raw mode: %w", err)
		}
		t.state = state
	}

	if _, err := io.WriteString(t.out, clearAll+hideCursor); err != nil {
		return fmt.Errorf("clearing screen: %w", err)
	}

	t.startOnce.Do(func() { go t.read() })
	return nil
}

// Close stops the background reader and restores the terminal state. A
// reader blocked in a read of the input returns after its next read.
func (t *Terminal) Close() error {
	t.closeOnce.Do(func() { close(t.done) })

	if _, err := io.WriteString(t.out, showCursor+"\r\n"); err != nil {
		return fmt.Errorf("showing cursor: %w", err)
	}
	if t.state == nil {
		return nil
	}
	file := t.in.(*os.File)
	if err := term.Restore(int(file.Fd()), t.state); err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}
	t.state = nil
	return nil
}

func (t *Terminal) read() {
	defer close(t.stopped)

	buf := make([]byte, 32)
	for {
		n, err := t.in.Read(buf)
		if n > 0 {
			select {
			case t.input <- slices.Clone(buf[:n]):
			case <-t.done:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// Poll returns the key events since the last call and whether the user
// requested to quit.
func (t *Terminal) Poll() ([]keypad.Event, bool) {
	now := time.Now()
	var events []keypad.Event

drain:
	for {
		select {
		case data := <-t.input:
			events = append(events, t.handle(data, now)...)
		default:
			break drain
		}
	}

	events = append(events, t.release(now)...)
	return events, t.quit
}

// handle processes raw input bytes and returns the resulting key down events.
func (t *Terminal) handle(data []byte, now time.Time) []keypad.Event {
	var events []keypad.Event
	for _, b := range data {
		if b == keyCtrlC || b == keyEscape {
			t.quit = true
			continue
		}

		key, ok := keypad.Lookup(rune(b))
		if !ok {
			continue
		}
		if _, down := t.pressed[key]; !down {
			events = append(events, keypad.Event{Key: key, Down: true})
		}
		t.pressed[key] = now.Add(t.hold)
	}
	return events
}

// release returns key up events for all keys whose hold time expired.
func (t *Terminal) release(now time.Time) []keypad.Event {
	var keys []byte
	for key, deadline := range t.pressed {
		if !now.Before(deadline) {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	events := make([]keypad.Event, 0, len(keys))
	for _, key := range keys {
		delete(t.pressed, key)
		events = append(events, keypad.Event{Key: key, Down: false})
	}
	return events
}

// Present draws the framebuffer at the top of the terminal.
func (t *Terminal) Present(frame chip8.Frame) error {
	if _, err := io.WriteString(t.out, cursorHome+Render(frame)); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// Render returns the framebuffer as text. Each character covers two pixel
// rows using half block characters. Lines end with CR LF to work in raw mode.
func Render(frame chip8.Frame) string {
	var buf strings.Builder
	buf.Grow(chip8.ScreenHeight / 2 * (chip8.ScreenWidth*3 + 2))

	for y := 0; y < chip8.ScreenHeight; y += 2 {
		for x := range chip8.ScreenWidth {
			top := frame[y*chip8.ScreenWidth+x]
			bottom := frame[(y+1)*chip8.ScreenWidth+x]

			switch {
			case top && bottom:
				buf.WriteRune('█')
			case top:
				buf.WriteRune('▀')
			case bottom:
				buf.WriteRune('▄')
			default:
				buf.WriteByte(' ')
			}
		}
		buf.WriteString("\r\n")
	}
	return buf.String()
}
