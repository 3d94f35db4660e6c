//go:build !headless

package window

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/image/font/basicfont"
)

const (
	panelWidth   = 240
	panelPadding = 8
	lineHeight   = 14
)

// hostKeys maps key pad keys to keyboard keys, matching keypad.Layout.
var hostKeys = [chip8.KeyCount]ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4,
	ebiten.KeyQ, ebiten.KeyW, ebiten.KeyE, ebiten.KeyR,
	ebiten.KeyA, ebiten.KeyS, ebiten.KeyD, ebiten.KeyF,
	ebiten.KeyZ, ebiten.KeyX, ebiten.KeyC, ebiten.KeyV,
}

var (
	panelBackground = color.RGBA{R: 0x20, G: 0x20, B: 0x30, A: 0xFF}
	helpBackground  = color.RGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xE0}
)

// Window is an ebiten game that displays the framebuffer and feeds
// keyboard input to the interpreter.
type Window struct {
	ctx     context.Context
	logger  *log.Logger
	machine *chip8.Chip8
	runner  *runner.Runner
	scale   int

	frame  chip8.Frame
	pixels []byte
	image  *ebiten.Image
	dirty  bool

	keys      [chip8.KeyCount]bool
	showPanel bool
	showHelp  bool
	paused    bool
	quit      bool
	err       error

	memoryAddress uint16
	addressInput  *AddressInput // set while a memory address is entered
	chars         []rune
	ipsMeter      RateMeter
	measuredIPS   int
}

// Run opens a window and runs the interpreter until the window is closed,
// Escape is pressed, the context is cancelled or the runner stops.
//
// See HelpLines for the control keys.
func Run(ctx context.Context, logger *log.Logger, machine *chip8.Chip8, cfg runner.Config, scale int, showPanel bool) error {
	w := &Window{
		ctx:           ctx,
		logger:        logger,
		machine:       machine,
		scale:         max(1, scale),
		pixels:        make([]byte, chip8.ScreenWidth*chip8.ScreenHeight*4),
		showPanel:     showPanel,
		dirty:         true,
		memoryAddress: chip8.ProgramStart,
	}

	r, err := runner.New(cfg, logger, machine, w, w)
	if err != nil {
		return fmt.Errorf("creating runner: %w", err)
	}
	w.runner = r

	ebiten.SetWindowSize(w.Layout(0, 0))
	ebiten.SetWindowTitle("retrochip8")
	ebiten.SetTPS(cfg.TimerHz)

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return w.err
}

// Present stores the framebuffer for the next draw.
func (w *Window) Present(frame chip8.Frame) error {
	w.frame = frame
	w.dirty = true
	return nil
}

// Poll returns key changes since the last poll. While a memory address is
// entered all key pad keys are reported as released.
func (w *Window) Poll() ([]keypad.Event, bool) {
	var events []keypad.Event
	for key, hostKey := range hostKeys {
		pressed := w.addressInput == nil && ebiten.IsKeyPressed(hostKey)
		if pressed == w.keys[key] {
			continue
		}
		w.keys[key] = pressed
		events = append(events, keypad.Event{Key: byte(key), Down: pressed})
	}
	return events, w.quit
}

// Update is called by ebiten at the timer frequency.
func (w *Window) Update() error {
	if w.ctx.Err() != nil {
		return ebiten.Termination
	}

	if w.addressInput != nil {
		w.editAddress()
	} else {
		w.handleControlKeys()
	}
	if w.quit {
		return ebiten.Termination
	}
	w.measuredIPS = w.ipsMeter.Update(w.runner.Steps(), time.Now())

	var err error
	switch {
	case w.showHelp:
	case !w.paused:
		err = w.runner.Frame()
	case w.addressInput == nil && inpututil.IsKeyJustPressed(ebiten.KeyF6):
		err = w.runner.Step()
	}

	if err != nil {
		if !errors.Is(err, runner.ErrQuit) {
			w.err = err
		}
		return ebiten.Termination
	}
	return nil
}

func (w *Window) handleControlKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if w.showHelp {
			w.showHelp = false
		} else {
			w.quit = true
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		w.showPanel = !w.showPanel
		ebiten.SetWindowSize(w.Layout(0, 0))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		if !w.showPanel {
			w.showPanel = true
			ebiten.SetWindowSize(w.Layout(0, 0))
		}
		w.addressInput = &AddressInput{}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		w.memoryAddress = ScrollMemory(w.memoryAddress, -1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) {
		w.memoryAddress = ScrollMemory(w.memoryAddress, 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		w.paused = !w.paused
		state := "running"
		if w.paused {
			state = "paused"
		}
		w.logger.Debug("Execution state changed", log.String("state", state))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF7) {
		w.changeSpeed(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF8) {
		w.changeSpeed(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF10) {
		w.showHelp = !w.showHelp
	}
}

// editAddress handles the keyboard while a memory address is entered.
func (w *Window) editAddress() {
	w.chars = ebiten.AppendInputChars(w.chars[:0])
	for _, r := range w.chars {
		w.addressInput.Input(r)
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		w.addressInput = nil

	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		w.addressInput.Backspace()

	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter):
		address, err := w.addressInput.Address()
		if err != nil {
			w.logger.Warn("Invalid memory address", log.Err(err))
			return
		}
		w.memoryAddress = ScrollMemory(address, 0)
		w.addressInput = nil
	}
}

func (w *Window) changeSpeed(steps int) {
	ips := AdjustSpeed(w.runner.InstructionsPerSecond(), steps)
	if err := w.runner.SetInstructionsPerSecond(ips); err != nil {
		w.logger.Error("Changing instruction rate failed", log.Err(err))
		return
	}
	w.logger.Debug("Instruction rate changed", log.Int("ips", ips))
}

// Draw renders the framebuffer, the debug panel and the help overlay.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.image == nil {
		w.image = ebiten.NewImage(chip8.ScreenWidth, chip8.ScreenHeight)
	}
	if w.dirty {
		fillPixels(&w.frame, w.pixels)
		w.image.WritePixels(w.pixels)
		w.dirty = false
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(w.scale), float64(w.scale))
	screen.DrawImage(w.image, opts)

	if w.showPanel {
		w.drawPanel(screen)
	}
	if w.showHelp {
		w.drawHelp(screen)
	}
}

func (w *Window) drawPanel(screen *ebiten.Image) {
	x := chip8.ScreenWidth * w.scale
	_, height := w.Layout(0, 0)
	ebitenutil.DrawRect(screen, float64(x), 0, panelWidth, float64(height), panelBackground)

	panel := PanelState{
		Paused:        w.paused || w.showHelp,
		TargetIPS:     w.runner.InstructionsPerSecond(),
		MeasuredIPS:   w.measuredIPS,
		FPS:           int(ebiten.ActualFPS()),
		MemoryAddress: w.memoryAddress,
		AddressInput:  w.addressInput,
	}
	drawLines(screen, PanelLines(w.machine, panel), x+panelPadding)
}

func (w *Window) drawHelp(screen *ebiten.Image) {
	width, height := w.Layout(0, 0)
	ebitenutil.DrawRect(screen, 0, 0, float64(width), float64(height), helpBackground)
	drawLines(screen, HelpLines(), panelPadding)
}

func drawLines(screen *ebiten.Image, lines []string, x int) {
	for i, line := range lines {
		text.Draw(screen, line, basicfont.Face7x13, x, panelPadding+(i+1)*lineHeight, color.White)
	}
}

// Layout returns the fixed screen size.
func (w *Window) Layout(_, _ int) (int, int) {
	width := chip8.ScreenWidth * w.scale
	height := chip8.ScreenHeight * w.scale
	if w.showPanel {
		width += panelWidth
		height = max(height, panelTextLines*lineHeight+2*panelPadding)
	}
	return width, height
}
