// Package window implements a graphical frontend with a debug panel.
package window

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/keypad"
)

// ErrNotSupported is returned when the binary was built without window support.
var ErrNotSupported = errors.New("window frontend not supported in this build")

const (
	disassemblyLines = 10 // instructions shown in the debug panel
	memoryLines      = 8
	memoryLineBytes  = 8
	memoryPageSize   = memoryLines * memoryLineBytes

	panelTextLines = 35 // lines returned by PanelLines
)

// SpeedStep is the change of the instruction rate per speed key press.
// MinSpeed and MaxSpeed limit the rate that can be selected at runtime.
const (
	SpeedStep = 60
	MinSpeed  = SpeedStep
	MaxSpeed  = 100 * SpeedStep
)

// Inspector gives read access to the interpreter state.
type Inspector interface {
	Snapshot() chip8.State
	ReadMemory(address uint16, size int) ([]byte, error)
}

// PanelState is the frontend state shown in the debug panel.
type PanelState struct {
	Paused      bool
	TargetIPS   int
	MeasuredIPS int
	FPS         int

	MemoryAddress uint16
	AddressInput  *AddressInput // nil if no address is being edited
}

// PanelLines returns the text lines of the debug panel.
func PanelLines(machine Inspector, panel PanelState) []string {
	state := machine.Snapshot()

	lines := []string{
		fmt.Sprintf("PC $%04X  I $%04X  SP $%04X", state.PC, state.I, state.SP),
		fmt.Sprintf("DT $%02X  ST $%02X", state.DelayTimer, state.SoundTimer),
	}
	if panel.Paused {
		lines[1] += "  PAUSED"
	}

	for row := range 4 {
		var buf strings.Builder
		for col := range 4 {
			reg := row*4 + col
			if col > 0 {
				buf.WriteByte(' ')
			}
			fmt.Fprintf(&buf, "V%X $%02X", reg, state.V[reg])
		}
		lines = append(lines, buf.String())
	}

	lines = append(lines, "")
	lines = append(lines, disassembly(machine, state.PC)...)
	lines = append(lines, "")
	lines = append(lines, keyLines(state.Keys)...)
	lines = append(lines, "")
	lines = append(lines,
		fmt.Sprintf("ips = %d (target = %d)", panel.MeasuredIPS, panel.TargetIPS),
		fmt.Sprintf("fps = %d", panel.FPS),
	)
	lines = append(lines, "")
	lines = append(lines, memoryHeader(panel))
	lines = append(lines, memoryDump(machine, panel.MemoryAddress)...)
	return lines
}

func disassembly(machine Inspector, pc uint16) []string {
	lines := make([]string, 0, disassemblyLines)
	address := pc
	for i := range disassemblyLines {
		data, err := machine.ReadMemory(address, 2)
		if err != nil {
			break
		}
		word := uint16(data[0])<<8 | uint16(data[1])

		marker := ' '
		if i == 0 {
			marker = '>'
		}
		lines = append(lines, fmt.Sprintf("%c $%04X %04X  %s", marker, address, word, chip8.Disassemble(word)))
		address += 2
	}
	return lines
}

// keyLines shows the key pad in host layout order, released keys as dots.
func keyLines(keys [chip8.KeyCount]bool) []string {
	lines := make([]string, 0, 4)
	for row := range 4 {
		var buf strings.Builder
		for col := range 4 {
			key := byte(row*4 + col)
			r, _ := keypad.Rune(key)
			if col > 0 {
				buf.WriteByte(' ')
			}
			if keys[key] {
				fmt.Fprintf(&buf, "%c:%X", r, key)
			} else {
				fmt.Fprintf(&buf, "%c:.", r)
			}
		}
		lines = append(lines, buf.String())
	}
	return lines
}

func memoryHeader(panel PanelState) string {
	if panel.AddressInput != nil {
		return fmt.Sprintf("Address: $%s_", panel.AddressInput.Text())
	}
	return fmt.Sprintf("Memory $%04X", panel.MemoryAddress)
}

// memoryDump returns a hex dump of memory starting at address, stopping at
// the end of memory.
func memoryDump(machine Inspector, address uint16) []string {
	lines := make([]string, 0, memoryLines)
	for row := range memoryLines {
		start := int(address) + row*memoryLineBytes
		size := min(memoryLineBytes, chip8.MemorySize-start)
		if size <= 0 {
			break
		}
		data, err := machine.ReadMemory(uint16(start), size)
		if err != nil {
			break
		}

		var buf strings.Builder
		fmt.Fprintf(&buf, "$%04X", start)
		for _, b := range data {
			fmt.Fprintf(&buf, " %02X", b)
		}
		lines = append(lines, buf.String())
	}
	return lines
}

// ScrollMemory returns the memory view address moved by the given number of
// pages, limited to the memory image.
func ScrollMemory(address uint16, pages int) uint16 {
	next := int(address) + pages*memoryPageSize
	last := chip8.MemorySize - memoryPageSize
	return uint16(max(0, min(next, last)))
}

// AdjustSpeed returns the instruction rate changed by steps speed steps,
// limited to MinSpeed and MaxSpeed.
func AdjustSpeed(ips, steps int) int {
	return max(MinSpeed, min(ips+steps*SpeedStep, MaxSpeed))
}

// HelpLines returns the description of the window controls.
func HelpLines() []string {
	return []string{
		"Controls",
		"",
		"1234 QWER ASDF ZXCV  key pad",
		"F1       toggle debug panel",
		"F2       enter memory address",
		"PgUp/Dn  scroll memory view",
		"F5       pause / resume",
		"F6       single step while paused",
		"F7 / F8  slower / faster",
		"F10      toggle this help",
		"Esc      close help, cancel input, quit",
	}
}

// AddressInput is an editable hex address of the memory view.
type AddressInput struct {
	text string
}

// maxAddressDigits is the number of hex digits of a memory address.
const maxAddressDigits = 3

// Text returns the entered digits.
func (a *AddressInput) Text() string {
	return a.text
}

// Input appends a hex digit, other characters are ignored.
func (a *AddressInput) Input(r rune) {
	if len(a.text) >= maxAddressDigits || !strings.ContainsRune("0123456789abcdefABCDEF", r) {
		return
	}
	a.text += strings.ToUpper(string(r))
}

// Backspace removes the last digit.
func (a *AddressInput) Backspace() {
	if a.text != "" {
		a.text = a.text[:len(a.text)-1]
	}
}

// Address returns the entered address.
func (a *AddressInput) Address() (uint16, error) {
	if a.text == "" {
		return 0, errors.New("empty address")
	}
	value, err := strconv.ParseUint(a.text, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("parsing address '%s': %w", a.text, err)
	}
	return uint16(value), nil
}

// RateMeter measures how often an event happens per second.
type RateMeter struct {
	start time.Time
	count uint64
	rate  int
}

// Update records the total event count at the given time and returns the
// rate of the last completed second.
func (m *RateMeter) Update(total uint64, now time.Time) int {
	if m.start.IsZero() {
		m.start = now
		m.count = total
		return m.rate
	}

	elapsed := now.Sub(m.start)
	if elapsed >= time.Second {
		m.rate = int(float64(total-m.count) / elapsed.Seconds())
		m.start = now
		m.count = total
	}
	return m.rate
}

// fillPixels converts the framebuffer to RGBA pixels.
func fillPixels(frame *chip8.Frame, pix []byte) {
	for i, set := range frame {
		var value byte
		if set {
			value = 0xFF
		}
		pix[i*4] = value
		pix[i*4+1] = value
		pix[i*4+2] = value
		pix[i*4+3] = 0xFF
	}
}
