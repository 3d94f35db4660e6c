package window

import (
	"strings"
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestPanelLines(t *testing.T) {
	machine, err := chip8.New([]byte{0x6A, 0x42, 0xA1, 0x23, 0x00, 0xE0})
	assert.NoError(t, err)
	assert.NoError(t, machine.Step())
	assert.NoError(t, machine.KeyDown(0x4))

	lines := PanelLines(machine, PanelState{
		Paused:        true,
		TargetIPS:     700,
		MeasuredIPS:   698,
		FPS:           60,
		MemoryAddress: chip8.ProgramStart,
	})
	assert.Len(t, lines, panelTextLines)
	assert.Equal(t, "PC $0202  I $0000  SP $0EA0", lines[0])
	assert.Equal(t, "DT $00  ST $00  PAUSED", lines[1])
	assert.Equal(t, "V8 $00 V9 $00 VA $42 VB $00", lines[4])

	text := strings.Join(lines, "\n")
	assert.Contains(t, text, "> $0202 A123  ld I, $123")
	assert.Contains(t, text, "  $0204 00E0  cls")
	assert.Contains(t, text, "q:4 w:. e:. r:.")
	assert.Contains(t, text, "1:. 2:. 3:. 4:.")
	assert.Contains(t, text, "ips = 698 (target = 700)")
	assert.Contains(t, text, "fps = 60")
	assert.Contains(t, text, "Memory $0200")
	assert.Contains(t, text, "$0200 6A 42 A1 23 00 E0 00 00")
}

func TestPanelLinesAddressInput(t *testing.T) {
	machine, err := chip8.New([]byte{0x00, 0xE0})
	assert.NoError(t, err)

	input := &AddressInput{}
	input.Input('3')
	input.Input('f')

	lines := PanelLines(machine, PanelState{AddressInput: input})
	text := strings.Join(lines, "\n")
	assert.Contains(t, text, "Address: $3F_")
	assert.False(t, strings.Contains(text, "PAUSED"))
}

func TestPanelDisassemblyEnd(t *testing.T) {
	machine, err := chip8.New([]byte{0x1F, 0xFC})
	assert.NoError(t, err)
	assert.NoError(t, machine.Step())

	lines := disassembly(machine, machine.PC())
	assert.Len(t, lines, 2)
}

func TestMemoryDump(t *testing.T) {
	machine, err := chip8.New([]byte{0x12, 0x34})
	assert.NoError(t, err)

	lines := memoryDump(machine, chip8.ProgramStart)
	assert.Len(t, lines, memoryLines)
	assert.Equal(t, "$0200 12 34 00 00 00 00 00 00", lines[0])
	assert.Equal(t, "$0208 00 00 00 00 00 00 00 00", lines[1])

	lines = memoryDump(machine, chip8.MemorySize-12)
	assert.Len(t, lines, 2)
	assert.Equal(t, "$0FF4 00 00 00 00 00 00 00 00", lines[0])
	assert.Equal(t, "$0FFC 00 00 00 00", lines[1])
}

func TestScrollMemory(t *testing.T) {
	tests := []struct {
		address  uint16
		pages    int
		expected uint16
	}{
		{0x200, 1, 0x240},
		{0x200, -1, 0x1C0},
		{0x020, -1, 0x000},
		{0xFC0, 1, 0xFC0},
		{0xFFF, 0, 0xFC0},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, ScrollMemory(test.address, test.pages))
	}
}

func TestAdjustSpeed(t *testing.T) {
	tests := []struct {
		ips      int
		steps    int
		expected int
	}{
		{700, 1, 760},
		{700, -1, 640},
		{MinSpeed, -1, MinSpeed},
		{MaxSpeed, 1, MaxSpeed},
		{10, 0, MinSpeed},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, AdjustSpeed(test.ips, test.steps))
	}
}

func TestAddressInput(t *testing.T) {
	input := &AddressInput{}
	_, err := input.Address()
	assert.Error(t, err)

	for _, r := range "a1xg2f" {
		input.Input(r)
	}
	assert.Equal(t, "A12", input.Text())

	address, err := input.Address()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0xA12), address)

	input.Backspace()
	input.Input('b')
	assert.Equal(t, "A1B", input.Text())

	input.Backspace()
	input.Backspace()
	input.Backspace()
	input.Backspace()
	assert.Equal(t, "", input.Text())
}

func TestRateMeter(t *testing.T) {
	var meter RateMeter
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, meter.Update(100, start))
	assert.Equal(t, 0, meter.Update(400, start.Add(500*time.Millisecond)))
	assert.Equal(t, 700, meter.Update(800, start.Add(time.Second)))
	assert.Equal(t, 700, meter.Update(900, start.Add(1500*time.Millisecond)))
	assert.Equal(t, 350, meter.Update(1500, start.Add(3*time.Second)))
}

func TestHelpLines(t *testing.T) {
	text := strings.Join(HelpLines(), "\n")
	for _, key := range []string{"F1", "F2", "PgUp", "F5", "F6", "F7", "F8", "F10", "Esc"} {
		assert.Contains(t, text, key)
	}
}

func TestFillPixels(t *testing.T) {
	var frame chip8.Frame
	frame[1] = true
	pix := make([]byte, len(frame)*4)

	fillPixels(&frame, pix)
	assert.Equal(t, []byte{0, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, pix[:8])
}
