package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func writeProgram(t *testing.T, data []byte) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "test.ch8")
	assert.NoError(t, os.WriteFile(file, data, 0600))
	return file
}

func headlessOptions(input string) options.Interpreter {
	seed := uint64(1)
	return options.Interpreter{
		Flags:                 options.Flags{Quiet: true},
		Input:                 input,
		Mode:                  options.ModeHeadless,
		InstructionsPerSecond: 600,
		Frames:                3,
		OnError:               options.OnErrorHalt,
		Seed:                  &seed,
		Scale:                 1,
		Frequency:             440,
		KeyHoldMS:             150,
	}
}

func TestRunHeadless(t *testing.T) {
	// draw glyph 0 at 0,0 and loop forever
	input := writeProgram(t, []byte{0x60, 0x07, 0xA0, 0x00, 0xD1, 0x15, 0x12, 0x06})

	var out bytes.Buffer
	err := Run(context.Background(), log.NewTestLogger(t), headlessOptions(input), &out)
	assert.NoError(t, err)

	lines := strings.Split(out.String(), "\n")
	assert.Equal(t, "PC $0206  I $0000  SP $0EA0  DT $00  ST $00", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "V0 $07 V1 $00"))
	assert.Equal(t, "", lines[2])
	assert.Equal(t, "####"+strings.Repeat(".", chip8.ScreenWidth-4), lines[3])
	assert.Equal(t, "#..#"+strings.Repeat(".", chip8.ScreenWidth-4), lines[4])
	assert.Len(t, lines, 3+chip8.ScreenHeight+1)
}

func TestRunHeadlessError(t *testing.T) {
	input := writeProgram(t, []byte{0x00, 0x00})

	var out bytes.Buffer
	err := Run(context.Background(), log.NewTestLogger(t), headlessOptions(input), &out)
	assert.True(t, errors.Is(err, chip8.ErrUnknownInstruction))
	assert.True(t, strings.HasPrefix(out.String(), "PC $0202"))
}

func TestRunMissingFile(t *testing.T) {
	err := Run(context.Background(), log.NewTestLogger(t), headlessOptions("/nonexistent/test.ch8"), &bytes.Buffer{})
	assert.Error(t, err)
}
