package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = args
}

func TestParseFlags_DisasmOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Disassembler
	}{
		{
			name: "default flags",
			args: []string{"prog", "test.ch8"},
			want: options.Disassembler{HexComments: true, OffsetComments: true},
		},
		{
			name: "nohexcomments flag",
			args: []string{"prog", "-nohexcomments", "test.ch8"},
			want: options.Disassembler{OffsetComments: true},
		},
		{
			name: "nooffsets flag",
			args: []string{"prog", "-nooffsets", "test.ch8"},
			want: options.Disassembler{HexComments: true},
		},
		{
			name: "z flag",
			args: []string{"prog", "-z", "test.ch8"},
			want: options.Disassembler{HexComments: true, OffsetComments: true, ZeroBytes: true},
		},
		{
			name: "all disasm flags",
			args: []string{"prog", "-nohexcomments", "-nooffsets", "-z", "test.ch8"},
			want: options.Disassembler{ZeroBytes: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			opts, got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, "test.ch8", opts.Input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlags_Program(t *testing.T) {
	setArgs(t, "prog", "-o", "out.asm", "-debug", "-q", "test.ch8")

	opts, _, err := ParseFlags()
	assert.NoError(t, err)
	assert.Equal(t, "out.asm", opts.Output)
	assert.True(t, opts.Debug)
	assert.True(t, opts.Quiet)
}

func TestParseFlags_Batch(t *testing.T) {
	setArgs(t, "prog", "-batch", "*.ch8")

	opts, _, err := ParseFlags()
	assert.NoError(t, err)
	assert.Equal(t, "*.ch8", opts.Batch)
	assert.Equal(t, "", opts.Input)
}

func TestParseFlags_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"prog"}},
		{"unknown flag", []string{"prog", "-unknown", "test.ch8"}},
		{"flag after file", []string{"prog", "test.ch8", "-z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			_, _, err := ParseFlags()
			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))
		})
	}
}

func TestParseInterpreterFlags(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setArgs(t, "prog", "game.ch8")

		opts, err := ParseInterpreterFlags()
		assert.NoError(t, err)
		assert.Equal(t, options.Interpreter{
			Input:                 "game.ch8",
			Mode:                  options.ModeWindow,
			InstructionsPerSecond: 700,
			OnError:               options.OnErrorHalt,
			Scale:                 10,
			Frequency:             440,
			KeyHoldMS:             150,
		}, opts)
	})

	t.Run("all flags", func(t *testing.T) {
		setArgs(t, "prog", "-mode", "Headless", "-ips", "1000", "-frames", "30", "-onerror", "SKIP",
			"-seed", "42", "-scale", "4", "-panel", "-freq", "880", "-mute", "-keyhold", "200",
			"-debug", "game.ch8")

		opts, err := ParseInterpreterFlags()
		assert.NoError(t, err)
		seed := uint64(42)
		assert.Equal(t, options.Interpreter{
			Flags:                 options.Flags{Debug: true},
			Input:                 "game.ch8",
			Mode:                  options.ModeHeadless,
			InstructionsPerSecond: 1000,
			Frames:                30,
			OnError:               options.OnErrorSkip,
			Seed:                  &seed,
			Scale:                 4,
			Panel:                 true,
			Frequency:             880,
			Mute:                  true,
			KeyHoldMS:             200,
		}, opts)
	})

	t.Run("zero seed", func(t *testing.T) {
		setArgs(t, "prog", "-seed", "0", "game.ch8")

		opts, err := ParseInterpreterFlags()
		assert.NoError(t, err)
		assert.NotNil(t, opts.Seed)
		assert.Equal(t, uint64(0), *opts.Seed)
	})
}

func TestParseInterpreterFlags_Errors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		usage bool
	}{
		{"missing file", []string{"prog"}, true},
		{"flag after file", []string{"prog", "game.ch8", "-q"}, true},
		{"invalid mode", []string{"prog", "-mode", "gui", "game.ch8"}, false},
		{"invalid policy", []string{"prog", "-onerror", "ignore", "game.ch8"}, false},
		{"invalid ips", []string{"prog", "-ips", "0", "game.ch8"}, false},
		{"invalid frames", []string{"prog", "-frames", "-1", "game.ch8"}, false},
		{"invalid scale", []string{"prog", "-scale", "0", "game.ch8"}, false},
		{"invalid frequency", []string{"prog", "-freq", "0", "game.ch8"}, false},
		{"invalid key hold", []string{"prog", "-keyhold", "0", "game.ch8"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			_, err := ParseInterpreterFlags()
			assert.Error(t, err)

			var usageErr *UsageError
			assert.Equal(t, tt.usage, errors.As(err, &usageErr))
		})
	}
}
