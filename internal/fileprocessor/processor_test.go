package fileprocessor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "test.ch8")
	output := filepath.Join(dir, "test.asm")
	assert.NoError(t, os.WriteFile(input, []byte{0x00, 0xE0, 0x12, 0x02}, 0600))

	opts := options.Program{
		Parameters: options.Parameters{Input: input, Output: output},
		Flags:      options.Flags{Quiet: true},
	}
	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, options.NewDisassembler())
	assert.NoError(t, err)

	data, err := os.ReadFile(output)
	assert.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, ".org $200")
	assert.Contains(t, text, "_label_0202:")
	assert.Contains(t, text, "jp _label_0202")
}

func TestProcessFileErrors(t *testing.T) {
	logger := log.NewTestLogger(t)

	opts := options.Program{Parameters: options.Parameters{Input: "/nonexistent/test.ch8"}}
	assert.Error(t, ProcessFile(context.Background(), logger, opts, options.NewDisassembler()))

	dir := t.TempDir()
	input := filepath.Join(dir, "test.ch8")
	assert.NoError(t, os.WriteFile(input, []byte{0x00, 0xE0}, 0600))

	opts = options.Program{Parameters: options.Parameters{Input: input, Output: filepath.Join(dir, "missing", "out.asm")}}
	assert.Error(t, ProcessFile(context.Background(), logger, opts, options.NewDisassembler()))
}

func TestDisassemble(t *testing.T) {
	var buf bytes.Buffer
	err := Disassemble(context.Background(), log.NewTestLogger(t), []byte{0x00, 0xEE}, options.Disassembler{}, &buf)
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(buf.String(), fmt.Sprintf("  %-30s ; %s\n", "ret", "PC = stack top")))
}

func TestGetFilesToProcess(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.ch8", "b.ch8", "c.txt"} {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte{0}, 0600))
	}

	opts := &options.Program{Parameters: options.Parameters{Batch: filepath.Join(dir, "*.ch8")}}
	files, err := GetFilesToProcess(opts)
	assert.NoError(t, err)
	assert.Len(t, files, 2)

	opts = &options.Program{Parameters: options.Parameters{Input: "single.ch8"}}
	files, err = GetFilesToProcess(opts)
	assert.NoError(t, err)
	assert.Equal(t, []string{"single.ch8"}, files)
}

func TestGenerateOutputFilename(t *testing.T) {
	assert.Equal(t, "games/pong.asm", GenerateOutputFilename("games/pong.ch8"))
	assert.Equal(t, "rom.asm", GenerateOutputFilename("rom"))
}
