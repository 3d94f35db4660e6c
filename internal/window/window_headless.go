//go:build headless

package window

import (
	"context"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/log"
)

// Run is not supported in headless builds.
func Run(_ context.Context, _ *log.Logger, _ *chip8.Chip8, _ runner.Config, _ int, _ bool) error {
	return ErrNotSupported
}
