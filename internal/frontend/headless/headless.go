// Package headless implements a frontend without display and input that runs
// a ROM as fast as possible and prints the final framebuffer as text.
package headless

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/runner"
)

const (
	pixelOn  = '#'
	pixelOff = '.'
)

// Frontend is the headless frontend.
type Frontend struct {
	writer io.Writer
}

// New returns a headless frontend that prints to the given writer.
func New(writer io.Writer) *Frontend {
	return &Frontend{
		writer: writer,
	}
}

// Run executes frames without pacing until the runner halts or the context
// is cancelled, then prints the framebuffer. The halting error of the runner
// is returned.
func (f *Frontend) Run(ctx context.Context, r *runner.Runner) error {
	var runErr error
	for ctx.Err() == nil {
		if runErr = r.Frame(); runErr != nil {
			break
		}
	}

	var screen string
	r.View(func(m *machine.Machine) {
		screen = Render(m.Framebuffer())
	})
	if _, err := io.WriteString(f.writer, screen); err != nil {
		return fmt.Errorf("writing framebuffer: %w", err)
	}
	return runErr
}

// Render converts a framebuffer to one line of text per display row.
func Render(framebuffer []uint8) string {
	var sb strings.Builder
	sb.Grow((machine.DisplayWidth + 1) * machine.DisplayHeight)

	for y := range machine.DisplayHeight {
		row := framebuffer[y*machine.DisplayWidth : (y+1)*machine.DisplayWidth]
		for _, pixel := range row {
			if pixel != 0 {
				sb.WriteByte(pixelOn)
			} else {
				sb.WriteByte(pixelOff)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
