package headless

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestRender(t *testing.T) {
	framebuffer := make([]uint8, machine.DisplayWidth*machine.DisplayHeight)
	framebuffer[0] = 1
	framebuffer[machine.DisplayWidth+2] = 1

	lines := strings.Split(Render(framebuffer), "\n")
	assert.Len(t, lines, machine.DisplayHeight+1)
	assert.Equal(t, "#"+strings.Repeat(".", machine.DisplayWidth-1), lines[0])
	assert.Equal(t, "..#"+strings.Repeat(".", machine.DisplayWidth-3), lines[1])
	assert.Equal(t, "", lines[machine.DisplayHeight])
}

func TestRun(t *testing.T) {
	m := machine.New(machine.WithSeed(1))
	assert.NoError(t, m.Load([]byte{
		0x60, 0x00, // V0 = 0
		0xF0, 0x29, // I = glyph of 0
		0xD0, 0x05, // draw at 0,0
		0x12, 0x06, // jump to self
	}))
	r := runner.New(log.NewTestLogger(t), m, runner.Config{CyclesPerSecond: 600, TimerHz: 60, MaxCycles: 25})

	var buf bytes.Buffer
	err := New(&buf).Run(context.Background(), r)
	assert.True(t, errors.Is(err, runner.ErrCycleLimit))

	lines := strings.Split(buf.String(), "\n")
	want := []string{"####", "#..#", "#..#", "#..#", "####"}
	for i, row := range want {
		assert.Equal(t, row+strings.Repeat(".", machine.DisplayWidth-4), lines[i])
	}
	assert.Equal(t, strings.Repeat(".", machine.DisplayWidth), lines[5])
}

func TestRun_Cancelled(t *testing.T) {
	m := machine.New()
	assert.NoError(t, m.Load([]byte{0x12, 0x00}))
	r := runner.New(log.NewTestLogger(t), m, runner.Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	assert.NoError(t, New(&buf).Run(ctx, r))
	assert.Equal(t, uint64(0), r.Stats().Instructions)
	assert.Len(t, strings.Split(buf.String(), "\n"), machine.DisplayHeight+1)
}
