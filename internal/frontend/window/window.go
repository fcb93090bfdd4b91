// Package window implements a frontend that shows the display scaled up in a
// desktop window and polls the keyboard for the hex keypad.
package window

import (
	"context"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/log"
)

const title = "retrochip8"

// Frontend is the window frontend.
type Frontend struct {
	logger *log.Logger
	scale  int
}

// New returns a window frontend. The window is scale times the size of the
// display.
func New(logger *log.Logger, scale int) *Frontend {
	return &Frontend{
		logger: logger,
		scale:  max(scale, 1),
	}
}

// Run opens the window and drives the runner from the game loop, one frame
// per tick. It returns when the window is closed, Escape is pressed or the
// context is cancelled. The window stays open after the runner halted.
func (f *Frontend) Run(ctx context.Context, r *runner.Runner) error {
	ebiten.SetWindowSize(machine.DisplayWidth*f.scale, machine.DisplayHeight*f.scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(r.Config().TimerHz)

	g := newGame(ctx, f.logger, r)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("running window: %w", err)
	}
	return g.halted
}

type game struct {
	ctx    context.Context
	logger *log.Logger
	runner *runner.Runner

	keys   [keymap.KeyCount]ebiten.Key
	pixels []byte
	halted error
	paused bool
}

func newGame(ctx context.Context, logger *log.Logger, r *runner.Runner) *game {
	g := &game{
		ctx:    ctx,
		logger: logger,
		runner: r,
		pixels: make([]byte, 4*machine.DisplayWidth*machine.DisplayHeight),
	}
	for _, b := range keymap.Bindings {
		g.keys[b.Key] = hostKeys[b.Rune]
	}
	return g
}

// Update implements ebiten.Game.
func (g *game) Update() error {
	if g.ctx.Err() != nil || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	for key, hostKey := range g.keys {
		if err := g.runner.SetKey(uint8(key), ebiten.IsKeyPressed(hostKey)); err != nil {
			return fmt.Errorf("setting key state: %w", err)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.togglePause()
	}
	if g.runner.Paused() && inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.stepOnce()
	}

	if g.halted != nil {
		return nil
	}
	if err := g.runner.Frame(); err != nil {
		g.halted = err
		g.logger.Debug("Runner stopped", log.Err(err))
		ebiten.SetWindowTitle(title + " (halted)")
	}
	return nil
}

func (g *game) stepOnce() {
	if err := g.runner.StepOnce(); err != nil {
		g.logger.Debug("Single step failed", log.Err(err))
	}
}

func (g *game) togglePause() {
	if g.runner.Paused() {
		g.runner.Resume()
		ebiten.SetWindowTitle(title)
		return
	}
	g.runner.Pause()
	ebiten.SetWindowTitle(title + " (paused)")
}

// Draw implements ebiten.Game.
func (g *game) Draw(screen *ebiten.Image) {
	g.runner.View(func(m *machine.Machine) {
		fillPixels(g.pixels, m.Framebuffer())
	})
	screen.WritePixels(g.pixels)
}

// Layout implements ebiten.Game, the screen always has the display size and
// is scaled to the window.
func (g *game) Layout(_, _ int) (int, int) {
	return machine.DisplayWidth, machine.DisplayHeight
}

var (
	colorOn  = [4]byte{0x33, 0xFF, 0x66, 0xFF}
	colorOff = [4]byte{0x00, 0x00, 0x00, 0xFF}
)

// fillPixels converts a framebuffer to RGBA pixels.
func fillPixels(pixels, framebuffer []uint8) {
	for i, pixel := range framebuffer {
		color := colorOff
		if pixel != 0 {
			color = colorOn
		}
		copy(pixels[4*i:4*i+4], color[:])
	}
}

// hostKeys maps the runes of the keypad bindings to ebiten keys.
var hostKeys = map[rune]ebiten.Key{
	'1': ebiten.Key1, '2': ebiten.Key2, '3': ebiten.Key3, '4': ebiten.Key4,
	'q': ebiten.KeyQ, 'w': ebiten.KeyW, 'e': ebiten.KeyE, 'r': ebiten.KeyR,
	'a': ebiten.KeyA, 's': ebiten.KeyS, 'd': ebiten.KeyD, 'f': ebiten.KeyF,
	'z': ebiten.KeyZ, 'x': ebiten.KeyX, 'c': ebiten.KeyC, 'v': ebiten.KeyV,
}
