// Package terminal implements a frontend that renders the display with block
// glyphs inside a terminal and maps the keyboard to the hex keypad.
package terminal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/log"
	"github.com/rivo/tview"
)

const (
	// DefaultKeyHold is the time a key stays pressed after the last key
	// event, it has to cover the initial key repeat delay of terminals.
	DefaultKeyHold = 300 * time.Millisecond

	refreshRate = 30
)

// Frontend is the terminal frontend.
type Frontend struct {
	logger  *log.Logger
	keyHold time.Duration
	screen  tcell.Screen // nil uses the terminal
}

// Option configures the frontend.
type Option func(*Frontend)

// WithKeyHold sets the time that keys stay pressed after the last key event.
func WithKeyHold(hold time.Duration) Option {
	return func(f *Frontend) {
		f.keyHold = hold
	}
}

// WithScreen sets the screen to render to instead of the terminal.
func WithScreen(screen tcell.Screen) Option {
	return func(f *Frontend) {
		f.screen = screen
	}
}

// New returns a new terminal frontend.
func New(logger *log.Logger, options ...Option) *Frontend {
	f := &Frontend{
		logger:  logger,
		keyHold: DefaultKeyHold,
	}
	for _, option := range options {
		option(f)
	}
	return f
}

// session contains the state of a single Run call.
type session struct {
	logger *log.Logger
	app    *tview.Application
	runner *runner.Runner
	view   *view
	keys   *keymap.Holder

	mu     sync.Mutex
	runErr error // set once the runner stopped
}

// Run shows the machine and runs the runner until the user quits or the
// context is cancelled. A halted runner keeps the last state on screen until
// the user quits, its error is returned.
func (f *Frontend) Run(ctx context.Context, r *runner.Runner) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app := tview.NewApplication()
	if f.screen != nil {
		app.SetScreen(f.screen)
	}

	s := &session{
		logger: f.logger,
		app:    app,
		runner: r,
		view:   newView(),
		keys:   keymap.NewHolder(f.keyHold),
	}
	app.SetRoot(s.view.root, true)
	app.SetInputCapture(s.handleKey)
	app.SetBeforeDrawFunc(s.view.beep)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.runLoop(ctx)
	}()
	// QueueUpdateDraw blocks once the application stopped, the refresh
	// goroutine is therefore not waited for.
	go s.refreshLoop(ctx)

	err := app.Run()
	cancel()
	<-done
	if err != nil {
		return fmt.Errorf("running terminal application: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runErr
}

func (s *session) runLoop(ctx context.Context) {
	if err := s.runner.Run(ctx); err != nil {
		s.logger.Debug("Runner stopped", log.Err(err))
		s.mu.Lock()
		s.runErr = err
		s.mu.Unlock()
	}

	// keep showing the halted machine until the user quits
	<-ctx.Done()
	s.app.Stop()
}

func (s *session) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Second / refreshRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.app.QueueUpdateDraw(s.update)
		}
	}
}

// update runs on the application goroutine.
func (s *session) update() {
	for _, key := range s.keys.Release(time.Now()) {
		s.setKey(key, false)
	}

	s.mu.Lock()
	runErr := s.runErr
	s.mu.Unlock()

	s.view.update(s.runner, runErr)
}

// handleKey runs on the application goroutine.
func (s *session) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		s.app.Stop()
		return nil
	case tcell.KeyRune:
	default:
		return event
	}

	r := event.Rune()
	if key, ok := keymap.Key(r); ok {
		if s.keys.Press(key, time.Now()) {
			s.setKey(key, true)
		}
		return nil
	}

	switch r {
	case ' ':
		if s.runner.Paused() {
			s.runner.Resume()
		} else {
			s.runner.Pause()
		}
	case 'n', 'N':
		if s.runner.Paused() {
			if err := s.runner.StepOnce(); err != nil {
				s.logger.Debug("Single step failed", log.Err(err))
			}
		}
	default:
		return event
	}
	return nil
}

func (s *session) setKey(key uint8, pressed bool) {
	if err := s.runner.SetKey(key, pressed); err != nil {
		s.logger.Error("Setting key state failed", log.Err(err))
	}
}
