// Package runner drives a machine at a configured instruction rate and ticks
// its timers, and serializes access to it between the emulation loop and the
// host frontend.
package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/log"
)

var (
	// ErrHalted is returned once the runner stopped executing instructions.
	ErrHalted = errors.New("execution halted")

	// ErrCycleLimit halts the runner after the configured number of instructions.
	ErrCycleLimit = fmt.Errorf("%w: cycle limit reached", ErrHalted)
)

// Config defines the execution speed and stop conditions.
type Config struct {
	CyclesPerSecond int    // instructions executed per second
	TimerHz         int    // frames per second, the timers tick once per frame
	MaxCycles       uint64 // stop after this many instructions, 0 is unlimited
	HaltOnFault     bool   // stop on a stack overflow or underflow
}

// DefaultConfig returns the configuration that matches common interpreters.
func DefaultConfig() Config {
	return Config{
		CyclesPerSecond: 700,
		TimerHz:         60,
	}
}

// Stats contains execution counters of a runner.
type Stats struct {
	Frames         uint64
	Instructions   uint64
	Faults         uint64
	UnknownOpcodes uint64
}

// Runner executes a machine frame by frame. All methods are safe for
// concurrent use.
type Runner struct {
	logger *log.Logger
	cfg    Config

	mu      sync.Mutex
	machine *machine.Machine
	paused  bool
	halted  error
	stats   Stats
}

// New returns a runner for the given machine. Non positive rates in the
// config are replaced by the defaults.
func New(logger *log.Logger, m *machine.Machine, cfg Config) *Runner {
	defaults := DefaultConfig()
	if cfg.CyclesPerSecond <= 0 {
		cfg.CyclesPerSecond = defaults.CyclesPerSecond
	}
	if cfg.TimerHz <= 0 {
		cfg.TimerHz = defaults.TimerHz
	}

	return &Runner{
		logger:  logger,
		cfg:     cfg,
		machine: m,
	}
}

// Config returns the effective configuration.
func (r *Runner) Config() Config {
	return r.cfg
}

// CyclesPerFrame returns the number of instructions executed per frame.
func (r *Runner) CyclesPerFrame() int {
	return max(r.cfg.CyclesPerSecond/r.cfg.TimerHz, 1)
}

// Frame executes one frame worth of instructions and ticks the timers once.
// A paused runner does nothing. After the runner halted, the halting error
// is returned on every call.
func (r *Runner) Frame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.halted != nil {
		return r.halted
	}
	if r.paused {
		return nil
	}

	for range r.CyclesPerFrame() {
		if err := r.step(); err != nil {
			return err
		}
	}
	r.machine.TickTimers()
	r.stats.Frames++
	return nil
}

// Run executes frames at the configured timer frequency until the context is
// cancelled or the runner halts. Cancellation is not an error.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(max(time.Second/time.Duration(r.cfg.TimerHz), time.Nanosecond))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := r.Frame(); err != nil {
				return err
			}
		}
	}
}

// Pause stops execution until Resume is called.
func (r *Runner) Pause() {
	r.mu.Lock()
	r.paused = true
	r.mu.Unlock()
}

// Resume continues a paused execution.
func (r *Runner) Resume() {
	r.mu.Lock()
	r.paused = false
	r.mu.Unlock()
}

// Paused returns whether the execution is paused.
func (r *Runner) Paused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paused
}

// StepOnce executes a single instruction without ticking the timers. It is
// meant for single stepping a paused runner.
func (r *Runner) StepOnce() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.halted != nil {
		return r.halted
	}
	return r.step()
}

// Halted returns the error that halted the runner, or nil if it is running.
func (r *Runner) Halted() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.halted
}

// SetKey sets the pressed state of a keypad key.
func (r *Runner) SetKey(key uint8, pressed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.machine.SetKey(key, pressed); err != nil {
		return fmt.Errorf("setting key: %w", err)
	}
	return nil
}

// View calls fn with the machine while holding the runner lock. The machine
// must not be retained after fn returns.
func (r *Runner) View(fn func(m *machine.Machine)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.machine)
}

// Stats returns a copy of the execution counters.
func (r *Runner) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// step executes a single instruction, the lock must be held.
func (r *Runner) step() error {
	if r.cfg.MaxCycles > 0 && r.stats.Instructions >= r.cfg.MaxCycles {
		return r.halt(ErrCycleLimit)
	}

	event, err := r.machine.Step()
	r.stats.Instructions++

	switch event.Outcome {
	case machine.Fault:
		r.stats.Faults++
		if r.cfg.HaltOnFault {
			return r.halt(fmt.Errorf("%w: %w", ErrHalted, err))
		}
	case machine.Unknown:
		r.stats.UnknownOpcodes++
	default:
	}
	return nil
}

func (r *Runner) halt(err error) error {
	r.halted = err
	r.logger.Debug("Execution halted",
		log.Int("instructions", int(r.stats.Instructions)),
		log.Hex("pc", r.machine.PC()),
		log.Err(err),
	)
	return err
}
