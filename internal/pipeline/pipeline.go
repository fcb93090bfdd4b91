// Package pipeline orchestrates the emulation workflow stages.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/trace"
	"github.com/retroenv/retrogolib/log"
)

// Frontend presents a running machine to the user.
type Frontend interface {
	// Run drives or observes the runner until the user quits, the context is
	// cancelled or the runner halts.
	Run(ctx context.Context, r *runner.Runner) error
}

// Result contains the outcome of an emulation run.
type Result struct {
	Runner runner.Stats
	Trace  trace.Stats
}

// Pipeline orchestrates the complete emulation workflow.
type Pipeline struct {
	logger *log.Logger
	loader *loader.Loader
}

// New creates a new emulation pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
		loader: loader.New(logger),
	}
}

// Execute loads the ROM file and runs it in the given frontend.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, frontend Frontend) (Result, error) {
	rom, err := p.loader.Load(opts.Input)
	if err != nil {
		return Result{}, fmt.Errorf("loading ROM: %w", err)
	}

	return p.ExecuteWithROM(ctx, rom, opts, frontend)
}

// ExecuteWithROM runs an already loaded ROM in the given frontend.
// This is useful for testing and programmatic usage where the ROM is already in memory.
// Reaching the configured cycle limit is not an error.
func (p *Pipeline) ExecuteWithROM(ctx context.Context, rom []byte, opts options.Program,
	frontend Frontend) (Result, error) {

	tracer := trace.New(p.logger, opts.Trace)
	machineOptions := append(config.MachineOptions(opts), machine.WithObserver(tracer))
	m := machine.New(machineOptions...)
	if err := m.Load(rom); err != nil {
		return Result{}, fmt.Errorf("loading ROM into memory: %w", err)
	}

	r := runner.New(p.logger, m, config.Runner(opts))
	p.printInfo(opts, len(rom), r)

	err := frontend.Run(ctx, r)
	result := Result{
		Runner: r.Stats(),
		Trace:  tracer.Stats(),
	}
	p.printStats(opts, result)

	if err != nil && !errors.Is(err, runner.ErrCycleLimit) {
		return result, fmt.Errorf("running ROM: %w", err)
	}
	return result, nil
}

// printInfo prints information about the ROM being executed.
func (p *Pipeline) printInfo(opts options.Program, size int, r *runner.Runner) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Running CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", size),
		log.String("frontend", opts.Frontend),
		log.Int("cycles_per_frame", r.CyclesPerFrame()),
	)
}

// printStats prints the execution counters after the run.
func (p *Pipeline) printStats(opts options.Program, result Result) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Execution finished",
		log.Int("frames", int(result.Runner.Frames)),
		log.Int("instructions", int(result.Runner.Instructions)),
		log.Int("stack_faults", int(result.Trace.StackFaults)),
		log.Int("unknown_opcodes", int(result.Trace.UnknownOpcodes)),
	)
}
