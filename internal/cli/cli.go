// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
)

const (
	minScale = 1
	maxScale = 40

	maxTimerHz         = 1000
	maxCyclesPerSecond = 1_000_000
)

// ParseFlags parses command line flags and returns program options
func ParseFlags() (options.Program, error) {
	return parse(os.Args[0], os.Args[1:])
}

func parse(name string, arguments []string) (options.Program, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	var opts options.Program
	flags.SetOutput(io.Discard)
	readOptionFlags(flags, &opts)

	if err := flags.Parse(arguments); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	args := flags.Args()
	if len(args) == 0 && opts.Input == "" {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, err
	}

	if len(args) > 0 {
		opts.Input = args[0]
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage message and all flag defaults.
func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("usage: retrochip8 [options] <ROM file>\n\n")
	if e.flags != nil {
		e.flags.SetOutput(os.Stdout)
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		switch {
		case i == 0:
		case strings.HasPrefix(arg, "-"):
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		default:
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Unexpected argument %q after ROM file, only one ROM file can be run", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	if !slices.Contains(options.Frontends, opts.Frontend) {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(options.Frontends, ", "))
	}

	if opts.CyclesPerSecond <= 0 || opts.CyclesPerSecond > maxCyclesPerSecond {
		return fmt.Errorf("instructions per second must be between 1 and %d, got %d",
			maxCyclesPerSecond, opts.CyclesPerSecond)
	}
	if opts.TimerHz <= 0 || opts.TimerHz > maxTimerHz {
		return fmt.Errorf("timer frequency must be between 1 and %d, got %d", maxTimerHz, opts.TimerHz)
	}
	if opts.Scale < minScale || opts.Scale > maxScale {
		return fmt.Errorf("scale must be between %d and %d, got %d", minScale, maxScale, opts.Scale)
	}
	if opts.Frontend == options.Headless && opts.MaxCycles == 0 {
		return fmt.Errorf("the %s frontend requires a cycle limit, use -cycles", options.Headless)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Frontend, "ui", options.Terminal, "frontend to use (terminal/window/headless)")

	flags.IntVar(&opts.CyclesPerSecond, "cps", 700, "instructions executed per second")
	flags.IntVar(&opts.TimerHz, "hz", 60, "frequency of the delay and sound timers")
	flags.Uint64Var(&opts.MaxCycles, "cycles", 0, "stop after executing the given number of instructions (0: unlimited)")
	flags.Uint64Var(&opts.Seed, "seed", 0, "random number generator seed (0: time based)")
	flags.BoolVar(&opts.HaltOnFault, "halt-on-fault", false, "stop execution on a stack overflow or underflow")

	flags.BoolVar(&opts.IndexOverflowFlag, "quirk-vf-index", false, "FX1E sets VF when I overflows past $FFF")
	flags.BoolVar(&opts.ShiftUsesVY, "quirk-shift-vy", false, "8XY6 and 8XYE shift VY and store the result in VX")
	flags.BoolVar(&opts.LoadStoreIncrementsI, "quirk-loadstore-i", false, "FX55 and FX65 leave I incremented by X+1")

	flags.IntVar(&opts.Scale, "scale", 10, "window scale factor")
	flags.BoolVar(&opts.Statsview, "statsview", false, "serve runtime statistics on localhost:12600")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, requires -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
