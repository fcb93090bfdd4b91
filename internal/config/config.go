// Package config handles application configuration and setup
package config

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// Quirks converts the quirk flags to machine quirks.
func Quirks(opts options.Quirks) machine.Quirks {
	return machine.Quirks{
		IndexOverflowFlag:    opts.IndexOverflowFlag,
		ShiftUsesVY:          opts.ShiftUsesVY,
		LoadStoreIncrementsI: opts.LoadStoreIncrementsI,
	}
}

// MachineOptions returns the machine options for the program options.
// A zero seed keeps the time based random source.
func MachineOptions(opts options.Program) []machine.Option {
	machineOptions := []machine.Option{
		machine.WithQuirks(Quirks(opts.Quirks)),
	}
	if opts.Seed != 0 {
		machineOptions = append(machineOptions, machine.WithSeed(opts.Seed))
	}
	return machineOptions
}

// Runner returns the runner configuration for the program options.
func Runner(opts options.Program) runner.Config {
	return runner.Config{
		CyclesPerSecond: opts.CyclesPerSecond,
		TimerHz:         opts.TimerHz,
		MaxCycles:       opts.MaxCycles,
		HaltOnFault:     opts.HaltOnFault,
	}
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("retrochip8", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
