// Package options contains the program options.
package options

// Frontend names.
const (
	Terminal = "terminal"
	Window   = "window"
	Headless = "headless"
)

// Frontends lists all supported frontends.
var Frontends = []string{Terminal, Window, Headless}

// Parameters contains file path and frontend options.
type Parameters struct {
	Input    string `flag:"i" usage:"input ROM file"`
	Frontend string `flag:"ui" usage:"frontend: terminal, window, headless" default:"terminal"`
}

// Execution contains emulation speed and stop options.
type Execution struct {
	CyclesPerSecond int    `flag:"cps" usage:"instructions executed per second" default:"700"`
	TimerHz         int    `flag:"hz" usage:"timer frequency" default:"60"`
	MaxCycles       uint64 `flag:"cycles" usage:"stop after executing the given number of instructions (0: unlimited)"`
	Seed            uint64 `flag:"seed" usage:"random number generator seed (0: time based)"`
	HaltOnFault     bool   `flag:"halt-on-fault" usage:"stop on stack overflow or underflow"`
}

// Quirks contains the interpreter compatibility options.
type Quirks struct {
	IndexOverflowFlag    bool `flag:"quirk-vf-index" usage:"FX1E sets VF on index overflow"`
	ShiftUsesVY          bool `flag:"quirk-shift-vy" usage:"8XY6 and 8XYE shift VY into VX"`
	LoadStoreIncrementsI bool `flag:"quirk-loadstore-i" usage:"FX55 and FX65 increment I"`
}

// Flags contains behavior options.
type Flags struct {
	Scale     int  `flag:"scale" usage:"window scale factor" default:"10"`
	Statsview bool `flag:"statsview" usage:"serve runtime statistics on localhost:12600"`
	Trace     bool `flag:"trace" usage:"log every executed instruction, requires -debug"`
	Debug     bool `flag:"debug" usage:"enable debug logging"`
	Quiet     bool `flag:"q" usage:"quiet mode"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Execution
	Quirks
	Flags
}
