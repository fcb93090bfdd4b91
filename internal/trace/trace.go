// Package trace provides a machine observer that logs executed instructions
// and keeps execution statistics.
package trace

import (
	"errors"
	"sync/atomic"

	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/log"
)

// Compile-time check to ensure Tracer implements machine.Observer.
var _ machine.Observer = (*Tracer)(nil)

// Stats contains execution counters.
type Stats struct {
	Instructions   uint64
	CurrentWait    uint64 // consecutive steps spent in the current FX0A wait
	StackFaults    uint64
	UnknownOpcodes uint64
}

// Tracer logs every executed instruction at debug level if enabled, and
// faults and unknown opcodes at warning level.
type Tracer struct {
	logger  *log.Logger
	verbose bool

	instructions   atomic.Uint64
	waits          atomic.Uint64
	stackFaults    atomic.Uint64
	unknownOpcodes atomic.Uint64

	last atomic.Value // last executed machine.Event
}

// New returns a new tracer. If verbose is set every instruction is logged.
func New(logger *log.Logger, verbose bool) *Tracer {
	return &Tracer{
		logger:  logger,
		verbose: verbose,
	}
}

// Executed implements machine.Observer.
func (t *Tracer) Executed(event machine.Event) {
	t.instructions.Add(1)
	t.last.Store(event)

	if event.Outcome != machine.Wait {
		t.waits.Store(0)
	}

	switch event.Outcome {
	case machine.Wait:
		// a waiting instruction repeats every cycle until a key is pressed
		if t.waits.Add(1) > 1 {
			return
		}
	case machine.Fault:
		t.stackFaults.Add(1)
		t.logFailure("Stack fault", event)
		return
	case machine.Unknown:
		t.unknownOpcodes.Add(1)
		t.logFailure("Unknown opcode", event)
		return
	default:
	}

	if !t.verbose {
		return
	}
	t.logger.Debug("Executed",
		log.Hex("address", event.Address),
		log.String("opcode", event.Opcode.String()),
		log.String("instruction", disasm.Format(uint16(event.Opcode))),
		log.Stringer("outcome", event.Outcome),
		log.Hex("next", event.NextPC),
	)
}

func (t *Tracer) logFailure(msg string, event machine.Event) {
	var opErr *machine.OpcodeError
	err := event.Err
	if errors.As(err, &opErr) {
		err = opErr.Err
	}
	t.logger.Warn(msg,
		log.Hex("address", event.Address),
		log.String("opcode", event.Opcode.String()),
		log.Err(err),
	)
}

// Stats returns the current counters.
func (t *Tracer) Stats() Stats {
	return Stats{
		Instructions:   t.instructions.Load(),
		CurrentWait:    t.waits.Load(),
		StackFaults:    t.stackFaults.Load(),
		UnknownOpcodes: t.unknownOpcodes.Load(),
	}
}

// Last returns the last executed instruction event.
func (t *Tracer) Last() (machine.Event, bool) {
	event, ok := t.last.Load().(machine.Event)
	return event, ok
}
