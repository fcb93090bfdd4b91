// Package machine implements the CHIP-8 virtual machine core.
//
// # Machine State
//
// A Machine owns all interpreter state:
//   - 4096 bytes of memory, 0x000-0x1FF reserved for the interpreter and font
//   - 16 general purpose 8-bit registers V0-VF, VF doubling as flag register
//   - the 16-bit index register I and the program counter
//   - a 16 entry call stack
//   - delay and sound timers
//   - a 64x32 monochrome framebuffer
//   - a 16 key keypad
//
// # Execution
//
// The machine does not own a clock. A driver calls Step to execute exactly one
// instruction and TickTimers to decrement the timers, at whatever rate it
// chooses. The canonical rates are around 700 instructions per second and
// 60 timer ticks per second.
//
// Instruction handlers never move the program counter themselves, they
// return a result that the dispatcher applies:
//   - continue: PC+2
//   - skip: PC+4
//   - jump: PC set to the target address
//   - wait: PC unchanged, the instruction is retried on the next step
//   - fault: PC unchanged, for stack overflow and underflow
//   - unknown: PC+2 for opcodes that are not recognized
//
// # Errors
//
// Stack overflow, stack underflow and unknown opcodes are reported as errors
// from Step but never halt the machine. It is up to the caller to decide
// whether to stop execution.
//
// # Concurrency
//
// A Machine is not safe for concurrent use. Hosts reading the framebuffer
// from a different goroutine than the one calling Step need to provide their
// own locking.
//
// # Usage Example
//
//	m := machine.New(machine.WithSeed(1))
//	if err := m.Load(rom); err != nil {
//		return fmt.Errorf("loading rom: %w", err)
//	}
//	for range 10 {
//		if _, err := m.Step(); err != nil {
//			logger.Warn("Instruction failed", log.Err(err))
//		}
//	}
//	m.TickTimers()
package machine
